package protocol

import (
	"github.com/cockroachdb/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

// ErrUnknownOp is returned when a patch payload holds an op kind this
// version does not know.
var ErrUnknownOp = errors.New("protocol: unknown op kind")

// Batch is the op log of one patch, tagged with the tree version it
// produced.
type Batch struct {
	Version uint64
	Ops     []dom.Op
}

// EncodedSize returns the payload size of b in bytes.
func (b *Batch) EncodedSize() int {
	n := UvarintLen(b.Version) + UvarintLen(uint64(len(b.Ops)))
	for i := range b.Ops {
		n += opLen(&b.Ops[i])
	}
	return n
}

// EncodeBatch encodes b as a patch payload.
func EncodeBatch(b *Batch) []byte {
	e := NewEncoderWithCap(b.EncodedSize())
	EncodeBatchTo(e, b)
	return e.Bytes()
}

// EncodeBatchTo encodes b using the provided encoder.
func EncodeBatchTo(e *Encoder, b *Batch) {
	e.WriteUvarint(b.Version)
	e.WriteUvarint(uint64(len(b.Ops)))
	for i := range b.Ops {
		encodeOp(e, &b.Ops[i])
	}
}

// DecodeBatch decodes a patch payload.
func DecodeBatch(data []byte) (*Batch, error) {
	d := NewDecoder(data)
	version, err := d.ReadUvarint()
	if err != nil {
		return nil, errors.Wrap(err, "batch version")
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, errors.Wrap(err, "batch count")
	}
	b := &Batch{Version: version, Ops: make([]dom.Op, 0, count)}
	for i := 0; i < count; i++ {
		op, err := decodeOp(d)
		if err != nil {
			return nil, errors.Wrapf(err, "op %d", i)
		}
		b.Ops = append(b.Ops, op)
	}
	return b, nil
}

// PatchFrame wraps b in a FramePatches frame.
func PatchFrame(b *Batch) *Frame {
	return NewFrame(FramePatches, EncodeBatch(b))
}

func encodeOp(e *Encoder, op *dom.Op) {
	e.WriteUint8(byte(op.Kind))
	e.WriteUvarint(uint64(op.Node))
	switch op.Kind {
	case dom.OpCreateElement:
		e.WriteString(op.NS)
		e.WriteString(op.Name)
	case dom.OpCreateText, dom.OpCreateComment, dom.OpSetText:
		e.WriteString(op.Value)
	case dom.OpInsertBefore:
		e.WriteUvarint(uint64(op.Parent))
		e.WriteUvarint(uint64(op.Ref))
	case dom.OpAppendChild, dom.OpRemoveChild:
		e.WriteUvarint(uint64(op.Parent))
	case dom.OpSetAttr, dom.OpSetStyle, dom.OpSetProp:
		e.WriteString(op.Name)
		e.WriteString(op.Value)
	case dom.OpRemoveAttr, dom.OpRemoveStyle:
		e.WriteString(op.Name)
	}
}

func opLen(op *dom.Op) int {
	n := 1 + UvarintLen(uint64(op.Node))
	switch op.Kind {
	case dom.OpCreateElement:
		n += stringLen(op.NS) + stringLen(op.Name)
	case dom.OpCreateText, dom.OpCreateComment, dom.OpSetText:
		n += stringLen(op.Value)
	case dom.OpInsertBefore:
		n += UvarintLen(uint64(op.Parent)) + UvarintLen(uint64(op.Ref))
	case dom.OpAppendChild, dom.OpRemoveChild:
		n += UvarintLen(uint64(op.Parent))
	case dom.OpSetAttr, dom.OpSetStyle, dom.OpSetProp:
		n += stringLen(op.Name) + stringLen(op.Value)
	case dom.OpRemoveAttr, dom.OpRemoveStyle:
		n += stringLen(op.Name)
	}
	return n
}

func decodeOp(d *Decoder) (dom.Op, error) {
	var op dom.Op
	kind, err := d.ReadByte()
	if err != nil {
		return op, err
	}
	op.Kind = dom.OpKind(kind)
	if op.Node, err = d.ReadUint32Varint(); err != nil {
		return op, err
	}

	switch op.Kind {
	case dom.OpCreateElement:
		if op.NS, err = d.ReadString(); err != nil {
			return op, err
		}
		op.Name, err = d.ReadString()
	case dom.OpCreateText, dom.OpCreateComment, dom.OpSetText:
		op.Value, err = d.ReadString()
	case dom.OpInsertBefore:
		if op.Parent, err = d.ReadUint32Varint(); err != nil {
			return op, err
		}
		op.Ref, err = d.ReadUint32Varint()
	case dom.OpAppendChild, dom.OpRemoveChild:
		op.Parent, err = d.ReadUint32Varint()
	case dom.OpSetAttr, dom.OpSetStyle, dom.OpSetProp:
		if op.Name, err = d.ReadString(); err != nil {
			return op, err
		}
		op.Value, err = d.ReadString()
	case dom.OpRemoveAttr, dom.OpRemoveStyle:
		op.Name, err = d.ReadString()
	default:
		return op, errors.Wrapf(ErrUnknownOp, "0x%02x", kind)
	}
	return op, err
}
