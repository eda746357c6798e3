package protocol

import (
	"io"
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/memdom"
)

func TestBatchCarriesEveryOpKind(t *testing.T) {
	b := &Batch{
		Version: 300,
		Ops: []dom.Op{
			{Kind: dom.OpCreateElement, Node: 2, Name: "svg", NS: "http://www.w3.org/2000/svg"},
			{Kind: dom.OpCreateText, Node: 3, Value: "héllo"},
			{Kind: dom.OpCreateComment, Node: 4, Value: "c"},
			{Kind: dom.OpInsertBefore, Node: 2, Parent: 1, Ref: 0},
			{Kind: dom.OpInsertBefore, Node: 4, Parent: 1, Ref: 2},
			{Kind: dom.OpAppendChild, Node: 3, Parent: 2},
			{Kind: dom.OpRemoveChild, Node: 4, Parent: 1},
			{Kind: dom.OpSetText, Node: 2, Value: ""},
			{Kind: dom.OpSetAttr, Node: 2, Name: "id", Value: "x"},
			{Kind: dom.OpRemoveAttr, Node: 2, Name: "id"},
			{Kind: dom.OpSetStyle, Node: 2, Name: "color", Value: "red"},
			{Kind: dom.OpRemoveStyle, Node: 2, Name: "color"},
			{Kind: dom.OpSetProp, Node: 2, Name: "value", Value: "v"},
		},
	}

	data := EncodeBatch(b)
	if len(data) != b.EncodedSize() {
		t.Errorf("EncodedSize() = %d, encoded %d bytes", b.EncodedSize(), len(data))
	}

	got, err := DecodeBatch(data)
	if err != nil {
		t.Fatalf("DecodeBatch() error = %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Errorf("DecodeBatch() = %+v, want %+v", got, b)
	}
}

func TestBatchFromRecorder(t *testing.T) {
	rec := dom.NewRecorder(memdom.API)
	root := rec.CreateElement("div")
	rec.SetAttribute(root, "class", "a")
	rec.AppendChild(root, rec.CreateTextNode("x"))

	frame := PatchFrame(&Batch{Version: 1, Ops: rec.Take()})
	decoded, err := DecodeFrame(frame.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	b, err := DecodeBatch(decoded.Payload)
	if err != nil {
		t.Fatalf("DecodeBatch() error = %v", err)
	}

	want := []string{`create #1 div`, `attr #1 class="a"`, `create #2 text "x"`, `append #2 to #1`}
	if len(b.Ops) != len(want) {
		t.Fatalf("ops = %v", b.Ops)
	}
	for i, op := range b.Ops {
		if op.String() != want[i] {
			t.Errorf("op %d = %q, want %q", i, op.String(), want[i])
		}
	}
}

func TestDecodeBatchErrors(t *testing.T) {
	t.Run("unknown op", func(t *testing.T) {
		e := NewEncoder()
		e.WriteUvarint(1)
		e.WriteUvarint(1)
		e.WriteUint8(0x7E)
		e.WriteUvarint(1)
		_, err := DecodeBatch(e.Bytes())
		if !errors.Is(err, ErrUnknownOp) {
			t.Errorf("err = %v, want ErrUnknownOp", err)
		}
	})

	t.Run("truncated op", func(t *testing.T) {
		data := EncodeBatch(&Batch{Ops: []dom.Op{{Kind: dom.OpSetAttr, Node: 1, Name: "id", Value: "long value"}}})
		_, err := DecodeBatch(data[:len(data)-3])
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := DecodeBatch(nil); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})
}

func TestSnapshotAndErrorFrames(t *testing.T) {
	sf := SnapshotFrame(&Snapshot{Version: 7, HTML: "<p>x</p>", IDs: []uint32{1, 300}})
	if !sf.Flags.Has(FlagResync) {
		t.Error("snapshot frames force a resync")
	}
	s, err := DecodeSnapshot(sf.Payload)
	if err != nil || s.Version != 7 || s.HTML != "<p>x</p>" {
		t.Errorf("DecodeSnapshot() = %+v, %v", s, err)
	}
	if !reflect.DeepEqual(s.IDs, []uint32{1, 300}) {
		t.Errorf("IDs = %v", s.IDs)
	}

	ef := ErrorFrame(&ErrorMessage{Code: "E101", Message: "bad tree", Fatal: true})
	if ef.Type != FrameError || !ef.Flags.Has(FlagFinal) {
		t.Errorf("ErrorFrame() = %v flags %v", ef.Type, ef.Flags)
	}
	em, err := DecodeErrorMessage(ef.Payload)
	if err != nil || em.Code != "E101" || em.Message != "bad tree" || !em.Fatal {
		t.Errorf("DecodeErrorMessage() = %+v, %v", em, err)
	}
}
