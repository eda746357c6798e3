package protocol

import "github.com/cockroachdb/errors"

// Snapshot is the full rendered markup of a tree at a version. Clients
// receive one on connect and whenever they must resync.
//
// IDs lists the wire id of every node of the markup in document order, so
// a client can map later ops onto the nodes it parsed. Adjacent text nodes
// merge when markup is parsed; a client whose parsed node count differs
// from len(IDs) must wait for the next snapshot.
type Snapshot struct {
	Version uint64
	HTML    string
	IDs     []uint32
}

// EncodeSnapshot encodes s as a snapshot payload.
func EncodeSnapshot(s *Snapshot) []byte {
	n := UvarintLen(s.Version) + stringLen(s.HTML) + UvarintLen(uint64(len(s.IDs)))
	for _, id := range s.IDs {
		n += UvarintLen(uint64(id))
	}
	e := NewEncoderWithCap(n)
	e.WriteUvarint(s.Version)
	e.WriteString(s.HTML)
	e.WriteUvarint(uint64(len(s.IDs)))
	for _, id := range s.IDs {
		e.WriteUvarint(uint64(id))
	}
	return e.Bytes()
}

// DecodeSnapshot decodes a snapshot payload.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	d := NewDecoder(data)
	version, err := d.ReadUvarint()
	if err != nil {
		return nil, errors.Wrap(err, "snapshot version")
	}
	html, err := d.ReadString()
	if err != nil {
		return nil, errors.Wrap(err, "snapshot html")
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, errors.Wrap(err, "snapshot ids")
	}
	s := &Snapshot{Version: version, HTML: html, IDs: make([]uint32, 0, count)}
	for i := 0; i < count; i++ {
		id, err := d.ReadUint32Varint()
		if err != nil {
			return nil, errors.Wrapf(err, "snapshot id %d", i)
		}
		s.IDs = append(s.IDs, id)
	}
	return s, nil
}

// SnapshotFrame wraps s in a FrameSnapshot frame with FlagResync set.
func SnapshotFrame(s *Snapshot) *Frame {
	f := NewFrame(FrameSnapshot, EncodeSnapshot(s))
	f.Flags = FlagResync
	return f
}

// ErrorMessage reports a tree that could not be loaded. The previous tree
// stays on screen.
type ErrorMessage struct {
	Code    string // Coded error, e.g. "E101"
	Message string
	Fatal   bool // Server is shutting down the connection
}

// EncodeErrorMessage encodes an ErrorMessage to bytes.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoderWithCap(stringLen(em.Code) + stringLen(em.Message) + 1)
	e.WriteString(em.Code)
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage from bytes.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: code, Message: msg, Fatal: fatal}, nil
}

// ErrorFrame wraps em in a FrameError frame.
func ErrorFrame(em *ErrorMessage) *Frame {
	f := NewFrame(FrameError, EncodeErrorMessage(em))
	if em.Fatal {
		f.Flags = FlagFinal
	}
	return f
}
