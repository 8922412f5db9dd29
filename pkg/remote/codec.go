package remote

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MutationOp identifies one tree mutation.
type MutationOp uint8

const (
	OpCreateElement MutationOp = iota + 1
	OpCreateText
	OpInsertBefore
	OpRemove
	OpReplace
	OpSetText
	OpSetAttr
	OpRemoveAttr
	OpSetProp
	OpSetStyle
)

// String returns the op's name.
func (op MutationOp) String() string {
	switch op {
	case OpCreateElement:
		return "create-element"
	case OpCreateText:
		return "create-text"
	case OpInsertBefore:
		return "insert-before"
	case OpRemove:
		return "remove"
	case OpReplace:
		return "replace"
	case OpSetText:
		return "set-text"
	case OpSetAttr:
		return "set-attr"
	case OpRemoveAttr:
		return "remove-attr"
	case OpSetProp:
		return "set-prop"
	case OpSetStyle:
		return "set-style"
	default:
		return "unknown"
	}
}

// Mutation is one tree change addressed by node id. Field use depends on
// the op; unused fields stay zero and msgpack omits them.
type Mutation struct {
	Op     MutationOp `msgpack:"op"`
	Node   uint32     `msgpack:"n"`
	Parent uint32     `msgpack:"p,omitempty"`
	Ref    uint32     `msgpack:"r,omitempty"`
	Key    string     `msgpack:"k,omitempty"`
	Str    string     `msgpack:"s,omitempty"`
	Value  any        `msgpack:"v,omitempty"`
}

// MutationBatch is the body of one FrameMutations frame: every change
// from one scheduler flush, in application order.
type MutationBatch struct {
	Seq       uint64     `msgpack:"seq"`
	Mutations []Mutation `msgpack:"m"`
}

// Handshake is the body of the FrameHandshake frame, sent by the server
// after the upgrade.
type Handshake struct {
	SessionID string `msgpack:"sid"`
	Root      uint32 `msgpack:"root"`
}

// EventMsg is the body of a client FrameEvent frame.
type EventMsg struct {
	Node    uint32         `msgpack:"n"`
	Type    string         `msgpack:"t"`
	Value   string         `msgpack:"v,omitempty"`
	Checked bool           `msgpack:"c,omitempty"`
	Key     string         `msgpack:"k,omitempty"`
	Data    map[string]any `msgpack:"d,omitempty"`
}

// ControlKind discriminates control frame bodies.
type ControlKind uint8

const (
	ControlPing ControlKind = iota + 1
	ControlPong
	ControlClose
)

// ControlMsg is the body of a FrameControl frame.
type ControlMsg struct {
	Kind      ControlKind `msgpack:"k"`
	Timestamp uint64      `msgpack:"ts,omitempty"`
	Reason    string      `msgpack:"r,omitempty"`
}

// AckMsg is the body of a FrameAck frame.
type AckMsg struct {
	LastSeq uint64 `msgpack:"seq"`
}

// ErrorMsg is the body of a FrameError frame.
type ErrorMsg struct {
	Code    string `msgpack:"c"`
	Message string `msgpack:"m"`
}

// encodeBody marshals a frame body.
func encodeBody(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("remote: encode %T: %w", v, err)
	}
	return data, nil
}

// decodeBody unmarshals a frame body.
func decodeBody(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("remote: decode %T: %w", v, err)
	}
	return nil
}
