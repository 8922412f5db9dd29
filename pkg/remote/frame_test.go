package remote

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	f := NewFrame(FrameEvent, []byte("payload"))
	f.Flags = FlagSequenced

	data := f.Encode()
	if len(data) != FrameHeaderSize+7 {
		t.Fatalf("encoded length = %d, want %d", len(data), FrameHeaderSize+7)
	}

	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if got.Type != FrameEvent || !got.Flags.Has(FlagSequenced) || string(got.Payload) != "payload" {
		t.Errorf("decoded frame = %+v", got)
	}
}

func TestDecodeFrameShortInput(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x01}); err == nil {
		t.Errorf("short header decoded without error")
	}
	// Header promises more payload than present.
	if _, err := DecodeFrame([]byte{0x01, 0x00, 0x00, 0x05, 'x'}); err == nil {
		t.Errorf("truncated payload decoded without error")
	}
}

func TestReadWriteFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := NewFrame(FrameMutations, []byte{1, 2, 3})
	if err := WriteFrame(&buf, want); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FrameMutations, make([]byte, MaxPayloadSize+1))
	err := WriteFrame(&bytes.Buffer{}, f)
	if !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("WriteFrame() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestMutationBatchBody(t *testing.T) {
	batch := &MutationBatch{
		Seq: 3,
		Mutations: []Mutation{
			{Op: OpCreateElement, Node: 1, Str: "div"},
			{Op: OpInsertBefore, Node: 1, Parent: 2},
			{Op: OpSetAttr, Node: 1, Key: "class", Str: "row"},
		},
	}

	body, err := encodeBody(batch)
	if err != nil {
		t.Fatalf("encodeBody() error = %v", err)
	}

	var got MutationBatch
	if err := decodeBody(body, &got); err != nil {
		t.Fatalf("decodeBody() error = %v", err)
	}
	if got.Seq != 3 || len(got.Mutations) != 3 {
		t.Fatalf("decoded batch = %+v", got)
	}
	if got.Mutations[0].Op != OpCreateElement || got.Mutations[0].Str != "div" {
		t.Errorf("first mutation = %+v", got.Mutations[0])
	}
	if got.Mutations[2].Key != "class" {
		t.Errorf("third mutation = %+v", got.Mutations[2])
	}
}
