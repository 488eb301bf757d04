package tjson

import (
	"strings"
	"testing"
)

func TestCompressedRoundTrip(t *testing.T) {
	doc := Object(
		Field("name", Str(strings.Repeat("payload ", 64))),
		Field("nums", Array(Int(1), Int(2), Int(3))),
		Field("nested", Object(Field("ok", Bool(true)))),
	)

	frame, err := MarshalCompressed(doc)
	if err != nil {
		t.Fatalf("MarshalCompressed failed: %v", err)
	}
	back, err := UnmarshalCompressed(frame)
	if err != nil {
		t.Fatalf("UnmarshalCompressed failed: %v", err)
	}
	if !back.Equal(doc) {
		t.Error("compressed round-trip lost data")
	}

	// The repeated payload must actually shrink.
	plain, err := Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(frame) >= len(plain) {
		t.Errorf("frame %d bytes >= plain %d bytes", len(frame), len(plain))
	}
}

func TestCompressedRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalCompressed([]byte("not a zstd frame")); err == nil {
		t.Fatal("UnmarshalCompressed accepted garbage")
	} else if kind := err.(*Error).Kind; kind != ErrInvalidData {
		t.Errorf("error kind = %v, expected ErrInvalidData", kind)
	}
}

func TestCompressedPropagatesEncodeError(t *testing.T) {
	if _, err := MarshalCompressed(Int(1)); err == nil {
		t.Error("MarshalCompressed accepted a non-object root")
	}
}
