package tjson

import (
	"testing"
	"time"
)

func TestWalkRebuildsEqualTree(t *testing.T) {
	f, _ := Float(2.5)
	doc := Object(
		Field("flag", Bool(true)),
		Field("bin", Data([]byte{1, 2})),
		Field("n", Int(-1)),
		Field("u", Uint(1<<63)),
		Field("f", f),
		Field("s", Str("text")),
		Field("t", Timestamp(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))),
		Field("arr", Array(Int(1), Int(2))),
		Field("set", SetOf(Str("a"), Str("b"))),
		Field("obj", Object(Field("inner", Array(Object(), Object(Field("k", Int(3))))))),
	)

	var tb TreeBuilder
	if err := Walk(doc, &tb); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	got, err := tb.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !got.Equal(doc) {
		t.Error("rebuilt tree not equal to original")
	}
}

func TestWalkScalarRoot(t *testing.T) {
	var tb TreeBuilder
	if err := Walk(Str("solo"), &tb); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	got, err := tb.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if s, _ := got.AsStr(); s != "solo" {
		t.Errorf("rebuilt scalar = %q", s)
	}
}

func TestTreeBuilderOrderPolicy(t *testing.T) {
	src := NewMapWith(OrderInsertion)
	src.Set("z", Int(1))
	src.Set("a", Int(2))

	tb := TreeBuilder{Order: OrderInsertion}
	if err := Walk(FromMap(src), &tb); err != nil {
		t.Fatal(err)
	}
	got, err := tb.Build()
	if err != nil {
		t.Fatal(err)
	}
	m, _ := got.AsObject()
	if keys := m.Keys(); keys[0] != "z" {
		t.Errorf("rebuilt keys = %v, expected insertion order preserved", keys)
	}
}

func TestBuilderManualConstruction(t *testing.T) {
	var b Builder
	b.BeginObject(OrderSorted)
	if err := b.PutMember("n", Int(1)); err != nil {
		t.Fatal(err)
	}
	b.BeginArray()
	if err := b.PushElement(Str("x")); err != nil {
		t.Fatal(err)
	}
	arr, err := b.EndArray()
	if err != nil {
		t.Fatal(err)
	}
	if err := b.PutMember("xs", arr); err != nil {
		t.Fatal(err)
	}
	obj, err := b.EndObject()
	if err != nil {
		t.Fatal(err)
	}
	if b.Depth() != 0 {
		t.Errorf("Depth = %d after closing everything", b.Depth())
	}

	want := Object(Field("n", Int(1)), Field("xs", Array(Str("x"))))
	if !obj.Equal(want) {
		t.Error("built tree not equal to expected")
	}
}

func TestBuilderSetDedup(t *testing.T) {
	var b Builder
	b.BeginSet(OrderSorted)
	for _, n := range []int64{2, 1, 2} {
		if err := b.PushElement(Int(n)); err != nil {
			t.Fatal(err)
		}
	}
	set, err := b.EndSet()
	if err != nil {
		t.Fatal(err)
	}
	s, _ := set.AsSet()
	if s.Len() != 2 {
		t.Errorf("set len = %d, expected duplicates collapsed to 2", s.Len())
	}
}

func TestBuilderMisuse(t *testing.T) {
	t.Run("put with nothing open", func(t *testing.T) {
		var b Builder
		if err := b.PutMember("k", Int(1)); err == nil {
			t.Error("PutMember succeeded with no open container")
		}
	})

	t.Run("push into object", func(t *testing.T) {
		var b Builder
		b.BeginObject(OrderSorted)
		if err := b.PushElement(Int(1)); err == nil {
			t.Error("PushElement succeeded on an object")
		}
	})

	t.Run("mismatched end", func(t *testing.T) {
		var b Builder
		b.BeginArray()
		if _, err := b.EndObject(); err == nil {
			t.Error("EndObject succeeded on an array")
		}
	})

	t.Run("end with nothing open", func(t *testing.T) {
		var b Builder
		if _, err := b.EndSet(); err == nil {
			t.Error("EndSet succeeded with no open container")
		}
	})
}

func TestTreeBuilderIncomplete(t *testing.T) {
	var tb TreeBuilder
	if err := tb.BeginObject(0); err != nil {
		t.Fatal(err)
	}
	if _, err := tb.Build(); err == nil {
		t.Error("Build succeeded on an unterminated sequence")
	}

	var empty TreeBuilder
	if _, err := empty.Build(); err == nil {
		t.Error("Build succeeded with no events at all")
	}
}

func TestTreeBuilderMemberNameRequired(t *testing.T) {
	var tb TreeBuilder
	if err := tb.BeginObject(1); err != nil {
		t.Fatal(err)
	}
	if err := tb.Scalar(Int(1)); err == nil {
		t.Error("member value accepted without a MemberName")
	}
}
