package jsonvalue

import (
	"testing"

	"msgplus"
)

func TestMarshalUnmarshalScalars(t *testing.T) {
	for _, v := range []msgplus.Value{
		msgplus.Nil(),
		msgplus.FromBool(true),
		msgplus.FromFloat64(2.5),
		msgplus.FromStr("hi"),
	} {
		data, err := Marshal(v)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		got, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if !msgplus.Equal(v, got) {
			t.Fatalf("round trip mismatch: got %v, want %v", got, v)
		}
	}
}

func TestMarshalArrayAndMap(t *testing.T) {
	m := msgplus.NewMap()
	if err := m.Append(msgplus.FromStr("a"), msgplus.FromInt(1)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	arr := msgplus.FromArray([]msgplus.Value{msgplus.FromMap(m), msgplus.FromStr("tail")})

	data, err := Marshal(arr)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	elems, err := got.AsArray()
	if err != nil {
		t.Fatalf("AsArray: %v", err)
	}
	if len(elems) != 2 {
		t.Fatalf("got %d elements, want 2", len(elems))
	}
	decodedMap, err := elems[0].AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	val, err := decodedMap.At(msgplus.FromStr("a"))
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	// JSON has no integer family distinct from float; round-tripping
	// through JSON turns it into a float64 Value.
	f, err := val.AsFloat64()
	if err != nil {
		t.Fatalf("AsFloat64: %v", err)
	}
	if f != 1 {
		t.Fatalf("got %v, want 1", f)
	}
}

func TestMarshalNonStrMapKeyFails(t *testing.T) {
	m := msgplus.NewMap()
	if err := m.Append(msgplus.FromInt(1), msgplus.FromStr("x")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := Marshal(msgplus.FromMap(m)); err == nil {
		t.Fatalf("expected an error for a non-str map key")
	}
}
