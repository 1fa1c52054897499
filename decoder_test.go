package msgplus

import (
	"bytes"
	"errors"
	"testing"
)

func mustMarshal(t *testing.T, v Value) []byte {
	t.Helper()
	b, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return b
}

func TestDecodeNil(t *testing.T) {
	v, err := Unmarshal([]byte{0xc0})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !v.IsNil() {
		t.Fatalf("expected nil, got %s", v.Tag())
	}
}

func TestDecodeReservedByteFails(t *testing.T) {
	_, err := Unmarshal([]byte{0xc1})
	if !errors.Is(err, ErrReservedByte) {
		t.Fatalf("expected ErrReservedByte, got %v", err)
	}
}

func TestDecodeBool(t *testing.T) {
	for _, tc := range []struct {
		wire []byte
		want bool
	}{
		{[]byte{0xc2}, false},
		{[]byte{0xc3}, true},
	} {
		v, err := Unmarshal(tc.wire)
		if err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		got, err := v.AsBool()
		if err != nil {
			t.Fatalf("AsBool: %v", err)
		}
		if got != tc.want {
			t.Fatalf("got %v, want %v", got, tc.want)
		}
	}
}

func TestDecodePositiveFixint(t *testing.T) {
	v, err := Unmarshal([]byte{0x7f})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, err := v.AsUint()
	if err != nil {
		t.Fatalf("AsUint: %v", err)
	}
	if got != 127 {
		t.Fatalf("got %d, want 127", got)
	}
}

func TestDecodeNegativeFixint(t *testing.T) {
	v, err := Unmarshal([]byte{0xff})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, err := v.AsInt()
	if err != nil {
		t.Fatalf("AsInt: %v", err)
	}
	if got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestDecodeFixstr(t *testing.T) {
	v, err := Unmarshal([]byte{0xa3, 'a', 'b', 'c'})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, err := v.AsStr()
	if err != nil {
		t.Fatalf("AsStr: %v", err)
	}
	if got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}

func TestDecodeMapUsesCorrectMap16Tag(t *testing.T) {
	// 17 pairs force map16 (0xde), not the legacy array tag 0xdc.
	m := NewMap()
	for i := 0; i < 17; i++ {
		if err := m.Append(FromInt(int64(i)), FromInt(int64(i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	wire := mustMarshal(t, FromMap(m))
	if wire[0] != 0xde {
		t.Fatalf("expected canonical map16 tag 0xde, got 0x%02x", wire[0])
	}
	v, err := Unmarshal(wire)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, err := v.AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	if got.Len() != 17 {
		t.Fatalf("got %d pairs, want 17", got.Len())
	}
}

func TestDecodeArrayAndNestedValues(t *testing.T) {
	// [1, "a", nil]
	wire := []byte{0x93, 0x01, 0xa1, 'a', 0xc0}
	v, err := Unmarshal(wire)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	arr, err := v.AsArray()
	if err != nil {
		t.Fatalf("AsArray: %v", err)
	}
	if len(arr) != 3 {
		t.Fatalf("got %d elements, want 3", len(arr))
	}
	if n, _ := arr[0].AsUint(); n != 1 {
		t.Fatalf("elem0 = %d, want 1", n)
	}
	if s, _ := arr[1].AsStr(); s != "a" {
		t.Fatalf("elem1 = %q, want %q", s, "a")
	}
	if !arr[2].IsNil() {
		t.Fatalf("elem2 should be nil")
	}
}

func TestDecodeDuplicateMapKeyFails(t *testing.T) {
	// fixmap with two identical integer keys.
	wire := []byte{0x82, 0x01, 0x01, 0x01, 0x02}
	_, err := Unmarshal(wire)
	if err == nil {
		t.Fatalf("expected an error for duplicate map key")
	}
}

func TestDecodeMaxDepthExceeded(t *testing.T) {
	// A single-element array nested one level, decoded with MaxDepth 0
	// (i.e. only the top-level value itself is allowed).
	wire := []byte{0x91, 0x91, 0x00} // [[0]]
	dec := NewDecoder(NewBytesSource(wire), DecodeOptions{MaxDepth: 1})
	_, err := dec.Decode()
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}
}

func TestDecodeShortReadFails(t *testing.T) {
	_, err := Unmarshal([]byte{0xa3, 'a'}) // fixstr(3) with only 1 byte of payload
	if err == nil {
		t.Fatalf("expected a short-read error")
	}
}

func TestDecodeFloat64RoundTrip(t *testing.T) {
	wire := mustMarshal(t, FromFloat64(3.25))
	v, err := Unmarshal(wire)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	got, err := v.AsFloat64()
	if err != nil {
		t.Fatalf("AsFloat64: %v", err)
	}
	if got != 3.25 {
		t.Fatalf("got %v, want 3.25", got)
	}
}

func TestDecoderStreamsMultipleValues(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xc0}) // nil
	buf.Write([]byte{0xc3}) // true
	dec := NewDecoder(NewReaderSource(&buf), DecodeOptions{})
	first, err := dec.Decode()
	if err != nil {
		t.Fatalf("first Decode: %v", err)
	}
	if !first.IsNil() {
		t.Fatalf("first value should be nil")
	}
	second, err := dec.Decode()
	if err != nil {
		t.Fatalf("second Decode: %v", err)
	}
	if b, _ := second.AsBool(); !b {
		t.Fatalf("second value should be true")
	}
}
