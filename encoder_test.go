package msgplus

import (
	"bytes"
	"testing"
)

func wireOf(t *testing.T, v Value) []byte {
	t.Helper()
	b, err := Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return b
}

func TestEncodeNilIsC0(t *testing.T) {
	got := wireOf(t, Nil())
	want := []byte{0xc0}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeBool(t *testing.T) {
	if got := wireOf(t, FromBool(false)); !bytes.Equal(got, []byte{0xc2}) {
		t.Fatalf("false: got %x", got)
	}
	if got := wireOf(t, FromBool(true)); !bytes.Equal(got, []byte{0xc3}) {
		t.Fatalf("true: got %x", got)
	}
}

func TestEncodePositiveIntUsesUnsignedFamily(t *testing.T) {
	// Positive signed integers encode via the smallest unsigned family,
	// not the signed one — the source's own minimisation choice.
	got := wireOf(t, FromInt(127))
	want := []byte{0x7f}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeNegativeFixint(t *testing.T) {
	got := wireOf(t, FromInt(-1))
	want := []byte{0xff}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeIntBoundaries(t *testing.T) {
	for _, tc := range []struct {
		v    int64
		want []byte
	}{
		{-32, []byte{0xe0}},
		{-33, []byte{0xd0, 0xdf}},
		{-128, []byte{0xd0, 0x80}},
		{-129, []byte{0xd1, 0xff, 0x7f}},
	} {
		got := wireOf(t, FromInt(tc.v))
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("encode(%d): got %x, want %x", tc.v, got, tc.want)
		}
	}
}

func TestEncodeStrFamilyBoundaries(t *testing.T) {
	short := wireOf(t, FromStr("abc"))
	if !bytes.Equal(short, []byte{0xa3, 'a', 'b', 'c'}) {
		t.Fatalf("short fixstr: got %x", short)
	}

	s32 := string(bytes.Repeat([]byte{'x'}, 32))
	wide := wireOf(t, FromStr(s32))
	if wide[0] != 0xd9 {
		t.Fatalf("expected str8 tag at length 32, got 0x%02x", wide[0])
	}
}

func TestEncodeArrayExample(t *testing.T) {
	arr := FromArray([]Value{FromInt(1), FromStr("a"), Nil()})
	got := wireOf(t, arr)
	want := []byte{0x93, 0x01, 0xa1, 'a', 0xc0}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeMapUsesCanonicalTagsByDefault(t *testing.T) {
	m := NewMap()
	for i := 0; i < 16; i++ {
		if err := m.Append(FromInt(int64(i)), Nil()); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	got := wireOf(t, FromMap(m))
	if got[0] != 0xde {
		t.Fatalf("expected canonical map16 tag 0xde, got 0x%02x", got[0])
	}
}

func TestEncodeMapLegacyMapTagsReproducesBug(t *testing.T) {
	m := NewMap()
	for i := 0; i < 16; i++ {
		if err := m.Append(FromInt(int64(i)), Nil()); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	sink := NewBufferSink()
	enc := NewEncoder(sink, EncodeOptions{LegacyMapTags: true})
	if err := enc.Encode(FromMap(m)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got := sink.Bytes()
	if got[0] != 0xdc {
		t.Fatalf("expected legacy array tag 0xdc, got 0x%02x", got[0])
	}
	// A canonical decoder must reject this wire form as a map — it reads
	// as an array, the very divergence LegacyMapTags exists to exercise.
	v, err := Unmarshal(got)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !v.IsArray() {
		t.Fatalf("expected the legacy wire form to decode as an array, got %s", v.Tag())
	}
}

func TestEncodeExtFixextBoundary(t *testing.T) {
	// 4-byte payload uses fixext4 (0xd6), not ext8.
	got := wireOf(t, FromExt(7, []byte{1, 2, 3, 4}))
	want := []byte{0xd6, 7, 1, 2, 3, 4}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestEncodeExtNonFixextSizeUsesExt8(t *testing.T) {
	got := wireOf(t, FromExt(1, []byte{1, 2, 3}))
	if got[0] != 0xc7 {
		t.Fatalf("expected ext8 tag 0xc7, got 0x%02x", got[0])
	}
}

func TestEncodeDecodeRoundTripFloat32(t *testing.T) {
	got := wireOf(t, FromFloat32(1.5))
	v, err := Unmarshal(got)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	f, err := v.AsFloat32()
	if err != nil {
		t.Fatalf("AsFloat32: %v", err)
	}
	if f != 1.5 {
		t.Fatalf("got %v, want 1.5", f)
	}
}

func TestEncodeBinBoundaries(t *testing.T) {
	got := wireOf(t, FromBin([]byte{1, 2, 3}))
	want := []byte{0xc4, 3, 1, 2, 3}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestRoundTripPreservesMapOrder(t *testing.T) {
	m := NewMap()
	keys := []string{"z", "a", "m"}
	for _, k := range keys {
		if err := m.Append(FromStr(k), FromStr(k)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	wire := wireOf(t, FromMap(m))
	v, err := Unmarshal(wire)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	decoded, err := v.AsMap()
	if err != nil {
		t.Fatalf("AsMap: %v", err)
	}
	for i, p := range decoded.Pairs() {
		s, _ := p.Key.AsStr()
		if s != keys[i] {
			t.Fatalf("pair %d: got key %q, want %q", i, s, keys[i])
		}
	}
}
