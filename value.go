package msgplus

import (
	"bytes"
	"fmt"

	"msgplus/orderedmap"
)

// Tag identifies which of the eleven MessagePack families a Value holds.
// Tag values are stable and match the wire-order-independent indices of
// the original specification; they are used by Type and by Compare.
type Tag uint8

const (
	TagNil     Tag = 0
	TagBool    Tag = 1
	TagInt     Tag = 2
	TagUint    Tag = 3
	TagFloat32 Tag = 4
	TagFloat64 Tag = 5
	TagStr     Tag = 6
	TagBin     Tag = 7
	TagArray   Tag = 8
	TagMap     Tag = 9
	TagExt     Tag = 10
)

func (t Tag) String() string {
	switch t {
	case TagNil:
		return "nil"
	case TagBool:
		return "bool"
	case TagInt:
		return "int"
	case TagUint:
		return "uint"
	case TagFloat32:
		return "float32"
	case TagFloat64:
		return "float64"
	case TagStr:
		return "str"
	case TagBin:
		return "bin"
	case TagArray:
		return "array"
	case TagMap:
		return "map"
	case TagExt:
		return "ext"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Ext is the payload of the ext family: an application-defined signed
// 8-bit type code plus an opaque byte sequence.
type Ext struct {
	Type int8
	Data []byte
}

// Map is the payload of the map family: an ordered sequence of unique
// Value keys to Value values.
type Map = orderedmap.OrderedMap[Value, Value]

// NewMap creates an empty Map ordered by Compare.
func NewMap() *Map { return orderedmap.New[Value, Value](Compare) }

// Value is a tagged union over exactly one of the eleven MessagePack
// families. The zero Value is nil, matching the default-constructed value
// of the original specification.
type Value struct {
	tag Tag
	b   bool
	i   int64
	u   uint64
	f32 float32
	f64 float64
	s   string
	bin []byte
	arr []Value
	m   *Map
	ext Ext
}

// Nil returns the nil Value. The zero Value already is nil; Nil exists for
// readability at call sites.
func Nil() Value { return Value{} }

func FromBool(b bool) Value    { return Value{tag: TagBool, b: b} }
func FromInt(i int64) Value    { return Value{tag: TagInt, i: i} }
func FromUint(u uint64) Value  { return Value{tag: TagUint, u: u} }
func FromFloat32(f float32) Value { return Value{tag: TagFloat32, f32: f} }
func FromFloat64(f float64) Value { return Value{tag: TagFloat64, f64: f} }
func FromStr(s string) Value   { return Value{tag: TagStr, s: s} }
func FromBin(b []byte) Value   { return Value{tag: TagBin, bin: append([]byte(nil), b...)} }
func FromArray(v []Value) Value {
	return Value{tag: TagArray, arr: append([]Value(nil), v...)}
}
func FromMap(m *Map) Value { return Value{tag: TagMap, m: m} }
func FromExt(typ int8, data []byte) Value {
	return Value{tag: TagExt, ext: Ext{Type: typ, Data: append([]byte(nil), data...)}}
}

// From constructs a Value from a native Go type, routing signed integers to
// int, unsigned integers to uint, and strings/[]byte to str/bin. It panics
// on a type with no corresponding MessagePack family; From is meant for
// call sites building literal trees, not for decoding untrusted input.
func From(x any) Value {
	switch v := x.(type) {
	case nil:
		return Nil()
	case bool:
		return FromBool(v)
	case int:
		return FromInt(int64(v))
	case int8:
		return FromInt(int64(v))
	case int16:
		return FromInt(int64(v))
	case int32:
		return FromInt(int64(v))
	case int64:
		return FromInt(v)
	case uint:
		return FromUint(uint64(v))
	case uint8:
		return FromUint(uint64(v))
	case uint16:
		return FromUint(uint64(v))
	case uint32:
		return FromUint(uint64(v))
	case uint64:
		return FromUint(v)
	case float32:
		return FromFloat32(v)
	case float64:
		return FromFloat64(v)
	case string:
		return FromStr(v)
	case []byte:
		return FromBin(v)
	case []Value:
		return FromArray(v)
	case *Map:
		return FromMap(v)
	case Ext:
		return FromExt(v.Type, v.Data)
	case Value:
		return v
	default:
		panic(fmt.Sprintf("msgplus: From: unsupported type %T", x))
	}
}

// Tag returns the active variant.
func (v Value) Tag() Tag { return v.tag }

func (v Value) IsNil() bool     { return v.tag == TagNil }
func (v Value) IsBool() bool    { return v.tag == TagBool }
func (v Value) IsInt() bool     { return v.tag == TagInt }
func (v Value) IsUint() bool    { return v.tag == TagUint }
func (v Value) IsFloat32() bool { return v.tag == TagFloat32 }
func (v Value) IsFloat64() bool { return v.tag == TagFloat64 }
func (v Value) IsStr() bool     { return v.tag == TagStr }
func (v Value) IsBin() bool     { return v.tag == TagBin }
func (v Value) IsArray() bool   { return v.tag == TagArray }
func (v Value) IsMap() bool     { return v.tag == TagMap }
func (v Value) IsExt() bool     { return v.tag == TagExt }

// wrongTag builds the error returned by an AsX accessor called on the
// wrong variant (spec.md §7.2: a logic failure, not an input error).
func wrongTag(want Tag, got Tag) error {
	return fmt.Errorf("msgplus: value is %s, not %s", got, want)
}

func (v Value) AsBool() (bool, error) {
	if v.tag != TagBool {
		return false, wrongTag(TagBool, v.tag)
	}
	return v.b, nil
}
func (v Value) AsInt() (int64, error) {
	if v.tag != TagInt {
		return 0, wrongTag(TagInt, v.tag)
	}
	return v.i, nil
}
func (v Value) AsUint() (uint64, error) {
	if v.tag != TagUint {
		return 0, wrongTag(TagUint, v.tag)
	}
	return v.u, nil
}
func (v Value) AsFloat32() (float32, error) {
	if v.tag != TagFloat32 {
		return 0, wrongTag(TagFloat32, v.tag)
	}
	return v.f32, nil
}
func (v Value) AsFloat64() (float64, error) {
	if v.tag != TagFloat64 {
		return 0, wrongTag(TagFloat64, v.tag)
	}
	return v.f64, nil
}
func (v Value) AsStr() (string, error) {
	if v.tag != TagStr {
		return "", wrongTag(TagStr, v.tag)
	}
	return v.s, nil
}
func (v Value) AsBin() ([]byte, error) {
	if v.tag != TagBin {
		return nil, wrongTag(TagBin, v.tag)
	}
	return v.bin, nil
}
func (v Value) AsArray() ([]Value, error) {
	if v.tag != TagArray {
		return nil, wrongTag(TagArray, v.tag)
	}
	return v.arr, nil
}
func (v Value) AsMap() (*Map, error) {
	if v.tag != TagMap {
		return nil, wrongTag(TagMap, v.tag)
	}
	return v.m, nil
}
func (v Value) AsExt() (Ext, error) {
	if v.tag != TagExt {
		return Ext{}, wrongTag(TagExt, v.tag)
	}
	return v.ext, nil
}

func (v Value) TryBool() (bool, bool)       { return v.b, v.tag == TagBool }
func (v Value) TryInt() (int64, bool)       { return v.i, v.tag == TagInt }
func (v Value) TryUint() (uint64, bool)     { return v.u, v.tag == TagUint }
func (v Value) TryFloat32() (float32, bool) { return v.f32, v.tag == TagFloat32 }
func (v Value) TryFloat64() (float64, bool) { return v.f64, v.tag == TagFloat64 }
func (v Value) TryStr() (string, bool)      { return v.s, v.tag == TagStr }
func (v Value) TryBin() ([]byte, bool)      { return v.bin, v.tag == TagBin }
func (v Value) TryArray() ([]Value, bool)   { return v.arr, v.tag == TagArray }
func (v Value) TryMap() (*Map, bool)        { return v.m, v.tag == TagMap }
func (v Value) TryExt() (Ext, bool)         { return v.ext, v.tag == TagExt }

// Compare imposes a total order on Values: first by Tag, then payload-wise.
// Arrays compare element-wise with a shorter equal-prefix sorting first;
// maps compare as their sequence of (key, value) pairs in insertion order,
// same tie-break on length. Compare is the comparator used when a Value is
// itself used as a Map key.
func Compare(a, b Value) int {
	if a.tag != b.tag {
		if a.tag < b.tag {
			return -1
		}
		return 1
	}
	switch a.tag {
	case TagNil:
		return 0
	case TagBool:
		return compareBool(a.b, b.b)
	case TagInt:
		return compareInt64(a.i, b.i)
	case TagUint:
		return compareUint64(a.u, b.u)
	case TagFloat32:
		return compareFloat64(float64(a.f32), float64(b.f32))
	case TagFloat64:
		return compareFloat64(a.f64, b.f64)
	case TagStr:
		return stringsCompare(a.s, b.s)
	case TagBin:
		return bytes.Compare(a.bin, b.bin)
	case TagArray:
		return compareArray(a.arr, b.arr)
	case TagMap:
		return compareMap(a.m, b.m)
	case TagExt:
		return compareExt(a.ext, b.ext)
	default:
		return 0
	}
}

// Equal reports whether a and b are the same variant with equal payload.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func stringsCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareArray(a, b []Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(a)), int64(len(b)))
}

func compareMap(a, b *Map) int {
	ap, bp := a.Pairs(), b.Pairs()
	n := len(ap)
	if len(bp) < n {
		n = len(bp)
	}
	for i := 0; i < n; i++ {
		if c := Compare(ap[i].Key, bp[i].Key); c != 0 {
			return c
		}
		if c := Compare(ap[i].Value, bp[i].Value); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(ap)), int64(len(bp)))
}

func compareExt(a, b Ext) int {
	if c := compareInt64(int64(a.Type), int64(b.Type)); c != 0 {
		return c
	}
	return bytes.Compare(a.Data, b.Data)
}
