package msgplus

import (
	"errors"
	"fmt"
	"math"
)

// ErrReservedByte is returned when the format byte 0xC1 is encountered; it
// is reserved by the MessagePack specification and never assigned.
var ErrReservedByte = errors.New("msgplus: format byte 0xC1 is reserved")

// ErrMaxDepthExceeded is returned when decoding a nested array or map would
// exceed the configured DecodeOptions.MaxDepth.
var ErrMaxDepthExceeded = errors.New("msgplus: maximum nesting depth exceeded")

// DecodeOptions configures a Decoder. The zero value imposes no recursion
// limit, matching the core specification, which does not mandate one.
type DecodeOptions struct {
	// MaxDepth caps array/map nesting. Zero means unlimited.
	MaxDepth int
}

// Decoder pulls bytes from a Source and reconstructs a Value tree. A
// Decoder holds no state across calls to Decode beyond its Source and
// options; it is not safe for concurrent use against the same Source.
type Decoder struct {
	src  Source
	opts DecodeOptions
}

// NewDecoder creates a Decoder reading from src.
func NewDecoder(src Source, opts DecodeOptions) *Decoder {
	return &Decoder{src: src, opts: opts}
}

// Decode pulls exactly the bytes required for the next top-level Value and
// returns it. On failure the amount consumed from src is unspecified; the
// core gives no rewind guarantee.
func (d *Decoder) Decode() (Value, error) {
	return d.decodeValue(0)
}

// Unmarshal is a convenience wrapper decoding a single top-level Value from
// an in-memory byte slice.
func Unmarshal(data []byte) (Value, error) {
	return NewDecoder(NewBytesSource(data), DecodeOptions{}).Decode()
}

func (d *Decoder) checkDepth(depth int) error {
	if d.opts.MaxDepth > 0 && depth > d.opts.MaxDepth {
		return ErrMaxDepthExceeded
	}
	return nil
}

func (d *Decoder) decodeValue(depth int) (Value, error) {
	if err := d.checkDepth(depth); err != nil {
		return Value{}, err
	}
	b, err := d.src.ReadByte()
	if err != nil {
		return Value{}, fmt.Errorf("msgplus: read format byte: %w", err)
	}

	switch {
	case b <= 0x7f: // positive fixint -> uint
		return FromUint(uint64(b)), nil
	case b >= 0xe0: // negative fixint -> int
		return FromInt(int64(int8(b))), nil
	case b >= 0x80 && b <= 0x8f: // fixmap
		return d.decodeMap(int(b&0x0f), depth)
	case b >= 0x90 && b <= 0x9f: // fixarray
		return d.decodeArray(int(b&0x0f), depth)
	case b >= 0xa0 && b <= 0xbf: // fixstr
		return d.decodeStr(int(b & 0x1f))
	}

	switch b {
	case 0xc0:
		return Nil(), nil
	case 0xc1:
		return Value{}, ErrReservedByte
	case 0xc2:
		return FromBool(false), nil
	case 0xc3:
		return FromBool(true), nil
	case 0xc4:
		n, err := readUint8(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeBin(int(n))
	case 0xc5:
		n, err := readUint16(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeBin(int(n))
	case 0xc6:
		n, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeBin(int(n))
	case 0xc7:
		n, err := readUint8(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeExt(int(n))
	case 0xc8:
		n, err := readUint16(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeExt(int(n))
	case 0xc9:
		n, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeExt(int(n))
	case 0xca:
		bits, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromFloat32(math.Float32frombits(bits)), nil
	case 0xcb:
		bits, err := readUint64(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromFloat64(math.Float64frombits(bits)), nil
	case 0xcc:
		v, err := readUint8(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromUint(uint64(v)), nil
	case 0xcd:
		v, err := readUint16(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromUint(uint64(v)), nil
	case 0xce:
		v, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromUint(uint64(v)), nil
	case 0xcf:
		v, err := readUint64(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromUint(v), nil
	case 0xd0:
		v, err := readUint8(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromInt(int64(int8(v))), nil
	case 0xd1:
		v, err := readUint16(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromInt(int64(int16(v))), nil
	case 0xd2:
		v, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromInt(int64(int32(v))), nil
	case 0xd3:
		v, err := readUint64(d.src)
		if err != nil {
			return Value{}, err
		}
		return FromInt(int64(v)), nil
	case 0xd4:
		return d.decodeExt(1)
	case 0xd5:
		return d.decodeExt(2)
	case 0xd6:
		return d.decodeExt(4)
	case 0xd7:
		return d.decodeExt(8)
	case 0xd8:
		return d.decodeExt(16)
	case 0xd9:
		n, err := readUint8(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeStr(int(n))
	case 0xda:
		n, err := readUint16(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeStr(int(n))
	case 0xdb:
		n, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeStr(int(n))
	case 0xdc:
		n, err := readUint16(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeArray(int(n), depth)
	case 0xdd:
		n, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeArray(int(n), depth)
	case 0xde:
		n, err := readUint16(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeMap(int(n), depth)
	case 0xdf:
		n, err := readUint32(d.src)
		if err != nil {
			return Value{}, err
		}
		return d.decodeMap(int(n), depth)
	}

	return Value{}, fmt.Errorf("msgplus: unassigned format byte 0x%02x", b)
}

func (d *Decoder) decodeStr(n int) (Value, error) {
	buf, err := d.src.ReadBytes(n)
	if err != nil {
		return Value{}, fmt.Errorf("msgplus: decode str: %w", err)
	}
	return FromStr(string(buf)), nil
}

func (d *Decoder) decodeBin(n int) (Value, error) {
	buf, err := d.src.ReadBytes(n)
	if err != nil {
		return Value{}, fmt.Errorf("msgplus: decode bin: %w", err)
	}
	return FromBin(buf), nil
}

func (d *Decoder) decodeExt(n int) (Value, error) {
	typeByte, err := d.src.ReadByte()
	if err != nil {
		return Value{}, fmt.Errorf("msgplus: decode ext type: %w", err)
	}
	data, err := d.src.ReadBytes(n)
	if err != nil {
		return Value{}, fmt.Errorf("msgplus: decode ext payload: %w", err)
	}
	return FromExt(int8(typeByte), data), nil
}

func (d *Decoder) decodeArray(n int, depth int) (Value, error) {
	elems := make([]Value, n)
	for i := 0; i < n; i++ {
		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, fmt.Errorf("msgplus: decode array element %d: %w", i, err)
		}
		elems[i] = v
	}
	return Value{tag: TagArray, arr: elems}, nil
}

func (d *Decoder) decodeMap(n int, depth int) (Value, error) {
	m := NewMap()
	for i := 0; i < n; i++ {
		key, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, fmt.Errorf("msgplus: decode map key %d: %w", i, err)
		}
		val, err := d.decodeValue(depth + 1)
		if err != nil {
			return Value{}, fmt.Errorf("msgplus: decode map value %d: %w", i, err)
		}
		if err := m.Append(key, val); err != nil {
			return Value{}, fmt.Errorf("msgplus: decode map pair %d: %w", i, err)
		}
	}
	return FromMap(m), nil
}
