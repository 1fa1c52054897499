package msgplus

import (
	"fmt"
	"math"
)

const maxUint32 = 1<<32 - 1

// ErrLengthTooLarge is returned when a length-prefixed family's payload
// exceeds 2^32-1, the largest length MessagePack's wire format can encode.
var ErrLengthTooLarge = fmt.Errorf("msgplus: length exceeds %d", maxUint32)

// EncodeOptions configures an Encoder.
type EncodeOptions struct {
	// LegacyMapTags reproduces the original source's confirmed bug of
	// emitting the array tags (0xDC/0xDD) instead of 0xDE/0xDF for map16
	// and map32. Canonical encoding uses 0xDE/0xDF; set this only to
	// exercise or reproduce the historical wire form.
	LegacyMapTags bool
}

// Encoder writes the canonical MessagePack representation of a Value to a
// Sink.
type Encoder struct {
	sink Sink
	opts EncodeOptions
}

// NewEncoder creates an Encoder writing to sink.
func NewEncoder(sink Sink, opts EncodeOptions) *Encoder {
	return &Encoder{sink: sink, opts: opts}
}

// Encode writes the canonical encoding of v.
func (e *Encoder) Encode(v Value) error {
	switch v.tag {
	case TagNil:
		return e.sink.WriteByte(0xc0)
	case TagBool:
		if v.b {
			return e.sink.WriteByte(0xc3)
		}
		return e.sink.WriteByte(0xc2)
	case TagInt:
		return e.encodeInt(v.i)
	case TagUint:
		return e.encodeUint(v.u)
	case TagFloat32:
		if err := e.sink.WriteByte(0xca); err != nil {
			return err
		}
		return writeUint32(e.sink, math.Float32bits(v.f32))
	case TagFloat64:
		if err := e.sink.WriteByte(0xcb); err != nil {
			return err
		}
		return writeUint64(e.sink, math.Float64bits(v.f64))
	case TagStr:
		return e.encodeStr(v.s)
	case TagBin:
		return e.encodeBin(v.bin)
	case TagArray:
		return e.encodeArray(v.arr)
	case TagMap:
		return e.encodeMap(v.m)
	case TagExt:
		return e.encodeExt(v.ext)
	default:
		return fmt.Errorf("msgplus: encode: unreachable variant %v", v.tag)
	}
}

// Marshal encodes v into a freshly allocated byte slice.
func Marshal(v Value) ([]byte, error) {
	sink := NewBufferSink()
	if err := NewEncoder(sink, EncodeOptions{}).Encode(v); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// encodeInt picks the smallest admissible format for a signed integer.
// Positive values deliberately choose the smallest *unsigned* family
// rather than a signed one — a minimisation choice carried from the
// source (spec.md §4.3, §9 Open Question #2).
func (e *Encoder) encodeInt(x int64) error {
	if x >= 0 {
		return e.encodeUint(uint64(x))
	}
	switch {
	case x >= -32:
		return e.sink.WriteByte(byte(x))
	case x >= math.MinInt8:
		if err := e.sink.WriteByte(0xd0); err != nil {
			return err
		}
		return writeUint8(e.sink, uint8(int8(x)))
	case x >= math.MinInt16:
		if err := e.sink.WriteByte(0xd1); err != nil {
			return err
		}
		return writeUint16(e.sink, uint16(int16(x)))
	case x >= math.MinInt32:
		if err := e.sink.WriteByte(0xd2); err != nil {
			return err
		}
		return writeUint32(e.sink, uint32(int32(x)))
	default:
		if err := e.sink.WriteByte(0xd3); err != nil {
			return err
		}
		return writeUint64(e.sink, uint64(x))
	}
}

func (e *Encoder) encodeUint(x uint64) error {
	switch {
	case x < 128:
		return e.sink.WriteByte(byte(x))
	case x <= math.MaxUint8:
		if err := e.sink.WriteByte(0xcc); err != nil {
			return err
		}
		return writeUint8(e.sink, uint8(x))
	case x <= math.MaxUint16:
		if err := e.sink.WriteByte(0xcd); err != nil {
			return err
		}
		return writeUint16(e.sink, uint16(x))
	case x <= maxUint32:
		if err := e.sink.WriteByte(0xce); err != nil {
			return err
		}
		return writeUint32(e.sink, uint32(x))
	default:
		if err := e.sink.WriteByte(0xcf); err != nil {
			return err
		}
		return writeUint64(e.sink, x)
	}
}

func (e *Encoder) encodeStr(s string) error {
	n := len(s)
	switch {
	case n <= 31:
		if err := e.sink.WriteByte(0xa0 | byte(n)); err != nil {
			return err
		}
	case n <= math.MaxUint8:
		if err := e.sink.WriteByte(0xd9); err != nil {
			return err
		}
		if err := writeUint8(e.sink, uint8(n)); err != nil {
			return err
		}
	case n <= math.MaxUint16:
		if err := e.sink.WriteByte(0xda); err != nil {
			return err
		}
		if err := writeUint16(e.sink, uint16(n)); err != nil {
			return err
		}
	case n <= maxUint32:
		if err := e.sink.WriteByte(0xdb); err != nil {
			return err
		}
		if err := writeUint32(e.sink, uint32(n)); err != nil {
			return err
		}
	default:
		return ErrLengthTooLarge
	}
	return e.sink.WriteBytes([]byte(s))
}

func (e *Encoder) encodeBin(b []byte) error {
	n := len(b)
	switch {
	case n <= math.MaxUint8:
		if err := e.sink.WriteByte(0xc4); err != nil {
			return err
		}
		if err := writeUint8(e.sink, uint8(n)); err != nil {
			return err
		}
	case n <= math.MaxUint16:
		if err := e.sink.WriteByte(0xc5); err != nil {
			return err
		}
		if err := writeUint16(e.sink, uint16(n)); err != nil {
			return err
		}
	case n <= maxUint32:
		if err := e.sink.WriteByte(0xc6); err != nil {
			return err
		}
		if err := writeUint32(e.sink, uint32(n)); err != nil {
			return err
		}
	default:
		return ErrLengthTooLarge
	}
	return e.sink.WriteBytes(b)
}

func (e *Encoder) encodeArray(elems []Value) error {
	n := len(elems)
	switch {
	case n <= 15:
		if err := e.sink.WriteByte(0x90 | byte(n)); err != nil {
			return err
		}
	case n <= math.MaxUint16:
		if err := e.sink.WriteByte(0xdc); err != nil {
			return err
		}
		if err := writeUint16(e.sink, uint16(n)); err != nil {
			return err
		}
	case n <= maxUint32:
		if err := e.sink.WriteByte(0xdd); err != nil {
			return err
		}
		if err := writeUint32(e.sink, uint32(n)); err != nil {
			return err
		}
	default:
		return ErrLengthTooLarge
	}
	for i, elem := range elems {
		if err := e.Encode(elem); err != nil {
			return fmt.Errorf("msgplus: encode array element %d: %w", i, err)
		}
	}
	return nil
}

func (e *Encoder) encodeMap(m *Map) error {
	n := m.Len()
	switch {
	case n <= 15:
		if err := e.sink.WriteByte(0x80 | byte(n)); err != nil {
			return err
		}
	case n <= math.MaxUint16:
		tag, wide := byte(0xde), uint16(n)
		if e.opts.LegacyMapTags {
			tag = 0xdc
		}
		if err := e.sink.WriteByte(tag); err != nil {
			return err
		}
		if err := writeUint16(e.sink, wide); err != nil {
			return err
		}
	case n <= maxUint32:
		tag, wide := byte(0xdf), uint32(n)
		if e.opts.LegacyMapTags {
			tag = 0xdd
		}
		if err := e.sink.WriteByte(tag); err != nil {
			return err
		}
		if err := writeUint32(e.sink, wide); err != nil {
			return err
		}
	default:
		return ErrLengthTooLarge
	}
	for i, p := range m.Pairs() {
		if err := e.Encode(p.Key); err != nil {
			return fmt.Errorf("msgplus: encode map key %d: %w", i, err)
		}
		if err := e.Encode(p.Value); err != nil {
			return fmt.Errorf("msgplus: encode map value %d: %w", i, err)
		}
	}
	return nil
}

func (e *Encoder) encodeExt(ext Ext) error {
	n := len(ext.Data)
	switch n {
	case 1:
		if err := e.sink.WriteByte(0xd4); err != nil {
			return err
		}
	case 2:
		if err := e.sink.WriteByte(0xd5); err != nil {
			return err
		}
	case 4:
		if err := e.sink.WriteByte(0xd6); err != nil {
			return err
		}
	case 8:
		if err := e.sink.WriteByte(0xd7); err != nil {
			return err
		}
	case 16:
		if err := e.sink.WriteByte(0xd8); err != nil {
			return err
		}
	default:
		switch {
		case n <= math.MaxUint8:
			if err := e.sink.WriteByte(0xc7); err != nil {
				return err
			}
			if err := writeUint8(e.sink, uint8(n)); err != nil {
				return err
			}
		case n <= math.MaxUint16:
			if err := e.sink.WriteByte(0xc8); err != nil {
				return err
			}
			if err := writeUint16(e.sink, uint16(n)); err != nil {
				return err
			}
		case n <= maxUint32:
			if err := e.sink.WriteByte(0xc9); err != nil {
				return err
			}
			if err := writeUint32(e.sink, uint32(n)); err != nil {
				return err
			}
		default:
			return ErrLengthTooLarge
		}
	}
	if err := e.sink.WriteByte(byte(ext.Type)); err != nil {
		return err
	}
	return e.sink.WriteBytes(ext.Data)
}
