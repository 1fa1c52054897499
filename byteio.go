package msgplus

import "encoding/binary"

// readUint8/16/32/64 and writeUint8/16/32/64 convert between native
// representation and big-endian wire order regardless of host endianness.
// Floats are transmitted as the big-endian bit pattern of their IEEE-754
// encoding (see floatToBits/bitsToFloat in encoder.go/decoder.go); there is
// no separate endian conversion of the mantissa.

func readUint8(src Source) (uint8, error) {
	b, err := src.ReadByte()
	if err != nil {
		return 0, err
	}
	return b, nil
}

func readUint16(src Source) (uint16, error) {
	buf, err := src.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

func readUint32(src Source) (uint32, error) {
	buf, err := src.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

func readUint64(src Source) (uint64, error) {
	buf, err := src.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

func writeUint8(sink Sink, v uint8) error {
	return sink.WriteByte(v)
}

func writeUint16(sink Sink, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return sink.WriteBytes(buf[:])
}

func writeUint32(sink Sink, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return sink.WriteBytes(buf[:])
}

func writeUint64(sink Sink, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return sink.WriteBytes(buf[:])
}
