package msgplus

import (
	"bytes"
	"errors"
	"io"
)

// ErrShortRead is returned when a Source cannot supply as many bytes as
// requested; a partial read must be reported as failure, never a short
// success.
var ErrShortRead = errors.New("msgplus: short read")

// Source is the minimal pull interface the Decoder consumes. It is the
// only collaborator the core depends on for input; the core ships no
// file-backed implementation, only the adapters below over bytes.Reader
// and io.Reader.
type Source interface {
	// ReadByte consumes and returns the next byte.
	ReadByte() (byte, error)
	// ReadBytes consumes exactly n bytes, or fails — never a short read.
	ReadBytes(n int) ([]byte, error)
	IsOK() bool
	IsEOF() bool
}

// BytesSource is a Source over an in-memory byte slice.
type BytesSource struct {
	r   *bytes.Reader
	err error
}

// NewBytesSource creates a Source that reads from data.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{r: bytes.NewReader(data)}
}

func (s *BytesSource) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		s.err = err
		return 0, ErrShortRead
	}
	return b, nil
}

func (s *BytesSource) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		s.err = err
		return nil, ErrShortRead
	}
	return buf, nil
}

func (s *BytesSource) IsOK() bool  { return s.err == nil }
func (s *BytesSource) IsEOF() bool { return s.r.Len() == 0 }

// ReaderSource adapts any io.Reader (including an *os.File) into a Source.
type ReaderSource struct {
	r   io.Reader
	err error
	eof bool
}

// NewReaderSource creates a Source that pulls from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

func (s *ReaderSource) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		s.record(err)
		return 0, ErrShortRead
	}
	return buf[0], nil
}

func (s *ReaderSource) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		s.record(err)
		return nil, ErrShortRead
	}
	return buf, nil
}

func (s *ReaderSource) record(err error) {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		s.eof = true
	}
	s.err = err
}

func (s *ReaderSource) IsOK() bool  { return s.err == nil }
func (s *ReaderSource) IsEOF() bool { return s.eof }
