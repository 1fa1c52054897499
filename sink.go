package msgplus

import (
	"bytes"
	"io"
)

// Sink is the minimal push interface the Encoder consumes.
type Sink interface {
	WriteByte(b byte) error
	WriteBytes(p []byte) error
	IsOK() bool
}

// BufferSink is a Sink over an in-memory buffer.
type BufferSink struct {
	buf *bytes.Buffer
	err error
}

// NewBufferSink creates an empty Sink that accumulates into memory.
func NewBufferSink() *BufferSink { return &BufferSink{buf: new(bytes.Buffer)} }

func (s *BufferSink) WriteByte(b byte) error {
	if s.err != nil {
		return s.err
	}
	if err := s.buf.WriteByte(b); err != nil {
		s.err = err
		return err
	}
	return nil
}

func (s *BufferSink) WriteBytes(p []byte) error {
	if s.err != nil {
		return s.err
	}
	if _, err := s.buf.Write(p); err != nil {
		s.err = err
		return err
	}
	return nil
}

func (s *BufferSink) IsOK() bool { return s.err == nil }

// Bytes returns the accumulated wire bytes.
func (s *BufferSink) Bytes() []byte { return s.buf.Bytes() }

// WriterSink adapts any io.Writer (including an *os.File) into a Sink.
type WriterSink struct {
	w   io.Writer
	err error
}

// NewWriterSink creates a Sink that pushes to w.
func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{w: w} }

func (s *WriterSink) WriteByte(b byte) error {
	return s.WriteBytes([]byte{b})
}

func (s *WriterSink) WriteBytes(p []byte) error {
	if s.err != nil {
		return s.err
	}
	if _, err := s.w.Write(p); err != nil {
		s.err = err
		return err
	}
	return nil
}

func (s *WriterSink) IsOK() bool { return s.err == nil }
