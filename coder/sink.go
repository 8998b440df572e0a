package coder

import "io"

// Sink receives the bytes produced by an Encoder. Append must not retain p
// after it returns.
type Sink interface {
	Append(p []byte)
}

// Buffer is a growable in-memory Sink.
type Buffer struct {
	buf []byte
}

// NewBuffer returns a Buffer with the given initial capacity.
func NewBuffer(cap int) *Buffer {
	return &Buffer{buf: make([]byte, 0, cap)}
}

func (b *Buffer) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// Bytes returns the bytes appended so far. The slice aliases the Buffer
// until the next Append or Reset.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

func (b *Buffer) Len() int {
	return len(b.buf)
}

// Reset empties the Buffer but keeps its storage.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// StreamSink appends to an io.Writer. Once a write fails every later Append
// is a no-op and Err reports the first failure.
type StreamSink struct {
	w   io.Writer
	n   int64
	err error
}

func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

func (s *StreamSink) Append(p []byte) {
	if s.err != nil || len(p) == 0 {
		return
	}
	n, err := s.w.Write(p)
	s.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	s.err = err
}

// Written returns the number of bytes accepted by the underlying writer.
func (s *StreamSink) Written() int64 {
	return s.n
}

func (s *StreamSink) Err() error {
	return s.err
}
