package coder

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// Encoder appends values to a Sink. Fixed-size and varint writes cannot
// fail; length-prefixed writes fail with ErrCannotEncode when the byte
// length exceeds math.MaxInt32.
type Encoder struct {
	sink Sink
	tmp  [10]byte
}

// NewEncoder returns an Encoder over a new Buffer. The optional argument is
// the initial capacity.
func NewEncoder(cap ...int) *Encoder {
	if len(cap) > 0 && cap[0] > 0 {
		return Wrap(NewBuffer(cap[0]))
	}
	return Wrap(NewBuffer(256))
}

// Wrap returns an Encoder that appends to s.
func Wrap(s Sink) *Encoder {
	return &Encoder{sink: s}
}

func (e *Encoder) Sink() Sink {
	return e.sink
}

// Bytes returns the encoded bytes when the Sink keeps them in memory, and
// nil otherwise.
func (e *Encoder) Bytes() []byte {
	if b, ok := e.sink.(interface{ Bytes() []byte }); ok {
		return b.Bytes()
	}
	return nil
}

// Write bytes directly
func (e *Encoder) WriteBytes(p []byte) {
	if len(p) > 0 {
		e.sink.Append(p)
	}
}

// Write UInt 8/16/32/64
func (e *Encoder) WriteUInt8(i uint8) {
	e.tmp[0] = i
	e.sink.Append(e.tmp[:1])
}
func (e *Encoder) WriteUInt16(i uint16) {
	e.sink.Append(binary.LittleEndian.AppendUint16(e.tmp[:0], i))
}
func (e *Encoder) WriteUInt32(i uint32) {
	e.sink.Append(binary.LittleEndian.AppendUint32(e.tmp[:0], i))
}
func (e *Encoder) WriteUInt64(i uint64) {
	e.sink.Append(binary.LittleEndian.AppendUint64(e.tmp[:0], i))
}

// Write Int 8/16/32/64
func (e *Encoder) WriteInt8(i int8) {
	e.WriteUInt8(uint8(i))
}
func (e *Encoder) WriteInt16(i int16) {
	e.WriteUInt16(uint16(i))
}
func (e *Encoder) WriteInt32(i int32) {
	e.WriteUInt32(uint32(i))
}
func (e *Encoder) WriteInt64(i int64) {
	e.WriteUInt64(uint64(i))
}

// WriteBool writes 1 for true and 0 for false.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.WriteUInt8(1)
	} else {
		e.WriteUInt8(0)
	}
}

func (e *Encoder) WriteFloat32(f float32) {
	e.WriteUInt32(math.Float32bits(f))
}
func (e *Encoder) WriteFloat64(f float64) {
	e.WriteUInt64(math.Float64bits(f))
}

// WriteVarint32 writes i as a 7-bit encoded integer of 1 to 5 bytes.
// Negative values always take 5 bytes.
func (e *Encoder) WriteVarint32(i int32) {
	u := uint32(i)
	w := e.tmp[:5]
	w[0] = byte(u) & mask
	w[1] = byte(u>>7) & mask
	w[2] = byte(u>>14) & mask
	w[3] = byte(u>>21) & mask
	w[4] = byte(u>>28) & 0x0f // only 4 significant bits
	n := len(w)
	for n > 1 && w[n-1] == 0 {
		n--
	}
	for j := 0; j < n-1; j++ {
		w[j] |= more
	}
	e.sink.Append(w[:n])
}

// WriteVarint64 writes i as a 7-bit encoded integer of 1 to 10 bytes.
// Negative values always take 10 bytes.
func (e *Encoder) WriteVarint64(i int64) {
	u := uint64(i)
	n := 0
	for u >= more {
		e.tmp[n] = byte(u&mask) | more
		u >>= 7
		n++
	}
	e.tmp[n] = byte(u)
	e.sink.Append(e.tmp[:n+1])
}

// writeLen writes a byte count as a varint32 prefix.
func (e *Encoder) writeLen(n int) error {
	if n < 0 || int64(n) > math.MaxInt32 {
		return ErrCannotEncode
	}
	e.WriteVarint32(int32(n))
	return nil
}

// WriteData writes a length-prefixed byte string. The bytes are not checked
// for UTF-8.
func (e *Encoder) WriteData(data []byte) error {
	if err := e.writeLen(len(data)); err != nil {
		return err
	}
	e.WriteBytes(data)
	return nil
}

// WriteString writes s as a length-prefixed UTF-8 string.
func (e *Encoder) WriteString(s string) error {
	if err := e.writeLen(len(s)); err != nil {
		return err
	}
	if len(s) > 0 {
		e.sink.Append([]byte(s))
	}
	return nil
}

// WriteUTF16Units writes pre-encoded UTF-16 code units, prefixed with their
// length in bytes. The units are not checked for surrogate pairing.
func (e *Encoder) WriteUTF16Units(units []uint16) error {
	if int64(len(units)) > math.MaxInt32/2 {
		return ErrCannotEncode
	}
	if err := e.writeLen(2 * len(units)); err != nil {
		return err
	}
	for _, u := range units {
		e.WriteUInt16(u)
	}
	return nil
}

// WriteUTF16String converts s to UTF-16 and writes it length-prefixed.
// Invalid UTF-8 in s is written as U+FFFD.
func (e *Encoder) WriteUTF16String(s string) error {
	units := 0
	var buf [2]uint16
	for _, r := range s {
		units += len(utf16.AppendRune(buf[:0], r))
	}
	if int64(units) > math.MaxInt32/2 {
		return ErrCannotEncode
	}
	if err := e.writeLen(2 * units); err != nil {
		return err
	}
	var pair [2]uint16
	for _, r := range s {
		for _, u := range utf16.AppendRune(pair[:0], r) {
			e.WriteUInt16(u)
		}
	}
	return nil
}
