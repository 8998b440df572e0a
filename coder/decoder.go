package coder

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	more = 0x80
	mask = 0x7f
)

// Decoder reads values from the front of a byte slice. Each successful read
// shortens the remaining view; it never grows or moves backwards.
type Decoder struct {
	data []byte
}

func NewDecoder(bytes []byte) *Decoder {
	return &Decoder{data: bytes}
}

// Remaining returns the unread part of the input. Callers decoding from an
// incremental source save it before a read so they can restart on
// ErrNeedsMoreData.
func (d *Decoder) Remaining() []byte {
	return d.data
}

// Len returns the number of unread bytes.
func (d *Decoder) Len() int {
	return len(d.data)
}

// ReadAll returns the unread bytes and leaves the Decoder empty.
func (d *Decoder) ReadAll() []byte {
	p := d.data
	d.data = d.data[len(d.data):]
	return p
}

// ReadBytes returns the next n bytes without copying them.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalid
	}
	if len(d.data) < n {
		return nil, ErrNeedsMoreData
	}
	p := d.data[:n:n]
	d.data = d.data[n:]
	return p, nil
}

// ReadFull copies exactly len(p) bytes into p. It is the fixed-size array
// read: var b [4]byte; d.ReadFull(b[:]).
func (d *Decoder) ReadFull(p []byte) error {
	if len(d.data) < len(p) {
		return ErrNeedsMoreData
	}
	n := copy(p, d.data)
	d.data = d.data[n:]
	return nil
}

// Read UInt 8/16/32/64
func (d *Decoder) ReadUInt8() (uint8, error) {
	if len(d.data) == 0 {
		return 0, ErrNeedsMoreData
	}
	i := d.data[0]
	d.data = d.data[1:]
	return i, nil
}
func (d *Decoder) ReadUInt16() (uint16, error) {
	bytes, err := d.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bytes), nil
}
func (d *Decoder) ReadUInt32() (uint32, error) {
	bytes, err := d.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bytes), nil
}
func (d *Decoder) ReadUInt64() (uint64, error) {
	bytes, err := d.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bytes), nil
}

// Read Int 8/16/32/64
func (d *Decoder) ReadInt8() (int8, error) {
	u, err := d.ReadUInt8()
	return int8(u), err
}
func (d *Decoder) ReadInt16() (int16, error) {
	u, err := d.ReadUInt16()
	return int16(u), err
}
func (d *Decoder) ReadInt32() (int32, error) {
	u, err := d.ReadUInt32()
	return int32(u), err
}
func (d *Decoder) ReadInt64() (int64, error) {
	u, err := d.ReadUInt64()
	return int64(u), err
}

// ReadBool reads one byte. Any nonzero value is true, as with .NET's
// BinaryReader.ReadBoolean.
func (d *Decoder) ReadBool() (bool, error) {
	i, err := d.ReadUInt8()
	if err != nil {
		return false, err
	}
	return i != 0, nil
}

func (d *Decoder) ReadFloat32() (float32, error) {
	u, err := d.ReadUInt32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}
func (d *Decoder) ReadFloat64() (float64, error) {
	u, err := d.ReadUInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// ReadVarint32 reads a 7-bit encoded integer of at most 5 bytes.
//
// The last byte carries 4 meaningful bits. The other 3 are not checked,
// matching the .NET reader.
func (d *Decoder) ReadVarint32() (int32, error) {
	var n uint32
	for shift := uint(0); ; {
		b, err := d.ReadUInt8()
		if err != nil {
			return 0, err
		}
		n |= uint32(b&mask) << shift
		if b&more == 0 {
			break
		}
		shift += 7
		if shift >= 32 {
			return 0, ErrInvalid
		}
	}
	return int32(n), nil
}

// ReadVarint64 reads a 7-bit encoded integer of at most 10 bytes.
func (d *Decoder) ReadVarint64() (int64, error) {
	var n uint64
	for shift := uint(0); ; {
		b, err := d.ReadUInt8()
		if err != nil {
			return 0, err
		}
		n |= uint64(b&mask) << shift
		if b&more == 0 {
			break
		}
		shift += 7
		if shift >= 64 {
			return 0, ErrInvalid
		}
	}
	return int64(n), nil
}

// readLen reads a varint32 byte count. Negative counts are invalid.
func (d *Decoder) readLen() (int, error) {
	l, err := d.ReadVarint32()
	if err != nil {
		return 0, err
	}
	if l < 0 {
		return 0, ErrInvalid
	}
	return int(l), nil
}

// ReadData reads a length-prefixed byte string without copying it and
// without checking that it is UTF-8.
func (d *Decoder) ReadData() ([]byte, error) {
	l, err := d.readLen()
	if err != nil {
		return nil, err
	}
	return d.ReadBytes(l)
}

// ReadString reads a length-prefixed UTF-8 string. Ill-formed UTF-8 yields
// ErrInvalid; the Decoder has already moved past the string by then.
func (d *Decoder) ReadString() (string, error) {
	bytes, err := d.ReadData()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", ErrInvalid
	}
	return string(bytes), nil
}

// ReadStringLossy reads a length-prefixed UTF-8 string, replacing each
// maximal ill-formed subsequence with a single U+FFFD.
func (d *Decoder) ReadStringLossy() (string, error) {
	bytes, err := d.ReadData()
	if err != nil {
		return "", err
	}
	if utf8.Valid(bytes) {
		return string(bytes), nil
	}
	var sb strings.Builder
	sb.Grow(len(bytes))
	for len(bytes) > 0 {
		r, size := utf8.DecodeRune(bytes)
		if r == utf8.RuneError && size == 1 {
			size = illFormedLen(bytes)
		}
		sb.WriteRune(r)
		bytes = bytes[size:]
	}
	return sb.String(), nil
}

// illFormedLen returns the length of the longest prefix of p that starts a
// well-formed UTF-8 sequence but does not complete one. It is at least 1.
func illFormedLen(p []byte) int {
	var need int
	lo, hi := byte(0x80), byte(0xbf)
	switch b := p[0]; {
	case b >= 0xc2 && b <= 0xdf:
		need = 2
	case b == 0xe0:
		need, lo = 3, 0xa0
	case b == 0xed:
		need, hi = 3, 0x9f
	case b >= 0xe1 && b <= 0xef:
		need = 3
	case b == 0xf0:
		need, lo = 4, 0x90
	case b == 0xf4:
		need, hi = 4, 0x8f
	case b >= 0xf1 && b <= 0xf3:
		need = 4
	default:
		return 1
	}
	n := 1
	for n < need && n < len(p) && p[n] >= lo && p[n] <= hi {
		n++
		lo, hi = 0x80, 0xbf
	}
	return n
}

// ReadUTF16Data reads a length-prefixed UTF-16 string and returns its
// little-endian code units as raw bytes, without copying. The prefix counts
// bytes, so an odd count is ErrInvalid.
func (d *Decoder) ReadUTF16Data() ([]byte, error) {
	l, err := d.readLen()
	if err != nil {
		return nil, err
	}
	bytes, err := d.ReadBytes(l)
	if err != nil {
		return nil, err
	}
	if l%2 != 0 {
		return nil, ErrInvalid
	}
	return bytes, nil
}

// ReadUTF16Units reads a length-prefixed UTF-16 string as code units. The
// units are not checked for surrogate pairing.
func (d *Decoder) ReadUTF16Units() ([]uint16, error) {
	bytes, err := d.ReadUTF16Data()
	if err != nil {
		return nil, err
	}
	units := make([]uint16, len(bytes)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(bytes[2*i:])
	}
	return units, nil
}

// ReadUTF16String reads a length-prefixed UTF-16 string. Unpaired
// surrogates yield ErrInvalid.
func (d *Decoder) ReadUTF16String() (string, error) {
	units, err := d.ReadUTF16Units()
	if err != nil {
		return "", err
	}
	if !validUTF16(units) {
		return "", ErrInvalid
	}
	return string(utf16.Decode(units)), nil
}

// ReadUTF16StringLossy reads a length-prefixed UTF-16 string, replacing
// unpaired surrogates with U+FFFD.
func (d *Decoder) ReadUTF16StringLossy() (string, error) {
	units, err := d.ReadUTF16Units()
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

const (
	surr1 = 0xd800 // first high surrogate
	surr2 = 0xdc00 // first low surrogate
	surr3 = 0xe000 // end of the surrogate range
)

func validUTF16(units []uint16) bool {
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < surr1 || u >= surr3:
		case u < surr2 && i+1 < len(units) && units[i+1] >= surr2 && units[i+1] < surr3:
			i++
		default:
			return false
		}
	}
	return true
}
