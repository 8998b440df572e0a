package coder

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var varint32Cases = []struct {
	x     int32
	bytes []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{-12345, []byte{0xc7, 0x9f, 0xff, 0xff, 0x0f}},
	{12345, []byte{0xb9, 0x60}},
	{math.MaxInt32, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
	{math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
}

var varint64Cases = []struct {
	x     int64
	bytes []byte
}{
	{0, []byte{0x00}},
	{1, []byte{0x01}},
	{-1, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	{127, []byte{0x7f}},
	{128, []byte{0x80, 0x01}},
	{255, []byte{0xff, 0x01}},
	{256, []byte{0x80, 0x02}},
	{-12345, []byte{0xc7, 0x9f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	{12345, []byte{0xb9, 0x60}},
	{math.MaxInt64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
	{math.MinInt64, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
}

func TestVarint32Vectors(t *testing.T) {
	for _, c := range varint32Cases {
		encoder := NewEncoder()
		encoder.WriteVarint32(c.x)
		assert.Equal(t, c.bytes, encoder.Bytes(), "x = %d (%#x)", c.x, uint32(c.x))

		decoder := NewDecoder(c.bytes)
		x, err := decoder.ReadVarint32()
		require.NoError(t, err, "x = %d", c.x)
		assert.Equal(t, c.x, x)
		assert.Zero(t, decoder.Len())
	}
}

func TestVarint64Vectors(t *testing.T) {
	for _, c := range varint64Cases {
		encoder := NewEncoder()
		encoder.WriteVarint64(c.x)
		assert.Equal(t, c.bytes, encoder.Bytes(), "x = %d (%#x)", c.x, uint64(c.x))

		decoder := NewDecoder(c.bytes)
		x, err := decoder.ReadVarint64()
		require.NoError(t, err, "x = %d", c.x)
		assert.Equal(t, c.x, x)
		assert.Zero(t, decoder.Len())
	}
}

// samples walks every bit width with the values around each power of two.
func samples64() []uint64 {
	out := []uint64{0, math.MaxUint64}
	for shift := 0; shift < 64; shift++ {
		p := uint64(1) << shift
		out = append(out, p-1, p, p+1, p|p>>1, ^p)
	}
	return out
}

func minLen(bitLen int) int {
	if bitLen == 0 {
		return 1
	}
	return (bitLen + 6) / 7
}

func TestVarint32RoundTripAndMinimal(t *testing.T) {
	for _, s := range samples64() {
		x := int32(uint32(s))
		encoder := NewEncoder()
		encoder.WriteVarint32(x)
		out := encoder.Bytes()
		require.Len(t, out, minLen(bits.Len32(uint32(x))), "x = %d", x)

		got, err := NewDecoder(out).ReadVarint32()
		require.NoError(t, err)
		require.Equal(t, x, got)
	}
}

func TestVarint64RoundTripAndMinimal(t *testing.T) {
	for _, s := range samples64() {
		x := int64(s)
		encoder := NewEncoder()
		encoder.WriteVarint64(x)
		out := encoder.Bytes()
		require.Len(t, out, minLen(bits.Len64(s)), "x = %d", x)

		got, err := NewDecoder(out).ReadVarint64()
		require.NoError(t, err)
		require.Equal(t, x, got)
	}
}

func TestVarintOverflow(t *testing.T) {
	t.Run("Varint32", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x00}).ReadVarint32()
		assert.ErrorIs(t, err, ErrInvalid)

		// the fifth byte still has its continuation bit set
		_, err = NewDecoder([]byte{0xff, 0xff, 0xff, 0xff, 0xff}).ReadVarint32()
		assert.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("Varint64", func(t *testing.T) {
		in := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}
		_, err := NewDecoder(in).ReadVarint64()
		assert.ErrorIs(t, err, ErrInvalid)

		_, err = NewDecoder(in[:10]).ReadVarint64()
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestVarintTruncated(t *testing.T) {
	for _, in := range [][]byte{{}, {0x80}, {0xff, 0xff, 0xff, 0xff}} {
		_, err := NewDecoder(in).ReadVarint32()
		assert.ErrorIs(t, err, ErrNeedsMoreData, "input % x", in)
		_, err = NewDecoder(in).ReadVarint64()
		assert.ErrorIs(t, err, ErrNeedsMoreData, "input % x", in)
	}
}

func TestVarint32IgnoresSurplusBits(t *testing.T) {
	// The last group carries 4 bits; the high 3 are not validated.
	x, err := NewDecoder([]byte{0xff, 0xff, 0xff, 0xff, 0x7f}).ReadVarint32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), x)

	x, err = NewDecoder([]byte{0x80, 0x80, 0x80, 0x80, 0x70}).ReadVarint32()
	require.NoError(t, err)
	assert.Equal(t, int32(0), x)
}

func TestVarint32NonMinimalInput(t *testing.T) {
	// Padded encodings are accepted on read.
	x, err := NewDecoder([]byte{0x81, 0x80, 0x00}).ReadVarint32()
	require.NoError(t, err)
	assert.Equal(t, int32(1), x)
}
