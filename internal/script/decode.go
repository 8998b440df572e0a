package script

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"

	"sutext.github.io/netbin/coder"
	"sutext.github.io/netbin/xerr"
	"sutext.github.io/netbin/xlog"
)

// Decode reads one value per layout entry from d. Input left over after
// the last value is an error.
func Decode(layout *Script, d *coder.Decoder) (*Script, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	total := d.Len()
	out := &Script{Values: make([]Value, 0, len(layout.Values))}
	for i, l := range layout.Values {
		offset := total - d.Len()
		v, err := readValue(d, l)
		if err != nil {
			return nil, fmt.Errorf("value %d (%s) at offset %d: %w", i, l.Type, offset, err)
		}
		xlog.Debug("decoded value", xlog.Index(i), xlog.Kind(string(l.Type)), xlog.Offset(offset))
		out.Values = append(out.Values, v)
	}
	if n := d.Len(); n > 0 {
		return nil, fmt.Errorf("%w: %d", xerr.TrailingBytes, n)
	}
	return out, nil
}

// DecodeStream decodes layout from r, reading chunk bytes at a time. A value
// that fails with coder.ErrNeedsMoreData is retried from the position saved
// before it once more input has arrived.
func DecodeStream(r io.Reader, layout *Script, chunk int) (*Script, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if chunk <= 0 {
		chunk = 4096
	}
	var (
		buf    []byte // unread input; the start of the next value
		tmp    = make([]byte, chunk)
		eof    bool
		offset int
	)
	fill := func() error {
		n, err := r.Read(tmp)
		buf = append(buf, tmp[:n]...)
		if errors.Is(err, io.EOF) {
			eof = true
			return nil
		}
		return err
	}
	out := &Script{Values: make([]Value, 0, len(layout.Values))}
	for i := 0; i < len(layout.Values); {
		d := coder.NewDecoder(buf)
		v, err := readValue(d, layout.Values[i])
		switch {
		case err == nil:
			offset += len(buf) - d.Len()
			buf = d.Remaining()
			out.Values = append(out.Values, v)
			i++
		case errors.Is(err, coder.ErrNeedsMoreData) && !eof:
			xlog.Debug("need more data", xlog.Index(i), xlog.Offset(offset), xlog.Int("buffered", len(buf)))
			if err := fill(); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("value %d (%s) at offset %d: %w", i, layout.Values[i].Type, offset, err)
		}
	}
	for len(buf) == 0 && !eof {
		if err := fill(); err != nil {
			return nil, err
		}
	}
	if len(buf) > 0 {
		return nil, fmt.Errorf("%w: after offset %d", xerr.TrailingBytes, offset)
	}
	return out, nil
}

func readValue(d *coder.Decoder, l Value) (Value, error) {
	v := Value{Type: l.Type}
	var err error
	switch l.Type {
	case KindU8:
		var n uint8
		n, err = d.ReadUInt8()
		v.Value = int64(n)
	case KindI8:
		var n int8
		n, err = d.ReadInt8()
		v.Value = int64(n)
	case KindU16:
		var n uint16
		n, err = d.ReadUInt16()
		v.Value = int64(n)
	case KindI16:
		var n int16
		n, err = d.ReadInt16()
		v.Value = int64(n)
	case KindU32:
		var n uint32
		n, err = d.ReadUInt32()
		v.Value = int64(n)
	case KindI32:
		var n int32
		n, err = d.ReadInt32()
		v.Value = int64(n)
	case KindU64:
		var n uint64
		n, err = d.ReadUInt64()
		v.Value = uintValue(n)
	case KindI64:
		v.Value, err = d.ReadInt64()
	case KindVarint32:
		var n int32
		n, err = d.ReadVarint32()
		v.Value = int64(n)
	case KindVarint64:
		v.Value, err = d.ReadVarint64()
	case KindBool:
		v.Value, err = d.ReadBool()
	case KindF32:
		var f float32
		f, err = d.ReadFloat32()
		v.Value = float64(f)
	case KindF64:
		v.Value, err = d.ReadFloat64()
	case KindString:
		v.Value, err = d.ReadString()
	case KindString16:
		v.Value, err = d.ReadUTF16String()
	case KindBytes:
		var b []byte
		b, err = d.ReadData()
		v.Value = hex.EncodeToString(b)
	case KindRaw:
		if l.Size <= 0 {
			return v, xerr.MissingSize
		}
		var b []byte
		b, err = d.ReadBytes(l.Size)
		v.Value = hex.EncodeToString(b)
		v.Size = l.Size
	default:
		return v, xerr.UnknownValueType
	}
	return v, err
}

// uintValue keeps u64 values that TOML cannot hold as integers in a
// decimal string.
func uintValue(n uint64) any {
	if n > math.MaxInt64 {
		return fmt.Sprint(n)
	}
	return int64(n)
}
