package script

import (
	"fmt"
	"math"

	"sutext.github.io/netbin/coder"
	"sutext.github.io/netbin/xerr"
	"sutext.github.io/netbin/xlog"
)

// Encode writes every value of s to e in order.
func Encode(s *Script, e *coder.Encoder) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for i, v := range s.Values {
		if err := writeValue(e, v); err != nil {
			return fmt.Errorf("value %d (%s): %w", i, v.Type, err)
		}
		xlog.Debug("encoded value", xlog.Index(i), xlog.Kind(string(v.Type)))
	}
	return nil
}

func writeValue(e *coder.Encoder, v Value) error {
	switch v.Type {
	case KindU8, KindU16, KindU32, KindU64:
		n, err := toUint(v.Value, kindBits(v.Type))
		if err != nil {
			return err
		}
		switch v.Type {
		case KindU8:
			e.WriteUInt8(uint8(n))
		case KindU16:
			e.WriteUInt16(uint16(n))
		case KindU32:
			e.WriteUInt32(uint32(n))
		default:
			e.WriteUInt64(n)
		}
	case KindI8, KindI16, KindI32, KindI64, KindVarint32, KindVarint64:
		n, err := toInt(v.Value, kindBits(v.Type))
		if err != nil {
			return err
		}
		switch v.Type {
		case KindI8:
			e.WriteInt8(int8(n))
		case KindI16:
			e.WriteInt16(int16(n))
		case KindI32:
			e.WriteInt32(int32(n))
		case KindI64:
			e.WriteInt64(n)
		case KindVarint32:
			e.WriteVarint32(int32(n))
		default:
			e.WriteVarint64(n)
		}
	case KindBool:
		b, err := toBool(v.Value)
		if err != nil {
			return err
		}
		e.WriteBool(b)
	case KindF32:
		f, err := toFloat(v.Value)
		if err != nil {
			return err
		}
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return invalid(v.Value, "out of range for f32")
		}
		e.WriteFloat32(float32(f))
	case KindF64:
		f, err := toFloat(v.Value)
		if err != nil {
			return err
		}
		e.WriteFloat64(f)
	case KindString, KindString16:
		s, err := toString(v.Value)
		if err != nil {
			return err
		}
		if v.Type == KindString {
			return e.WriteString(s)
		}
		return e.WriteUTF16String(s)
	case KindBytes, KindRaw:
		b, err := toHex(v.Value)
		if err != nil {
			return err
		}
		if v.Type == KindBytes {
			return e.WriteData(b)
		}
		if v.Size > 0 && v.Size != len(b) {
			return invalid(v.Value, "has %d bytes, size is %d", len(b), v.Size)
		}
		e.WriteBytes(b)
	default:
		return xerr.UnknownValueType
	}
	return nil
}

func kindBits(k Kind) int {
	switch k {
	case KindU8, KindI8:
		return 8
	case KindU16, KindI16:
		return 16
	case KindU32, KindI32, KindVarint32:
		return 32
	default:
		return 64
	}
}
