// Package script describes a sequence of typed values that netbin encodes
// to, or decodes from, the coder wire format.
package script

import (
	"fmt"

	"sutext.github.io/netbin/xerr"
)

// Kind names the wire type of a value.
type Kind string

const (
	KindU8       Kind = "u8"
	KindI8       Kind = "i8"
	KindU16      Kind = "u16"
	KindI16      Kind = "i16"
	KindU32      Kind = "u32"
	KindI32      Kind = "i32"
	KindU64      Kind = "u64"
	KindI64      Kind = "i64"
	KindBool     Kind = "bool"
	KindF32      Kind = "f32"
	KindF64      Kind = "f64"
	KindVarint32 Kind = "varint32"
	KindVarint64 Kind = "varint64"
	KindString   Kind = "string"   // length-prefixed UTF-8
	KindString16 Kind = "string16" // length-prefixed UTF-16
	KindBytes    Kind = "bytes"    // length-prefixed, hex in scripts
	KindRaw      Kind = "raw"      // unprefixed, hex in scripts
)

var kinds = map[Kind]bool{
	KindU8: true, KindI8: true, KindU16: true, KindI16: true,
	KindU32: true, KindI32: true, KindU64: true, KindI64: true,
	KindBool: true, KindF32: true, KindF64: true,
	KindVarint32: true, KindVarint64: true,
	KindString: true, KindString16: true, KindBytes: true, KindRaw: true,
}

func (k Kind) Valid() bool {
	return kinds[k]
}

// Value is one entry of a script. Value holds whatever the YAML or TOML
// decoder produced (int, int64, uint64, float64, string or bool). Size is
// only used by raw values when decoding.
type Value struct {
	Type  Kind `yaml:"type" toml:"type"`
	Value any  `yaml:"value" toml:"value"`
	Size  int  `yaml:"size,omitempty" toml:"size,omitempty"`
}

type Script struct {
	Values []Value `yaml:"values" toml:"values"`
}

// Validate checks that the script is not empty and that every type is known.
func (s *Script) Validate() error {
	if len(s.Values) == 0 {
		return xerr.EmptyLayout
	}
	for i, v := range s.Values {
		if !v.Type.Valid() {
			return fmt.Errorf("value %d: %w: %q", i, xerr.UnknownValueType, v.Type)
		}
		if v.Size < 0 {
			return fmt.Errorf("value %d: %w: negative size %d", i, xerr.InvalidValue, v.Size)
		}
	}
	return nil
}
