package coder

// DecodeError classifies why a Decoder read failed.
type DecodeError uint8

const (
	// ErrNeedsMoreData means the remaining input ended before the value did.
	// The value may still be well-formed once more bytes are available.
	ErrNeedsMoreData DecodeError = 1
	// ErrInvalid means the input is long enough but malformed.
	ErrInvalid DecodeError = 2
)

func (e DecodeError) Error() string {
	switch e {
	case ErrNeedsMoreData:
		return "coder: needs more data"
	case ErrInvalid:
		return "coder: invalid data"
	default:
		return "coder: unknown decode error"
	}
}

// EncodeError classifies why an Encoder write failed.
type EncodeError uint8

// ErrCannotEncode is returned when a byte length does not fit the
// signed 32-bit length prefix.
const ErrCannotEncode EncodeError = 1

func (e EncodeError) Error() string {
	switch e {
	case ErrCannotEncode:
		return "coder: data cannot be encoded"
	default:
		return "coder: unknown encode error"
	}
}
