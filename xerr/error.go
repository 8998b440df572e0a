package xerr

type Error uint16

const (
	EmptyLayout Error = iota
	InvalidHex
	MissingSize
	InvalidValue
	TrailingBytes
	UnknownValueType
	UnsupportedFormat
	UnknownCommand
)

var errorMap = map[Error]string{
	EmptyLayout:       "layout has no values",
	InvalidHex:        "invalid hex input",
	MissingSize:       "raw value needs a size",
	InvalidValue:      "invalid value",
	TrailingBytes:     "trailing bytes after last value",
	UnknownValueType:  "unknown value type",
	UnsupportedFormat: "unsupported script format",
	UnknownCommand:    "unknown command",
}

func (e Error) Error() string {
	return errorMap[e]
}
func (e Error) String() string {
	return errorMap[e]
}
