package coder

type Encodable interface {
	WriteTo(*Encoder) error
}
type Decodable interface {
	ReadFrom(*Decoder) error
}
type Codable interface {
	Encodable
	Decodable
}

func Marshal(ec Encodable) ([]byte, error) {
	coder := NewEncoder()
	err := ec.WriteTo(coder)
	return coder.Bytes(), err
}

// Unmarshal decodes b into dc. Bytes left over after ReadFrom are ignored.
func Unmarshal(b []byte, dc Decodable) error {
	return dc.ReadFrom(NewDecoder(b))
}
