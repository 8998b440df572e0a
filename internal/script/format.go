package script

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"sutext.github.io/netbin/xerr"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts yaml, yml and toml in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", xerr.UnsupportedFormat, name)
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, f)
}

func Parse(data []byte, f Format) (*Script, error) {
	s := &Script{}
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", xerr.UnsupportedFormat, f)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func Marshal(s *Script, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", xerr.UnsupportedFormat, f)
	}
}
