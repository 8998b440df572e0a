package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sutext.github.io/netbin/internal/script"
	"sutext.github.io/netbin/xerr"
)

const valuesYAML = `values:
  - {type: u8, value: 42}
  - {type: u16, value: 258}
  - {type: string, value: "Hello, world!"}
  - {type: i32, value: -33}
`

var valuesBytes = []byte{
	0x2a, 0x02, 0x01, 0x0d,
	'H', 'e', 'l', 'l', 'o', ',', ' ', 'w', 'o', 'r', 'l', 'd', '!',
	0xdf, 0xff, 0xff, 0xff,
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEncodeToStdout(t *testing.T) {
	path := writeFile(t, "values.yaml", valuesYAML)
	var out bytes.Buffer
	require.NoError(t, run([]string{"-log-level", "error", "encode", "-script", path}, nil, &out))
	assert.Equal(t, valuesBytes, out.Bytes())

	out.Reset()
	require.NoError(t, run([]string{"-log-level", "error", "encode", "-script", path, "-hex"}, nil, &out))
	assert.True(t, strings.HasPrefix(out.String(), "00000000  2a 02 01 0d 48 65 6c 6c"), out.String())
}

func TestEncodeToFile(t *testing.T) {
	path := writeFile(t, "values.yaml", valuesYAML)
	bin := filepath.Join(t.TempDir(), "values.bin")
	require.NoError(t, run([]string{"-log-level", "error", "encode", "-script", path, "-out", bin}, nil, &bytes.Buffer{}))
	data, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, valuesBytes, data)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-log-level", "error", "decode", "-script", path, "-in", bin}, nil, &out))
	decoded, err := script.Parse(out.Bytes(), script.FormatYAML)
	require.NoError(t, err)
	require.Len(t, decoded.Values, 4)
	assert.Equal(t, "Hello, world!", decoded.Values[2].Value)
	assert.Equal(t, -33, decoded.Values[3].Value)
}

func TestEncodeHexToFile(t *testing.T) {
	path := writeFile(t, "values.yaml", valuesYAML)
	dump := filepath.Join(t.TempDir(), "values.hex")
	var out bytes.Buffer
	require.NoError(t, run([]string{"-log-level", "error", "encode", "-script", path, "-out", dump, "-hex"}, nil, &out))
	assert.Zero(t, out.Len())
	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	assert.Equal(t, hex.Dump(valuesBytes), string(data))

	cfg := writeFile(t, "netbin.yaml", "logLevel: ERROR\nhexDump: true\n")
	require.NoError(t, run([]string{"-config", cfg, "encode", "-script", path, "-out", dump}, nil, &out))
	data, err = os.ReadFile(dump)
	require.NoError(t, err)
	assert.Equal(t, hex.Dump(valuesBytes), string(data), "config hexDump applies to -out")
}

func TestDecodeFromStdin(t *testing.T) {
	path := writeFile(t, "layout.yaml", valuesYAML)
	cfg := writeFile(t, "netbin.yaml", "logLevel: error\nchunkSize: 3\n")
	var out bytes.Buffer
	err := run([]string{"-config", cfg, "decode", "-script", path, "-format", "toml"}, bytes.NewReader(valuesBytes), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[[values]]")
	assert.Contains(t, out.String(), `value = "Hello, world!"`)
	assert.Contains(t, out.String(), "value = -33")
}

func TestDecodeHexIn(t *testing.T) {
	path := writeFile(t, "layout.yaml", "values:\n  - {type: varint32}\n  - {type: string16}\n")
	var out bytes.Buffer
	err := run([]string{"-log-level", "error", "decode", "-script", path, "-hexin", "ac02 04 48 00 69 00"}, nil, &out)
	require.NoError(t, err)
	decoded, err := script.Parse(out.Bytes(), script.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []script.Value{
		{Type: script.KindVarint32, Value: 300},
		{Type: script.KindString16, Value: "Hi"},
	}, decoded.Values)
}

func TestRunErrors(t *testing.T) {
	assert.ErrorIs(t, run([]string{"-log-level", "error"}, nil, &bytes.Buffer{}), xerr.UnknownCommand)
	assert.ErrorIs(t, run([]string{"-log-level", "error", "dump"}, nil, &bytes.Buffer{}), xerr.UnknownCommand)
	assert.Error(t, run([]string{"-log-level", "loud", "encode"}, nil, &bytes.Buffer{}))
	assert.ErrorIs(t, run([]string{"-log-level", "WARN", "dump"}, nil, &bytes.Buffer{}), xerr.UnknownCommand, "upper-case level is accepted")

	path := writeFile(t, "layout.yaml", valuesYAML)
	err := run([]string{"-log-level", "error", "decode", "-script", path, "-hexin", "2a"}, nil, &bytes.Buffer{})
	assert.Error(t, err)
}
