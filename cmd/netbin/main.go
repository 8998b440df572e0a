// Command netbin encodes value scripts into the BinaryWriter wire format and
// decodes such bytes back into scripts.
//
//	netbin [-config netbin.yaml] [-log-level debug] encode -script values.yaml [-out data.bin] [-hex]
//	netbin [-config netbin.yaml] decode -script layout.yaml [-in data.bin | -hexin "2a 02 01"] [-format toml]
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"sutext.github.io/netbin/coder"
	"sutext.github.io/netbin/internal/script"
	"sutext.github.io/netbin/xerr"
	"sutext.github.io/netbin/xlog"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		xlog.Error("netbin failed", xlog.Err(err))
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("netbin", flag.ContinueOnError)
	configFile := fs.String("config", "", "config file path")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	logFormat := fs.String("log-format", "", "text or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := readConfig(*configFile)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	xlog.SetDefault(cfg.logger())

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: expected encode or decode", xerr.UnknownCommand)
	}
	switch rest[0] {
	case "encode":
		return runEncode(cfg, rest[1:], stdout)
	case "decode":
		return runDecode(cfg, rest[1:], stdin, stdout)
	default:
		return fmt.Errorf("%w: %q", xerr.UnknownCommand, rest[0])
	}
}

func runEncode(cfg *config, args []string, stdout io.Writer) (err error) {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	scriptFile := fs.String("script", "", "values to encode (.yaml, .yml or .toml)")
	outFile := fs.String("out", "", "write to this file instead of stdout")
	hexDump := fs.Bool("hex", cfg.HexDump, "write a hex dump instead of raw bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, err := script.Load(*scriptFile)
	if err != nil {
		return err
	}
	w := stdout
	if *outFile != "" {
		f, cerr := os.Create(*outFile)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if *hexDump {
		e := coder.NewEncoder()
		if err := script.Encode(s, e); err != nil {
			return err
		}
		xlog.Debug("encoded script", xlog.Int("bytes", len(e.Bytes())), xlog.Int("values", len(s.Values)))
		_, err = io.WriteString(w, hex.Dump(e.Bytes()))
		return err
	}
	sink := coder.NewStreamSink(w)
	if err := script.Encode(s, coder.Wrap(sink)); err != nil {
		return err
	}
	if err := sink.Err(); err != nil {
		return err
	}
	xlog.Info("encoded script", xlog.String("out", *outFile), xlog.Int64("bytes", sink.Written()), xlog.Int("values", len(s.Values)))
	return nil
}

func runDecode(cfg *config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	scriptFile := fs.String("script", "", "layout to decode (.yaml, .yml or .toml)")
	inFile := fs.String("in", "", "read bytes from this file")
	hexIn := fs.String("hexin", "", "read bytes from this hex string")
	format := fs.String("format", "", "output format, yaml or toml (default: the layout's)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	layout, err := script.Load(*scriptFile)
	if err != nil {
		return err
	}
	f, err := script.FormatOf(*scriptFile)
	if err != nil {
		return err
	}
	if *format != "" {
		if f, err = script.ParseFormat(*format); err != nil {
			return err
		}
	}

	var out *script.Script
	switch {
	case *hexIn != "":
		data, err := script.ParseHex(*hexIn)
		if err != nil {
			return err
		}
		out, err = script.Decode(layout, coder.NewDecoder(data))
		if err != nil {
			return err
		}
	case *inFile != "":
		data, err := os.ReadFile(*inFile)
		if err != nil {
			return err
		}
		out, err = script.Decode(layout, coder.NewDecoder(data))
		if err != nil {
			return err
		}
	default:
		out, err = script.DecodeStream(stdin, layout, cfg.ChunkSize)
		if err != nil {
			return err
		}
	}
	text, err := script.Marshal(out, f)
	if err != nil {
		return err
	}
	_, err = stdout.Write(text)
	return err
}
