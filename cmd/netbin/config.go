package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sutext.github.io/netbin/xlog"
)

type config struct {
	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
	ChunkSize int    `yaml:"chunkSize"` // stdin read size for decode
	HexDump   bool   `yaml:"hexDump"`   // encode prints a hex dump instead of raw bytes
}

func defaultConfig() *config {
	return &config{
		LogLevel:  "info",
		LogFormat: "text",
		ChunkSize: 4096,
	}
}

func readConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse yaml over the defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("invalid chunk size: %d", c.ChunkSize)
	}
	return nil
}

func (c *config) Level() slog.Level {
	return xlog.ParseLevel(c.LogLevel)
}

func (c *config) logger() *xlog.Logger {
	if c.LogFormat == "json" {
		return xlog.NewJSON(c.Level())
	}
	return xlog.NewText(c.Level())
}
