// Package config provides configuration management for the csvql CLI.
package config

import (
	"log/slog"
	"time"
)

// Config holds all CLI configuration options.
type Config struct {
	DataDir   string       `koanf:"data_dir"`
	Delimiter string       `koanf:"delimiter"`
	Output    string       `koanf:"output"`
	Verbose   bool         `koanf:"verbose"`
	LogLevel  slog.Level   `koanf:"log_level"`
	Server    ServerConfig `koanf:"server"`

	// ProjectRoot is the directory relative paths resolve against: the
	// directory of the config file, or the working directory.
	ProjectRoot string `koanf:"-"`
}

// ServerConfig holds configuration for `csvql serve`.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	QueryTimeout      time.Duration `koanf:"query_timeout"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// Default configuration values.
const (
	DefaultDataDir           = "."
	DefaultDelimiter         = ","
	DefaultOutput            = OutputTable
	DefaultLogLevel          = "info"
	DefaultServerAddr        = "127.0.0.1:8080"
	DefaultReadHeaderTimeout = "10s"
	DefaultQueryTimeout      = "30s"
	DefaultMaxBodyBytes      = 1 << 20
)

// Output formats.
const (
	OutputTable    = "table"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputCSV      = "csv"
	OutputMarkdown = "md"
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{OutputTable, OutputJSON, OutputYAML, OutputCSV, OutputMarkdown}

// configFileNames are searched for, in order, in each candidate directory.
var configFileNames = []string{"csvql.yaml", "csvql.yml"}

// defaults returns the lowest configuration layer.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data_dir":                   DefaultDataDir,
		"delimiter":                  DefaultDelimiter,
		"output":                     DefaultOutput,
		"verbose":                    false,
		"log_level":                  DefaultLogLevel,
		"server.addr":                DefaultServerAddr,
		"server.read_header_timeout": DefaultReadHeaderTimeout,
		"server.query_timeout":       DefaultQueryTimeout,
		"server.max_body_bytes":      DefaultMaxBodyBytes,
	}
}

// flagKeys maps CLI flag names to config keys. Flags not listed here are
// command options and never reach the config.
var flagKeys = map[string]string{
	"data-dir":      "data_dir",
	"delimiter":     "delimiter",
	"verbose":       "verbose",
	"log-level":     "log_level",
	"format":        "output",
	"addr":          "server.addr",
	"query-timeout": "server.query_timeout",
}
