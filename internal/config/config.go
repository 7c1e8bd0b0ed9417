// Package config loads emberc configuration files.
//
// A configuration file is TOML:
//
//	[parser]
//	max-errors = 0
//	max-depth = 1000
//
//	[resolver]
//	extended-primitives = false
//
//	[output]
//	format = "text"
//	log-level = "error"
//	color = true
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FileName is the name of the configuration file looked up next to a
// source file.
const FileName = "emberc.toml"

// Config is the complete configuration.
type Config struct {
	Parser   Parser   `toml:"parser"`
	Resolver Resolver `toml:"resolver"`
	Output   Output   `toml:"output"`
}

// Parser configures the parser.
type Parser struct {
	MaxErrors int `toml:"max-errors"` // 0 means unlimited
	MaxDepth  int `toml:"max-depth" default:"1000"`
}

// Resolver configures the resolver.
type Resolver struct {
	ExtendedPrimitives bool `toml:"extended-primitives"`
}

// Output configures what emberc prints and how.
type Output struct {
	Format   string `toml:"format" default:"text"`
	LogLevel string `toml:"log-level" default:"error"`
	Color    bool   `toml:"color" default:"true"`
}

// Output formats.
var Formats = []string{"text", "json", "yaml"}

// Log levels, from quietest to loudest.
var LogLevels = []string{"silent", "error", "warn", "verbose"}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Parser: Parser{
			MaxDepth: 1000,
		},
		Output: Output{
			Format:   "text",
			LogLevel: "error",
			Color:    true,
		},
	}
}

// Parse decodes and validates a configuration. Missing keys keep their
// default values.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	c, err := Parse(buff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find returns the path of the configuration file in dir, or "" if
// there is none.
func Find(dir string) string {
	path := filepath.Join(dir, FileName)
	finfo, err := os.Stat(path)
	if err != nil || finfo.IsDir() {
		return ""
	}
	return path
}

// Validate checks that every setting has a legal value.
func (c *Config) Validate() error {
	if c.Parser.MaxErrors < 0 {
		return fmt.Errorf("parser.max-errors must not be negative, got %d", c.Parser.MaxErrors)
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max-depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if !contains(Formats, c.Output.Format) {
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if !contains(LogLevels, c.Output.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.Output.LogLevel)
	}
	return nil
}

// Encode returns c as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
