// Package contract holds the validated runtime configuration, the source
// mapping, and shared helpers used across orgviz.
package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/orgviz/orgviz/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultDataDir     = "data"
	DefaultOutputDir   = "output"
)

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	PI          string // Normalized, e.g. "PI-10"
	SourcePath  string // Local .grist archive; empty means resolve from DataDir/API
	UseAPI      bool
	DataDir     string
	OutputDir   string
	Mapping     *Mapping
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	UseColors   bool
	OpenFiles   bool
	LLMEnabled  bool
	Width       int // Terminal width override (0 = auto-detect)
}

// Clone returns a copy of the config for per-call overrides. The mapping
// pointer is shared; mappings are read-only after loading.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	PIStr      string `mapstructure:"pi"`
	Source     string `mapstructure:"source"`
	API        bool   `mapstructure:"api"`
	DataDir    string `mapstructure:"data-dir"`
	OutputDir  string `mapstructure:"output-dir"`
	MappingStr string `mapstructure:"mapping"`
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Color      string `mapstructure:"color"`
	Open       bool   `mapstructure:"open"`
	LLM        bool   `mapstructure:"llm"`
	Width      int    `mapstructure:"width"`
}

var piPattern = regexp.MustCompile(`(\d+)`)

// NormalizePI canonicalizes a PI label: "PI-10", "pi10" and "10" all
// normalize to "PI-10". An input without a number is a malformed value.
func NormalizePI(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", &MalformedValueError{Field: "pi", Value: raw, Reason: "missing PI label (expected e.g. PI-10 or 10)"}
	}
	m := piPattern.FindString(s)
	if m == "" {
		return "", &MalformedValueError{Field: "pi", Value: raw, Reason: "no increment number found"}
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return "", &MalformedValueError{Field: "pi", Value: raw, Reason: "increment number does not parse"}
	}
	return fmt.Sprintf("PI-%d", n), nil
}

// NormalizePIValue is the lenient variant used on feature rows: it returns
// an empty string instead of an error so the caller can record a
// data-quality note and treat the feature as non-matching.
func NormalizePIValue(raw any) string {
	s := strings.TrimSpace(fmt.Sprint(raw))
	if s == "" || raw == nil {
		return ""
	}
	pi, err := NormalizePI(s)
	if err != nil {
		return ""
	}
	return pi
}

// ProcessAndValidate populates cfg from the raw input, normalizing and
// validating every field. It loads the mapping file (or the built-in
// defaults) as part of validation.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	pi, err := NormalizePI(input.PIStr)
	if err != nil {
		return err
	}
	cfg.PI = pi

	cfg.SourcePath = strings.TrimSpace(input.Source)
	cfg.UseAPI = input.API

	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	mapping, err := LoadMapping(input.MappingStr)
	if err != nil {
		return fmt.Errorf("invalid mapping: %w", err)
	}
	cfg.Mapping = mapping

	cfg.ResultLimit = input.Limit
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if cfg.ResultLimit > MaxResultLimit {
		cfg.ResultLimit = MaxResultLimit
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 {
		cfg.Precision = DefaultPrecision
	}

	out := schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if out == "" {
		out = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[out]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv or json", input.Output)
	}
	cfg.Output = out
	cfg.OutputFile = input.OutputFile

	cfg.UseColors = parseBoolish(input.Color, true)
	cfg.OpenFiles = input.Open
	cfg.LLMEnabled = input.LLM
	cfg.Width = input.Width

	return nil
}

// parseBoolish accepts yes/no/true/false/1/0 with a default for anything else.
func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
