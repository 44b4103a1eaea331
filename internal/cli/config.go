package cli

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Sunkar2710/sigkit/internal/errors"
	"github.com/Sunkar2710/sigkit/internal/server"
	"github.com/Sunkar2710/sigkit/internal/signature"
)

// Processing modes
const (
	ModeParse = "parse"
	ModeSplit = "split"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultEnvFile is read when present and no other env file is given
const DefaultEnvFile = ".env"

// Config holds the configuration for the CLI.
// Precedence, lowest first: defaults, YAML file, environment, flags.
type Config struct {
	// Mode selects signature parsing or delimiter splitting
	Mode string `yaml:"mode"`

	// Engine selects the signature engine (scanner or grammar)
	Engine string `yaml:"engine"`

	// Delimiters are the delimiter strings for split mode; every rune counts
	Delimiters []string `yaml:"delimiters"`

	// Format is the record output format
	Format string `yaml:"format"`

	// FailFast stops at the first failing line
	FailFast bool `yaml:"fail_fast"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"verbose"`

	// Quiet only shows errors
	Quiet bool `yaml:"quiet"`

	// Serve starts the HTTP API instead of processing inputs
	Serve bool `yaml:"serve"`

	// Server configures the HTTP API
	Server server.Config `yaml:"server"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:       ModeParse,
		Engine:     signature.ScannerEngine,
		Delimiters: []string{" "},
		Format:     FormatText,
		Server:     server.DefaultConfig(),
	}
}

// LoadConfigFile overlays the YAML file at path onto cfg
func LoadConfigFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WrapFileSystemError("open", path, err)
	}
	defer f.Close()

	if err := DecodeConfig(cfg, f); err != nil {
		return errors.WrapConfigurationError(path, "decode", err)
	}
	return nil
}

// DecodeConfig overlays YAML from r onto cfg. Keys absent from the document keep their values.
func DecodeConfig(cfg *Config, r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadEnv loads path into the process environment with godotenv, then overlays SIGKIT_* variables.
// A missing default env file is not an error.
func LoadEnv(cfg *Config, path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !(path == DefaultEnvFile && stderrors.Is(err, fs.ErrNotExist)) {
			return errors.WrapConfigurationError(path, "load", err)
		}
	}
	return ApplyEnv(cfg, os.Getenv)
}

// ApplyEnv overlays SIGKIT_* values read through getenv onto cfg
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("SIGKIT_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := getenv("SIGKIT_ENGINE"); v != "" {
		cfg.Engine = v
	}
	if v := getenv("SIGKIT_DELIMITERS"); v != "" {
		cfg.Delimiters = []string{v}
	}
	if v := getenv("SIGKIT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := getenv("SIGKIT_FAIL_FAST"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewConfigurationError("SIGKIT_FAIL_FAST", v, "true", "false")
		}
		cfg.FailFast = b
	}
	if v := getenv("SIGKIT_SERVE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewConfigurationError("SIGKIT_SERVE", v, "true", "false")
		}
		cfg.Serve = b
	}
	if v := getenv("SIGKIT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("SIGKIT_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewConfigurationError("SIGKIT_CACHE_SIZE", v).WithCause(err)
		}
		cfg.Server.CacheSize = n
	}
	return nil
}

// Validate checks every enumerated setting
func (c *Config) Validate() error {
	if !slices.Contains([]string{ModeParse, ModeSplit}, c.Mode) {
		return errors.NewConfigurationError("mode", c.Mode, ModeParse, ModeSplit)
	}
	if !slices.Contains(signature.EngineKinds(), c.Engine) {
		return errors.NewConfigurationError("engine", c.Engine, signature.EngineKinds()...)
	}
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, c.Format) {
		return errors.NewConfigurationError("format", c.Format, FormatText, FormatJSON, FormatYAML)
	}
	if c.Verbose && c.Quiet {
		return errors.New(errors.ConfigurationErrorCode, "verbose and quiet are mutually exclusive")
	}
	if c.Serve {
		if err := c.Server.Validate(); err != nil {
			return err
		}
	}
	return nil
}
