package server

import (
	"net"
	"strconv"
	"time"

	"github.com/Sunkar2710/sigkit/internal/errors"
)

// Config holds the HTTP API settings
type Config struct {
	Addr            string        `yaml:"addr"`
	CacheSize       int           `yaml:"cache_size"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	BodyLimit       string        `yaml:"body_limit"`
	MaxBatch        int           `yaml:"max_batch"`
}

// DefaultConfig returns the built-in server defaults
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		CacheSize:       1024,
		ShutdownTimeout: 10 * time.Second,
		BodyLimit:       "1M",
		MaxBatch:        1000,
	}
}

// Validate checks the listen address and limits
func (c Config) Validate() error {
	_, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return errors.NewConfigurationError("server.addr", c.Addr).
			WithCause(err).
			WithSuggestion("use host:port, e.g. :8080 or 127.0.0.1:8080")
	}
	if err := validatePort(port); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return errors.NewConfigurationError("server.cache_size", c.CacheSize).
			WithSuggestion("use 0 to disable the cache")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.NewConfigurationError("server.shutdown_timeout", c.ShutdownTimeout)
	}
	if c.MaxBatch <= 0 {
		return errors.NewConfigurationError("server.max_batch", c.MaxBatch)
	}
	return nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.NewConfigurationError("server port", port).
			WithSuggestion("port must be a number")
	}

	// 0 asks the OS for a free port
	if portNum < 0 || portNum > 65535 {
		return errors.NewConfigurationError("server port", port).
			WithSuggestion("port must be between 0 and 65535")
	}

	return nil
}
