package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks value ranges that the rest of the program relies on.
func (c *Config) Validate() error {
	s := c.Server
	if s.MaxLimit < 1 {
		return fmt.Errorf("%w: server.max_limit must be >= 1, got %d", ErrInvalid, s.MaxLimit)
	}
	if s.MinPrefix < 0 || s.MaxPrefix < s.MinPrefix {
		return fmt.Errorf("%w: server prefix bounds [%d, %d]", ErrInvalid, s.MinPrefix, s.MaxPrefix)
	}
	if c.Dict.MaxWords < 0 || c.Dict.ChunkSize < 0 || c.Dict.MaxLines < 0 {
		return fmt.Errorf("%w: dict sizes must not be negative", ErrInvalid)
	}
	if c.Suggest.CacheSize < 0 || c.Suggest.MaxCorrections < 0 {
		return fmt.Errorf("%w: suggest sizes must not be negative", ErrInvalid)
	}
	if c.CLI.DefaultMinLen < 0 || c.CLI.DefaultMaxLen < c.CLI.DefaultMinLen {
		return fmt.Errorf("%w: cli prefix bounds [%d, %d]", ErrInvalid, c.CLI.DefaultMinLen, c.CLI.DefaultMaxLen)
	}
	return nil
}
