package cliconfig

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bft-labs/frdsource/internal/domain"
)

// Default facility ids and output layout.
const (
	DefaultFEDID         = 1477
	DefaultFEDID2        = 1478
	DefaultOutputDir     = "."
	DefaultFollowPattern = "*.raw"
)

// Config holds CLI configuration for frdsource.
type Config struct {
	Inputs          []string
	SecondaryInputs []string
	OutputDir       string
	StateDir        string

	FEDID  uint16
	FEDID2 uint16

	VerifyChecksum bool
	VerifyAdler32  bool
	UseL1EventID   bool
	RunNumber      uint32
	MaxEvents      uint64

	FollowDir     string
	FollowPattern string

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputDir:      DefaultOutputDir,
		StateDir:       "", // Derived from OutputDir during Validate
		FEDID:          DefaultFEDID,
		FEDID2:         DefaultFEDID2,
		VerifyChecksum: true,
		VerifyAdler32:  true,
		RunNumber:      1,
		FollowPattern:  DefaultFollowPattern,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// HasSecondary reports whether a second facility is configured.
func (c *Config) HasSecondary() bool {
	return len(c.SecondaryInputs) > 0
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 && c.FollowDir == "" {
		return fmt.Errorf("%w: inputs or follow dir is required", domain.ErrInvalidConfig)
	}
	if c.FollowDir != "" && len(c.Inputs) > 0 {
		return fmt.Errorf("%w: inputs and follow dir are mutually exclusive", domain.ErrInvalidConfig)
	}
	if c.FollowDir != "" && c.HasSecondary() {
		return fmt.Errorf("%w: follow mode reads a single stream", domain.ErrInvalidConfig)
	}
	if c.HasSecondary() && c.FEDID == c.FEDID2 {
		return fmt.Errorf("%w: fed-id and fed-id2 must differ, both are %d", domain.ErrInvalidConfig, c.FEDID)
	}
	if c.FollowPattern == "" {
		c.FollowPattern = DefaultFollowPattern
	}
	if _, err := filepath.Match(c.FollowPattern, ""); err != nil {
		return fmt.Errorf("%w: follow pattern: %v", domain.ErrInvalidConfig, err)
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.StateDir == "" {
		c.StateDir = c.OutputDir
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setUint sets an unsigned value if positive and flag not changed. bits
// bounds the destination width.
func (s *configSetter) setUint(flag string, value uint64, bits int, dst func(uint64)) error {
	if value == 0 || s.changed[flag] {
		return nil
	}
	if bits < 64 && value >= 1<<uint(bits) {
		return fmt.Errorf("%s: %d does not fit in %d bits", flag, value, bits)
	}
	dst(value)
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setStringsFromString splits a comma-separated list.
// Used for environment variables that come as strings.
func (s *configSetter) setStringsFromString(flag, value string, dst *[]string) {
	var list []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	s.setStrings(flag, list, dst)
}

// setUintFromString parses a string to an unsigned value of the given width.
// Used for environment variables that come as strings.
func (s *configSetter) setUintFromString(flag, value string, bits int, dst func(uint64)) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	u, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	return s.setUint(flag, u, bits, dst)
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

func uint16Dst(p *uint16) func(uint64) { return func(v uint64) { *p = uint16(v) } }
func uint32Dst(p *uint32) func(uint64) { return func(v uint64) { *p = uint32(v) } }
func uint64Dst(p *uint64) func(uint64) { return func(v uint64) { *p = v } }
