package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with optional booleans so that a file can turn
// a default-on check off.
type FileConfig struct {
	Inputs          []string `toml:"inputs"`
	SecondaryInputs []string `toml:"secondary_inputs"`
	OutputDir       string   `toml:"output_dir"`
	StateDir        string   `toml:"state_dir"`
	FEDID           uint64   `toml:"fed_id"`
	FEDID2          uint64   `toml:"fed_id2"`
	VerifyChecksum  *bool    `toml:"verify_checksum"`
	VerifyAdler32   *bool    `toml:"verify_adler32"`
	UseL1EventID    *bool    `toml:"use_l1_event_id"`
	RunNumber       uint64   `toml:"run_number"`
	MaxEvents       uint64   `toml:"max_events"`
	FollowDir       string   `toml:"follow_dir"`
	FollowPattern   string   `toml:"follow_pattern"`
	LogLevel        string   `toml:"log_level"`
	LogFormat       string   `toml:"log_format"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.frdsource/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".frdsource", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setStrings("input", fc.Inputs, &cfg.Inputs)
	s.setStrings("secondary-input", fc.SecondaryInputs, &cfg.SecondaryInputs)
	s.setString("output-dir", fc.OutputDir, &cfg.OutputDir)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("follow", fc.FollowDir, &cfg.FollowDir)
	s.setString("follow-pattern", fc.FollowPattern, &cfg.FollowPattern)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	if err := s.setUint("fed-id", fc.FEDID, 16, uint16Dst(&cfg.FEDID)); err != nil {
		return err
	}
	if err := s.setUint("fed-id2", fc.FEDID2, 16, uint16Dst(&cfg.FEDID2)); err != nil {
		return err
	}
	if err := s.setUint("run-number", fc.RunNumber, 32, uint32Dst(&cfg.RunNumber)); err != nil {
		return err
	}
	if err := s.setUint("max-events", fc.MaxEvents, 64, uint64Dst(&cfg.MaxEvents)); err != nil {
		return err
	}

	s.setBool("verify-checksum", fc.VerifyChecksum, &cfg.VerifyChecksum)
	s.setBool("verify-adler32", fc.VerifyAdler32, &cfg.VerifyAdler32)
	s.setBool("use-l1-event-id", fc.UseL1EventID, &cfg.UseL1EventID)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
