package cliconfig

import "os"

// EnvPrefix prefixes every environment variable frdsource reads.
const EnvPrefix = "FRDSOURCE_"

func env(name string) string { return os.Getenv(EnvPrefix + name) }

// ApplyEnvConfig applies FRDSOURCE_* environment variables. They override
// the config file but not flags set on the command line.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setStringsFromString("input", env("INPUTS"), &cfg.Inputs)
	s.setStringsFromString("secondary-input", env("SECONDARY_INPUTS"), &cfg.SecondaryInputs)
	s.setString("output-dir", env("OUTPUT_DIR"), &cfg.OutputDir)
	s.setString("state-dir", env("STATE_DIR"), &cfg.StateDir)
	s.setString("follow", env("FOLLOW_DIR"), &cfg.FollowDir)
	s.setString("follow-pattern", env("FOLLOW_PATTERN"), &cfg.FollowPattern)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", env("LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setUintFromString("fed-id", env("FED_ID"), 16, uint16Dst(&cfg.FEDID)); err != nil {
		return err
	}
	if err := s.setUintFromString("fed-id2", env("FED_ID2"), 16, uint16Dst(&cfg.FEDID2)); err != nil {
		return err
	}
	if err := s.setUintFromString("run-number", env("RUN_NUMBER"), 32, uint32Dst(&cfg.RunNumber)); err != nil {
		return err
	}
	if err := s.setUintFromString("max-events", env("MAX_EVENTS"), 64, uint64Dst(&cfg.MaxEvents)); err != nil {
		return err
	}

	s.setBoolFromString("verify-checksum", env("VERIFY_CHECKSUM"), &cfg.VerifyChecksum)
	s.setBoolFromString("verify-adler32", env("VERIFY_ADLER32"), &cfg.VerifyAdler32)
	s.setBoolFromString("use-l1-event-id", env("USE_L1_EVENT_ID"), &cfg.UseL1EventID)

	return nil
}
