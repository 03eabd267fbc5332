package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/frdsource/internal/cliconfig"
	"github.com/bft-labs/frdsource/pkg/frdsource"
	"github.com/bft-labs/frdsource/pkg/log"
)

func newConvertCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert input files to per-facility FED frame files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			logger, err := cfg.NewLogger()
			if err != nil {
				return err
			}
			logger.Info("configuration",
				log.Strings("inputs", cfg.Inputs),
				log.Strings("secondary_inputs", cfg.SecondaryInputs),
				log.String("output_dir", cfg.OutputDir),
				log.String("state_dir", cfg.StateDir),
				log.Uint16("fed_id", cfg.FEDID),
				log.Uint16("fed_id2", cfg.FEDID2),
				log.Bool("verify_checksum", cfg.VerifyChecksum),
				log.Bool("verify_adler32", cfg.VerifyAdler32),
				log.Bool("use_l1_event_id", cfg.UseL1EventID),
				log.String("follow_dir", cfg.FollowDir),
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			convCfg := frdsource.ConvertConfig{
				Config: frdsource.Config{
					Inputs:          cfg.Inputs,
					SecondaryInputs: cfg.SecondaryInputs,
					FEDID:           cfg.FEDID,
					FEDID2:          cfg.FEDID2,
					VerifyChecksum:  cfg.VerifyChecksum,
					VerifyAdler32:   cfg.VerifyAdler32,
					UseL1EventID:    cfg.UseL1EventID,
					RunNumber:       cfg.RunNumber,
				},
				OutputDir: cfg.OutputDir,
				StateDir:  cfg.StateDir,
				MaxEvents: cfg.MaxEvents,
			}

			var p frdsource.Progress
			if cfg.FollowDir != "" {
				p, err = frdsource.Follow(ctx, convCfg, cfg.FollowDir, cfg.FollowPattern, frdsource.WithLogger(logger))
			} else {
				p, err = frdsource.Convert(ctx, convCfg, frdsource.WithLogger(logger))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %d events from %d files\n", p.Events, len(p.Files))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.frdsource/config.toml)")
	f.StringArrayVar(&cfg.Inputs, "input", nil, "primary input file, repeatable; file: prefix allowed")
	f.StringArrayVar(&cfg.SecondaryInputs, "secondary-input", nil, "secondary input file, repeatable; enables the second facility")
	f.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for fed<ID>.raw outputs")
	f.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for status.json (defaults to output-dir)")
	f.Uint16Var(&cfg.FEDID, "fed-id", cfg.FEDID, "facility id of the primary stream")
	f.Uint16Var(&cfg.FEDID2, "fed-id2", cfg.FEDID2, "facility id of the secondary stream")
	f.BoolVar(&cfg.VerifyChecksum, "verify-checksum", cfg.VerifyChecksum, "verify CRC32C of v5+ records")
	f.BoolVar(&cfg.VerifyAdler32, "verify-adler32", cfg.VerifyAdler32, "verify Adler-32 of v3/v4 records")
	f.BoolVar(&cfg.UseL1EventID, "use-l1-event-id", cfg.UseL1EventID, "take run/lumi/event from the records")
	f.Uint32Var(&cfg.RunNumber, "run-number", cfg.RunNumber, "run number for sequential event ids")
	f.Uint64Var(&cfg.MaxEvents, "max-events", cfg.MaxEvents, "stop after this many events (0: no limit)")
	f.StringVar(&cfg.FollowDir, "follow", cfg.FollowDir, "convert files as they appear in this directory until interrupted")
	f.StringVar(&cfg.FollowPattern, "follow-pattern", cfg.FollowPattern, "file name pattern for --follow")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console or json")
	return cmd
}

// loadConfig applies the config file, then FRDSOURCE_* variables, without
// overriding flags set on the command line, and validates the result.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	} else if cfgPath != "" {
		return fmt.Errorf("config file %s: %w", cfgPath, os.ErrNotExist)
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}
