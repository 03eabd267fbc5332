package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/frdsource/internal/cliconfig"
)

const longHelp = `Read FRD event streams and re-encode every record as an AMC13/CDF FED frame.

Highlights:
  - Event header versions 2 to 6, with or without a file header.
  - CRC32C and Adler-32 payload verification.
  - One or two facilities read in lockstep, one fed<ID>.raw output each.
  - Configure via file ($HOME/.frdsource/config.toml), FRDSOURCE_* env, or flags.`

var exampleUsage = strings.TrimSpace(`
  frdsource convert --input run360000_ls0001.raw --input run360000_ls0002.raw --output-dir out
  frdsource convert --input a.raw --secondary-input b.raw --use-l1-event-id
  frdsource convert --follow /fff/ramdisk/run360000 --output-dir out
  frdsource inspect run360000_ls0001.raw
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "frdsource",
		Short:         "Convert FRD event streams to FED frames",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newConvertCmd(), newInspectCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := cliconfig.Logger()
		log.Error().Err(err).Msg("frdsource")
		os.Exit(1)
	}
}
