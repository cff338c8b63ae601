// Command tremorinfo analyses, synthesizes, plots and replays wrist
// trajectories.
//
// Usage:
//
//	tremorinfo [--config file.yaml] <command> [flags]
//
// Examples:
//
//	tremorinfo synth --freq 5 -o tremor.csv
//	tremorinfo analyze tremor.csv
//	tremorinfo plot tremor.csv -o tremor.png
//	tremorinfo synth --format jsonl -o frames.jsonl && tremorinfo replay frames.jsonl
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-motion/internal/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tremorinfo: ")

	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tremorinfo",
		Short: "Inspect wrist trajectories for tremor",
		Long: `tremorinfo runs the tremor analysis used by the pose tracker on recorded
or synthetic wrist trajectories.

Trajectories are CSV (x,y,timestamp_ms with an optional header) or a JSON
array of {"x","y","timestamp"} objects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSynthCmd(),
		newPlotCmd(),
		newReplayCmd(),
	)

	return rootCmd
}

// loadConfig returns the configuration named by --config, or the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if path == "" {
		return config.LoadDefaults(), nil
	}

	return config.LoadFromFile(path)
}
