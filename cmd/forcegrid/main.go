// forcegrid runs grid sliding-block puzzles headlessly.
//
// Usage:
//
//	forcegrid list                 - List available levels
//	forcegrid run <level>          - Play a level from a move script
//	forcegrid check <file>         - Validate a level file
//	forcegrid fmt <file>           - Print a level in canonical form
//	forcegrid results [level]      - Show recorded runs
//	forcegrid replay <trace>       - Re-simulate a recorded trace
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.forcegrid/config.yaml)
//	--levels <dir>   - Level directory
//	--db <path>      - Results database
//	--debug          - Log force resolution
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/forcegrid/internal/config"
	"github.com/vovakirdan/forcegrid/internal/level"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

var (
	// Global flags
	flagConfig    string
	flagLevelsDir string
	flagDBPath    string
	flagDebug     bool

	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "forcegrid",
	Short: "forcegrid - simulate grid sliding-block puzzles",
	Long: `forcegrid loads sliding-block puzzle levels and simulates them step by
step: players push blocks, blocks push each other, arrows push whatever
stands on them and slide blocks keep going until something stops them.

Available commands:
  list     - Show all levels
  run      - Play a level from a move script or a stored solution
  check    - Validate a level file
  fmt      - Print a level in canonical form
  results  - View recorded runs
  replay   - Verify a recorded trace

Examples:
  forcegrid list
  forcegrid run 01-intro --moves "r r"
  forcegrid run 02-slide --solution 0
  forcegrid check levels/03-arrow.lvl
  forcegrid results 01-intro`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Level directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log force resolution")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup loads the configuration and builds the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "forcegrid",
	})
	logger.SetLevel(cfg.LogLevel())
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return nil
}

func simulation() puzzle.Config {
	return cfg.Simulation(logger)
}

func loader() *level.Loader {
	return level.NewLoader(config.ExpandHome(cfg.Levels.Dir))
}
