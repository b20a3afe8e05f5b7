package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forcegrid/internal/config"
	"github.com/vovakirdan/forcegrid/internal/trace"
)

var flagReplayAll bool

var replayCmd = &cobra.Command{
	Use:   "replay [trace...]",
	Short: "Re-simulate recorded traces",
	Long: `Replay traces written by 'forcegrid run --trace' from their recorded
level and inputs, and check that every frame ends in the same state.

Examples:
  forcegrid replay ~/.forcegrid/traces/01-intro-<run>.jsonl.zst
  forcegrid replay --all`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayAll, "all", false, "Replay every trace in the trace directory")
}

func runReplay(cmd *cobra.Command, args []string) error {
	paths := args
	if flagReplayAll {
		found, err := trace.List(config.ExpandHome(cfg.Trace.Dir))
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no traces given")
	}

	failed := 0
	for _, p := range paths {
		n, err := trace.Verify(p, simulation())
		if err != nil {
			failed++
			logger.Error("replay failed", "trace", p, "frames", n, "error", err)
			continue
		}
		fmt.Printf("ok  %s (%d frames)\n", p, n)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d traces failed", failed, len(paths))
	}
	return nil
}
