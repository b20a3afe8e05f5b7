package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forcegrid/internal/config"
	"github.com/vovakirdan/forcegrid/internal/level"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
	"github.com/vovakirdan/forcegrid/internal/storage"
	"github.com/vovakirdan/forcegrid/internal/trace"
)

var (
	flagMoves      string
	flagSolution   int
	flagSpeed      int
	flagIdleSteps  int
	flagTrace      bool
	flagNoSave     bool
	flagShowFrames bool
)

var runCmd = &cobra.Command{
	Use:   "run <level>",
	Short: "Play a level from a move script",
	Long: `Load a level by ID or file path and feed it one frame per move token.

Move tokens:
  l u r d   - Push every player left, up, right or down
  ul, rd..  - Several directions in the same frame
  .         - An idle frame

After the script the level keeps running idle frames until it is won or
--steps frames have passed, since blocks may still be sliding.

Examples:
  forcegrid run 01-intro --moves "r r"
  forcegrid run 02-slide --solution 0
  forcegrid run ./my-level.lvl --moves "d d . r" --frames
  forcegrid run 01-intro --moves "r r" --trace`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagMoves, "moves", "", "Move script, one token per frame")
	runCmd.Flags().IntVar(&flagSolution, "solution", -1, "Play the level's stored solution with this index")
	runCmd.Flags().IntVar(&flagSpeed, "speed", 0, "Frames to wait where a solution leaves its delay empty")
	runCmd.Flags().IntVar(&flagIdleSteps, "steps", 50, "Idle frames allowed after the script")
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "Write a step trace (also enabled by trace.enabled)")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
	runCmd.Flags().BoolVar(&flagShowFrames, "frames", false, "Print the board after every frame")
}

func runRun(cmd *cobra.Command, args []string) error {
	if flagMoves != "" && flagSolution >= 0 {
		return errors.New("--moves and --solution are mutually exclusive")
	}

	lvl, err := loader().Resolve(args[0])
	if err != nil {
		return err
	}
	s, err := lvl.Start(simulation())
	if err != nil {
		return err
	}

	var played level.Script
	onFrame := func(in level.Frame, res puzzle.StepResult) error {
		played = append(played, in)
		if flagShowFrames {
			fmt.Printf("frame %d  %s\n", res.Step, in)
			printBoard(s.Board())
		}
		return nil
	}

	if flagTrace || cfg.Trace.Enabled {
		w, err := trace.Create(config.ExpandHome(cfg.Trace.Dir), lvl.ID, lvl.Definition.String())
		if err != nil {
			return err
		}
		defer func() {
			if err := w.Close(); err != nil {
				logger.Warn("could not close trace", "path", w.Path(), "error", err)
			}
		}()
		record := w.Recorder(s)
		show := onFrame
		onFrame = func(in level.Frame, res puzzle.StepResult) error {
			if err := record(in, res); err != nil {
				return err
			}
			return show(in, res)
		}
		logger.Info("tracing run", "path", w.Path())
	}

	if lvl.Name != "" {
		fmt.Println(lvl.Name)
		fmt.Println()
	}

	if flagSolution >= 0 {
		err = s.Solve(flagSolution, flagSpeed, flagIdleSteps, onFrame)
	} else {
		var sc level.Script
		sc, err = level.ParseMoves(flagMoves)
		if err != nil {
			return err
		}
		err = s.Play(sc, flagIdleSteps, onFrame)
	}

	var nc *puzzle.NonConvergentError
	if errors.As(err, &nc) {
		printBoard(s.Board())
		return fmt.Errorf("level %s stopped at frame %d: %w", lvl.ID, s.Frames()+1, err)
	}
	if err != nil {
		return err
	}

	if !flagShowFrames {
		printBoard(s.Board())
	}
	fmt.Println()
	met, total := s.Goals()
	if s.Won() {
		fmt.Printf("Solved in %d frames (%d moves).\n", s.Frames(), s.Moves())
		fmt.Printf("Solution: :%s\n", played.Solution())
	} else {
		fmt.Printf("Not solved after %d frames: %d of %d goals held.\n", s.Frames(), met, total)
	}

	if flagNoSave {
		return nil
	}
	return saveRun(storage.Run{
		LevelID: lvl.ID,
		Frames:  int(s.Frames()),
		Moves:   s.Moves(),
		Won:     s.Won(),
		Script:  played.Solution(),
	})
}

func openStore() (*storage.Store, error) {
	return storage.Open(cfg.Storage.DBPath)
}

// saveRun records a run. Storage problems are reported but do not fail
// the command, the run itself already happened.
func saveRun(run storage.Run) error {
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		return nil
	}
	defer store.Close()

	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return nil
	}
	logger.Debug("run saved", "id", id, "level", run.LevelID)
	return nil
}
