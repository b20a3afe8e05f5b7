package level_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/forcegrid/internal/level"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

func TestParseMoves(t *testing.T) {
	sc, err := level.ParseMoves(" r  . UL d\n")
	require.NoError(t, err)

	want := level.Script{
		{puzzle.DirRight},
		{},
		{puzzle.DirUp, puzzle.DirLeft},
		{puzzle.DirDown},
	}
	assert.Equal(t, want, sc)
	assert.Equal(t, "r . ul d", sc.String())

	_, err = level.ParseMoves("r x")
	assert.ErrorContains(t, err, "move 2")
}

func TestParseSolution(t *testing.T) {
	r := level.Frame{puzzle.DirRight}
	idle := level.Frame{}
	up := level.Frame{puzzle.DirUp}

	tests := []struct {
		name string
		soln string
		want level.Script
	}{
		{name: "no waits", soln: "0,r,0,r", want: level.Script{r, r}},
		{name: "counted wait", soln: "2,r", want: level.Script{idle, idle, r}},
		{name: "empty wait uses speed", soln: ",r", want: level.Script{idle, idle, idle, r}},
		{name: "held keys", soln: "[u]2,r", want: level.Script{up, up, r}},
		{name: "lower bound", soln: ">4,r", want: level.Script{idle, idle, idle, idle, idle, r}},
		{name: "inclusive upper bound", soln: "<=1,r", want: level.Script{idle, r}},
		{name: "range", soln: ">=1<2,r", want: level.Script{idle, r}},
		{name: "upper bound applies last", soln: "<3>5,r", want: level.Script{idle, idle, r}},
		{name: "last bound of a kind counts", soln: "<1<=4,r", want: level.Script{idle, idle, idle, r}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := level.ParseSolution(tt.soln, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSolutionErrors(t *testing.T) {
	for _, soln := range []string{"x,r", "0,q", "[u2,r", "-1,r", ">a,r"} {
		_, err := level.ParseSolution(soln, 0)
		assert.Error(t, err, soln)
	}
}

func TestScriptSolution(t *testing.T) {
	tests := []struct {
		moves string
		want  string
	}{
		{moves: "r r", want: "0,r,0,r"},
		{moves: ". . r . ul", want: "2,r,1,ul"},
		{moves: "d . . . l", want: "0,d,3,l"},
	}

	for _, tt := range tests {
		t.Run(tt.moves, func(t *testing.T) {
			sc, err := level.ParseMoves(tt.moves)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sc.Solution())

			back, err := level.ParseSolution(sc.Solution(), 0)
			require.NoError(t, err)
			assert.Equal(t, sc, back)
		})
	}
}

func TestScriptSolutionDropsTrailingIdle(t *testing.T) {
	sc, err := level.ParseMoves("r . .")
	require.NoError(t, err)
	assert.Equal(t, "0,r", sc.Solution())

	assert.Equal(t, "", level.Script{{}, {}}.Solution())
}

func TestPlayRecordsReplayableSolution(t *testing.T) {
	s := newSession(t, "5 1\n0 0 0\n2 1 0\n\n2 3 0")
	sc, err := level.ParseMoves(". r r")
	require.NoError(t, err)

	var played level.Script
	require.NoError(t, s.Play(sc, 10, func(in level.Frame, _ puzzle.StepResult) error {
		played = append(played, in)
		return nil
	}))
	require.True(t, s.Won())

	replay, err := level.ParseSolution(played.Solution(), 0)
	require.NoError(t, err)
	s.Reset()
	require.NoError(t, s.Play(replay, 10, nil))
	assert.True(t, s.Won())
}

func TestPlayStopsWhenWon(t *testing.T) {
	s := newSession(t, "5 1\n0 0 0\n2 1 0\n\n2 3 0")
	sc, err := level.ParseMoves("r r . . r r")
	require.NoError(t, err)

	var seen []string
	err = s.Play(sc, 0, func(in level.Frame, _ puzzle.StepResult) error {
		seen = append(seen, in.String())
		return nil
	})
	require.NoError(t, err)

	assert.True(t, s.Won())
	assert.Equal(t, []string{"r", "r", "."}, seen)
	assert.Equal(t, uint64(3), s.Frames())
}

func TestPlayIdleFrames(t *testing.T) {
	s := newSession(t, "5 1\n0 0 0\n2 1 0\n\n2 4 0")

	require.NoError(t, s.Play(level.Script{{puzzle.DirRight}}, 2, nil))
	assert.False(t, s.Won())
	assert.Equal(t, uint64(3), s.Frames())
}

func TestSolveStoredSolutions(t *testing.T) {
	loader := level.NewLoader(getTestdataPath())

	for _, id := range []string{"01-intro", "02-slide"} {
		t.Run(id, func(t *testing.T) {
			lvl, err := loader.LoadByID(id)
			require.NoError(t, err)
			s, err := lvl.Start(puzzle.DefaultConfig())
			require.NoError(t, err)

			// Earlier play is discarded.
			require.NoError(t, s.Move(puzzle.DirDown))
			update(t, s)

			require.NoError(t, s.Solve(0, 0, 10, nil))
			assert.True(t, s.Won())
		})
	}

	s := newSession(t, "2 1\n0 0 0")
	assert.Error(t, s.Solve(0, 0, 0, nil))
}
