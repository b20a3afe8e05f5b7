package level

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// DefaultSolveSpeed is the wait, in frames, used by a solution step that
// leaves its delay empty.
const DefaultSolveSpeed = 5

const dirLetters = "lurd" // indexed by puzzle.Dir

// Frame is the set of directions pressed during one frame. An empty frame
// is idle.
type Frame []puzzle.Dir

// String renders the frame as direction letters, or "." when idle.
func (f Frame) String() string {
	if len(f) == 0 {
		return "."
	}
	var sb strings.Builder
	for _, d := range f {
		sb.WriteByte(dirLetters[d%4])
	}
	return sb.String()
}

// Script is a sequence of frames fed to a session.
type Script []Frame

// String renders the script in the format read by ParseMoves.
func (sc Script) String() string {
	parts := make([]string, len(sc))
	for i, f := range sc {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// Solution renders the script in the stored solution format read by
// ParseSolution: each run of idle frames becomes a wait and each frame with
// input becomes a move. Idle frames after the last move are dropped since
// playback keeps stepping on its own.
func (sc Script) Solution() string {
	var parts []string
	wait := 0
	for _, f := range sc {
		if len(f) == 0 {
			wait++
			continue
		}
		parts = append(parts, strconv.Itoa(wait), f.String())
		wait = 0
	}
	return strings.Join(parts, ",")
}

// ParseFrame reads a token of direction letters (l, u, r, d in any case).
// "." and "" are idle frames.
func ParseFrame(tok string) (Frame, error) {
	if tok == "." {
		return Frame{}, nil
	}
	f := Frame{}
	for _, c := range strings.ToLower(tok) {
		i := strings.IndexRune(dirLetters, c)
		if i < 0 {
			return nil, fmt.Errorf("unknown direction %q in %q", c, tok)
		}
		f = append(f, puzzle.Dir(i))
	}
	return f, nil
}

// ParseMoves reads a whitespace separated list of frames, e.g. "r r . ul".
func ParseMoves(s string) (Script, error) {
	fields := strings.Fields(s)
	sc := make(Script, 0, len(fields))
	for i, tok := range fields {
		f, err := ParseFrame(tok)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		sc = append(sc, f)
	}
	return sc, nil
}

// ParseSolution expands a stored solution into frames. A solution is a
// comma separated list alternating between a wait and a move:
//
//	wait, dirs, wait, dirs, ...
//
// A wait is a frame count, empty for speed, or a range such as ">2" or
// "<=4" that clamps speed. It may start with "[dirs]" naming directions
// held for every frame of the wait. A move is one frame with the given
// directions.
func ParseSolution(s string, speed int) (Script, error) {
	var sc Script
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if i%2 == 1 {
			f, err := ParseFrame(part)
			if err != nil {
				return nil, fmt.Errorf("solution step %d: %w", i+1, err)
			}
			sc = append(sc, f)
			continue
		}

		hold := Frame{}
		if strings.HasPrefix(part, "[") {
			end := strings.IndexByte(part, ']')
			if end < 0 {
				return nil, fmt.Errorf("solution step %d: unclosed [", i+1)
			}
			var err error
			if hold, err = ParseFrame(part[1:end]); err != nil {
				return nil, fmt.Errorf("solution step %d: %w", i+1, err)
			}
			part = strings.TrimSpace(part[end+1:])
		}
		n, err := parseWait(part, speed)
		if err != nil {
			return nil, fmt.Errorf("solution step %d: %w", i+1, err)
		}
		for j := 0; j < n; j++ {
			sc = append(sc, hold)
		}
	}
	return sc, nil
}

func parseWait(s string, speed int) (int, error) {
	if s == "" {
		return speed, nil
	}
	if !strings.ContainsAny(s, "<>") {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("bad wait %q", s)
		}
		return n, nil
	}

	// The last bound of each kind counts. Lower bounds apply before upper
	// bounds, so an upper bound wins when the two conflict.
	var lower, upper *int
	for s != "" {
		op := s[0]
		if op != '<' && op != '>' {
			return 0, fmt.Errorf("bad wait range %q", s)
		}
		s = strings.TrimSpace(s[1:])
		inclusive := strings.HasPrefix(s, "=")
		if inclusive {
			s = strings.TrimSpace(s[1:])
		}
		end := strings.IndexAny(s, "<>")
		if end < 0 {
			end = len(s)
		}
		v, err := strconv.Atoi(strings.TrimSpace(s[:end]))
		if err != nil {
			return 0, fmt.Errorf("bad wait bound %q", s[:end])
		}
		s = strings.TrimSpace(s[end:])

		if op == '>' {
			if !inclusive {
				v++
			}
			lower = &v
		} else {
			if !inclusive {
				v--
			}
			upper = &v
		}
	}

	n := speed
	if lower != nil {
		n = max(n, *lower)
	}
	if upper != nil {
		n = min(n, *upper)
	}
	return max(n, 0), nil
}

// FrameFunc observes a frame after it has been stepped.
type FrameFunc func(in Frame, res puzzle.StepResult) error

// Play feeds the script one frame at a time and then up to idle empty
// frames, stopping as soon as the level is won. fn may be nil.
func (s *Session) Play(sc Script, idle int, fn FrameFunc) error {
	frame := func(in Frame) error {
		if err := s.Move(in...); err != nil {
			return err
		}
		res, err := s.Update()
		if err != nil {
			return err
		}
		if fn != nil {
			return fn(in, res)
		}
		return nil
	}

	for _, in := range sc {
		if s.won {
			return nil
		}
		if err := frame(in); err != nil {
			return err
		}
	}
	for i := 0; i < idle && !s.won; i++ {
		if err := frame(Frame{}); err != nil {
			return err
		}
	}
	return nil
}

// Solve resets the session and plays stored solution n of the level at
// the given speed, allowing idle extra frames for the level to settle.
func (s *Session) Solve(n, speed, idle int, fn FrameFunc) error {
	d := s.board.Initial()
	if n < 0 || n >= len(d.Solutions) {
		return fmt.Errorf("level has no solution %d", n)
	}
	sc, err := ParseSolution(d.Solutions[n], speed)
	if err != nil {
		return err
	}
	s.Reset()
	return s.Play(sc, idle, fn)
}
