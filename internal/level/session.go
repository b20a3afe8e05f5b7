package level

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// Session is one play-through of a level: it feeds player input into the
// board once per frame and watches the goals.
type Session struct {
	board *puzzle.Board
	log   *log.Logger

	players []puzzle.BlockID
	moved   [4]bool // directions already applied this frame
	input   bool

	winning bool
	won     bool
	frames  uint64
	moves   int
}

// NewSession builds a board from d and starts a session on it.
func NewSession(d *puzzle.Definition, cfg puzzle.Config) (*Session, error) {
	b, err := puzzle.FromDefinition(d, cfg)
	if err != nil {
		return nil, err
	}
	s := &Session{board: b, log: b.Config().Logger}
	s.findPlayers()
	return s, nil
}

func (s *Session) findPlayers() {
	s.players = s.players[:0]
	for _, p := range s.board.BlocksOfKind(puzzle.KindPlayer) {
		s.players = append(s.players, p.ID())
	}
}

// Board exposes the underlying board for rendering.
func (s *Session) Board() *puzzle.Board { return s.board }

// Players returns the player blocks.
func (s *Session) Players() []*puzzle.Block {
	out := make([]*puzzle.Block, 0, len(s.players))
	for _, id := range s.players {
		if p, ok := s.board.Block(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Move pushes every player in each given direction and turns them to face
// it. A direction only counts once per frame.
func (s *Session) Move(dirs ...puzzle.Dir) error {
	force := s.board.Config().MoveForce
	for _, d := range dirs {
		d %= 4
		if s.moved[d] {
			continue
		}
		s.moved[d] = true
		s.input = true
		for _, id := range s.players {
			if err := s.board.AddForce(id, d, force); err != nil {
				return err
			}
			if err := s.board.SetFacing(id, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// Update advances one frame and re-evaluates the win rule: every goal must
// hold a block of its kind, on two frames in a row, so blocks sliding over
// a goal do not count. If the step fails the frame's input stays pending.
func (s *Session) Update() (puzzle.StepResult, error) {
	res, err := s.board.Step()
	if err != nil {
		return res, err
	}
	s.frames++
	if s.input && s.playerMoved(res) {
		s.moves++
	}
	s.moved = [4]bool{}
	s.input = false

	if s.goalsMet() {
		if !s.winning {
			s.winning = true
		} else if !s.won {
			s.won = true
			s.log.Debug("level won", "frames", s.frames, "moves", s.moves)
		}
	} else {
		s.winning = false
	}
	return res, nil
}

func (s *Session) playerMoved(res puzzle.StepResult) bool {
	for _, m := range res.Moves {
		if m.Kind == puzzle.KindPlayer {
			return true
		}
	}
	return false
}

// Goals counts goal tiles and how many of them hold the right block.
func (s *Session) Goals() (met, total int) {
	b := s.board
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			t := b.TileAt(x, y)
			if !t.Surface.IsGoal() {
				continue
			}
			total++
			if blk, ok := b.Block(t.Occupant); ok && blk.Kind() == t.Surface.GoalKind() {
				met++
			}
		}
	}
	return met, total
}

func (s *Session) goalsMet() bool {
	met, total := s.Goals()
	return met == total
}

// Reset restarts the level.
func (s *Session) Reset() {
	s.board.Reset()
	s.findPlayers()
	s.moved = [4]bool{}
	s.input = false
	s.winning = false
	s.won = false
	s.frames = 0
	s.moves = 0
}

// Won reports whether the level has been won.
func (s *Session) Won() bool { return s.won }

// Frames returns the number of completed frames.
func (s *Session) Frames() uint64 { return s.frames }

// Moves returns the number of frames with input in which a player moved.
func (s *Session) Moves() int { return s.moves }

// StartsWon reports whether a definition is already won without any input.
// Two frames are simulated since something might still be moving.
func StartsWon(d *puzzle.Definition, cfg puzzle.Config) (bool, error) {
	s, err := NewSession(d, cfg)
	if err != nil {
		return false, err
	}
	for i := 0; i < 2; i++ {
		if _, err := s.Update(); err != nil {
			return false, err
		}
	}
	return s.Won(), nil
}
