// Package trace records play-throughs as zstd compressed JSON lines, one
// line per simulated frame, and replays them to check that a run is
// reproducible.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/forcegrid/internal/level"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// Ext is the file extension of trace files.
const Ext = ".jsonl.zst"

// Header is the first line of a trace.
type Header struct {
	Run        string    `json:"run"`
	Level      string    `json:"level"`
	Definition string    `json:"definition"`
	Started    time.Time `json:"started"`
}

// MoveRecord is a block move in an Entry.
type MoveRecord struct {
	Block    int    `json:"block"`
	Kind     int    `json:"kind"`
	From     [2]int `json:"from"`
	To       [2]int `json:"to"`
	Retained bool   `json:"retained,omitempty"`
}

// Entry is one frame of a trace.
type Entry struct {
	Step     uint64       `json:"step"`
	Input    string       `json:"input"`
	Moves    []MoveRecord `json:"moves,omitempty"`
	Changed  [][2]int     `json:"changed,omitempty"`
	Passes   int          `json:"passes"`
	Updates  int          `json:"updates"`
	Snapshot uint64       `json:"snapshot"`
	Won      bool         `json:"won,omitempty"`
}

// NewEntry builds the entry for a stepped frame.
func NewEntry(in level.Frame, res puzzle.StepResult, snapshot uint64, won bool) Entry {
	e := Entry{
		Step:     res.Step,
		Input:    in.String(),
		Passes:   res.Passes,
		Updates:  res.Updates,
		Snapshot: snapshot,
		Won:      won,
	}
	for _, m := range res.Moves {
		e.Moves = append(e.Moves, MoveRecord{
			Block:    int(m.Block),
			Kind:     int(m.Kind),
			From:     [2]int{m.From.X, m.From.Y},
			To:       [2]int{m.To.X, m.To.Y},
			Retained: m.Retained,
		})
	}
	for _, c := range res.Changed {
		e.Changed = append(e.Changed, [2]int{c.X, c.Y})
	}
	return e
}

// Writer appends entries to a single trace file.
type Writer struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create starts a new trace for a level in dir. The file is named after
// the level and a fresh run ID.
func Create(dir, levelID, definition string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("trace: cannot create directory %s: %w", dir, err)
	}
	h := Header{
		Run:        uuid.NewString(),
		Level:      levelID,
		Definition: definition,
		Started:    time.Now().UTC(),
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s%s", levelID, h.Run, Ext))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("trace: %w", err)
	}
	w := &Writer{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 64*1024),
	}
	if err := w.write(h); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Path returns the trace file path.
func (w *Writer) Path() string { return w.path }

// Write appends an entry.
func (w *Writer) Write(e Entry) error {
	return w.write(e)
}

// Recorder returns a level.FrameFunc that writes every frame of s.
func (w *Writer) Recorder(s *level.Session) level.FrameFunc {
	return func(in level.Frame, res puzzle.StepResult) error {
		return w.Write(NewEntry(in, res, s.Board().Snapshot(), s.Won()))
	}
}

func (w *Writer) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		return fmt.Errorf("trace: write to closed trace %s", w.path)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	return w.w.WriteByte('\n')
}

// Close flushes and closes the trace file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	if w.w != nil {
		err = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	return err
}
