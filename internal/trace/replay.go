package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/forcegrid/internal/level"
	"github.com/vovakirdan/forcegrid/internal/puzzle"
)

// Read loads a whole trace file.
func Read(path string) (Header, []Entry, error) {
	var h Header

	f, err := os.Open(path)
	if err != nil {
		return h, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return h, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return h, nil, fmt.Errorf("%s: empty trace", filepath.Base(path))
	}
	if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
		return h, nil, fmt.Errorf("%s: header: %w", filepath.Base(path), err)
	}

	var entries []Entry
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return h, nil, fmt.Errorf("%s: line %d: %w", filepath.Base(path), len(entries)+2, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return h, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return h, entries, nil
}

// ErrMismatch is returned by Verify when a replayed frame differs from the
// recorded one.
var ErrMismatch = errors.New("trace: replay mismatch")

// Verify replays a trace from its recorded definition and inputs and
// checks every frame against the recorded step and snapshot. It returns
// the number of frames checked.
func Verify(path string, cfg puzzle.Config) (int, error) {
	h, entries, err := Read(path)
	if err != nil {
		return 0, err
	}
	d, err := puzzle.ParseDefinition(h.Definition)
	if err != nil {
		return 0, fmt.Errorf("trace: definition: %w", err)
	}
	s, err := level.NewSession(d, cfg)
	if err != nil {
		return 0, fmt.Errorf("trace: definition: %w", err)
	}

	for i, e := range entries {
		in, err := level.ParseFrame(e.Input)
		if err != nil {
			return i, fmt.Errorf("trace: frame %d: %w", i+1, err)
		}
		if err := s.Move(in...); err != nil {
			return i, err
		}
		res, err := s.Update()
		if err != nil {
			return i, fmt.Errorf("trace: frame %d: %w", i+1, err)
		}
		if res.Step != e.Step {
			return i, fmt.Errorf("%w: frame %d stepped %d, recorded %d", ErrMismatch, i+1, res.Step, e.Step)
		}
		if got := s.Board().Snapshot(); got != e.Snapshot {
			return i, fmt.Errorf("%w: frame %d snapshot %x, recorded %x", ErrMismatch, i+1, got, e.Snapshot)
		}
		if s.Won() != e.Won {
			return i, fmt.Errorf("%w: frame %d won=%v, recorded %v", ErrMismatch, i+1, s.Won(), e.Won)
		}
	}
	return len(entries), nil
}

// List returns the trace files in dir, sorted by name.
func List(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
