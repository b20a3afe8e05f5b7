package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{LevelID: "01-intro", Frames: 3, Moves: 2, Won: true, Script: "0,r,0,r"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Expected a uuid run id, got %q", id)
	}

	runs, err := store.BestRuns("01-intro", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.Frames != 3 || r.Moves != 2 || !r.Won || r.Script != "0,r,0,r" {
		t.Errorf("Run not stored as saved: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed", LevelID: "a", Frames: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed" {
		t.Errorf("Expected id fixed, got %q", id)
	}

	if _, err := store.SaveRun(Run{ID: "fixed", LevelID: "a"}); err == nil {
		t.Error("Expected duplicate id to fail")
	}
	if _, err := store.SaveRun(Run{Frames: 1}); err == nil {
		t.Error("Expected run without level id to fail")
	}
}

func TestStoreBestRunsOrder(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{LevelID: "lvl", Frames: 4, Moves: 4, Won: false})
	store.SaveRun(Run{LevelID: "lvl", Frames: 9, Moves: 5, Won: true})
	store.SaveRun(Run{LevelID: "lvl", Frames: 7, Moves: 3, Won: true})
	store.SaveRun(Run{LevelID: "lvl", Frames: 6, Moves: 3, Won: true})
	store.SaveRun(Run{LevelID: "other", Frames: 1, Moves: 1, Won: true})

	runs, err := store.BestRuns("lvl", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("Expected 4 runs, got %d", len(runs))
	}

	want := []struct {
		frames int
		won    bool
	}{{6, true}, {7, true}, {9, true}, {4, false}}
	for i, w := range want {
		if runs[i].Frames != w.frames || runs[i].Won != w.won {
			t.Errorf("runs[%d] = %+v, want frames %d won %v", i, runs[i], w.frames, w.won)
		}
	}

	top, err := store.BestRuns("lvl", 2)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(top))
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, lvl := range []string{"a", "b", "c"} {
		if _, err := store.SaveRun(Run{LevelID: lvl, Frames: 1}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].LevelID != "c" || runs[1].LevelID != "b" {
		t.Errorf("Expected newest first, got %s, %s", runs[0].LevelID, runs[1].LevelID)
	}
}

func TestStoreCompletedLevels(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{LevelID: "02-slide", Won: true})
	store.SaveRun(Run{LevelID: "01-intro", Won: true})
	store.SaveRun(Run{LevelID: "01-intro", Won: true})
	store.SaveRun(Run{LevelID: "03-lost", Won: false})

	ids, err := store.CompletedLevels()
	if err != nil {
		t.Fatalf("CompletedLevels() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "01-intro" || ids[1] != "02-slide" {
		t.Errorf("Unexpected completed levels: %v", ids)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats("nothing")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.Wins != 0 || empty.BestMoves != 0 || !empty.LastRun.IsZero() {
		t.Errorf("Expected zero stats, got %+v", empty)
	}

	store.SaveRun(Run{LevelID: "lvl", Frames: 10, Moves: 2, Won: false})
	store.SaveRun(Run{LevelID: "lvl", Frames: 4, Moves: 6, Won: true})
	store.SaveRun(Run{LevelID: "lvl", Frames: 7, Moves: 5, Won: true})

	stats, err := store.LevelStats("lvl")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Wins != 2 {
		t.Errorf("Expected 3 runs and 2 wins, got %+v", stats)
	}
	if stats.BestMoves != 5 {
		t.Errorf("Expected best moves 5 from winning runs, got %d", stats.BestMoves)
	}
	if stats.AvgFrames != 7 {
		t.Errorf("Expected average frames 7, got %v", stats.AvgFrames)
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 1 || all["lvl"] == nil || all["lvl"].Wins != 2 {
		t.Errorf("Unexpected all stats: %v", all)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{LevelID: "a", Frames: 1})
	store.SaveRun(Run{LevelID: "a", Frames: 2})
	store.SaveRun(Run{LevelID: "b", Frames: 3})

	if err := store.ClearRuns("a"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	aRuns, _ := store.BestRuns("a", 10)
	if len(aRuns) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(aRuns))
	}
	bRuns, _ := store.BestRuns("b", 10)
	if len(bRuns) != 1 {
		t.Errorf("Runs of other levels should not be affected")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
