package ai

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snake-pilot/game/types"
)

func TestDangerMemoryExpires(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewDangerMemory(DangerTTL, MaxDangerCells)
	p := types.Point{X: 3, Y: 4}
	m.Add(p, start)

	if !m.Contains(p, start.Add(29*time.Second)) {
		t.Error("expected the cell to be remembered before the TTL")
	}
	if m.Contains(p, start.Add(31*time.Second)) {
		t.Error("expected the cell to expire after the TTL")
	}

	if m.Len(start.Add(29*time.Second)) != 1 || m.Len(start.Add(31*time.Second)) != 0 {
		t.Error("Len counts only live cells")
	}

	// A later insertion trims expired cells.
	later := start.Add(time.Minute)
	m.Add(types.Point{X: 9, Y: 9}, later)
	if m.Len(later) != 1 || len(m.seen) != 1 {
		t.Errorf("Len = %d with %d stored, want 1 after trimming", m.Len(later), len(m.seen))
	}
}

func TestDangerMemoryEvictsOldest(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewDangerMemory(DangerTTL, MaxDangerCells)
	for i := 0; i < MaxDangerCells+5; i++ {
		m.Add(types.Point{X: i, Y: 0}, start.Add(time.Duration(i)*time.Millisecond))
	}
	now := start.Add(time.Second)
	if m.Len(now) != MaxDangerCells {
		t.Fatalf("Len = %d, want %d", m.Len(now), MaxDangerCells)
	}
	for i := 0; i < 5; i++ {
		if m.Contains(types.Point{X: i, Y: 0}, now) {
			t.Errorf("cell %d should have been evicted", i)
		}
	}
	if !m.Contains(types.Point{X: MaxDangerCells + 4, Y: 0}, now) {
		t.Error("newest cell should be kept")
	}
	if got := len(m.Snapshot(now)); got != MaxDangerCells {
		t.Errorf("Snapshot has %d cells, want %d", got, MaxDangerCells)
	}
}

func TestPatternMemoryUpdate(t *testing.T) {
	var m PatternMemory
	m.Update(types.Up, false)
	m.Update(types.Up, true)
	m.Update(types.Right, true)

	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Dir != types.Up || math.Abs(entries[0].Rate-0.625) > 1e-9 {
		t.Errorf("up entry = %+v, want rate (0.5*3+1)/4", entries[0])
	}
	if entries[1].Dir != types.Right || entries[1].Rate != 1 {
		t.Errorf("right entry = %+v, want rate 1", entries[1])
	}
}

func TestPatternMemoryPrunes(t *testing.T) {
	var m PatternMemory
	for i := 0; i < keptPatterns; i++ {
		m.Record(Pattern{Dir: types.Up, Rate: float64(i) / 10})
	}
	m.Record(Pattern{Dir: types.Left, Rate: 1.5})
	if m.Len() != keptPatterns {
		t.Fatalf("Len = %d, want %d", m.Len(), keptPatterns)
	}
	entries := m.Entries()
	if entries[0].Dir != types.Left {
		t.Errorf("best entry = %+v, want the 1.5 left", entries[0])
	}
	for _, e := range entries {
		if e.Rate == 0 {
			t.Error("the worst entry should have been pruned")
		}
	}
}

func TestSaveLoadPatterns(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "nested", "patterns.json")

	var m PatternMemory
	m.Record(Pattern{Dir: types.Down, Rate: 1.2})
	m.Update(types.Left, true)
	if err := SavePatterns(&m, filename); err != nil {
		t.Fatalf("SavePatterns: %v", err)
	}

	loaded, err := LoadPatterns(filename)
	if err != nil {
		t.Fatalf("LoadPatterns: %v", err)
	}
	got, want := loaded.Entries(), m.Entries()
	if len(got) != len(want) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadPatternsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadPatterns(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPatterns(bad); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestOpenPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"", filepath.Join(dir, "missing.json")} {
		m, err := OpenPatterns(name)
		if err != nil || m.Len() != 0 {
			t.Errorf("OpenPatterns(%q) = %d entries, %v", name, m.Len(), err)
		}
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("[1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenPatterns(bad); err == nil {
		t.Error("a corrupt file is still an error")
	}
}
