package stats

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var base = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

func result(i int) Result {
	start := base.Add(time.Duration(i) * time.Minute)
	return Result{
		Score:     (i + 1) * 10,
		Length:    i + 2,
		Ticks:     uint64(100 * (i + 1)),
		Cause:     "wall",
		StartTime: start,
		EndTime:   start.Add(time.Duration(i+1) * time.Second),
	}
}

func TestAddAndSummary(t *testing.T) {
	s, err := NewStore("", 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		s.Add(result(i))
	}
	sum := s.Summary()
	if sum.Games != 3 || sum.AverageScore != 20 || sum.MedianScore != 20 || sum.MaxScore != 30 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.MaxDuration != 3 || sum.AverageDuration != 2 {
		t.Errorf("durations = %v avg %v max", sum.AverageDuration, sum.MaxDuration)
	}
	if math.Abs(sum.ScoreStdDev-10) > 1e-9 {
		t.Errorf("stddev = %v, want 10", sum.ScoreStdDev)
	}
	for _, r := range s.Records() {
		if r.ID == "" {
			t.Error("records get an id")
		}
	}
}

func TestGrouping(t *testing.T) {
	s, err := NewStore("", 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		s.Add(result(i))
	}
	records := s.Records()
	if len(records) != 3 {
		t.Fatalf("got %d records, want 2 groups and 1 single", len(records))
	}
	levels := map[int]int{}
	for _, r := range records {
		levels[r.CompressionIndex]++
	}
	if levels[0] != 1 || levels[1] != 2 {
		t.Errorf("levels = %v", levels)
	}

	s.Add(result(7))
	s.Add(result(8))
	records = s.Records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want a single level 2 group", len(records))
	}
	r := records[0]
	if r.CompressionIndex != 2 || r.GamesCount != 9 {
		t.Errorf("group = level %d with %d games", r.CompressionIndex, r.GamesCount)
	}
	if r.AverageScore != 50 || r.MedianScore != 50 || r.MaxScore != 90 || r.MinScore != 10 {
		t.Errorf("group scores = %+v", r)
	}
	if !r.StartTime.Equal(base) || !r.EndTime.Equal(base.Add(8*time.Minute+9*time.Second)) {
		t.Errorf("group span = %v to %v", r.StartTime, r.EndTime)
	}
	if got := s.Summary(); got.Games != 9 || got.AverageScore != 50 {
		t.Errorf("summary = %+v", got)
	}
}

func TestSaveAndLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "data", "stats.json")
	s, err := NewStore(filename, 0)
	if err != nil {
		t.Fatalf("NewStore on a missing file: %v", err)
	}
	s.Add(result(0))
	s.Add(result(4))
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := NewStore(filename, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if got := loaded.Summary(); got.Games != 2 || got.MaxScore != 50 {
		t.Errorf("loaded summary = %+v", got)
	}
	if loaded.Records()[1].Cause != "wall" {
		t.Errorf("cause lost: %+v", loaded.Records()[1])
	}
}

func TestLoadCorrupt(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(filename, []byte("[{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(filename, 0); err == nil {
		t.Error("expected an error for a corrupt stats file")
	}
}

func TestConcurrentAdd(t *testing.T) {
	s, err := NewStore("", 10)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(result(i))
		}(i)
	}
	wg.Wait()
	if got := s.Summary().Games; got != 50 {
		t.Errorf("games = %d, want 50", got)
	}
}
