// Package stats keeps a compact history of finished games. Old records are
// folded into groups so the file stays small however many games are played.
package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultFile = "data/stats.json"
	GroupSize   = 100 // records folded into one group
)

// Result describes one finished game.
type Result struct {
	ID        string
	Seed      uint64
	Score     int
	Length    int
	Ticks     uint64
	Cause     string
	StartTime time.Time
	EndTime   time.Time
}

// Record is a single game when CompressionIndex is 0, otherwise a group of
// GamesCount games folded CompressionIndex times.
type Record struct {
	ID               string    `json:"id"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	Length           int       `json:"length,omitempty"`
	Ticks            uint64    `json:"ticks,omitempty"`
	Cause            string    `json:"cause,omitempty"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

// Summary aggregates every recorded game.
type Summary struct {
	Games           int
	AverageScore    float64
	MedianScore     float64
	ScoreStdDev     float64
	MaxScore        int
	AverageDuration float64
	MaxDuration     float64
}

// Store is safe for concurrent use.
type Store struct {
	filename  string
	groupSize int
	records   []Record
	mutex     sync.RWMutex
}

// NewStore opens the store backed by filename. A missing file starts an
// empty store. An empty filename keeps the store in memory only.
func NewStore(filename string, groupSize int) (*Store, error) {
	if groupSize <= 1 {
		groupSize = GroupSize
	}
	s := &Store{
		filename:  filename,
		groupSize: groupSize,
		records:   make([]Record, 0),
	}
	if err := s.loadFromFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Add records a finished game.
func (s *Store) Add(r Result) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}
	duration := r.EndTime.Sub(r.StartTime).Seconds()
	s.records = append(s.records, Record{
		ID:              id,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Score:           r.Score,
		Length:          r.Length,
		Ticks:           r.Ticks,
		Cause:           r.Cause,
		GamesCount:      1,
		AverageScore:    float64(r.Score),
		MedianScore:     float64(r.Score),
		MaxScore:        r.Score,
		MinScore:        r.Score,
		AverageDuration: duration,
		MaxDuration:     duration,
		MinDuration:     duration,
	})
	s.groupRecords()
}

// groupRecords folds every full run of groupSize records at one compression
// level into a record of the next level, repeating upwards.
func (s *Store) groupRecords() {
	slices.SortStableFunc(s.records, func(a, b Record) int {
		if a.CompressionIndex != b.CompressionIndex {
			return a.CompressionIndex - b.CompressionIndex
		}
		return a.StartTime.Compare(b.StartTime)
	})

	for level := 0; ; level++ {
		var current, rest []Record
		for _, r := range s.records {
			if r.CompressionIndex == level {
				current = append(current, r)
			} else {
				rest = append(rest, r)
			}
		}
		if len(current) < s.groupSize {
			return
		}

		var folded []Record
		for i := 0; i < len(current); i += s.groupSize {
			if i+s.groupSize > len(current) {
				folded = append(folded, current[i:]...)
				break
			}
			folded = append(folded, fold(current[i:i+s.groupSize], level+1))
		}
		s.records = append(rest, folded...)
	}
}

func fold(group []Record, level int) Record {
	out := Record{
		ID:               uuid.New().String(),
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}
	scores := make([]float64, len(group))
	durations := make([]float64, len(group))
	weights := make([]float64, len(group))
	for i, r := range group {
		out.MaxScore = max(out.MaxScore, r.MaxScore)
		out.MinScore = min(out.MinScore, r.MinScore)
		out.MaxDuration = max(out.MaxDuration, r.MaxDuration)
		out.MinDuration = min(out.MinDuration, r.MinDuration)
		if r.StartTime.Before(out.StartTime) {
			out.StartTime = r.StartTime
		}
		if r.EndTime.After(out.EndTime) {
			out.EndTime = r.EndTime
		}
		out.GamesCount += r.GamesCount
		scores[i] = r.AverageScore
		durations[i] = r.AverageDuration
		weights[i] = float64(r.GamesCount)
	}
	out.AverageScore = stat.Mean(scores, weights)
	out.AverageDuration = stat.Mean(durations, weights)
	out.MedianScore = weightedMedian(group)
	out.Score = int(out.AverageScore)
	return out
}

// weightedMedian treats each record's median as GamesCount games.
func weightedMedian(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b Record) int {
		switch {
		case a.MedianScore < b.MedianScore:
			return -1
		case a.MedianScore > b.MedianScore:
			return 1
		}
		return 0
	})
	x := make([]float64, len(sorted))
	w := make([]float64, len(sorted))
	for i, r := range sorted {
		x[i] = r.MedianScore
		w[i] = float64(r.GamesCount)
	}
	return stat.Quantile(0.5, stat.Empirical, x, w)
}

// Records returns a copy of the stored records.
func (s *Store) Records() []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.records)
}

func (s *Store) Summary() Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.records) == 0 {
		return Summary{}
	}
	scores := make([]float64, len(s.records))
	durations := make([]float64, len(s.records))
	maxDurations := make([]float64, len(s.records))
	weights := make([]float64, len(s.records))
	sum := Summary{MaxScore: s.records[0].MaxScore}
	for i, r := range s.records {
		scores[i] = r.AverageScore
		durations[i] = r.AverageDuration
		maxDurations[i] = r.MaxDuration
		weights[i] = float64(r.GamesCount)
		sum.Games += r.GamesCount
		sum.MaxScore = max(sum.MaxScore, r.MaxScore)
	}
	sum.AverageScore = stat.Mean(scores, weights)
	sum.AverageDuration = stat.Mean(durations, weights)
	sum.MaxDuration = floats.Max(maxDurations)
	sum.MedianScore = weightedMedian(s.records)
	if sum.Games > 1 {
		sum.ScoreStdDev = stat.StdDev(scores, weights)
	}
	return sum
}

// Save writes the records to the store's file.
func (s *Store) Save() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.filename == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.filename), 0755); err != nil {
		return errors.Wrap(err, "create stats directory")
	}
	data, err := json.Marshal(s.records)
	if err != nil {
		return errors.Wrap(err, "encode stats")
	}
	return errors.Wrapf(os.WriteFile(s.filename, data, 0644), "write %s", s.filename)
}

func (s *Store) loadFromFile() error {
	if s.filename == "" {
		return nil
	}
	data, err := os.ReadFile(s.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read %s", s.filename)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return errors.Wrapf(err, "decode %s", s.filename)
	}
	return nil
}
