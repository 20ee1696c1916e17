package ai

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"snake-pilot/game/types"
)

const (
	DangerTTL      = 30 * time.Second
	MaxDangerCells = 20

	maxPatterns  = 20
	keptPatterns = 15
)

var fileMutex sync.RWMutex

// DangerMemory remembers cells where the snake died. Entries expire after
// the TTL and the oldest are dropped past the cap. It is a hint for food
// placement and fallback moves, never a hard wall.
type DangerMemory struct {
	ttl   time.Duration
	limit int
	seen  map[types.Point]time.Time
}

func NewDangerMemory(ttl time.Duration, limit int) *DangerMemory {
	return &DangerMemory{ttl: ttl, limit: limit, seen: make(map[types.Point]time.Time)}
}

// Add records a collision at p and trims the memory.
func (m *DangerMemory) Add(p types.Point, at time.Time) {
	m.seen[p] = at
	m.trim(at)
}

// Contains reports whether p is remembered and not yet expired at now.
func (m *DangerMemory) Contains(p types.Point, now time.Time) bool {
	at, ok := m.seen[p]
	return ok && now.Sub(at) <= m.ttl
}

// Snapshot returns the live cells at now.
func (m *DangerMemory) Snapshot(now time.Time) map[types.Point]struct{} {
	out := make(map[types.Point]struct{}, len(m.seen))
	for p, at := range m.seen {
		if now.Sub(at) <= m.ttl {
			out[p] = struct{}{}
		}
	}
	return out
}

// Len counts the cells still live at now.
func (m *DangerMemory) Len(now time.Time) int {
	n := 0
	for _, at := range m.seen {
		if now.Sub(at) <= m.ttl {
			n++
		}
	}
	return n
}

func (m *DangerMemory) trim(now time.Time) {
	for p, at := range m.seen {
		if now.Sub(at) > m.ttl {
			delete(m.seen, p)
		}
	}
	if len(m.seen) <= m.limit {
		return
	}

	type entry struct {
		p  types.Point
		at time.Time
	}
	entries := make([]entry, 0, len(m.seen))
	for p, at := range m.seen {
		entries = append(entries, entry{p, at})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		if a.p.Y != b.p.Y {
			return a.p.Y - b.p.Y
		}
		return a.p.X - b.p.X
	})
	for _, e := range entries[:len(entries)-m.limit] {
		delete(m.seen, e.p)
	}
}

// Pattern is a direction with a running success rate.
type Pattern struct {
	Dir  types.Direction `json:"dir"`
	Rate float64         `json:"rate"`
}

// PatternMemory keeps a short list of directions that worked before.
type PatternMemory struct {
	entries []Pattern
}

// Update folds the outcome of a move in dir into the first entry for dir.
// Eating counts as 1, any other move as 0.5.
func (m *PatternMemory) Update(dir types.Direction, success bool) {
	s := 0.5
	if success {
		s = 1
	}
	for i := range m.entries {
		if m.entries[i].Dir == dir {
			m.entries[i].Rate = (m.entries[i].Rate*3 + s) / 4
			m.prune(maxPatterns)
			return
		}
	}
	m.entries = append(m.entries, Pattern{Dir: dir, Rate: s})
	m.prune(maxPatterns)
}

// Record appends a direction that led somewhere safe.
func (m *PatternMemory) Record(p Pattern) {
	m.entries = append(m.entries, p)
	m.prune(keptPatterns)
}

// prune keeps the best entries once the list grows past limit.
func (m *PatternMemory) prune(limit int) {
	if len(m.entries) <= limit {
		return
	}
	slices.SortStableFunc(m.entries, func(a, b Pattern) int {
		return compareFloat(b.Rate, a.Rate)
	})
	m.entries = m.entries[:keptPatterns]
}

// Entries returns a copy of the current list in priority order.
func (m *PatternMemory) Entries() []Pattern {
	return slices.Clone(m.entries)
}

func (m *PatternMemory) Len() int {
	return len(m.entries)
}

// SavePatterns writes the memory to filename as JSON.
func SavePatterns(m *PatternMemory, filename string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, "create pattern directory")
	}
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode patterns")
	}
	return errors.Wrapf(os.WriteFile(filename, data, 0644), "write %s", filename)
}

// LoadPatterns reads a memory written by SavePatterns. Entries beyond the
// cap are pruned on load.
func LoadPatterns(filename string) (*PatternMemory, error) {
	fileMutex.RLock()
	defer fileMutex.RUnlock()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	m := &PatternMemory{}
	if err := json.Unmarshal(data, &m.entries); err != nil {
		return nil, errors.Wrapf(err, "decode %s", filename)
	}
	m.prune(maxPatterns)
	return m, nil
}

// OpenPatterns loads filename when it exists. An empty name or a missing
// file gives an empty memory.
func OpenPatterns(filename string) (*PatternMemory, error) {
	if filename == "" {
		return &PatternMemory{}, nil
	}
	m, err := LoadPatterns(filename)
	if os.IsNotExist(errors.Cause(err)) {
		return &PatternMemory{}, nil
	}
	return m, err
}
