package ai

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"snake-pilot/game/types"
)

const (
	DefaultStarvationTimeout = 10 * time.Second

	// hungerWarning is the fraction of the starvation timeout after which
	// the snake starts worrying about distant food.
	hungerWarning = 0.8
	maxFailures   = 10
	tickMix       = 0x9E3779B97F4A7C15
)

// Pilot chooses the next move of a snake. It keeps danger and pattern memory
// and a short history of head positions between ticks. A Pilot is not safe
// for concurrent use.
type Pilot struct {
	timeout  time.Duration
	seed     uint64
	log      zerolog.Logger
	now      func() time.Time
	danger   *DangerMemory
	patterns *PatternMemory
	history  positionHistory
	failures int

	last    Decision
	applied bool
}

// Option configures a Pilot.
type Option func(*Pilot)

func WithStarvationTimeout(d time.Duration) Option {
	return func(p *Pilot) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithSeed fixes the random source. Decisions are reproducible for a given
// seed and tick.
func WithSeed(seed uint64) Option {
	return func(p *Pilot) { p.seed = seed }
}

func WithLogger(l zerolog.Logger) Option {
	return func(p *Pilot) { p.log = l }
}

// WithClock replaces time.Now for danger memory expiry.
func WithClock(now func() time.Time) Option {
	return func(p *Pilot) { p.now = now }
}

// WithPatterns starts the pilot from a previously saved pattern memory.
func WithPatterns(m *PatternMemory) Option {
	return func(p *Pilot) {
		if m != nil {
			p.patterns = m
		}
	}
}

func New(opts ...Option) *Pilot {
	p := &Pilot{
		timeout:  DefaultStarvationTimeout,
		seed:     1,
		log:      zerolog.Nop(),
		now:      time.Now,
		danger:   NewDangerMemory(DangerTTL, MaxDangerCells),
		patterns: &PatternMemory{},
		applied:  true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decide returns the move for the coming tick. It only reads s and the
// pilot's memory, so calling it again on the same state gives the same
// answer. Bookkeeping happens in OnMove.
func (p *Pilot) Decide(s State) types.Direction {
	if len(s.Snake) == 0 {
		return types.Right
	}
	v := p.view(s)
	d := p.decide(v)
	if d.Direction == types.None {
		d.Direction = s.Heading
	}
	if d.Direction == types.None {
		d.Direction = types.Right
	}

	p.last = d
	p.applied = false
	p.log.Debug().
		Uint64("tick", s.Tick).
		Stringer("reason", d.Reason).
		Stringer("dir", d.Direction).
		Int("x", s.Head().X).
		Int("y", s.Head().Y).
		Bool("starving", v.starving).
		Int("failures", p.failures).
		Msg("decision")
	return d.Direction
}

// Explain returns the last decision.
func (p *Pilot) Explain() Decision {
	return p.last
}

// OnMove is called once the host has applied a move. s is the state after
// the move and ate reports whether the head landed on food.
func (p *Pilot) OnMove(s State, ate bool) {
	if !p.applied {
		p.applied = true
		if p.last.Record != nil {
			p.patterns.Record(*p.last.Record)
		}
		switch {
		case p.last.Reason == ReasonSafetyValve:
			p.failures = 0
		case p.last.Failed:
			p.failures++
		case p.last.Reason == ReasonFood || p.last.Reason == ReasonExplore:
			p.failures = 0
		}
	}

	if s.Heading != types.None {
		p.patterns.Update(s.Heading, ate)
	}
	if len(s.Snake) > 0 {
		p.history.push(s.Head(), s.Heading)
	}
	if ate {
		p.OnFoodEaten()
	}
}

// OnFoodEaten forgets the recent positions so loop detection starts over.
func (p *Pilot) OnFoodEaten() {
	p.history.reset()
}

// OnCollision remembers the cell the snake died on.
func (p *Pilot) OnCollision(cell types.Point) {
	now := p.now()
	p.danger.Add(cell, now)
	p.log.Info().Int("x", cell.X).Int("y", cell.Y).Int("danger", p.danger.Len(now)).Msg("collision recorded")
}

// Reset clears per-game state. Danger and pattern memory survive.
func (p *Pilot) Reset() {
	p.history.reset()
	p.failures = 0
	p.last = Decision{}
	p.applied = true
}

// Forget drops danger and pattern memory on top of Reset.
func (p *Pilot) Forget() {
	p.Reset()
	p.danger = NewDangerMemory(DangerTTL, MaxDangerCells)
	p.patterns = &PatternMemory{}
}

func (p *Pilot) IsStarving(s State) bool {
	return s.SinceFed > p.timeout
}

// Hunger grades the starvation timer for display.
func (p *Pilot) Hunger(s State) Hunger {
	switch {
	case s.SinceFed > p.timeout:
		return Starving
	case float64(s.SinceFed) > float64(p.timeout)*hungerWarning:
		return Hungry
	}
	return Fed
}

// RiskLevel aggregates one-step risk over the four directions.
func (p *Pilot) RiskLevel(s State) RiskLevel {
	if len(s.Snake) == 0 {
		return RiskLow
	}
	return p.view(s).riskLevel()
}

func (p *Pilot) Danger() *DangerMemory {
	return p.danger
}

func (p *Pilot) Patterns() *PatternMemory {
	return p.patterns
}

func (p *Pilot) StarvationTimeout() time.Duration {
	return p.timeout
}

func (p *Pilot) view(s State) *view {
	hunger := p.Hunger(s)
	return &view{
		grid:       s.Grid,
		body:       s.Snake,
		heading:    s.Heading,
		next:       s.Next,
		occ:        newOccupancy(s.Grid, s.Snake),
		foods:      s.Foods,
		difficulty: s.Difficulty,
		starving:   hunger == Starving,
		hungry:     hunger == Hungry,
		danger:     p.danger.Snapshot(p.now()),
		patterns:   p.patterns.Entries(),
		recent:     p.history.cells(),
		inLoop:     p.history.looping(s.Head(), s.Heading),
		rng:        rand.New(rand.NewSource(p.seed ^ (s.Tick * tickMix))),
	}
}

// decide walks the priorities in order: pre-emptive escape, wrap dodge,
// starvation, loop breaking, then food or exploration under lookahead.
func (p *Pilot) decide(v *view) Decision {
	head := v.head()

	if v.freeSpace(head, v.occ, 4) < 6 || (v.hungry && v.nearestFoodDistance() > 10) {
		return Decision{Direction: v.escape(), Reason: ReasonCramped}
	}

	if v.grid.Toroidal() {
		if next, _ := v.grid.Step(head, v.next); v.occ.has(next) {
			// Only safe, non-reversing crossings count. Without one the
			// later rules pick the move.
			var edges []types.Direction
			for _, d := range types.Cardinal {
				if d.Reverses(v.heading) || !v.grid.Crosses(head, d) {
					continue
				}
				if _, ok := v.safeStep(head, d, false); ok {
					edges = append(edges, d)
				}
			}
			if len(edges) > 0 {
				d := edges[v.rng.Intn(len(edges))]
				return Decision{Direction: d, Reason: ReasonWrapDodge}
			}
		}
	}

	if v.starving && len(v.foods) > 0 {
		if d, ok := p.starvingMove(v); ok {
			return d
		}
	}

	if v.inLoop {
		return Decision{Direction: v.escape(), Reason: ReasonLoop}
	}

	reason := ReasonFood
	r, _ := v.bestFood()
	path := r.path
	if len(path) == 0 {
		reason = ReasonExplore
		path = v.explore()
	}

	if len(path) > 0 && p.acceptable(v, path) {
		d := v.commit(path[0])
		if !v.validate(d) {
			return Decision{Direction: v.escape(), Reason: ReasonEscape, Path: path}
		}
		dec := Decision{Direction: d, Reason: reason, Path: path}
		if v.length() > 5 {
			dec.Record = &Pattern{Dir: path[0], Rate: p.patternRate(v, path)}
		}
		return dec
	}

	if p.failures+1 >= maxFailures {
		if safe := v.safeDirections(false); len(safe) > 0 {
			return Decision{Direction: safe[v.rng.Intn(len(safe))], Reason: ReasonSafetyValve, Path: path}
		}
	}
	return Decision{Direction: v.escape(), Reason: ReasonEscape, Path: path, Failed: true}
}

// acceptable runs the lookahead: no risk over fifteen moves and no trap five
// moves out, or on extreme difficulty no risk over ten moves.
func (p *Pilot) acceptable(v *view, path []types.Direction) bool {
	future := v.predict(path, 5)
	if !v.isRiskyPath(path, false, 15) && !v.closedLoop(future.head(), future.occ, len(future.body)) {
		return true
	}
	return v.extreme() && !v.isRiskyPath(path, false, defaultHorizon)
}

// starvingMove follows the nearest food as long as the path does not run
// into the body within five moves. Otherwise it tries one-step detours, each
// followed by a path to the closest food reachable from there.
func (p *Pilot) starvingMove(v *view) (Decision, bool) {
	if r, _ := v.bestFood(); len(r.path) > 0 && !v.isRiskyPath(r.path, true, 5) {
		d := v.commit(r.path[0])
		if !v.validate(d) {
			return Decision{Direction: v.escape(), Reason: ReasonEscape, Path: r.path}, true
		}
		return Decision{Direction: d, Reason: ReasonStarving, Path: r.path}, true
	}

	head := v.head()
	targets := slices.Clone(v.foods)
	slices.SortStableFunc(targets, func(a, b types.Point) int {
		return v.grid.Distance(head, a) - v.grid.Distance(head, b)
	})
	for _, d := range types.Cardinal {
		if d.Reverses(v.heading) {
			continue
		}
		q, ok := v.safeStep(head, d, false)
		if !ok {
			continue
		}
		for _, target := range targets {
			rest, found := v.findPath(q, target, SearchOptions{Wrap: true, Heading: d})
			if !found {
				continue
			}
			path := append([]types.Direction{d}, rest...)
			if !v.isRiskyPath(path, true, 5) {
				return Decision{Direction: d, Reason: ReasonStarvingDetour, Path: path}, true
			}
			break
		}
	}
	return Decision{}, false
}

// patternRate values a committed path: wrapping early scores higher, and
// higher still when the direct route to the nearest food runs into the body.
func (p *Pilot) patternRate(v *view, path []types.Direction) float64 {
	if !v.pathCrosses(path) {
		return 1.0
	}
	nearest, _ := v.nearestFood(v.head())
	direct, _ := v.findPath(v.head(), nearest, SearchOptions{Heading: v.heading})
	if v.isRiskyPath(direct, true, defaultHorizon) {
		return 1.5
	}
	return 1.2
}
