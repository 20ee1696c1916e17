// Package game owns a single-snake board and drives it one tick at a time,
// either from queued input or from the autopilot.
package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"snake-pilot/ai"
	"snake-pilot/config"
	"snake-pilot/game/entity"
	"snake-pilot/game/manager"
	"snake-pilot/game/types"
	"snake-pilot/stats"
)

// StartPosition is where every new snake spawns, heading right.
var StartPosition = types.Point{X: 10, Y: 10}

// EventKind says what a tick did.
type EventKind int

const (
	Idle EventKind = iota
	Moved
	Ate
	Collided
)

func (k EventKind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Collided:
		return "collided"
	}
	return "idle"
}

// Event is the outcome of one Update.
type Event struct {
	Kind      EventKind
	Head      types.Point
	Direction types.Direction
	Reason    ai.Reason
	Collision manager.CollisionType
	Score     int
}

type Game struct {
	UUID       string
	Grid       types.Grid
	Difficulty types.Difficulty
	Autopilot  bool
	Snake      *entity.Snake
	StartTime  time.Time

	pilot        *ai.Pilot
	patterns     *ai.PatternMemory
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager
	log          zerolog.Logger
	now          func() time.Time
	running      bool
	tick         uint64
	collision    manager.CollisionType
}

// Option configures a Game.
type Option func(*Game)

func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithClock replaces time.Now for the starvation clock.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithPilot uses p instead of a pilot built from the config.
func WithPilot(p *ai.Pilot) Option {
	return func(g *Game) { g.pilot = p }
}

// WithPatterns seeds the pilot built from the config with saved patterns.
func WithPatterns(m *ai.PatternMemory) Option {
	return func(g *Game) { g.patterns = m }
}

// New builds a stopped game from cfg. Call Start to place the snake and the
// first foods.
func New(cfg config.Config, opts ...Option) *Game {
	g := &Game{
		Grid:       cfg.Grid(),
		Difficulty: types.Difficulty(cfg.Difficulty),
		Autopilot:  cfg.Autopilot,
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.pilot == nil {
		g.pilot = ai.New(
			ai.WithStarvationTimeout(cfg.StarvationTimeout),
			ai.WithSeed(cfg.Seed),
			ai.WithLogger(g.log),
			ai.WithClock(g.now),
			ai.WithPatterns(g.patterns),
		)
	}
	g.collisionMgr = manager.NewCollisionManager(g.Grid)
	g.foodMgr = manager.NewFoodManager(g.Grid, g.collisionMgr, rand.New(rand.NewSource(cfg.Seed)))
	g.stateMgr = manager.NewStateManager(g.Difficulty, g.now)
	g.Snake = entity.NewSnake(StartPosition, entity.Color{R: 46, G: 204, B: 113})
	return g
}

// Start begins a new round. The pilot keeps its danger and pattern memory.
func (g *Game) Start() {
	g.UUID = uuid.New().String()
	g.StartTime = g.now()
	g.Snake = entity.NewSnake(StartPosition, g.Snake.Color)
	g.stateMgr.Restart()
	g.pilot.Reset()
	g.tick = 0
	g.collision = manager.NoCollision
	g.regenerateFood()
	g.running = true
	g.log.Info().
		Str("game", g.UUID).
		Stringer("mode", g.Grid.Mode).
		Stringer("difficulty", g.Difficulty).
		Int("foods", g.foodMgr.Len()).
		Msg("game started")
}

// Reset stops the game and also clears the pilot's memories.
func (g *Game) Reset() {
	g.running = false
	g.Snake = entity.NewSnake(StartPosition, g.Snake.Color)
	g.stateMgr.Restart()
	g.foodMgr.SetFoodList(nil)
	g.pilot.Forget()
	g.tick = 0
	g.log.Info().Str("game", g.UUID).Msg("game reset")
}

// Pause stops or resumes ticking without touching the board.
func (g *Game) Pause(paused bool) {
	if paused || !g.Snake.Dead {
		g.running = !paused
	}
}

// Steer queues a manual direction. Reversals are ignored.
func (g *Game) Steer(d types.Direction) bool {
	return g.Snake.SetDirection(d)
}

// Update advances the game by one tick.
func (g *Game) Update() Event {
	if !g.running || g.Snake.Dead {
		return Event{Kind: Idle, Score: g.stateMgr.Score()}
	}

	var reason ai.Reason
	if g.Autopilot {
		g.Snake.SetDirection(g.pilot.Decide(g.Snapshot()))
		reason = g.pilot.Explain().Reason
	}

	dir := g.Snake.Next
	head := g.Snake.Head().Add(dir.ToPoint())
	if g.Grid.Toroidal() {
		head = g.Grid.Wrap(head)
	}
	ate := g.foodMgr.EatAt(head)
	g.Snake.Advance(head, ate)
	g.tick++

	ev := Event{Kind: Moved, Head: head, Direction: dir, Reason: reason}
	if collision := g.collisionMgr.CheckCollision(g.Snake.Body); collision != manager.NoCollision {
		g.endGame(head, dir, collision)
		ev.Kind = Collided
		ev.Collision = collision
		ev.Score = g.stateMgr.Score()
		return ev
	}

	if ate {
		ev.Kind = Ate
		g.stateMgr.Feed()
		if g.foodMgr.Len() == 0 {
			g.regenerateFood()
		}
		g.log.Info().
			Str("game", g.UUID).
			Int("score", g.stateMgr.Score()).
			Int("length", g.Snake.Len()).
			Msg("food eaten")
	}
	g.pilot.OnMove(g.Snapshot(), ate)
	ev.Score = g.stateMgr.Score()
	return ev
}

func (g *Game) endGame(head types.Point, dir types.Direction, collision manager.CollisionType) {
	g.Snake.Dead = true
	g.running = false
	g.collision = collision
	g.pilot.OnCollision(head)
	g.pilot.Patterns().Update(dir, false)
	g.stateMgr.EndGame()
	g.log.Info().
		Str("game", g.UUID).
		Stringer("collision", collision).
		Int("score", g.stateMgr.Score()).
		Int("length", g.Snake.Len()).
		Dur("elapsed", g.Elapsed()).
		Msg("game over")
}

func (g *Game) regenerateFood() {
	now := g.now()
	danger := g.pilot.Danger()
	g.foodMgr.GenerateFood(g.Snake.Body, g.Difficulty, g.stateMgr.Score(), func(p types.Point) bool {
		return danger.Contains(p, now)
	})
}

// Snapshot copies the current board into the pilot's input.
func (g *Game) Snapshot() ai.State {
	return ai.State{
		Grid:       g.Grid,
		Snake:      g.Snake.Copy(),
		Heading:    g.Snake.Direction,
		Next:       g.Snake.Next,
		Foods:      g.foodMgr.GetFoodList(),
		Difficulty: g.Difficulty,
		SinceFed:   g.stateMgr.SinceFed(),
		Tick:       g.tick,
	}
}

// SetFoods replaces the food list, mostly for scripted scenarios.
func (g *Game) SetFoods(foods ...types.Point) {
	g.foodMgr.SetFoodList(foods)
}

func (g *Game) Foods() []types.Point {
	return g.foodMgr.GetFoodList()
}

func (g *Game) Running() bool {
	return g.running
}

func (g *Game) Over() bool {
	return g.Snake.Dead
}

func (g *Game) Score() int {
	return g.stateMgr.Score()
}

func (g *Game) Ticks() uint64 {
	return g.tick
}

// Now reads the game clock.
func (g *Game) Now() time.Time {
	return g.now()
}

func (g *Game) Elapsed() time.Duration {
	if g.StartTime.IsZero() {
		return 0
	}
	return g.now().Sub(g.StartTime)
}

func (g *Game) IsStarving() bool {
	return g.pilot.IsStarving(g.Snapshot())
}

func (g *Game) Hunger() ai.Hunger {
	return g.pilot.Hunger(g.Snapshot())
}

// RiskLevel is high once the snake is dead.
func (g *Game) RiskLevel() ai.RiskLevel {
	if g.Snake.Dead {
		return ai.RiskHigh
	}
	return g.pilot.RiskLevel(g.Snapshot())
}

func (g *Game) Pilot() *ai.Pilot {
	return g.pilot
}

// Result describes the current round for the stats store. Cause is the
// collision that ended it, or empty while the snake is alive.
func (g *Game) Result(seed uint64) stats.Result {
	res := stats.Result{
		ID:        g.UUID,
		Seed:      seed,
		Score:     g.stateMgr.Score(),
		Length:    g.Snake.Len(),
		Ticks:     g.tick,
		StartTime: g.StartTime,
		EndTime:   g.now(),
	}
	if g.Snake.Dead {
		res.Cause = g.collision.String()
	}
	return res
}

// Stats exposes the high score and score history.
func (g *Game) Stats() *manager.StateManager {
	return g.stateMgr
}

// Status is the data a status panel shows.
type Status struct {
	Running   bool
	Autopilot bool
	Over      bool
	Hunger    ai.Hunger
	Risk      ai.RiskLevel
	Reason    ai.Reason
	Score     int
	HighScore int
	Length    int
	Elapsed   time.Duration
}

func (g *Game) Status() Status {
	s := g.Snapshot()
	return Status{
		Running:   g.running,
		Autopilot: g.Autopilot,
		Over:      g.Snake.Dead,
		Hunger:    g.pilot.Hunger(s),
		Risk:      g.RiskLevel(),
		Reason:    g.pilot.Explain().Reason,
		Score:     g.stateMgr.Score(),
		HighScore: g.stateMgr.GetHighScore(),
		Length:    g.Snake.Len(),
		Elapsed:   g.Elapsed(),
	}
}
