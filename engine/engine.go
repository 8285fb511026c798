// Package engine runs arena games: it owns the game state, validates settings,
// and advances the simulation one tick at a time in a fixed order.
//
// The engine holds no timers or goroutines of its own. Something outside calls
// Tick on a cadence (see Driver); human input arrives through SetDirection
// between ticks. All methods are safe for concurrent use.
package engine

import (
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brensch/snekarena/game"
	"github.com/brensch/snekarena/rules"
)

// Status is the lifecycle stage of the engine.
type Status string

const (
	NotStarted Status = "not-started"
	Running    Status = "running"
	Paused     Status = "paused"
	Over       Status = "over"
)

// Engine is the tick scheduler for one game at a time.
type Engine struct {
	mu      sync.Mutex
	ticking atomic.Bool

	rng      *rand.Rand
	strategy rules.Strategy
	log      *zap.SugaredLogger
	metrics  *Metrics

	status    Status
	gameID    string
	settings  Settings
	speedMs   int
	state     *game.GameState
	obstacles []game.Point
	winner    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for AI choices, food and colors.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithStrategy replaces the AI used for AI-controlled players.
func WithStrategy(s rules.Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// New returns an engine in the NotStarted state.
func New(opts ...Option) *Engine {
	e := &Engine{
		strategy: rules.Greedy{},
		log:      zap.NewNop().Sugar(),
		metrics:  &Metrics{},
		status:   NotStarted,
		speedMs:  DefaultSpeedMs,
		winner:   rules.NoWinner,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Metrics returns the engine's runtime counters.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Status returns the current lifecycle stage.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Interval is the tick period the current game asked for.
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return time.Duration(e.speedMs) * time.Millisecond
}

// Start validates s and begins a new game. On error nothing changes.
func (e *Engine) Start(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	layout, err := game.Generate(s.Map)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != NotStarted {
		return fmt.Errorf("%w (status %s)", ErrAlreadyStarted, e.status)
	}

	colors := resolveColors(s.Colors, s.PlayerCount, e.rng)
	state := game.NewGameFromLayout(layout, s.PlayerTypes, colors)
	game.SpawnFood(state, s.PlayerCount, e.rng)

	e.state = state
	e.settings = s
	e.speedMs = s.SpeedMs
	e.obstacles = sortedCells(layout.Obstacles)
	e.gameID = uuid.NewString()
	e.winner = rules.NoWinner
	e.status = Running
	e.metrics.incGames()

	e.log.Infow("game started",
		"game", e.gameID,
		"map", s.Map,
		"players", s.PlayerCount,
		"speed_ms", s.SpeedMs,
		"food", len(state.Food),
	)
	return nil
}

// Reset discards the current game, from any state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != NotStarted {
		e.log.Infow("game reset", "game", e.gameID, "status", e.status)
	}
	e.state = nil
	e.obstacles = nil
	e.gameID = ""
	e.settings = Settings{}
	e.winner = rules.NoWinner
	e.status = NotStarted
}

// TogglePause switches between Running and Paused. Other states are unchanged.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case Running:
		e.status = Paused
	case Paused:
		e.status = Running
	default:
		return
	}
	e.log.Infow("pause toggled", "game", e.gameID, "status", e.status)
}

// SetSpeed changes the tick interval of the current game.
func (e *Engine) SetSpeed(ms int) error {
	if !slices.Contains(Speeds, ms) {
		return fmt.Errorf("%w: %dms (want one of %v)", ErrSpeed, ms, Speeds)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.speedMs = ms
	e.settings.SpeedMs = ms
	return nil
}

// SetDirection queues dir as the next move of a human player. It is ignored
// unless the game is running, the player is a living human, and dir is not
// the reverse of the direction the player is committed to.
func (e *Engine) SetDirection(idx int, dir game.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != Running || idx < 0 || idx >= len(e.state.Players) {
		e.metrics.incRejected()
		return false
	}
	p := &e.state.Players[idx]
	if !p.Alive || p.Control != game.Human || !dir.Valid() || dir == p.Direction.Reverse() {
		e.metrics.incRejected()
		return false
	}

	p.NextDirection = dir
	e.metrics.incAccepted()
	return true
}

// TickResult reports what one Tick call did.
type TickResult struct {
	Turn       int
	Ate        []int
	Eliminated []int
	FoodPlaced int
	Over       bool
	Winner     int
	// Skipped is set when the call overlapped a tick already in progress.
	Skipped bool
	// Idle is set when the engine was not running and nothing happened.
	Idle bool
}

// Tick advances the game by one step. It does nothing unless Running, and a
// call that arrives while another is still in progress is dropped.
func (e *Engine) Tick() TickResult {
	res, _ := e.step(false)
	return res
}

// TickSnapshot is Tick plus the board as it stood when that tick finished.
// The snapshot is only filled in for ticks that ran.
func (e *Engine) TickSnapshot() (TickResult, Snapshot) {
	return e.step(true)
}

func (e *Engine) step(withSnapshot bool) (TickResult, Snapshot) {
	if !e.ticking.CompareAndSwap(false, true) {
		e.metrics.incSkipped()
		return TickResult{Skipped: true, Winner: rules.NoWinner}, Snapshot{}
	}
	defer e.ticking.Store(false)

	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != Running {
		return TickResult{Idle: true, Over: e.status == Over, Winner: e.winner}, Snapshot{}
	}

	state := e.state

	// 1. Commit queued directions
	for i := range state.Players {
		p := &state.Players[i]
		if !p.Alive {
			continue
		}
		if p.NextDirection == p.Direction.Reverse() {
			p.NextDirection = p.Direction
		}
		p.Direction = p.NextDirection
	}

	// 2. AI planning, every agent against the same pre-move board
	plans := make(map[int]game.Direction)
	for i := range state.Players {
		p := &state.Players[i]
		if p.Alive && p.Control == game.AI {
			plans[i] = e.strategy.Decide(state, i, e.rng)
		}
	}
	for i, d := range plans {
		state.Players[i].NextDirection = d
	}

	// 3. Movement
	prevAlive := rules.AliveCount(state)
	moved := rules.Move(state)

	// 4. Food replenishment
	placed := game.SpawnFood(state, moved.Eaten(), e.rng)

	// 5. Termination
	outcome := rules.Evaluate(prevAlive, state)
	state.Turn++

	res := TickResult{
		Turn:       state.Turn,
		Ate:        moved.Ate,
		Eliminated: moved.Eliminated,
		FoodPlaced: len(placed),
		Over:       outcome.Over,
		Winner:     outcome.Winner,
	}

	for _, idx := range moved.Eliminated {
		p := &state.Players[idx]
		e.log.Infow("player eliminated",
			"game", e.gameID,
			"turn", state.Turn,
			"player", idx,
			"cause", p.DeathCause,
			"score", p.Score,
		)
	}
	if outcome.Over {
		e.status = Over
		e.winner = outcome.Winner
		e.log.Infow("game over", "game", e.gameID, "turn", state.Turn, "winner", outcome.Winner)
	}
	e.log.Debugw("tick",
		"game", e.gameID,
		"turn", state.Turn,
		"ate", moved.Ate,
		"food_placed", len(placed),
		"alive", rules.AliveCount(state),
	)

	e.metrics.addFood(moved.Eaten())
	e.metrics.addEliminated(len(moved.Eliminated))
	e.metrics.addTick(time.Since(start))

	var snap Snapshot
	if withSnapshot {
		snap = e.snapshotLocked()
	}
	return res, snap
}

// Snapshot returns a deep copy of the visible game state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// snapshotLocked copies the board. Lists are never nil so renderers always
// see arrays, even before the first game.
func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		GameID:    e.gameID,
		Status:    e.status,
		SpeedMs:   e.speedMs,
		Winner:    e.winner,
		Players:   []PlayerView{},
		Food:      []game.Point{},
		Obstacles: []game.Point{},
	}
	if e.state == nil {
		return snap
	}

	snap.Turn = e.state.Turn
	snap.BoardSize = e.state.BoardSize
	snap.Map = e.settings.Map
	snap.Players = viewPlayers(e.state.Players)
	snap.Food = append(snap.Food, e.state.Food...)
	snap.Obstacles = append(snap.Obstacles, e.obstacles...)
	return snap
}
