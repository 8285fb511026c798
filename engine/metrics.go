package engine

import (
	"sync/atomic"
	"time"
)

// Metrics are runtime counters for one engine, safe for concurrent use.
type Metrics struct {
	ticks          atomic.Int64
	skippedTicks   atomic.Int64
	inputsAccepted atomic.Int64
	inputsRejected atomic.Int64
	foodEaten      atomic.Int64
	eliminations   atomic.Int64
	gamesStarted   atomic.Int64
	totalTickNs    atomic.Int64
}

func (m *Metrics) incSkipped() { m.skippedTicks.Add(1) }
func (m *Metrics) incAccepted() { m.inputsAccepted.Add(1) }
func (m *Metrics) incRejected() { m.inputsRejected.Add(1) }
func (m *Metrics) incGames() { m.gamesStarted.Add(1) }
func (m *Metrics) addFood(n int) { m.foodEaten.Add(int64(n)) }
func (m *Metrics) addEliminated(n int) { m.eliminations.Add(int64(n)) }

func (m *Metrics) addTick(d time.Duration) {
	m.ticks.Add(1)
	m.totalTickNs.Add(d.Nanoseconds())
}

// Snapshot returns a read-only copy suitable for JSON output.
func (m *Metrics) Snapshot() map[string]any {
	ticks := m.ticks.Load()
	total := m.totalTickNs.Load()
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":      ticks,
		"ticks_skipped":   m.skippedTicks.Load(),
		"inputs_accepted": m.inputsAccepted.Load(),
		"inputs_rejected": m.inputsRejected.Load(),
		"food_eaten":      m.foodEaten.Load(),
		"eliminations":    m.eliminations.Load(),
		"games_started":   m.gamesStarted.Load(),
		"avg_tick_ms":     avgMs,
	}
}
