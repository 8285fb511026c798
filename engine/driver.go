package engine

import (
	"context"
	"sync"
	"time"

	"github.com/brensch/snekarena/game"
)

// Update is published to subscribers after every tick and every command.
// Result is nil when the update came from a command rather than a tick.
type Update struct {
	Result   *TickResult
	Snapshot Snapshot
}

// Driver owns the timer that advances an Engine. Lifecycle commands go
// through the driver so the ticker is always stopped before a new one is armed.
type Driver struct {
	e     *Engine
	rearm chan struct{}

	mu   sync.Mutex
	subs map[int]chan Update
	next int
}

// NewDriver wraps e. Nothing ticks until Run is called.
func NewDriver(e *Engine) *Driver {
	return &Driver{
		e:     e,
		rearm: make(chan struct{}, 1),
		subs:  make(map[int]chan Update),
	}
}

// Engine returns the wrapped engine.
func (d *Driver) Engine() *Engine { return d.e }

// Run ticks the engine at its configured interval until ctx is done. Only one
// ticker exists at a time and it is armed only while the game is running.
func (d *Driver) Run(ctx context.Context) error {
	var (
		ticker *time.Ticker
		tickC  <-chan time.Time
	)
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	arm := func() {
		stop()
		if d.e.Status() == Running {
			ticker = time.NewTicker(d.e.Interval())
			tickC = ticker.C
		}
	}
	defer stop()

	arm()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.rearm:
			arm()
		case <-tickC:
			res, snap := d.e.TickSnapshot()
			if res.Skipped {
				continue
			}
			if res.Idle {
				arm()
				continue
			}
			d.publish(Update{Result: &res, Snapshot: snap})
			if res.Over {
				stop()
			}
		}
	}
}

// Subscribe returns a channel of updates. Slow readers miss updates rather
// than stall the ticker. Call cancel to stop receiving.
func (d *Driver) Subscribe(buffer int) (<-chan Update, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.next
	d.next++
	ch := make(chan Update, buffer)
	d.subs[id] = ch

	return ch, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if c, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(c)
		}
	}
}

func (d *Driver) publish(u Update) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, ch := range d.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// kick asks Run to re-evaluate its ticker. Pending requests coalesce.
func (d *Driver) kick() {
	select {
	case d.rearm <- struct{}{}:
	default:
	}
}

func (d *Driver) changed() {
	d.kick()
	d.publish(Update{Snapshot: d.e.Snapshot()})
}

// Start begins a game and arms the ticker.
func (d *Driver) Start(s Settings) error {
	if err := d.e.Start(s); err != nil {
		return err
	}
	d.changed()
	return nil
}

// TogglePause pauses or resumes the game.
func (d *Driver) TogglePause() {
	d.e.TogglePause()
	d.changed()
}

// Reset discards the game and disarms the ticker.
func (d *Driver) Reset() {
	d.e.Reset()
	d.changed()
}

// SetSpeed changes the tick interval; the ticker is rearmed at the new rate.
func (d *Driver) SetSpeed(ms int) error {
	if err := d.e.SetSpeed(ms); err != nil {
		return err
	}
	d.changed()
	return nil
}

// SetDirection forwards human input to the engine.
func (d *Driver) SetDirection(idx int, dir game.Direction) bool {
	return d.e.SetDirection(idx, dir)
}

// Snapshot returns the engine's current snapshot.
func (d *Driver) Snapshot() Snapshot { return d.e.Snapshot() }
