// Package tui is a bubbletea frontend for the arena. It only renders
// snapshots and turns key presses into engine commands; the game itself runs
// in the engine's Driver.
package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/snekarena/engine"
	"github.com/brensch/snekarena/game"
)

// Model is the bubbletea model for one arena session.
type Model struct {
	d       *engine.Driver
	updates <-chan engine.Update

	snap  engine.Snapshot
	setup engine.Settings
	err   error
}

// New returns a model showing the setup screen for s. updates should come
// from d.Subscribe.
func New(d *engine.Driver, updates <-chan engine.Update, s engine.Settings) Model {
	return Model{
		d:       d,
		updates: updates,
		snap:    d.Snapshot(),
		setup:   s,
	}
}

type updatesClosed struct{}

func waitForUpdate(updates <-chan engine.Update) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return updatesClosed{}
		}
		return u
	}
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engine.Update:
		m.snap = msg.Snapshot
		return m, waitForUpdate(m.updates)
	case updatesClosed:
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		switch m.snap.Status {
		case engine.Over:
			m.d.Reset()
			fallthrough
		case engine.NotStarted:
			m.err = m.d.Start(m.setup)
		}
	case "p", " ":
		m.d.TogglePause()
	case "r":
		m.d.Reset()
		m.err = nil
	default:
		if m.snap.Status == engine.NotStarted {
			m.editSetup(key)
			break
		}
		if s, ok := steering[key]; ok {
			m.d.SetDirection(s.player, s.dir)
		}
	}
	m.snap = m.d.Snapshot()
	return m, nil
}

// editSetup handles the setup screen keys: m map, v speed, n player count,
// 1-4 toggle human/AI.
func (m *Model) editSetup(key string) {
	s := &m.setup
	switch key {
	case "m":
		i := slices.Index(game.MapTypes, s.Map)
		s.Map = game.MapTypes[(i+1)%len(game.MapTypes)]
	case "v":
		i := slices.Index(engine.Speeds, s.SpeedMs)
		s.SpeedMs = engine.Speeds[(i+1)%len(engine.Speeds)]
	case "n":
		n := s.PlayerCount + 1
		if n > engine.MaxPlayers {
			n = engine.MinPlayers
		}
		s.PlayerCount = n
		for len(s.PlayerTypes) < n {
			s.PlayerTypes = append(s.PlayerTypes, game.AI)
		}
		s.PlayerTypes = s.PlayerTypes[:n]
		if len(s.Colors) > 0 {
			for len(s.Colors) < n {
				s.Colors = append(s.Colors, game.ColorRandom)
			}
			s.Colors = s.Colors[:n]
		}
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(s.PlayerTypes) {
			if s.PlayerTypes[i] == game.Human {
				s.PlayerTypes[i] = game.AI
			} else {
				s.PlayerTypes[i] = game.Human
			}
		}
	}
	m.err = nil
}
