package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snekarena/engine"
	"github.com/brensch/snekarena/game"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9d"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	wallStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	foodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
	boardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444"))
	bannerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.DoubleBorder())
	emptyCell     = dimStyle.Render(". ")
	wallCell      = wallStyle.Render("##")
	foodCell      = foodStyle.Render("<>")
	scoreboardGap = "  "
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SNAKE ARENA"))
	b.WriteString("\n\n")

	if m.snap.Status == engine.NotStarted {
		b.WriteString(m.setupView())
	} else {
		b.WriteString(m.header())
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boardStyle.Render(renderBoard(m.snap)), scoreboardGap, scoreboard(m.snap)))
		b.WriteString("\n")
		if m.snap.Status == engine.Over {
			b.WriteString(gameOver(m.snap))
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("p pause  r reset  q quit"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) header() string {
	status := strings.ToUpper(string(m.snap.Status))
	return fmt.Sprintf("map %s  speed %dms  turn %d  %s\n", m.snap.Map, m.snap.SpeedMs, m.snap.Turn, status)
}

func (m Model) setupView() string {
	s := m.setup
	var b strings.Builder
	fmt.Fprintf(&b, "Map      %s\n", s.Map)
	fmt.Fprintf(&b, "Speed    %dms\n", s.SpeedMs)
	fmt.Fprintf(&b, "Players  %d\n", s.PlayerCount)
	for i, ct := range s.PlayerTypes {
		color := game.ColorRandom
		if i < len(s.Colors) {
			color = s.Colors[i]
		}
		fmt.Fprintf(&b, "  P%d  %-5s  %-7s  %s\n", i+1, ct, color, playerKeys[i])
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("m map  v speed  n players  1-4 human/AI  enter start  q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderBoard draws two terminal columns per cell so the board looks square.
func renderBoard(s engine.Snapshot) string {
	n := s.BoardSize
	cells := make([][]string, n)
	for y := range cells {
		cells[y] = make([]string, n)
		for x := range cells[y] {
			cells[y][x] = emptyCell
		}
	}
	set := func(p game.Point, v string) {
		if p.InBounds(n) {
			cells[p.Y][p.X] = v
		}
	}

	for _, o := range s.Obstacles {
		set(o, wallCell)
	}
	for _, f := range s.Food {
		set(f, foodCell)
	}
	// dead snakes first so living ones draw on top
	players := slices.Clone(s.Players)
	slices.SortStableFunc(players, func(a, b engine.PlayerView) int {
		if a.Alive == b.Alive {
			return 0
		}
		if a.Alive {
			return 1
		}
		return -1
	})
	for _, p := range players {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.ColorHex))
		if !p.Alive {
			style = style.Faint(true)
		}
		for i := len(p.Body) - 1; i >= 0; i-- {
			if i == 0 {
				set(p.Body[i], style.Bold(true).Render("@@"))
			} else {
				set(p.Body[i], style.Render("[]"))
			}
		}
	}

	rows := make([]string, n)
	for y := range cells {
		rows[y] = strings.Join(cells[y], "")
	}
	return strings.Join(rows, "\n")
}

func scoreboard(s engine.Snapshot) string {
	var b strings.Builder
	b.WriteString("Scores\n\n")
	for _, p := range s.Players {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.ColorHex))
		state := "alive"
		if !p.Alive {
			state = "out (" + p.DeathCause + ")"
			style = style.Faint(true)
		}
		line := fmt.Sprintf("P%d %-5s %3d  %s", p.Index+1, p.Control, p.Score, state)
		if p.Control == game.Human.String() {
			line += "  [" + playerKeys[p.Index] + "]"
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func gameOver(s engine.Snapshot) string {
	var b strings.Builder
	if s.Winner == -1 {
		b.WriteString("GAME OVER: tie, nobody survived\n")
	} else {
		fmt.Fprintf(&b, "GAME OVER: player %d wins\n", s.Winner+1)
	}

	ranked := slices.Clone(s.Players)
	slices.SortStableFunc(ranked, func(a, b engine.PlayerView) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i, p := range ranked {
		fmt.Fprintf(&b, "%d. P%d  %d\n", i+1, p.Index+1, p.Score)
	}
	b.WriteString("enter to play again")
	return bannerStyle.Render(b.String())
}
