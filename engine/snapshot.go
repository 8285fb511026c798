package engine

import (
	"cmp"
	"slices"

	"github.com/brensch/snekarena/game"
	"github.com/zyedidia/generic/mapset"
)

// PlayerView is the read-only view of one player.
type PlayerView struct {
	Index      int          `json:"index" msgpack:"index"`
	Control    string       `json:"control" msgpack:"control"`
	Body       []game.Point `json:"body" msgpack:"body"`
	Direction  string       `json:"direction" msgpack:"direction"`
	Score      int          `json:"score" msgpack:"score"`
	Alive      bool         `json:"alive" msgpack:"alive"`
	Color      game.Color   `json:"color" msgpack:"color"`
	ColorHex   string       `json:"colorHex" msgpack:"colorHex"`
	DeathCause string       `json:"deathCause,omitempty" msgpack:"deathCause,omitempty"`
}

// Snapshot is a deep copy of everything a frontend needs to draw a frame.
// Winner is -1 when there is none (game running, or a tie).
type Snapshot struct {
	GameID    string       `json:"gameId" msgpack:"gameId"`
	Status    Status       `json:"status" msgpack:"status"`
	Turn      int          `json:"turn" msgpack:"turn"`
	BoardSize int          `json:"boardSize" msgpack:"boardSize"`
	Map       game.MapType `json:"map" msgpack:"map"`
	SpeedMs   int          `json:"speedMs" msgpack:"speedMs"`
	Players   []PlayerView `json:"players" msgpack:"players"`
	Food      []game.Point `json:"food" msgpack:"food"`
	Obstacles []game.Point `json:"obstacles" msgpack:"obstacles"`
	Winner    int          `json:"winner" msgpack:"winner"`
}

// Started reports whether a game exists, running or not.
func (s Snapshot) Started() bool { return s.Status != NotStarted }

// Paused reports whether the game is paused.
func (s Snapshot) Paused() bool { return s.Status == Paused }

// Over reports whether the game has ended.
func (s Snapshot) Over() bool { return s.Status == Over }

func viewPlayers(players []game.Player) []PlayerView {
	out := make([]PlayerView, len(players))
	for i, p := range players {
		body := make([]game.Point, len(p.Body))
		copy(body, p.Body)
		out[i] = PlayerView{
			Index:      i,
			Control:    p.Control.String(),
			Body:       body,
			Direction:  p.Direction.String(),
			Score:      p.Score,
			Alive:      p.Alive,
			Color:      p.Color,
			ColorHex:   p.Color.Hex(),
			DeathCause: string(p.DeathCause),
		}
	}
	return out
}

// sortedCells lists a set row by row, left to right.
func sortedCells(set mapset.Set[game.Point]) []game.Point {
	out := make([]game.Point, 0, set.Size())
	set.Each(func(p game.Point) {
		out = append(out, p)
	})
	slices.SortFunc(out, func(a, b game.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}
