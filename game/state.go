// Package game defines the core state types for the arena.
//
// These types hold everything the rules and the tick scheduler need: the
// players with their bodies and directions, the food on the board, and the
// static obstacle set of the chosen map. The state is cheap to clone so that
// movement can be resolved against an untouched snapshot.
package game

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// DefaultBoardSize is the side length of the square board.
const DefaultBoardSize = 20

// SpawnLength is the number of segments every snake starts with.
const SpawnLength = 3

// Point is a board coordinate. (0,0) is top-left and y grows downward.
type Point struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Add returns the cell one step from p in direction d.
func (p Point) Add(d Direction) Point {
	v := d.Vector()
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// InBounds reports whether p lies on a size x size board.
func (p Point) InBounds(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Manhattan returns |dx| + |dy| between a and b.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four unit moves.
type Direction int

// The order matters: it is the order the AI enumerates candidates in.
const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in candidate order.
var Directions = [4]Direction{Up, Down, Left, Right}

var directionNames = [4]string{"up", "down", "left", "right"}

// Vector returns the unit offset for d.
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	return Point{}
}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Reverse returns the opposite direction. Unknown values are returned as is.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts "up", "down", "left" or "right" in any case.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if s == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// ControlType says who steers a player.
type ControlType int

const (
	Human ControlType = iota
	AI
)

func (c ControlType) String() string {
	if c == AI {
		return "ai"
	}
	return "human"
}

// ParseControlType accepts "human" or "ai" in any case.
func ParseControlType(s string) (ControlType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return Human, nil
	case "ai":
		return AI, nil
	}
	return 0, fmt.Errorf("unknown player type %q", s)
}

// DeathCause records why a player was eliminated.
type DeathCause string

const (
	DeathNone     DeathCause = ""
	DeathWall     DeathCause = "wall-collision"
	DeathObstacle DeathCause = "obstacle-collision"
	DeathSnake    DeathCause = "snake-collision"
	DeathHeadOn   DeathCause = "head-collision"
)

// Player is one snake and who controls it.
// Body is head first. Direction is the committed move for the current tick;
// NextDirection is what gets committed at the start of the next one.
type Player struct {
	Control       ControlType
	Body          []Point
	Direction     Direction
	NextDirection Direction
	Score         int
	Alive         bool
	Color         Color
	DeathCause    DeathCause
}

// Head returns the first body segment.
func (p *Player) Head() Point { return p.Body[0] }

// Tail returns the last body segment.
func (p *Player) Tail() Point { return p.Body[len(p.Body)-1] }

// GameState is the complete board state for one game.
// Player index is the player's identity for the whole game.
type GameState struct {
	BoardSize int
	Players   []Player
	Food      []Point
	Obstacles mapset.Set[Point]
	Turn      int
}

// NewGameState returns an empty board of the given size with no obstacles.
func NewGameState(size int) *GameState {
	return &GameState{
		BoardSize: size,
		Obstacles: mapset.New[Point](),
	}
}

// Clone performs a deep copy of the players and food.
// Obstacles are static for the lifetime of a game and are shared.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	out := &GameState{
		BoardSize: s.BoardSize,
		Obstacles: s.Obstacles,
		Turn:      s.Turn,
	}

	if len(s.Food) > 0 {
		out.Food = make([]Point, len(s.Food))
		copy(out.Food, s.Food)
	}

	if len(s.Players) > 0 {
		out.Players = make([]Player, len(s.Players))
		for i := range s.Players {
			out.Players[i] = s.Players[i]
			out.Players[i].Body = make([]Point, len(s.Players[i].Body))
			copy(out.Players[i].Body, s.Players[i].Body)
		}
	}

	return out
}

// IsObstacle reports whether p is a wall cell of the current map.
func (s *GameState) IsObstacle(p Point) bool {
	return s.Obstacles.Has(p)
}

// FoodIndex returns the index of the food at p, or -1.
func (s *GameState) FoodIndex(p Point) int {
	for i, f := range s.Food {
		if f == p {
			return i
		}
	}
	return -1
}
