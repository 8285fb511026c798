package game

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// MapType selects a board variant.
type MapType string

const (
	MapClassic   MapType = "classic"
	MapDeathStar MapType = "death-star"
	MapKingdoms  MapType = "kingdoms"
	MapLake      MapType = "lake"
)

// MapTypes lists every supported variant.
var MapTypes = []MapType{MapClassic, MapDeathStar, MapKingdoms, MapLake}

// ErrUnknownMap is returned for map names outside MapTypes.
var ErrUnknownMap = errors.New("unknown map type")

// ParseMapType accepts any of the MapTypes names.
func ParseMapType(s string) (MapType, error) {
	m := MapType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MapTypes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMap, s)
}

// MaxPlayers is the number of spawn slots every map provides.
const MaxPlayers = 4

// Spawn is the starting body (head first) and direction for one player slot.
type Spawn struct {
	Body      [SpawnLength]Point
	Direction Direction
}

// Layout is the static part of a board: its walls and where players start.
type Layout struct {
	Map       MapType
	BoardSize int
	Obstacles mapset.Set[Point]
	Spawns    [MaxPlayers]Spawn
}

// spawnDirections are shared by every map: the two left slots face right.
var spawnDirections = [MaxPlayers]Direction{Right, Right, Left, Left}

// Generate builds the obstacle set and spawn slots for m.
// It is deterministic: the same MapType always yields the same Layout.
func Generate(m MapType) (Layout, error) {
	const size = DefaultBoardSize

	layout := Layout{Map: m, BoardSize: size, Obstacles: mapset.New[Point]()}
	switch m {
	case MapClassic:
		layout.Spawns = cornerSpawns(size, 2)
	case MapDeathStar:
		deathStarObstacles(layout.Obstacles, size)
		layout.Spawns = cornerSpawns(size, 5)
	case MapKingdoms:
		kingdomsObstacles(layout.Obstacles, size)
		layout.Spawns = quadrantSpawns(size)
	case MapLake:
		lakeObstacles(layout.Obstacles, size)
		layout.Spawns = cornerSpawns(size, 2)
	default:
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownMap, m)
	}
	return layout, nil
}

// cornerSpawns places a horizontal snake in each quadrant, inset rows from the
// top/bottom. Left slots trail toward x=inset-2, right slots mirror them.
func cornerSpawns(size, inset int) [MaxPlayers]Spawn {
	top, bottom := inset, size-1-inset
	left, right := inset, size-1-inset

	var out [MaxPlayers]Spawn
	rows := [MaxPlayers]int{top, bottom, top, bottom}
	for i := range out {
		y := rows[i]
		out[i].Direction = spawnDirections[i]
		for j := 0; j < SpawnLength; j++ {
			if i < 2 {
				out[i].Body[j] = Point{X: left - j, Y: y}
			} else {
				out[i].Body[j] = Point{X: right + j, Y: y}
			}
		}
	}
	return out
}

func quadrantSpawns(size int) [MaxPlayers]Spawn {
	near, far := 4, size-5

	var out [MaxPlayers]Spawn
	rows := [MaxPlayers]int{near, far, near, far}
	for i := range out {
		out[i].Direction = spawnDirections[i]
		for j := 0; j < SpawnLength; j++ {
			if i < 2 {
				out[i].Body[j] = Point{X: near - j, Y: rows[i]}
			} else {
				out[i].Body[j] = Point{X: far + j, Y: rows[i]}
			}
		}
	}
	return out
}

// deathStarObstacles fills everything outside a centered circle.
func deathStarObstacles(obs mapset.Set[Point], size int) {
	center := float64(size)/2 - 0.5
	radius := float64(size)/2 - 1

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if math.Hypot(float64(x)-center, float64(y)-center) > radius {
				obs.Put(Point{X: x, Y: y})
			}
		}
	}
}

// kingdomsObstacles draws two-cell-thick walls along both mid-lines. Each wall
// keeps a wide central gap and a two-cell gap at either board edge.
func kingdomsObstacles(obs mapset.Set[Point], size int) {
	lo, hi := size/2-1, size/2
	gapLo, gapHi := size/2-3, size/2+2
	edge := 2

	open := func(v int) bool {
		return v < edge || v > size-1-edge || (v >= gapLo && v <= gapHi)
	}

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			horizontal := (y == lo || y == hi) && !open(x)
			vertical := (x == lo || x == hi) && !open(y)
			if horizontal || vertical {
				obs.Put(Point{X: x, Y: y})
			}
		}
	}
}

// lakeObstacles carves a trapezoid that narrows from top to bottom.
func lakeObstacles(obs mapset.Set[Point], size int) {
	const (
		topWidth    = 10
		bottomWidth = 6
		height      = 6
		lakeTop     = 7
	)

	topStart := float64(size-topWidth) / 2
	topEnd := topStart + topWidth
	bottomStart := float64(size-bottomWidth) / 2
	bottomEnd := bottomStart + bottomWidth

	for y := lakeTop; y < lakeTop+height; y++ {
		r := float64(y-lakeTop) / height
		left := int(math.Floor(topStart + (bottomStart-topStart)*r))
		right := int(math.Ceil(topEnd + (bottomEnd-topEnd)*r))
		for x := left; x < right; x++ {
			obs.Put(Point{X: x, Y: y})
		}
	}
}
