// food.go implements food placement for the arena.

package game

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// MaxSpawnAttempts bounds the random samples spent on a single food item.
const MaxSpawnAttempts = 100

// SpawnFood tries to place count new food items on free cells and appends them
// to state.Food. A cell is free when it holds no obstacle, no snake segment
// (eliminated snakes included) and no food. An item whose attempts run out is
// simply not placed; the shortfall is made up the next time food is eaten.
// It returns the cells that were placed.
func SpawnFood(state *GameState, count int, rng *rand.Rand) []Point {
	if state == nil || count <= 0 || state.BoardSize <= 0 {
		return nil
	}

	occupied := mapset.New[Point]()
	for _, p := range state.Players {
		for _, seg := range p.Body {
			occupied.Put(seg)
		}
	}
	for _, f := range state.Food {
		occupied.Put(f)
	}

	placed := make([]Point, 0, count)
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < MaxSpawnAttempts; attempt++ {
			p := Point{X: rng.Intn(state.BoardSize), Y: rng.Intn(state.BoardSize)}
			if occupied.Has(p) || state.IsObstacle(p) {
				continue
			}
			occupied.Put(p)
			placed = append(placed, p)
			break
		}
	}

	state.Food = append(state.Food, placed...)
	return placed
}
