package game

import (
	"math/rand"
	"testing"
)

func TestSpawnFood_AvoidsOccupiedCells(t *testing.T) {
	for _, m := range MapTypes {
		layout, err := Generate(m)
		if err != nil {
			t.Fatal(err)
		}
		state := NewGameFromLayout(layout, []ControlType{AI, AI, AI, AI}, nil)
		rng := rand.New(rand.NewSource(7))

		placed := SpawnFood(state, 4, rng)
		t.Logf("%s after spawn:\n%s", m, dumpState(state))

		if len(placed) != 4 || len(state.Food) != 4 {
			t.Fatalf("%s: placed=%d food=%d want 4", m, len(placed), len(state.Food))
		}
		seen := map[Point]bool{}
		for _, f := range state.Food {
			if seen[f] {
				t.Fatalf("%s: duplicate food at %v", m, f)
			}
			seen[f] = true
			if state.IsObstacle(f) {
				t.Fatalf("%s: food on obstacle %v", m, f)
			}
			for i, p := range state.Players {
				for _, seg := range p.Body {
					if seg == f {
						t.Fatalf("%s: food on player %d at %v", m, i, f)
					}
				}
			}
		}
	}
}

func TestSpawnFood_FullBoardPlacesNothing(t *testing.T) {
	state := NewGameState(3)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if x == 1 && y == 1 {
				continue
			}
			state.Obstacles.Put(Point{X: x, Y: y})
		}
	}
	state.Food = []Point{{X: 1, Y: 1}}

	placed := SpawnFood(state, 2, rand.New(rand.NewSource(1)))
	if len(placed) != 0 || len(state.Food) != 1 {
		t.Fatalf("placed=%v food=%v; a full board must place nothing", placed, state.Food)
	}
}

func TestSpawnFood_SameSeedSameCells(t *testing.T) {
	layout, _ := Generate(MapLake)
	a := NewGameFromLayout(layout, []ControlType{AI, AI}, nil)
	b := NewGameFromLayout(layout, []ControlType{AI, AI}, nil)

	SpawnFood(a, 3, rand.New(rand.NewSource(42)))
	SpawnFood(b, 3, rand.New(rand.NewSource(42)))
	for i := range a.Food {
		if a.Food[i] != b.Food[i] {
			t.Fatalf("food[%d] %v != %v with equal seeds", i, a.Food[i], b.Food[i])
		}
	}
}

func TestSpawnFood_ZeroCount(t *testing.T) {
	state := NewGameState(DefaultBoardSize)
	if got := SpawnFood(state, 0, rand.New(rand.NewSource(1))); got != nil {
		t.Fatalf("SpawnFood(0) = %v", got)
	}
}
