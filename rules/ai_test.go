package rules

import (
	"math/rand"
	"testing"

	"github.com/brensch/snekarena/game"
)

// fixedSource always yields the same value. 0 makes Float64 return 0 (always
// aggressive) and Intn return 0; 7<<60 makes Float64 return 0.875.
type fixedSource int64

func (s fixedSource) Int63() int64 { return int64(s) }
func (fixedSource) Seed(int64)     {}

var (
	alwaysHunt = rand.New(fixedSource(0))
	neverHunt  = rand.New(fixedSource(7 << 60))
)

func TestDecide_SeeksFood(t *testing.T) {
	state := board(snake(game.AI, game.Right, pt(5, 5), pt(4, 5), pt(3, 5)))
	state.Food = []game.Point{pt(5, 2), pt(0, 9)}

	// Up is the only move that closes in on (5,2).
	if got := Decide(state, 0, rand.New(rand.NewSource(1))); got != game.Up {
		t.Fatalf("Decide=%s want up\n%s", got, dumpState(state))
	}
}

func TestDecide_Intercepts(t *testing.T) {
	state := board(
		snake(game.AI, game.Right, pt(5, 5), pt(4, 5), pt(3, 5)),
		snake(game.Human, game.Left, pt(8, 5), pt(9, 5), pt(9, 6)),
	)
	state.Food = []game.Point{pt(5, 0)}

	// The opponent is about to enter (7,5); only Right gets closer to it.
	if got := Decide(state, 0, alwaysHunt); got != game.Right {
		t.Fatalf("aggressive Decide=%s want right\n%s", got, dumpState(state))
	}
	// Without the aggressive roll the food above wins.
	if got := Decide(state, 0, neverHunt); got != game.Up {
		t.Fatalf("food Decide=%s want up\n%s", got, dumpState(state))
	}
}

func TestDecide_OpponentOutOfRange(t *testing.T) {
	state := game.NewGameState(game.DefaultBoardSize)
	state.Players = []game.Player{
		snake(game.AI, game.Right, pt(2, 2), pt(1, 2), pt(0, 2)),
		snake(game.AI, game.Left, pt(17, 17), pt(18, 17), pt(19, 17)),
	}
	state.Food = []game.Point{pt(2, 5)}

	// Distance 30 is past AggressionRange, so even a hunting roll seeks food.
	if got := Decide(state, 0, alwaysHunt); got != game.Down {
		t.Fatalf("Decide=%s want down", got)
	}
}

func TestDecide_NoMovesKeepsDirection(t *testing.T) {
	state := board(snake(game.AI, game.Right, pt(5, 0), pt(4, 0), pt(3, 0)))
	state.Obstacles.Put(pt(6, 0))
	state.Obstacles.Put(pt(5, 1))

	if got := Decide(state, 0, rand.New(rand.NewSource(3))); got != game.Right {
		t.Fatalf("Decide=%s want the committed direction right", got)
	}
}

func TestDecide_WandersWithoutFood(t *testing.T) {
	state := board(snake(game.AI, game.Up, pt(5, 5), pt(5, 6), pt(5, 7)))
	got := Decide(state, 0, alwaysHunt)
	// No food, no opponent: first legal candidate with a zero source.
	if got != game.Up {
		t.Fatalf("Decide=%s want up", got)
	}
}

func TestDecide_NeverReversesOrSuicides(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, m := range game.MapTypes {
		layout, err := game.Generate(m)
		if err != nil {
			t.Fatal(err)
		}
		state := game.NewGameFromLayout(layout, []game.ControlType{game.AI, game.AI, game.AI, game.AI}, nil)
		game.SpawnFood(state, 4, rng)

		for turn := 0; turn < 200 && AliveCount(state) > 1; turn++ {
			for i := range state.Players {
				p := &state.Players[i]
				if !p.Alive {
					continue
				}
				p.Direction = p.NextDirection
			}
			for i := range state.Players {
				p := &state.Players[i]
				if !p.Alive {
					continue
				}
				d := Decide(state, i, rng)
				if d == p.Direction.Reverse() {
					t.Fatalf("%s turn %d: player %d reversed %s -> %s", m, turn, i, p.Direction, d)
				}
				if legal := LegalDirections(state, i); len(legal) > 0 && !IsValid(state, p.Head().Add(d), i) {
					t.Fatalf("%s turn %d: player %d chose invalid %s with %v available", m, turn, i, d, legal)
				}
				p.NextDirection = d
			}
			res := Move(state)
			game.SpawnFood(state, res.Eaten(), rng)
		}
	}
}

func TestDecide_ReproducibleWithSeed(t *testing.T) {
	layout, _ := game.Generate(game.MapKingdoms)
	run := func(seed int64) []game.Direction {
		rng := rand.New(rand.NewSource(seed))
		state := game.NewGameFromLayout(layout, []game.ControlType{game.AI, game.AI}, nil)
		game.SpawnFood(state, 2, rng)
		var out []game.Direction
		for turn := 0; turn < 50; turn++ {
			for i := range state.Players {
				if state.Players[i].Alive {
					state.Players[i].Direction = state.Players[i].NextDirection
					state.Players[i].NextDirection = Decide(state, i, rng)
					out = append(out, state.Players[i].NextDirection)
				}
			}
			res := Move(state)
			game.SpawnFood(state, res.Eaten(), rng)
		}
		return out
	}

	a, b := run(5), run(5)
	if len(a) != len(b) {
		t.Fatalf("runs diverged in length %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decision %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}
