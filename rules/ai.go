package rules

import (
	"math"
	"math/rand"

	"github.com/brensch/snekarena/game"
)

const (
	// AggressionChance is the probability of hunting an opponent instead of food.
	AggressionChance = 0.30
	// AggressionRange is the Manhattan distance under which an opponent is hunted.
	AggressionRange = 10
)

// Strategy picks the next direction for an AI-controlled player.
type Strategy interface {
	Decide(state *game.GameState, idx int, rng *rand.Rand) game.Direction
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(state *game.GameState, idx int, rng *rand.Rand) game.Direction

func (f StrategyFunc) Decide(state *game.GameState, idx int, rng *rand.Rand) game.Direction {
	return f(state, idx, rng)
}

// Greedy is the built-in one-step heuristic: sometimes chase the nearest
// opponent, otherwise head for the nearest food, otherwise wander.
type Greedy struct{}

func (Greedy) Decide(state *game.GameState, idx int, rng *rand.Rand) game.Direction {
	return Decide(state, idx, rng)
}

// Decide returns the greedy choice for the player at idx.
// With no legal move it returns the current direction, which will be fatal.
func Decide(state *game.GameState, idx int, rng *rand.Rand) game.Direction {
	you := &state.Players[idx]
	if !you.Alive {
		return you.Direction
	}

	candidates := LegalDirections(state, idx)
	if len(candidates) == 0 {
		return you.Direction
	}

	head := you.Head()

	if hasOpponent(state, idx) && rng.Float64() < AggressionChance {
		if d, ok := intercept(state, idx, candidates, rng); ok {
			return d
		}
	}

	if target, dist, ok := nearestFood(state, head); ok {
		closer := filterCloser(head, candidates, target, dist)
		if len(closer) > 0 {
			return closer[rng.Intn(len(closer))]
		}
	}

	return candidates[rng.Intn(len(candidates))]
}

func hasOpponent(state *game.GameState, idx int) bool {
	for i := range state.Players {
		if i != idx && state.Players[i].Alive {
			return true
		}
	}
	return false
}

// intercept aims at the cell the closest opponent is about to enter.
func intercept(state *game.GameState, idx int, candidates []game.Direction, rng *rand.Rand) (game.Direction, bool) {
	head := state.Players[idx].Head()

	closest := -1
	minDist := math.MaxInt
	for i := range state.Players {
		opp := &state.Players[i]
		if i == idx || !opp.Alive {
			continue
		}
		if d := game.Manhattan(head, opp.Head()); d < minDist {
			minDist = d
			closest = i
		}
	}
	if closest < 0 || minDist >= AggressionRange {
		return 0, false
	}

	opp := &state.Players[closest]
	predicted := opp.Head().Add(opp.Direction)

	hits := filterCloser(head, candidates, predicted, minDist)
	if len(hits) == 0 {
		return 0, false
	}
	return hits[rng.Intn(len(hits))], true
}

func nearestFood(state *game.GameState, head game.Point) (game.Point, int, bool) {
	var best game.Point
	minDist := math.MaxInt
	for _, f := range state.Food {
		if d := game.Manhattan(head, f); d < minDist {
			minDist = d
			best = f
		}
	}
	return best, minDist, minDist != math.MaxInt
}

// filterCloser keeps the candidates whose new head is strictly nearer to
// target than dist.
func filterCloser(head game.Point, candidates []game.Direction, target game.Point, dist int) []game.Direction {
	out := make([]game.Direction, 0, len(candidates))
	for _, d := range candidates {
		if game.Manhattan(head.Add(d), target) < dist {
			out = append(out, d)
		}
	}
	return out
}
