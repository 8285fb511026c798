package rules

import (
	"slices"

	"github.com/brensch/snekarena/game"
)

// NoWinner marks an outcome with nobody left standing.
const NoWinner = -1

// IsValid reports whether the player at index mover may move its head onto p.
// The mover's own current tail is exempt because it vacates this tick.
func IsValid(state *game.GameState, p game.Point, mover int) bool {
	return Classify(state, p, mover) == game.DeathNone
}

// Classify returns why p is an illegal cell for mover, or DeathNone if it is
// legal. It is the single legality predicate for both the AI and movement.
func Classify(state *game.GameState, p game.Point, mover int) game.DeathCause {
	// 1. Bounds
	if !p.InBounds(state.BoardSize) {
		return game.DeathWall
	}

	// 2. Map walls
	if state.IsObstacle(p) {
		return game.DeathObstacle
	}

	// 3. Living bodies, skipping the mover's own tail
	for i := range state.Players {
		other := &state.Players[i]
		if !other.Alive {
			continue
		}
		for j, seg := range other.Body {
			if i == mover && j == len(other.Body)-1 {
				continue
			}
			if seg == p {
				return game.DeathSnake
			}
		}
	}

	return game.DeathNone
}

// LegalDirections returns the directions the player at idx may take this tick,
// in candidate order: never the reverse of its committed direction and never
// onto an invalid cell.
func LegalDirections(state *game.GameState, idx int) []game.Direction {
	you := &state.Players[idx]
	if !you.Alive {
		return nil
	}

	head := you.Head()
	moves := make([]game.Direction, 0, len(game.Directions))
	for _, d := range game.Directions {
		if d == you.Direction.Reverse() {
			continue
		}
		if IsValid(state, head.Add(d), idx) {
			moves = append(moves, d)
		}
	}
	return moves
}

// AliveCount returns the number of players still in the game.
func AliveCount(state *game.GameState) int {
	living := 0
	for _, p := range state.Players {
		if p.Alive {
			living++
		}
	}
	return living
}

// MoveResult describes what happened during one movement step.
type MoveResult struct {
	// Ate lists the players that ate this step, in index order.
	Ate []int
	// Eliminated lists the players that died this step, in index order.
	Eliminated []int
}

// Eaten is the number of food cells consumed.
func (r MoveResult) Eaten() int { return len(r.Ate) }

// Move advances every alive player one cell along its committed direction.
//
// All targets are judged against the board as it stood before anyone moved,
// so the outcome never depends on player order. A player whose target is
// invalid is eliminated in place. Players that validly target the same cell
// are all eliminated as a head-on collision. Survivors grow by one segment
// when their new head lands on food, and otherwise drop their tail.
func Move(state *game.GameState) MoveResult {
	before := state.Clone()

	// 1. Calculate new heads against the untouched snapshot
	targets := make(map[int]game.Point, len(state.Players))
	claims := make(map[game.Point]int, len(state.Players))
	var result MoveResult

	for i := range before.Players {
		p := &before.Players[i]
		if !p.Alive {
			continue
		}
		next := p.Head().Add(p.Direction)
		if cause := Classify(before, next, i); cause != game.DeathNone {
			eliminate(state, i, cause)
			result.Eliminated = append(result.Eliminated, i)
			continue
		}
		targets[i] = next
		claims[next]++
	}

	// 2. Apply moves in index order so results are stable
	for i := range state.Players {
		next, ok := targets[i]
		if !ok {
			continue
		}
		if claims[next] > 1 {
			eliminate(state, i, game.DeathHeadOn)
			result.Eliminated = append(result.Eliminated, i)
			continue
		}

		p := &state.Players[i]
		body := make([]game.Point, 0, len(p.Body)+1)
		body = append(body, next)
		body = append(body, p.Body...)

		if fi := state.FoodIndex(next); fi >= 0 {
			state.Food = append(state.Food[:fi], state.Food[fi+1:]...)
			p.Score++
			result.Ate = append(result.Ate, i)
		} else {
			body = body[:len(body)-1]
		}
		p.Body = body
	}

	slices.Sort(result.Eliminated)
	return result
}

func eliminate(state *game.GameState, idx int, cause game.DeathCause) {
	state.Players[idx].Alive = false
	state.Players[idx].DeathCause = cause
}

// Outcome is the verdict after a tick.
type Outcome struct {
	Over   bool
	Winner int
}

// Evaluate decides whether the game ended this tick. It only ends when at most
// one player is left and somebody was eliminated this tick, so a game started
// with a single player never ends on its own.
func Evaluate(prevAlive int, state *game.GameState) Outcome {
	alive := AliveCount(state)
	if alive > 1 || alive >= prevAlive {
		return Outcome{Winner: NoWinner}
	}

	out := Outcome{Over: true, Winner: NoWinner}
	if alive == 1 {
		for i, p := range state.Players {
			if p.Alive {
				out.Winner = i
				break
			}
		}
	}
	return out
}
