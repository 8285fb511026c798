package tui

import "github.com/brensch/snekarena/game"

type steer struct {
	player int
	dir    game.Direction
}

// steering maps keys to players: arrows, WASD, IJKL, TFGH.
var steering = map[string]steer{
	"up":    {0, game.Up},
	"down":  {0, game.Down},
	"left":  {0, game.Left},
	"right": {0, game.Right},

	"w": {1, game.Up},
	"s": {1, game.Down},
	"a": {1, game.Left},
	"d": {1, game.Right},

	"i": {2, game.Up},
	"k": {2, game.Down},
	"j": {2, game.Left},
	"l": {2, game.Right},

	"t": {3, game.Up},
	"g": {3, game.Down},
	"f": {3, game.Left},
	"h": {3, game.Right},
}

// playerKeys is shown on the scoreboard next to each player.
var playerKeys = [game.MaxPlayers]string{"arrows", "WASD", "IJKL", "TFGH"}
