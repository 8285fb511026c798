package game

// PlacePlayers builds one player per control type from the layout's spawn
// slots, in slot order. Colors are assigned by index; a short colors slice
// leaves the rest on the palette fallback.
func PlacePlayers(layout Layout, controls []ControlType, colors []Color) []Player {
	players := make([]Player, len(controls))
	for i, ctl := range controls {
		spawn := layout.Spawns[i]
		body := make([]Point, SpawnLength)
		copy(body, spawn.Body[:])

		color := Palette[0]
		if i < len(colors) {
			color = colors[i]
		}

		players[i] = Player{
			Control:       ctl,
			Body:          body,
			Direction:     spawn.Direction,
			NextDirection: spawn.Direction,
			Alive:         true,
			Color:         color,
		}
	}
	return players
}

// NewGameFromLayout returns a fresh state for the layout with players placed
// and no food yet.
func NewGameFromLayout(layout Layout, controls []ControlType, colors []Color) *GameState {
	return &GameState{
		BoardSize: layout.BoardSize,
		Players:   PlacePlayers(layout, controls, colors),
		Obstacles: layout.Obstacles,
	}
}
