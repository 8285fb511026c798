package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/brensch/snekarena/game"
)

// Configuration errors. Start wraps one of these and leaves the engine untouched.
var (
	ErrPlayerCount    = errors.New("player count must be between 2 and 4 and match the player types")
	ErrPlayerType     = errors.New("unknown player type")
	ErrSpeed          = errors.New("unsupported game speed")
	ErrUnknownMap     = game.ErrUnknownMap
	ErrUnknownColor   = errors.New("unknown color")
	ErrDuplicateColor = errors.New("color chosen by more than one player")
	ErrColorCount     = errors.New("one color choice per player required")
	ErrAlreadyStarted = errors.New("a game is already in progress")
)

const (
	MinPlayers = 2
	MaxPlayers = game.MaxPlayers
)

// Speeds are the supported tick intervals in milliseconds.
var Speeds = []int{50, 100, 150, 200}

// DefaultSpeedMs is the tick interval used when none is given.
const DefaultSpeedMs = 150

// Settings describe one game. Colors may be empty, meaning all random.
type Settings struct {
	PlayerTypes []game.ControlType
	PlayerCount int
	SpeedMs     int
	Map         game.MapType
	Colors      []game.Color
}

// DefaultSettings returns one human against three AIs on the classic map.
func DefaultSettings() Settings {
	return Settings{
		PlayerTypes: []game.ControlType{game.Human, game.AI, game.AI, game.AI},
		PlayerCount: 4,
		SpeedMs:     DefaultSpeedMs,
		Map:         game.MapClassic,
		Colors:      []game.Color{game.ColorRandom, game.ColorRandom, game.ColorRandom, game.ColorRandom},
	}
}

// ParseSettings builds Settings from the textual form used by flags and the
// websocket bridge: player and color names, a map name and a speed.
func ParseSettings(players, colors []string, mapName string, speedMs int) (Settings, error) {
	s := Settings{PlayerCount: len(players), SpeedMs: speedMs}

	for _, name := range players {
		ct, err := game.ParseControlType(name)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %q", ErrPlayerType, name)
		}
		s.PlayerTypes = append(s.PlayerTypes, ct)
	}

	for _, name := range colors {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, err := game.ParseColor(name)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		s.Colors = append(s.Colors, c)
	}

	m, err := game.ParseMapType(mapName)
	if err != nil {
		return Settings{}, err
	}
	s.Map = m

	return s, s.Validate()
}

// Validate checks every field and returns the first configuration error.
func (s Settings) Validate() error {
	if s.PlayerCount < MinPlayers || s.PlayerCount > MaxPlayers {
		return fmt.Errorf("%w: got %d", ErrPlayerCount, s.PlayerCount)
	}
	if len(s.PlayerTypes) != s.PlayerCount {
		return fmt.Errorf("%w: %d types for %d players", ErrPlayerCount, len(s.PlayerTypes), s.PlayerCount)
	}
	for i, ct := range s.PlayerTypes {
		if ct != game.Human && ct != game.AI {
			return fmt.Errorf("%w: player %d", ErrPlayerType, i+1)
		}
	}
	if !slices.Contains(Speeds, s.SpeedMs) {
		return fmt.Errorf("%w: %dms (want one of %v)", ErrSpeed, s.SpeedMs, Speeds)
	}
	if _, err := game.ParseMapType(string(s.Map)); err != nil {
		return err
	}

	if len(s.Colors) == 0 {
		return nil
	}
	if len(s.Colors) != s.PlayerCount {
		return fmt.Errorf("%w: %d colors for %d players", ErrColorCount, len(s.Colors), s.PlayerCount)
	}
	seen := make(map[game.Color]int, len(s.Colors))
	for i, c := range s.Colors {
		if c == game.ColorRandom {
			continue
		}
		if !c.InPalette() {
			return fmt.Errorf("%w: %q", ErrUnknownColor, c)
		}
		if prev, ok := seen[c]; ok {
			return fmt.Errorf("%w: %s for players %d and %d", ErrDuplicateColor, c, prev+1, i+1)
		}
		seen[c] = i
	}
	return nil
}

// resolveColors turns every "random" choice into an unused palette entry.
// Explicit choices are reserved first so a random pick never steals one.
// Once the palette is exhausted the first palette color is reused.
func resolveColors(choices []game.Color, n int, rng *rand.Rand) []game.Color {
	out := make([]game.Color, n)
	used := make(map[game.Color]bool, n)
	for i := 0; i < n; i++ {
		if i < len(choices) && choices[i] != game.ColorRandom {
			out[i] = choices[i]
			used[choices[i]] = true
		}
	}

	for i := 0; i < n; i++ {
		if out[i] != "" {
			continue
		}
		free := make([]game.Color, 0, len(game.Palette))
		for _, c := range game.Palette {
			if !used[c] {
				free = append(free, c)
			}
		}
		if len(free) == 0 {
			out[i] = game.Palette[0]
			continue
		}
		out[i] = free[rng.Intn(len(free))]
		used[out[i]] = true
	}
	return out
}
