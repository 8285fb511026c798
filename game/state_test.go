package game

import (
	"strings"
	"testing"
)

// dumpState is a test helper to visualize board state.
// Obstacles are '#', food '*', heads upper-case and bodies lower-case.
func dumpState(state *GameState) string {
	grid := make([][]byte, state.BoardSize)
	for y := 0; y < state.BoardSize; y++ {
		grid[y] = make([]byte, state.BoardSize)
		for x := 0; x < state.BoardSize; x++ {
			grid[y][x] = '.'
			if state.IsObstacle(Point{X: x, Y: y}) {
				grid[y][x] = '#'
			}
		}
	}
	for _, f := range state.Food {
		if f.InBounds(state.BoardSize) {
			grid[f.Y][f.X] = '*'
		}
	}
	for i, p := range state.Players {
		sym := byte('a' + i)
		for j, seg := range p.Body {
			if !seg.InBounds(state.BoardSize) {
				continue
			}
			if j == 0 {
				grid[seg.Y][seg.X] = sym - 32
			} else {
				grid[seg.Y][seg.X] = sym
			}
		}
	}
	var sb strings.Builder
	for y := 0; y < state.BoardSize; y++ {
		sb.Write(grid[y])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestDirection_ReverseAndVector(t *testing.T) {
	for _, d := range Directions {
		v, r := d.Vector(), d.Reverse().Vector()
		if v.X != -r.X || v.Y != -r.Y {
			t.Fatalf("%s reverse=%s vectors %v %v do not cancel", d, d.Reverse(), v, r)
		}
		if d.Reverse().Reverse() != d {
			t.Fatalf("double reverse of %s = %s", d, d.Reverse().Reverse())
		}
	}
	if got := (Point{X: 3, Y: 3}).Add(Up); got != (Point{X: 3, Y: 2}) {
		t.Fatalf("up from (3,3) = %v, want (3,2)", got)
	}
}

func TestDirection_Valid(t *testing.T) {
	for _, d := range Directions {
		if !d.Valid() {
			t.Fatalf("%s should be valid", d)
		}
	}
	for _, d := range []Direction{-1, 4, 9} {
		if d.Valid() {
			t.Fatalf("Direction(%d) should be invalid", int(d))
		}
		if got := d.Reverse(); got != d {
			t.Fatalf("reverse of Direction(%d) = %d, want it unchanged", int(d), int(got))
		}
		if got := d.Vector(); got != (Point{}) {
			t.Fatalf("vector of Direction(%d) = %v, want zero", int(d), got)
		}
	}
}

func TestParseControlType(t *testing.T) {
	for name, want := range map[string]ControlType{"human": Human, " Human ": Human, "ai": AI, "AI": AI} {
		got, err := ParseControlType(name)
		if err != nil || got != want {
			t.Fatalf("ParseControlType(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	for _, name := range []string{"cpu", "bot", "robot", ""} {
		if _, err := ParseControlType(name); err == nil {
			t.Fatalf("ParseControlType(%q) should fail", name)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "DOWN", " Left ", "right"} {
		if _, err := ParseDirection(name); err != nil {
			t.Fatalf("ParseDirection(%q): %v", name, err)
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Fatal("ParseDirection(north) should fail")
	}
}

func TestClone_IsDeep(t *testing.T) {
	layout, err := Generate(MapClassic)
	if err != nil {
		t.Fatal(err)
	}
	orig := NewGameFromLayout(layout, []ControlType{Human, AI}, []Color{Sky, Red})
	orig.Food = []Point{{X: 10, Y: 10}}

	c := orig.Clone()
	c.Players[0].Body[0] = Point{X: 9, Y: 9}
	c.Players[1].Alive = false
	c.Food[0] = Point{X: 0, Y: 0}

	if orig.Players[0].Body[0] != (Point{X: 2, Y: 2}) {
		t.Fatalf("clone shares body: %v", orig.Players[0].Body[0])
	}
	if !orig.Players[1].Alive {
		t.Fatal("clone shares players")
	}
	if orig.Food[0] != (Point{X: 10, Y: 10}) {
		t.Fatal("clone shares food")
	}
}

func TestPlacePlayers_UsesSpawnSlots(t *testing.T) {
	layout, err := Generate(MapClassic)
	if err != nil {
		t.Fatal(err)
	}
	state := NewGameFromLayout(layout, []ControlType{Human, AI, AI, AI}, []Color{Emerald, Sky, Amber})
	t.Logf("classic spawns:\n%s", dumpState(state))

	want := []struct {
		head Point
		dir  Direction
	}{
		{Point{X: 2, Y: 2}, Right},
		{Point{X: 2, Y: 17}, Right},
		{Point{X: 17, Y: 2}, Left},
		{Point{X: 17, Y: 17}, Left},
	}
	for i, w := range want {
		p := state.Players[i]
		if p.Head() != w.head || p.Direction != w.dir || p.NextDirection != w.dir {
			t.Fatalf("player %d head=%v dir=%s next=%s want %v %s", i, p.Head(), p.Direction, p.NextDirection, w.head, w.dir)
		}
		if len(p.Body) != SpawnLength || !p.Alive || p.Score != 0 {
			t.Fatalf("player %d not a fresh spawn: %+v", i, p)
		}
	}
	if state.Players[3].Color != Palette[0] {
		t.Fatalf("missing color should fall back to %s, got %s", Palette[0], state.Players[3].Color)
	}
}
