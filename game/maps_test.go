package game

import (
	"errors"
	"testing"

	"github.com/zyedidia/generic/mapset"
)

func sameSet(a, b mapset.Set[Point]) bool {
	if a.Size() != b.Size() {
		return false
	}
	same := true
	a.Each(func(p Point) {
		if !b.Has(p) {
			same = false
		}
	})
	return same
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, m := range MapTypes {
		a, err := Generate(m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		b, err := Generate(m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if !sameSet(a.Obstacles, b.Obstacles) {
			t.Fatalf("%s: obstacle sets differ between calls", m)
		}
		if a.Spawns != b.Spawns {
			t.Fatalf("%s: spawn layouts differ between calls", m)
		}
	}
}

func TestGenerate_SpawnsAreFree(t *testing.T) {
	for _, m := range MapTypes {
		layout, err := Generate(m)
		if err != nil {
			t.Fatal(err)
		}
		seen := mapset.New[Point]()
		for i, s := range layout.Spawns {
			for j, p := range s.Body {
				if !p.InBounds(layout.BoardSize) {
					t.Fatalf("%s slot %d seg %d out of bounds: %v", m, i, j, p)
				}
				if layout.Obstacles.Has(p) {
					t.Fatalf("%s slot %d seg %d on obstacle: %v", m, i, j, p)
				}
				if seen.Has(p) {
					t.Fatalf("%s slot %d seg %d overlaps another spawn: %v", m, i, j, p)
				}
				seen.Put(p)
				if j > 0 && Manhattan(p, s.Body[j-1]) != 1 {
					t.Fatalf("%s slot %d body not contiguous at %d", m, i, j)
				}
			}
			// The first move must not run straight back into the body.
			if s.Body[0].Add(s.Direction) == s.Body[1] {
				t.Fatalf("%s slot %d faces its own neck", m, i)
			}
		}
	}
}

func TestGenerate_Classic(t *testing.T) {
	layout, err := Generate(MapClassic)
	if err != nil {
		t.Fatal(err)
	}
	if layout.Obstacles.Size() != 0 {
		t.Fatalf("classic has %d obstacles", layout.Obstacles.Size())
	}
	want := [SpawnLength]Point{{X: 17, Y: 17}, {X: 18, Y: 17}, {X: 19, Y: 17}}
	if layout.Spawns[3].Body != want {
		t.Fatalf("slot 3 = %v want %v", layout.Spawns[3].Body, want)
	}
}

func TestGenerate_DeathStarCarvesCircle(t *testing.T) {
	layout, err := Generate(MapDeathStar)
	if err != nil {
		t.Fatal(err)
	}
	for _, corner := range []Point{{0, 0}, {19, 0}, {0, 19}, {19, 19}} {
		if !layout.Obstacles.Has(corner) {
			t.Fatalf("corner %v should be outside the circle", corner)
		}
	}
	for _, inside := range []Point{{9, 9}, {10, 10}, {1, 9}, {9, 1}} {
		if layout.Obstacles.Has(inside) {
			t.Fatalf("cell %v should be playable", inside)
		}
	}
}

func TestGenerate_LakeRows(t *testing.T) {
	layout, err := Generate(MapLake)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		y, left, right int
	}{
		{7, 5, 14},
		{12, 6, 13},
	}
	for _, c := range cases {
		for x := 0; x < layout.BoardSize; x++ {
			want := x >= c.left && x <= c.right
			if got := layout.Obstacles.Has(Point{X: x, Y: c.y}); got != want {
				t.Fatalf("lake row %d x=%d obstacle=%v want %v", c.y, x, got, want)
			}
		}
	}
	for x := 0; x < layout.BoardSize; x++ {
		if layout.Obstacles.Has(Point{X: x, Y: 6}) || layout.Obstacles.Has(Point{X: x, Y: 13}) {
			t.Fatalf("lake leaks outside rows 7..12 at x=%d", x)
		}
	}
}

// reachable flood-fills free cells from start.
func reachable(layout Layout, start Point) mapset.Set[Point] {
	visited := mapset.New[Point]()
	visited.Put(start)
	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			next := cur.Add(d)
			if !next.InBounds(layout.BoardSize) || layout.Obstacles.Has(next) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return visited
}

func TestGenerate_KingdomsQuadrantsConnected(t *testing.T) {
	layout, err := Generate(MapKingdoms)
	if err != nil {
		t.Fatal(err)
	}
	if layout.Obstacles.Size() == 0 {
		t.Fatal("kingdoms has no walls")
	}
	for i := range layout.Spawns {
		seen := reachable(layout, layout.Spawns[i].Body[0])
		for j := range layout.Spawns {
			if !seen.Has(layout.Spawns[j].Body[0]) {
				t.Fatalf("spawn %d cannot reach spawn %d", i, j)
			}
		}
	}
	// Walls are pierced at the edges and in the middle, nowhere else.
	for _, gap := range []Point{{0, 9}, {1, 10}, {18, 9}, {19, 10}, {7, 9}, {12, 10}, {9, 0}, {10, 19}, {9, 11}} {
		if layout.Obstacles.Has(gap) {
			t.Fatalf("gap cell %v is walled", gap)
		}
	}
	for _, wall := range []Point{{2, 9}, {6, 10}, {13, 9}, {17, 10}, {9, 2}, {10, 17}} {
		if !layout.Obstacles.Has(wall) {
			t.Fatalf("wall cell %v is open", wall)
		}
	}
}

func TestGenerate_UnknownMap(t *testing.T) {
	if _, err := Generate("pangea"); !errors.Is(err, ErrUnknownMap) {
		t.Fatalf("err=%v want ErrUnknownMap", err)
	}
	if _, err := ParseMapType("Death-Star"); err != nil {
		t.Fatalf("ParseMapType should be case-insensitive: %v", err)
	}
}
