package game

import (
	"math/rand"
	"sort"
)

// Hazard is a concealed bomb; Revealed flips once it has exploded
type Hazard struct {
	At       Coord
	Revealed bool
}

// HazardSet tracks every bomb placed for the current game
type HazardSet struct {
	byCoord map[Coord]*Hazard
}

func newHazardSet() HazardSet {
	return HazardSet{byCoord: make(map[Coord]*Hazard)}
}

// placeHazards picks n distinct cells uniformly at random
func placeHazards(rng *rand.Rand, rows, cols, n int) HazardSet {
	hs := newHazardSet()
	idx := rng.Perm(rows * cols)
	for i := 0; i < n && i < len(idx); i++ {
		at := Coord{Row: idx[i] / cols, Col: idx[i] % cols}
		hs.byCoord[at] = &Hazard{At: at}
	}
	return hs
}

// Live reports whether an unrevealed bomb sits at c
func (hs *HazardSet) Live(c Coord) bool {
	h, ok := hs.byCoord[c]
	return ok && !h.Revealed
}

// Revealed reports whether a bomb at c has already exploded
func (hs *HazardSet) Revealed(c Coord) bool {
	h, ok := hs.byCoord[c]
	return ok && h.Revealed
}

func (hs *HazardSet) reveal(c Coord) bool {
	h, ok := hs.byCoord[c]
	if !ok || h.Revealed {
		return false
	}
	h.Revealed = true
	return true
}

// LiveCount returns the number of bombs still hidden
func (hs *HazardSet) LiveCount() int {
	n := 0
	for _, h := range hs.byCoord {
		if !h.Revealed {
			n++
		}
	}
	return n
}

// List returns the bombs in row-major order, optionally only the revealed ones
func (hs *HazardSet) List(revealedOnly bool) []Coord {
	out := make([]Coord, 0, len(hs.byCoord))
	for c, h := range hs.byCoord {
		if revealedOnly && !h.Revealed {
			continue
		}
		out = append(out, c)
	}
	sortCoords(out)
	return out
}

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}
		return cs[i].Col < cs[j].Col
	})
}
