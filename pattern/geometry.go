package pattern

import (
	"sync"
)

/*

Grid Geometries

In this module there is only one grid implementation, but it
supports multiple side lengths whose only difference is the
number of points and which transitions cross other points.

*/

// A gridMapping summarizes the geometry parameters of a grid:
// the side length, the point count, and for every ordered pair
// of points the intermediate points that a straight finger
// stroke between them passes over.
type gridMapping struct {
	sidelen  int
	pcount   int
	blockers [][][]Point
}

// A Grid is a square arrangement of pattern dots.  The zero
// Grid is not usable; get one from NewGrid or Standard.
type Grid struct {
	mapping *gridMapping
}

// gridMaps is where we memoize computed grid mappings for each
// side length we've encountered, to avoid computing them more
// than once.  Grids are created per web request, so the map has
// to be safe for concurrent lookups.
var (
	gridMaps  = make(map[int]*gridMapping)
	gridMutex sync.Mutex // prevent concurrent map access
)

// greatest common divisor of two non-negative ints
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func computeGridMapping(slen int) *gridMapping {
	pcount := slen * slen
	bl := make([][][]Point, pcount+1) // 1-based indexing
	for from := 1; from <= pcount; from++ {
		bl[from] = make([][]Point, pcount+1)
		fr, fc := (from-1)/slen, (from-1)%slen
		for to := 1; to <= pcount; to++ {
			if to == from {
				continue
			}
			tr, tc := (to-1)/slen, (to-1)%slen
			dr, dc := tr-fr, tc-fc
			g := gcd(abs(dr), abs(dc))
			if g <= 1 {
				continue
			}
			// the stroke passes over g-1 interior grid points
			mids := make([]Point, 0, g-1)
			for k := 1; k < g; k++ {
				mr, mc := fr+k*dr/g, fc+k*dc/g
				mids = append(mids, Point(mr*slen+mc+1))
			}
			bl[from][to] = mids
		}
	}
	return &gridMapping{slen, pcount, bl}
}

// gridMappingFor returns the grid mapping for the given side
// length.  This computes (first time) and then returns
// (thereafter) the mapping.  Returns an error if the side length
// is out of the supported range.
func gridMappingFor(slen int) (*gridMapping, error) {
	min, max := 2, 5 // largest whose points have print names
	if slen < min {
		return nil, geometryError(slen, TooSmallCondition, min)
	}
	if slen > max {
		return nil, geometryError(slen, TooLargeCondition, max)
	}
	gridMutex.Lock()
	defer gridMutex.Unlock()
	gm, ok := gridMaps[slen]
	if ok {
		return gm, nil
	}
	gm = computeGridMapping(slen)
	gridMaps[slen] = gm
	return gm, nil
}

// NewGrid returns a Grid with the given side length, or an
// error if the side length is out of the supported range.
func NewGrid(sidelen int) (*Grid, error) {
	gm, err := gridMappingFor(sidelen)
	if err != nil {
		return nil, err
	}
	return &Grid{mapping: gm}, nil
}

// Standard returns the standard 3x3 grid.
func Standard() *Grid {
	g, err := NewGrid(StandardSideLength)
	if err != nil {
		// can't happen: the standard side length is always valid
		panic(err)
	}
	return g
}

// SideLength returns the grid's side length.
func (g *Grid) SideLength() int {
	return g.mapping.sidelen
}

// PointCount returns the number of points on the grid.
func (g *Grid) PointCount() int {
	return g.mapping.pcount
}

// contains reports whether the point is on the grid.
func (g *Grid) contains(p Point) bool {
	return p >= 1 && int(p) <= g.mapping.pcount
}

// blockers returns the grid points a stroke from one point to
// another passes over, in stroke order.  Nil when the stroke is
// direct.
func (g *Grid) blockers(from, to Point) []Point {
	return g.mapping.blockers[from][to]
}

/*

Errors

*/

func geometryError(val int, cond ErrorCondition, limit int) Error {
	err := Error{
		Scope:     GridScope,
		Structure: AttributeValueStructure,
		Attribute: SideLengthAttribute,
		Condition: cond,
		Values:    ErrorData{val},
	}
	if cond == TooSmallCondition || cond == TooLargeCondition {
		err.Values = append(err.Values, limit)
	}
	return err
}
