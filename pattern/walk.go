package pattern

/*

Pattern walker

Counting valid patterns is a depth-first walk of the tree of
drawable patterns.  The root is the empty pattern; the children
of a node are the unused points the finger can move to from the
node's last point.  Every node except the root is itself a valid
pattern, so counting nodes per depth counts valid patterns per
length.

A move from one point to another is illegal when the straight
stroke between them passes over grid points that have not yet
been used.  On the standard 3x3 grid there is at most one such
intermediate point (the midpoint of the stroke); on larger
grids there can be several, and all of them must have been used
for the move to be legal.

*/

// legalMove reports whether a stroke from one point to another
// is allowed given the points used so far.
func (g *Grid) legalMove(from, to Point, used []bool) bool {
	for _, mid := range g.blockers(from, to) {
		if !used[mid] {
			return false
		}
	}
	return true
}

// CountByLength counts the valid patterns drawable on the grid
// using only the given points.  The result is indexed by
// pattern length, so result[k] is the number of valid patterns
// exactly k points long and result[0] is always zero.  The
// point list must be distinct points on the grid; its order
// doesn't matter.
//
// Counting the full standard grid visits the whole tree of
// 389,497 patterns, which takes a few milliseconds.
func (g *Grid) CountByLength(points []Point) ([]int, error) {
	allowed := make([]bool, g.mapping.pcount+1)
	for _, pt := range points {
		if !g.contains(pt) {
			return nil, Error{
				Scope:     PointScope,
				Structure: AttributeValueStructure,
				Attribute: PointAttribute,
				Condition: OutOfRangeCondition,
				Values:    ErrorData{pt, pt, g.mapping.pcount},
			}
		}
		if allowed[pt] {
			return nil, Error{
				Scope:     PointScope,
				Structure: AttributeValueStructure,
				Attribute: PointAttribute,
				Condition: DuplicatePointCondition,
				Values:    ErrorData{pt, pt, pt},
			}
		}
		allowed[pt] = true
	}
	counts := make([]int, len(points)+1)
	used := make([]bool, g.mapping.pcount+1)
	for _, pt := range points {
		used[pt] = true
		counts[1]++
		g.countFrom(pt, allowed, used, 2, counts)
		used[pt] = false
	}
	return counts, nil
}

// countFrom extends a pattern ending at the given point with
// every legal next point, tallying one node per extension.
func (g *Grid) countFrom(last Point, allowed, used []bool, depth int, counts []int) {
	for next := Point(1); int(next) <= g.mapping.pcount; next++ {
		if !allowed[next] || used[next] || !g.legalMove(last, next, used) {
			continue
		}
		used[next] = true
		counts[depth]++
		g.countFrom(next, allowed, used, depth+1, counts)
		used[next] = false
	}
}

// Validate checks that a pattern can be drawn on the grid: all
// points on the grid, no point used twice, no move crossing an
// unused point.  A nil result means the pattern is valid.  Note
// that Validate does not apply the lock screen's length range;
// callers that care should compare against MinScreenLength.
func (g *Grid) Validate(p Pattern) error {
	if len(p) == 0 {
		return Error{
			Scope:     ArgumentScope,
			Structure: AttributeStructure,
			Attribute: PatternAttribute,
			Condition: EmptyPatternCondition,
		}
	}
	used := make([]bool, g.mapping.pcount+1)
	for i, pt := range p {
		if !g.contains(pt) {
			return Error{
				Scope:     PointScope,
				Structure: AttributeValueStructure,
				Attribute: PointAttribute,
				Condition: OutOfRangeCondition,
				Values:    ErrorData{pt, pt, g.mapping.pcount},
			}
		}
		if used[pt] {
			return Error{
				Scope:     PointScope,
				Structure: AttributeValueStructure,
				Attribute: PointAttribute,
				Condition: DuplicatePointCondition,
				Values:    ErrorData{pt, pt, pt},
			}
		}
		if i > 0 {
			for _, mid := range g.blockers(p[i-1], pt) {
				if !used[mid] {
					return Error{
						Scope:     TransitionScope,
						Structure: AttributeValueStructure,
						Attribute: PatternAttribute,
						Condition: BlockedTransitionCondition,
						Values: ErrorData{
							Pattern{p[i-1], pt}.String(),
							Pattern{p[i-1], pt}.String(),
							mid,
						},
					}
				}
			}
		}
		used[pt] = true
	}
	return nil
}
