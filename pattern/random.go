// aupatterns - Android unlock pattern counting and exploration tools.
// Copyright (C) 2012-2026 Zoltan Puskas.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

package pattern

import (
	"math/rand"
)

/*

Random pattern generation, for picking a fresh pattern to use on
a phone the way pwgen picks a password.

*/

// RandomPattern returns a uniformly-started random valid
// pattern of the requested length: the walk starts at a random
// point and takes random legal moves, backtracking if it paints
// itself into a corner.  Passing a seeded rng makes the result
// reproducible; passing nil uses the shared package source.
func (g *Grid) RandomPattern(k int, rng *rand.Rand) (Pattern, error) {
	if k < 1 {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: LengthAttribute,
			Condition: TooSmallCondition,
			Values:    ErrorData{k, 1},
		}
	}
	if k > g.mapping.pcount {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: LengthAttribute,
			Condition: TooLargeCondition,
			Values:    ErrorData{k, g.mapping.pcount},
		}
	}
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	used := make([]bool, g.mapping.pcount+1)
	trace := make(Pattern, 0, k)
	for _, start := range shuffledPoints(g.mapping.pcount, intn) {
		used[start] = true
		if p := g.randomFrom(append(trace, start), used, k, intn); p != nil {
			return p, nil
		}
		used[start] = false
	}
	// can't happen: every 1..pcount length is reachable
	panic("no pattern of a legal length found")
}

// randomFrom extends the trace to the target length with random
// legal moves, returning nil if no extension works.
func (g *Grid) randomFrom(trace Pattern, used []bool, k int, intn func(int) int) Pattern {
	if len(trace) == k {
		result := make(Pattern, k)
		copy(result, trace)
		return result
	}
	last := trace[len(trace)-1]
	for _, next := range shuffledPoints(g.mapping.pcount, intn) {
		if used[next] || !g.legalMove(last, next, used) {
			continue
		}
		used[next] = true
		if p := g.randomFrom(append(trace, next), used, k, intn); p != nil {
			return p
		}
		used[next] = false
	}
	return nil
}

// shuffledPoints returns the grid's points in random order.
func shuffledPoints(pcount int, intn func(int) int) []Point {
	pts := Points(pcount)
	for i := len(pts) - 1; i > 0; i-- {
		j := intn(i + 1)
		pts[i], pts[j] = pts[j], pts[i]
	}
	return pts
}
