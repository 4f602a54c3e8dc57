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

/*

Combination generation

A combination is a selection of k dots out of the grid's points,
kept in the points' own order.  Combinations are the raw
material for pattern counting: every valid pattern of length k
traces some k-combination of the grid, so sweeping the
combinations covers the whole space.

*/

// Combinations returns all k-element combinations of the given
// points.  Each combination preserves the relative order of the
// input, and the combinations appear in lexicographic order of
// the selected indices, so re-invoking with the same inputs
// reproduces the same sequence.  The sizes in play here (at most
// a few hundred) make eager generation entirely adequate.
//
// A k larger than the number of points yields an empty result;
// a k below 1 is a caller error.
func Combinations(points []Point, k int) ([]Pattern, error) {
	if k < 1 {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: LengthAttribute,
			Condition: TooSmallCondition,
			Values:    ErrorData{k, 1},
		}
	}
	return appendCombinations(nil, nil, points, k), nil
}

// appendCombinations picks each possible first element in turn
// and recurses over the suffix after it for the remaining k-1
// elements.  The index range guard makes k > len(points) fall
// out naturally as no output.
func appendCombinations(dst []Pattern, prefix Pattern, points []Point, k int) []Pattern {
	if k == 1 {
		for _, pt := range points {
			c := make(Pattern, len(prefix)+1)
			copy(c, prefix)
			c[len(prefix)] = pt
			dst = append(dst, c)
		}
		return dst
	}
	for i := 0; i+k <= len(points); i++ {
		dst = appendCombinations(dst, append(prefix, points[i]), points[i+1:], k-1)
	}
	return dst
}

// Binomial returns C(n,k), the number of k-element combinations
// of an n-element set.  Out-of-range k gives 0.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
