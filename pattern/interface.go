// Copyright 2012-2026 Zoltan Puskas.  All rights reserved.

// Package pattern models Android-style unlock patterns and
// operations on them.  It supports both a golang interface and a
// web interface to the patterns.
//
// In this package, an unlock pattern is a sequence of distinct
// points on a square grid of dots.  Points are designated by
// indices that start at 1 and increase left-to-right,
// top-to-bottom (English reading order), so on the standard 3x3
// grid the points are 1 through 9.
//
// Not every sequence of distinct points can be drawn on a lock
// screen.  When the finger moves between two points whose
// connecting segment passes exactly over other grid points, the
// screen connects those intermediate points automatically unless
// they have already been used.  A pattern is valid when every
// move in it either crosses no intermediate points or crosses
// only points used earlier in the pattern.  On the standard grid
// this is the familiar rule that 1-3 is really 1-2-3 unless 2 is
// already taken.
//
// The lock screen additionally requires patterns between 4 and 9
// points long; that range is a property of the screen, not of
// drawability, so the operations in this package count and
// validate patterns of every length and leave the range to
// callers (the MinScreenLength constant records it).
package pattern

import (
	"strings"
)

// The standard Android lock screen: a 3x3 grid accepting
// patterns of 4 to 9 points.
const (
	StandardSideLength = 3
	MinScreenLength    = 4
)

// A Point is one dot on the grid, numbered from 1 in reading
// order.
type Point int

// A Pattern is an ordered sequence of distinct Points: either a
// candidate selection of dots (a combination) or an actual
// finger trace across the grid.
type Pattern []Point

// Print forms of points.  Points past 9 print as letters, so
// patterns on grids bigger than 3x3 still render one character
// per point.
var pointChars = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// String renders the pattern as a digit string, e.g. (1,2,3,4)
// renders as "1234".  This is the encoding the external counter
// tools accept on their command lines.
func (p Pattern) String() string {
	var sb strings.Builder
	for _, pt := range p {
		if pt < 1 || int(pt) > len(pointChars) {
			sb.WriteByte('?')
			continue
		}
		sb.WriteByte(pointChars[pt-1])
	}
	return sb.String()
}

// Parse decodes a digit string into a Pattern.  It inverts
// String: one character per point, case-insensitive for the
// letter points.  Parse checks only that the characters are
// known point names; range and validity against a particular
// grid are checked by the Grid operations.
func Parse(s string) (Pattern, error) {
	if len(s) == 0 {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeStructure,
			Attribute: PatternAttribute,
			Condition: EmptyPatternCondition,
		}
	}
	p := make(Pattern, 0, len(s))
	for _, r := range strings.ToUpper(s) {
		i := strings.IndexRune(pointChars, r)
		if i < 0 {
			return nil, Error{
				Scope:     ArgumentScope,
				Structure: AttributeValueStructure,
				Attribute: DigitAttribute,
				Condition: GeneralCondition,
				Values:    ErrorData{string(r), "not a point name"},
			}
		}
		p = append(p, Point(i+1))
	}
	return p, nil
}

// Points returns the points of an n-point grid in reading
// order, which is the canonical input sequence for combination
// generation.
func Points(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point(i + 1)
	}
	return pts
}
