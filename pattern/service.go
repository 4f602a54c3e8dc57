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
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
)

/*

Web forms of the pattern operations.  The handlers follow a
shared convention: whatever is sent to the client is also
returned to the golang caller, so servers can log exactly what
their clients saw.

*/

// A CountsResult is the web form of a CountByLength result.
type CountsResult struct {
	SideLength int    `json:"sidelen"`
	Points     string `json:"points"`
	Counts     []int  `json:"counts"`
	Total      int    `json:"total"`
}

// CountsHandler is a GET handler that counts valid patterns.
// The optional "side" query parameter selects the grid (default
// standard); the optional "points" parameter restricts the walk
// to the given dots (default all).  The result is sent as a 200
// response and returned to the golang caller; argument problems
// are sent as a 400 response and returned as an error.
func CountsHandler(w http.ResponseWriter, r *http.Request) (*CountsResult, error) {
	g, err := gridForRequest(w, r)
	if err != nil {
		return nil, err
	}
	points := Points(g.PointCount())
	if arg := r.FormValue("points"); arg != "" {
		p, e := Parse(arg)
		if e != nil {
			return nil, writeBadRequest(e, w, r)
		}
		points = p
	}
	counts, e := g.CountByLength(points)
	if e != nil {
		return nil, writeBadRequest(e, w, r)
	}
	result := &CountsResult{
		SideLength: g.SideLength(),
		Points:     Pattern(points).String(),
		Counts:     counts,
	}
	for _, c := range counts {
		result.Total += c
	}
	return result, writeJSON(result, http.StatusOK, w, r)
}

// A ValidateResult is the web form of a Validate result.
type ValidateResult struct {
	Pattern string `json:"pattern"`
	Length  int    `json:"length"`
	Valid   bool   `json:"valid"`
	Reason  *Error `json:"reason,omitempty"`
}

// ValidateHandler is a GET handler that checks a single pattern,
// given as the digit string in the "p" query parameter, against
// the grid in the optional "side" parameter.  An undrawable
// pattern is still a 200 response: invalidity is the answer, not
// a failure.
func ValidateHandler(w http.ResponseWriter, r *http.Request) (*ValidateResult, error) {
	g, err := gridForRequest(w, r)
	if err != nil {
		return nil, err
	}
	p, e := Parse(r.FormValue("p"))
	if e != nil {
		return nil, writeBadRequest(e, w, r)
	}
	result := &ValidateResult{Pattern: p.String(), Length: len(p), Valid: true}
	if e := g.Validate(p); e != nil {
		reason := e.(Error)
		reason.Message = reason.Error()
		result.Valid, result.Reason = false, &reason
	}
	return result, writeJSON(result, http.StatusOK, w, r)
}

// A RandomResult is the web form of a RandomPattern result.
type RandomResult struct {
	Pattern string `json:"pattern"`
	Length  int    `json:"length"`
}

// RandomHandler is a GET handler that produces a random valid
// pattern of the length in the "length" query parameter
// (default the lock screen minimum) on the grid in the optional
// "side" parameter.
func RandomHandler(w http.ResponseWriter, r *http.Request) (*RandomResult, error) {
	g, err := gridForRequest(w, r)
	if err != nil {
		return nil, err
	}
	k := MinScreenLength
	if arg := r.FormValue("length"); arg != "" {
		v, e := strconv.Atoi(arg)
		if e != nil {
			return nil, writeBadRequest(Error{
				Scope:     ArgumentScope,
				Structure: AttributeValueStructure,
				Attribute: LengthAttribute,
				Condition: GeneralCondition,
				Values:    ErrorData{arg, "not a number"},
			}, w, r)
		}
		k = v
	}
	p, e := g.RandomPattern(k, randSource)
	if e != nil {
		return nil, writeBadRequest(e, w, r)
	}
	result := &RandomResult{Pattern: p.String(), Length: len(p)}
	return result, writeJSON(result, http.StatusOK, w, r)
}

// the server-side randomness; tests may swap in a seeded source
var randSource *rand.Rand

// gridForRequest reads the optional "side" query parameter.
func gridForRequest(w http.ResponseWriter, r *http.Request) (*Grid, error) {
	arg := r.FormValue("side")
	if arg == "" {
		return Standard(), nil
	}
	side, e := strconv.Atoi(arg)
	if e != nil {
		return nil, writeBadRequest(Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: SideLengthAttribute,
			Condition: GeneralCondition,
			Values:    ErrorData{arg, "not a number"},
		}, w, r)
	}
	g, e := NewGrid(side)
	if e != nil {
		return nil, writeBadRequest(e, w, r)
	}
	return g, nil
}

/*

Utilities

*/

// writeBadRequest sends the Error form of an argument problem as
// a 400 response and hands it back for the handler to return.
func writeBadRequest(e error, w http.ResponseWriter, r *http.Request) error {
	err, ok := e.(Error)
	if !ok {
		err = Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: GeneralCondition,
			Values:    ErrorData{e.Error()},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, http.StatusBadRequest, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller: the encoding Error if
// encoding failed, the sent Error if the response was itself an
// Error, and nil otherwise.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an encoding error.  This
			// should never happen!!  If it did, it almost
			// certainly means the JSON encoder is dead, so
			// pseudo-encode the error by hand as a quoted string.
			status = http.StatusInternalServerError
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			enc := Error{
				Scope:     InternalScope,
				Structure: AttributeStructure,
				Attribute: EncodeAttribute,
				Condition: GeneralCondition,
				Values:    ErrorData{e.Error()},
			}
			enc.Message = enc.Error()
			return writeJSON(enc, http.StatusInternalServerError, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
