/*
 * token.go, part of celltab.
 *
 * Copyright 2026 The celltab authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package uncert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

//Separators between a mean and its error. TOPAS writes the first one,
//some post-processing scripts the second.
const (
	TickSeparator = "`_"
	BareSeparator = "_"
)

//LimitMarker is the prefix TOPAS uses instead of an error when a
//parameter ends the refinement pinned at one of its bounds.
const LimitMarker = "LIMIT"

//Token is a refined value as found in the output, with its error if
//there is one.
type Token struct {
	Mean  string
	Err   string //empty when the value came without uncertainty
	Limit bool   //the value sits at a refinement limit
}

//ParseToken splits s into mean and error. Both "`_" and "_" are accepted
//as separators.
func ParseToken(s string) Token {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, LimitMarker); i >= 0 {
		mean := strings.TrimRight(s[:i], "`_ ")
		return Token{Mean: mean, Limit: true}
	}
	if mean, sd, ok := strings.Cut(s, TickSeparator); ok {
		return Token{Mean: mean, Err: sd}
	}
	if mean, sd, ok := strings.Cut(s, BareSeparator); ok {
		return Token{Mean: mean, Err: sd}
	}
	return Token{Mean: s}
}

//String encodes the token back in the TOPAS convention.
func (t Token) String() string {
	switch {
	case t.Limit:
		return t.Mean + TickSeparator + LimitMarker
	case t.Err != "":
		return t.Mean + TickSeparator + t.Err
	default:
		return t.Mean
	}
}

var bracketRe = regexp.MustCompile(`^\s*([-+]?\d*\.?\d+)\((\d+)\)\s*$`)

//ParseBracket reads a value in crystallographic notation, such as
//"12.34(5)", and returns it as a token whose error is expressed in the
//units of the bracket, i.e. "0.05" in the example.
func ParseBracket(s string) (Token, error) {
	m := bracketRe.FindStringSubmatch(s)
	if m == nil {
		return Token{}, fmt.Errorf("uncert: %q is not in mean(error) notation", s)
	}
	places := 0
	if i := strings.IndexByte(m[1], '.'); i >= 0 {
		places = len(m[1]) - i - 1
	}
	b, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("uncert: bracket of %q: %w", s, err)
	}
	return Token{Mean: m[1], Err: decimal.New(b, int32(-places)).String()}, nil
}
