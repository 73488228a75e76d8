/*
 * patterns.go, part of celltab.
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

package topas

import (
	"regexp"
)

//Building blocks of the TOPAS value grammar.
const (
	num      = `\d+\.\d+`
	errNum   = `(?:\d+\.\d+(?:[eE][-+]?\d+)?|LIMIT_\w+)`
	errSep   = "`?_"
	withErr  = num + errSep + errNum
	optErr   = num + `(?:` + errSep + errNum + `)?`
	lineHead = `(?m)(?:^|\s)`
)

//pattern is one rule of an extraction cascade. Unless stated otherwise,
//the first capture group of re holds the value.
type pattern struct {
	name string
	re   *regexp.Regexp
}

func newPattern(name, expr string) pattern {
	return pattern{name: name, re: regexp.MustCompile(expr)}
}

//firstMatch tries the patterns in order and returns the index of the first
//one that matches raw, with its submatches. It returns -1 and nil if none
//matches.
func firstMatch(raw string, ps []pattern) (int, []string) {
	for i, p := range ps {
		if m := p.re.FindStringSubmatch(raw); m != nil {
			return i, m
		}
	}
	return -1, nil
}

//firstValue is firstMatch for patterns that capture a single value.
func firstValue(raw string, ps []pattern) (string, bool) {
	i, m := firstMatch(raw, ps)
	if i < 0 {
		return "", false
	}
	return m[1], true
}

//keyword matches a TOPAS keyword followed by its value. The keyword must
//start a line or follow a space. Between keyword and value there can be a
//refinement flag (@ or !) and a parameter name, as in "a lpa 5.43" or
//"a @ 5.43".
func keyword(key string) string {
	return lineHead + regexp.QuoteMeta(key) + `(?:\s+|\s*[@!]\s*)(?:[A-Za-z_]\w*\s+)?`
}

//Strictness levels of a refined parameter, strictest first.
const (
	levelError    = iota //value with its error
	levelDangling        //value followed by a lone error marker
	levelPlain           //plain decimal
	levelLoose           //anything that starts with a digit
	nLevels
)

//ladder returns the patterns for key at each strictness level.
func ladder(key string) []pattern {
	k := keyword(key)
	return []pattern{
		levelError:    newPattern(key+"/error", k+`(`+withErr+`)`),
		levelDangling: newPattern(key+"/dangling", k+`(`+num+")`"),
		levelPlain:    newPattern(key+"/plain", k+`(`+num+`)`),
		levelLoose:    newPattern(key+"/loose", k+`(\d\S*)`),
	}
}
