/*
 * round.go, part of celltab.
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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

//ErrLimitPinned is returned by Round for values that carry a limit
//marker instead of an error. There is nothing meaningful to display.
var ErrLimitPinned = errors.New("uncert: value pinned at a refinement limit")

//expDigits is the number of significant digits kept before exponents are
//read off a value, i.e. the values are first written as %.16e.
const expDigits = 17

//maxBracket is the largest two-digit bracket that is kept as such.
const maxBracket = 20

var (
	ten = decimal.NewFromInt(10)
	one = decimal.NewFromInt(1)
)

var rounded = map[string]bool{
	"a": true, "b": true, "c": true,
	"al": true, "be": true, "ga": true,
	"volume": true,
	"rwp":    true, "rexp": true, "chi": true,
}

var fitStats = map[string]bool{"rwp": true, "rexp": true, "chi": true}

//Rounds returns true if values of the named field go through
//crystallographic rounding.
func Rounds(field string) bool {
	return rounded[field]
}

var plainDecimal = regexp.MustCompile(`^[-+]?\d+\.\d+$`)

//Round returns the display form of the value s of the named field.
//Values with an error are rounded to mean(bracket) notation. Bare fit
//statistics get two decimals, any other bare value, and any field that
//is not rounded, is returned unchanged. Limit-pinned values give an
//empty string and ErrLimitPinned.
func Round(field, s string) (string, error) {
	if !Rounds(field) {
		return s, nil
	}
	t := ParseToken(s)
	if t.Limit {
		return "", ErrLimitPinned
	}
	if t.Err == "" {
		if fitStats[field] && plainDecimal.MatchString(t.Mean) {
			d, err := decimal.NewFromString(t.Mean)
			if err != nil {
				return "", fmt.Errorf("uncert: %s value %q: %w", field, s, err)
			}
			return d.StringFixedBank(2), nil
		}
		return s, nil
	}
	return Bracket(t.Mean, t.Err)
}

//Bracket rounds mean according to its error sd and returns the pair in
//crystallographic notation. The error keeps one or two significant digits
//(two while they do not exceed 20) and the mean is cut at the position of
//the last digit of the error. Values are written in fixed-point notation,
//so when that digit lies left of the decimal point the bracket is written
//in full units, as in 12400(300).
func Bracket(mean, sd string) (string, error) {
	m, err := decimal.NewFromString(strings.TrimSpace(mean))
	if err != nil {
		return "", fmt.Errorf("uncert: mean %q: %w", mean, err)
	}
	e, err := decimal.NewFromString(strings.TrimSpace(sd))
	if err != nil {
		return "", fmt.Errorf("uncert: error %q: %w", sd, err)
	}
	e = e.Abs()
	if e.IsZero() {
		return strings.TrimSpace(mean), nil
	}
	exE := sciExp(e)
	//decimal places of the last kept digit of the error
	places := int32(1 - exE)
	cut := m.RoundBank(places)
	mant := e.Shift(int32(-exE)).RoundBank(expDigits - 1).RoundBank(1)
	bracket := strings.Replace(mant.StringFixed(1), ".", "", 1)
	n, err := strconv.ParseInt(bracket, 10, 64)
	if err != nil {
		return "", fmt.Errorf("uncert: bracket %q: %w", bracket, err)
	}
	if n <= maxBracket {
		return pair(cut, places, n), nil
	}
	//second pass: one digit of error, one digit less of mean
	b := mant.Shift(-1).RoundBank(1)
	places--
	if b.GreaterThanOrEqual(one) {
		b = b.Shift(-1)
		places--
	}
	return pair(cut.RoundBank(places), places, b.Shift(1).IntPart()), nil
}

//pair writes mean with the given decimal places and the bracket n, whose
//last digit sits at that same position. Negative places mean the digit is
//left of the point, so the bracket is scaled to full units.
func pair(mean decimal.Decimal, places int32, n int64) string {
	if places >= 0 {
		return fmt.Sprintf("%s(%d)", mean.StringFixed(places), n)
	}
	return fmt.Sprintf("%s(%s)", mean.StringFixed(0), decimal.New(n, -places).String())
}

//exponent returns the power of ten of the leading digit of d, which
//must not be zero.
func exponent(d decimal.Decimal) int {
	c := d.Coefficient()
	return len(c.Abs(c).String()) - 1 + int(d.Exponent())
}

//sciExp returns the exponent d has when written with expDigits
//significant digits, so 9.99999999999999999 counts as 1e+1.
func sciExp(d decimal.Decimal) int {
	e := exponent(d)
	if d.Shift(int32(-e)).Abs().RoundBank(expDigits - 1).GreaterThanOrEqual(ten) {
		e++
	}
	return e
}
