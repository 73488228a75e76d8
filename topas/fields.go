/*
 * fields.go, part of celltab.
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

import "strings"

var spaceGroupPatterns = []pattern{
	newPattern("space_group/quoted", lineHead+`space_group\s+"([^"\n]+)"`),
	newPattern("space_group/bare", lineHead+`space_group\s+([\w/\-]+)`),
}

var volumePatterns = func() []pattern {
	cv, v := ladder("cell_volume"), ladder("volume")
	return []pattern{
		cv[levelError], v[levelError],
		cv[levelDangling], v[levelDangling],
		cv[levelPlain], v[levelPlain],
	}
}()

var fitPatterns = map[Field][]pattern{
	FieldRwp:  {newPattern("r_wp", lineHead+`r_wp\s+(`+num+`)`)},
	FieldRexp: {newPattern("r_exp", lineHead+`r_exp\s+(`+num+`)`)},
	FieldChi:  {newPattern("gof", lineHead+`gof\s+(`+num+`)`)},
}

//Lengths are tried with all the strictness levels, angles without the
//loosest one.
const (
	lengthLevels = nLevels
	angleLevels  = levelLoose
)

var cellPatterns = func() map[Field][]pattern {
	ret := make(map[Field][]pattern, len(cellFields))
	for _, f := range lengthFields {
		ret[f] = ladder(string(f))[:lengthLevels]
	}
	for _, f := range angleFields {
		ret[f] = ladder(string(f))[:angleLevels]
	}
	return ret
}()

//spaceGroup returns the space-group symbol in raw, if any.
func spaceGroup(raw string) (string, bool) {
	s, ok := firstValue(raw, spaceGroupPatterns)
	return strings.TrimSpace(s), ok
}

func volume(raw string) (string, bool) {
	return firstValue(raw, volumePatterns)
}

//scanGroup looks for the given members of a group of parameters. At each
//strictness level all the members still missing are tried before moving
//to the next, looser, level, so values tend to come from the same
//formatting convention.
func scanGroup(raw string, members []Field, levels int) map[Field]string {
	found := make(map[Field]string, len(members))
	for l := 0; l < levels; l++ {
		for _, f := range members {
			if _, ok := found[f]; ok {
				continue
			}
			ps := cellPatterns[f]
			if l >= len(ps) {
				continue
			}
			if m := ps[l].re.FindStringSubmatch(raw); m != nil {
				found[f] = m[1]
			}
		}
	}
	return found
}

//fitStats returns the fit statistics present in raw, and the fields of
//the missing ones.
func fitStats(raw string) (map[Field]string, []Field) {
	found := make(map[Field]string, len(fitFields))
	var missing []Field
	for _, f := range fitFields {
		if v, ok := firstValue(raw, fitPatterns[f]); ok {
			found[f] = v
		} else {
			missing = append(missing, f)
		}
	}
	return found, missing
}
