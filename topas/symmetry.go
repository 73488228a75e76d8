/*
 * symmetry.go, part of celltab.
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

import "github.com/rmera/celltab/spacegroup"

//rule holds the constraints a crystal system puts on the cell.
type rule struct {
	equal []Field          //lengths that share one value
	fixed map[Field]string //angles set by symmetry
}

var (
	right     = map[Field]string{FieldAl: "90", FieldBe: "90", FieldGa: "90"}
	hexAngles = map[Field]string{FieldAl: "90", FieldBe: "90", FieldGa: "120"}
)

var rules = [...]rule{
	spacegroup.Triclinic:    {},
	spacegroup.Monoclinic:   {fixed: map[Field]string{FieldAl: "90", FieldGa: "90"}},
	spacegroup.Orthorhombic: {fixed: right},
	spacegroup.Tetragonal:   {equal: []Field{FieldA, FieldB}, fixed: right},
	spacegroup.Hexagonal:    {equal: []Field{FieldA, FieldB}, fixed: hexAngles},
	spacegroup.Trigonal:     {equal: []Field{FieldA, FieldB}, fixed: hexAngles},
	spacegroup.Cubic:        {equal: []Field{FieldA, FieldB, FieldC}, fixed: right},
	spacegroup.Rhombohedral: {equal: []Field{FieldA, FieldB, FieldC}, fixed: map[Field]string{FieldAl: "90", FieldBe: "90"}},
}

func ruleFor(s spacegroup.System) rule {
	if !s.Valid() {
		return rule{}
	}
	return rules[s]
}

//freeAngles returns the angles that have to be measured.
func (u rule) freeAngles() []Field {
	var ret []Field
	for _, f := range angleFields {
		if _, ok := u.fixed[f]; !ok {
			ret = append(ret, f)
		}
	}
	return ret
}

//complete applies the constraints to r. Fixed angles are always set,
//whatever r holds. If any member of the equal-length group has a value,
//all the members take the value of the first one (in a, b, c order).
func (u rule) complete(r Record) Record {
	for _, f := range angleFields {
		if v, ok := u.fixed[f]; ok {
			r = r.With(f, v)
		}
	}
	for _, f := range u.equal {
		if !r.Found(f) {
			continue
		}
		v := r.Get(f)
		for _, g := range u.equal {
			r = r.With(g, v)
		}
		break
	}
	return r
}
