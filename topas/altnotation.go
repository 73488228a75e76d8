/*
 * altnotation.go, part of celltab.
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

//TOPAS can also give the cell with a lattice macro, such as
//Cubic(@ 15.517450`_0.003075) or Hexagonal(@ 3.2, @ 5.2), which only
//takes the parameters the lattice leaves free.

const (
	macroArg   = `@?\s*(` + optErr + `)`
	macroComma = `\s*,\s*`
)

func macro(name string, args int) string {
	expr := name + `\(\s*` + macroArg
	for i := 1; i < args; i++ {
		expr += macroComma + macroArg
	}
	return expr + `\s*\)`
}

//notation is a lattice macro and the cell it stands for. A nil derive
//means the macro is recognised but not handled.
type notation struct {
	system spacegroup.System
	derive func(p []string) map[Field]string
}

//Ordered from the most to the least constrained lattice.
var (
	notationPatterns = []pattern{
		newPattern("Cubic", macro("Cubic", 1)),
		newPattern("Hexagonal", macro("Hexagonal", 2)),
		newPattern("Tetragonal", macro("Tetragonal", 2)),
		newPattern("Trigonal", macro("Trigonal", 2)),
		newPattern("Rhombohedral", macro("Rhombohedral", 2)),
		newPattern("Monoclinic/Triclinic", `(Monoclinic|Triclinic)\(`),
	}
	notations = []notation{
		{spacegroup.Cubic, func(p []string) map[Field]string {
			return map[Field]string{FieldA: p[1], FieldB: p[1], FieldC: p[1], FieldAl: "90", FieldBe: "90", FieldGa: "90"}
		}},
		{spacegroup.Hexagonal, func(p []string) map[Field]string {
			return map[Field]string{FieldA: p[1], FieldB: p[1], FieldC: p[2], FieldAl: "90", FieldBe: "90", FieldGa: "120"}
		}},
		{spacegroup.Tetragonal, func(p []string) map[Field]string {
			return map[Field]string{FieldA: p[1], FieldB: p[1], FieldC: p[2], FieldAl: "90", FieldBe: "90", FieldGa: "90"}
		}},
		{spacegroup.Trigonal, func(p []string) map[Field]string {
			return map[Field]string{FieldA: p[1], FieldB: p[1], FieldC: p[2], FieldAl: "90", FieldBe: "90", FieldGa: "120"}
		}},
		{spacegroup.Rhombohedral, func(p []string) map[Field]string {
			return map[Field]string{FieldA: p[1], FieldB: p[1], FieldC: p[1], FieldAl: "90", FieldBe: "90", FieldGa: p[2]}
		}},
		{spacegroup.Monoclinic, nil},
	}
)

//altNotation fills the cell fields of r that are still empty from a
//lattice macro in raw. It returns the updated record, the system named by
//the macro and whether any macro was found.
func altNotation(r Record, raw string) (Record, spacegroup.System, bool) {
	i, m := firstMatch(raw, notationPatterns)
	if i < 0 {
		return r, 0, false
	}
	n := notations[i]
	if n.derive == nil {
		sys, err := spacegroup.ParseSystem(m[1])
		if err != nil {
			sys = n.system
		}
		r = r.withDiagnostic(newError(UnimplementedNotation, r.Filename, FieldCrystalSystem,
			"the %s(...) lattice notation is not handled, cell parameters left unset", m[1]))
		return r, sys, true
	}
	return r.merge(n.derive(m)), n.system, true
}
