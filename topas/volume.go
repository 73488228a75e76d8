/*
 * volume.go, part of celltab.
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
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/rmera/celltab/spacegroup"
	"github.com/rmera/celltab/uncert"
)

//DefaultVolumeTolerance is the relative difference between the refined
//volume and the one computed from the cell that is still accepted.
const DefaultVolumeTolerance = 0.01

//CellVolume returns the volume of the cell with lengths a, b, c and
//angles al, be, ga (in degrees), as the square root of the determinant
//of the metric tensor.
func CellVolume(a, b, c, al, be, ga float64) float64 {
	ca := math.Cos(al * math.Pi / 180)
	cb := math.Cos(be * math.Pi / 180)
	cg := math.Cos(ga * math.Pi / 180)
	G := mat.NewSymDense(3, []float64{
		a * a, a * b * cg, a * c * cb,
		a * b * cg, b * b, b * c * ca,
		a * c * cb, b * c * ca, c * c,
	})
	det := mat.Det(G)
	if det < 0 {
		return math.NaN()
	}
	return math.Sqrt(det)
}

//mean returns the numeric mean of a record value.
func mean(v string) (float64, bool) {
	if v == "" || v == NotFound {
		return 0, false
	}
	f, err := strconv.ParseFloat(uncert.ParseToken(v).Mean, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

//checkVolume compares the volume in r with the one computed from its
//cell, and adds a diagnostic if they differ by more than tol (relative).
//The lattice macro of rhombohedral cells does not give the rhombohedral
//angles, so those are not checked.
func checkVolume(r Record, sys spacegroup.System, tol float64) Record {
	if tol <= 0 || sys == spacegroup.Rhombohedral {
		return r
	}
	v, ok := mean(r.Volume)
	if !ok {
		return r
	}
	p := make([]float64, len(cellFields))
	for i, f := range cellFields {
		if p[i], ok = mean(r.Get(f)); !ok {
			return r
		}
	}
	calc := CellVolume(p[0], p[1], p[2], p[3], p[4], p[5])
	if math.IsNaN(calc) || scalar.EqualWithinRel(v, calc, tol) {
		return r
	}
	return r.withDiagnostic(newError(VolumeMismatch, r.Filename, FieldVolume,
		"refined volume %g differs from %.4f computed from the cell", v, calc))
}
