/*
 * record.go, part of celltab.
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
	"errors"
	"fmt"

	"github.com/rmera/celltab/uncert"
)

//NotFound is the value of every field that could not be determined.
const NotFound = "Not found"

//Field names one column of a Record.
type Field string

const (
	FieldFilename      Field = "filename"
	FieldCrystalSystem Field = "crystal_system"
	FieldSpaceGroup    Field = "space_group"
	FieldA             Field = "a"
	FieldB             Field = "b"
	FieldC             Field = "c"
	FieldAl            Field = "al"
	FieldBe            Field = "be"
	FieldGa            Field = "ga"
	FieldVolume        Field = "volume"
	FieldRwp           Field = "rwp"
	FieldRexp          Field = "rexp"
	FieldChi           Field = "chi"
)

//Fields lists the record fields in display order.
var Fields = []Field{
	FieldFilename, FieldCrystalSystem, FieldSpaceGroup,
	FieldA, FieldB, FieldC, FieldAl, FieldBe, FieldGa,
	FieldVolume, FieldRwp, FieldRexp, FieldChi,
}

var (
	lengthFields = []Field{FieldA, FieldB, FieldC}
	angleFields  = []Field{FieldAl, FieldBe, FieldGa}
	cellFields   = []Field{FieldA, FieldB, FieldC, FieldAl, FieldBe, FieldGa}
	fitFields    = []Field{FieldRwp, FieldRexp, FieldChi}
)

//Record holds what was extracted from one refinement output. Values are
//kept as found in the file (mean and error tokens); Rounded gives the
//display form. Records are values: every method returns a modified copy
//and leaves the receiver alone.
type Record struct {
	Filename      string `json:"filename" yaml:"filename"`
	CrystalSystem string `json:"crystal_system" yaml:"crystal_system"`
	SpaceGroup    string `json:"space_group" yaml:"space_group"`
	A             string `json:"a" yaml:"a"`
	B             string `json:"b" yaml:"b"`
	C             string `json:"c" yaml:"c"`
	Al            string `json:"al" yaml:"al"`
	Be            string `json:"be" yaml:"be"`
	Ga            string `json:"ga" yaml:"ga"`
	Volume        string `json:"volume" yaml:"volume"`
	Rwp           string `json:"rwp" yaml:"rwp"`
	Rexp          string `json:"rexp" yaml:"rexp"`
	Chi           string `json:"chi" yaml:"chi"`

	Diagnostics []Error `json:"-" yaml:"-"`
}

func (r *Record) ptr(f Field) *string {
	switch f {
	case FieldFilename:
		return &r.Filename
	case FieldCrystalSystem:
		return &r.CrystalSystem
	case FieldSpaceGroup:
		return &r.SpaceGroup
	case FieldA:
		return &r.A
	case FieldB:
		return &r.B
	case FieldC:
		return &r.C
	case FieldAl:
		return &r.Al
	case FieldBe:
		return &r.Be
	case FieldGa:
		return &r.Ga
	case FieldVolume:
		return &r.Volume
	case FieldRwp:
		return &r.Rwp
	case FieldRexp:
		return &r.Rexp
	case FieldChi:
		return &r.Chi
	}
	panic(fmt.Sprintf("topas: unknown record field %q", string(f)))
}

//Get returns the value of the field f.
func (r Record) Get(f Field) string {
	return *r.ptr(f)
}

//With returns a copy of r where the field f is set to v.
func (r Record) With(f Field, v string) Record {
	*r.ptr(f) = v
	return r
}

//Has is true if the field f holds a value, which can be NotFound.
func (r Record) Has(f Field) bool {
	return r.Get(f) != ""
}

//Found is true if the field f holds an actual value.
func (r Record) Found(f Field) bool {
	v := r.Get(f)
	return v != "" && v != NotFound
}

//Complete is true if no field is empty.
func (r Record) Complete() bool {
	for _, f := range Fields {
		if !r.Has(f) {
			return false
		}
	}
	return true
}

func (r Record) withDiagnostic(e Error) Record {
	n := len(r.Diagnostics)
	r.Diagnostics = append(r.Diagnostics[:n:n], e)
	return r
}

//merge sets the fields in vals that are still empty in r.
func (r Record) merge(vals map[Field]string) Record {
	for _, f := range Fields {
		if v, ok := vals[f]; ok && !r.Has(f) {
			r = r.With(f, v)
		}
	}
	return r
}

//markMissing sets every empty field among fields to NotFound, with a
//diagnostic for each.
func (r Record) markMissing(fields []Field) Record {
	for _, f := range fields {
		if r.Has(f) {
			continue
		}
		r = r.With(f, NotFound).withDiagnostic(newError(FieldNotFound, r.Filename, f, "no value found"))
	}
	return r
}

//Rounded returns the display copy of r: every value with an error is
//written in mean(bracket) notation and fit statistics get two decimals.
//Limit-pinned values become empty strings, with a diagnostic.
func (r Record) Rounded() Record {
	out := r
	for _, f := range Fields {
		v, err := uncert.Round(string(f), r.Get(f))
		switch {
		case errors.Is(err, uncert.ErrLimitPinned):
			out = out.With(f, "").withDiagnostic(newError(LimitPinnedValue, r.Filename, f, "%s is pinned at a refinement limit", r.Get(f)))
		case err != nil:
			out = out.withDiagnostic(newError(MalformedInput, r.Filename, f, "cannot round %q: %v", r.Get(f), err))
		default:
			out = out.With(f, v)
		}
	}
	return out
}

//Values returns the field values in the order of Fields.
func (r Record) Values() []string {
	ret := make([]string, len(Fields))
	for i, f := range Fields {
		ret[i] = r.Get(f)
	}
	return ret
}
