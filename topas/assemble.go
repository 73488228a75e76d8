/*
 * assemble.go, part of celltab.
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
	"strings"

	"go.uber.org/zap"

	"github.com/rmera/celltab/spacegroup"
)

//Extractor builds Records from TOPAS outputs. It only reads its catalog,
//so one Extractor can serve any number of goroutines.
type Extractor struct {
	cat    *spacegroup.Catalog
	log    *zap.Logger
	volTol float64
}

//Option configures an Extractor.
type Option func(*Extractor)

//WithLogger sets the logger diagnostics are written to. The default
//discards them.
func WithLogger(l *zap.Logger) Option {
	return func(x *Extractor) {
		if l != nil {
			x.log = l
		}
	}
}

//WithVolumeTolerance sets the relative tolerance of the volume check.
//Zero or a negative value disables the check.
func WithVolumeTolerance(tol float64) Option {
	return func(x *Extractor) { x.volTol = tol }
}

//NewExtractor returns an Extractor that resolves space groups with cat.
//A nil cat means the built-in catalog.
func NewExtractor(cat *spacegroup.Catalog, opts ...Option) *Extractor {
	if cat == nil {
		cat = spacegroup.Default()
	}
	x := &Extractor{cat: cat, log: zap.NewNop(), volTol: DefaultVolumeTolerance}
	for _, o := range opts {
		o(x)
	}
	return x
}

//Assemble extracts a Record from raw, the contents of the file filename.
//The returned record always has every field set, to a value or to
//NotFound, and carries the non-critical problems as diagnostics. If the
//fit statistics are missing, the file is malformed and a critical *Error
//is returned along with the record.
func (x *Extractor) Assemble(filename, raw string) (Record, error) {
	r := Record{Filename: filename}
	r, sys, ok := x.spaceGroup(r, raw)
	if ok {
		r = x.volume(r, raw)
		r = x.cell(r, raw, sys)
	} else {
		r = r.With(FieldVolume, NotFound)
		for _, f := range cellFields {
			r = r.With(f, NotFound)
		}
	}
	r, err := x.fit(r, raw)
	r = r.markMissing(Fields)
	if ok {
		r = checkVolume(r, sys, x.volTol)
	}
	x.report(r)
	if err != nil {
		x.log.Error("malformed refinement output", zap.String("file", filename), zap.Error(err))
	}
	return r, err
}

//spaceGroup sets the space group and crystal system of r. It returns
//false when the crystal system could not be determined, in which case
//nothing that depends on it should be attempted.
func (x *Extractor) spaceGroup(r Record, raw string) (Record, spacegroup.System, bool) {
	sg, found := spaceGroup(raw)
	if !found {
		r = r.With(FieldSpaceGroup, NotFound).With(FieldCrystalSystem, NotFound)
		r = r.withDiagnostic(newError(FieldNotFound, r.Filename, FieldSpaceGroup, "no space_group keyword"))
		return r, 0, false
	}
	r = r.With(FieldSpaceGroup, sg)
	e, err := x.cat.Lookup(sg)
	if err != nil {
		r = r.With(FieldCrystalSystem, NotFound)
		r = r.withDiagnostic(newError(CatalogLookupFailure, r.Filename, FieldCrystalSystem,
			"space group %q is not in the catalog, cell parameters skipped", sg))
		return r, 0, false
	}
	return r.With(FieldCrystalSystem, e.System.String()), e.System, true
}

func (x *Extractor) volume(r Record, raw string) Record {
	if v, ok := volume(raw); ok {
		return r.With(FieldVolume, v)
	}
	return r
}

//cell extracts lengths and angles, completes them with the rules of the
//crystal system and falls back on lattice macros when the usual keywords
//give nothing.
func (x *Extractor) cell(r Record, raw string, sys spacegroup.System) Record {
	u := ruleFor(sys)
	free := u.freeAngles()
	lengths := scanGroup(raw, lengthFields, lengthLevels)
	angles := scanGroup(raw, free, angleLevels)
	r = r.merge(lengths).merge(angles)
	r = u.complete(r)
	if len(lengths) == 0 || (len(free) > 0 && len(angles) == 0) {
		var macroSys spacegroup.System
		var found bool
		r, macroSys, found = altNotation(r, raw)
		if found && macroSys != sys {
			x.log.Debug("lattice macro and space group disagree",
				zap.String("file", r.Filename), zap.Stringer("macro", macroSys), zap.Stringer("space_group", sys))
		}
		r = u.complete(r)
	}
	return r.markMissing(cellFields)
}

func (x *Extractor) fit(r Record, raw string) (Record, error) {
	vals, missing := fitStats(raw)
	r = r.merge(vals)
	if len(missing) == 0 {
		return r, nil
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = string(f)
		r = r.With(f, NotFound)
	}
	e := newError(MalformedInput, r.Filename, missing[0], "missing fit statistics: %s", strings.Join(names, ", "))
	e.critical = true
	return r, errDecorate(&e, "Assemble")
}

func (x *Extractor) report(r Record) {
	for _, d := range r.Diagnostics {
		x.log.Warn(d.message,
			zap.String("file", d.filename),
			zap.String("field", string(d.field)),
			zap.Stringer("kind", d.kind))
	}
}
