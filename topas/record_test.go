package topas

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordWith(Te *testing.T) {
	r := Record{Filename: "x.out"}
	s := r.With(FieldA, "5.0")
	if r.A != "" || s.A != "5.0" || s.Get(FieldA) != "5.0" {
		Te.Errorf("With changed its receiver or lost the value: %+v %+v", r, s)
	}
	d := s.withDiagnostic(newError(FieldNotFound, "x.out", FieldB, "no value found"))
	e := d.withDiagnostic(newError(FieldNotFound, "x.out", FieldC, "no value found"))
	if len(s.Diagnostics) != 0 || len(d.Diagnostics) != 1 || len(e.Diagnostics) != 2 {
		Te.Errorf("diagnostics shared between copies: %d %d %d", len(s.Diagnostics), len(d.Diagnostics), len(e.Diagnostics))
	}
	f := d.withDiagnostic(newError(VolumeMismatch, "x.out", FieldVolume, "other"))
	if e.Diagnostics[1].Kind() != FieldNotFound || f.Diagnostics[1].Kind() != VolumeMismatch {
		Te.Error("appending to a copy overwrote another copy's diagnostics")
	}
}

func TestRecordMergeAndMissing(Te *testing.T) {
	r := Record{Filename: "x.out", A: "5.0"}
	r = r.merge(map[Field]string{FieldA: "9.9", FieldB: "6.0"})
	if r.A != "5.0" || r.B != "6.0" {
		Te.Errorf("merge overwrote or skipped values: %+v", r)
	}
	r = r.markMissing(Fields)
	if !r.Complete() || r.Found(FieldC) || !r.Has(FieldC) || r.C != NotFound {
		Te.Errorf("missing fields not marked: %+v", r)
	}
	if len(r.Diagnostics) != len(Fields)-3 {
		Te.Errorf("%d diagnostics for %d missing fields", len(r.Diagnostics), len(Fields)-3)
	}
	want := []string{"x.out", NotFound, NotFound, "5.0", "6.0", NotFound}
	if d := cmp.Diff(want, r.Values()[:6]); d != "" {
		Te.Errorf("values mismatch (-want +got):\n%s", d)
	}
}

func TestRecordRoundedKeepsText(Te *testing.T) {
	r := Record{
		Filename: "x.out", CrystalSystem: "cubic", SpaceGroup: "Fm-3m",
		A: "5.43`_0.02", Al: "90", Volume: NotFound, Rwp: "bogus`_x",
	}
	d := r.Rounded()
	if d.A != "5.430(20)" || d.Al != "90" || d.Volume != NotFound || d.SpaceGroup != "Fm-3m" {
		Te.Errorf("unexpected display record %+v", d)
	}
	if d.Rwp != "bogus`_x" || !hasDiagnostic(d, MalformedInput, FieldRwp) {
		Te.Errorf("unroundable value %q, diagnostics %v", d.Rwp, d.Diagnostics)
	}
}

func TestErrorText(Te *testing.T) {
	e := newError(CatalogLookupFailure, "x.out", FieldCrystalSystem, "space group %q unknown", "ZZ")
	if !strings.Contains(e.Error(), "x.out") || !strings.Contains(e.Error(), `"ZZ"`) {
		Te.Errorf("unexpected message %q", e.Error())
	}
	if e.Kind().String() != "catalog lookup failure" || Kind(42).String() != "Kind(42)" {
		Te.Errorf("kind names %q %q", e.Kind(), Kind(42))
	}
	if e.Critical() {
		Te.Error("new errors are not critical")
	}
}
