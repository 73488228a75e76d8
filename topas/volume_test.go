package topas

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/rmera/celltab/spacegroup"
)

func TestCellVolume(Te *testing.T) {
	tests := []struct {
		name                string
		a, b, c, al, be, ga float64
		want                float64
	}{
		{"cubic", 4, 4, 4, 90, 90, 90, 64},
		{"orthorhombic", 5, 6, 7, 90, 90, 90, 210},
		{"hexagonal", 3.2101, 3.2101, 5.2012, 90, 90, 120, 46.4164},
		{"monoclinic", 5.123456, 6.234567, 7.345678, 90, 104.5678, 90, 227.096},
	}
	for _, tt := range tests {
		got := CellVolume(tt.a, tt.b, tt.c, tt.al, tt.be, tt.ga)
		if !scalar.EqualWithinAbs(got, tt.want, 1e-3) {
			Te.Errorf("%s: volume %.5f, want %.4f", tt.name, got, tt.want)
		}
	}
	if v := CellVolume(1, 1, 1, 10, 10, 100); !math.IsNaN(v) {
		Te.Errorf("impossible cell has volume %g", v)
	}
}

func TestCheckVolume(Te *testing.T) {
	r := Record{
		Filename: "v.out",
		A:        "5.0`_0.1", B: "5.0`_0.1", C: "5.0`_0.1",
		Al: "90", Be: "90", Ga: "90",
		Volume: "126.0`_0.5",
	}
	if d := checkVolume(r, spacegroup.Cubic, DefaultVolumeTolerance).Diagnostics; len(d) != 0 {
		Te.Errorf("volume within tolerance flagged: %v", d)
	}
	r.Volume = "130.0`_0.5"
	if !hasDiagnostic(checkVolume(r, spacegroup.Cubic, DefaultVolumeTolerance), VolumeMismatch, FieldVolume) {
		Te.Error("volume mismatch not flagged")
	}
	if d := checkVolume(r, spacegroup.Rhombohedral, DefaultVolumeTolerance).Diagnostics; len(d) != 0 {
		Te.Errorf("rhombohedral cell checked: %v", d)
	}
	if d := checkVolume(r, spacegroup.Cubic, 0).Diagnostics; len(d) != 0 {
		Te.Errorf("check not disabled: %v", d)
	}
	r.Be = NotFound
	if d := checkVolume(r, spacegroup.Cubic, DefaultVolumeTolerance).Diagnostics; len(d) != 0 {
		Te.Errorf("incomplete cell checked: %v", d)
	}
}
