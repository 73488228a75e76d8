package topas

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScanGroupStrictness(Te *testing.T) {
	tests := []struct {
		name    string
		raw     string
		members []Field
		levels  int
		want    map[Field]string
	}{
		{"error beats an earlier plain value",
			"a  5.1\nprm x 1.0\na @ 5.2`_0.1\n", lengthFields, lengthLevels,
			map[Field]string{FieldA: "5.2`_0.1"}},
		{"dangling marker",
			"a  5.3`\n", lengthFields, lengthLevels,
			map[Field]string{FieldA: "5.3"}},
		{"each member at its own level",
			"a @ 5.0`_0.1\nb  6.0\nc  7\n", lengthFields, lengthLevels,
			map[Field]string{FieldA: "5.0`_0.1", FieldB: "6.0", FieldC: "7"}},
		{"no loose angles",
			"al  90\nbe  104.2\n", angleFields, angleLevels,
			map[Field]string{FieldBe: "104.2"}},
		{"refinement flags and parameter names",
			"a !5.01\nb lpb 6.02`_0.03\nc @lpc 7.03_0.04\n", lengthFields, lengthLevels,
			map[Field]string{FieldA: "5.01", FieldB: "6.02`_0.03", FieldC: "7.03_0.04"}},
		{"keywords inside other words are ignored",
			"bkg @ 1.0`_0.1\nbeq @ 0.5`_0.1\nla  1\n", lengthFields, lengthLevels,
			map[Field]string{}},
		{"limit-pinned value",
			"a @ 5.0`_LIMIT_MIN\n", lengthFields, lengthLevels,
			map[Field]string{FieldA: "5.0`_LIMIT_MIN"}},
	}
	for _, tt := range tests {
		got := scanGroup(tt.raw, tt.members, tt.levels)
		if d := cmp.Diff(tt.want, got); d != "" {
			Te.Errorf("%s: mismatch (-want +got):\n%s", tt.name, d)
		}
	}
}

func TestSpaceGroupAndVolume(Te *testing.T) {
	for raw, want := range map[string]string{
		"space_group \"P 21/c\"\n": "P 21/c",
		"space_group Fm-3m\n":      "Fm-3m",
		"\tspace_group  I41/amd":    "I41/amd",
	} {
		if sg, ok := spaceGroup(raw); !ok || sg != want {
			Te.Errorf("space group of %q: %q, %v", raw, sg, ok)
		}
	}
	if _, ok := spaceGroup("phase_name \"space_group\"\n"); ok {
		Te.Error("space group found in a phase name")
	}
	tests := []struct {
		raw, want string
	}{
		{"volume  100.0\ncell_volume  99.0`_0.1\n", "99.0`_0.1"},
		{"cell_volume  99.5\nvolume  99.0`_0.1\n", "99.0`_0.1"},
		{"cell_volume  99.5`\n", "99.5"},
		{"volume  99.5\n", "99.5"},
	}
	for _, tt := range tests {
		if v, ok := volume(tt.raw); !ok || v != tt.want {
			Te.Errorf("volume of %q: %q, %v", tt.raw, v, ok)
		}
	}
	if _, ok := volume("volume  100\n"); ok {
		Te.Error("integer volume accepted")
	}
}

func TestFitStats(Te *testing.T) {
	found, missing := fitStats("r_exp  3.417 r_exp_dash  6.112 r_wp  7.345 r_wp_dash  13.120 gof  2.149")
	want := map[Field]string{FieldRwp: "7.345", FieldRexp: "3.417", FieldChi: "2.149"}
	if d := cmp.Diff(want, found); d != "" || len(missing) != 0 {
		Te.Errorf("mismatch (-want +got):\n%s\nmissing: %v", d, missing)
	}
	found, missing = fitStats("r_wp_dash  13.120 gof  2.149")
	if d := cmp.Diff([]Field{FieldRwp, FieldRexp}, missing); d != "" || found[FieldChi] != "2.149" {
		Te.Errorf("missing mismatch (-want +got):\n%s", d)
	}
}
