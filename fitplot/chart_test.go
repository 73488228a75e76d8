package fitplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/celltab/topas"
)

var recs = []topas.Record{
	{Filename: "runs/lifepo4.out", Rwp: "7.345", Rexp: "3.417", Chi: "2.149"},
	{Filename: "runs/garnet.out", Rwp: "8.234", Rexp: topas.NotFound, Chi: "1.997"},
	{Filename: "runs/odd.out", Rwp: "6.0`_0.1", Rexp: "bad", Chi: "2.000"},
}

func TestValues(Te *testing.T) {
	if d := cmp.Diff(plotter.Values{7.345, 8.234, 6.0}, values(recs, topas.FieldRwp)); d != "" {
		Te.Errorf("rwp mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff(plotter.Values{3.417, 0, 0}, values(recs, topas.FieldRexp)); d != "" {
		Te.Errorf("rexp mismatch (-want +got):\n%s", d)
	}
}

func TestChart(Te *testing.T) {
	if _, err := Chart(nil, "empty"); err == nil {
		Te.Error("chart of no records")
	}
	p, err := Chart(recs, "Batch")
	if err != nil {
		Te.Fatal(err)
	}
	if p.Title.Text != "Batch" || p.Title.Padding != 3*vg.Millimeter {
		Te.Errorf("title %q, padding %v", p.Title.Text, p.Title.Padding)
	}
	for _, name := range []string{"fit.png", "fit.svg"} {
		out := filepath.Join(Te.TempDir(), name)
		if err := Save(recs, "Batch", out); err != nil {
			Te.Fatal(err)
		}
		if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
			Te.Errorf("%s not written: %v", name, err)
		}
	}
	if err := Save(recs, "Batch", filepath.Join(Te.TempDir(), "fit.unknown")); err == nil {
		Te.Error("unknown format accepted")
	}
}

func TestPalette(Te *testing.T) {
	seen := make(map[[3]uint8]bool)
	for i := 0; i < len(Stats); i++ {
		c := palette(i, len(Stats))
		if c.A != 255 {
			Te.Errorf("color %d is not opaque", i)
		}
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	if len(seen) != len(Stats) {
		Te.Errorf("%d distinct colors for %d series", len(seen), len(Stats))
	}
	if c := hsv2RGB(0, 1, 0); c.R != 255 || c.G != 255 || c.B != 255 {
		Te.Errorf("unsaturated white is %v", c)
	}
}
