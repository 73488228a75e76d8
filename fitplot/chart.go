/*
 * chart.go, part of celltab.
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


package fitplot

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/celltab/topas"
	"github.com/rmera/celltab/uncert"
)

//Stats are the fit statistics drawn, in order.
var Stats = []topas.Field{topas.FieldRwp, topas.FieldRexp, topas.FieldChi}

var statLabels = map[topas.Field]string{
	topas.FieldRwp:  "Rwp",
	topas.FieldRexp: "Rexp",
	topas.FieldChi:  "GOF",
}

//values returns the numeric value of the statistic f for each record.
//Values that are missing or can't be read are drawn as 0.
func values(recs []topas.Record, f topas.Field) plotter.Values {
	ret := make(plotter.Values, len(recs))
	for i, r := range recs {
		if !r.Found(f) {
			continue
		}
		v, err := strconv.ParseFloat(uncert.ParseToken(r.Get(f)).Mean, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		ret[i] = v
	}
	return ret
}

//Chart returns a plot with one group of bars per record, one bar for
//each of the Stats. Groups are labelled with the base name of the file.
func Chart(recs []topas.Record, title string) (*plot.Plot, error) {
	if len(recs) == 0 {
		return nil, fmt.Errorf("fitplot: no records to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.Y.Label.Text = "Fit statistic"
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	width := vg.Points(12)
	for i, f := range Stats {
		bars, err := plotter.NewBarChart(values(recs, f), width)
		if err != nil {
			return nil, fmt.Errorf("fitplot: %s bars: %w", f, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = palette(i, len(Stats))
		bars.Offset = width * vg.Length(i-len(Stats)/2)
		p.Add(bars)
		p.Legend.Add(statLabels[f], bars)
	}
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = filepath.Base(r.Filename)
	}
	p.NominalX(names...)
	return p, nil
}

//Save draws the chart for recs into filename. The format is given by
//the extension (png, svg, pdf, eps, jpg or tif).
func Save(recs []topas.Record, title, filename string) error {
	p, err := Chart(recs, title)
	if err != nil {
		return err
	}
	w := vg.Length(len(recs))*vg.Points(float64(len(Stats))*12+16) + 2*vg.Inch
	if err := p.Save(w, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("fitplot: save %s: %w", filename, err)
	}
	return nil
}
