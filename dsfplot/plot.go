/*
 * plot.go, part of godsf
 *
 * Copyright (c) 2024 Raul Mera Adasme <raul_dot_mera_changeforat_usach_dot_cl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

//Package dsfplot draws quick-look plots of correlation functions and
//spectra, in png format. Nothing here is needed to compute anything; it
//exists so a run can be eyeballed without leaving Go.
package dsfplot

import (
	"fmt"
	"image/color"
	"math"

	dsf "github.com/rmera/godsf"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func lineColor(key, total int) color.RGBA {
	if total < 2 {
		total = 2
	}
	v := uint8(200 * key / (total - 1))
	return color.RGBA{R: v, B: 255 - v, A: 255}
}

// addCurves adds one line per requested row of the matrix-shaped array
// data (row-major, rows x cols), with x as the shared axis. Rows that are
// NaN (empty k bins) are left out.
func addCurves(p *plot.Plot, x []float64, data []float64, cols int, rows []int, label func(int) string) error {
	for n, b := range rows {
		row := data[b*cols : (b+1)*cols]
		if math.IsNaN(row[0]) {
			continue
		}
		pts := make(plotter.XYs, len(x))
		for i, xi := range x {
			pts[i].X = xi
			pts[i].Y = row[i]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = lineColor(n, len(rows))
		p.Add(l)
		p.Legend.Add(label(b), l)
	}
	return nil
}

// FKT plots F(k,t) against t for the given pair, one curve per requested
// k bin. The extension is added to plotname.
func FKT(res *dsf.Result, pair int, bins []int, plotname string) error {
	if res == nil {
		return fmt.Errorf("godsf/dsfplot: nil results given")
	}
	p := res.Pairs[pair]
	pl := basicPlot("F(k,t), pair "+p.Label(res.Info.Types), "t", "F(k,t)")
	a, err := arrayByName(res, "F_"+p.Name())
	if err != nil {
		return err
	}
	label := func(b int) string { return fmt.Sprintf("k=%4.2f", res.K[b]) }
	if err := addCurves(pl, res.Times, a.Data, a.Cols, bins, label); err != nil {
		return err
	}
	return pl.Save(5*vg.Inch, 4*vg.Inch, plotname+".png")
}

// SKW plots S(k,w) against w for the given pair, one curve per requested
// k bin. It returns an error if the run skipped the spectra.
func SKW(res *dsf.Result, pair int, bins []int, plotname string) error {
	if res == nil {
		return fmt.Errorf("godsf/dsfplot: nil results given")
	}
	if !res.HasSpectra {
		return fmt.Errorf("godsf/dsfplot: the run has no spectra to plot")
	}
	p := res.Pairs[pair]
	pl := basicPlot("S(k,w), pair "+p.Label(res.Info.Types), "w", "S(k,w)")
	a, err := arrayByName(res, "Skw_"+p.Name())
	if err != nil {
		return err
	}
	label := func(b int) string { return fmt.Sprintf("k=%4.2f", res.K[b]) }
	if err := addCurves(pl, res.Omega, a.Data, a.Cols, bins, label); err != nil {
		return err
	}
	return pl.Save(5*vg.Inch, 4*vg.Inch, plotname+".png")
}

func arrayByName(res *dsf.Result, name string) (dsf.Array, error) {
	for _, a := range res.Arrays() {
		if a.Name == name {
			return a, nil
		}
	}
	return dsf.Array{}, fmt.Errorf("godsf/dsfplot: no array named %s", name)
}
