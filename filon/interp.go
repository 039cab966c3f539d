/*
 * interp.go, part of godsf
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

package filon

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Interp selects how binned samples are put onto the dense, uniform grid
// the quadrature needs. The choice is made once, at configuration time;
// there is no runtime capability probing.
type Interp int

const (
	//Linear is piecewise-linear interpolation. Always safe.
	Linear Interp = iota
	//Akima is an Akima cubic spline, smoother on well-resolved data.
	Akima
)

func (ip Interp) predictor() interp.FittablePredictor {
	if ip == Akima {
		return &interp.AkimaSpline{}
	}
	return &interp.PiecewiseLinear{}
}

// Resample fits the (xs, ys) samples and evaluates them on a uniform grid
// of 2*panels+1 points spanning [xs[0], xs[len(xs)-1]], which is the odd
// sample count the quadrature wants. xs must be strictly increasing with
// at least two points.
func (ip Interp) Resample(xs, ys []float64, panels int) (x0, dx float64, out []float64, err error) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0, 0, nil, fmt.Errorf("godsf/filon: need at least 2 matching samples to resample, got %d xs, %d ys", len(xs), len(ys))
	}
	if panels < 1 {
		return 0, 0, nil, fmt.Errorf("godsf/filon: need at least 1 panel, got %d", panels)
	}
	p := ip.predictor()
	if err := p.Fit(xs, ys); err != nil {
		return 0, 0, nil, fmt.Errorf("godsf/filon: interpolant fit failed: %v", err)
	}
	x0 = xs[0]
	dx = (xs[len(xs)-1] - x0) / float64(2*panels)
	out = make([]float64, 2*panels+1)
	for i := range out {
		out[i] = p.Predict(x0 + float64(i)*dx)
	}
	return x0, dx, out, nil
}

// ResampleRows is the 2-D form of Resample: every row of ys shares the
// same xs axis and gets its own interpolant.
func (ip Interp) ResampleRows(xs []float64, ys [][]float64, panels int) (x0, dx float64, out [][]float64, err error) {
	out = make([][]float64, len(ys))
	for i, row := range ys {
		x0, dx, out[i], err = ip.Resample(xs, row, panels)
		if err != nil {
			return 0, 0, nil, err
		}
	}
	return x0, dx, out, nil
}
