/*
 * dsf.go, part of godsf
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

package dsf

import (
	"fmt"
	"log"

	"github.com/rmera/godsf/bin"
	"github.com/rmera/godsf/filon"
	"gonum.org/v1/gonum/mat"
)

// Options controls a Calculate run. The zero value gives usable defaults.
type Options struct {
	//NBins is the number of radial |k| bins. Defaults to 100, capped at
	//the number of k-points.
	NBins int
	//Workers is the size of the worker pool for the lag units. Defaults
	//to the number of CPUs.
	Workers int
	//Interp selects the interpolation used to put binned data on the
	//dense grid of the van Hove transform.
	Interp filon.Interp
	//DensePanels is the number of panel pairs of that dense grid, and
	//also the number of r points of G(r,t). Defaults to 128.
	DensePanels int
}

func (o *Options) fill(info *SourceInfo) {
	if o.NBins < 1 {
		o.NBins = 100
	}
	if o.NBins > info.NK {
		o.NBins = info.NK
	}
	if o.DensePanels < 1 {
		o.DensePanels = 128
	}
}

// Result holds everything a run produced. Per-pair and per-type matrices
// have one row per k bin (or per r point) and one column per time lag (or
// per frequency). Rows of empty k bins are NaN.
type Result struct {
	Info    *SourceInfo
	Pairs   []Pair
	Windows int       //windows consumed
	K       []float64 //k-bin centers
	KCounts []int     //k-points per bin
	Times   []float64 //time axis, NTc points
	Omega   []float64 //frequency axis; nil if the spectra were skipped
	R       []float64 //real-space axis; nil if the van Hove part was skipped
	F       []*mat.Dense
	Cl, Ct  []*mat.Dense //nil without velocity data
	Fs      []*mat.Dense //per type; nil unless self correlations were requested
	Skw     []*mat.Dense
	Clw     []*mat.Dense
	Ctw     []*mat.Dense
	Fsw     []*mat.Dense
	Gr      []*mat.Dense
	Grs     []*mat.Dense
	//HasSpectra and HasVanHove report the degenerate-axis policy: the
	//frequency transform needs at least 3 time samples, the van Hove
	//transform at least 2 non-empty k bins and a known box volume.
	HasSpectra bool
	HasVanHove bool
}

// Calculate runs the whole pipeline: it drains the window source through
// the parallel correlation accumulator, radially bins the averaged
// correlations, and Fourier-transforms them to S(k,w) and G(r,t) where
// the axes allow it.
func Calculate(src WindowSource, opts *Options) (*Result, error) {
	info := src.Info()
	if info == nil {
		return nil, NewError("window source has no setup information", "Calculate")
	}
	if err := info.Check(); err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	o := new(Options)
	if opts != nil {
		*o = *opts
	}
	o.fill(info)
	acc := NewAccumulators(info)
	nwin, err := Correlate(src, acc, o.Workers)
	if err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	if nwin == 0 {
		return nil, NewError("window source yielded no windows", "Calculate")
	}
	binner, err := bin.NewRadial(info.KMax, o.NBins, info.KDistances)
	if err != nil {
		return nil, NewError(err.Error(), "Calculate")
	}
	res := &Result{Info: info, Pairs: acc.Pairs, Windows: nwin}
	res.K = binner.Centers()
	res.KCounts = binner.Counts()
	res.Times = make([]float64, info.NTc)
	for i := range res.Times {
		res.Times[i] = float64(i) * info.DeltaT
	}
	res.F = binAll(acc.F, binner)
	if info.HasCurrents {
		res.Cl = binAll(acc.Cl, binner)
		res.Ct = binAll(acc.Ct, binner)
	}
	if info.HasSelf {
		res.Fs = binAll(acc.Fs, binner)
	}
	res.spectra()
	if err := res.vanHove(binner, o); err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	return res, nil
}

// binAll collapses the k axis of each averager into radial bins,
// producing one NBins x NTc matrix per averager.
func binAll(avs []*SlotAverager, binner *bin.Radial) []*mat.Dense {
	ret := make([]*mat.Dense, len(avs))
	for m, av := range avs {
		d := mat.NewDense(binner.NBins(), av.NSlots(), nil)
		for t := 0; t < av.NSlots(); t++ {
			bv := binner.Bin(av.Mean(t))
			for b, v := range bv {
				d.Set(b, t, v)
			}
		}
		ret[m] = d
	}
	return ret
}

// spectra cosine-transforms the time axis of every binned correlation.
// With fewer than 3 time samples there is no spectrum to speak of and the
// whole step is skipped; that is policy, not an error.
func (res *Result) spectra() {
	n := res.Info.NTc
	if n < 3 {
		return
	}
	if n%2 == 0 {
		//Sources are expected to have forced an odd window length (see
		//OddWindowLength); with an even one the last sample is unusable
		//for the transform and gets left out.
		log.Printf("godsf: even window length %d, the last time sample is excluded from the spectra", n)
		n--
	}
	res.Omega = filon.Frequencies(n, res.Info.DeltaT)
	res.HasSpectra = true
	res.Skw = cosRows(res.F, n, res.Info.DeltaT)
	if res.Info.HasCurrents {
		res.Clw = cosRows(res.Cl, n, res.Info.DeltaT)
		res.Ctw = cosRows(res.Ct, n, res.Info.DeltaT)
	}
	if res.Info.HasSelf {
		res.Fsw = cosRows(res.Fs, n, res.Info.DeltaT)
	}
}

// cosRows transforms the first n columns of each matrix row-wise. NaN
// rows (empty bins) stay NaN: the transform of nothing is nothing.
func cosRows(in []*mat.Dense, n int, dt float64) []*mat.Dense {
	nw := (n-1)/2 + 1
	ret := make([]*mat.Dense, len(in))
	for m, d := range in {
		nb, nc := d.Dims()
		series := make([]float64, nc)
		out := mat.NewDense(nb, nw, nil)
		for b := 0; b < nb; b++ {
			mat.Row(series, b, d)
			if isNaN(series[0]) {
				for i := 0; i < nw; i++ {
					out.Set(b, i, series[0])
				}
				continue
			}
			_, s := filon.FourierCos(series[:n], dt)
			out.SetRow(b, s)
		}
		ret[m] = out
	}
	return ret
}

// vanHove sine-integral-transforms the k axis of the binned correlations
// into G(r,t). Needs at least two non-empty bins and a known box volume;
// otherwise the step is skipped, visibly via HasVanHove.
func (res *Result) vanHove(binner *bin.Radial, o *Options) error {
	ne := binner.NonEmpty()
	if len(ne) < 2 || res.Info.Volume <= 0 {
		return nil
	}
	res.R = filon.RGrid(res.Info.KMax, o.DensePanels)
	res.HasVanHove = true
	xs := make([]float64, len(ne))
	for i, b := range ne {
		xs[i] = binner.Centers()[b]
	}
	var err error
	res.Gr = make([]*mat.Dense, len(res.Pairs))
	for m, p := range res.Pairs {
		rho := float64(res.Info.Counts[p.J]) / res.Info.Volume
		res.Gr[m], err = grOne(res.F[m], ne, xs, rho, res.R, o)
		if err != nil {
			return errDecorate(err, fmt.Sprintf("vanHove: pair %s", p.Name()))
		}
	}
	if res.Info.HasSelf {
		res.Grs = make([]*mat.Dense, len(res.Fs))
		for m := range res.Fs {
			rho := float64(res.Info.Counts[m]) / res.Info.Volume
			res.Grs[m], err = grOne(res.Fs[m], ne, xs, rho, res.R, o)
			if err != nil {
				return errDecorate(err, fmt.Sprintf("vanHove: self, type %d", m))
			}
		}
	}
	return nil
}

// grOne transforms one binned correlation matrix, lag by lag.
func grOne(f *mat.Dense, ne []int, xs []float64, rho float64, r []float64, o *Options) (*mat.Dense, error) {
	_, ntc := f.Dims()
	out := mat.NewDense(len(r), ntc, nil)
	ys := make([]float64, len(ne))
	for t := 0; t < ntc; t++ {
		for i, b := range ne {
			ys[i] = f.At(b, t)
		}
		x0, dx, dense, err := o.Interp.Resample(xs, ys, o.DensePanels)
		if err != nil {
			return nil, NewError(err.Error(), "grOne")
		}
		g := filon.VanHove(dense, x0, dx, rho, r)
		for i, v := range g {
			out.Set(i, t, v)
		}
	}
	return out, nil
}

func isNaN(v float64) bool {
	return v != v
}
