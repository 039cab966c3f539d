/*
 * corr.go, part of godsf
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
	"math"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Accumulators holds the slot averagers a run folds its window
// contributions into. One instance is built fresh per run and never
// reused; it is the only mutable state shared between windows.
//
// Slot s of each averager collects the lag-s contribution of every window,
// one value per k-point. Lag 0 is the static (instantaneous) case.
type Accumulators struct {
	info  *SourceInfo
	Pairs []Pair
	//F holds the density correlation, one averager per pair type.
	F []*SlotAverager
	//Cl and Ct hold the longitudinal and transverse current correlations.
	//They are nil when the source has no velocity data.
	Cl []*SlotAverager
	Ct []*SlotAverager
	//Fs holds the self correlation, one averager per particle type (not
	//per pair). Nil unless self correlations were requested.
	Fs      []*SlotAverager
	offsets []int     //first displacement row per type
	norms   []float64 //per pair, 1/sqrt(Ni*Nj)
	windows int
}

// NewAccumulators builds the accumulator set for one run from the source's
// setup information.
func NewAccumulators(info *SourceInfo) *Accumulators {
	a := &Accumulators{info: info}
	a.Pairs = PairList(info.NTypes())
	a.F = make([]*SlotAverager, len(a.Pairs))
	a.norms = make([]float64, len(a.Pairs))
	for m, p := range a.Pairs {
		a.F[m] = NewSlotAverager(info.NTc, info.NK)
		a.norms[m] = 1 / math.Sqrt(float64(info.Counts[p.I])*float64(info.Counts[p.J]))
	}
	if info.HasCurrents {
		a.Cl = make([]*SlotAverager, len(a.Pairs))
		a.Ct = make([]*SlotAverager, len(a.Pairs))
		for m := range a.Pairs {
			a.Cl[m] = NewSlotAverager(info.NTc, info.NK)
			a.Ct[m] = NewSlotAverager(info.NTc, info.NK)
		}
	}
	if info.HasSelf {
		a.Fs = make([]*SlotAverager, info.NTypes())
		a.offsets = make([]int, info.NTypes())
		off := 0
		for m := range a.Fs {
			a.Fs[m] = NewSlotAverager(info.NTc, info.NK)
			a.offsets[m] = off
			off += info.Counts[m]
		}
	}
	return a
}

// Windows returns the number of windows folded in so far.
func (a *Accumulators) Windows() int {
	return a.windows
}

// Correlate drains the window source and folds every window into acc,
// processing the lags of each window concurrently on nworkers goroutines.
// If nworkers is less than 1, the number of CPUs is used. It returns the
// number of windows consumed. Any failure, in the source or in a lag unit,
// aborts the run: a dropped lag contribution would silently corrupt the
// per-slot means, so there is nothing to recover.
func Correlate(src WindowSource, acc *Accumulators, nworkers int) (int, error) {
	if !src.Readable() {
		return 0, NewError("window source is not ready to be read", "Correlate")
	}
	if nworkers < 1 {
		nworkers = runtime.NumCPU()
	}
	read := 0
	for i := 0; ; i++ {
		win, err := src.Next()
		if err != nil {
			switch err := err.(type) {
			case LastWindowError:
				return read, nil
			case Err:
				err.Decorate(fmt.Sprintf("Correlate: failed while reading the %d th window", i))
				return read, err
			default:
				return read, err //somehow it wasn't one of ours. Shouldn't happen.
			}
		}
		if err := acc.addWindow(win, nworkers); err != nil {
			return read, errDecorate(err, fmt.Sprintf("Correlate: while processing the %d th window", i))
		}
		read++
	}
}

// addWindow dispatches one window's lag units over the worker pool and
// blocks until all of them are done. The blocking is load-bearing:
// averager slots are shared across windows, and the single-writer-per-slot
// argument only holds within one window's dispatch, so the next window
// must never start while units of this one still run.
func (a *Accumulators) addWindow(w *Window, nworkers int) error {
	if w.Len() != a.info.NTc {
		return NewError(fmt.Sprintf("window has %d frames, want %d", w.Len(), a.info.NTc), "addWindow")
	}
	for _, f := range w.Frames {
		if err := a.info.checkFrame(f); err != nil {
			return errDecorate(err, "addWindow")
		}
	}
	var g errgroup.Group
	g.SetLimit(nworkers)
	for ti := 0; ti < w.Len(); ti++ {
		ti := ti
		g.Go(func() error {
			return a.lagUnit(w.Ref(), w.Frames[ti], ti)
		})
	}
	if err := g.Wait(); err != nil {
		return errDecorate(err, "addWindow")
	}
	a.windows++
	return nil
}

// lagUnit computes every correlation between the reference frame and the
// frame at lag ti, and adds the results at slot ti. Each concurrently
// running unit owns a distinct lag, so no two units ever write the same
// slot. The unit is a pure numeric reduction: no I/O, no waiting.
func (a *Accumulators) lagUnit(f0, fi *Frame, ti int) error {
	nk := a.info.NK
	val := make([]float64, nk)
	for m, p := range a.Pairs {
		r0 := f0.RhoK[p.I]
		ri := fi.RhoK[p.J]
		for k := 0; k < nk; k++ {
			val[k] = real(r0[k]*cmplx.Conj(ri[k])) * a.norms[m]
		}
		if err := checkFinite(val, "density correlation", ti); err != nil {
			return err
		}
		a.F[m].Add(val, ti)
	}
	if a.info.HasCurrents {
		for m, p := range a.Pairs {
			j0 := f0.JzK[p.I]
			ji := fi.JzK[p.J]
			for k := 0; k < nk; k++ {
				val[k] = real(j0[k]*cmplx.Conj(ji[k])) * a.norms[m]
			}
			if err := checkFinite(val, "longitudinal current correlation", ti); err != nil {
				return err
			}
			a.Cl[m].Add(val, ti)
			p0 := f0.JperK[p.I]
			pi := fi.JperK[p.J]
			for k := 0; k < nk; k++ {
				val[k] = 0.5 * (real(p0[0][k]*cmplx.Conj(pi[0][k])) + real(p0[1][k]*cmplx.Conj(pi[1][k]))) * a.norms[m]
			}
			if err := checkFinite(val, "transverse current correlation", ti); err != nil {
				return err
			}
			a.Ct[m].Add(val, ti)
		}
	}
	if a.info.HasSelf {
		//The self part comes from the displacements between frame 0 and
		//frame ti, which the source stores in fi itself, so f0 plays no
		//role here.
		kp := a.info.KPoints
		for m := range a.Fs {
			n := a.info.Counts[m]
			off := a.offsets[m]
			for k := 0; k < nk; k++ {
				kx := kp.At(k, 0)
				ky := kp.At(k, 1)
				kz := kp.At(k, 2)
				var re float64
				for j := off; j < off+n; j++ {
					re += math.Cos(kx*fi.Xs.At(j, 0) + ky*fi.Xs.At(j, 1) + kz*fi.Xs.At(j, 2))
				}
				val[k] = re / float64(n)
			}
			if err := checkFinite(val, "self correlation", ti); err != nil {
				return err
			}
			a.Fs[m].Add(val, ti)
		}
	}
	return nil
}

// checkFinite rejects NaN or Inf in a computed contribution. Non-finite
// values mean malformed input data, which makes the whole run unusable.
func checkFinite(val []float64, what string, ti int) error {
	for _, v := range val {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewError(fmt.Sprintf("non-finite %s at lag %d", what, ti), "lagUnit")
		}
	}
	return nil
}
