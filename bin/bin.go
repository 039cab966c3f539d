/*
 * bin.go, part of godsf
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

//Package bin collapses the k-point axis of a correlation array into a
//smaller number of radial |k| bins by unweighted averaging. The k-point
//grid is fixed for a whole run, so the point-to-bin assignment is computed
//once and reused for every array.
package bin

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Radial maps k-point distances onto linear radial bins over [0, max).
// Bins are half-open, [lo, hi), lower-inclusive. A distance exactly equal
// to the maximum would fall outside the last regular bin; such points go
// into one extra, extended bin appended past the requested range, rather
// than being silently merged into the last regular bin or dropped.
type Radial struct {
	width   float64
	nbins   int   //includes the extended bin, if present
	idx     []int //bin index per k-point, -1 for points past the range
	counts  []int
	fcounts []float64 //counts as float64, the divisor of Bin
	centers []float64
}

// NewRadial builds the binner for the given maximum radial extent, number
// of requested bins, and per-k-point radial distances.
func NewRadial(max float64, nbins int, distances []float64) (*Radial, error) {
	if max <= 0 || nbins < 1 {
		return nil, fmt.Errorf("godsf/bin: need a positive extent and at least 1 bin, got %v, %d", max, nbins)
	}
	if len(distances) == 0 {
		return nil, fmt.Errorf("godsf/bin: no k-point distances given")
	}
	r := &Radial{width: max / float64(nbins), nbins: nbins}
	r.idx = make([]int, len(distances))
	extended := false
	for i, d := range distances {
		if d < 0 {
			return nil, fmt.Errorf("godsf/bin: negative distance %v at k-point %d", d, i)
		}
		b := int(d / r.width)
		switch {
		case b < nbins:
			r.idx[i] = b
		case d == max:
			r.idx[i] = nbins //the extended bin
			extended = true
		default:
			r.idx[i] = -1 //past the range, never binned
		}
	}
	if extended {
		r.nbins = nbins + 1
	}
	r.counts = make([]int, r.nbins)
	for _, b := range r.idx {
		if b >= 0 {
			r.counts[b]++
		}
	}
	r.fcounts = make([]float64, r.nbins)
	for b, c := range r.counts {
		r.fcounts[b] = float64(c)
	}
	r.centers = make([]float64, r.nbins)
	for b := range r.centers {
		r.centers[b] = (float64(b) + 0.5) * r.width
	}
	return r, nil
}

// NBins returns the number of bins, including the extended bin if any
// k-point sits exactly on the maximum.
func (r *Radial) NBins() int {
	return r.nbins
}

// Width returns the bin width.
func (r *Radial) Width() float64 {
	return r.width
}

// Centers returns the bin centers.
func (r *Radial) Centers() []float64 {
	return r.centers
}

// Counts returns the number of k-points in each bin.
func (r *Radial) Counts() []int {
	return r.counts
}

// NonEmpty returns the indexes of the bins holding at least one k-point.
func (r *Radial) NonEmpty() []int {
	ret := make([]int, 0, r.nbins)
	for b, c := range r.counts {
		if c > 0 {
			ret = append(ret, b)
		}
	}
	return ret
}

// Bin averages the k-point-indexed values into bin-indexed means. A bin
// with no k-points yields NaN, never a spurious zero. If dest is given and
// large enough it holds the result.
func (r *Radial) Bin(values []float64, dest ...[]float64) []float64 {
	if len(values) != len(r.idx) {
		panic(fmt.Sprintf("godsf/bin: %d values given for %d k-points", len(values), len(r.idx)))
	}
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= r.nbins {
		d = dest[0][:r.nbins]
		for b := range d {
			d[b] = 0
		}
	} else {
		d = make([]float64, r.nbins)
	}
	for i, b := range r.idx {
		if b >= 0 {
			d[b] += values[i]
		}
	}
	//an empty bin divides 0 by 0, which is the NaN the caller expects
	floats.Div(d, r.fcounts)
	return d
}
