/*
 * result.go, part of godsf
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

	"gonum.org/v1/gonum/mat"
)

// Array is one named numeric array of the output hand-off. What gets done
// with these (files, plots, pipes) is the consumer's business; this
// library only promises stable names and row-major data.
type Array struct {
	Name string
	Desc string
	Rows int
	Cols int //1 for plain vectors
	Data []float64
}

// Arrays returns every array the run produced, axes first, flat and
// tagged with stable names: axes are "k", "k_count", "t", and, when
// present, "w" and "r"; correlations are e.g. "F_0_1" for F(k,t) of pair
// 0-1, "Sk_0_1" for its static (t=0) slice, "Skw_0_1" for its spectrum,
// "Gr_0_1" for its van Hove transform, and "Fs_0", "Fsw_0", "Grs_0" for
// the self (per-type) counterparts.
func (res *Result) Arrays() []Array {
	ret := make([]Array, 0, 8)
	ret = append(ret, vecArray("k", "k-bin centers", res.K))
	kc := make([]float64, len(res.KCounts))
	for i, c := range res.KCounts {
		kc[i] = float64(c)
	}
	ret = append(ret, vecArray("k_count", "k-points per bin", kc))
	ret = append(ret, vecArray("t", "time axis", res.Times))
	if res.HasSpectra {
		ret = append(ret, vecArray("w", "angular frequency axis", res.Omega))
	}
	if res.HasVanHove {
		ret = append(ret, vecArray("r", "real-space axis", res.R))
	}
	types := res.Info.Types
	for m, p := range res.Pairs {
		lbl := p.Label(types)
		ret = append(ret, matArray("F_"+p.Name(), "F(k,t), pair "+lbl, res.F[m]))
		ret = append(ret, vecArray("Sk_"+p.Name(), "static structure factor S(k), pair "+lbl, mat.Col(nil, 0, res.F[m])))
		if res.Info.HasCurrents {
			ret = append(ret, matArray("Cl_"+p.Name(), "longitudinal current correlation, pair "+lbl, res.Cl[m]))
			ret = append(ret, matArray("Ct_"+p.Name(), "transverse current correlation, pair "+lbl, res.Ct[m]))
		}
		if res.HasSpectra {
			ret = append(ret, matArray("Skw_"+p.Name(), "S(k,w), pair "+lbl, res.Skw[m]))
			if res.Info.HasCurrents {
				ret = append(ret, matArray("Clw_"+p.Name(), "longitudinal current spectrum, pair "+lbl, res.Clw[m]))
				ret = append(ret, matArray("Ctw_"+p.Name(), "transverse current spectrum, pair "+lbl, res.Ctw[m]))
			}
		}
		if res.HasVanHove {
			ret = append(ret, matArray("Gr_"+p.Name(), "van Hove function G(r,t), pair "+lbl, res.Gr[m]))
		}
	}
	if res.Info.HasSelf {
		for m, t := range types {
			name := fmt.Sprintf("%d", m)
			ret = append(ret, matArray("Fs_"+name, "self intermediate scattering, type "+t, res.Fs[m]))
			if res.HasSpectra {
				ret = append(ret, matArray("Fsw_"+name, "self dynamic structure factor, type "+t, res.Fsw[m]))
			}
			if res.HasVanHove {
				ret = append(ret, matArray("Grs_"+name, "self van Hove function, type "+t, res.Grs[m]))
			}
		}
	}
	return ret
}

func vecArray(name, desc string, v []float64) Array {
	d := make([]float64, len(v))
	copy(d, v)
	return Array{Name: name, Desc: desc, Rows: len(v), Cols: 1, Data: d}
}

func matArray(name, desc string, m *mat.Dense) Array {
	r, c := m.Dims()
	d := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		d = append(d, m.RawRowView(i)...)
	}
	return Array{Name: name, Desc: desc, Rows: r, Cols: c, Data: d}
}
