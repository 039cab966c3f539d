/*
 * spectra.go, part of godsf
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

import "math"

// Frequencies returns the one-sided frequency axis of a cosine transform
// of n uniform time samples with spacing dt: w_i = 2πi/(n·dt) for
// i = 0..(n-1)/2.
func Frequencies(n int, dt float64) []float64 {
	w := make([]float64, (n-1)/2+1)
	for i := range w {
		w[i] = 2 * math.Pi * float64(i) / (float64(n) * dt)
	}
	return w
}

// FourierCos cosine-transforms a uniformly time-sampled correlation
// series into its one-sided frequency spectrum,
//
//	S(w) = ∫ f(t)·cos(wt) dt,
//
// evaluated at the frequencies returned by Frequencies(len(f), dt).
// len(f) must be odd and at least 3.
func FourierCos(f []float64, dt float64) (w, s []float64) {
	w = Frequencies(len(f), dt)
	s = make([]float64, len(w))
	for i, wi := range w {
		s[i] = CosIntegral(f, 0, dt, wi)
	}
	return w, s
}

// VanHove sine-integral-transforms a k series into the real-space pair
// correlation
//
//	G(r) = 1 + [1/(2π²·rho·r)]·∫ k·(F(k)−1)·sin(kr) dk,
//
// at each r given. fk holds F(k) on the uniform grid k_i = k0 + i·dk,
// with an odd sample count; rho is the number density of the second
// particle type of the pair. For a structureless F(k) ≡ 1, G(r) ≡ 1.
func VanHove(fk []float64, k0, dk, rho float64, r []float64) []float64 {
	g := make([]float64, len(fk))
	for i := range fk {
		g[i] = (k0 + float64(i)*dk) * (fk[i] - 1)
	}
	pref := 1 / (2 * math.Pi * math.Pi * rho)
	ret := make([]float64, len(r))
	for i, ri := range r {
		ret[i] = 1 + pref*SinIntegral(g, k0, dk, ri)/ri
	}
	return ret
}

// RGrid returns the real-space axis matching a k-space sampling that
// extends to kmax: spacing π/kmax, starting one spacing above zero (the
// r=0 point is excluded, the transform diverges there), n points.
func RGrid(kmax float64, n int) []float64 {
	dr := math.Pi / kmax
	r := make([]float64, n)
	for i := range r {
		r[i] = float64(i+1) * dr
	}
	return r
}
