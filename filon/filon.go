/*
 * filon.go, part of godsf
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

//Package filon integrates oscillatory integrands of the form
//f(x)·cos(wx) or f(x)·sin(wx) over uniformly sampled f, using Filon's
//method: the oscillatory kernel is integrated exactly against a piecewise
//quadratic interpolant of f over successive panel pairs. A plain
//trapezoid or Simpson rule on the product accumulates large error once
//the oscillation gets fast relative to the sample spacing; Filon's
//weights stay accurate there, which is the whole reason this package
//exists instead of a call into a generic quadrature.
package filon

import "math"

// weights returns the Filon weights for the panel phase theta = w*dx.
// For small theta the closed forms lose all their leading digits to
// cancellation, so a Taylor expansion takes over; at theta = 0 the rule
// degenerates to composite Simpson (alpha=0, beta=2/3, gamma=4/3).
func weights(theta float64) (alpha, beta, gamma float64) {
	t := theta
	if math.Abs(t) < 1.0/16 {
		t2 := t * t
		alpha = t * t2 * (2.0/45 + t2*(-2.0/315+t2*(2.0/4725)))
		beta = 2.0/3 + t2*(2.0/15+t2*(-4.0/105+t2*(2.0/567)))
		gamma = 4.0/3 + t2*(-2.0/15+t2*(1.0/210-t2*(1.0/11340)))
		return alpha, beta, gamma
	}
	sin := math.Sin(t)
	cos := math.Cos(t)
	t3 := t * t * t
	alpha = (t*t + t*sin*cos - 2*sin*sin) / t3
	beta = 2 * (t*(1+cos*cos) - 2*sin*cos) / t3
	gamma = 4 * (sin - t*cos) / t3
	return alpha, beta, gamma
}

// checkSamples panics unless the sample count pairs panels up evenly.
// Callers are expected to have forced an odd length; an even one here is
// a logic error upstream, not a data condition.
func checkSamples(n int, dx float64) {
	if n < 3 || n%2 == 0 {
		panic("filon: need an odd number of samples, at least 3")
	}
	if dx <= 0 {
		panic("filon: non-positive sample spacing")
	}
}

// CosIntegral computes the integral of f(x)·cos(wx) over the sampled
// range. f holds uniform samples starting at x0 with spacing dx; the
// sample count must be odd and at least 3, or CosIntegral panics.
func CosIntegral(f []float64, x0, dx, w float64) float64 {
	n := len(f)
	checkSamples(n, dx)
	alpha, beta, gamma := weights(w * dx)
	var ce, co float64
	for i := 0; i < n; i++ {
		c := f[i] * math.Cos(w*(x0+float64(i)*dx))
		if i%2 == 0 {
			ce += c
		} else {
			co += c
		}
	}
	xn := x0 + float64(n-1)*dx
	ce -= 0.5 * (f[0]*math.Cos(w*x0) + f[n-1]*math.Cos(w*xn))
	return dx * (alpha*(f[n-1]*math.Sin(w*xn)-f[0]*math.Sin(w*x0)) + beta*ce + gamma*co)
}

// SinIntegral computes the integral of f(x)·sin(wx) over the sampled
// range, under the same sampling contract as CosIntegral.
func SinIntegral(f []float64, x0, dx, w float64) float64 {
	n := len(f)
	checkSamples(n, dx)
	alpha, beta, gamma := weights(w * dx)
	var se, so float64
	for i := 0; i < n; i++ {
		s := f[i] * math.Sin(w*(x0+float64(i)*dx))
		if i%2 == 0 {
			se += s
		} else {
			so += s
		}
	}
	xn := x0 + float64(n-1)*dx
	se -= 0.5 * (f[0]*math.Sin(w*x0) + f[n-1]*math.Sin(w*xn))
	return dx * (-alpha*(f[n-1]*math.Cos(w*xn)-f[0]*math.Cos(w*x0)) + beta*se + gamma*so)
}
