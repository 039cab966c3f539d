/*
 * doc.go, part of godsf
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

/*
Package dsf computes dynamic structure factors and related time-correlation
spectra from molecular-dynamics trajectory data that has already been
projected onto a set of sampled k-points.

The library takes sliding windows of frames from a WindowSource (the
trajectory decoding and the choice of k-points are somebody else's
problem), accumulates density, current and self correlations over the
window lags on a worker pool, collapses the k axis into radial bins, and
Fourier-transforms the results with Filon quadrature: the time axis into
the dynamic structure factor S(k,w), and the k axis into the real-space
van Hove function G(r,t).

	res, err := dsf.Calculate(source, nil)

gives every correlation the source's data allows, as matrices and as a
flat list of named arrays (see Result.Arrays) ready for whatever output
format the caller favors. The subpackages out and dsfplot provide a
reference serialization and quick-look plots; bin and filon hold the
radial binning and the oscillatory quadrature, usable on their own.
*/
package dsf
