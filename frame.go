/*
 * frame.go, part of godsf
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

// Frame is one trajectory snapshot after projection onto the sampled
// k-points. It is produced by a WindowSource and read-only for this library.
type Frame struct {
	Index int     //frame index in the trajectory
	Time  float64 //simulation time
	//RhoK holds, for each particle type, the complex density amplitude at
	//each sampled k-point.
	RhoK [][]complex128
	//JzK and JperK hold the longitudinal and the two transverse current
	//amplitudes per type. They are nil unless the source has velocity data.
	JzK   [][]complex128
	JperK [][2][]complex128
	//Xs holds per-particle displacements since the first frame of the
	//window, one row per particle, grouped by type in SourceInfo.Counts
	//order. It is nil unless self correlations were requested.
	Xs *mat.Dense
}

// Window is an ordered, fixed-length run of frames. The reference frame is
// always Frames[0]; every lag correlates it against a later frame.
type Window struct {
	Frames []*Frame
}

// Len returns the number of frames in the window.
func (w *Window) Len() int {
	return len(w.Frames)
}

// Ref returns the window's reference frame.
func (w *Window) Ref() *Frame {
	return w.Frames[0]
}

// SourceInfo is the one-time setup information a WindowSource exposes
// before the first window is read. All slices are read-only for the run.
type SourceInfo struct {
	KPoints    *mat.Dense //NK x 3 sampled k-vectors
	KDistances []float64  //|k| per sampled point
	KMax       float64    //largest |k|
	NK         int        //number of sampled k-points
	NTc        int        //window length, in frames
	DeltaT     float64    //time between consecutive frames in a window
	Volume     float64    //simulation box volume; zero disables the van Hove transform
	Types      []string   //particle type names
	Counts     []int      //particles per type, same order as Types
	//HasCurrents and HasSelf are decided once, at setup. When true, every
	//frame carries JzK/JperK, or Xs, respectively.
	HasCurrents bool
	HasSelf     bool
}

// NTypes returns the number of particle types.
func (s *SourceInfo) NTypes() int {
	return len(s.Types)
}

// Check verifies the internal consistency of the setup information.
func (s *SourceInfo) Check() error {
	if s.NK <= 0 || len(s.KDistances) != s.NK {
		return NewError(fmt.Sprintf("%d k-point distances given, but %d k-points declared", len(s.KDistances), s.NK), "SourceInfo.Check")
	}
	if s.NTc < 1 {
		return NewError(fmt.Sprintf("window length %d, need at least 1", s.NTc), "SourceInfo.Check")
	}
	if s.DeltaT <= 0 {
		return NewError(fmt.Sprintf("non-positive frame spacing %v", s.DeltaT), "SourceInfo.Check")
	}
	if len(s.Types) == 0 || len(s.Counts) != len(s.Types) {
		return NewError(fmt.Sprintf("%d type names but %d type counts", len(s.Types), len(s.Counts)), "SourceInfo.Check")
	}
	if s.HasSelf {
		if s.KPoints == nil {
			return NewError("self correlation requested but no k-vectors given", "SourceInfo.Check")
		}
		if r, c := s.KPoints.Dims(); r != s.NK || c != 3 {
			return NewError(fmt.Sprintf("k-vectors are %dx%d, want %dx3", r, c, s.NK), "SourceInfo.Check")
		}
	}
	return nil
}

// checkFrame verifies that a frame's arrays match the setup shapes.
// A mismatch here is fatal for the whole run.
func (s *SourceInfo) checkFrame(f *Frame) error {
	nt := s.NTypes()
	if len(f.RhoK) != nt {
		return NewError(fmt.Sprintf("frame %d has %d density amplitude sets, want %d", f.Index, len(f.RhoK), nt), "checkFrame")
	}
	for m, r := range f.RhoK {
		if len(r) != s.NK {
			return NewError(fmt.Sprintf("frame %d, type %d: %d density amplitudes, want %d", f.Index, m, len(r), s.NK), "checkFrame")
		}
	}
	if s.HasCurrents {
		if len(f.JzK) != nt || len(f.JperK) != nt {
			return NewError(fmt.Sprintf("frame %d lacks current amplitudes for all %d types", f.Index, nt), "checkFrame")
		}
		for m := 0; m < nt; m++ {
			if len(f.JzK[m]) != s.NK || len(f.JperK[m][0]) != s.NK || len(f.JperK[m][1]) != s.NK {
				return NewError(fmt.Sprintf("frame %d, type %d: current amplitude length mismatch", f.Index, m), "checkFrame")
			}
		}
	}
	if s.HasSelf {
		if f.Xs == nil {
			return NewError(fmt.Sprintf("frame %d lacks displacements", f.Index), "checkFrame")
		}
		ntot := 0
		for _, c := range s.Counts {
			ntot += c
		}
		if r, c := f.Xs.Dims(); r != ntot || c != 3 {
			return NewError(fmt.Sprintf("frame %d displacements are %dx%d, want %dx3", f.Index, r, c, ntot), "checkFrame")
		}
	}
	return nil
}

// WindowSource is the interface to the (external) producer of frame
// windows. The sequence is lazy, finite and not restartable: Next returns
// the windows strictly in order and a LastWindowError after the final one.
type WindowSource interface {

	//Is the source ready to be read?
	Readable() bool

	//Info returns the setup information. It must be callable before the
	//first Next and keep returning the same data for the whole run.
	Info() *SourceInfo

	//Next returns the next window, or nil and a LastWindowError when the
	//sequence is exhausted. Any other error is fatal.
	Next() (*Window, error)
}

// OddWindowLength returns the window length a source should use so the
// time series can be cosine-transformed: the requested length, adjusted
// upward by one if even.
func OddWindowLength(n int) int {
	if n%2 == 0 {
		return n + 1
	}
	return n
}
