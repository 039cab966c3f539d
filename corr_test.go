/*
 * corr_test.go, part of godsf
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
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// testSource is a deterministic in-memory WindowSource.
type testSource struct {
	info *SourceInfo
	wins []*Window
	pos  int
}

func (s *testSource) Readable() bool    { return true }
func (s *testSource) Info() *SourceInfo { return s.info }

func (s *testSource) Next() (*Window, error) {
	if s.pos >= len(s.wins) {
		return nil, NewLastWindowError("testSource.Next")
	}
	w := s.wins[s.pos]
	s.pos++
	return w, nil
}

// testInfo describes a 2-type system (2 "Na", 1 "Cl") sampled at 5
// k-points whose distances match the axis-aligned k-vectors.
func testInfo(hasCurrents, hasSelf bool) *SourceInfo {
	return &SourceInfo{
		KPoints: mat.NewDense(5, 3, []float64{
			0.5, 0, 0,
			0, 0.5, 0,
			1.5, 0, 0,
			0, 1.5, 0,
			2.5, 0, 0,
		}),
		KDistances:  []float64{0.5, 0.5, 1.5, 1.5, 2.5},
		KMax:        2.5,
		NK:          5,
		NTc:         5,
		DeltaT:      1.0,
		Volume:      10.0,
		Types:       []string{"Na", "Cl"},
		Counts:      []int{2, 1},
		HasCurrents: hasCurrents,
		HasSelf:     hasSelf,
	}
}

// testFrame builds a deterministic frame: every amplitude sits on the unit
// circle at a phase that depends on the frame index, type and k-point.
func testFrame(info *SourceInfo, index, start int) *Frame {
	f := &Frame{Index: index, Time: float64(index) * info.DeltaT}
	nt := info.NTypes()
	phase := func(m, k int, shift float64) complex128 {
		ph := 0.07*float64(index)*float64(k+1) + 0.3*float64(m) + shift
		return complex(math.Cos(ph), math.Sin(ph))
	}
	f.RhoK = make([][]complex128, nt)
	for m := 0; m < nt; m++ {
		f.RhoK[m] = make([]complex128, info.NK)
		for k := range f.RhoK[m] {
			f.RhoK[m][k] = phase(m, k, 0)
		}
	}
	if info.HasCurrents {
		f.JzK = make([][]complex128, nt)
		f.JperK = make([][2][]complex128, nt)
		for m := 0; m < nt; m++ {
			f.JzK[m] = make([]complex128, info.NK)
			f.JperK[m][0] = make([]complex128, info.NK)
			f.JperK[m][1] = make([]complex128, info.NK)
			for k := 0; k < info.NK; k++ {
				f.JzK[m][k] = phase(m, k, 1.1)
				f.JperK[m][0][k] = phase(m, k, 2.2)
				f.JperK[m][1][k] = phase(m, k, 3.3)
			}
		}
	}
	if info.HasSelf {
		ntot := 0
		for _, c := range info.Counts {
			ntot += c
		}
		xs := mat.NewDense(ntot, 3, nil)
		lag := index - start
		for j := 0; j < ntot; j++ {
			xs.Set(j, 0, 0.02*float64(lag)*float64(j+1))
			xs.Set(j, 1, 0.01*float64(lag))
		}
		f.Xs = xs
	}
	return f
}

func testWindows(info *SourceInfo, nwin int) []*Window {
	wins := make([]*Window, nwin)
	for w := 0; w < nwin; w++ {
		frames := make([]*Frame, info.NTc)
		for i := range frames {
			frames[i] = testFrame(info, w+i, w)
		}
		wins[w] = &Window{Frames: frames}
	}
	return wins
}

// Hand-checked single-particle case.
func TestCorrelateByHand(Te *testing.T) {
	info := &SourceInfo{
		KPoints:    mat.NewDense(1, 3, []float64{1, 0, 0}),
		KDistances: []float64{1},
		KMax:       1,
		NK:         1,
		NTc:        2,
		DeltaT:     1,
		Volume:     1,
		Types:      []string{"X"},
		Counts:     []int{1},
		HasSelf:    true,
	}
	f0 := &Frame{Index: 0, RhoK: [][]complex128{{2 + 1i}}, Xs: mat.NewDense(1, 3, nil)}
	f1 := &Frame{Index: 1, RhoK: [][]complex128{{1 - 1i}}, Xs: mat.NewDense(1, 3, []float64{0.25, 0, 0})}
	src := &testSource{info: info, wins: []*Window{{Frames: []*Frame{f0, f1}}}}
	acc := NewAccumulators(info)
	n, err := Correlate(src, acc, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if n != 1 {
		Te.Fatalf("got %d windows, want 1", n)
	}
	//lag 0: Re[(2+i)(2-i)] = 5. lag 1: Re[(2+i)(1+i)] = 1.
	if got := acc.F[0].Mean(0)[0]; math.Abs(got-5) > 1e-14 {
		Te.Errorf("static density correlation: got %v, want 5", got)
	}
	if got := acc.F[0].Mean(1)[0]; math.Abs(got-1) > 1e-14 {
		Te.Errorf("lag-1 density correlation: got %v, want 1", got)
	}
	//self at lag 1: cos(kx*dx) = cos(0.25).
	if got := acc.Fs[0].Mean(1)[0]; math.Abs(got-math.Cos(0.25)) > 1e-14 {
		Te.Errorf("lag-1 self correlation: got %v, want %v", got, math.Cos(0.25))
	}
	if got := acc.Fs[0].Mean(0)[0]; math.Abs(got-1) > 1e-14 {
		Te.Errorf("static self correlation: got %v, want 1", got)
	}
}

// The means must not depend on the worker pool size: slots are written by
// one unit at a time and window contributions arrive in window order
// either way.
func TestCorrelateWorkerEquivalence(Te *testing.T) {
	info := testInfo(true, true)
	acc1 := NewAccumulators(info)
	if _, err := Correlate(&testSource{info: info, wins: testWindows(info, 4)}, acc1, 1); err != nil {
		Te.Fatal(err)
	}
	accN := NewAccumulators(info)
	if _, err := Correlate(&testSource{info: info, wins: testWindows(info, 4)}, accN, 8); err != nil {
		Te.Fatal(err)
	}
	check := func(what string, a, b []*SlotAverager) {
		for m := range a {
			for t := 0; t < info.NTc; t++ {
				if !floats.Equal(a[m].Mean(t), b[m].Mean(t)) {
					Te.Errorf("%s %d, lag %d: serial and parallel means differ", what, m, t)
				}
			}
		}
	}
	check("pair", acc1.F, accN.F)
	check("Cl pair", acc1.Cl, accN.Cl)
	check("Ct pair", acc1.Ct, accN.Ct)
	check("self type", acc1.Fs, accN.Fs)
}

func TestCorrelateBadInput(Te *testing.T) {
	info := testInfo(false, false)
	//NaN amplitude
	wins := testWindows(info, 1)
	wins[0].Frames[2].RhoK[0][1] = complex(math.NaN(), 0)
	if _, err := Correlate(&testSource{info: info, wins: wins}, NewAccumulators(info), 4); err == nil {
		Te.Errorf("a NaN amplitude should abort the run")
	}
	//short amplitude array
	wins = testWindows(info, 1)
	wins[0].Frames[1].RhoK[1] = wins[0].Frames[1].RhoK[1][:3]
	if _, err := Correlate(&testSource{info: info, wins: wins}, NewAccumulators(info), 4); err == nil {
		Te.Errorf("a shape mismatch should abort the run")
	}
	//short window
	wins = testWindows(info, 1)
	wins[0].Frames = wins[0].Frames[:4]
	if _, err := Correlate(&testSource{info: info, wins: wins}, NewAccumulators(info), 4); err == nil {
		Te.Errorf("a short window should abort the run")
	}
}
