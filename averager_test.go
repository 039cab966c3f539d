/*
 * averager_test.go, part of godsf
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
	"sync"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestSlotAveragerMean(Te *testing.T) {
	a := NewSlotAverager(3, 2)
	a.Add([]float64{1, 10}, 0)
	a.Add([]float64{3, 20}, 0)
	a.Add([]float64{5, 30}, 0)
	a.Add([]float64{7, 7}, 2)
	m := a.Mean(0)
	if !floats.EqualApprox(m, []float64{3, 20}, 1e-14) {
		Te.Errorf("slot 0 mean: got %v, want [3 20]", m)
	}
	if !floats.EqualApprox(a.Mean(2), []float64{7, 7}, 1e-14) {
		Te.Errorf("slot 2 mean: got %v, want [7 7]", a.Mean(2))
	}
	if a.Count(0) != 3 || a.Count(1) != 0 || a.Count(2) != 1 {
		Te.Errorf("counts: got %d %d %d, want 3 0 1", a.Count(0), a.Count(1), a.Count(2))
	}
	fmt.Println("slot means", a.Mean(0), a.Mean(2))
}

// Adds committed concurrently through disjoint slots must reconcile to the
// same means as sequential addition.
func TestSlotAveragerDisjointConcurrent(Te *testing.T) {
	const nslots = 8
	const rounds = 50
	seq := NewSlotAverager(nslots, 3)
	con := NewSlotAverager(nslots, 3)
	value := func(round, slot int) []float64 {
		f := float64(round*nslots + slot)
		return []float64{f, f * 0.5, -f}
	}
	for r := 0; r < rounds; r++ {
		for s := 0; s < nslots; s++ {
			seq.Add(value(r, s), s)
		}
	}
	for r := 0; r < rounds; r++ {
		var wg sync.WaitGroup
		for s := 0; s < nslots; s++ {
			wg.Add(1)
			go func(r, s int) {
				defer wg.Done()
				con.Add(value(r, s), s)
			}(r, s)
		}
		wg.Wait()
	}
	for s := 0; s < nslots; s++ {
		if !floats.Equal(seq.Mean(s), con.Mean(s)) {
			Te.Errorf("slot %d: sequential and concurrent means differ: %v vs %v", s, seq.Mean(s), con.Mean(s))
		}
	}
}

func TestSlotAveragerEmptyRead(Te *testing.T) {
	a := NewSlotAverager(2, 1)
	a.Add([]float64{1}, 0)
	defer func() {
		if recover() == nil {
			Te.Errorf("reading an empty slot should panic")
		}
	}()
	a.Mean(1)
}

func TestSlotAveragerShapeMismatch(Te *testing.T) {
	a := NewSlotAverager(2, 3)
	defer func() {
		if recover() == nil {
			Te.Errorf("adding a wrong-shape value should panic")
		}
	}()
	a.Add([]float64{1, 2}, 0)
}

func TestPairList(Te *testing.T) {
	for _, nt := range []int{1, 2, 3, 7} {
		pairs := PairList(nt)
		if len(pairs) != nt*(nt+1)/2 {
			Te.Errorf("%d types: got %d pairs, want %d", nt, len(pairs), nt*(nt+1)/2)
		}
		seen := make(map[Pair]bool)
		for _, p := range pairs {
			if p.I > p.J {
				Te.Errorf("pair %v has I > J", p)
			}
			if seen[p] {
				Te.Errorf("pair %v enumerated twice", p)
			}
			seen[p] = true
		}
	}
	p := Pair{I: 0, J: 1}
	if p.Name() != "0_1" || p.Label([]string{"Na", "Cl"}) != "Na-Cl" {
		Te.Errorf("pair naming: got %s, %s", p.Name(), p.Label([]string{"Na", "Cl"}))
	}
}
