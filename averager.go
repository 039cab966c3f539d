/*
 * averager.go, part of godsf
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

	"gonum.org/v1/gonum/floats"
)

// SlotAverager keeps a running mean of fixed-shape arrays over a fixed
// number of slots. Each slot holds its own running sum and sample count;
// the mean of a slot is sum/count.
//
// There is no concurrency protection here: concurrent Add calls are fine
// only as long as they target disjoint slots. That partitioning is the
// caller's job (see the lag dispatch in corr.go).
type SlotAverager struct {
	size   int //values per slot
	sums   [][]float64
	counts []int
}

// NewSlotAverager returns an averager with nslots slots of size values
// each, all zeroed.
func NewSlotAverager(nslots, size int) *SlotAverager {
	if nslots < 1 || size < 1 {
		panic(fmt.Sprintf("godsf.NewSlotAverager: need at least 1 slot and 1 value per slot, got %d, %d", nslots, size))
	}
	a := &SlotAverager{size: size}
	a.sums = make([][]float64, nslots)
	for i := range a.sums {
		a.sums[i] = make([]float64, size)
	}
	a.counts = make([]int, nslots)
	return a
}

// NSlots returns the number of slots.
func (a *SlotAverager) NSlots() int {
	return len(a.sums)
}

// Size returns the number of values per slot.
func (a *SlotAverager) Size() int {
	return a.size
}

// Count returns the number of samples added to the given slot.
func (a *SlotAverager) Count(slot int) int {
	return a.counts[slot]
}

// Add adds value element-wise to the slot's running sum and increments its
// sample count. It panics on a shape mismatch or a slot out of range, as
// either is a logic error in the caller, never a data condition.
func (a *SlotAverager) Add(value []float64, slot int) {
	if slot < 0 || slot >= len(a.sums) {
		panic(fmt.Sprintf("godsf.SlotAverager.Add: slot %d out of range (%d slots)", slot, len(a.sums)))
	}
	if len(value) != a.size {
		panic(fmt.Sprintf("godsf.SlotAverager.Add: value has %d elements, slots hold %d", len(value), a.size))
	}
	floats.Add(a.sums[slot], value)
	a.counts[slot]++
}

// Mean returns sum/count for the given slot. If dest is given and large
// enough it is used to store the result. Mean panics on a slot that never
// received a sample: reading it means the slot partitioning is broken.
func (a *SlotAverager) Mean(slot int, dest ...[]float64) []float64 {
	if a.counts[slot] == 0 {
		panic(fmt.Sprintf("godsf.SlotAverager.Mean: slot %d has no samples", slot))
	}
	d := getCopySlice(a.size, dest...)
	return floats.ScaleTo(d, 1/float64(a.counts[slot]), a.sums[slot])
}

// Means returns the per-slot mean for every slot, in slot order.
func (a *SlotAverager) Means() [][]float64 {
	ret := make([][]float64, len(a.sums))
	for i := range a.sums {
		ret[i] = a.Mean(i)
	}
	return ret
}

// getCopySlice returns dest[0] trimmed to N elements if one was given and
// is large enough, or a fresh slice otherwise.
func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0][:N]
	} else {
		d = make([]float64, N)
	}
	return d
}
