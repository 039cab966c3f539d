/*
 * pairs.go, part of godsf
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

import "fmt"

// Pair is an unordered pair of particle-type indexes, with I <= J.
// It identifies which per-type amplitude arrays get correlated.
type Pair struct {
	I, J int
}

// Name returns a stable identifier for the pair, suitable for tagging
// output arrays, e.g. "0_1".
func (p Pair) Name() string {
	return fmt.Sprintf("%d_%d", p.I, p.J)
}

// Label returns a human-readable identifier using the given type names,
// e.g. "Na-Cl".
func (p Pair) Label(types []string) string {
	return types[p.I] + "-" + types[p.J]
}

// PairList enumerates every unordered pair of ntypes particle types,
// including the i==i pairs, exactly once. The list has
// ntypes*(ntypes+1)/2 entries, ordered by I, then J.
func PairList(ntypes int) []Pair {
	ret := make([]Pair, 0, ntypes*(ntypes+1)/2)
	for i := 0; i < ntypes; i++ {
		for j := i; j < ntypes; j++ {
			ret = append(ret, Pair{I: i, J: j})
		}
	}
	return ret
}
