/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mbp

import (
	"math/big"

	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/internal"
	"github.com/fentec-project/gomife/mife"
)

// Compare is the two-input family comparing messages of Bits bits,
// read as unsigned integers with the most significant bit first.
// The output index is 0 if x = y, 1 if x < y and 2 if x > y, where x
// is the message at input position 0 and y the one at position 1.
//
// Position 0 contributes one matrix per bit, which together map the
// initial state to the one-hot row of x of length 2^Bits. Position 1
// contributes a single 2^Bits x 3 matrix selecting the comparison of
// every u with y.
type Compare struct {
	Bits int
}

// NewCompare returns the comparison of messages of the given length.
func NewCompare(bits int) *Compare {
	return &Compare{Bits: bits}
}

// Param returns Bits for position 0 and 1 for position 1.
func (f *Compare) Param(pp *mife.PublicParams, i int) int {
	if i == 0 {
		return f.Bits
	}

	return 1
}

// Kilian returns the dimensions 2, 4, ..., 2^Bits.
func (f *Compare) Kilian(pp *mife.PublicParams) []int {
	dims := make([]int, f.Bits)
	for j := range dims {
		dims[j] = 1 << uint(j+1)
	}

	return dims
}

// Order puts the matrices of position 0 first.
func (f *Compare) Order(pp *mife.PublicParams, i int) (int, int) {
	if i == 0 {
		return 0, f.Bits
	}

	return f.Bits, f.Bits + 1
}

// Parse assigns bit j to the j-th matrix of position 0 and all the
// bits to the matrix of position 1.
func (f *Compare) Parse(pp *mife.PublicParams, raw *data.F2Matrix) (mife.Partitions, bool) {
	if f.Bits < 1 || !validMessage(raw, f.Bits) {
		return nil, false
	}

	all := make([]int, f.Bits)
	first := make([][]int, f.Bits)
	for j := range first {
		first[j] = []int{j}
		all[j] = j
	}

	return mife.Partitions{first, {all}}, true
}

// Set builds the prefix expansion matrices of position 0 and the
// comparison table of position 1.
func (f *Compare) Set(pp *mife.PublicParams, msg *data.F2Matrix, parts mife.Partitions) (*mife.CleartextMatrixSet, error) {
	if len(parts) != 2 || len(parts[0]) != f.Bits || len(parts[1]) != 1 {
		return nil, internal.ErrMalformedInput
	}

	expand := make([]data.Matrix, f.Bits)
	for j, bits := range parts[0] {
		b := 0
		if msg.Get(0, bits[0]) {
			b = 1
		}
		rows := 1 << uint(j)
		m := data.NewConstantMatrix(rows, 2*rows, big.NewInt(0))
		for u := 0; u < rows; u++ {
			m[u][2*u+b].SetInt64(1)
		}
		expand[j] = m
	}

	y := 0
	for _, k := range parts[1][0] {
		y <<= 1
		if msg.Get(0, k) {
			y |= 1
		}
	}
	size := 1 << uint(f.Bits)
	table := data.NewConstantMatrix(size, 3, big.NewInt(0))
	for u := 0; u < size; u++ {
		switch {
		case u == y:
			table[u][0].SetInt64(1)
		case u < y:
			table[u][1].SetInt64(1)
		default:
			table[u][2].SetInt64(1)
		}
	}

	return &mife.CleartextMatrixSet{
		Matrices: [][]data.Matrix{expand, {table}},
	}, nil
}
