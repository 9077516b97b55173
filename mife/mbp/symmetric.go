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

// Symmetric is the family of symmetric boolean functions of the bits
// of all the inputs: the value is Table[c], where c is the total
// number of set bits among the Inputs messages of Bits bits each.
//
// The branching program is a counter automaton with C+1 states,
// C = Inputs*Bits. Every input contributes one matrix per block of
// Block bits, shifting the counter by the number of set bits in the
// block. The output is a one-hot row: index 0 for false, 1 for true.
type Symmetric struct {
	Inputs int
	Bits   int
	Block  int
	Table  []bool
}

// NewSymmetric returns the symmetric function with the given table,
// which must have Inputs*Bits+1 entries.
func NewSymmetric(inputs, bits, block int, table []bool) *Symmetric {
	return &Symmetric{
		Inputs: inputs,
		Bits:   bits,
		Block:  block,
		Table:  table,
	}
}

// NewThreshold returns the function that is true iff at least t bits
// of the inputs are set.
func NewThreshold(inputs, bits, block, t int) *Symmetric {
	table := make([]bool, inputs*bits+1)
	for c := range table {
		table[c] = c >= t
	}

	return NewSymmetric(inputs, bits, block, table)
}

// NewAnd returns the conjunction of all the bits of the inputs.
func NewAnd(inputs, bits, block int) *Symmetric {
	return NewThreshold(inputs, bits, block, inputs*bits)
}

// NewOr returns the disjunction of all the bits of the inputs.
func NewOr(inputs, bits, block int) *Symmetric {
	return NewThreshold(inputs, bits, block, 1)
}

// NewParity returns the exclusive or of all the bits of the inputs.
func NewParity(inputs, bits, block int) *Symmetric {
	table := make([]bool, inputs*bits+1)
	for c := range table {
		table[c] = c%2 == 1
	}

	return NewSymmetric(inputs, bits, block, table)
}

func (f *Symmetric) block(pp *mife.PublicParams) int {
	if pp.Flags&mife.FlagSimplePartitions != 0 || f.Block < 1 || f.Block > f.Bits {
		return 1
	}

	return f.Block
}

func (f *Symmetric) states() int {
	return f.Inputs*f.Bits + 1
}

// Param returns the number of blocks of a message.
func (f *Symmetric) Param(pp *mife.PublicParams, i int) int {
	b := f.block(pp)
	return (f.Bits + b - 1) / b
}

// Kilian returns the number of states for every chain boundary.
func (f *Symmetric) Kilian(pp *mife.PublicParams) []int {
	dims := make([]int, f.Inputs*f.Param(pp, 0)-1)
	for s := range dims {
		dims[s] = f.states()
	}

	return dims
}

// Order places the inputs one after another.
func (f *Symmetric) Order(pp *mife.PublicParams, i int) (int, int) {
	n := f.Param(pp, i)
	return i * n, (i + 1) * n
}

// Parse splits a message of Bits bits into consecutive blocks.
func (f *Symmetric) Parse(pp *mife.PublicParams, raw *data.F2Matrix) (mife.Partitions, bool) {
	if !validMessage(raw, f.Bits) || len(f.Table) != f.states() {
		return nil, false
	}

	b := f.block(pp)
	parts := make(mife.Partitions, f.Inputs)
	for i := range parts {
		parts[i] = make([][]int, f.Param(pp, i))
		for j := range parts[i] {
			for k := j * b; k < (j+1)*b && k < f.Bits; k++ {
				parts[i][j] = append(parts[i][j], k)
			}
		}
	}

	return parts, true
}

// Set builds the counter matrices of the message for every input
// position. The first matrix of the chain is reduced to the row of
// the initial state, and the last one is multiplied by the output
// map of the table.
func (f *Symmetric) Set(pp *mife.PublicParams, msg *data.F2Matrix, parts mife.Partitions) (*mife.CleartextMatrixSet, error) {
	if len(parts) != f.Inputs {
		return nil, internal.ErrMalformedInput
	}

	states := f.states()
	last := pp.ChainLength() - 1
	out := data.NewConstantMatrix(states, 2, big.NewInt(0))
	for c, v := range f.Table {
		if v {
			out[c][1].SetInt64(1)
		} else {
			out[c][0].SetInt64(1)
		}
	}

	clr := &mife.CleartextMatrixSet{Matrices: make([][]data.Matrix, f.Inputs)}
	for i := range parts {
		start, _ := f.Order(pp, i)
		clr.Matrices[i] = make([]data.Matrix, len(parts[i]))
		for j, bits := range parts[i] {
			shift := 0
			for _, k := range bits {
				if msg.Get(0, k) {
					shift++
				}
			}

			m := data.NewConstantMatrix(states, states, big.NewInt(0))
			for r := 0; r+shift < states; r++ {
				m[r][r+shift].SetInt64(1)
			}
			s := start + j
			if s == 0 {
				m = m[:1]
			}
			if s == last {
				var err error
				if m, err = m.Mul(out); err != nil {
					return nil, err
				}
			}
			clr.Matrices[i][j] = m
		}
	}

	return clr, nil
}
