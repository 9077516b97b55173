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

package mife

import (
	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/ggh"
	"github.com/fentec-project/gomife/internal"
	"github.com/pkg/errors"
)

// MBP describes a family of functions as a matrix branching program.
//
// The matrices of input position i occupy the contiguous range
// [start, end) of the chain returned by Order, with end - start equal
// to Param. The ranges of all the positions tile the whole chain.
type MBP interface {
	// Param returns the number of matrices input position i
	// contributes to the chain.
	Param(pp *PublicParams, i int) int
	// Kilian returns the dimensions of the Kilian masks, one for
	// every boundary between two consecutive chain matrices.
	Kilian(pp *PublicParams) []int
	// Order returns the chain range [start, end) of input position i.
	Order(pp *PublicParams, i int) (start, end int)
	// Set derives the cleartext matrices of every input position
	// from the message and its partitions.
	Set(pp *PublicParams, msg *data.F2Matrix, parts Partitions) (*CleartextMatrixSet, error)
	// Parse validates a raw message and splits its bits among the
	// matrices. It reports false for a malformed message.
	Parse(pp *PublicParams, raw *data.F2Matrix) (Partitions, bool)
}

// Partitions holds, for every input position and every local matrix
// of that position, the indices of the message bits consumed by the
// matrix.
type Partitions [][][]int

// CleartextMatrixSet holds, for every input position, the integer
// matrices derived from a message before masking and encoding.
type CleartextMatrixSet struct {
	Matrices [][]data.Matrix
}

// Clear zeroes all the matrices of c.
func (c *CleartextMatrixSet) Clear() {
	for _, mats := range c.Matrices {
		for _, m := range mats {
			for _, row := range m {
				row.Clear()
			}
		}
	}
	c.Matrices = nil
}

// EncMatrix is a matrix of encodings.
type EncMatrix [][]*ggh.Encoding

// Rows returns the number of rows of m.
func (m EncMatrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns of m.
func (m EncMatrix) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}

	return 0
}

// mulEncMatrix multiplies matrices of encodings a and b.
func mulEncMatrix(pk *ggh.PublicKey, a, b EncMatrix) (EncMatrix, error) {
	if a.Cols() != b.Rows() || a.Cols() == 0 {
		return nil, errors.Wrap(internal.ErrMalformedCipher, "matrix dimensions do not match")
	}

	prod := make(EncMatrix, a.Rows())
	term := pk.NewEncoding()
	for i := range prod {
		prod[i] = make([]*ggh.Encoding, b.Cols())
		for j := range prod[i] {
			var acc *ggh.Encoding
			for k := 0; k < a.Cols(); k++ {
				if err := pk.Mul(term, a[i][k], b[k][j]); err != nil {
					return nil, err
				}
				if acc == nil {
					acc = term.Copy()
					continue
				}
				if err := pk.Add(acc, acc, term); err != nil {
					return nil, err
				}
			}
			prod[i][j] = acc
		}
	}

	return prod, nil
}

// Ciphertext holds, for every input position, the encoded matrices
// of the message placed at that position.
type Ciphertext struct {
	Matrices [][]EncMatrix
}
