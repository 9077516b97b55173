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

package data

import (
	"fmt"
	"math/big"

	"github.com/fentec-project/gomife/sample"
)

// Matrix wraps a slice of Vector elements. It represents a row-major
// order matrix.
//
// The j-th element from the i-th vector of the matrix can be obtained
// as m[i][j].
type Matrix []Vector

// NewMatrix accepts a slice of Vector elements and
// returns a new Matrix instance.
// It returns error if not all the vectors have the same number of elements.
func NewMatrix(vectors []Vector) (Matrix, error) {
	l := -1
	newVectors := make([]Vector, len(vectors))

	if len(vectors) > 0 {
		l = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != l {
			return nil, fmt.Errorf("all vectors should be of the same length")
		}
		newVectors[i] = NewVector(v)
	}

	return Matrix(newVectors), nil
}

// NewConstantMatrix returns a new Matrix instance
// with all elements set to constant c.
func NewConstantMatrix(rows, cols int, c *big.Int) Matrix {
	mat := make([]Vector, rows)
	for i := 0; i < rows; i++ {
		mat[i] = NewConstantVector(cols, c)
	}

	return mat
}

// NewIdentityMatrix returns the dim x dim identity matrix.
func NewIdentityMatrix(dim int) Matrix {
	mat := NewConstantMatrix(dim, dim, big.NewInt(0))
	for i := 0; i < dim; i++ {
		mat[i][i].SetInt64(1)
	}

	return mat
}

// NewRandomUnimodular returns a random dim x dim integer matrix
// with determinant 1 together with its exact inverse over Z.
// The matrix is a product L*U of a unit lower triangular and a
// unit upper triangular matrix whose off-diagonal elements are
// sampled by the provided sample.Sampler.
func NewRandomUnimodular(dim int, sampler sample.Sampler) (Matrix, Matrix, error) {
	l := NewIdentityMatrix(dim)
	u := NewIdentityMatrix(dim)
	var err error
	for i := 0; i < dim; i++ {
		for j := 0; j < i; j++ {
			if l[i][j], err = sampler.Sample(); err != nil {
				return nil, nil, err
			}
			if u[j][i], err = sampler.Sample(); err != nil {
				return nil, nil, err
			}
		}
	}

	lInv := l.invertUnitLower()
	uInv := u.Transpose().invertUnitLower().Transpose()

	k, err := l.Mul(u)
	if err != nil {
		return nil, nil, err
	}
	kInv, err := uInv.Mul(lInv)
	if err != nil {
		return nil, nil, err
	}

	return k, kInv, nil
}

// invertUnitLower inverts a unit lower triangular matrix
// by forward substitution.
func (m Matrix) invertUnitLower() Matrix {
	dim := m.Rows()
	inv := NewIdentityMatrix(dim)
	prod := new(big.Int)
	for i := 0; i < dim; i++ {
		for j := 0; j < i; j++ {
			// inv[i][j] = -sum_{k=j}^{i-1} m[i][k]*inv[k][j]
			for k := j; k < i; k++ {
				prod.Mul(m[i][k], inv[k][j])
				inv[i][j].Sub(inv[i][j], prod)
			}
		}
	}

	return inv
}

// Rows returns the number of rows of matrix m.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns of matrix m.
func (m Matrix) Cols() int {
	if len(m) != 0 {
		return len(m[0])
	}

	return 0
}

// DimsMatch returns a bool indicating whether matrices
// m and other have the same dimensions.
func (m Matrix) DimsMatch(other Matrix) bool {
	return m.Rows() == other.Rows() && m.Cols() == other.Cols()
}

// GetCol returns i-th column of matrix m as a vector.
// It returns error if i >= the number of m's columns.
func (m Matrix) GetCol(i int) (Vector, error) {
	if i >= m.Cols() {
		return nil, fmt.Errorf("column index exceeds matrix dimensions")
	}

	column := make([]*big.Int, m.Rows())
	for j := 0; j < m.Rows(); j++ {
		column[j] = m[j][i]
	}

	return NewVector(column), nil
}

// Transpose transposes matrix m and returns
// the result in a new Matrix.
func (m Matrix) Transpose() Matrix {
	transposed := make([]Vector, m.Cols())
	for i := 0; i < m.Cols(); i++ {
		transposed[i], _ = m.GetCol(i)
	}

	mT, _ := NewMatrix(transposed)

	return mT
}

// Equal reports whether matrices m and other have the same
// dimensions and the same elements.
func (m Matrix) Equal(other Matrix) bool {
	if !m.DimsMatch(other) {
		return false
	}
	for i, v := range m {
		if !v.Equal(other[i]) {
			return false
		}
	}

	return true
}

// MaxBitLen returns the largest bit length of the absolute
// values of the elements of m.
func (m Matrix) MaxBitLen() int {
	max := 0
	for _, v := range m {
		for _, c := range v {
			if l := c.BitLen(); l > max {
				max = l
			}
		}
	}

	return max
}

// Mul multiplies matrices m and other.
// The result is returned in a new Matrix.
// Error is returned if m and other have different dimensions.
func (m Matrix) Mul(other Matrix) (Matrix, error) {
	if m.Cols() != other.Rows() {
		return nil, fmt.Errorf("cannot multiply matrices")
	}

	prod := make([]Vector, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		prod[i] = make([]*big.Int, other.Cols())
		for j := 0; j < other.Cols(); j++ {
			otherCol, _ := other.GetCol(j)
			prod[i][j], _ = m[i].Dot(otherCol)
		}
	}

	return NewMatrix(prod)
}

// String produces a string representation of a matrix,
// one row per line.
func (m Matrix) String() string {
	mStr := ""
	for _, v := range m {
		mStr = mStr + v.String() + "\n"
	}
	return mStr
}
