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

// F2Matrix is a matrix over the field with two elements.
// The element in the i-th row and j-th column is stored
// in bits[i*cols+j].
type F2Matrix struct {
	rows, cols int
	bits       []bool
}

// NewF2Matrix returns a new rows x cols F2Matrix with all
// elements set to zero. It reports false if the dimensions
// are negative.
func NewF2Matrix(rows, cols int) (*F2Matrix, bool) {
	if rows < 0 || cols < 0 {
		return nil, false
	}

	return &F2Matrix{
		rows: rows,
		cols: cols,
		bits: make([]bool, rows*cols),
	}, true
}

// Copy returns an independent copy of m. It reports false
// if m was already freed.
func (m *F2Matrix) Copy() (*F2Matrix, bool) {
	if m == nil || m.bits == nil {
		return nil, false
	}
	bits := make([]bool, len(m.bits))
	copy(bits, m.bits)

	return &F2Matrix{rows: m.rows, cols: m.cols, bits: bits}, true
}

// Zero sets all the elements of m to zero.
func (m *F2Matrix) Zero() {
	for i := range m.bits {
		m.bits[i] = false
	}
}

// Free releases the storage of m. A freed matrix has no rows
// and no columns.
func (m *F2Matrix) Free() {
	m.rows, m.cols, m.bits = 0, 0, nil
}

// Rows returns the number of rows of m.
func (m *F2Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns of m.
func (m *F2Matrix) Cols() int {
	return m.cols
}

// Get returns the element in the i-th row and j-th column.
func (m *F2Matrix) Get(i, j int) bool {
	return m.bits[i*m.cols+j]
}

// Set sets the element in the i-th row and j-th column to b.
func (m *F2Matrix) Set(i, j int, b bool) {
	m.bits[i*m.cols+j] = b
}

// Equal reports whether m and other have the same dimensions
// and the same elements.
func (m *F2Matrix) Equal(other *F2Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, b := range m.bits {
		if b != other.bits[i] {
			return false
		}
	}

	return true
}

// String produces a string representation of m, one row per
// line.
func (m *F2Matrix) String() string {
	s := make([]byte, 0, m.rows*(m.cols+1))
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if m.Get(i, j) {
				s = append(s, '1')
			} else {
				s = append(s, '0')
			}
		}
		s = append(s, '\n')
	}

	return string(s)
}
