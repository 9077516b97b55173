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

// Package mbp provides functionality families for the MIFE scheme
// of package mife, given as matrix branching programs.
package mbp

import (
	"github.com/fentec-project/gomife/data"
)

// Bits returns the n-bit message holding the value x, most
// significant bit first, as a 1 x n F2Matrix.
func Bits(x uint64, n int) *data.F2Matrix {
	msg, ok := data.NewF2Matrix(1, n)
	if !ok {
		return nil
	}
	for j := 0; j < n; j++ {
		msg.Set(0, j, (x>>uint(n-1-j))&1 == 1)
	}

	return msg
}

// validMessage reports whether raw is a single row of n bits.
func validMessage(raw *data.F2Matrix, n int) bool {
	return raw != nil && raw.Rows() == 1 && raw.Cols() == n
}
