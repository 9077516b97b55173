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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestF2Matrix(t *testing.T) {
	m, ok := NewF2Matrix(3, 4)
	require.True(t, ok)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 4, m.Cols())
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			assert.False(t, m.Get(i, j))
		}
	}

	m.Set(1, 2, true)
	m.Set(2, 3, true)
	assert.True(t, m.Get(1, 2))
	assert.Equal(t, "0000\n0010\n0001\n", m.String())

	m.Zero()
	assert.False(t, m.Get(1, 2))

	m.Free()
	assert.Equal(t, 0, m.Rows())
	_, ok = m.Copy()
	assert.False(t, ok, "copy of a freed matrix should fail")

	_, ok = NewF2Matrix(-1, 2)
	assert.False(t, ok)
}

func TestF2Matrix_CopyIndependence(t *testing.T) {
	src, _ := NewF2Matrix(2, 3)
	src.Set(0, 1, true)
	src.Set(1, 2, true)

	dst, ok := src.Copy()
	require.True(t, ok)
	assert.True(t, dst.Equal(src))

	for i := 0; i < dst.Rows(); i++ {
		for j := 0; j < dst.Cols(); j++ {
			dst.Set(i, j, !dst.Get(i, j))
		}
	}
	assert.True(t, src.Get(0, 1))
	assert.True(t, src.Get(1, 2))
	assert.False(t, src.Get(0, 0))
	assert.False(t, dst.Equal(src))
}
