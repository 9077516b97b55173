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

package sample

import (
	"crypto/rand"
	"io"
	"math/big"
)

// UniformRange samples random values from the interval [min, max).
type UniformRange struct {
	min  *big.Int
	max  *big.Int
	rand io.Reader
}

// NewUniformRange returns an instance of the UniformRange sampler.
// It accepts lower and upper bounds on the sampled values and
// the source of randomness.
func NewUniformRange(min, max *big.Int, rand io.Reader) *UniformRange {
	return &UniformRange{
		min:  min,
		max:  max,
		rand: source(rand),
	}
}

// Sample samples random values from the interval [min, max).
func (u *UniformRange) Sample() (*big.Int, error) {
	width := new(big.Int).Sub(u.max, u.min)
	v, err := rand.Int(u.rand, width)
	if err != nil {
		return nil, err
	}

	return v.Add(v, u.min), nil
}

// NewUniform returns an instance of the UniformRange sampler
// on the interval [0, max).
func NewUniform(max *big.Int, rand io.Reader) *UniformRange {
	return NewUniformRange(big.NewInt(0), max, rand)
}

