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

// Vector wraps a slice of *big.Int elements.
//
// A Vector of length n also represents the polynomial
// v[0] + v[1]*x + ... + v[n-1]*x^(n-1) of the ring Z[x]/(x^n+1).
type Vector []*big.Int

// NewVector returns a new Vector instance.
func NewVector(coordinates []*big.Int) Vector {
	return Vector(coordinates)
}

// NewRandomVector returns a new Vector instance
// with random elements sampled by the provided sample.Sampler.
// Returns an error in case of sampling failure.
func NewRandomVector(len int, sampler sample.Sampler) (Vector, error) {
	vec := make([]*big.Int, len)
	var err error

	for i := 0; i < len; i++ {
		vec[i], err = sampler.Sample()
		if err != nil {
			return nil, err
		}
	}

	return NewVector(vec), nil
}

// NewConstantVector returns a new Vector instance
// with all elements set to constant c.
func NewConstantVector(len int, c *big.Int) Vector {
	vec := make([]*big.Int, len)
	for i := 0; i < len; i++ {
		vec[i] = new(big.Int).Set(c)
	}

	return vec
}

// NewConstantPoly returns the polynomial of degree 0 with
// constant term c, as a vector of length n.
func NewConstantPoly(n int, c *big.Int) Vector {
	v := NewConstantVector(n, big.NewInt(0))
	if n > 0 {
		v[0].Set(c)
	}

	return v
}

// Copy creates a new vector with the same values
// of the entries.
func (v Vector) Copy() Vector {
	newVec := make(Vector, len(v))

	for i, c := range v {
		newVec[i] = new(big.Int).Set(c)
	}

	return newVec
}

// Mod performs modulo operation on vector's elements.
// The result is returned in a new Vector.
func (v Vector) Mod(modulo *big.Int) Vector {
	newCoords := make([]*big.Int, len(v))

	for i, c := range v {
		newCoords[i] = new(big.Int).Mod(c, modulo)
	}

	return NewVector(newCoords)
}

// Add adds vectors v and other.
// The result is returned in a new Vector.
func (v Vector) Add(other Vector) Vector {
	sum := make([]*big.Int, len(v))

	for i, c := range v {
		sum[i] = new(big.Int).Add(c, other[i])
	}

	return NewVector(sum)
}

// Dot calculates the dot product (inner product) of vectors v and other.
// It returns an error if vectors have different numbers of elements.
func (v Vector) Dot(other Vector) (*big.Int, error) {
	prod := big.NewInt(0)

	if len(v) != len(other) {
		return nil, fmt.Errorf("vectors should be of same length")
	}

	for i, c := range v {
		prod = prod.Add(prod, new(big.Int).Mul(c, other[i]))
	}

	return prod, nil
}

// IsZero reports whether all the elements of v are zero.
func (v Vector) IsZero() bool {
	for _, c := range v {
		if c.Sign() != 0 {
			return false
		}
	}

	return true
}

// Equal reports whether v and other have the same length
// and the same elements.
func (v Vector) Equal(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i, c := range v {
		if c.Cmp(other[i]) != 0 {
			return false
		}
	}

	return true
}

// Clear sets all the elements of v to zero.
func (v Vector) Clear() {
	for _, c := range v {
		c.SetInt64(0)
	}
}

// MulAsPolyInRing multiplies vectors v and other as polynomials
// in the ring of polynomials R = Z[x]/((x^n)+1), where n is length of
// the vectors. Note that the input vector [1, 2, 3] represents a
// polynomial Z[x] = 3x²+2x+1.
// It returns a new polynomial with degree <= n-1.
//
// If vectors differ in size, error is returned.
func (v Vector) MulAsPolyInRing(other Vector) (Vector, error) {
	if len(v) != len(other) {
		return nil, fmt.Errorf("vectors must have the same length")
	}
	n := len(v)

	// Result will be a polynomial with the degree <= n-1
	prod := new(big.Int)
	res := make(Vector, n)

	// Over all degrees, beginning at lowest degree
	for i := 0; i < n; i++ {
		res[i] = big.NewInt(0)
		// Handle products with degrees < n
		for j := 0; j <= i; j++ {
			prod.Mul(v[i-j], other[j]) // Multiply coefficients
			res[i].Add(res[i], prod)
		}
		// Handle products with degrees >= n
		for j := i + 1; j < n; j++ {
			prod.Mul(v[n+i-j], other[j]) // Multiply coefficients
			prod.Neg(prod)               // Negate, because x^n = -1
			res[i].Add(res[i], prod)
		}
	}

	return res, nil
}

// MulAsPolyInRingMod multiplies v and other in the ring
// Z_q[x]/((x^n)+1), where q is the given modulus. The result
// has all coefficients in [0, q).
func (v Vector) MulAsPolyInRingMod(other Vector, q *big.Int) (Vector, error) {
	res, err := v.MulAsPolyInRing(other)
	if err != nil {
		return nil, err
	}

	return res.Mod(q), nil
}

// PowAsPolyInRingMod raises v to the power e in the ring
// Z_q[x]/((x^n)+1) by square-and-multiply. v^0 is the polynomial 1.
func (v Vector) PowAsPolyInRingMod(e int, q *big.Int) (Vector, error) {
	if e < 0 {
		return nil, fmt.Errorf("exponent should be non-negative")
	}
	res := NewConstantPoly(len(v), big.NewInt(1))
	base := v.Mod(q)
	var err error
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			res, err = res.MulAsPolyInRingMod(base, q)
			if err != nil {
				return nil, err
			}
		}
		if e > 1 {
			base, err = base.MulAsPolyInRingMod(base, q)
			if err != nil {
				return nil, err
			}
		}
	}

	return res, nil
}

// String produces a string representation of a vector.
func (v Vector) String() string {
	vStr := ""
	for _, yi := range v {
		vStr = vStr + " " + yi.String()
	}
	return vStr
}
