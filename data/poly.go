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
)

// InvertAsPolyInRing returns the inverse of v in the ring
// Z_q[x]/((x^n)+1), where n is the length of v and q is a prime.
// The inverse is computed by the extended Euclidean algorithm
// applied to v and x^n+1 over Z_q[x].
//
// It returns an error if v is not invertible in the ring.
func (v Vector) InvertAsPolyInRing(q *big.Int) (Vector, error) {
	n := len(v)
	if n == 0 {
		return nil, fmt.Errorf("cannot invert an empty polynomial")
	}

	// r0 = x^n + 1
	r0 := make(Vector, n+1)
	for i := range r0 {
		r0[i] = big.NewInt(0)
	}
	r0[0].SetInt64(1)
	r0[n].SetInt64(1)
	r1 := trimPoly(v.Mod(q))

	// invariant: r_i = s_i*(x^n+1) + t_i*v, only t_i is kept
	t0 := Vector{}
	t1 := Vector{big.NewInt(1)}
	for len(r1) > 0 {
		quo, rem, err := polyDivMod(r0, r1, q)
		if err != nil {
			return nil, err
		}
		r0, r1 = r1, rem
		t0, t1 = t1, polySubMod(t0, polyMulMod(quo, t1, q), q)
	}

	if len(r0) != 1 {
		return nil, fmt.Errorf("polynomial is not invertible")
	}
	c := new(big.Int).ModInverse(r0[0], q)
	if c == nil {
		return nil, fmt.Errorf("polynomial is not invertible")
	}

	inv := make(Vector, n)
	for i := range inv {
		inv[i] = big.NewInt(0)
	}
	// reduce t0*c modulo x^n+1, deg(t0) < n holds already
	for i, ti := range t0 {
		idx := i % n
		term := new(big.Int).Mul(ti, c)
		if (i/n)%2 == 0 {
			inv[idx].Add(inv[idx], term)
		} else {
			inv[idx].Sub(inv[idx], term)
		}
	}

	return inv.Mod(q), nil
}

// trimPoly drops the zero coefficients of the highest degrees.
// The zero polynomial is represented by an empty Vector.
func trimPoly(a Vector) Vector {
	i := len(a) - 1
	for i >= 0 && a[i].Sign() == 0 {
		i--
	}

	return a[:i+1]
}

func polySubMod(a, b Vector, q *big.Int) Vector {
	l := len(a)
	if len(b) > l {
		l = len(b)
	}
	res := make(Vector, l)
	for i := range res {
		res[i] = big.NewInt(0)
		if i < len(a) {
			res[i].Add(res[i], a[i])
		}
		if i < len(b) {
			res[i].Sub(res[i], b[i])
		}
		res[i].Mod(res[i], q)
	}

	return trimPoly(res)
}

func polyMulMod(a, b Vector, q *big.Int) Vector {
	if len(a) == 0 || len(b) == 0 {
		return Vector{}
	}
	res := make(Vector, len(a)+len(b)-1)
	for i := range res {
		res[i] = big.NewInt(0)
	}
	prod := new(big.Int)
	for i, ai := range a {
		if ai.Sign() == 0 {
			continue
		}
		for j, bj := range b {
			prod.Mul(ai, bj)
			res[i+j].Add(res[i+j], prod)
		}
	}

	return trimPoly(res.Mod(q))
}

// polyDivMod divides a by a nonzero b over Z_q[x] and returns
// the quotient and the remainder, both trimmed.
func polyDivMod(a, b Vector, q *big.Int) (Vector, Vector, error) {
	db := len(b) - 1
	if db < 0 {
		return nil, nil, fmt.Errorf("division by zero polynomial")
	}
	lead := new(big.Int).ModInverse(b[db], q)
	if lead == nil {
		return nil, nil, fmt.Errorf("leading coefficient is not invertible")
	}

	rem := trimPoly(a.Mod(q))
	if len(rem)-1 < db {
		return Vector{}, rem, nil
	}
	quo := make(Vector, len(rem)-db)
	for i := range quo {
		quo[i] = big.NewInt(0)
	}

	term := new(big.Int)
	for len(rem)-1 >= db {
		da := len(rem) - 1
		coef := new(big.Int).Mul(rem[da], lead)
		coef.Mod(coef, q)
		shift := da - db
		quo[shift] = coef
		for i := 0; i <= db; i++ {
			term.Mul(coef, b[i])
			rem[i+shift].Sub(rem[i+shift], term)
			rem[i+shift].Mod(rem[i+shift], q)
		}
		rem = trimPoly(rem)
	}

	return trimPoly(quo), rem, nil
}
