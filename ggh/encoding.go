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

package ggh

import (
	"io"
	"math/big"

	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/internal"
	"github.com/fentec-project/gomife/sample"
	"github.com/pkg/errors"
)

// Encoding is an element of Z_q[x]/(x^n+1) together with its level.
// Coefficients are kept in [0, q).
type Encoding struct {
	Level int
	Poly  data.Vector
}

// Cleartext is a plain ring element, the payload of a level-0
// encoding.
type Cleartext struct {
	Poly data.Vector
}

// NewCleartext returns the cleartext with the given coefficients.
func NewCleartext(poly data.Vector) *Cleartext {
	return &Cleartext{Poly: poly}
}

// Clear sets c to zero.
func (c *Cleartext) Clear() {
	c.Poly.Clear()
}

// Equal reports whether c and other are the same ring element.
func (c *Cleartext) Equal(other *Cleartext) bool {
	return c.Poly.Equal(other.Poly)
}

// NewEncoding returns an encoding of zero at level 0.
func (pk *PublicKey) NewEncoding() *Encoding {
	return &Encoding{
		Level: 0,
		Poly:  data.NewConstantVector(pk.N, big.NewInt(0)),
	}
}

// SetUint sets e to the level-0 encoding of the constant c.
func (e *Encoding) SetUint(c uint64) {
	e.Poly.Clear()
	e.Poly[0].SetUint64(c)
	e.Level = 0
}

// Clear sets e to zero at level 0.
func (e *Encoding) Clear() {
	e.Poly.Clear()
	e.Level = 0
}

// Copy returns an independent copy of e.
func (e *Encoding) Copy() *Encoding {
	return &Encoding{Level: e.Level, Poly: e.Poly.Copy()}
}

// SetInt sets rop to the level-0 encoding of the constant c, which
// may be negative.
func (pk *PublicKey) SetInt(rop *Encoding, c *big.Int) {
	rop.Poly = data.NewConstantPoly(pk.N, new(big.Int).Mod(c, pk.Q))
	rop.Level = 0
}

// SetCleartext sets rop to the level-0 encoding of c.
func (pk *PublicKey) SetCleartext(rop *Encoding, c *Cleartext) error {
	if len(c.Poly) != pk.N {
		return internal.ErrMalformedInput
	}
	rop.Poly = c.Poly.Mod(pk.Q)
	rop.Level = 0

	return nil
}

// Rerand rerandomizes the encoding f at level k = f.Level by adding
// rho_0*x_{k,0} + rho_1*x_{k,1}, where rho_0 and rho_1 are sampled
// from the discrete Gaussian of width SigmaS.
//
// It returns ErrNoRerandBasis if pk holds no rerandomization
// elements for level k. Whether f is indeed a level-k encoding
// cannot be checked.
func (pk *PublicKey) Rerand(f *Encoding, entropy io.Reader) error {
	k := f.Level
	if k < 0 || k > pk.Kappa {
		return internal.ErrLevelOutOfRange
	}
	if k == 0 || k > len(pk.X) || pk.X[k-1] == nil {
		return errors.Wrapf(internal.ErrNoRerandBasis, "level %d", k)
	}

	sampler := sample.NewNormalWidth(pk.SigmaS, entropy)
	res := f.Poly
	for _, x := range pk.X[k-1] {
		rho, err := data.NewRandomVector(pk.N, sampler)
		if err != nil {
			return errors.Wrap(err, "error sampling rerandomization coefficient")
		}
		rx, err := rho.MulAsPolyInRing(x)
		if err != nil {
			return err
		}
		res = res.Add(rx)
	}
	f.Poly = res.Mod(pk.Q)

	return nil
}

// Elevate raises the encoding op from its level k' to level k by
// multiplying it with y^(k-k') and stores the result in rop. If
// rerand is set, the result is rerandomized at level k.
//
// It returns ErrLevelOutOfRange unless 0 <= k' <= k <= kappa.
func (pk *PublicKey) Elevate(rop, op *Encoding, k int, rerand bool, entropy io.Reader) error {
	kPrime := op.Level
	if kPrime < 0 || k < kPrime || k > pk.Kappa {
		return errors.Wrapf(internal.ErrLevelOutOfRange, "cannot elevate from level %d to %d", kPrime, k)
	}

	res := op.Poly.Mod(pk.Q)
	if k > kPrime {
		yPow, err := pk.Y.PowAsPolyInRingMod(k-kPrime, pk.Q)
		if err != nil {
			return err
		}
		if res, err = res.MulAsPolyInRingMod(yPow, pk.Q); err != nil {
			return err
		}
	}
	rop.Poly = res
	rop.Level = k

	if rerand {
		return pk.Rerand(rop, entropy)
	}

	return nil
}

// Encode elevates the level-0 encoding op to level k and stores the
// result in rop.
func (pk *PublicKey) Encode(rop, op *Encoding, k int, rerand bool, entropy io.Reader) error {
	if op.Level != 0 {
		return errors.Wrapf(internal.ErrLevelOutOfRange, "cannot encode from level %d", op.Level)
	}

	return pk.Elevate(rop, op, k, rerand, entropy)
}

// Sample stores in rop a fresh encoding at level k of a random short
// element sampled from the discrete Gaussian of width Sigma. For
// k >= 1 the encoding is rerandomized, which requires rerandomization
// elements for level k.
func (pk *PublicKey) Sample(rop *Encoding, k int, entropy io.Reader) error {
	e, err := data.NewRandomVector(pk.N, sample.NewNormalWidth(pk.Sigma, entropy))
	if err != nil {
		return errors.Wrap(err, "error sampling cleartext")
	}
	op := &Encoding{Level: 0, Poly: e}

	return pk.Elevate(rop, op, k, k >= 1, entropy)
}

// Mul stores the product of f and g in h. The level of the product
// is the sum of the levels of f and g and must not exceed kappa.
func (pk *PublicKey) Mul(h, f, g *Encoding) error {
	level := f.Level + g.Level
	if f.Level < 0 || g.Level < 0 || level > pk.Kappa {
		return errors.Wrapf(internal.ErrLevelOutOfRange, "cannot multiply levels %d and %d", f.Level, g.Level)
	}
	prod, err := f.Poly.MulAsPolyInRingMod(g.Poly, pk.Q)
	if err != nil {
		return err
	}
	h.Poly = prod
	h.Level = level

	return nil
}

// Add stores the sum of f and g in h. Both encodings must be of the
// same level.
func (pk *PublicKey) Add(h, f, g *Encoding) error {
	if f.Level != g.Level {
		return errors.Wrapf(internal.ErrLevelOutOfRange, "cannot add levels %d and %d", f.Level, g.Level)
	}
	if len(f.Poly) != len(g.Poly) {
		return internal.ErrMalformedInput
	}
	h.Poly = f.Poly.Add(g.Poly).Mod(pk.Q)
	h.Level = f.Level

	return nil
}
