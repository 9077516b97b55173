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
	"math/big"

	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/internal"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// Extracted is the canonical string extracted from a level-kappa
// encoding: n values of Ell bits each. Encodings of zero extract to
// the all-zero vector.
type Extracted struct {
	Ell    int
	Coeffs data.Vector
}

// Extract computes the canonical string of the level-kappa encoding
// op. The zero-tested element t = p_zt*op, centered in (-q/2, q/2],
// is mapped coefficient-wise to round(t*2^Ell/q) mod 2^Ell.
func (pk *PublicKey) Extract(op *Encoding) (*Extracted, error) {
	if op.Level != pk.Kappa {
		return nil, errors.Wrapf(internal.ErrLevelOutOfRange, "cannot extract at level %d", op.Level)
	}
	if pk.PZT == nil {
		return nil, internal.ErrMalformedPubKey
	}

	t, err := pk.PZT.MulAsPolyInRingMod(op.Poly, pk.Q)
	if err != nil {
		return nil, err
	}

	halfQ := new(big.Int).Rsh(pk.Q, 1)
	bound := new(big.Int).Lsh(big.NewInt(1), uint(pk.Ell))
	coeffs := make(data.Vector, len(t))
	for i, ti := range t {
		c := internal.CenterMod(ti, pk.Q)
		c.Lsh(c, uint(pk.Ell))
		c.Add(c, halfQ)
		c.Div(c, pk.Q)
		coeffs[i] = c.Mod(c, bound)
	}

	return &Extracted{Ell: pk.Ell, Coeffs: coeffs}, nil
}

// IsZero reports whether e is the canonical zero.
func (e *Extracted) IsZero() bool {
	return e.Coeffs.IsZero()
}

// Equal reports whether e and other are the same canonical string.
func (e *Extracted) Equal(other *Extracted) bool {
	return e.Ell == other.Ell && e.Coeffs.Equal(other.Coeffs)
}

// Bytes returns the big-endian encoding of the coefficients of e,
// each padded to (Ell+7)/8 bytes.
func (e *Extracted) Bytes() []byte {
	width := (e.Ell + 7) / 8
	out := make([]byte, width*len(e.Coeffs))
	for i, c := range e.Coeffs {
		c.FillBytes(out[i*width : (i+1)*width])
	}

	return out
}

// Digest returns the blake3 hash of the canonical string.
func (e *Extracted) Digest() [32]byte {
	return blake3.Sum256(e.Bytes())
}

// Key derives size bytes of key material from the canonical string.
func (e *Extracted) Key(size int) []byte {
	hasher := blake3.New()
	hasher.Write(e.Bytes())
	key := make([]byte, size)
	hasher.Digest().Read(key)

	return key
}
