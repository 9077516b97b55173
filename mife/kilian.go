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
	"io"
	"math/big"
	"math/bits"

	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/sample"
)

// kilian samples, for every chain boundary, a random unimodular
// integer matrix of the boundary's dimension and its inverse.
// Masked chain matrices multiply to the product of the unmasked ones.
func kilian(pp *PublicParams, entropy io.Reader) ([]data.Matrix, []data.Matrix, error) {
	sampler := sample.NewUniformRange(big.NewInt(-1), big.NewInt(2), entropy)
	masks := make([]data.Matrix, len(pp.kilianDims))
	inverses := make([]data.Matrix, len(pp.kilianDims))
	for s, dim := range pp.kilianDims {
		var err error
		masks[s], inverses[s], err = data.NewRandomUnimodular(dim, sampler)
		if err != nil {
			return nil, nil, err
		}
	}

	return masks, inverses, nil
}

// mask returns K_{s-1}^-1 * m * K_s for the matrix m at chain
// position s. The masks before the first and after the last chain
// matrix are omitted.
func (sk *SecretKey) mask(s int, m data.Matrix) (data.Matrix, error) {
	if sk.Kilian == nil {
		return m, nil
	}

	var err error
	if s > 0 {
		if m, err = sk.KilianInv[s-1].Mul(m); err != nil {
			return nil, err
		}
	}
	if s < len(sk.Kilian) {
		if m, err = m.Mul(sk.Kilian[s]); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// maskSlack bounds the number of bits by which masking grows the
// entries of a chain matrix: K_{s-1}^-1 * m * K_s sums at most dim^2
// products of an inverse mask entry, an entry of m and a mask entry.
func (sk *SecretKey) maskSlack() int {
	maxK, maxInv, maxDim := 0, 0, 0
	for s := range sk.Kilian {
		if b := sk.Kilian[s].MaxBitLen(); b > maxK {
			maxK = b
		}
		if b := sk.KilianInv[s].MaxBitLen(); b > maxInv {
			maxInv = b
		}
		if d := sk.Kilian[s].Rows(); d > maxDim {
			maxDim = d
		}
	}
	if maxDim == 0 {
		return 0
	}

	return maxK + maxInv + 2*bits.Len(uint(maxDim))
}
