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

// NormalDoubleConstant samples random values from the
// normal (Gaussian) probability distribution, centered on 0,
// with standard deviation sigma = k * SigmaCDT.
// This sampler works in a way that it first samples from a
// NormalCDT and then using another sampling from uniform
// distribution creates a candidate for the output, which is
// accepted or rejected with certain probability. Both steps are
// constant time, and k can be arbitrarily large.
type NormalDoubleConstant struct {
	rand io.Reader
	// NormalCDT sampler used in the first part
	samplerCDT *NormalCDT
	// precomputed parameters used for sampling
	k          *big.Int
	kSquareInv *big.Float
	twiceK     *big.Int
}

// NewNormalDoubleConstant returns an instance of NormalDoubleConstant
// sampler with sigma = k * SigmaCDT, reading randomness from rand.
// It assumes mean = 0.
func NewNormalDoubleConstant(k *big.Int, rand io.Reader) *NormalDoubleConstant {
	kSquare := new(big.Float).SetInt(k)
	kSquare.Mul(kSquare, kSquare)
	kSquareInv := new(big.Float).Quo(big.NewFloat(1), kSquare)

	twiceK := new(big.Int).Mul(k, big.NewInt(2))
	rand = source(rand)

	return &NormalDoubleConstant{
		rand:       rand,
		samplerCDT: NewNormalCDT(rand),
		k:          new(big.Int).Set(k),
		kSquareInv: kSquareInv,
		twiceK:     twiceK,
	}
}

// NewNormalWidth returns a NormalDoubleConstant sampler whose
// standard deviation is the smallest multiple of SigmaCDT that
// is at least sigma.
func NewNormalWidth(sigma *big.Int, rand io.Reader) *NormalDoubleConstant {
	return NewNormalDoubleConstant(WidthMultiple(sigma), rand)
}

// WidthMultiple returns k = ceil(sigma / SigmaCDT), but at least 1.
func WidthMultiple(sigma *big.Int) *big.Int {
	kF := new(big.Float).SetPrec(uint(sigma.BitLen()) + 64).SetInt(sigma)
	kF.Quo(kF, SigmaCDT)
	k, acc := kF.Int(nil)
	if acc == big.Below {
		k.Add(k, big.NewInt(1))
	}
	if k.Sign() < 1 {
		k.SetInt64(1)
	}

	return k
}

// Sample samples according to discrete Gauss distribution using
// NormalCDT and second sampling.
func (s *NormalDoubleConstant) Sample() (*big.Int, error) {
	// prepare values
	var sign int64
	checkVal := new(big.Int)
	res := new(big.Int)
	for {
		sign = 1
		// first sample according to discrete gauss with smaller
		// sigma
		x, err := s.samplerCDT.Sample()
		if err != nil {
			return nil, err
		}
		// sample uniformly from an interval
		y, err := rand.Int(s.rand, s.twiceK)
		if err != nil {
			return nil, err
		}
		// use the last sampling to decide the sign of the output
		if y.Cmp(s.k) != -1 {
			sign = -1
			y.Sub(y, s.k)
		}

		// partially calculate the result and the probability of accepting the result
		res.Mul(s.k, x)
		checkVal.Mul(res, big.NewInt(2))
		checkVal.Add(checkVal, y)
		checkVal.Mul(checkVal, y)
		res.Add(res, y)

		// sample from Bernoulli to decide if accept
		accept, err := Bernoulli(checkVal, s.kSquareInv, s.rand)
		if err != nil {
			return nil, err
		}
		if accept && !(res.Sign() == 0 && sign == -1) {
			// calculate the final value that we accepted
			res.Mul(res, big.NewInt(sign))

			return res, nil
		}
	}
}
