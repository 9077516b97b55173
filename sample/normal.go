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
	"encoding/binary"
	"io"
	"math"
	"math/big"
)

// expCoef are coefficients of a polynomial approximating an exponential
// function.
var expCoef = []float64{1.43291003789439094275872613876154915146798884961754e-7,
	1.2303944375555413249736938854916878938183799618855e-6,
	1.5359914219462011698283041005730353845137869939208e-5,
	1.5396043210538638053991311593904356413986533880234e-4,
	1.3333877552501097445841748978523355617653578519821e-3,
	9.6181209331756452318717975913386908359825611114502e-3,
	5.5504109841318247098307381293125217780470848083496e-2,
	0.24022650687652774559310842050763312727212905883789,
	0.69314718056193380668617010087473317980766296386719,
	1}

var mantissaPrecision = uint64(52)
var mantissaMask = (uint64(1) << mantissaPrecision) - 1
var bitLenForSample = uint64(19)
var maxExp = uint64(1023)
var cmpMask = uint64(1) << 61

// Bernoulli returns true with probability proportional to
// 2^{-t/l^2}, reading its coins from rand. A polynomial approximation
// is used to evaluate the exponential function. The implementation is
// based on paper:
// "FACCT: FAst, Compact, and Constant-Time Discrete Gaussian
// Sampler over Integers" by R. K. Zhao, R. Steinfeld, and A. Sakzad
// (https://eprint.iacr.org/2018/1234.pdf). See the above paper where
// it is argued that such a sampling achieves a relative error at most
// 2^{-45} with the chosen parameters.
func Bernoulli(t *big.Int, lSquareInv *big.Float, rand io.Reader) (bool, error) {
	aBig := new(big.Float).SetInt(t)
	aBig.Mul(aBig, lSquareInv)
	a, _ := aBig.Float64()
	a = -a

	negFloorA := -math.Floor(a)
	z := a + negFloorA

	powOfZ := expCoef[0]
	for i := 1; i < 10; i++ {
		powOfZ = powOfZ*z + expCoef[i]
	}

	powOfAMantissa := math.Float64bits(powOfZ) & mantissaMask
	powOfAExponent := (math.Float64bits(powOfZ) >> mantissaPrecision) - uint64(negFloorA)

	randBytes := make([]byte, 16)
	if _, err := io.ReadFull(source(rand), randBytes); err != nil {
		return false, err
	}

	r1 := binary.LittleEndian.Uint64(randBytes[0:8])
	r1 = r1 >> (64 - (mantissaPrecision + 1))
	r2 := binary.LittleEndian.Uint64(randBytes[8:16])
	r2 = r2 >> (64 - bitLenForSample)

	check1 := powOfAMantissa | (uint64(1) << mantissaPrecision)
	check2 := uint64(1) << (bitLenForSample + powOfAExponent + 1 - maxExp)

	// constant time check if r1 < check1 && r2 < check2
	return (cmpMask&(r1-check1)&(r2-check2)) > 0 || powOfZ == 1, nil
}
