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

package internal

import "math/big"

// CenterMod reduces x modulo m into the interval (-m/2, m/2].
// The result is returned in a new big.Int.
func CenterMod(x, m *big.Int) *big.Int {
	ret := new(big.Int).Mod(x, m)
	half := new(big.Int).Rsh(m, 1)
	if ret.Cmp(half) == 1 {
		ret.Sub(ret, m)
	}

	return ret
}

// NextPrime returns the smallest prime that is greater or equal to x.
// The search is deterministic: the Miller-Rabin bases used by
// big.Int.ProbablyPrime are derived from the candidate itself.
func NextPrime(x *big.Int) *big.Int {
	two := big.NewInt(2)
	p := new(big.Int).Set(x)
	if p.Cmp(two) <= 0 {
		return two
	}
	if p.Bit(0) == 0 {
		p.Add(p, big.NewInt(1))
	}
	for !p.ProbablyPrime(20) {
		p.Add(p, two)
	}

	return p
}
