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
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/internal"
)

// Flag configures the generation of an Instance.
type Flag uint

const (
	// FlagDefault requests no special behavior.
	FlagDefault Flag = 0
	// FlagVerbose logs the progress of instance generation.
	FlagVerbose Flag = 1
)

// minDim is the smallest ring dimension used.
const minDim = 16

// floatPrec is the precision of all floating point computations
// of the parameters.
const floatPrec = 128

var pi, _ = new(big.Float).SetPrec(floatPrec).SetString("3.14159265358979323846264338327950288419716939937510")

// PublicKey holds the public parameters of a GGH-lite instance.
// Once InitInstance completes, it must not be modified and can be
// shared by concurrent readers.
type PublicKey struct {
	Lambda     int
	Kappa      int
	RerandMask uint64
	Flags      Flag

	// N is the dimension of the ring Z_q[x]/(x^n+1).
	N int
	// Q is the prime modulus.
	Q *big.Int
	// Ell is the number of bits extracted from every coefficient.
	Ell int
	// Sigma is the width of the generator g and of fresh samples.
	Sigma *big.Int
	// SigmaP is the width of a and of the numerators of the
	// rerandomization elements.
	SigmaP *big.Int
	// SigmaS is the width of the rerandomization coefficients.
	SigmaS *big.Int
	// SigmaH is the width of the zero-testing mask h.
	SigmaH *big.Int
	// Slack is the number of bits reserved at every level, on top
	// of lambda, for the size of the encoded cleartexts.
	Slack int
	// NoiseBits bounds log2 of the numerator of a level-kappa
	// encoding.
	NoiseBits float64

	// Y is a level-1 encoding of 1.
	Y data.Vector
	// PZT is the zero-testing parameter.
	PZT data.Vector
	// X holds the rerandomization elements; X[k-1] is the pair
	// for level k, or nil if the level has none.
	X [][]data.Vector
}

// InitParams derives all the public numeric parameters from the
// security parameter lambda, the multilinearity kappa and the
// rerandomization mask. Rerandomization elements will be generated
// for level i if bit i-1 of rerandMask is set. InitParams consumes no
// randomness. Values lambda <= 0 or kappa <= 0 are recorded as given
// and reported by CheckParams.
func InitParams(lambda, kappa int, rerandMask uint64, flags Flag) *PublicKey {
	return InitParamsWithSlack(lambda, kappa, rerandMask, flags, 0)
}

// InitParamsWithSlack is like InitParams, but reserves slack
// additional bits per level for encodings of cleartexts larger than
// 2^lambda. A negative slack is treated as zero.
func InitParamsWithSlack(lambda, kappa int, rerandMask uint64, flags Flag, slack int) *PublicKey {
	if slack < 0 {
		slack = 0
	}
	pk := &PublicKey{
		Lambda:     lambda,
		Kappa:      kappa,
		RerandMask: rerandMask,
		Flags:      flags,
		Slack:      slack,
	}

	lam := lambda
	if lam < 1 {
		lam = 1
	}
	kap := kappa
	if kap < 1 {
		kap = 1
	}

	n := minDim
	for n < lam {
		n <<= 1
	}
	pk.N = n

	nF := newFloat(int64(n))
	// c = sqrt(e * ln(8n) / pi)
	c := bigfloat.Log(newFloat(int64(8 * n)))
	c.Mul(c, bigfloat.Exp(newFloat(1)))
	c.Quo(c, pi)
	c.Sqrt(c)
	// n^(3/2)
	n15 := bigfloat.Pow(nF, newFloat(3).Quo(newFloat(3), newFloat(2)))

	sigma := newFloat(4)
	sigma.Mul(sigma, pi).Mul(sigma, nF).Mul(sigma, c)
	pk.Sigma = ceil(sigma)

	sigmaP := newFloat(2)
	sigmaP.Mul(sigmaP, n15).Mul(sigmaP, intFloat(pk.Sigma)).Mul(sigmaP, c)
	pk.SigmaP = ceil(sigmaP)

	// sqrt(8 * pi * kappa)
	s := newFloat(int64(8 * kap))
	s.Mul(s, pi).Sqrt(s)
	sigmaS := new(big.Float).SetPrec(floatPrec).Mul(n15, intFloat(pk.SigmaP))
	sigmaS.Mul(sigmaS, s)
	pk.SigmaS = ceil(sigmaS)

	logN := log2(nF)
	eightNSigma := new(big.Int).Mul(big.NewInt(int64(8*n)), pk.Sigma)
	pk.Ell = int(math.Ceil(log2(intFloat(eightNSigma))))

	e1 := log2(intFloat(pk.SigmaS)) + log2(intFloat(pk.SigmaP)) + log2(intFloat(pk.Sigma)) +
		2*logN + 3*log2(newFloat(6)) + 1 + float64(lam) + float64(slack)
	pk.NoiseBits = float64(kap) * (e1 + logN + 8)

	bits := int(math.Ceil(2 * (pk.NoiseBits + float64(pk.Ell) + float64(lam) + logN + 8)))
	pk.Q = internal.NextPrime(new(big.Int).Lsh(big.NewInt(1), uint(bits-1)))

	sigmaH := new(big.Int).Sqrt(pk.Q)
	if new(big.Int).Mul(sigmaH, sigmaH).Cmp(pk.Q) < 0 {
		sigmaH.Add(sigmaH, big.NewInt(1))
	}
	pk.SigmaH = sigmaH

	return pk
}

// PrintParams writes the sizes of the parameters of pk to w.
func (pk *PublicKey) PrintParams(w io.Writer) {
	fmt.Fprintf(w, "λ: %d, κ: %d\n", pk.Lambda, pk.Kappa)
	fmt.Fprintf(w, "n: %d\n", pk.N)
	fmt.Fprintf(w, "log q: %d\n", pk.Q.BitLen())
	fmt.Fprintf(w, "ℓ: %d\n", pk.Ell)
	fmt.Fprintf(w, "log σ: %.1f\n", log2(intFloat(pk.Sigma)))
	fmt.Fprintf(w, "log σ': %.1f\n", log2(intFloat(pk.SigmaP)))
	fmt.Fprintf(w, "log σ*: %.1f\n", log2(intFloat(pk.SigmaS)))
	fmt.Fprintf(w, "log σ_h: %.1f\n", log2(intFloat(pk.SigmaH)))
	fmt.Fprintf(w, "log noise at level κ: %.1f\n", pk.NoiseBits)
	fmt.Fprintf(w, "rerand mask: %#x\n", pk.RerandMask)
}

// CheckParams recomputes the relations the parameters of pk must
// satisfy and writes one line per relation to w, prefixed with
// "[ok]" or "[FAIL]". It is informational only.
func (pk *PublicKey) CheckParams(w io.Writer) {
	check := func(ok bool, format string, args ...interface{}) {
		status := "[ok]  "
		if !ok {
			status = "[FAIL]"
		}
		fmt.Fprintf(w, "%s %s\n", status, fmt.Sprintf(format, args...))
	}

	check(pk.Lambda > 0, "λ > 0 (λ = %d)", pk.Lambda)
	check(pk.Kappa > 0, "κ > 0 (κ = %d)", pk.Kappa)
	check(pk.N > 0 && pk.N&(pk.N-1) == 0, "n is a power of two (n = %d)", pk.N)
	check(pk.N >= pk.Lambda, "n ≥ λ")
	check(pk.Sigma.Cmp(pk.SigmaP) < 0 && pk.SigmaP.Cmp(pk.SigmaS) < 0, "σ < σ' < σ*")
	check(pk.Q.ProbablyPrime(20), "q is prime")
	lam := pk.Lambda
	if lam < 1 {
		lam = 1
	}
	bound := 2 * (pk.NoiseBits + float64(pk.Ell) + float64(lam))
	check(float64(pk.Q.BitLen()) >= bound, "log q ≥ 2(log noise + ℓ + λ) (%d ≥ %.1f)", pk.Q.BitLen(), bound)
	check(pk.N*pk.Ell >= 2*pk.Lambda, "n·ℓ ≥ 2λ")
}

func newFloat(x int64) *big.Float {
	return new(big.Float).SetPrec(floatPrec).SetInt64(x)
}

func intFloat(x *big.Int) *big.Float {
	return new(big.Float).SetPrec(floatPrec).SetInt(x)
}

// ceil returns the smallest integer not smaller than a
// non-negative x.
func ceil(x *big.Float) *big.Int {
	i, acc := x.Int(nil)
	if acc == big.Below {
		i.Add(i, big.NewInt(1))
	}

	return i
}

// log2 returns the binary logarithm of a positive x.
func log2(x *big.Float) float64 {
	l := bigfloat.Log(x)
	l.Quo(l, bigfloat.Log(newFloat(2)))
	f, _ := l.Float64()

	return f
}
