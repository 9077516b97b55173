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

package ggh_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/fentec-project/gomife/ggh"
	"github.com/fentec-project/gomife/internal"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v5/utils/sampling"
)

var bigComparer = cmp.Comparer(func(a, b *big.Int) bool {
	return a.Cmp(b) == 0
})

func entropy(t *testing.T, key string) *sampling.KeyedPRNG {
	prng, err := sampling.NewKeyedPRNG([]byte(key))
	require.NoError(t, err)
	return prng
}

func TestInitParams(t *testing.T) {
	var tests = []struct {
		name       string
		lambda     int
		kappa      int
		rerandMask uint64
		n          int
	}{
		{name: "small", lambda: 8, kappa: 1, rerandMask: 1, n: 16},
		{name: "toy", lambda: 16, kappa: 4, rerandMask: 0xf, n: 16},
		{name: "mask beyond kappa", lambda: 20, kappa: 2, rerandMask: ^uint64(0), n: 32},
		{name: "scenario", lambda: 80, kappa: 2, rerandMask: 0, n: 128},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pk := ggh.InitParams(test.lambda, test.kappa, test.rerandMask, ggh.FlagDefault)
			assert.Equal(t, test.n, pk.N)
			assert.True(t, pk.Q.ProbablyPrime(20))
			assert.True(t, pk.Sigma.Cmp(pk.SigmaP) < 0)
			assert.True(t, pk.SigmaP.Cmp(pk.SigmaS) < 0)
			assert.True(t, new(big.Int).Mul(pk.SigmaH, pk.SigmaH).Cmp(pk.Q) >= 0)

			again := ggh.InitParams(test.lambda, test.kappa, test.rerandMask, ggh.FlagDefault)
			assert.True(t, cmp.Equal(pk, again, bigComparer), "parameters should be deterministic")

			var out bytes.Buffer
			pk.CheckParams(&out)
			assert.NotContains(t, out.String(), "[FAIL]")
			assert.Contains(t, out.String(), "[ok]")
		})
	}
}

func TestCheckParams_Violations(t *testing.T) {
	var out bytes.Buffer
	ggh.InitParams(0, -1, 0, ggh.FlagDefault).CheckParams(&out)
	assert.Contains(t, out.String(), "[FAIL] λ > 0")
	assert.Contains(t, out.String(), "[FAIL] κ > 0")

	_, err := ggh.New(0, 2, 0, ggh.FlagDefault, nil)
	assert.ErrorIs(t, err, internal.ErrMalformedPubKey)
}

func TestInitParamsWithSlack(t *testing.T) {
	base := ggh.InitParams(16, 3, 1, ggh.FlagDefault)
	wide := ggh.InitParamsWithSlack(16, 3, 1, ggh.FlagDefault, 10)
	assert.Equal(t, 0, base.Slack)
	assert.Equal(t, 10, wide.Slack)
	assert.Equal(t, base.N, wide.N)
	assert.InDelta(t, base.NoiseBits+30, wide.NoiseBits, 1e-6)
	assert.Greater(t, wide.Q.BitLen(), base.Q.BitLen()+50)

	var out bytes.Buffer
	wide.CheckParams(&out)
	assert.NotContains(t, out.String(), "[FAIL]")

	negative := ggh.InitParamsWithSlack(16, 3, 1, ggh.FlagDefault, -4)
	assert.True(t, cmp.Equal(base, negative, bigComparer))
}

func TestPrintParams(t *testing.T) {
	var out bytes.Buffer
	pk := ggh.InitParams(16, 2, 3, ggh.FlagDefault)
	pk.PrintParams(&out)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, out.String(), "n: 16")
	assert.Contains(t, out.String(), "rerand mask: 0x3")
}

func TestExtract_ZeroAndOne(t *testing.T) {
	inst, err := ggh.New(80, 2, 0, ggh.FlagDefault, entropy(t, "scenario"))
	require.NoError(t, err)
	pk := inst.PublicKey()

	extract := func(c uint64) *ggh.Extracted {
		op := pk.NewEncoding()
		op.SetUint(c)
		rop := pk.NewEncoding()
		require.NoError(t, pk.Encode(rop, op, 2, false, nil))
		assert.Equal(t, 2, rop.Level)
		ext, err := pk.Extract(rop)
		require.NoError(t, err)
		return ext
	}

	zero := extract(0)
	one := extract(1)
	assert.True(t, zero.IsZero(), "encoding of zero should extract to zero")
	assert.False(t, one.IsZero(), "encoding of one should not extract to zero")
	assert.False(t, zero.Equal(one))
	assert.Len(t, zero.Bytes(), pk.N*((pk.Ell+7)/8))
}

func TestEncoding_LevelErrors(t *testing.T) {
	inst, err := ggh.New(16, 2, 1, ggh.FlagDefault, entropy(t, "levels"))
	require.NoError(t, err)
	pk := inst.PublicKey()

	one := pk.NewEncoding()
	one.SetUint(1)
	rop := pk.NewEncoding()

	assert.ErrorIs(t, pk.Encode(rop, one, 3, false, nil), internal.ErrLevelOutOfRange)
	assert.ErrorIs(t, pk.Encode(rop, one, -1, false, nil), internal.ErrLevelOutOfRange)

	lvl1 := pk.NewEncoding()
	require.NoError(t, pk.Encode(lvl1, one, 1, true, nil))
	lvl2 := pk.NewEncoding()
	require.NoError(t, pk.Elevate(lvl2, lvl1, 2, false, nil))

	// elevating downwards is not possible
	assert.ErrorIs(t, pk.Elevate(rop, lvl2, 1, false, nil), internal.ErrLevelOutOfRange)
	assert.ErrorIs(t, pk.Encode(rop, lvl1, 2, false, nil), internal.ErrLevelOutOfRange)
	assert.ErrorIs(t, pk.Mul(rop, lvl1, lvl2), internal.ErrLevelOutOfRange)
	assert.ErrorIs(t, pk.Add(rop, lvl1, lvl2), internal.ErrLevelOutOfRange)
	_, err = pk.Extract(lvl1)
	assert.ErrorIs(t, err, internal.ErrLevelOutOfRange)

	// only level 1 has rerandomization elements
	assert.ErrorIs(t, pk.Rerand(lvl2, nil), internal.ErrNoRerandBasis)
	assert.ErrorIs(t, pk.Elevate(rop, lvl1, 2, true, nil), internal.ErrNoRerandBasis)
	assert.ErrorIs(t, pk.Rerand(one, nil), internal.ErrNoRerandBasis)
	assert.ErrorIs(t, pk.Sample(rop, 2, nil), internal.ErrNoRerandBasis)

	require.NoError(t, pk.Sample(rop, 1, nil))
	assert.Equal(t, 1, rop.Level)
	require.NoError(t, pk.Sample(rop, 0, nil))
	assert.Equal(t, 0, rop.Level)

	prod := pk.NewEncoding()
	require.NoError(t, pk.Mul(prod, lvl1, lvl1))
	assert.Equal(t, 2, prod.Level)
	sum := pk.NewEncoding()
	require.NoError(t, pk.Add(sum, prod, lvl2))
	assert.Equal(t, 2, sum.Level)
}

func TestEncoding_Arithmetic(t *testing.T) {
	kappa := 3
	inst, err := ggh.New(16, kappa, 0x7, ggh.FlagDefault, entropy(t, "arithmetic"))
	require.NoError(t, err)
	pk := inst.PublicKey()

	encode := func(c int64, k int) *ggh.Encoding {
		op := pk.NewEncoding()
		pk.SetInt(op, big.NewInt(c))
		rop := pk.NewEncoding()
		require.NoError(t, pk.Encode(rop, op, k, true, nil))
		return rop
	}
	extract := func(op *ggh.Encoding) *ggh.Extracted {
		ext, err := pk.Extract(op)
		require.NoError(t, err)
		return ext
	}

	// rerandomized encodings of the same value extract equally
	a := encode(6, kappa)
	b := encode(6, kappa)
	assert.False(t, a.Poly.Equal(b.Poly), "rerandomization should change the encoding")
	assert.True(t, extract(a).Equal(extract(b)))

	// 2 * 3 = 6 through a product of levels 1 and 2
	prod := pk.NewEncoding()
	require.NoError(t, pk.Mul(prod, encode(2, 1), encode(3, 2)))
	assert.True(t, extract(prod).Equal(extract(a)))

	// 6 - 2*3 = 0
	neg := encode(-6, kappa)
	sum := pk.NewEncoding()
	require.NoError(t, pk.Add(sum, prod, neg))
	assert.True(t, extract(sum).IsZero())

	// cleartexts other than constants
	clr := ggh.NewCleartext(pk.NewEncoding().Poly.Copy())
	clr.Poly[1].SetInt64(1)
	op := pk.NewEncoding()
	require.NoError(t, pk.SetCleartext(op, clr))
	rop := pk.NewEncoding()
	require.NoError(t, pk.Encode(rop, op, kappa, true, nil))
	assert.False(t, extract(rop).IsZero())
	assert.False(t, extract(rop).Equal(extract(a)))
	assert.True(t, clr.Equal(ggh.NewCleartext(op.Poly)))
	clr.Clear()
	assert.True(t, clr.Poly.IsZero())
}

func TestSample_Distinguishable(t *testing.T) {
	kappa := 2
	inst, err := ggh.New(16, kappa, 0x3, ggh.FlagDefault, entropy(t, "sample"))
	require.NoError(t, err)
	pk := inst.PublicKey()

	e1, e2 := pk.NewEncoding(), pk.NewEncoding()
	require.NoError(t, pk.Sample(e1, kappa, nil))
	require.NoError(t, pk.Sample(e2, kappa, nil))
	x1, err := pk.Extract(e1)
	require.NoError(t, err)
	x2, err := pk.Extract(e2)
	require.NoError(t, err)
	assert.False(t, x1.IsZero())
	assert.False(t, x1.Equal(x2))
	assert.NotEqual(t, x1.Digest(), x2.Digest())
}

func TestKeyExchange(t *testing.T) {
	kappa := 2
	parties := kappa + 1
	inst, err := ggh.New(16, kappa, 0x1, ggh.FlagDefault, entropy(t, "key exchange"))
	require.NoError(t, err)
	pk := inst.PublicKey()
	inst.Clear(true)

	secrets := make([]*ggh.Encoding, parties)
	public := make([]*ggh.Encoding, parties)
	for i := range secrets {
		secrets[i] = pk.NewEncoding()
		require.NoError(t, pk.Sample(secrets[i], 0, nil))
		public[i] = pk.NewEncoding()
		require.NoError(t, pk.Encode(public[i], secrets[i], 1, true, nil))
	}

	keys := make([][]byte, parties)
	for i := range secrets {
		acc := secrets[i].Copy()
		for j := range public {
			if j == i {
				continue
			}
			require.NoError(t, pk.Mul(acc, acc, public[j]))
		}
		ext, err := pk.Extract(acc)
		require.NoError(t, err)
		assert.False(t, ext.IsZero())
		keys[i] = ext.Key(32)
	}

	for i := 1; i < parties; i++ {
		assert.Equal(t, keys[0], keys[i], "party %d derived a different key", i)
	}
}

func TestInstance_Clear(t *testing.T) {
	inst, err := ggh.New(16, 1, 0x1, ggh.FlagVerbose, entropy(t, "clear"))
	require.NoError(t, err)
	pk := inst.PublicKey()

	inst.Clear(true)
	assert.Equal(t, pk, inst.PublicKey())
	// the detached public key keeps working
	op := pk.NewEncoding()
	op.SetUint(0)
	require.NoError(t, pk.Encode(op, op, 1, true, nil))
	ext, err := pk.Extract(op)
	require.NoError(t, err)
	assert.True(t, ext.IsZero())

	inst.Clear(false)
	assert.Nil(t, inst.PublicKey())
	assert.Nil(t, pk.PZT)
	_, err = pk.Extract(op)
	assert.ErrorIs(t, err, internal.ErrMalformedPubKey)
}

func TestInstance_Deterministic(t *testing.T) {
	inst1, err := ggh.New(16, 2, 0x3, ggh.FlagDefault, entropy(t, "same"))
	require.NoError(t, err)
	inst2, err := ggh.New(16, 2, 0x3, ggh.FlagDefault, entropy(t, "same"))
	require.NoError(t, err)
	inst3, err := ggh.New(16, 2, 0x3, ggh.FlagDefault, entropy(t, "different"))
	require.NoError(t, err)

	assert.True(t, cmp.Equal(inst1.PublicKey(), inst2.PublicKey(), bigComparer))
	assert.False(t, cmp.Equal(inst1.PublicKey(), inst3.PublicKey(), bigComparer))
}
