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
	"testing"

	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isShort reports whether all centered coefficients of v are
// bounded by 20*sigma in absolute value.
func isShort(v data.Vector, q, sigma *big.Int) bool {
	bound := new(big.Int).Mul(sigma, big.NewInt(20))
	for _, c := range v {
		if new(big.Int).Abs(internal.CenterMod(c, q)).Cmp(bound) > 0 {
			return false
		}
	}
	return true
}

func TestInitInstance_Relations(t *testing.T) {
	kappa := 3
	pk := InitParams(16, kappa, 0x5, FlagDefault)
	inst, err := InitInstance(pk, nil)
	require.NoError(t, err)
	q := pk.Q

	assert.True(t, isShort(inst.g, q, pk.Sigma))
	assert.True(t, isShort(inst.a, q, pk.SigmaP))

	// y * z = 1 + a*g
	yz, err := pk.Y.MulAsPolyInRingMod(inst.z, q)
	require.NoError(t, err)
	ag, err := inst.a.MulAsPolyInRing(inst.g)
	require.NoError(t, err)
	ag[0].Add(ag[0], big.NewInt(1))
	assert.True(t, yz.Equal(ag.Mod(q)))

	// p_zt * g = h * z^kappa
	pg, err := pk.PZT.MulAsPolyInRingMod(inst.g, q)
	require.NoError(t, err)
	zk, err := inst.z.PowAsPolyInRingMod(kappa, q)
	require.NoError(t, err)
	hz, err := inst.h.MulAsPolyInRingMod(zk, q)
	require.NoError(t, err)
	assert.True(t, pg.Equal(hz))

	// only levels 1 and 3 carry rerandomization elements,
	// x_{k,j} * z^k / g is short
	require.Len(t, pk.X, kappa)
	assert.Nil(t, pk.X[1])
	for _, k := range []int{1, 3} {
		require.Len(t, pk.X[k-1], 2)
		zk, err := inst.z.PowAsPolyInRingMod(k, q)
		require.NoError(t, err)
		for _, x := range pk.X[k-1] {
			b, err := x.MulAsPolyInRingMod(zk, q)
			require.NoError(t, err)
			b, err = b.MulAsPolyInRingMod(inst.gInv, q)
			require.NoError(t, err)
			assert.True(t, isShort(b, q, pk.SigmaP))
		}
	}

	inst.Clear(true)
	assert.Nil(t, inst.g)
	assert.Nil(t, inst.zInv)
	assert.NotNil(t, inst.PublicKey().Y)
}

func TestRerandLevelMask(t *testing.T) {
	pk := &PublicKey{RerandMask: 0x5}
	assert.False(t, pk.hasRerandLevel(0))
	assert.True(t, pk.hasRerandLevel(1))
	assert.False(t, pk.hasRerandLevel(2))
	assert.True(t, pk.hasRerandLevel(3))
	assert.False(t, pk.hasRerandLevel(65))
}
