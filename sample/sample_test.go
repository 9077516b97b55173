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

package sample_test

import (
	"math/big"
	"testing"

	"github.com/fentec-project/gomife/sample"
	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v5/utils/sampling"
)

type paramBounds struct {
	meanLow, meanHigh, varLow, varHigh float64
}

// testNormalSampler draws a batch of samples and checks that
// their mean and variance fall within the expected bounds.
func testNormalSampler(t *testing.T, s sample.Sampler, expect paramBounds) {
	values := make([]float64, 20000)
	for i := range values {
		v, err := s.Sample()
		require.NoError(t, err)
		values[i], _ = new(big.Float).SetInt(v).Float64()
	}

	me, err := stats.Mean(values)
	require.NoError(t, err)
	v, err := stats.Variance(values)
	require.NoError(t, err)

	assert.True(t, me >= expect.meanLow, "mean value of the normal distribution is too low")
	assert.True(t, me <= expect.meanHigh, "mean value of the normal distribution is too high")
	assert.True(t, v >= expect.varLow, "variance of the normal distribution is too low")
	assert.True(t, v <= expect.varHigh, "variance of the normal distribution is too high")
}

func keyedSource(t *testing.T, key string) *sampling.KeyedPRNG {
	prng, err := sampling.NewKeyedPRNG([]byte(key))
	require.NoError(t, err)
	return prng
}

func TestNormalCDT(t *testing.T) {
	testNormalSampler(t, sample.NewNormalCDT(nil), paramBounds{
		meanLow:  0,
		meanHigh: 2,
		varLow:   0,
		varHigh:  2,
	})
}

func TestNormalDoubleConstant(t *testing.T) {
	sigmaCDTSquare := 0.84932180028801904272150283410
	sigmaCDTSquare *= sigmaCDTSquare
	var tests = []struct {
		k      *big.Int
		name   string
		expect paramBounds
	}{
		{
			name: "sigma= 1 * sqrt(1/(2*ln(2)))",
			k:    big.NewInt(1),
			expect: paramBounds{
				meanLow:  -0.1,
				meanHigh: 0.1,
				varLow:   0.9 * sigmaCDTSquare,
				varHigh:  1.1 * sigmaCDTSquare,
			},
		},
		{
			name: "sigma= 10 * sqrt(1/(2*ln(2)))",
			k:    big.NewInt(10),
			expect: paramBounds{
				meanLow:  -1,
				meanHigh: 1,
				varLow:   90 * sigmaCDTSquare,
				varHigh:  110 * sigmaCDTSquare,
			},
		},
		{
			name: "sigma= 1000 * sqrt(1/(2*ln(2)))",
			k:    big.NewInt(1000),
			expect: paramBounds{
				meanLow:  -100,
				meanHigh: 100,
				varLow:   900000 * sigmaCDTSquare,
				varHigh:  1100000 * sigmaCDTSquare,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			testNormalSampler(t, sample.NewNormalDoubleConstant(test.k, nil), test.expect)
		})
	}
}

func TestNormalWidth(t *testing.T) {
	k := sample.WidthMultiple(big.NewInt(100))
	// 100 / 0.8493... = 117.7...
	assert.Equal(t, int64(118), k.Int64())
	assert.Equal(t, int64(1), sample.WidthMultiple(big.NewInt(0)).Int64())

	testNormalSampler(t, sample.NewNormalWidth(big.NewInt(100), nil), paramBounds{
		meanLow:  -5,
		meanHigh: 5,
		varLow:   9000,
		varHigh:  11000,
	})
}

func TestNormalDoubleConstant_Deterministic(t *testing.T) {
	s1 := sample.NewNormalWidth(big.NewInt(1<<40), keyedSource(t, "seed"))
	s2 := sample.NewNormalWidth(big.NewInt(1<<40), keyedSource(t, "seed"))
	s3 := sample.NewNormalWidth(big.NewInt(1<<40), keyedSource(t, "other seed"))

	same := true
	for i := 0; i < 50; i++ {
		a, err := s1.Sample()
		require.NoError(t, err)
		b, err := s2.Sample()
		require.NoError(t, err)
		c, err := s3.Sample()
		require.NoError(t, err)
		assert.Equal(t, 0, a.Cmp(b), "equal keys must give equal streams")
		same = same && a.Cmp(c) == 0
	}
	assert.False(t, same, "different keys gave equal streams")
}

func TestUniformRange(t *testing.T) {
	min, max := big.NewInt(-3), big.NewInt(4)
	s := sample.NewUniformRange(min, max, keyedSource(t, "uniform"))
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		v, err := s.Sample()
		require.NoError(t, err)
		assert.True(t, v.Cmp(min) >= 0 && v.Cmp(max) < 0, "value out of range: %v", v)
		seen[v.Int64()] = true
	}
	assert.Len(t, seen, 7)
}
