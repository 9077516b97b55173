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
	"v.io/x/lib/vlog"
)

// Instance is a GGH-lite instance: the public key together with the
// secret trapdoor used to derive it.
type Instance struct {
	pk *PublicKey

	g    data.Vector
	gInv data.Vector
	z    data.Vector
	zInv data.Vector
	a    data.Vector
	h    data.Vector
}

// New derives the parameters for lambda, kappa and rerandMask and
// generates a fresh instance using entropy.
func New(lambda, kappa int, rerandMask uint64, flags Flag, entropy io.Reader) (*Instance, error) {
	return InitInstance(InitParams(lambda, kappa, rerandMask, flags), entropy)
}

// InitInstance samples the secrets of a new instance for the
// parameters in pk and fills in the public elements of pk: the
// level-1 encoding of one y, the zero-testing parameter p_zt and
// the rerandomization elements of every level flagged in the mask.
//
// It returns an error if pk was not produced by InitParams with
// positive lambda and kappa, or if reading from entropy fails.
func InitInstance(pk *PublicKey, entropy io.Reader) (*Instance, error) {
	if pk == nil || pk.Q == nil || pk.Lambda < 1 || pk.Kappa < 1 {
		return nil, internal.ErrMalformedPubKey
	}
	q := pk.Q
	inst := &Instance{pk: pk}

	var err error
	var tries int
	for inst.gInv == nil {
		tries++
		inst.g, err = data.NewRandomVector(pk.N, sample.NewNormalWidth(pk.Sigma, entropy))
		if err != nil {
			return nil, errors.Wrap(err, "error sampling g")
		}
		inst.gInv, _ = inst.g.InvertAsPolyInRing(q)
	}
	pk.logf("ggh: sampled invertible g after %d attempts", tries)

	uniform := sample.NewUniform(q, entropy)
	for inst.zInv == nil {
		inst.z, err = data.NewRandomVector(pk.N, uniform)
		if err != nil {
			return nil, errors.Wrap(err, "error sampling z")
		}
		inst.zInv, _ = inst.z.InvertAsPolyInRing(q)
	}
	pk.logf("ggh: sampled invertible z")

	inst.a, err = data.NewRandomVector(pk.N, sample.NewNormalWidth(pk.SigmaP, entropy))
	if err != nil {
		return nil, errors.Wrap(err, "error sampling a")
	}
	inst.h, err = data.NewRandomVector(pk.N, sample.NewNormalWidth(pk.SigmaH, entropy))
	if err != nil {
		return nil, errors.Wrap(err, "error sampling h")
	}

	// y = (1 + a*g) / z
	ag, err := inst.a.MulAsPolyInRing(inst.g)
	if err != nil {
		return nil, err
	}
	ag[0].Add(ag[0], big.NewInt(1))
	if pk.Y, err = ag.MulAsPolyInRingMod(inst.zInv, q); err != nil {
		return nil, err
	}

	// p_zt = h * z^kappa / g
	zKappa, err := inst.z.PowAsPolyInRingMod(pk.Kappa, q)
	if err != nil {
		return nil, err
	}
	pzt, err := inst.h.MulAsPolyInRingMod(zKappa, q)
	if err != nil {
		return nil, err
	}
	if pk.PZT, err = pzt.MulAsPolyInRingMod(inst.gInv, q); err != nil {
		return nil, err
	}
	pk.logf("ggh: computed y and p_zt")

	pk.X = make([][]data.Vector, pk.Kappa)
	zInvK := data.NewConstantPoly(pk.N, big.NewInt(1))
	for k := 1; k <= pk.Kappa; k++ {
		if zInvK, err = zInvK.MulAsPolyInRingMod(inst.zInv, q); err != nil {
			return nil, err
		}
		if !pk.hasRerandLevel(k) {
			continue
		}
		// x_{k,j} = b_{k,j} * g / z^k
		gzk, err := inst.g.MulAsPolyInRingMod(zInvK, q)
		if err != nil {
			return nil, err
		}
		pair := make([]data.Vector, 2)
		for j := range pair {
			b, err := data.NewRandomVector(pk.N, sample.NewNormalWidth(pk.SigmaP, entropy))
			if err != nil {
				return nil, errors.Wrapf(err, "error sampling rerandomization element for level %d", k)
			}
			if pair[j], err = b.MulAsPolyInRingMod(gzk, q); err != nil {
				return nil, err
			}
		}
		pk.X[k-1] = pair
		pk.logf("ggh: sampled rerandomization elements for level %d", k)
	}

	return inst, nil
}

// PublicKey returns the public key of the instance. The key remains
// valid after the instance is cleared with Clear(true), and is nil
// after Clear(false).
func (inst *Instance) PublicKey() *PublicKey {
	return inst.pk
}

// Clear destroys the secrets of the instance. Unless keepPK is set,
// the public key is cleared as well.
func (inst *Instance) Clear(keepPK bool) {
	for _, v := range []data.Vector{inst.g, inst.gInv, inst.z, inst.zInv, inst.a, inst.h} {
		v.Clear()
	}
	inst.g, inst.gInv, inst.z, inst.zInv, inst.a, inst.h = nil, nil, nil, nil, nil, nil
	if !keepPK && inst.pk != nil {
		inst.pk.Clear()
		inst.pk = nil
	}
}

// Clear destroys the public elements of pk. The numeric parameters
// are kept.
func (pk *PublicKey) Clear() {
	pk.Y.Clear()
	pk.PZT.Clear()
	for _, pair := range pk.X {
		for _, x := range pair {
			x.Clear()
		}
	}
	pk.Y, pk.PZT, pk.X = nil, nil, nil
}

// hasRerandLevel reports whether bit k-1 of the rerandomization mask
// is set.
func (pk *PublicKey) hasRerandLevel(k int) bool {
	return k >= 1 && k <= 64 && pk.RerandMask&(uint64(1)<<uint(k-1)) != 0
}

func (pk *PublicKey) logf(format string, args ...interface{}) {
	if pk.Flags&FlagVerbose != 0 {
		vlog.Infof(format, args...)
	}
}
