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

	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/ggh"
	"github.com/fentec-project/gomife/internal"
	"github.com/pkg/errors"
)

// Flag configures the MIFE scheme.
type Flag uint

const (
	// FlagDefault requests no special behavior.
	FlagDefault Flag = 0
	// FlagNoRerand encodes matrix entries without rerandomization.
	FlagNoRerand Flag = 1 << 0
	// FlagNoKilian skips the Kilian randomization of the matrices.
	FlagNoKilian Flag = 1 << 1
	// FlagSimplePartitions assigns one message bit to every matrix
	// in families that support grouping bits.
	FlagSimplePartitions Flag = 1 << 2
)

// chainPos locates a chain matrix: the input position it belongs
// to and its index among the matrices of that position.
type chainPos struct {
	input, local int
}

// PublicParams holds the public parameters of the MIFE scheme.
type PublicParams struct {
	NumInputs int
	Flags     Flag
	// PK is the public key of the underlying graded encoding,
	// available after Setup.
	PK  *ggh.PublicKey
	MBP MBP

	numMatrices []int
	offsets     []int
	chain       []chainPos
	kilianDims  []int
}

// InitParams returns public parameters configured with flags.
// A functionality family must be bound with MBPSet before Setup.
func InitParams(flags Flag) *PublicParams {
	return &PublicParams{Flags: flags}
}

// MBPSet binds the functionality family mbp with numInputs input
// positions to pp. It verifies that the chain ranges of the input
// positions tile the chain and that there is a Kilian dimension for
// every chain boundary.
func MBPSet(pp *PublicParams, numInputs int, mbp MBP) error {
	if numInputs < 1 || mbp == nil {
		return internal.ErrMalformedSpec
	}
	pp.NumInputs = numInputs
	pp.MBP = mbp

	numMatrices := make([]int, numInputs)
	offsets := make([]int, numInputs)
	total := 0
	for i := 0; i < numInputs; i++ {
		numMatrices[i] = mbp.Param(pp, i)
		if numMatrices[i] < 1 {
			return errors.Wrapf(internal.ErrMalformedSpec, "input %d has no matrices", i)
		}
		offsets[i] = total
		total += numMatrices[i]
	}

	chain := make([]chainPos, total)
	filled := make([]bool, total)
	for i := 0; i < numInputs; i++ {
		start, end := mbp.Order(pp, i)
		if start < 0 || end > total || end-start != numMatrices[i] {
			return errors.Wrapf(internal.ErrMalformedSpec, "invalid chain range of input %d", i)
		}
		for s := start; s < end; s++ {
			if filled[s] {
				return errors.Wrapf(internal.ErrMalformedSpec, "chain ranges overlap at %d", s)
			}
			filled[s] = true
			chain[s] = chainPos{input: i, local: s - start}
		}
	}

	kilianDims := mbp.Kilian(pp)
	if len(kilianDims) != total-1 {
		return errors.Wrapf(internal.ErrMalformedSpec, "expected %d Kilian dimensions, got %d", total-1, len(kilianDims))
	}
	for _, d := range kilianDims {
		if d < 1 {
			return errors.Wrap(internal.ErrMalformedSpec, "Kilian dimensions should be positive")
		}
	}

	pp.numMatrices = numMatrices
	pp.offsets = offsets
	pp.chain = chain
	pp.kilianDims = kilianDims

	return nil
}

// ChainLength returns the total number of matrices in the chain.
// It is the multilinearity of the graded encoding and the number of
// global indices accepted by EncryptSingle.
func (pp *PublicParams) ChainLength() int {
	return len(pp.chain)
}

// locate returns the input position, the local index and the chain
// position of the matrix with the given global index.
func (pp *PublicParams) locate(globalIndex int) (input, local, s int, err error) {
	if globalIndex < 0 || globalIndex >= len(pp.chain) {
		return 0, 0, 0, errors.Wrapf(internal.ErrMalformedInput, "global index %d out of range", globalIndex)
	}
	for input+1 < pp.NumInputs && pp.offsets[input+1] <= globalIndex {
		input++
	}
	local = globalIndex - pp.offsets[input]
	start, _ := pp.MBP.Order(pp, input)

	return input, local, start + local, nil
}

// SecretKey is the secret key of the MIFE scheme: the graded
// encoding instance and the Kilian masks with their inverses, one
// pair for every chain boundary.
type SecretKey struct {
	Instance  *ggh.Instance
	Kilian    []data.Matrix
	KilianInv []data.Matrix
}

// Clear destroys the secrets of sk. The public key of pp stays
// usable.
func (sk *SecretKey) Clear() {
	sk.Instance.Clear(true)
	for _, masks := range [][]data.Matrix{sk.Kilian, sk.KilianInv} {
		for _, m := range masks {
			for _, row := range m {
				row.Clear()
			}
		}
	}
	sk.Kilian, sk.KilianInv = nil, nil
}

// Setup samples the Kilian masks and generates a graded encoding
// instance for numInputs inputs at security level lambda. The
// multilinearity equals the chain length, since every chain matrix
// is encoded at level 1. Every level reserves room for the growth of
// the entries caused by the masks. Rerandomization elements are
// generated for level 1 unless FlagNoRerand is set.
func Setup(pp *PublicParams, numInputs, lambda int, gghFlags ggh.Flag, entropy io.Reader) (*SecretKey, error) {
	if pp.MBP == nil || pp.chain == nil {
		return nil, errors.Wrap(internal.ErrMalformedSpec, "no functionality family bound")
	}
	if numInputs != pp.NumInputs {
		return nil, errors.Wrapf(internal.ErrMalformedInput, "expected %d inputs, got %d", pp.NumInputs, numInputs)
	}

	sk := &SecretKey{}
	var err error
	if pp.Flags&FlagNoKilian == 0 {
		sk.Kilian, sk.KilianInv, err = kilian(pp, entropy)
		if err != nil {
			return nil, errors.Wrap(err, "error sampling Kilian masks")
		}
	}

	rerandMask := uint64(1)
	if pp.Flags&FlagNoRerand != 0 {
		rerandMask = 0
	}
	gghPK := ggh.InitParamsWithSlack(lambda, pp.ChainLength(), rerandMask, gghFlags, sk.maskSlack())
	if sk.Instance, err = ggh.InitInstance(gghPK, entropy); err != nil {
		return nil, errors.Wrap(err, "error generating graded encoding instance")
	}
	pp.PK = sk.Instance.PublicKey()

	return sk, nil
}

// Encrypt encrypts msg: for every input position it derives the
// cleartext matrices, masks them and encodes their entries. It is
// equivalent to EncryptSetup, EncryptSingle for every global index
// in increasing order and EncryptCleanup.
func Encrypt(pp *PublicParams, sk *SecretKey, msg *data.F2Matrix, entropy io.Reader) (*Ciphertext, error) {
	clr, parts, err := EncryptSetup(pp, msg)
	if err != nil {
		return nil, err
	}
	defer EncryptCleanup(pp, clr, parts)

	ct := pp.newCiphertext()
	for idx := 0; idx < pp.ChainLength(); idx++ {
		m, err := EncryptSingle(pp, sk, entropy, idx, clr, parts)
		if err != nil {
			return nil, err
		}
		input, local, _, _ := pp.locate(idx)
		ct.Matrices[input][local] = m
	}

	return ct, nil
}

func (pp *PublicParams) newCiphertext() *Ciphertext {
	ct := &Ciphertext{Matrices: make([][]EncMatrix, pp.NumInputs)}
	for i := range ct.Matrices {
		ct.Matrices[i] = make([]EncMatrix, pp.numMatrices[i])
	}

	return ct
}

// Evaluate multiplies, in chain order, the matrices of input
// position i taken from cts[i], zero-tests every entry of the
// product and returns the row-major index of the first nonzero
// entry. It returns -1 if all the entries are zero.
func Evaluate(pp *PublicParams, cts []*Ciphertext) (int, error) {
	if pp.PK == nil {
		return -1, internal.ErrMalformedPubKey
	}
	if len(cts) != pp.NumInputs {
		return -1, errors.Wrapf(internal.ErrMalformedCipher, "expected %d ciphertexts, got %d", pp.NumInputs, len(cts))
	}

	var acc EncMatrix
	for s, pos := range pp.chain {
		ct := cts[pos.input]
		if ct == nil || len(ct.Matrices) != pp.NumInputs || len(ct.Matrices[pos.input]) != pp.numMatrices[pos.input] {
			return -1, internal.ErrMalformedCipher
		}
		m := ct.Matrices[pos.input][pos.local]
		if s == 0 {
			acc = m
			continue
		}
		var err error
		if acc, err = mulEncMatrix(pp.PK, acc, m); err != nil {
			return -1, err
		}
	}

	bits, err := ZTAll(pp, acc)
	if err != nil {
		return -1, err
	}
	defer bits.Free()
	for i := 0; i < bits.Rows(); i++ {
		for j := 0; j < bits.Cols(); j++ {
			if bits.Get(i, j) {
				return i*bits.Cols() + j, nil
			}
		}
	}

	return -1, nil
}

// ZTAll zero-tests every entry of the top-level matrix m. An entry of
// the result is set iff the corresponding encoding is not an encoding
// of zero.
func ZTAll(pp *PublicParams, m EncMatrix) (*data.F2Matrix, error) {
	if pp.PK == nil {
		return nil, internal.ErrMalformedPubKey
	}
	bits, ok := data.NewF2Matrix(m.Rows(), m.Cols())
	if !ok {
		return nil, internal.ErrMalformedCipher
	}
	for i, row := range m {
		if len(row) != m.Cols() {
			return nil, internal.ErrMalformedCipher
		}
		for j, enc := range row {
			ext, err := pp.PK.Extract(enc)
			if err != nil {
				return nil, err
			}
			bits.Set(i, j, !ext.IsZero())
		}
	}

	return bits, nil
}
