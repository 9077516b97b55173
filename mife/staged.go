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
	"encoding/binary"
	"io"

	"github.com/fentec-project/gomife/data"
	"github.com/fentec-project/gomife/ggh"
	"github.com/fentec-project/gomife/internal"
	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v5/utils/sampling"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// EncryptSetup parses msg and derives the cleartext matrices of
// every input position. The results are consumed by EncryptSingle
// and released by EncryptCleanup.
func EncryptSetup(pp *PublicParams, msg *data.F2Matrix) (*CleartextMatrixSet, Partitions, error) {
	if pp.MBP == nil || pp.chain == nil {
		return nil, nil, errors.Wrap(internal.ErrMalformedSpec, "no functionality family bound")
	}
	parts, ok := pp.MBP.Parse(pp, msg)
	if !ok {
		return nil, nil, internal.ErrMalformedInput
	}
	clr, err := pp.MBP.Set(pp, msg, parts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error deriving cleartext matrices")
	}
	if err := pp.checkCleartext(clr); err != nil {
		return nil, nil, err
	}

	return clr, parts, nil
}

// checkCleartext verifies that clr holds the right number of
// matrices for every input position and that consecutive chain
// matrices fit the Kilian dimensions.
func (pp *PublicParams) checkCleartext(clr *CleartextMatrixSet) error {
	if clr == nil || len(clr.Matrices) != pp.NumInputs {
		return errors.Wrap(internal.ErrMalformedSpec, "wrong number of input positions")
	}
	for i, mats := range clr.Matrices {
		if len(mats) != pp.numMatrices[i] {
			return errors.Wrapf(internal.ErrMalformedSpec, "wrong number of matrices for input %d", i)
		}
	}
	last := len(pp.chain) - 1
	for s, pos := range pp.chain {
		m := clr.Matrices[pos.input][pos.local]
		if m.Rows() == 0 || m.Cols() == 0 {
			return errors.Wrapf(internal.ErrMalformedSpec, "empty matrix at chain position %d", s)
		}
		if s > 0 && m.Rows() != pp.kilianDims[s-1] {
			return errors.Wrapf(internal.ErrMalformedSpec, "matrix at chain position %d has %d rows", s, m.Rows())
		}
		if s < last && m.Cols() != pp.kilianDims[s] {
			return errors.Wrapf(internal.ErrMalformedSpec, "matrix at chain position %d has %d columns", s, m.Cols())
		}
	}

	return nil
}

// EncryptSingle masks and encodes the cleartext matrix with the
// given global index. Global indices enumerate the matrices input
// position by input position, and local matrix by local matrix
// within a position.
func EncryptSingle(pp *PublicParams, sk *SecretKey, entropy io.Reader, globalIndex int,
	clr *CleartextMatrixSet, parts Partitions) (EncMatrix, error) {
	input, local, s, err := pp.locate(globalIndex)
	if err != nil {
		return nil, err
	}
	if err := pp.checkSecretKey(sk); err != nil {
		return nil, err
	}
	if len(parts) != pp.NumInputs || len(parts[input]) != pp.numMatrices[input] {
		return nil, errors.Wrap(internal.ErrMalformedInput, "partitions do not match the functionality family")
	}

	masked, err := sk.mask(s, clr.Matrices[input][local])
	if err != nil {
		return nil, errors.Wrapf(err, "error masking matrix %d", globalIndex)
	}

	pk := pp.PK
	rerand := pp.Flags&FlagNoRerand == 0
	enc := make(EncMatrix, masked.Rows())
	for i, row := range masked {
		enc[i] = make([]*ggh.Encoding, len(row))
		for j, c := range row {
			op := pk.NewEncoding()
			pk.SetInt(op, c)
			enc[i][j] = pk.NewEncoding()
			if err := pk.Encode(enc[i][j], op, 1, rerand, entropy); err != nil {
				return nil, errors.Wrapf(err, "error encoding matrix %d", globalIndex)
			}
		}
	}

	return enc, nil
}

// checkSecretKey verifies that sk belongs to pp and still holds a
// Kilian mask for every chain boundary.
func (pp *PublicParams) checkSecretKey(sk *SecretKey) error {
	if pp.PK == nil {
		return internal.ErrMalformedPubKey
	}
	if sk == nil || sk.Instance == nil {
		return internal.ErrMalformedSecKey
	}
	if pp.Flags&FlagNoKilian != 0 {
		return nil
	}
	if len(sk.Kilian) != len(pp.kilianDims) || len(sk.KilianInv) != len(pp.kilianDims) {
		return errors.Wrap(internal.ErrMalformedSecKey, "missing Kilian masks")
	}
	for s, dim := range pp.kilianDims {
		if sk.Kilian[s].Rows() != dim || sk.KilianInv[s].Rows() != dim {
			return errors.Wrapf(internal.ErrMalformedSecKey, "Kilian mask %d is not %dx%d", s, dim, dim)
		}
	}

	return nil
}

// EncryptCleanup releases the cleartext matrices and the partitions
// produced by EncryptSetup.
func EncryptCleanup(pp *PublicParams, clr *CleartextMatrixSet, parts Partitions) {
	if clr != nil {
		clr.Clear()
	}
	for i := range parts {
		parts[i] = nil
	}
}

// IndexEntropy returns a deterministic entropy stream for the given
// global index, keyed by the blake2b hash of seed and the index.
// Streams of different indices are independent.
func IndexEntropy(seed []byte, globalIndex int) (io.Reader, error) {
	buf := make([]byte, len(seed)+8)
	copy(buf, seed)
	binary.BigEndian.PutUint64(buf[len(seed):], uint64(globalIndex))
	key := blake2b.Sum256(buf)

	prng, err := sampling.NewKeyedPRNG(key[:])
	if err != nil {
		return nil, err
	}

	return prng, nil
}

// EncryptParallel encrypts msg like Encrypt, but encodes the
// matrices on at most workers goroutines. The matrix with global
// index idx is encoded with the entropy stream IndexEntropy(seed, idx),
// so the result does not depend on the number of workers.
func EncryptParallel(pp *PublicParams, sk *SecretKey, seed []byte, msg *data.F2Matrix, workers int) (*Ciphertext, error) {
	if workers < 1 {
		workers = 1
	}
	clr, parts, err := EncryptSetup(pp, msg)
	if err != nil {
		return nil, err
	}
	defer EncryptCleanup(pp, clr, parts)

	total := pp.ChainLength()
	results := make([]EncMatrix, total)

	var g errgroup.Group
	g.SetLimit(workers)
	for idx := 0; idx < total; idx++ {
		idx := idx
		g.Go(func() error {
			entropy, err := IndexEntropy(seed, idx)
			if err != nil {
				return err
			}
			m, err := EncryptSingle(pp, sk, entropy, idx, clr, parts)
			if err != nil {
				return err
			}
			results[idx] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ct := pp.newCiphertext()
	for idx, m := range results {
		input, local, _, _ := pp.locate(idx)
		ct.Matrices[input][local] = m
	}

	return ct, nil
}
