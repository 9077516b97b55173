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

// Package ggh implements the GGH-lite graded encoding scheme.
//
// Encodings are elements of the ring R_q = Z_q[x]/(x^n+1) tagged with
// a level between 0 and kappa. A level-k encoding of a short element e
// has the form (e + g*r)/z^k, where the short generator g and the
// uniform denominator z are kept secret by the Instance. Encodings of
// equal level can be added, encodings of levels k1 and k2 multiply
// into an encoding of level k1+k2, and encodings at level kappa can
// be zero-tested and turned into a canonical string with Extract.
//
// The scheme follows "GGHLite: More Efficient Multilinear Maps from
// Ideal Lattices" by A. Langlois, D. Stehlé and R. Steinfeld
// (https://eprint.iacr.org/2014/487.pdf).
//
// A typical use runs the three steps of the scheme:
//	pk := ggh.InitParams(lambda, kappa, rerandMask, ggh.FlagDefault)
//	inst, err := ggh.InitInstance(pk, entropy)
//	...
//	inst.Clear(true) // forget the secrets, keep using pk
//
// All randomized operations read from an entropy source given as an
// io.Reader. Passing nil uses crypto/rand.
package ggh
