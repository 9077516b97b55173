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

// Package mife implements multi-input functional encryption for
// functions given as matrix branching programs, built on top of the
// GGH-lite graded encodings of package ggh.
//
// A functionality family is described by an implementation of the
// MBP interface. It tells how many matrices every input position
// contributes to the chain, in which order the matrices are
// multiplied, and how the matrices are derived from a message.
// Encrypting a message produces, for every input position, the
// chain matrices derived from the message, randomized with Kilian
// masks and encoded entry by entry at level 1. Evaluating takes one
// ciphertext per input position, multiplies the matrices of each
// ciphertext's own position in chain order and zero-tests the
// product, so that only the value of the function survives.
//
// The package mife/mbp offers concrete families.
package mife
