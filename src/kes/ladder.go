// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/kes/ladder.go
package kes

// This file builds the exported depth ladder: Single and CompactSingle
// at the leaf, then Sum0Kes..Sum7Kes and CompactSum0Kes..CompactSum7Kes
// by repeated doubling over Blake2b256. SumNKes supports 2^N periods;
// Cardano block production uses Sum6Kes (90 days at one period per
// epoch boundary) and Sum7Kes.

// Single is SingleKES: one period, directly over Ed25519.
var Single Algorithm = newSingleAlgorithm()

// CompactSingle is CompactSingleKES: one period, directly over Ed25519,
// with the verification key embedded in the signature.
var CompactSingle CompactAlgorithm = newCompactSingleAlgorithm()

// Sum0Kes is Sum applied zero times: identical to Single.
var Sum0Kes Algorithm = Single

// Sum1Kes through Sum7Kes double the period count of the previous
// level: Sum{n}Kes supports 2^n periods.
var (
	Sum1Kes = newSumAlgorithm("Sum1Kes", Sum0Kes, Blake2b256)
	Sum2Kes = newSumAlgorithm("Sum2Kes", Sum1Kes, Blake2b256)
	Sum3Kes = newSumAlgorithm("Sum3Kes", Sum2Kes, Blake2b256)
	Sum4Kes = newSumAlgorithm("Sum4Kes", Sum3Kes, Blake2b256)
	Sum5Kes = newSumAlgorithm("Sum5Kes", Sum4Kes, Blake2b256)
	Sum6Kes = newSumAlgorithm("Sum6Kes", Sum5Kes, Blake2b256)
	Sum7Kes = newSumAlgorithm("Sum7Kes", Sum6Kes, Blake2b256)
)

// CompactSum0Kes is CompactSum applied zero times: identical to
// CompactSingle.
var CompactSum0Kes CompactAlgorithm = CompactSingle

// CompactSum1Kes through CompactSum7Kes double the period count of the
// previous level, same as the Sum ladder, but carry only the off-path
// verification key per signature.
var (
	CompactSum1Kes = newCompactSumAlgorithm("CompactSum1Kes", CompactSum0Kes, Blake2b256)
	CompactSum2Kes = newCompactSumAlgorithm("CompactSum2Kes", CompactSum1Kes, Blake2b256)
	CompactSum3Kes = newCompactSumAlgorithm("CompactSum3Kes", CompactSum2Kes, Blake2b256)
	CompactSum4Kes = newCompactSumAlgorithm("CompactSum4Kes", CompactSum3Kes, Blake2b256)
	CompactSum5Kes = newCompactSumAlgorithm("CompactSum5Kes", CompactSum4Kes, Blake2b256)
	CompactSum6Kes = newCompactSumAlgorithm("CompactSum6Kes", CompactSum5Kes, Blake2b256)
	CompactSum7Kes = newCompactSumAlgorithm("CompactSum7Kes", CompactSum6Kes, Blake2b256)
)
