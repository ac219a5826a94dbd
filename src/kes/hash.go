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

// go/src/kes/hash.go
package kes

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// HashAlgorithm combines two child verification keys into one parent
// verification key, and splits one seed into two child seeds. Sum and
// CompactSum are parameterized over it; every depth ladder exported by
// this package uses Blake2b256.
type HashAlgorithm interface {
	// OutputSize is the digest length in bytes.
	OutputSize() int

	// Hash returns the digest of data.
	Hash(data []byte) []byte

	// Combine returns H(l || r), the Merkle step that turns two child
	// verification keys into their parent's verification key.
	Combine(l, r VerificationKey) VerificationKey

	// ExpandSeed splits seed into two independent child seeds of
	// OutputSize() bytes each (for Blake2b256 over the 32-byte Ed25519
	// seeds used by every exported ladder, the same length as seed), then
	// zeroizes seed in place: the parent seed is consumed only inside this
	// call.
	ExpandSeed(seed []byte) (left, right []byte)
}

type blake2bHash struct {
	size int
}

// Blake2b224 is Blake2b with a 28-byte digest.
var Blake2b224 HashAlgorithm = blake2bHash{size: 28}

// Blake2b256 is Blake2b with a 32-byte digest. This is the hash used by
// every Sum/CompactSum instance this package exports, matching the
// Cardano wire format.
var Blake2b256 HashAlgorithm = blake2bHash{size: 32}

// Blake2b512 is Blake2b with a 64-byte digest.
var Blake2b512 HashAlgorithm = blake2bHash{size: 64}

func (h blake2bHash) OutputSize() int { return h.size }

func (h blake2bHash) Hash(data []byte) []byte {
	hasher, err := blake2b.New(h.size, nil)
	if err != nil {
		panic(fmt.Sprintf("kes: blake2b-%d: %v", h.size*8, err))
	}
	hasher.Write(data)
	return hasher.Sum(nil)
}

func (h blake2bHash) Combine(l, r VerificationKey) VerificationKey {
	hasher, err := blake2b.New(h.size, nil)
	if err != nil {
		panic(fmt.Sprintf("kes: blake2b-%d: %v", h.size*8, err))
	}
	hasher.Write(l[:])
	hasher.Write(r[:])
	sum := hasher.Sum(nil)
	var vk VerificationKey
	copy(vk[:], sum)
	return vk
}

func (h blake2bHash) ExpandSeed(seed []byte) ([]byte, []byte) {
	tagged := make([]byte, 1+len(seed))
	copy(tagged[1:], seed)
	tagged[0] = 0x01
	left := h.Hash(tagged)
	tagged[0] = 0x02
	right := h.Hash(tagged)
	zeroize(tagged)
	zeroize(seed)
	return left, right
}
