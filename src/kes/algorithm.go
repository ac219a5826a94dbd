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

// go/src/kes/algorithm.go
package kes

// SigningKey is the boxed signing key of any KES layer in this package.
// Concrete types are *singleSigningKey (shared by SingleKES and
// CompactSingleKES), *sumSigningKey and *compactSumSigningKey; callers only ever see it
// through the Algorithm interface.
type SigningKey interface {
	Zeroize()
}

// Signature is the boxed signature of any KES layer in this package.
type Signature interface {
	// Bytes returns the canonical wire encoding of the signature.
	Bytes() []byte
}

// RawSignature is a flat byte-string signature: the DSIGN leaf signature
// (64 bytes) or the CompactSingle leaf signature (96 bytes, signature ||
// verification key).
type RawSignature []byte

// Bytes implements Signature.
func (s RawSignature) Bytes() []byte { return []byte(s) }

// Algorithm is the contract every KES layer in this tower implements:
// SingleKES, CompactSingleKES, Sum and CompactSum at every depth. It
// mirrors the KesAlgorithm trait this spec is built from, with a Go
// signing key that is mutated in place by UpdateKey rather than moved.
type Algorithm interface {
	// Name identifies the algorithm, e.g. "Sum6Kes".
	Name() string

	// SeedSize is the required seed length in bytes for GenKeyFromSeed.
	SeedSize() int

	// SignatureSize is the wire size, in bytes, of a signature produced
	// by this algorithm.
	SignatureSize() int

	// TotalPeriods is the number of periods this instance supports.
	TotalPeriods() Period

	// GenKeyFromSeed deterministically derives a signing key from seed.
	// It takes ownership of seed: the bytes are zeroized before this call
	// returns, and callers must not reuse the slice afterward.
	GenKeyFromSeed(seed []byte) (SigningKey, error)

	// DeriveVerificationKey returns the verification key for sk. The
	// result is the same for every period sk evolves through.
	DeriveVerificationKey(sk SigningKey) (VerificationKey, error)

	// Sign produces a signature over msg at period, under sk. sk must
	// currently be positioned at period (see UpdateKey).
	Sign(ctx Context, period Period, msg []byte, sk SigningKey) (Signature, error)

	// Verify checks that sig is a valid signature over msg at period,
	// under vk. It never distinguishes a bad leaf signature from a bad
	// Merkle witness; both report ErrInvalidSignature.
	Verify(ctx Context, vk VerificationKey, period Period, msg []byte, sig Signature) error

	// UpdateKey evolves sk from period to period+1 in place. It reports
	// ok=false with a nil error once sk has reached its last period (sk
	// is zeroized in that case); it reports an error if sk is not
	// currently positioned at period.
	UpdateKey(ctx Context, sk SigningKey, period Period) (ok bool, err error)

	// ForgetSigningKey zeroizes sk. It is safe to call on a key that has
	// already been exhausted by UpdateKey.
	ForgetSigningKey(sk SigningKey)

	// SerializeSignature returns the canonical wire encoding of sig.
	SerializeSignature(sig Signature) []byte

	// DeserializeSignature parses a signature from its wire encoding. It
	// fails with ErrMalformedInput if b is not exactly SignatureSize()
	// bytes or cannot be decomposed into the expected structure.
	DeserializeSignature(b []byte) (Signature, error)
}

// CompactAlgorithm is an Algorithm whose signatures embed enough
// information for a verifier to recover the active verification key of
// a period directly from the signature. CompactSingleKES and every
// CompactSum built over it satisfy this; plain Single/Sum never need to.
type CompactAlgorithm interface {
	Algorithm

	// ActiveVerificationKeyFromSignature recovers the verification key
	// that was active for period when sig was produced.
	ActiveVerificationKeyFromSignature(sig Signature, period Period) (VerificationKey, error)
}
