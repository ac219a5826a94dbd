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

// go/src/kes/compact_single.go
package kes

import "fmt"

// compactSingleAlgorithm is CompactSingleKES: identical to SingleKES
// except the signature also embeds the verification key, which is what
// lets CompactSum recover a leaf's on-path verification key from the
// signature alone instead of carrying it separately.
type compactSingleAlgorithm struct {
	name  string
	dsign dsignAlgorithm
}

func newCompactSingleAlgorithm() CompactAlgorithm {
	return &compactSingleAlgorithm{name: "CompactSingleKes", dsign: ed25519Algorithm{}}
}

func (a *compactSingleAlgorithm) Name() string         { return a.name }
func (a *compactSingleAlgorithm) SeedSize() int        { return a.dsign.seedSize() }
func (a *compactSingleAlgorithm) SignatureSize() int   { return a.dsign.signatureSize() + VerificationKeySize }
func (a *compactSingleAlgorithm) TotalPeriods() Period { return 1 }

func (a *compactSingleAlgorithm) GenKeyFromSeed(seed []byte) (SigningKey, error) {
	inner, err := a.dsign.genKey(seed)
	if err != nil {
		return nil, err
	}
	return &singleSigningKey{inner: inner}, nil
}

func (a *compactSingleAlgorithm) DeriveVerificationKey(sk SigningKey) (VerificationKey, error) {
	s, ok := sk.(*singleSigningKey)
	if !ok || s.inner == nil {
		return VerificationKey{}, fmt.Errorf("%w: not a CompactSingleKes signing key", ErrMalformedInput)
	}
	return a.dsign.deriveVerificationKey(s.inner), nil
}

// Sign embeds the signer's verification key after the raw DSIGN
// signature: sig = dsign_sig || vk.
func (a *compactSingleAlgorithm) Sign(_ Context, period Period, msg []byte, sk SigningKey) (Signature, error) {
	s, ok := sk.(*singleSigningKey)
	if !ok || s.consumed || s.inner == nil {
		return nil, fmt.Errorf("%w: CompactSingleKes: key not active", ErrInvalidPeriod)
	}
	if period != 0 {
		return nil, fmt.Errorf("%w: CompactSingleKes: period %d out of range [0, 1)", ErrInvalidPeriod, period)
	}
	raw := a.dsign.sign(s.inner, msg)
	vk := a.dsign.deriveVerificationKey(s.inner)
	out := make([]byte, 0, a.SignatureSize())
	out = append(out, raw...)
	out = append(out, vk[:]...)
	return RawSignature(out), nil
}

// Verify checks that the embedded verification key matches vk before
// delegating to the DSIGN verifier.
func (a *compactSingleAlgorithm) Verify(_ Context, vk VerificationKey, period Period, msg []byte, sig Signature) error {
	if period != 0 {
		return fmt.Errorf("%w: CompactSingleKes: period %d out of range [0, 1)", ErrInvalidPeriod, period)
	}
	raw, ok := sig.(RawSignature)
	if !ok || len(raw) != a.SignatureSize() {
		return fmt.Errorf("%w: not a CompactSingleKes signature", ErrMalformedInput)
	}
	sigBytes := raw[:a.dsign.signatureSize()]
	var embedded VerificationKey
	copy(embedded[:], raw[a.dsign.signatureSize():])
	if embedded != vk {
		return ErrInvalidSignature
	}
	return a.dsign.verify(vk, msg, sigBytes)
}

func (a *compactSingleAlgorithm) UpdateKey(_ Context, sk SigningKey, period Period) (bool, error) {
	s, ok := sk.(*singleSigningKey)
	if !ok {
		return false, fmt.Errorf("%w: not a CompactSingleKes signing key", ErrMalformedInput)
	}
	if period != 0 {
		return false, fmt.Errorf("%w: CompactSingleKes: key positioned at 0, asked to update from %d", ErrInvalidPeriod, period)
	}
	s.Zeroize()
	return false, nil
}

func (a *compactSingleAlgorithm) ForgetSigningKey(sk SigningKey) {
	if sk != nil {
		sk.Zeroize()
	}
}

func (a *compactSingleAlgorithm) SerializeSignature(sig Signature) []byte {
	return sig.Bytes()
}

func (a *compactSingleAlgorithm) DeserializeSignature(b []byte) (Signature, error) {
	if len(b) != a.SignatureSize() {
		return nil, fmt.Errorf("%w: CompactSingleKes signature: expected %d bytes, got %d", ErrMalformedInput, a.SignatureSize(), len(b))
	}
	out := make([]byte, len(b))
	copy(out, b)
	return RawSignature(out), nil
}

// ActiveVerificationKeyFromSignature extracts the verification key
// embedded in sig. period is accepted for interface symmetry with the
// recursive CompactSum case but is not otherwise used at the leaf.
func (a *compactSingleAlgorithm) ActiveVerificationKeyFromSignature(sig Signature, _ Period) (VerificationKey, error) {
	raw, ok := sig.(RawSignature)
	if !ok || len(raw) != a.SignatureSize() {
		return VerificationKey{}, fmt.Errorf("%w: not a CompactSingleKes signature", ErrMalformedInput)
	}
	var vk VerificationKey
	copy(vk[:], raw[a.dsign.signatureSize():])
	return vk, nil
}
