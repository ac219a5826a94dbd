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

// go/src/kes/single.go
package kes

import "fmt"

// singleSigningKey wraps one DSIGN signing key. It supports exactly one
// period (0) and is exhausted by a single UpdateKey call.
type singleSigningKey struct {
	inner    *ed25519SigningKey
	consumed bool
}

// Zeroize implements SigningKey.
func (k *singleSigningKey) Zeroize() {
	if k.inner != nil {
		k.inner.Zeroize()
	}
	k.consumed = true
}

// singleAlgorithm is SingleKES: a thin wrapper turning a DSIGN scheme
// into a one-period KES.
type singleAlgorithm struct {
	name  string
	dsign dsignAlgorithm
}

func newSingleAlgorithm() Algorithm {
	return &singleAlgorithm{name: "SingleKes", dsign: ed25519Algorithm{}}
}

func (a *singleAlgorithm) Name() string         { return a.name }
func (a *singleAlgorithm) SeedSize() int        { return a.dsign.seedSize() }
func (a *singleAlgorithm) SignatureSize() int   { return a.dsign.signatureSize() }
func (a *singleAlgorithm) TotalPeriods() Period { return 1 }

func (a *singleAlgorithm) GenKeyFromSeed(seed []byte) (SigningKey, error) {
	inner, err := a.dsign.genKey(seed)
	if err != nil {
		return nil, err
	}
	return &singleSigningKey{inner: inner}, nil
}

func (a *singleAlgorithm) DeriveVerificationKey(sk SigningKey) (VerificationKey, error) {
	s, ok := sk.(*singleSigningKey)
	if !ok || s.inner == nil {
		return VerificationKey{}, fmt.Errorf("%w: not a SingleKes signing key", ErrMalformedInput)
	}
	return a.dsign.deriveVerificationKey(s.inner), nil
}

func (a *singleAlgorithm) Sign(_ Context, period Period, msg []byte, sk SigningKey) (Signature, error) {
	s, ok := sk.(*singleSigningKey)
	if !ok || s.consumed || s.inner == nil {
		return nil, fmt.Errorf("%w: SingleKes: key not active", ErrInvalidPeriod)
	}
	if period != 0 {
		return nil, fmt.Errorf("%w: SingleKes: period %d out of range [0, 1)", ErrInvalidPeriod, period)
	}
	return RawSignature(a.dsign.sign(s.inner, msg)), nil
}

func (a *singleAlgorithm) Verify(_ Context, vk VerificationKey, period Period, msg []byte, sig Signature) error {
	if period != 0 {
		return fmt.Errorf("%w: SingleKes: period %d out of range [0, 1)", ErrInvalidPeriod, period)
	}
	raw, ok := sig.(RawSignature)
	if !ok {
		return fmt.Errorf("%w: not a SingleKes signature", ErrMalformedInput)
	}
	return a.dsign.verify(vk, msg, raw)
}

// UpdateKey exhausts a SingleKES key positioned at period 0: there is no
// period beyond 0.
func (a *singleAlgorithm) UpdateKey(_ Context, sk SigningKey, period Period) (bool, error) {
	s, ok := sk.(*singleSigningKey)
	if !ok {
		return false, fmt.Errorf("%w: not a SingleKes signing key", ErrMalformedInput)
	}
	if period != 0 {
		return false, fmt.Errorf("%w: SingleKes: key positioned at 0, asked to update from %d", ErrInvalidPeriod, period)
	}
	s.Zeroize()
	return false, nil
}

func (a *singleAlgorithm) ForgetSigningKey(sk SigningKey) {
	if sk != nil {
		sk.Zeroize()
	}
}

func (a *singleAlgorithm) SerializeSignature(sig Signature) []byte {
	return sig.Bytes()
}

func (a *singleAlgorithm) DeserializeSignature(b []byte) (Signature, error) {
	if len(b) != a.SignatureSize() {
		return nil, fmt.Errorf("%w: SingleKes signature: expected %d bytes, got %d", ErrMalformedInput, a.SignatureSize(), len(b))
	}
	out := make([]byte, len(b))
	copy(out, b)
	return RawSignature(out), nil
}
