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

// go/src/kes/compact_sum.go
package kes

import (
	"fmt"

	logger "github.com/cardano-kes/go/src/log"
)

// compactSumSigningKey mirrors sumSigningKey exactly, including the
// Left(child_sk, right_seed) / Right(child_sk) tagged-union invariant:
// CompactSum's space saving is entirely on the wire, not in the
// in-memory representation.
type compactSumSigningKey struct {
	active    SigningKey
	rightSeed []byte // non-nil only while side == false
	period    Period
	half      Period
	side      bool
	vkLeft    VerificationKey
	vkRight   VerificationKey
}

func (k *compactSumSigningKey) Zeroize() {
	if k == nil {
		return
	}
	if k.active != nil {
		k.active.Zeroize()
		k.active = nil
	}
	if k.rightSeed != nil {
		zeroize(k.rightSeed)
		k.rightSeed = nil
	}
}

// compactSumSignature carries only the off-path sibling verification
// key; the on-path key is recovered from the child signature itself via
// ActiveVerificationKeyFromSignature, which is why child must be a
// CompactAlgorithm.
type compactSumSignature struct {
	sig Signature
	off VerificationKey
}

func (s *compactSumSignature) Bytes() []byte {
	child := s.sig.Bytes()
	out := make([]byte, 0, len(child)+VerificationKeySize)
	out = append(out, child...)
	out = append(out, s.off[:]...)
	return out
}

// compactSumAlgorithm is CompactSum: the same binary doubling as Sum, but
// over a CompactAlgorithm child and carrying only the off-path half of
// each signature.
type compactSumAlgorithm struct {
	name  string
	child CompactAlgorithm
	hash  HashAlgorithm
}

func newCompactSumAlgorithm(name string, child CompactAlgorithm, hash HashAlgorithm) CompactAlgorithm {
	return &compactSumAlgorithm{name: name, child: child, hash: hash}
}

func (a *compactSumAlgorithm) Name() string       { return a.name }
func (a *compactSumAlgorithm) SeedSize() int      { return a.child.SeedSize() }
func (a *compactSumAlgorithm) SignatureSize() int { return a.child.SignatureSize() + VerificationKeySize }
func (a *compactSumAlgorithm) TotalPeriods() Period {
	return 2 * a.child.TotalPeriods()
}

func (a *compactSumAlgorithm) GenKeyFromSeed(seed []byte) (SigningKey, error) {
	if len(seed) != a.SeedSize() {
		return nil, fmt.Errorf("%w: %s seed: expected %d bytes, got %d", ErrInvalidSeedLength, a.name, a.SeedSize(), len(seed))
	}
	leftSeed, rightSeed := a.hash.ExpandSeed(seed)

	leftChild, err := a.child.GenKeyFromSeed(leftSeed)
	if err != nil {
		return nil, err
	}
	vkLeft, err := a.child.DeriveVerificationKey(leftChild)
	if err != nil {
		return nil, err
	}

	rightSeedCopy := make([]byte, len(rightSeed))
	copy(rightSeedCopy, rightSeed)
	tmpRightChild, err := a.child.GenKeyFromSeed(rightSeed)
	if err != nil {
		return nil, err
	}
	vkRight, err := a.child.DeriveVerificationKey(tmpRightChild)
	if err != nil {
		return nil, err
	}
	a.child.ForgetSigningKey(tmpRightChild)

	sk := &compactSumSigningKey{
		active:    leftChild,
		rightSeed: rightSeedCopy,
		period:    0,
		half:      a.child.TotalPeriods(),
		side:      false,
		vkLeft:    vkLeft,
		vkRight:   vkRight,
	}
	logger.Debugf("kes: %s: generated signing key, periods 0..%d", a.name, a.TotalPeriods())
	return sk, nil
}

func (a *compactSumAlgorithm) DeriveVerificationKey(sk SigningKey) (VerificationKey, error) {
	s, ok := sk.(*compactSumSigningKey)
	if !ok {
		return VerificationKey{}, fmt.Errorf("%w: not a %s signing key", ErrMalformedInput, a.name)
	}
	return a.hash.Combine(s.vkLeft, s.vkRight), nil
}

func (a *compactSumAlgorithm) Sign(ctx Context, period Period, msg []byte, sk SigningKey) (Signature, error) {
	s, ok := sk.(*compactSumSigningKey)
	if !ok {
		return nil, fmt.Errorf("%w: not a %s signing key", ErrMalformedInput, a.name)
	}
	if period != s.period {
		return nil, fmt.Errorf("%w: %s: key positioned at %d, asked to sign at %d", ErrInvalidPeriod, a.name, s.period, period)
	}
	off := s.vkRight
	if s.side {
		off = s.vkLeft
	}
	if s.active == nil {
		return nil, fmt.Errorf("%w: %s: active child signing key unavailable", ErrInvalidPeriod, a.name)
	}
	childPeriod := period % s.half
	childSig, err := a.child.Sign(ctx, childPeriod, msg, s.active)
	if err != nil {
		return nil, err
	}
	return &compactSumSignature{sig: childSig, off: off}, nil
}

// Verify recovers the on-path child verification key from the embedded
// child signature, recombines it with the off-path key carried in sig,
// checks the combination against vk, and recurses into the child
// Verify. A forged off-path key changes the recombination and is caught
// here; a forged on-path key changes what the child signature verifies
// against and is caught by the child.
func (a *compactSumAlgorithm) Verify(ctx Context, vk VerificationKey, period Period, msg []byte, sig Signature) error {
	s, ok := sig.(*compactSumSignature)
	if !ok {
		return fmt.Errorf("%w: not a %s signature", ErrMalformedInput, a.name)
	}
	if period >= a.TotalPeriods() {
		return fmt.Errorf("%w: %s: period %d out of range [0, %d)", ErrInvalidPeriod, a.name, period, a.TotalPeriods())
	}
	half := a.child.TotalPeriods()
	onRight := period >= half
	childPeriod := period
	if onRight {
		childPeriod = period - half
	}
	onPath, err := a.child.ActiveVerificationKeyFromSignature(s.sig, childPeriod)
	if err != nil {
		return err
	}
	var vkLeft, vkRight VerificationKey
	if onRight {
		vkLeft, vkRight = s.off, onPath
	} else {
		vkLeft, vkRight = onPath, s.off
	}
	if a.hash.Combine(vkLeft, vkRight) != vk {
		return ErrInvalidSignature
	}
	return a.child.Verify(ctx, onPath, childPeriod, msg, s.sig)
}

func (a *compactSumAlgorithm) UpdateKey(ctx Context, sk SigningKey, period Period) (bool, error) {
	s, ok := sk.(*compactSumSigningKey)
	if !ok {
		return false, fmt.Errorf("%w: not a %s signing key", ErrMalformedInput, a.name)
	}
	if period != s.period {
		return false, fmt.Errorf("%w: %s: key positioned at %d, asked to update from %d", ErrInvalidPeriod, a.name, s.period, period)
	}
	if period+1 >= a.TotalPeriods() {
		s.Zeroize()
		logger.Debugf("kes: %s: key exhausted at period %d", a.name, period)
		return false, nil
	}

	childPeriod := period % s.half
	ok2, err := a.child.UpdateKey(ctx, s.active, childPeriod)
	if err != nil {
		return false, err
	}
	if !ok2 {
		if s.side {
			return false, fmt.Errorf("%w: %s: right child exhausted before reaching total periods", ErrInvalidPeriod, a.name)
		}
		s.active.Zeroize()
		rightChild, err := a.child.GenKeyFromSeed(s.rightSeed)
		if err != nil {
			return false, err
		}
		s.active = rightChild
		s.rightSeed = nil
		s.side = true
		logger.Debugf("kes: %s: crossed into right half at period %d", a.name, period+1)
	}
	s.period = period + 1
	logger.Debugf("kes: %s: evolved to period %d", a.name, s.period)
	return true, nil
}

func (a *compactSumAlgorithm) ForgetSigningKey(sk SigningKey) {
	if sk != nil {
		sk.Zeroize()
		logger.Debugf("kes: %s: signing key forgotten", a.name)
	}
}

func (a *compactSumAlgorithm) SerializeSignature(sig Signature) []byte {
	return sig.Bytes()
}

func (a *compactSumAlgorithm) DeserializeSignature(b []byte) (Signature, error) {
	if len(b) != a.SignatureSize() {
		return nil, fmt.Errorf("%w: %s signature: expected %d bytes, got %d", ErrMalformedInput, a.name, a.SignatureSize(), len(b))
	}
	childSize := a.child.SignatureSize()
	childSig, err := a.child.DeserializeSignature(b[:childSize])
	if err != nil {
		return nil, err
	}
	var off VerificationKey
	copy(off[:], b[childSize:])
	return &compactSumSignature{sig: childSig, off: off}, nil
}

// ActiveVerificationKeyFromSignature recovers this node's verification
// key at period by recursing: the child recovers its own on-path key
// from sig's embedded child signature, which is combined with sig's
// off-path key in the order period's half dictates.
func (a *compactSumAlgorithm) ActiveVerificationKeyFromSignature(sig Signature, period Period) (VerificationKey, error) {
	s, ok := sig.(*compactSumSignature)
	if !ok {
		return VerificationKey{}, fmt.Errorf("%w: not a %s signature", ErrMalformedInput, a.name)
	}
	half := a.child.TotalPeriods()
	childPeriod := period
	onRight := period >= half
	if onRight {
		childPeriod = period - half
	}
	onPath, err := a.child.ActiveVerificationKeyFromSignature(s.sig, childPeriod)
	if err != nil {
		return VerificationKey{}, err
	}
	if onRight {
		return a.hash.Combine(s.off, onPath), nil
	}
	return a.hash.Combine(onPath, s.off), nil
}
