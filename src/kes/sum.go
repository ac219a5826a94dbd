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

// go/src/kes/sum.go
package kes

import (
	"fmt"

	logger "github.com/cardano-kes/go/src/log"
)

// sumSigningKey is one node of the Sum binary tree. It is a tagged union
// of exactly two states, following spec.md's Left(child_sk, right_seed)
// / Right(child_sk) variants: while the left half is active, rightSeed
// holds the undifferentiated seed for the right half and no right
// signing key exists anywhere; once the tree crosses into the right
// half, rightSeed is consumed (zeroized) to derive the right child key
// and is never populated again. The two states can never coexist.
type sumSigningKey struct {
	active    SigningKey
	rightSeed []byte // non-nil only while side == false
	period    Period
	half      Period // number of periods in one half of this node's range
	side      bool   // false = left half active, true = right half active
	vkLeft    VerificationKey
	vkRight   VerificationKey
}

func (k *sumSigningKey) Zeroize() {
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

// sumSignature is a child signature plus both child verification keys
// (left, then right), from which the verifier recomputes this node's
// verification key and picks the on-path key to recurse with.
type sumSignature struct {
	sig     Signature
	vkLeft  VerificationKey
	vkRight VerificationKey
}

func (s *sumSignature) Bytes() []byte {
	child := s.sig.Bytes()
	out := make([]byte, 0, len(child)+2*VerificationKeySize)
	out = append(out, child...)
	out = append(out, s.vkLeft[:]...)
	out = append(out, s.vkRight[:]...)
	return out
}

// sumAlgorithm doubles child's period range by pairing a left half and a
// right half under hash, following the Malkin-Micciancio-Miner
// construction: Sum_{d+1} = Sum(Sum_d).
type sumAlgorithm struct {
	name  string
	child Algorithm
	hash  HashAlgorithm
}

func newSumAlgorithm(name string, child Algorithm, hash HashAlgorithm) Algorithm {
	return &sumAlgorithm{name: name, child: child, hash: hash}
}

func (a *sumAlgorithm) Name() string       { return a.name }
func (a *sumAlgorithm) SeedSize() int      { return a.child.SeedSize() }
func (a *sumAlgorithm) SignatureSize() int { return a.child.SignatureSize() + 2*VerificationKeySize }
func (a *sumAlgorithm) TotalPeriods() Period {
	return 2 * a.child.TotalPeriods()
}

// GenKeyFromSeed splits seed into two child seeds via hash.ExpandSeed.
// The left child signing key is derived and kept active; the right
// half's verification key is computed from a disposable key derived
// from a throwaway copy of the right seed, which is then forgotten,
// while the real rightSeed is retained raw until the tree evolves into
// it (spec.md's Left(child_sk, right_seed) variant).
func (a *sumAlgorithm) GenKeyFromSeed(seed []byte) (SigningKey, error) {
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

	sk := &sumSigningKey{
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

func (a *sumAlgorithm) DeriveVerificationKey(sk SigningKey) (VerificationKey, error) {
	s, ok := sk.(*sumSigningKey)
	if !ok {
		return VerificationKey{}, fmt.Errorf("%w: not a %s signing key", ErrMalformedInput, a.name)
	}
	return a.hash.Combine(s.vkLeft, s.vkRight), nil
}

func (a *sumAlgorithm) Sign(ctx Context, period Period, msg []byte, sk SigningKey) (Signature, error) {
	s, ok := sk.(*sumSigningKey)
	if !ok {
		return nil, fmt.Errorf("%w: not a %s signing key", ErrMalformedInput, a.name)
	}
	if period != s.period {
		return nil, fmt.Errorf("%w: %s: key positioned at %d, asked to sign at %d", ErrInvalidPeriod, a.name, s.period, period)
	}
	if s.active == nil {
		return nil, fmt.Errorf("%w: %s: active child signing key unavailable", ErrInvalidPeriod, a.name)
	}
	childPeriod := period % s.half
	childSig, err := a.child.Sign(ctx, childPeriod, msg, s.active)
	if err != nil {
		return nil, err
	}
	return &sumSignature{sig: childSig, vkLeft: s.vkLeft, vkRight: s.vkRight}, nil
}

// Verify recomputes this node's verification key from the embedded
// sibling keys and checks it against vk, then recurses into the active
// half's child Verify. It never distinguishes a bad leaf signature from
// a bad witness: both surface as ErrInvalidSignature.
func (a *sumAlgorithm) Verify(ctx Context, vk VerificationKey, period Period, msg []byte, sig Signature) error {
	s, ok := sig.(*sumSignature)
	if !ok {
		return fmt.Errorf("%w: not a %s signature", ErrMalformedInput, a.name)
	}
	if period >= a.TotalPeriods() {
		return fmt.Errorf("%w: %s: period %d out of range [0, %d)", ErrInvalidPeriod, a.name, period, a.TotalPeriods())
	}
	if a.hash.Combine(s.vkLeft, s.vkRight) != vk {
		return ErrInvalidSignature
	}
	half := a.child.TotalPeriods()
	childVK := s.vkLeft
	childPeriod := period
	if period >= half {
		childVK = s.vkRight
		childPeriod = period - half
	}
	return a.child.Verify(ctx, childVK, childPeriod, msg, s.sig)
}

// UpdateKey advances sk by one period. Crossing from the left half into
// the right half zeroizes the left child's key, derives the right
// child's key from the retained rightSeed (consuming and zeroizing it
// in the process), and activates it; crossing within a half simply
// evolves the active child in place.
func (a *sumAlgorithm) UpdateKey(ctx Context, sk SigningKey, period Period) (bool, error) {
	s, ok := sk.(*sumSigningKey)
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
		// active child exhausted: cross into the right half
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

func (a *sumAlgorithm) ForgetSigningKey(sk SigningKey) {
	if sk != nil {
		sk.Zeroize()
		logger.Debugf("kes: %s: signing key forgotten", a.name)
	}
}

func (a *sumAlgorithm) SerializeSignature(sig Signature) []byte {
	return sig.Bytes()
}

func (a *sumAlgorithm) DeserializeSignature(b []byte) (Signature, error) {
	if len(b) != a.SignatureSize() {
		return nil, fmt.Errorf("%w: %s signature: expected %d bytes, got %d", ErrMalformedInput, a.name, a.SignatureSize(), len(b))
	}
	childSize := a.child.SignatureSize()
	childSig, err := a.child.DeserializeSignature(b[:childSize])
	if err != nil {
		return nil, err
	}
	var vkLeft, vkRight VerificationKey
	copy(vkLeft[:], b[childSize:childSize+VerificationKeySize])
	copy(vkRight[:], b[childSize+VerificationKeySize:])
	return &sumSignature{sig: childSig, vkLeft: vkLeft, vkRight: vkRight}, nil
}
