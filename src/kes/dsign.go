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

// go/src/kes/dsign.go
package kes

import (
	"crypto/ed25519"
	"fmt"
)

// dsignAlgorithm is the base single-period signature primitive that
// SingleKES and CompactSingleKES wrap. Ed25519 is the only instance this
// package exports, following the Cardano wire format.
type dsignAlgorithm interface {
	seedSize() int
	signatureSize() int
	genKey(seed []byte) (*ed25519SigningKey, error)
	deriveVerificationKey(sk *ed25519SigningKey) VerificationKey
	sign(sk *ed25519SigningKey, msg []byte) []byte
	verify(vk VerificationKey, msg, sig []byte) error
}

// ed25519SigningKey holds an expanded Ed25519 private key. The wire-level
// signing key is the 32-byte seed; crypto/ed25519 expects the expanded
// 64-byte form for signing, so that is what is kept in memory.
type ed25519SigningKey struct {
	priv ed25519.PrivateKey
}

// Zeroize clears the expanded private key.
func (k *ed25519SigningKey) Zeroize() {
	if k == nil {
		return
	}
	zeroize(k.priv)
}

type ed25519Algorithm struct{}

func (ed25519Algorithm) seedSize() int      { return ed25519.SeedSize }
func (ed25519Algorithm) signatureSize() int { return ed25519.SignatureSize }

func (ed25519Algorithm) genKey(seed []byte) (*ed25519SigningKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: ed25519 seed: expected %d bytes, got %d", ErrInvalidSeedLength, ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	zeroize(seed)
	return &ed25519SigningKey{priv: priv}, nil
}

func (ed25519Algorithm) deriveVerificationKey(sk *ed25519SigningKey) VerificationKey {
	pub, _ := sk.priv.Public().(ed25519.PublicKey)
	var vk VerificationKey
	copy(vk[:], pub)
	return vk
}

func (ed25519Algorithm) sign(sk *ed25519SigningKey, msg []byte) []byte {
	return ed25519.Sign(sk.priv, msg)
}

// verify follows RFC 8032 via crypto/ed25519, which rejects
// non-canonical scalar encodings on every call.
func (ed25519Algorithm) verify(vk VerificationKey, msg, sig []byte) error {
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: ed25519 signature: expected %d bytes, got %d", ErrMalformedInput, ed25519.SignatureSize, len(sig))
	}
	if !ed25519.Verify(ed25519.PublicKey(vk[:]), msg, sig) {
		return ErrInvalidSignature
	}
	return nil
}
