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

// go/src/kes/period.go
package kes

// Period identifies a time slot within a KES instance's lifetime. Periods
// are numbered 0..TotalPeriods()-1.
type Period = uint64

// Context is the unit parameter threaded through Sign, Verify and
// UpdateKey. No layer in this tower inspects it; it exists purely for
// forward compatibility with a future application-level context.
type Context struct{}

// VerificationKeySize is the wire size, in bytes, of every verification
// key produced by this package, at every depth. Ed25519 public keys and
// Blake2b-256 digests happen to share this length, so the whole tower
// uses one concrete type for verification keys.
const VerificationKeySize = 32

// VerificationKey is a 32-byte verification key. It is immutable once
// produced and safe to copy.
type VerificationKey [VerificationKeySize]byte

// Bytes returns the verification key as a byte slice.
func (vk VerificationKey) Bytes() []byte {
	out := make([]byte, VerificationKeySize)
	copy(out, vk[:])
	return out
}
