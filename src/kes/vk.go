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

// go/src/kes/vk.go
package kes

import "fmt"

// SerializeVerificationKey returns the raw 32-byte wire form of vk. The
// same layout is used at every depth of the tower.
func SerializeVerificationKey(vk VerificationKey) []byte {
	return vk.Bytes()
}

// DeserializeVerificationKey parses a verification key from its raw wire
// form. It fails with ErrMalformedInput if b is not exactly
// VerificationKeySize bytes.
func DeserializeVerificationKey(b []byte) (VerificationKey, error) {
	var vk VerificationKey
	if len(b) != VerificationKeySize {
		return vk, fmt.Errorf("%w: verification key: expected %d bytes, got %d", ErrMalformedInput, VerificationKeySize, len(b))
	}
	copy(vk[:], b)
	return vk, nil
}
