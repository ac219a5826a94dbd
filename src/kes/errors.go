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

// go/src/kes/errors.go
package kes

import "errors"

// Sentinel error kinds. Every fallible operation in this package returns
// one of these, optionally wrapped with fmt.Errorf("%w: ...") for context.
// Callers should match with errors.Is, never on the wrapped message text.
var (
	// ErrInvalidSeedLength is returned when a seed's length does not match
	// the algorithm's declared seed size.
	ErrInvalidSeedLength = errors.New("kes: invalid seed length")

	// ErrInvalidPeriod is returned when a period is out of range for an
	// instance, or when a signing key is not in a state that can sign or
	// evolve at the requested period.
	ErrInvalidPeriod = errors.New("kes: invalid period")

	// ErrInvalidSignature is returned when cryptographic verification
	// fails: a bad Ed25519 signature, a Merkle hash mismatch, or a
	// CompactSingle embedded verification key that differs from the one
	// supplied. A signature of the wrong length is ErrMalformedInput.
	ErrInvalidSignature = errors.New("kes: invalid signature")

	// ErrMalformedInput is returned when a byte string presented as a
	// verification key or signature cannot be parsed into the expected
	// structure.
	ErrMalformedInput = errors.New("kes: malformed input")
)
