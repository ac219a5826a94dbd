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

package kes

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// algorithms under test, from the leaf up through the first few Sum and
// CompactSum depths. Higher depths are exercised by TestLadderTotalPeriods,
// TestSignatureSizeAtEveryDepth and TestSum6FullPeriodWalk without running
// a full sign/verify cycle per depth here, which would cost 2^n signatures
// at the top of the ladder.
func algorithmsUnderTest() []Algorithm {
	return []Algorithm{
		Single,
		CompactSingle,
		Sum1Kes,
		Sum2Kes,
		Sum3Kes,
		CompactSum1Kes,
		CompactSum2Kes,
		CompactSum3Kes,
	}
}

func randomSeed(t *testing.T, n int) []byte {
	t.Helper()
	seed := make([]byte, n)
	if _, err := rand.Read(seed); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return seed
}

// TestSignVerifyRoundTrip covers I1: a signature produced at period p
// under sk verifies against sk's verification key at period p, for
// every period across the key's lifetime.
func TestSignVerifyRoundTrip(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			vk, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			var period Period
			for period = 0; period < a.TotalPeriods(); period++ {
				msg := []byte("block header at some period")
				sig, err := a.Sign(Context{}, period, msg, sk)
				if err != nil {
					t.Fatalf("Sign(period=%d): %v", period, err)
				}
				if err := a.Verify(Context{}, vk, period, msg, sig); err != nil {
					t.Errorf("Verify(period=%d): %v", period, err)
				}

				if period+1 < a.TotalPeriods() {
					ok, err := a.UpdateKey(Context{}, sk, period)
					if err != nil {
						t.Fatalf("UpdateKey(period=%d): %v", period, err)
					}
					if !ok {
						t.Fatalf("UpdateKey(period=%d): reported exhausted before reaching TotalPeriods=%d", period, a.TotalPeriods())
					}
				}
			}

			ok, err := a.UpdateKey(Context{}, sk, period-1)
			if err == nil && ok {
				t.Errorf("UpdateKey at final period: got ok=true, want ok=false (exhausted)")
			}
		})
	}
}

// TestVerificationKeyStableAcrossEvolution covers I2: DeriveVerificationKey
// returns the same value no matter which period sk is currently
// positioned at.
func TestVerificationKeyStableAcrossEvolution(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		if a.TotalPeriods() < 2 {
			continue
		}
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			vk0, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			if ok, err := a.UpdateKey(Context{}, sk, 0); err != nil || !ok {
				t.Fatalf("UpdateKey: ok=%v err=%v", ok, err)
			}

			vk1, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey after update: %v", err)
			}
			if vk0 != vk1 {
				t.Errorf("verification key changed across evolution: %x != %x", vk0, vk1)
			}
		})
	}
}

// TestWrongPeriodFails covers I3: a signature produced at period p fails
// to verify at any other period.
func TestWrongPeriodFails(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		if a.TotalPeriods() < 2 {
			continue
		}
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			vk, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			msg := []byte("message for period 0")
			sig, err := a.Sign(Context{}, 0, msg, sk)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			if err := a.Verify(Context{}, vk, 1, msg, sig); err == nil {
				t.Errorf("Verify at wrong period succeeded, want failure")
			}
		})
	}
}

// TestTamperedMessageFails covers I4: a tampered message fails
// verification.
func TestTamperedMessageFails(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			vk, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			msg := []byte("original message")
			sig, err := a.Sign(Context{}, 0, msg, sk)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			tampered := []byte("ORIGINAL message")
			if err := a.Verify(Context{}, vk, 0, tampered, sig); err == nil {
				t.Errorf("Verify of tampered message succeeded, want failure")
			}
			if !errors.Is(a.Verify(Context{}, vk, 0, tampered, sig), ErrInvalidSignature) {
				t.Errorf("Verify of tampered message: error does not wrap ErrInvalidSignature")
			}
		})
	}
}

// TestSignAtVacatedPeriodFails covers Testable Property 3 and scenario
// S2: once UpdateKey has advanced sk past period p, Sign at p must fail
// with ErrInvalidPeriod rather than silently re-signing under a key that
// no longer legitimately occupies that period.
func TestSignAtVacatedPeriodFails(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		if a.TotalPeriods() < 2 {
			continue
		}
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			msg := []byte("message for the vacated period")
			if _, err := a.Sign(Context{}, 0, msg, sk); err != nil {
				t.Fatalf("Sign at period 0 before evolving: %v", err)
			}

			ok, err := a.UpdateKey(Context{}, sk, 0)
			if err != nil || !ok {
				t.Fatalf("UpdateKey(period=0): ok=%v err=%v", ok, err)
			}

			if _, err := a.Sign(Context{}, 0, msg, sk); !errors.Is(err, ErrInvalidPeriod) {
				t.Errorf("Sign at vacated period 0 after evolving: err = %v, want ErrInvalidPeriod", err)
			}
		})
	}
}

// TestForgedVerificationKeyFails covers I5: a signature does not verify
// against a foreign verification key.
func TestForgedVerificationKeyFails(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			seedA := randomSeed(t, a.SeedSize())
			skA, err := a.GenKeyFromSeed(seedA)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(skA)

			seedB := randomSeed(t, a.SeedSize())
			skB, err := a.GenKeyFromSeed(seedB)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(skB)

			vkB, err := a.DeriveVerificationKey(skB)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			msg := []byte("message signed by A")
			sig, err := a.Sign(Context{}, 0, msg, skA)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			if err := a.Verify(Context{}, vkB, 0, msg, sig); err == nil {
				t.Errorf("Verify against foreign verification key succeeded, want failure")
			}
		})
	}
}

// TestSerializeDeserializeSignatureRoundTrip covers I6: the wire
// encoding of a signature round-trips and re-verifies.
func TestSerializeDeserializeSignatureRoundTrip(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			vk, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			msg := []byte("wire format round trip")
			sig, err := a.Sign(Context{}, 0, msg, sk)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			wire := a.SerializeSignature(sig)
			if len(wire) != a.SignatureSize() {
				t.Errorf("SerializeSignature: got %d bytes, want %d", len(wire), a.SignatureSize())
			}

			sig2, err := a.DeserializeSignature(wire)
			if err != nil {
				t.Fatalf("DeserializeSignature: %v", err)
			}
			if err := a.Verify(Context{}, vk, 0, msg, sig2); err != nil {
				t.Errorf("Verify of deserialized signature: %v", err)
			}
			if diff := cmp.Diff(wire, a.SerializeSignature(sig2)); diff != "" {
				t.Errorf("SerializeSignature not idempotent across round trip (-want +got):\n%s", diff)
			}
		})
	}
}

// TestDeserializeSignatureRejectsWrongLength covers I7.
func TestDeserializeSignatureRejectsWrongLength(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			short := make([]byte, a.SignatureSize()-1)
			if _, err := a.DeserializeSignature(short); !errors.Is(err, ErrMalformedInput) {
				t.Errorf("DeserializeSignature(short): err = %v, want ErrMalformedInput", err)
			}
			long := make([]byte, a.SignatureSize()+1)
			if _, err := a.DeserializeSignature(long); !errors.Is(err, ErrMalformedInput) {
				t.Errorf("DeserializeSignature(long): err = %v, want ErrMalformedInput", err)
			}
		})
	}
}

// TestGenKeyFromSeedRejectsWrongLength covers I8.
func TestGenKeyFromSeedRejectsWrongLength(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			short := make([]byte, a.SeedSize()-1)
			if _, err := a.GenKeyFromSeed(short); !errors.Is(err, ErrInvalidSeedLength) {
				t.Errorf("GenKeyFromSeed(short): err = %v, want ErrInvalidSeedLength", err)
			}
		})
	}
}

// TestPeriodOutOfRangeFails covers signing at period TotalPeriods, one
// past the last valid period.
func TestPeriodOutOfRangeFails(t *testing.T) {
	for _, a := range algorithmsUnderTest() {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			_, err = a.Sign(Context{}, a.TotalPeriods(), []byte("x"), sk)
			if !errors.Is(err, ErrInvalidPeriod) {
				t.Errorf("Sign at out-of-range period: err = %v, want ErrInvalidPeriod", err)
			}
		})
	}
}

// TestCompactActiveVerificationKeyMatchesDerive covers the CompactSum
// capability: the verification key recovered from a signature at a
// period matches what DeriveVerificationKey would report for a signing
// key positioned at that period.
func TestCompactActiveVerificationKeyMatchesDerive(t *testing.T) {
	compactAlgorithms := []CompactAlgorithm{CompactSingle, CompactSum1Kes, CompactSum2Kes, CompactSum3Kes}
	for _, a := range compactAlgorithms {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			wantVK, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			var period Period
			for period = 0; period < a.TotalPeriods(); period++ {
				msg := []byte("active vk recovery")
				sig, err := a.Sign(Context{}, period, msg, sk)
				if err != nil {
					t.Fatalf("Sign(period=%d): %v", period, err)
				}
				gotVK, err := a.ActiveVerificationKeyFromSignature(sig, period)
				if err != nil {
					t.Fatalf("ActiveVerificationKeyFromSignature(period=%d): %v", period, err)
				}
				if gotVK != wantVK {
					t.Errorf("ActiveVerificationKeyFromSignature(period=%d) = %x, want %x", period, gotVK, wantVK)
				}

				if period+1 < a.TotalPeriods() {
					if _, err := a.UpdateKey(Context{}, sk, period); err != nil {
						t.Fatalf("UpdateKey(period=%d): %v", period, err)
					}
				}
			}
		})
	}
}

// TestUpdateKeyIsDeterministic covers that evolving two independently
// generated keys from the same seed produces byte-identical signatures
// at every period: forward evolution has no hidden randomness.
func TestUpdateKeyIsDeterministic(t *testing.T) {
	a := Sum3Kes
	seed1 := randomSeed(t, a.SeedSize())
	seed2 := make([]byte, len(seed1))
	copy(seed2, seed1)

	sk1, err := a.GenKeyFromSeed(seed1)
	if err != nil {
		t.Fatalf("GenKeyFromSeed: %v", err)
	}
	defer a.ForgetSigningKey(sk1)
	sk2, err := a.GenKeyFromSeed(seed2)
	if err != nil {
		t.Fatalf("GenKeyFromSeed: %v", err)
	}
	defer a.ForgetSigningKey(sk2)

	vk1, _ := a.DeriveVerificationKey(sk1)
	vk2, _ := a.DeriveVerificationKey(sk2)
	if vk1 != vk2 {
		t.Fatalf("two keys generated from identical seeds produced different verification keys")
	}

	msg := []byte("determinism check")
	var period Period
	for period = 0; period < a.TotalPeriods(); period++ {
		sig1, err := a.Sign(Context{}, period, msg, sk1)
		if err != nil {
			t.Fatalf("Sign sk1(period=%d): %v", period, err)
		}
		sig2, err := a.Sign(Context{}, period, msg, sk2)
		if err != nil {
			t.Fatalf("Sign sk2(period=%d): %v", period, err)
		}
		if !bytes.Equal(a.SerializeSignature(sig1), a.SerializeSignature(sig2)) {
			t.Errorf("signatures at period %d diverge between identically-seeded keys", period)
		}
		if period+1 < a.TotalPeriods() {
			if _, err := a.UpdateKey(Context{}, sk1, period); err != nil {
				t.Fatalf("UpdateKey sk1: %v", err)
			}
			if _, err := a.UpdateKey(Context{}, sk2, period); err != nil {
				t.Fatalf("UpdateKey sk2: %v", err)
			}
		}
	}
}

// TestZeroizeOnForget covers the leaf step that ForgetSigningKey ends in:
// after Zeroize, an ed25519SigningKey's private key bytes read as all
// zero. It calls Zeroize on ed25519SigningKey directly, the one concrete
// type that holds raw secret bytes, rather than going through
// ForgetSigningKey.
func TestZeroizeOnForget(t *testing.T) {
	dsign := ed25519Algorithm{}
	seed := randomSeed(t, dsign.seedSize())
	sk, err := dsign.genKey(seed)
	if err != nil {
		t.Fatalf("genKey: %v", err)
	}
	sk.Zeroize()
	for i, b := range sk.priv {
		if b != 0 {
			t.Fatalf("byte %d of zeroized signing key is %d, want 0", i, b)
		}
	}
}

// TestLadderTotalPeriods covers that SumNKes/CompactSumNKes double the
// period count of their child at every depth.
func TestLadderTotalPeriods(t *testing.T) {
	sumLadder := []Algorithm{Sum0Kes, Sum1Kes, Sum2Kes, Sum3Kes, Sum4Kes, Sum5Kes, Sum6Kes, Sum7Kes}
	for i, a := range sumLadder {
		want := Period(1) << uint(i)
		if a.TotalPeriods() != want {
			t.Errorf("%s.TotalPeriods() = %d, want %d", a.Name(), a.TotalPeriods(), want)
		}
	}

	compactLadder := []CompactAlgorithm{CompactSum0Kes, CompactSum1Kes, CompactSum2Kes, CompactSum3Kes, CompactSum4Kes, CompactSum5Kes, CompactSum6Kes, CompactSum7Kes}
	for i, a := range compactLadder {
		want := Period(1) << uint(i)
		if a.TotalPeriods() != want {
			t.Errorf("%s.TotalPeriods() = %d, want %d", a.Name(), a.TotalPeriods(), want)
		}
	}
}

// TestSignatureSizeAtEveryDepth covers Testable Property 7: a Sum
// signature at depth d is 64+64d bytes (a 64-byte Ed25519 leaf signature
// plus both 32-byte child verification keys per level) and a CompactSum
// signature at depth d is 96+32d bytes (a 96-byte CompactSingle leaf,
// signature plus embedded verification key, plus only the 32-byte
// off-path key per level).
func TestSignatureSizeAtEveryDepth(t *testing.T) {
	sumLadder := []Algorithm{Sum0Kes, Sum1Kes, Sum2Kes, Sum3Kes, Sum4Kes, Sum5Kes, Sum6Kes, Sum7Kes}
	for d, a := range sumLadder {
		want := 64 + 64*d
		if a.SignatureSize() != want {
			t.Errorf("%s.SignatureSize() = %d, want %d", a.Name(), a.SignatureSize(), want)
		}
	}

	compactLadder := []CompactAlgorithm{CompactSum0Kes, CompactSum1Kes, CompactSum2Kes, CompactSum3Kes, CompactSum4Kes, CompactSum5Kes, CompactSum6Kes, CompactSum7Kes}
	for d, a := range compactLadder {
		want := 96 + 32*d
		if a.SignatureSize() != want {
			t.Errorf("%s.SignatureSize() = %d, want %d", a.Name(), a.SignatureSize(), want)
		}
	}
}

// TestSum6FullPeriodWalk covers scenario S3 (a Sum6Kes key signs and
// verifies across all 64 periods, evolving one period at a time, and is
// exhausted exactly at the end) and scenario S6 (CompactSum6Kes's
// signature is 288 bytes against Sum6Kes's 448, at the same depth).
func TestSum6FullPeriodWalk(t *testing.T) {
	if Sum6Kes.SignatureSize() != 448 {
		t.Fatalf("Sum6Kes.SignatureSize() = %d, want 448", Sum6Kes.SignatureSize())
	}
	if CompactSum6Kes.SignatureSize() != 288 {
		t.Fatalf("CompactSum6Kes.SignatureSize() = %d, want 288", CompactSum6Kes.SignatureSize())
	}

	for _, a := range []Algorithm{Sum6Kes, CompactSum6Kes} {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			if a.TotalPeriods() != 64 {
				t.Fatalf("%s.TotalPeriods() = %d, want 64", a.Name(), a.TotalPeriods())
			}
			seed := randomSeed(t, a.SeedSize())
			sk, err := a.GenKeyFromSeed(seed)
			if err != nil {
				t.Fatalf("GenKeyFromSeed: %v", err)
			}
			defer a.ForgetSigningKey(sk)

			vk, err := a.DeriveVerificationKey(sk)
			if err != nil {
				t.Fatalf("DeriveVerificationKey: %v", err)
			}

			var period Period
			for period = 0; period < a.TotalPeriods(); period++ {
				msg := []byte("full period walk")
				sig, err := a.Sign(Context{}, period, msg, sk)
				if err != nil {
					t.Fatalf("Sign(period=%d): %v", period, err)
				}
				if err := a.Verify(Context{}, vk, period, msg, sig); err != nil {
					t.Fatalf("Verify(period=%d): %v", period, err)
				}
				if len(a.SerializeSignature(sig)) != a.SignatureSize() {
					t.Fatalf("SerializeSignature(period=%d): got %d bytes, want %d", period, len(a.SerializeSignature(sig)), a.SignatureSize())
				}

				ok, err := a.UpdateKey(Context{}, sk, period)
				if err != nil {
					t.Fatalf("UpdateKey(period=%d): %v", period, err)
				}
				wantOK := period+1 < a.TotalPeriods()
				if ok != wantOK {
					t.Fatalf("UpdateKey(period=%d): ok=%v, want %v", period, ok, wantOK)
				}
			}
		})
	}
}

// TestVerificationKeySerialization covers VerificationKey's wire
// round trip.
func TestVerificationKeySerialization(t *testing.T) {
	a := Sum2Kes
	seed := randomSeed(t, a.SeedSize())
	sk, err := a.GenKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("GenKeyFromSeed: %v", err)
	}
	defer a.ForgetSigningKey(sk)

	vk, err := a.DeriveVerificationKey(sk)
	if err != nil {
		t.Fatalf("DeriveVerificationKey: %v", err)
	}

	wire := SerializeVerificationKey(vk)
	if len(wire) != VerificationKeySize {
		t.Fatalf("SerializeVerificationKey: got %d bytes, want %d", len(wire), VerificationKeySize)
	}
	vk2, err := DeserializeVerificationKey(wire)
	if err != nil {
		t.Fatalf("DeserializeVerificationKey: %v", err)
	}
	if vk != vk2 {
		t.Errorf("verification key did not round trip: %x != %x", vk, vk2)
	}

	if _, err := DeserializeVerificationKey(wire[:len(wire)-1]); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("DeserializeVerificationKey(short): err = %v, want ErrMalformedInput", err)
	}
}
