// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apfp

import (
	"fmt"
	"math"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/remyoudompheng/bigfft"
	"github.com/stretchr/testify/require"
)

const numRandom = 128

// mulReference computes the widening product with bigfft, which switches to
// FFT multiplication for large operands and is independent of this package.
func mulReference(a, b UInt) UInt {
	return UIntFromBig(2*a.Bits(), bigfft.Mul(a.Big(), b.Big()))
}

func randUInt(rng *rand.Rand, bits int) UInt {
	words := make([]uint64, nwords(bits))
	for i := range words {
		words[i] = rng.Uint64()
	}
	return UIntFromWords(bits, words)
}

func TestKaratsubaSmall(t *testing.T) {
	cases := []struct{ a, b uint64 }{
		{1, 1},
		{0, 1},
		{0, 0},
		{math.MaxUint64, 1},
		{12345, 67890},
		{1234567890, 6789012345},
		{math.MaxUint64, math.MaxUint64},
	}
	for _, bits := range []int{64, 448} {
		for _, tc := range cases {
			a := UIntFromUint64(bits, tc.a)
			b := UIntFromUint64(bits, tc.b)
			got := Karatsuba(a, b)
			require.Equal(t, 2*bits, got.Bits())
			require.Truef(t, mulReference(a, b).Equal(got), "%d bits: %s * %s = %s", bits, a, b, got)
		}
	}
}

func TestKaratsubaOneRecursionLevel(t *testing.T) {
	// 64-bit operands with a 32-bit base case recurse exactly once.
	m := NewMultiplier(32)
	a := UIntFromUint64(64, math.MaxUint64)
	got := m.Mul(a, a)

	want, ok := new(big.Int).SetString("fffffffffffffffe0000000000000001", 16)
	require.True(t, ok)
	require.Equal(t, 0, got.Big().Cmp(want), "got %s", got)
}

func TestKaratsubaWidths(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	widths := []int{0, 1, 2, 3, 31, 63, 64, 65, 127, 128, 129, 255, 256, 448, 512, 1024}
	bases := []int{8, 32, 64, 128, 256}
	for _, base := range bases {
		m := NewMultiplier(base)
		for _, bits := range widths {
			t.Run(fmt.Sprintf("base%d/bits%d", base, bits), func(t *testing.T) {
				maxVal := UIntMax(bits)
				require.True(t, mulReference(maxVal, maxVal).Equal(m.Mul(maxVal, maxVal)))
				for range numRandom / 8 {
					a, b := randUInt(rng, bits), randUInt(rng, bits)
					require.Truef(t, mulReference(a, b).Equal(m.Mul(a, b)), "%s * %s", a, b)
				}
			})
		}
	}
}

func TestKaratsubaRecursionBoundaries(t *testing.T) {
	// Widths at the base case, twice the base case, and deep enough for at
	// least two levels of recursion.
	rng := rand.New(rand.NewPCG(3, 4))
	const base = 64
	m := NewMultiplier(base)
	for _, bits := range []int{base, 2 * base, 4 * base, 7 * base} {
		for range numRandom {
			a, b := randUInt(rng, bits), randUInt(rng, bits)
			want := new(big.Int).Mul(a.Big(), b.Big())
			require.Equal(t, 0, m.Mul(a, b).Big().Cmp(want))
		}
	}
}

func TestKaratsubaDecompositionConsistency(t *testing.T) {
	// Every base width must agree with the pure schoolbook product, which is
	// the base case applied at the full width.
	rng := rand.New(rand.NewPCG(5, 6))
	for _, bits := range []int{56, 112, 224, 448, 896} {
		schoolbook := NewMultiplier(bits)
		for range numRandom / 16 {
			a, b := randUInt(rng, bits), randUInt(rng, bits)
			want := schoolbook.Mul(a, b)
			for base := 1; base < bits; base *= 2 {
				require.Truef(t, want.Equal(NewMultiplier(base).Mul(a, b)), "bits=%d base=%d", bits, base)
			}
		}
	}
}

func TestKaratsubaCrossTerm(t *testing.T) {
	// z0 + (z1 << h) + (z2 << 2h) must rebuild the product, with
	// z1 = z0 + z2 +/- |a0-a1|*|b1-b0|.
	rng := rand.New(rand.NewPCG(7, 8))
	const bits, h = 256, 128
	for range numRandom {
		a, b := randUInt(rng, bits), randUInt(rng, bits)
		a0, a1 := a.Low(h), a.High(h)
		b0, b1 := b.Low(h), b.High(h)
		z0 := new(big.Int).Mul(a0.Big(), b0.Big())
		z2 := new(big.Int).Mul(a1.Big(), b1.Big())

		da, negA := absDiff(a0.words, a1.words)
		db, negB := absDiff(b1.words, b0.words)
		cross := new(big.Int).Mul(UIntFromWords(h, da).Big(), UIntFromWords(h, db).Big())
		if negA != negB {
			cross.Neg(cross)
		}
		z1 := new(big.Int).Add(z0, z2)
		z1.Add(z1, cross)
		require.GreaterOrEqual(t, z1.Sign(), 0)
		require.LessOrEqual(t, z1.BitLen(), 2*h+1)

		got := new(big.Int).Lsh(z2, 2*h)
		got.Add(got, new(big.Int).Lsh(z1, h))
		got.Add(got, z0)
		require.Equal(t, 0, got.Cmp(new(big.Int).Mul(a.Big(), b.Big())))
	}
}

func TestKaratsubaEqualHalves(t *testing.T) {
	// a0 == a1 makes the cross magnitude zero; the sign must not matter.
	half := uint64(0xdeadbeefcafef00d)
	a := UIntFromWords(128, []uint64{half, half})
	b := UIntFromWords(128, []uint64{7, 3})
	m := NewMultiplier(64)
	require.True(t, mulReference(a, b).Equal(m.Mul(a, b)))
	require.True(t, mulReference(b, a).Equal(m.Mul(b, a)))
	require.True(t, mulReference(a, a).Equal(m.Mul(a, a)))
}

func TestKaratsubaWidthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		Karatsuba(NewUInt(64), NewUInt(128))
	})
	require.Panics(t, func() {
		NewMultiplier(0)
	})
}

func BenchmarkKaratsuba(b *testing.B) {
	rng := rand.New(rand.NewPCG(9, 10))
	for _, bits := range []int{448, 1024, 4096} {
		x, y := randUInt(rng, bits), randUInt(rng, bits)
		for _, base := range []int{64, 256, bits} {
			m := NewMultiplier(base)
			b.Run(fmt.Sprintf("bits%d/base%d", bits, base), func(b *testing.B) {
				for b.Loop() {
					_ = m.Mul(x, y)
				}
			})
		}
	}
}
