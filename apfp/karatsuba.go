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

import "fmt"

// Multiplier computes exact widening products of fixed-width unsigned
// integers with the Karatsuba recursion.
//
// Operands wider than BaseBits are split into halves and multiplied with
// three recursive products instead of four, which brings the cost down from
// O(bits^2) to O(bits^1.585). At or below BaseBits the product is computed
// directly on 64-bit words.
type Multiplier struct {
	baseBits int
}

// NewMultiplier returns a Multiplier that stops recursing at baseBits.
// baseBits must be positive.
func NewMultiplier(baseBits int) Multiplier {
	if baseBits <= 0 {
		panic(fmt.Sprintf("apfp: Karatsuba base width must be positive, got %d", baseBits))
	}
	return Multiplier{baseBits: baseBits}
}

// DefaultMultiplier returns a Multiplier using DefaultBaseBits.
func DefaultMultiplier() Multiplier {
	return NewMultiplier(DefaultBaseBits())
}

// BaseBits returns the width at or below which the product is computed
// directly.
func (m Multiplier) BaseBits() int {
	if m.baseBits <= 0 {
		return DefaultBaseBits()
	}
	return m.baseBits
}

// Mul returns the exact product a*b with width 2*a.Bits().
// a and b must have the same width.
func (m Multiplier) Mul(a, b UInt) UInt {
	checkSameWidth(a, b)
	return UInt{bits: 2 * a.bits, words: m.mulWords(a.bits, a.words, b.words)}
}

// Karatsuba returns the exact product a*b with width 2*a.Bits(), using
// DefaultMultiplier.
func Karatsuba(a, b UInt) UInt {
	return DefaultMultiplier().Mul(a, b)
}

// mulWords multiplies two bits-wide magnitudes held in nwords(bits) words and
// returns the product in nwords(2*bits) words.
func (m Multiplier) mulWords(bits int, a, b []uint64) []uint64 {
	n := nwords(2 * bits)
	if bits <= m.BaseBits() {
		out := make([]uint64, len(a)+len(b))
		mulSchoolbook(a, b, out)
		return out[:n]
	}

	// Split at the ceiling so odd widths still shrink; for even widths this
	// is exactly bits/2 and both halves are h bits wide.
	h := (bits + 1) / 2
	hw := nwords(h)
	a0, a1 := splitWords(a, h, hw)
	b0, b1 := splitWords(b, h, hw)

	z0 := m.mulWords(h, a0, b0)
	z2 := m.mulWords(h, a1, b1)

	// |a0 - a1| * |b1 - b0| carries the sign of the cross term.
	a0a1, a0a1IsNeg := absDiff(a0, a1)
	b0b1, b0b1IsNeg := absDiff(b1, b0)
	a0a1b0b1 := m.mulWords(h, a0a1, b0b1)

	// z1 = a0*b1 + a1*b0 = z0 + z2 + (a0-a1)(b1-b0), which needs 2h+1 bits.
	z1 := make([]uint64, nwords(2*h+2))
	addShifted(z1, z0, 0)
	addShifted(z1, z2, 0)
	if a0a1IsNeg != b0b1IsNeg {
		subInto(z1, a0a1b0b1)
	} else {
		addShifted(z1, a0a1b0b1, 0)
	}

	z := make([]uint64, n)
	addShifted(z, z0, 0)
	addShifted(z, z1, h)
	addShifted(z, z2, 2*h)
	return z
}

// splitWords returns the low h bits of x and x >> h, each in hw words.
func splitWords(x []uint64, h, hw int) (lo, hi []uint64) {
	lo = make([]uint64, hw)
	copy(lo, x)
	maskTo(lo, h)
	hi = make([]uint64, hw)
	shrInto(hi, x, h)
	return lo, hi
}
