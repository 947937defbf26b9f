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

// Package apfloat provides a fixed-precision arbitrary-precision floating
// point number packed into a single 512-bit memory line, and its elementary
// arithmetic.
//
// A Packed value is (-1)^Sign * 0.Mantissa * 2^Exponent, with a 448-bit
// mantissa normalized so its most significant bit is set. All operations
// round toward zero, matching MPFR's RNDZ mode at 448 bits of precision, so
// results can be checked bit for bit against math/big.Float with
// Prec = MantissaBits and Mode = big.ToZero.
//
// Example usage:
//
//	a := apfloat.FromInt64(3)
//	b := apfloat.FromInt64(-2)
//	c := apfloat.FromInt64(7)
//
//	d := apfloat.MultiplyAccumulate(a, b, c) // 3*(-2) + 7 = 1
package apfloat

import (
	"github.com/ajroetker/go-apfp/apfp"
)

const (
	// MantissaWords is the number of 64-bit words in the mantissa.
	MantissaWords = 7

	// MantissaBits is the precision of a Packed value.
	MantissaBits = 64 * MantissaWords

	// PackedBytes is the serialized width of a Packed value: the mantissa
	// plus one header word holding the sign and the exponent.
	PackedBytes = 8 * (MantissaWords + 1)
)

// Packed is a fixed-precision arbitrary-precision float.
//
// Non-zero values keep the top mantissa bit set. Zero has an all-zero
// mantissa and exponent and may carry either sign.
type Packed struct {
	Sign     uint8
	Exponent int64
	Mantissa [MantissaWords]uint64 // little-endian words
}

// Zero is positive zero.
var Zero = Packed{}

// FromUInt returns (-1)^sign * m * 2^exp, normalizing m and truncating it to
// MantissaBits. m can have any width.
func FromUInt(sign uint8, m apfp.UInt, exp int64) Packed {
	p := Packed{Sign: sign & 1}
	if m.IsZero() {
		return p
	}
	bitLen := m.Bits() - m.LeadingZeros()
	// Value is 0.m * 2^(exp+bitLen); align the top bit to MantissaBits-1.
	p.Exponent = exp + int64(bitLen)
	var aligned apfp.UInt
	if bitLen > MantissaBits {
		aligned = m.Rsh(bitLen - MantissaBits).Widen(MantissaBits)
	} else {
		aligned = m.Widen(MantissaBits).Lsh(MantissaBits - bitLen)
	}
	copy(p.Mantissa[:], aligned.Words())
	return p
}

// FromInt64 returns v as a Packed value. The conversion is exact.
func FromInt64(v int64) Packed {
	var sign uint8
	mag := uint64(v)
	if v < 0 {
		sign = 1
		mag = -mag
	}
	return FromUInt(sign, apfp.UIntFromUint64(64, mag), 0)
}

// IsZero reports whether p is (signed) zero.
func (p Packed) IsZero() bool {
	return p.Mantissa == [MantissaWords]uint64{}
}

// Neg returns -p.
func (p Packed) Neg() Packed {
	p.Sign ^= 1
	return p
}

// Abs returns |p|.
func (p Packed) Abs() Packed {
	p.Sign = 0
	return p
}

// MantissaUInt returns the mantissa as a MantissaBits-wide integer.
func (p Packed) MantissaUInt() apfp.UInt {
	return apfp.UIntFromWords(MantissaBits, p.Mantissa[:])
}

// String formats p in decimal with 20 significant digits.
func (p Packed) String() string {
	return p.Big().Text('g', 20)
}

// cmpMagnitude compares |a| and |b| for non-zero normalized a and b.
func cmpMagnitude(a, b Packed) int {
	switch {
	case a.Exponent < b.Exponent:
		return -1
	case a.Exponent > b.Exponent:
		return 1
	}
	return a.MantissaUInt().Cmp(b.MantissaUInt())
}
