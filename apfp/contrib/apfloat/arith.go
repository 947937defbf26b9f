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

package apfloat

import (
	"github.com/ajroetker/go-apfp/apfp"
)

// Multiply returns a*b rounded toward zero.
//
// The 896-bit mantissa product comes from the Karatsuba multiplier; since
// both mantissas are normalized it has at most one leading zero bit.
func Multiply(a, b Packed) Packed {
	sign := a.Sign ^ b.Sign
	if a.IsZero() || b.IsZero() {
		return Packed{Sign: sign}
	}
	prod := apfp.Karatsuba(a.MantissaUInt(), b.MantissaUInt())
	exp := a.Exponent + b.Exponent
	if prod.LeadingZeros() > 0 {
		prod = prod.Lsh(1)
		exp--
	}
	p := Packed{Sign: sign, Exponent: exp}
	copy(p.Mantissa[:], prod.High(MantissaBits).Words())
	return p
}

// Add returns a+b rounded toward zero.
func Add(a, b Packed) Packed {
	switch {
	case a.IsZero() && b.IsZero():
		return Packed{Sign: a.Sign & b.Sign}
	case b.IsZero():
		return a
	case a.IsZero():
		return b
	}
	if cmpMagnitude(a, b) < 0 {
		a, b = b, a
	}

	// Work on 2*MantissaBits-wide fixed point values aligned to a's exponent.
	// Bits of b shifted out below the extended width only matter through the
	// sticky flag: the bottom MantissaBits bits are always discarded, so
	// truncating the exact sum equals truncating the extended sum, and for a
	// difference the lost fraction borrows exactly one unit.
	const w = MantissaBits
	x := a.MantissaUInt().Widen(2 * w).Lsh(w)
	yFull := b.MantissaUInt().Widen(2 * w).Lsh(w)
	var y apfp.UInt
	var sticky bool
	if d := a.Exponent - b.Exponent; d >= 2*w {
		y = apfp.NewUInt(2 * w)
		sticky = true
	} else {
		y = yFull.Rsh(int(d))
		sticky = !yFull.Low(int(d)).IsZero()
	}

	if a.Sign == b.Sign {
		sum := x.Widen(2*w + 1).Add(y.Widen(2*w + 1))
		exp := a.Exponent
		shift := w
		if sum.LeadingZeros() == 0 {
			exp++
			shift++
		}
		p := Packed{Sign: a.Sign, Exponent: exp}
		copy(p.Mantissa[:], sum.Rsh(shift).Widen(w).Words())
		return p
	}

	diff := x.Sub(y)
	if sticky {
		diff = diff.Sub(apfp.UIntFromUint64(2*w, 1))
	}
	if diff.IsZero() {
		return Zero
	}
	lz := diff.LeadingZeros()
	p := Packed{Sign: a.Sign, Exponent: a.Exponent - int64(lz)}
	copy(p.Mantissa[:], diff.Lsh(lz).High(w).Words())
	return p
}

// MultiplyAccumulate returns a*b + c, rounding the product and then the sum
// toward zero.
func MultiplyAccumulate(a, b, c Packed) Packed {
	return Add(Multiply(a, b), c)
}
