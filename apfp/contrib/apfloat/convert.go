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
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-apfp/apfp"
)

// NewBig returns a zero big.Float configured like Packed arithmetic:
// MantissaBits of precision, rounding toward zero.
func NewBig() *big.Float {
	return new(big.Float).SetPrec(MantissaBits).SetMode(big.ToZero)
}

// FromBig packs x, keeping its sign, its exponent and the most significant
// MantissaBits of its mantissa. Extra precision in x is truncated.
// Infinities cannot be packed.
func FromBig(x *big.Float) (Packed, error) {
	if x.IsInf() {
		return Packed{}, errors.Errorf("apfloat: cannot pack %v", x)
	}
	var p Packed
	if x.Signbit() {
		p.Sign = 1
	}
	if x.Sign() == 0 {
		return p, nil
	}
	mant := new(big.Float)
	exp := x.MantExp(mant)
	mant.Abs(mant)
	mant.SetMantExp(mant, MantissaBits) // now in [2^(MantissaBits-1), 2^MantissaBits)
	z, _ := mant.Int(nil)
	copy(p.Mantissa[:], apfp.UIntFromBig(MantissaBits, z).Words())
	p.Exponent = int64(exp)
	return p, nil
}

// MustFromBig is FromBig for values known to be finite. It panics on error.
func MustFromBig(x *big.Float) Packed {
	p, err := FromBig(x)
	if err != nil {
		panic(err)
	}
	return p
}

// FromFloat64 packs f exactly. NaN and infinities are rejected.
func FromFloat64(f float64) (Packed, error) {
	if math.IsNaN(f) {
		return Packed{}, errors.New("apfloat: cannot pack NaN")
	}
	return FromBig(new(big.Float).SetFloat64(f))
}

// Big returns p as a big.Float with MantissaBits of precision and ToZero
// rounding. The conversion is exact, and FromBig(p.Big()) == p.
func (p Packed) Big() *big.Float {
	f := NewBig()
	if !p.IsZero() {
		f.SetInt(p.MantissaUInt().Big())
		f.SetMantExp(f, int(p.Exponent)-MantissaBits)
	}
	if p.Sign != 0 {
		f.Neg(f)
	}
	return f
}

// Float64 returns the float64 nearest to p, and its accuracy.
func (p Packed) Float64() (float64, big.Accuracy) {
	return p.Big().Float64()
}
