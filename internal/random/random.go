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

// Package random generates fixtures for tests, benchmarks and the command
// line tools: random packed floats with a uniform normalized mantissa, a
// random sign and an exponent drawn uniformly from a bounded range.
package random

import (
	"math/big"
	"math/rand/v2"
	"sync"

	"github.com/samber/lo"

	"github.com/ajroetker/go-apfp/apfp"
	"github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
)

// Defaults for New.
const (
	DefaultNegativeFraction = 0.5
	DefaultMinExponent      = -64
	DefaultMaxExponent      = 64
)

// Generator is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	negFrac float64
	minExp  int64
	maxExp  int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithNegativeFraction sets the probability of a negative value.
func WithNegativeFraction(f float64) Option {
	return func(g *Generator) { g.negFrac = f }
}

// WithExponentRange sets the inclusive exponent range.
func WithExponentRange(lo, hi int64) Option {
	return func(g *Generator) {
		if lo > hi {
			lo, hi = hi, lo
		}
		g.minExp, g.maxExp = lo, hi
	}
}

// New returns a deterministic Generator for the given seed.
func New(seed uint64, opts ...Option) *Generator {
	g := &Generator{
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		negFrac: DefaultNegativeFraction,
		minExp:  DefaultMinExponent,
		maxExp:  DefaultMaxExponent,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Packed returns a random non-zero normalized value.
func (g *Generator) Packed() apfloat.Packed {
	g.mu.Lock()
	defer g.mu.Unlock()
	var p apfloat.Packed
	for i := range p.Mantissa {
		p.Mantissa[i] = g.rng.Uint64()
	}
	p.Mantissa[apfloat.MantissaWords-1] |= 1 << 63
	if g.rng.Float64() < g.negFrac {
		p.Sign = 1
	}
	p.Exponent = g.minExp + g.rng.Int64N(g.maxExp-g.minExp+1)
	return p
}

// PackedSlice returns n random values.
func (g *Generator) PackedSlice(n int) []apfloat.Packed {
	return lo.Times(n, func(int) apfloat.Packed { return g.Packed() })
}

// UInt returns a uniformly random integer of the given width.
func (g *Generator) UInt(bits int) apfp.UInt {
	g.mu.Lock()
	defer g.mu.Unlock()
	words := lo.Times((bits+63)/64, func(int) uint64 { return g.rng.Uint64() })
	return apfp.UIntFromWords(bits, words)
}

// Big returns a random non-zero value with prec bits of precision, which may
// exceed apfloat.MantissaBits.
func (g *Generator) Big(prec uint) *big.Float {
	m := g.UInt(int(prec))
	g.mu.Lock()
	neg := g.rng.Float64() < g.negFrac
	exp := g.minExp + g.rng.Int64N(g.maxExp-g.minExp+1)
	g.mu.Unlock()

	mant := m.Big()
	mant.SetBit(mant, int(prec)-1, 1)
	f := new(big.Float).SetPrec(prec).SetInt(mant)
	f.SetMantExp(f, int(exp)-int(prec))
	if neg {
		f.Neg(f)
	}
	return f
}
