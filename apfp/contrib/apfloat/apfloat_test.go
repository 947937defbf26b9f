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

package apfloat_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
	"github.com/ajroetker/go-apfp/internal/random"
)

const numRandom = 128

func requireMatchesBig(t *testing.T, want *big.Float, got apfloat.Packed) {
	t.Helper()
	require.Equalf(t, apfloat.MustFromBig(want), got, "want %s, got %s", want.Text('g', 30), got)
}

func TestConversionSimple(t *testing.T) {
	num := apfloat.FromInt64(-42)
	require.Equal(t, uint8(1), num.Sign)
	require.Equal(t, int64(6), num.Exponent) // 42 = 0.101010b * 2^6
	require.Equal(t, uint64(42)<<58, num.Mantissa[apfloat.MantissaWords-1])
	for i := 0; i < apfloat.MantissaWords-1; i++ {
		require.Zero(t, num.Mantissa[i])
	}

	viaBig, err := apfloat.FromBig(big.NewFloat(-42))
	require.NoError(t, err)
	require.Equal(t, num, viaBig)

	back, acc := num.Big().Int64()
	require.Equal(t, int64(-42), back)
	require.Equal(t, big.Exact, acc)
}

func TestConversionRoundTrip(t *testing.T) {
	g := random.New(1)
	for _, p := range g.PackedSlice(numRandom) {
		back, err := apfloat.FromBig(p.Big())
		require.NoError(t, err)
		require.Equal(t, p, back)

		data, err := p.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, apfloat.PackedBytes)
		var decoded apfloat.Packed
		require.NoError(t, decoded.UnmarshalBinary(data))
		require.Equal(t, p, decoded)
	}
}

func TestConversionSignedZero(t *testing.T) {
	negZero := apfloat.Zero.Neg()
	require.True(t, negZero.IsZero())
	require.True(t, negZero.Big().Signbit())
	back, err := apfloat.FromBig(negZero.Big())
	require.NoError(t, err)
	require.Equal(t, negZero, back)
}

func TestConversionTruncatesExtraPrecision(t *testing.T) {
	g := random.New(2)
	for range numRandom {
		x := g.Big(2 * apfloat.MantissaBits)
		p, err := apfloat.FromBig(x)
		require.NoError(t, err)
		want := apfloat.NewBig().Set(x) // rounds toward zero to MantissaBits
		require.Equal(t, 0, want.Cmp(p.Big()))
		require.LessOrEqual(t, new(big.Float).Abs(p.Big()).Cmp(new(big.Float).Abs(x)), 0)
	}
}

func TestConversionErrors(t *testing.T) {
	_, err := apfloat.FromBig(new(big.Float).SetInf(false))
	require.Error(t, err)
	_, err = apfloat.FromFloat64(math.NaN())
	require.Error(t, err)
	_, err = apfloat.FromFloat64(math.Inf(-1))
	require.Error(t, err)

	var p apfloat.Packed
	require.Error(t, p.UnmarshalBinary(make([]byte, apfloat.PackedBytes-1)))
}

func TestCodecNegativeExponent(t *testing.T) {
	p := apfloat.FromInt64(5)
	p.Exponent = -123456789
	p = p.Neg()
	buf := make([]byte, apfloat.PackedBytes)
	p.Encode(buf)
	var q apfloat.Packed
	q.Decode(buf)
	require.Equal(t, p, q)

	appended, err := p.AppendBinary([]byte{0xff})
	require.NoError(t, err)
	require.Equal(t, buf, appended[1:])
}

func TestAddSmall(t *testing.T) {
	cases := []struct{ a, b int64 }{
		{1, 0},
		{1, 1},
		{math.MaxInt64, math.MaxInt64},
		{math.MaxInt64, 1},
		{5, -5},
		{-7, 3},
		{1 << 40, -1},
	}
	for _, tc := range cases {
		a, b := apfloat.FromInt64(tc.a), apfloat.FromInt64(tc.b)
		want := apfloat.NewBig().Add(a.Big(), b.Big())
		requireMatchesBig(t, want, apfloat.Add(a, b))
		requireMatchesBig(t, want, apfloat.Add(b, a))
	}
}

func TestAddRandom(t *testing.T) {
	for _, g := range []*random.Generator{
		random.New(3),
		// Narrow exponents exercise cancellation.
		random.New(4, random.WithExponentRange(-1, 1)),
		// Wide exponents exercise the sticky path.
		random.New(5, random.WithExponentRange(-2000, 2000)),
	} {
		for range numRandom {
			a, b := g.Packed(), g.Packed()
			want := apfloat.NewBig().Add(a.Big(), b.Big())
			requireMatchesBig(t, want, apfloat.Add(a, b))
		}
	}
}

func TestAddCancellation(t *testing.T) {
	g := random.New(6)
	for _, p := range g.PackedSlice(16) {
		require.Equal(t, apfloat.Zero, apfloat.Add(p, p.Neg()))
	}
	require.Equal(t, apfloat.Zero, apfloat.Add(apfloat.Zero, apfloat.Zero.Neg()))
	require.Equal(t, apfloat.Zero.Neg(), apfloat.Add(apfloat.Zero.Neg(), apfloat.Zero.Neg()))
}

func TestAddFarApart(t *testing.T) {
	// 1 - 2^-1000 truncates to the largest value below 1.
	one := apfloat.FromInt64(1)
	tiny := apfloat.FromInt64(-1)
	tiny.Exponent -= 1000
	got := apfloat.Add(one, tiny)
	require.Equal(t, int64(0), got.Exponent)
	for _, w := range got.Mantissa {
		require.Equal(t, ^uint64(0), w)
	}
	requireMatchesBig(t, apfloat.NewBig().Add(one.Big(), tiny.Big()), got)
}

func TestMultiplySmall(t *testing.T) {
	cases := []struct{ a, b int64 }{
		{1, 0},
		{1, 1},
		{math.MaxInt64, 1},
		{math.MaxInt64, math.MaxInt64},
		{-3, 7},
		{-3, -7},
	}
	for _, tc := range cases {
		a, b := apfloat.FromInt64(tc.a), apfloat.FromInt64(tc.b)
		want := apfloat.NewBig().Mul(a.Big(), b.Big())
		requireMatchesBig(t, want, apfloat.Multiply(a, b))
	}
}

func TestMultiplyRandom(t *testing.T) {
	g := random.New(7)
	for range numRandom {
		a, b := g.Packed(), g.Packed()
		want := apfloat.NewBig().Mul(a.Big(), b.Big())
		requireMatchesBig(t, want, apfloat.Multiply(a, b))
	}
}

func TestMultiplyZeroSign(t *testing.T) {
	got := apfloat.Multiply(apfloat.FromInt64(-3), apfloat.Zero)
	require.True(t, got.IsZero())
	require.Equal(t, uint8(1), got.Sign)
}

func TestMultiplyAccumulate(t *testing.T) {
	got := apfloat.MultiplyAccumulate(apfloat.FromInt64(3), apfloat.FromInt64(-2), apfloat.FromInt64(7))
	require.Equal(t, apfloat.FromInt64(1), got)

	g := random.New(8, random.WithExponentRange(-8, 8))
	for range numRandom {
		a, b, c := g.Packed(), g.Packed(), g.Packed()
		prod := apfloat.NewBig().Mul(a.Big(), b.Big())
		want := apfloat.NewBig().Add(prod, c.Big())
		requireMatchesBig(t, want, apfloat.MultiplyAccumulate(a, b, c))
	}
}

func BenchmarkMultiplyAccumulate(b *testing.B) {
	g := random.New(9)
	x, y, z := g.Packed(), g.Packed(), g.Packed()
	for b.Loop() {
		z = apfloat.MultiplyAccumulate(x, y, z)
	}
}
