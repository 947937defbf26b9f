package random

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
)

func TestPackedIsNormalized(t *testing.T) {
	g := New(42, WithExponentRange(-3, 3))
	for _, p := range g.PackedSlice(256) {
		require.False(t, p.IsZero())
		require.Equal(t, 0, p.MantissaUInt().LeadingZeros())
		require.GreaterOrEqual(t, p.Exponent, int64(-3))
		require.LessOrEqual(t, p.Exponent, int64(3))
	}
}

func TestDeterministic(t *testing.T) {
	require.Equal(t, New(7).PackedSlice(16), New(7).PackedSlice(16))
	require.NotEqual(t, New(7).PackedSlice(16), New(8).PackedSlice(16))
}

func TestNegativeFraction(t *testing.T) {
	for _, p := range New(1, WithNegativeFraction(0)).PackedSlice(64) {
		require.Equal(t, uint8(0), p.Sign)
	}
	for _, p := range New(1, WithNegativeFraction(1)).PackedSlice(64) {
		require.Equal(t, uint8(1), p.Sign)
	}
}

func TestBigPrecision(t *testing.T) {
	g := New(3)
	f := g.Big(2 * apfloat.MantissaBits)
	require.Equal(t, uint(2*apfloat.MantissaBits), f.Prec())
	require.NotZero(t, f.Sign())
}
