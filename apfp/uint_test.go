package apfp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUIntFromBig(t *testing.T) {
	x, ok := new(big.Int).SetString("123456789abcdef0fedcba9876543210ff", 16)
	require.True(t, ok)

	u := UIntFromBig(200, x)
	require.Equal(t, 200, u.Bits())
	require.Equal(t, 0, u.Big().Cmp(x))
	require.Equal(t, "0x123456789abcdef0fedcba9876543210ff", u.String())

	// Truncation keeps the low bits.
	low := UIntFromBig(64, x)
	require.Equal(t, uint64(0xdcba9876543210ff), low.Uint64())
}

func TestUIntWrapAround(t *testing.T) {
	maxVal := UIntMax(100)
	one := UIntFromUint64(100, 1)
	require.True(t, maxVal.Add(one).IsZero())
	require.True(t, NewUInt(100).Sub(one).Equal(maxVal))
	require.Equal(t, 0, maxVal.LeadingZeros())
	require.Equal(t, 99, one.LeadingZeros())
}

func TestUIntShifts(t *testing.T) {
	u := UIntFromUint64(130, 0b1011)
	require.Equal(t, "0x2c0000000000000000", u.Lsh(66).String())
	require.True(t, u.Lsh(66).Rsh(66).Equal(u))
	// Bits shifted past the width are dropped.
	require.True(t, u.Lsh(128).Rsh(128).Equal(UIntFromUint64(130, 0b11)))
}

func TestUIntHalves(t *testing.T) {
	u := UIntFromWords(128, []uint64{0x1111, 0x2222})
	require.Equal(t, uint64(0x1111), u.Low(64).Uint64())
	require.Equal(t, uint64(0x2222), u.High(64).Uint64())
	require.Equal(t, 64, u.High(64).Bits())
	require.True(t, u.Low(64).Widen(128).Cmp(u) < 0)
}

func TestDispatch(t *testing.T) {
	t.Logf("Dispatch level: %s, base bits: %d", CurrentName(), DefaultBaseBits())
	require.Greater(t, DefaultBaseBits(), 0)
	require.NotEqual(t, "unknown", CurrentName())
}

func TestBaseBitsEnv(t *testing.T) {
	savedLevel, savedBits := currentLevel, defaultBaseBits
	defer func() { currentLevel, defaultBaseBits = savedLevel, savedBits }()

	t.Setenv("APFP_KARATSUBA_BASE_BITS", "96")
	setLevel(DispatchGeneric, BaseBitsGeneric)
	require.Equal(t, DispatchEnv, CurrentLevel())
	require.Equal(t, 96, DefaultBaseBits())

	t.Setenv("APFP_KARATSUBA_BASE_BITS", "nope")
	_, ok := BaseBitsEnv()
	require.False(t, ok)
}
