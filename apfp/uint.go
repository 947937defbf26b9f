// Package apfp provides the integer kernels for arbitrary-precision
// floating point arithmetic: a fixed-width unsigned integer and a recursive
// Karatsuba multiplier used to multiply mantissas.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-apfp/apfp"
//
//	a := apfp.UIntFromUint64(448, 12345)
//	b := apfp.UIntFromUint64(448, 67890)
//
//	// Widening product, 896 bits wide.
//	z := apfp.Karatsuba(a, b)
//
// The recursion bottoms out at DefaultBaseBits, which is picked at init from
// the host CPU features and can be overridden with APFP_KARATSUBA_BASE_BITS.
package apfp

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// UInt is an unsigned integer of a fixed bit width.
//
// Arithmetic on a UInt is modulo 2^Bits(), except for multiplication which
// widens to 2*Bits(). UInt values are immutable: every operation returns a
// new value and never modifies its operands.
//
// The zero value is the 0-bit integer 0.
type UInt struct {
	bits int
	// words holds the magnitude in little-endian 64-bit words. Bits at or
	// above bits are always zero.
	words []uint64
}

// NewUInt returns the zero of the given width.
func NewUInt(bits int) UInt {
	if bits < 0 {
		panic(fmt.Sprintf("apfp: negative width %d", bits))
	}
	return UInt{bits: bits, words: make([]uint64, nwords(bits))}
}

// UIntFromUint64 returns v truncated to the given width.
func UIntFromUint64(bits int, v uint64) UInt {
	u := NewUInt(bits)
	if len(u.words) > 0 {
		u.words[0] = v
		maskTo(u.words, bits)
	}
	return u
}

// UIntFromWords returns the integer formed by little-endian words, truncated
// to the given width. Words beyond the width are ignored.
func UIntFromWords(bits int, words []uint64) UInt {
	u := NewUInt(bits)
	copy(u.words, words)
	maskTo(u.words, bits)
	return u
}

// UIntFromBig returns x modulo 2^bits. x must not be negative.
func UIntFromBig(bits int, x *big.Int) UInt {
	if x.Sign() < 0 {
		panic("apfp: UIntFromBig of a negative value")
	}
	u := NewUInt(bits)
	buf := x.Bytes() // big-endian
	for i := 0; i < len(u.words); i++ {
		end := len(buf) - 8*i
		if end <= 0 {
			break
		}
		start := max(end-8, 0)
		var w [8]byte
		copy(w[8-(end-start):], buf[start:end])
		u.words[i] = binary.BigEndian.Uint64(w[:])
	}
	maskTo(u.words, bits)
	return u
}

// UIntMax returns 2^bits - 1.
func UIntMax(bits int) UInt {
	u := NewUInt(bits)
	for i := range u.words {
		u.words[i] = ^uint64(0)
	}
	maskTo(u.words, bits)
	return u
}

// Bits returns the width of u.
func (u UInt) Bits() int {
	return u.bits
}

// Words returns a copy of the little-endian words of u.
func (u UInt) Words() []uint64 {
	return append([]uint64(nil), u.words...)
}

// Uint64 returns the low 64 bits of u.
func (u UInt) Uint64() uint64 {
	if len(u.words) == 0 {
		return 0
	}
	return u.words[0]
}

// Big returns u as a big.Int.
func (u UInt) Big() *big.Int {
	buf := make([]byte, 8*len(u.words))
	for i, w := range u.words {
		binary.BigEndian.PutUint64(buf[len(buf)-8*(i+1):], w)
	}
	return new(big.Int).SetBytes(buf)
}

// IsZero reports whether u is zero.
func (u UInt) IsZero() bool {
	for _, w := range u.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Cmp compares the magnitudes of u and v, regardless of their widths.
// It returns -1, 0 or +1.
func (u UInt) Cmp(v UInt) int {
	return cmpWords(u.words, v.words)
}

// Equal reports whether u and v have the same width and value.
func (u UInt) Equal(v UInt) bool {
	return u.bits == v.bits && u.Cmp(v) == 0
}

// Add returns u + v modulo 2^Bits(). Both operands must have the same width.
func (u UInt) Add(v UInt) UInt {
	checkSameWidth(u, v)
	z := UIntFromWords(u.bits, u.words)
	addShifted(z.words, v.words, 0)
	maskTo(z.words, z.bits)
	return z
}

// Sub returns u - v modulo 2^Bits(). Both operands must have the same width.
func (u UInt) Sub(v UInt) UInt {
	checkSameWidth(u, v)
	z := UIntFromWords(u.bits, u.words)
	subInto(z.words, v.words)
	maskTo(z.words, z.bits)
	return z
}

// Lsh returns u << s modulo 2^Bits().
func (u UInt) Lsh(s int) UInt {
	z := NewUInt(u.bits)
	addShifted(z.words, u.words, s)
	maskTo(z.words, z.bits)
	return z
}

// Rsh returns u >> s.
func (u UInt) Rsh(s int) UInt {
	z := NewUInt(u.bits)
	shrInto(z.words, u.words, s)
	return z
}

// Widen returns u with the new width, truncating if bits < Bits().
func (u UInt) Widen(bits int) UInt {
	return UIntFromWords(bits, u.words)
}

// Low returns the low h bits of u as an h-bit integer.
func (u UInt) Low(h int) UInt {
	return UIntFromWords(h, u.words)
}

// High returns u >> h as a (Bits()-h)-bit integer.
func (u UInt) High(h int) UInt {
	z := NewUInt(max(u.bits-h, 0))
	shrInto(z.words, u.words, h)
	return z
}

// LeadingZeros returns the number of zero bits above the most significant
// set bit, counted within the width of u.
func (u UInt) LeadingZeros() int {
	return u.bits - bitLen(u.words)
}

// String returns u in hexadecimal.
func (u UInt) String() string {
	return "0x" + u.Big().Text(16)
}

func checkSameWidth(u, v UInt) {
	if u.bits != v.bits {
		panic(fmt.Sprintf("apfp: width mismatch %d != %d", u.bits, v.bits))
	}
}
