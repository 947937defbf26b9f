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

import "math/bits"

// Word-slice helpers. All slices are little-endian; writes past the end of a
// destination are dropped, which gives modular arithmetic for free.

// nwords returns the number of 64-bit words needed to hold n bits.
func nwords(n int) int {
	return (n + 63) >> 6
}

// maskTo clears every bit of z at or above position n.
func maskTo(z []uint64, n int) {
	w := nwords(n)
	for i := w; i < len(z); i++ {
		z[i] = 0
	}
	if r := n & 63; r != 0 && w <= len(z) {
		z[w-1] &= (uint64(1) << r) - 1
	}
}

// shrInto sets dst to src >> s, truncated to len(dst) words.
func shrInto(dst, src []uint64, s int) {
	ws, bs := s>>6, uint(s&63)
	for i := range dst {
		j := i + ws
		var lo, hi uint64
		if j < len(src) {
			lo = src[j]
		}
		if j+1 < len(src) {
			hi = src[j+1]
		}
		if bs == 0 {
			dst[i] = lo
		} else {
			dst[i] = lo>>bs | hi<<(64-bs)
		}
	}
}

// addShifted adds src << s into dst and propagates the carry.
func addShifted(dst, src []uint64, s int) {
	ws, bs := s>>6, uint(s&63)
	n := len(src)
	if bs != 0 {
		n++
	}
	var carry uint64
	i := 0
	for ; i < n; i++ {
		idx := i + ws
		if idx >= len(dst) {
			return
		}
		var w uint64
		if i < len(src) {
			w = src[i] << bs
		}
		if bs != 0 && i > 0 {
			w |= src[i-1] >> (64 - bs)
		}
		dst[idx], carry = bits.Add64(dst[idx], w, carry)
	}
	for idx := i + ws; carry != 0 && idx < len(dst); idx++ {
		dst[idx], carry = bits.Add64(dst[idx], 0, carry)
	}
}

// subInto sets dst to dst - src and propagates the borrow. The result wraps
// modulo 2^(64*len(dst)) if src > dst.
func subInto(dst, src []uint64) {
	var borrow uint64
	i := 0
	for ; i < len(src) && i < len(dst); i++ {
		dst[i], borrow = bits.Sub64(dst[i], src[i], borrow)
	}
	for ; borrow != 0 && i < len(dst); i++ {
		dst[i], borrow = bits.Sub64(dst[i], 0, borrow)
	}
}

// cmpWords compares two magnitudes that may have different lengths.
func cmpWords(a, b []uint64) int {
	n := max(len(a), len(b))
	for i := n - 1; i >= 0; i-- {
		var x, y uint64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// bitLen returns the position of the highest set bit plus one.
func bitLen(z []uint64) int {
	for i := len(z) - 1; i >= 0; i-- {
		if z[i] != 0 {
			return 64*i + bits.Len64(z[i])
		}
	}
	return 0
}

// absDiff returns |a - b| in a slice of len(a) words, and whether a < b.
// a and b must have the same length.
func absDiff(a, b []uint64) ([]uint64, bool) {
	neg := cmpWords(a, b) < 0
	if neg {
		a, b = b, a
	}
	d := append([]uint64(nil), a...)
	subInto(d, b)
	return d, neg
}

// mulSchoolbook accumulates a * b into out, which must be zeroed and hold at
// least len(a)+len(b) words.
func mulSchoolbook(a, b, out []uint64) {
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		var carry uint64
		for j, bj := range b {
			hi, lo := bits.Mul64(ai, bj)
			var c uint64
			lo, c = bits.Add64(lo, out[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			out[i+j] = lo
			carry = hi
		}
		out[i+len(b)] = carry
	}
}
