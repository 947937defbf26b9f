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
	"encoding/binary"

	"github.com/pkg/errors"
)

// Serialized layout, PackedBytes long:
//
//	[0, 8*MantissaWords)  mantissa words, little-endian, least significant first
//	[8*MantissaWords, PackedBytes)  header word, little-endian:
//	                      bit 63 = sign, bits 0..62 = exponent (two's complement)
const (
	signBit      = uint64(1) << 63
	exponentMask = signBit - 1
)

// AppendBinary appends the PackedBytes encoding of p to b.
func (p Packed) AppendBinary(b []byte) ([]byte, error) {
	for _, w := range p.Mantissa {
		b = binary.LittleEndian.AppendUint64(b, w)
	}
	header := uint64(p.Exponent) & exponentMask
	if p.Sign != 0 {
		header |= signBit
	}
	return binary.LittleEndian.AppendUint64(b, header), nil
}

// MarshalBinary returns the PackedBytes encoding of p.
func (p Packed) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, PackedBytes))
}

// UnmarshalBinary decodes exactly PackedBytes bytes into p.
func (p *Packed) UnmarshalBinary(data []byte) error {
	if len(data) != PackedBytes {
		return errors.Errorf("apfloat: packed value needs %d bytes, got %d", PackedBytes, len(data))
	}
	p.Decode(data)
	return nil
}

// Encode writes p into dst, which must hold at least PackedBytes bytes.
// It is the allocation-free form of AppendBinary used by memory ports.
func (p Packed) Encode(dst []byte) {
	_ = dst[PackedBytes-1]
	for i, w := range p.Mantissa {
		binary.LittleEndian.PutUint64(dst[8*i:], w)
	}
	header := uint64(p.Exponent) & exponentMask
	if p.Sign != 0 {
		header |= signBit
	}
	binary.LittleEndian.PutUint64(dst[8*MantissaWords:], header)
}

// Decode reads p from src, which must hold at least PackedBytes bytes.
func (p *Packed) Decode(src []byte) {
	_ = src[PackedBytes-1]
	for i := range p.Mantissa {
		p.Mantissa[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
	header := binary.LittleEndian.Uint64(src[8*MantissaWords:])
	p.Sign = uint8(header >> 63)
	// Sign-extend the 63-bit exponent.
	p.Exponent = int64(header<<1) >> 1
}
