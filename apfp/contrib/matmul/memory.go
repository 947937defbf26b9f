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

package matmul

import (
	"github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
)

// Reader is a read port into a linear memory of packed values.
// Addresses are element indices.
type Reader interface {
	Load(addr int) apfloat.Packed
	Len() int
}

// Writer is a write port into a linear memory of packed values.
type Writer interface {
	Store(addr int, v apfloat.Packed)
	Len() int
}

// Slice is a memory backed by a Go slice. It is both a Reader and a Writer,
// so the same Slice can be passed as the read and write views of C.
type Slice []apfloat.Packed

// Load returns s[addr].
func (s Slice) Load(addr int) apfloat.Packed { return s[addr] }

// Store sets s[addr].
func (s Slice) Store(addr int, v apfloat.Packed) { s[addr] = v }

// Len returns len(s).
func (s Slice) Len() int { return len(s) }

// DRAM line geometry.
const (
	// LineBytes is the width of one memory line (512 bits).
	LineBytes = 64

	// LinesPerNumber is the number of lines occupied by one packed value.
	LinesPerNumber = (apfloat.PackedBytes + LineBytes - 1) / LineBytes
)

// DRAM is a byte-addressed memory of LineBytes-wide lines holding serialized
// packed values, LinesPerNumber lines each. Values are moved line by line.
//
// ReadView and WriteView return separate ports onto the same storage.
type DRAM struct {
	mem []byte
}

// NewDRAM returns a zeroed DRAM holding n packed values.
func NewDRAM(n int) *DRAM {
	return &DRAM{mem: make([]byte, n*LinesPerNumber*LineBytes)}
}

// NewDRAMFrom returns a DRAM initialized with values.
func NewDRAMFrom(values []apfloat.Packed) *DRAM {
	d := NewDRAM(len(values))
	for i, v := range values {
		d.Store(i, v)
	}
	return d
}

// Len returns the number of packed values d holds.
func (d *DRAM) Len() int {
	return len(d.mem) / (LinesPerNumber * LineBytes)
}

// Bytes returns the underlying storage.
func (d *DRAM) Bytes() []byte {
	return d.mem
}

func (d *DRAM) line(i int) []byte {
	return d.mem[i*LineBytes : (i+1)*LineBytes]
}

// Load reads the value at element addr.
func (d *DRAM) Load(addr int) apfloat.Packed {
	var num [LinesPerNumber * LineBytes]byte
	for i := range LinesPerNumber {
		copy(num[i*LineBytes:], d.line(addr*LinesPerNumber+i))
	}
	var p apfloat.Packed
	p.Decode(num[:])
	return p
}

// Store writes v at element addr.
func (d *DRAM) Store(addr int, v apfloat.Packed) {
	var num [LinesPerNumber * LineBytes]byte
	v.Encode(num[:])
	for i := range LinesPerNumber {
		copy(d.line(addr*LinesPerNumber+i), num[i*LineBytes:])
	}
}

// Values decodes the whole memory.
func (d *DRAM) Values() []apfloat.Packed {
	values := make([]apfloat.Packed, d.Len())
	for i := range values {
		values[i] = d.Load(i)
	}
	return values
}

// ReadView returns a read-only port onto d.
func (d *DRAM) ReadView() Reader { return dramReadView{d} }

// WriteView returns a write-only port onto d.
func (d *DRAM) WriteView() Writer { return dramWriteView{d} }

type dramReadView struct{ d *DRAM }

func (v dramReadView) Load(addr int) apfloat.Packed { return v.d.Load(addr) }
func (v dramReadView) Len() int                     { return v.d.Len() }

type dramWriteView struct{ d *DRAM }

func (v dramWriteView) Store(addr int, p apfloat.Packed) { v.d.Store(addr, p) }
func (v dramWriteView) Len() int                         { return v.d.Len() }
