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

// All five stages walk the same index space:
//
//	for n0 in tilesN:
//	  for m0 in tilesM:
//	    for k in sizeK:        (not for ReadC and WriteC)
//	      for n1 in TileN:
//	        for m1 in TileM:
//
// and must agree exactly on how many values each stream carries, since
// nothing else keeps the stages in step.

// problem is the validated shape of one invocation.
type problem struct {
	sizeN, sizeK, sizeM int
	tileN, tileM        int
	tilesN, tilesM      int
	operands            OperandPolicy
	refetch             bool
}

func newProblem(p TileParams, sizeN, sizeK, sizeM int) problem {
	return problem{
		sizeN:    sizeN,
		sizeK:    sizeK,
		sizeM:    sizeM,
		tileN:    p.TileN,
		tileM:    p.TileM,
		tilesN:   ceilDiv(sizeN, p.TileN),
		tilesM:   ceilDiv(sizeM, p.TileM),
		operands: p.Operands,
		refetch:  p.Refetch,
	}
}

// inBounds reports whether tile cell (n1, m1) of tile (n0, m0) lies inside
// the declared output matrix.
func (pr problem) inBounds(n0, m0, n1, m1 int) bool {
	return n0*pr.tileN+n1 < pr.sizeN && m0*pr.tileM+m1 < pr.sizeM
}

// readA streams A (sizeN x sizeK, row-major) one tile column at a time: for
// every reduction step, the TileN values of column k in the current row tile.
// Rows past sizeN are not read; a zero placeholder keeps the stream in step.
func readA(mem Reader, toKernel *Stream[apfloat.Packed], pr problem) {
	repeats := 1
	if pr.refetch {
		repeats = pr.tileM
	}
	var cache []apfloat.Packed
	for n0 := range pr.tilesN {
		for m0 := range pr.tilesM {
			replay := pr.operands == Cache && m0 > 0
			if pr.operands == Cache && m0 == 0 {
				cache = cache[:0]
			}
			i := 0
			for k := range pr.sizeK {
				for n1 := range pr.tileN {
					var num apfloat.Packed
					if replay {
						num = cache[i]
					} else {
						if row := n0*pr.tileN + n1; row < pr.sizeN {
							num = mem.Load(row*pr.sizeK + k)
						}
						if pr.operands == Cache {
							cache = append(cache, num)
						}
					}
					i++
					for range repeats {
						toKernel.Push(num)
					}
				}
			}
		}
	}
}

// readB streams B (sizeK x sizeM, row-major): for every reduction step, the
// TileM values of row k in the current column tile. Columns past sizeM are not
// read.
func readB(mem Reader, toKernel *Stream[apfloat.Packed], pr problem) {
	repeats := 1
	if pr.refetch {
		repeats = pr.tileN
	}
	var panels [][]apfloat.Packed
	if pr.operands == Cache {
		panels = make([][]apfloat.Packed, pr.tilesM)
	}
	row := make([]apfloat.Packed, pr.tileM)
	for n0 := range pr.tilesN {
		for m0 := range pr.tilesM {
			replay := pr.operands == Cache && n0 > 0
			for k := range pr.sizeK {
				if replay {
					copy(row, panels[m0][k*pr.tileM:])
				} else {
					for m1 := range pr.tileM {
						row[m1] = apfloat.Packed{}
						if col := m0*pr.tileM + m1; col < pr.sizeM {
							row[m1] = mem.Load(k*pr.sizeM + col)
						}
					}
					if pr.operands == Cache {
						panels[m0] = append(panels[m0], row...)
					}
				}
				for range repeats {
					for _, num := range row {
						toKernel.Push(num)
					}
				}
			}
		}
	}
}

// readC streams the accumulator once per output tile cell.
func readC(mem Reader, toKernel *Stream[apfloat.Packed], pr problem) {
	for n0 := range pr.tilesN {
		for m0 := range pr.tilesM {
			for n1 := range pr.tileN {
				for m1 := range pr.tileM {
					var num apfloat.Packed
					if pr.inBounds(n0, m0, n1, m1) {
						num = mem.Load((n0*pr.tileN+n1)*pr.sizeM + m0*pr.tileM + m1)
					}
					toKernel.Push(num)
				}
			}
		}
	}
}

// writeC stores one result per output tile cell. Results for cells outside
// the declared matrix are drained and dropped.
func writeC(fromKernel *Stream[apfloat.Packed], mem Writer, pr problem) {
	for n0 := range pr.tilesN {
		for m0 := range pr.tilesM {
			for n1 := range pr.tileN {
				for m1 := range pr.tileM {
					num := fromKernel.Pop()
					if pr.inBounds(n0, m0, n1, m1) {
						mem.Store((n0*pr.tileN+n1)*pr.sizeM+m0*pr.tileM+m1, num)
					}
				}
			}
		}
	}
}

// compute is the tile kernel. It returns the number of multiply-accumulates
// performed.
func compute(aIn, bIn, cIn, cOut *Stream[apfloat.Packed], pr problem, mac MultiplyAccumulateFunc) int64 {
	// A is constant across m1, B across n1 and the C tile across k.
	var aBuffer apfloat.Packed
	bBuffer := make([]apfloat.Packed, pr.tileM)
	cBuffer := make([]apfloat.Packed, pr.tileN*pr.tileM)
	var macs int64
	for n0 := range pr.tilesN {
		for m0 := range pr.tilesM {
			for k := range pr.sizeK {
				for n1 := range pr.tileN {
					for m1 := range pr.tileM {
						if m1 == 0 || pr.refetch {
							aBuffer = aIn.Pop()
						}
						if n1 == 0 || pr.refetch {
							bBuffer[m1] = bIn.Pop()
						}
						idx := n1*pr.tileM + m1
						var c apfloat.Packed
						if k == 0 {
							c = cIn.Pop()
						} else {
							c = cBuffer[idx]
						}
						// Out-of-bound cells pass the accumulator through.
						res := c
						if pr.inBounds(n0, m0, n1, m1) {
							res = mac(aBuffer, bBuffer[m1], c)
							macs++
						}
						cBuffer[idx] = res
						if k == pr.sizeK-1 {
							cOut.Push(res)
						}
					}
				}
			}
		}
	}
	return macs
}
