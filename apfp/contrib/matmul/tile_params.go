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
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// OperandPolicy selects how the A and B readers serve repeated tiles.
type OperandPolicy int

const (
	// ReRead streams A again from memory for every column tile and B again
	// for every row tile, keeping no operand cache in the readers.
	ReRead OperandPolicy = iota

	// Cache keeps the current A row panel and every B column panel in the
	// readers and replays them, trading buffer space for memory reads.
	Cache
)

// String returns a human-readable name for the policy.
func (p OperandPolicy) String() string {
	switch p {
	case ReRead:
		return "reread"
	case Cache:
		return "cache"
	default:
		return "unknown"
	}
}

// ParseOperandPolicy is the inverse of OperandPolicy.String.
func ParseOperandPolicy(s string) (OperandPolicy, error) {
	switch s {
	case "reread":
		return ReRead, nil
	case "cache":
		return Cache, nil
	}
	return 0, errors.Errorf("matmul: unknown operand policy %q", s)
}

// TileParams defines the blocking of one invocation.
//
// The output is processed in TileN x TileM tiles; for every tile the whole
// reduction dimension is streamed through the compute stage. The compute
// stage holds 1 + TileM + TileN*TileM packed values in its reuse buffers.
type TileParams struct {
	TileN       int // Tile rows (output rows per tile)
	TileM       int // Tile columns (output columns per tile)
	StreamDepth int // Capacity of every inter-stage stream, at least 1

	Operands OperandPolicy

	// Refetch disables the A and B reuse buffers: the readers emit A and B
	// once per tile cell and the compute stage pops on every step. Results
	// are identical; this exists to check that reuse is purely an
	// optimization.
	Refetch bool
}

// TileParamsDefault returns the tiling used by MatMul.
// A 16x16 tile keeps the C accumulator at 16 KiB of packed values.
func TileParamsDefault() TileParams {
	return TileParams{
		TileN:       16,
		TileM:       16,
		StreamDepth: 64,
	}
}

// TileParamsSmall returns a small tiling, useful for tiny matrices and for
// exercising partial tiles.
func TileParamsSmall() TileParams {
	return TileParams{
		TileN:       2,
		TileM:       2,
		StreamDepth: 4,
	}
}

// Validate reports whether p can drive an invocation.
func (p TileParams) Validate() error {
	if p.TileN <= 0 || p.TileM <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "tile shape must be positive, got %dx%d", p.TileN, p.TileM)
	}
	if p.StreamDepth <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "stream depth must be positive, got %d", p.StreamDepth)
	}
	if p.Operands != ReRead && p.Operands != Cache {
		return errors.Wrapf(ErrInvalidArgument, "unknown operand policy %d", int(p.Operands))
	}
	return nil
}

// ReuseBufferSize returns the number of packed values held by the compute
// stage's reuse buffers.
func (p TileParams) ReuseBufferSize() int {
	return 1 + p.TileM + p.TileN*p.TileM
}

// ReaderCacheSize returns the number of packed values the A and B readers
// cache under the Cache policy, or 0 under ReRead.
func (p TileParams) ReaderCacheSize(sizeK, sizeM int) int {
	if p.Operands != Cache {
		return 0
	}
	return sizeK*p.TileN + sizeK*ceilDiv(sizeM, p.TileM)*p.TileM
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}
