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

// Package matmul provides a tiled, streaming matrix multiplication engine for
// arbitrary-precision packed floats.
//
// Each invocation computes C = A*B + C as a dataflow graph of five stages
// connected by bounded streams:
//
//	ReadA ──a_to_kernel──┐
//	ReadB ──b_to_kernel──┼──> Compute ──kernel_to_c──> WriteC
//	ReadC ──c_to_kernel──┘
//
// Every stage is a goroutine running a sequential loop over the same tile
// index space; stages only synchronize through blocking Push and Pop on the
// streams. The compute stage keeps one A element, one row of B and one full
// tile of C in reuse buffers, so A and B are streamed once per reduction
// step rather than once per output cell.
//
// Example usage:
//
//	// C = A*B + C where A is NxK, B is KxM, C is NxM, all row-major.
//	a := matmul.Slice(aValues)
//	b := matmul.Slice(bValues)
//	c := matmul.Slice(cValues)
//
//	err := matmul.MatMul(a, b, c, c, n, k, m)
//
// The read and write views of C may be the same storage. Cells of partial
// trailing tiles that fall outside the declared matrices are neither read nor
// written.
package matmul
