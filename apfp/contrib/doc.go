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

// Package contrib holds the packages built on the apfp integer kernels.
//
// # Subpackages
//
//   - apfloat: 448-bit mantissa packed floats with truncating Add, Multiply
//     and MultiplyAccumulate
//   - matmul: streaming tiled C = A*B + C over packed floats
//   - workerpool: a persistent worker pool for batched invocations
//
// # Packed floats (apfp/contrib/apfloat)
//
//	import "github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
//
//	x := apfloat.FromInt64(3)
//	y, _ := apfloat.FromFloat64(0.5)
//	z := apfloat.MultiplyAccumulate(x, y, apfloat.Zero) // 1.5
//
// # Matrix multiplication (apfp/contrib/matmul)
//
//	import "github.com/ajroetker/go-apfp/apfp/contrib/matmul"
//
//	c := matmul.Slice(cValues)
//	err := matmul.MatMul(matmul.Slice(aValues), matmul.Slice(bValues), c, c, n, k, m)
//
// See subpackage documentation for detailed API information.
package contrib
