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
	"github.com/ajroetker/go-apfp/apfp/contrib/workerpool"
)

// MatMulReference computes C = A*B + C in place with the naive triple loop.
//
// For every output cell the reduction folds k from 0 to k-1, the same order
// the streaming engine uses, so results match the engine bit for bit.
func MatMulReference(a, b, c []apfloat.Packed, n, k, m int) {
	matMulRows(a, b, c, 0, n, k, m)
}

// ParallelMatMulReference is MatMulReference with rows of C distributed
// across pool.
func ParallelMatMulReference(pool *workerpool.Pool, a, b, c []apfloat.Packed, n, k, m int) {
	if pool == nil {
		MatMulReference(a, b, c, n, k, m)
		return
	}
	pool.ParallelFor(n, func(start, end int) {
		matMulRows(a, b, c, start, end, k, m)
	})
}

func matMulRows(a, b, c []apfloat.Packed, rowStart, rowEnd, k, m int) {
	for i := rowStart; i < rowEnd; i++ {
		cRow := c[i*m : (i+1)*m]
		aRow := a[i*k : (i+1)*k]
		for j := range m {
			acc := cRow[j]
			for p, av := range aRow {
				acc = apfloat.MultiplyAccumulate(av, b[p*m+j], acc)
			}
			cRow[j] = acc
		}
	}
}
