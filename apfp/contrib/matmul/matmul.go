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
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
)

// ErrInvalidArgument is wrapped by every precondition failure of an
// invocation.
var ErrInvalidArgument = errors.New("matmul: invalid argument")

// MultiplyAccumulateFunc computes a*b + c.
type MultiplyAccumulateFunc func(a, b, c apfloat.Packed) apfloat.Packed

// Engine runs tiled matmul invocations with a fixed tiling.
// An Engine is safe for concurrent use; every invocation builds its own
// streams and stages.
type Engine struct {
	params TileParams

	// MultiplyAccumulate is the arithmetic of the compute stage.
	// If nil, apfloat.MultiplyAccumulate is used.
	MultiplyAccumulate MultiplyAccumulateFunc

	macs atomic.Int64
}

// NewEngine returns an Engine for the given tiling. The params are checked
// on every invocation.
func NewEngine(params TileParams) *Engine {
	return &Engine{params: params}
}

// Params returns the tiling of e.
func (e *Engine) Params() TileParams {
	return e.params
}

// MACs returns the total number of multiply-accumulates e has performed.
func (e *Engine) MACs() int64 {
	return e.macs.Load()
}

// MatMul computes C = A*B + C with the default tiling.
// See Engine.MatMul.
func MatMul(a, b, cRead Reader, cWrite Writer, sizeN, sizeK, sizeM int) error {
	return NewEngine(TileParamsDefault()).MatMul(a, b, cRead, cWrite, sizeN, sizeK, sizeM)
}

// MatMul computes C = A*B + C.
//
//   - a holds A, sizeN x sizeK, row-major
//   - b holds B, sizeK x sizeM, row-major
//   - cRead holds the accumulator C, sizeN x sizeM, row-major
//   - cWrite receives the result, same layout as cRead
//
// cRead and cWrite may be views of the same storage. The call returns once
// every stage has finished; the result is only observable through cWrite.
// An error wrapping ErrInvalidArgument is returned, before anything is read,
// if the dimensions, ports or tiling are unusable.
func (e *Engine) MatMul(a, b, cRead Reader, cWrite Writer, sizeN, sizeK, sizeM int) error {
	if err := e.check(a, b, cRead, cWrite, sizeN, sizeK, sizeM); err != nil {
		return err
	}
	mac := e.MultiplyAccumulate
	if mac == nil {
		mac = apfloat.MultiplyAccumulate
	}
	pr := newProblem(e.params, sizeN, sizeK, sizeM)
	id := uuid.New()
	start := time.Now()

	depth := e.params.StreamDepth
	aToKernel := NewStream[apfloat.Packed]("a_to_kernel", depth)
	bToKernel := NewStream[apfloat.Packed]("b_to_kernel", depth)
	cToKernel := NewStream[apfloat.Packed]("c_to_kernel", depth)
	kernelToC := NewStream[apfloat.Packed]("kernel_to_c", depth)

	var wg sync.WaitGroup
	stage := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
			klog.V(2).Infof("matmul %s: stage %s done after %s", id, name, time.Since(start))
		}()
	}
	var macs int64
	stage("ReadA", func() { readA(a, aToKernel, pr) })
	stage("ReadB", func() { readB(b, bToKernel, pr) })
	stage("ReadC", func() { readC(cRead, cToKernel, pr) })
	stage("Compute", func() { macs = compute(aToKernel, bToKernel, cToKernel, kernelToC, pr, mac) })
	stage("WriteC", func() { writeC(kernelToC, cWrite, pr) })
	wg.Wait()

	e.macs.Add(macs)
	klog.V(1).Infof("matmul %s: %dx%dx%d in %dx%d tiles (%s), %d MACs in %s",
		id, sizeN, sizeK, sizeM, e.params.TileN, e.params.TileM, e.params.Operands, macs, time.Since(start))
	return nil
}

// check validates an invocation.
func (e *Engine) check(a, b, cRead Reader, cWrite Writer, sizeN, sizeK, sizeM int) error {
	if err := e.params.Validate(); err != nil {
		return err
	}
	if sizeN <= 0 || sizeK <= 0 || sizeM <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "dimensions must be positive, got size_n=%d size_k=%d size_m=%d",
			sizeN, sizeK, sizeM)
	}
	ports := []struct {
		name string
		port interface{ Len() int }
		need int
	}{
		{"a", a, sizeN * sizeK},
		{"b", b, sizeK * sizeM},
		{"c_read", cRead, sizeN * sizeM},
		{"c_write", cWrite, sizeN * sizeM},
	}
	for _, p := range ports {
		if isNil(p.port) {
			return errors.Wrapf(ErrInvalidArgument, "%s memory is nil", p.name)
		}
		if got := p.port.Len(); got < p.need {
			return errors.Wrapf(ErrInvalidArgument, "%s memory holds %d values, need %d", p.name, got, p.need)
		}
	}
	return nil
}

// isNil catches both nil interfaces and nil *DRAM pointers.
func isNil(port interface{ Len() int }) bool {
	if port == nil {
		return true
	}
	d, ok := port.(*DRAM)
	return ok && d == nil
}
