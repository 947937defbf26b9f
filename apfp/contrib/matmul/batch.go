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
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-apfp/apfp/contrib/workerpool"
)

// Job is one invocation of a batch.
type Job struct {
	A, B, CRead Reader
	CWrite      Writer

	SizeN, SizeK, SizeM int
}

// MatMulBatch runs every job through e, distributing jobs across pool.
// Jobs are independent invocations; jobs that share C storage must not run
// in the same batch. If pool is nil the jobs run one after another.
//
// All jobs are attempted. The error of the lowest-numbered failing job is
// returned, annotated with its index.
func (e *Engine) MatMulBatch(pool *workerpool.Pool, jobs []Job) error {
	errs := make([]error, len(jobs))
	run := func(i int) {
		j := jobs[i]
		errs[i] = e.MatMul(j.A, j.B, j.CRead, j.CWrite, j.SizeN, j.SizeK, j.SizeM)
	}
	if pool == nil {
		for i := range jobs {
			run(i)
		}
	} else {
		pool.ParallelForAtomic(len(jobs), run)
	}

	var failed int
	var first error
	for i, err := range errs {
		if err == nil {
			continue
		}
		if first == nil {
			first = errors.WithMessagef(err, "job %d", i)
		}
		failed++
	}
	if first != nil {
		klog.V(1).Infof("matmul batch: %d of %d jobs failed", failed, len(jobs))
	}
	return first
}
