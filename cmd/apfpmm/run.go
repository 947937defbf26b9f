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

package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
	"github.com/ajroetker/go-apfp/apfp/contrib/matmul"
	"github.com/ajroetker/go-apfp/apfp/contrib/workerpool"
	"github.com/ajroetker/go-apfp/internal/random"
)

// policyValue adapts matmul.OperandPolicy to a command line flag.
type policyValue matmul.OperandPolicy

var _ pflag.Value = (*policyValue)(nil)

func (p *policyValue) String() string { return matmul.OperandPolicy(*p).String() }
func (p *policyValue) Type() string   { return "policy" }

func (p *policyValue) Set(s string) error {
	policy, err := matmul.ParseOperandPolicy(s)
	if err != nil {
		return err
	}
	*p = policyValue(policy)
	return nil
}

type runOptions struct {
	n, k, m  int
	params   matmul.TileParams
	operands policyValue
	seed     uint64
	repeat   int
	batch    int
	workers  int
	verify   bool
	progress bool
	minExp   int64
	maxExp   int64
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{params: matmul.TileParamsDefault()}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Multiply random matrices with the streaming engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatMul(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.n, "size-n", "n", 32, "Rows of A and C")
	f.IntVarP(&opts.k, "size-k", "k", 32, "Columns of A and rows of B")
	f.IntVarP(&opts.m, "size-m", "m", 32, "Columns of B and C")
	f.IntVar(&opts.params.TileN, "tile-n", opts.params.TileN, "Output rows per tile")
	f.IntVar(&opts.params.TileM, "tile-m", opts.params.TileM, "Output columns per tile")
	f.IntVar(&opts.params.StreamDepth, "depth", opts.params.StreamDepth, "Capacity of every inter-stage stream")
	f.Var(&opts.operands, "operands", "Operand policy of the A and B readers (reread or cache)")
	f.BoolVar(&opts.params.Refetch, "refetch", false, "Disable the A and B reuse buffers of the compute stage")
	f.Uint64Var(&opts.seed, "seed", 42, "Random seed for the inputs")
	f.IntVar(&opts.repeat, "repeat", 1, "Number of timed repetitions")
	f.IntVar(&opts.batch, "batch", 1, "Independent problems per repetition")
	f.IntVar(&opts.workers, "workers", 0, "Workers running batched problems and the reference (0 for GOMAXPROCS)")
	f.BoolVar(&opts.verify, "verify", true, "Compare the result against the naive reference")
	f.BoolVar(&opts.progress, "progress", true, "Show a progress bar")
	f.Int64Var(&opts.minExp, "min-exp", random.DefaultMinExponent, "Smallest exponent of the random inputs")
	f.Int64Var(&opts.maxExp, "max-exp", random.DefaultMaxExponent, "Largest exponent of the random inputs")
	return cmd
}

type problemData struct {
	a, b, c []apfloat.Packed
	out     matmul.Slice
}

func runMatMul(cmd *cobra.Command, opts *runOptions) error {
	if opts.repeat <= 0 || opts.batch <= 0 {
		return errors.Errorf("--repeat and --batch must be positive, got %d and %d", opts.repeat, opts.batch)
	}
	params := opts.params
	params.Operands = matmul.OperandPolicy(opts.operands)
	if err := params.Validate(); err != nil {
		return err
	}
	engine := matmul.NewEngine(params)
	pool := workerpool.New(opts.workers)
	defer pool.Close()

	gen := random.New(opts.seed, random.WithExponentRange(opts.minExp, opts.maxExp))
	n, k, m := opts.n, opts.k, opts.m
	problems := make([]problemData, opts.batch)
	jobs := make([]matmul.Job, opts.batch)
	for i := range problems {
		p := &problems[i]
		p.a, p.b, p.c = gen.PackedSlice(n*k), gen.PackedSlice(k*m), gen.PackedSlice(n*m)
		p.out = make(matmul.Slice, n*m)
		jobs[i] = matmul.Job{
			A: matmul.Slice(p.a), B: matmul.Slice(p.b), CRead: p.out, CWrite: p.out,
			SizeN: n, SizeK: k, SizeM: m,
		}
	}
	klog.V(1).Infof("run: %d problem(s) of %dx%dx%d, %dx%d tiles, depth %d, %s, refetch=%t, %d workers",
		opts.batch, n, k, m, params.TileN, params.TileM, params.StreamDepth, params.Operands, params.Refetch,
		pool.NumWorkers())

	bar := progressbar.NewOptions(opts.repeat,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("matmul"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(opts.progress),
		progressbar.OptionClearOnFinish())
	var elapsed time.Duration
	for range opts.repeat {
		for i := range problems {
			copy(problems[i].out, problems[i].c)
		}
		start := time.Now()
		if err := engine.MatMulBatch(pool, jobs); err != nil {
			return err
		}
		elapsed += time.Since(start)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	macs := engine.MACs()
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s MACs in %s (%sMAC/s)\n", humanize.Comma(macs), elapsed.Round(time.Microsecond),
		humanize.SIWithDigits(float64(macs)/elapsed.Seconds(), 2, ""))
	fmt.Fprintf(w, "operands: %s in, %s out, %s reader cache, %s reuse buffers\n",
		humanize.IBytes(uint64(opts.batch*(n*k+k*m+n*m)*apfloat.PackedBytes)),
		humanize.IBytes(uint64(opts.batch*n*m*apfloat.PackedBytes)),
		humanize.IBytes(uint64(params.ReaderCacheSize(k, m)*apfloat.PackedBytes)),
		humanize.IBytes(uint64(params.ReuseBufferSize()*apfloat.PackedBytes)))

	if !opts.verify {
		return nil
	}
	for i, p := range problems {
		want := append([]apfloat.Packed(nil), p.c...)
		matmul.ParallelMatMulReference(pool, p.a, p.b, want, n, k, m)
		if diff := cmp.Diff(want, []apfloat.Packed(p.out)); diff != "" {
			klog.Errorf("problem %d mismatch (-want +got):\n%s", i, diff)
			return errors.Errorf("problem %d does not match the reference", i)
		}
	}
	fmt.Fprintf(w, "verified %d problem(s) against the reference\n", len(problems))
	return nil
}
