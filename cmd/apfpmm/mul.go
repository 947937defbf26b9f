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
	"github.com/pkg/errors"
	"github.com/remyoudompheng/bigfft"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/ajroetker/go-apfp/apfp"
	"github.com/ajroetker/go-apfp/internal/random"
)

func newMulCmd() *cobra.Command {
	var (
		bits, count, base int
		seed              uint64
	)
	cmd := &cobra.Command{
		Use:   "mul",
		Short: "Check the Karatsuba multiplier against an FFT product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bits <= 0 || count <= 0 {
				return errors.Errorf("--bits and --count must be positive, got %d and %d", bits, count)
			}
			mul := apfp.DefaultMultiplier()
			if base > 0 {
				mul = apfp.NewMultiplier(base)
			}
			gen := random.New(seed)
			var elapsed time.Duration
			for i := range count {
				a, b := gen.UInt(bits), gen.UInt(bits)
				start := time.Now()
				got := mul.Mul(a, b)
				elapsed += time.Since(start)
				want := bigfft.Mul(a.Big(), b.Big())
				if got.Big().Cmp(want) != 0 {
					return errors.Errorf("product %d differs: %s * %s = %s, want 0x%s", i, a, b, got, want.Text(16))
				}
			}
			klog.V(1).Infof("mul: %d-bit operands, base %d bits", bits, mul.BaseBits())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d-bit products match (base %d bits, %s per product)\n",
				humanize.Comma(int64(count)), bits, mul.BaseBits(), elapsed/time.Duration(count))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&bits, "bits", 448, "Operand width in bits")
	f.IntVar(&count, "count", 1000, "Number of random products")
	f.IntVar(&base, "base", 0, "Recursion base width in bits (0 for the dispatched default)")
	f.Uint64Var(&seed, "seed", 1, "Random seed")
	return cmd
}
