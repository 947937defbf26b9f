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

// Command apfpmm runs and checks the arbitrary-precision matrix
// multiplication engine.
//
// Usage:
//
//	apfpmm run -n 64 -k 64 -m 64 --tile-n 16 --tile-m 16 --operands cache
//	apfpmm run -n 33 -k 7 -m 9 --batch 8 --workers 4 -v 1
//	apfpmm mul --bits 448 --count 1000 --base 64
//	apfpmm info
//
// The run command fills A, B and C with random values, computes C = A*B + C
// with the streaming engine and compares the result against the naive
// reference. The mul command checks the Karatsuba multiplier against an
// independent FFT-based product.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "apfpmm",
		Short:         "Arbitrary-precision floating point matrix multiplication",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)

	root.AddCommand(newRunCmd(), newMulCmd(), newInfoCmd())
	return root
}
