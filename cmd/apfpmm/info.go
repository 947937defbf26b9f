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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-apfp/apfp"
	"github.com/ajroetker/go-apfp/apfp/contrib/apfloat"
	"github.com/ajroetker/go-apfp/apfp/contrib/matmul"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the dispatched multiplier and the default tiling",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dispatch:        %s\n", apfp.CurrentName())
			fmt.Fprintf(w, "karatsuba base:  %d bits\n", apfp.DefaultBaseBits())
			if bits, ok := apfp.BaseBitsEnv(); ok {
				fmt.Fprintf(w, "                 (%s=%d)\n", apfp.BaseBitsEnvVar, bits)
			}
			fmt.Fprintf(w, "mantissa:        %d bits, %s per value\n",
				apfloat.MantissaBits, humanize.IBytes(apfloat.PackedBytes))
			p := matmul.TileParamsDefault()
			fmt.Fprintf(w, "default tiling:  %dx%d, stream depth %d, reuse buffers %s\n",
				p.TileN, p.TileM, p.StreamDepth, humanize.IBytes(uint64(p.ReuseBufferSize()*apfloat.PackedBytes)))
		},
	}
}
