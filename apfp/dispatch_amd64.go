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

//go:build amd64

package apfp

import "golang.org/x/sys/cpu"

func init() {
	switch {
	case cpu.X86.HasBMI2 && cpu.X86.HasADX:
		// MULX plus the two independent carry chains keep 4-word rows fast.
		setLevel(DispatchADX, BaseBitsADX)
	case cpu.X86.HasAVX2:
		setLevel(DispatchAVX2, BaseBitsAVX2)
	default:
		setLevel(DispatchGeneric, BaseBitsGeneric)
	}
}
