//go:build arm64

package apfp

import "golang.org/x/sys/cpu"

func init() {
	// ASIMD is part of the ARMv8-A base architecture, so this is the normal
	// path; the check keeps the generic fallback for exotic cores.
	if cpu.ARM64.HasASIMD {
		setLevel(DispatchNEON, BaseBitsNEON)
	} else {
		setLevel(DispatchGeneric, BaseBitsGeneric)
	}
}
