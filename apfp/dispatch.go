package apfp

import (
	"os"
	"strconv"
)

// DispatchLevel identifies the word-multiply capability the base case of the
// Karatsuba recursion is tuned for.
type DispatchLevel int

const (
	// DispatchGeneric uses a conservative base width suited to any 64-bit
	// multiplier.
	DispatchGeneric DispatchLevel = iota

	// DispatchAVX2 targets x86-64 with AVX2 but without ADX.
	DispatchAVX2

	// DispatchADX targets x86-64 with BMI2 (MULX) and ADX (ADCX/ADOX), where
	// long schoolbook rows are cheap.
	DispatchADX

	// DispatchNEON targets ARM64 with ASIMD and UMULH.
	DispatchNEON

	// DispatchEnv means the base width came from APFP_KARATSUBA_BASE_BITS.
	DispatchEnv
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchGeneric:
		return "generic"
	case DispatchAVX2:
		return "avx2"
	case DispatchADX:
		return "adx"
	case DispatchNEON:
		return "neon"
	case DispatchEnv:
		return "env"
	default:
		return "unknown"
	}
}

// Base widths per dispatch level.
const (
	BaseBitsGeneric = 64
	BaseBitsAVX2    = 128
	BaseBitsADX     = 256
	BaseBitsNEON    = 128
)

// currentLevel is the detected level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// defaultBaseBits is the Karatsuba base width for this runtime.
// Set by init() in dispatch_*.go files.
var defaultBaseBits = BaseBitsGeneric

// CurrentLevel returns the detected dispatch level.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentName returns a human-readable name for the current dispatch level.
func CurrentName() string {
	return currentLevel.String()
}

// DefaultBaseBits returns the width at or below which the default Multiplier
// stops recursing.
func DefaultBaseBits() int {
	return defaultBaseBits
}

// BaseBitsEnvVar names the environment variable overriding DefaultBaseBits.
const BaseBitsEnvVar = "APFP_KARATSUBA_BASE_BITS"

// BaseBitsEnv parses the BaseBitsEnvVar environment variable.
// It returns false when the variable is unset or is not a positive integer.
// This is useful for testing and benchmarking different recursion depths.
func BaseBitsEnv() (int, bool) {
	val := os.Getenv(BaseBitsEnvVar)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// setLevel records the detected level, unless the environment overrides it.
func setLevel(level DispatchLevel, baseBits int) {
	if n, ok := BaseBitsEnv(); ok {
		currentLevel = DispatchEnv
		defaultBaseBits = n
		return
	}
	currentLevel = level
	defaultBaseBits = baseBits
}
