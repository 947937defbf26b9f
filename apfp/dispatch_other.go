//go:build !amd64 && !arm64

package apfp

func init() {
	setLevel(DispatchGeneric, BaseBitsGeneric)
}
