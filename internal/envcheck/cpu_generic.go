//go:build !amd64 && !arm64

package envcheck

import "runtime"

func detectCPU() CPUFeatures {
	return CPUFeatures{Architecture: runtime.GOARCH}
}
