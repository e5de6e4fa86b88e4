//go:build arm64

package envcheck

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

func detectCPU() CPUFeatures {
	return CPUFeatures{
		Architecture: runtime.GOARCH,
		HasNEON:      cpu.ARM64.HasASIMD,
	}
}
