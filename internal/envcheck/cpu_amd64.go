//go:build amd64

package envcheck

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// SSE2 is part of the amd64 baseline.
func detectCPU() CPUFeatures {
	return CPUFeatures{
		Architecture: runtime.GOARCH,
		HasSSE2:      cpu.X86.HasSSE2,
		HasAVX:       cpu.X86.HasAVX,
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512,
	}
}
