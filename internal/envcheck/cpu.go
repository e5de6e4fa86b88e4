package envcheck

import "strings"

// CPUFeatures lists the SIMD extensions relevant to the block arithmetic of
// the simulator.
type CPUFeatures struct {
	Architecture string
	HasSSE2      bool
	HasAVX       bool
	HasAVX2      bool
	HasAVX512    bool
	HasNEON      bool
}

// Names returns the detected extensions in ascending order.
func (f CPUFeatures) Names() []string {
	var names []string
	for _, e := range []struct {
		ok   bool
		name string
	}{
		{f.HasSSE2, "SSE2"},
		{f.HasAVX, "AVX"},
		{f.HasAVX2, "AVX2"},
		{f.HasAVX512, "AVX-512"},
		{f.HasNEON, "NEON"},
	} {
		if e.ok {
			names = append(names, e.name)
		}
	}
	return names
}

// CheckCPU reports the SIMD extensions of the host. It is informational
// and always passes.
func (c *Checker) CheckCPU() Result {
	detect := c.CPU
	if detect == nil {
		detect = detectCPU
	}
	f := detect()

	r := Result{Name: "CPU", Passed: true}
	if names := f.Names(); len(names) > 0 {
		r.Detail = f.Architecture + " (" + strings.Join(names, ", ") + ")"
	} else {
		r.Detail = f.Architecture + " (no SIMD acceleration)"
	}
	return r
}
