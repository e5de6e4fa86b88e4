package spectrometer

import (
	"fmt"
	"strings"
)

// Kind identifies the type of acquisition to simulate.
type Kind int

const (
	// KindSample is a lamp baseline with absorption dips, as seen through a
	// specimen.
	KindSample Kind = iota
	// KindReference is the lamp-only baseline.
	KindReference
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSample:
		return "sample"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) valid() bool {
	return k == KindSample || k == KindReference
}

// ParseKind maps "sample" or "reference" (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sample":
		return KindSample, nil
	case "reference":
		return KindReference, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
