// Package version carries the library's own semantic version and a
// compatibility check for a caller-declared wire-format version header.
package version

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// Wire is the current wire-format version this module encodes and fully
// understands when decoding.
const Wire = "1.0.0"

// MinSupported is the oldest caller-declared wire version this module will
// still accept.
const MinSupported = "1.0.0"

// CheckCompatible parses declared and reports whether it meets
// MinSupported, so a transport adapter can reject stale callers before
// attempting to decode their payload.
func CheckCompatible(declared string) error {
	v, err := version.NewVersion(declared)
	if err != nil {
		return fmt.Errorf("version: invalid version string %q: %w", declared, err)
	}
	min, err := version.NewVersion(MinSupported)
	if err != nil {
		return fmt.Errorf("version: invalid MinSupported constant: %w", err)
	}
	if v.LessThan(min) {
		return fmt.Errorf("version: declared wire version %s is below minimum supported %s", declared, MinSupported)
	}
	return nil
}
