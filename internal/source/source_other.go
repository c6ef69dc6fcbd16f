//go:build !windows

package source

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/danmuck/tdhctl/internal/tdh"
)

// System is unavailable off Windows; there is no native metadata source
// to adapt.
func System() (tdh.Source, error) {
	return nil, fmt.Errorf("source: no system metadata source on %s: %w",
		runtime.GOOS, errors.ErrUnsupported)
}
