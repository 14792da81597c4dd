// Package entropy wraps the operating system CSPRNG. Every consumer of
// random bytes in the wallet core goes through Read so that an entropy
// failure aborts the calling operation instead of degrading silently.
package entropy

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrEntropyUnavailable is returned when the OS random source cannot
// satisfy the request. There is no fallback source and no retry.
var ErrEntropyUnavailable = errors.New("entropy unavailable")

// Read returns n cryptographically secure random bytes.
func Read(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid entropy length %d", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return b, nil
}
