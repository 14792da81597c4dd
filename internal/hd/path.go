package hd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PathStep is one segment of a derivation path.
type PathStep struct {
	Index    uint32
	Hardened bool
}

// DerivationPath is an ordered sequence of path steps below the master key.
type DerivationPath []PathStep

// ErrInvalidPath is returned for paths that cannot be parsed.
var ErrInvalidPath = errors.New("invalid derivation path")

// ParsePath parses a textual path like "m/44'/60'/0'/0/0".
func ParsePath(s string) (DerivationPath, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}

	path := make(DerivationPath, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}
		idx, err := strconv.ParseUint(part, 10, 32)
		if err != nil || idx >= hardenedOffset {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, part)
		}
		path = append(path, PathStep{Index: uint32(idx), Hardened: hardened})
	}
	return path, nil
}

// MustParsePath parses a path known to be valid at compile time.
func MustParsePath(s string) DerivationPath {
	path, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return path
}

// String renders the path in the conventional "m/44'/0'/..." form.
func (p DerivationPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, step := range p {
		sb.WriteString("/")
		sb.WriteString(strconv.FormatUint(uint64(step.Index), 10))
		if step.Hardened {
			sb.WriteString("'")
		}
	}
	return sb.String()
}
