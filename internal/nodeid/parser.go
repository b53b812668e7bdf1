// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex validates a single path segment.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// isValidSegmentName checks for undesirable but technically valid names.
func isValidSegmentName(name string) bool {
	return name != "-"
}

func splitSegments(raw string, allowWildcard bool) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ".")
	for _, seg := range parts {
		if seg == "" {
			return nil, fmt.Errorf("path %q contains empty segment", raw)
		}
		if allowWildcard && seg == Wildcard {
			continue
		}
		if !segmentRegex.MatchString(seg) {
			return nil, fmt.Errorf("invalid path segment format: %q", seg)
		}
		if !isValidSegmentName(seg) {
			return nil, fmt.Errorf("invalid segment name: %q", seg)
		}
	}
	return parts, nil
}

// Parse creates a Path from its dotted representation. The empty string
// parses to the root path.
func Parse(raw string) (Path, error) {
	segs, err := splitSegments(raw, false)
	if err != nil {
		return Root, err
	}
	return Path{segments: segs}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// literals in code and tests.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseName validates a single child name.
func ParseName(name string) error {
	if strings.Contains(name, ".") {
		return fmt.Errorf("name %q must not contain '.'", name)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	_, err := splitSegments(name, false)
	return err
}

// ParsePattern creates an overlay target Pattern. The empty string is the
// match-all pattern; a leading "/" makes the pattern qualified.
func ParsePattern(raw string) (Pattern, error) {
	qualified := strings.HasPrefix(raw, QualifiedPrefix)
	if qualified {
		raw = strings.TrimPrefix(raw, QualifiedPrefix)
		if raw == "" {
			return MatchAll, fmt.Errorf("qualified pattern %q names no element", QualifiedPrefix)
		}
	}
	segs, err := splitSegments(raw, true)
	if err != nil {
		return MatchAll, err
	}
	return Pattern{segments: segs, qualified: qualified}, nil
}
