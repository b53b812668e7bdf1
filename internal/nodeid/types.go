// internal/nodeid/types.go
package nodeid

// Wildcard is the pattern segment that matches any single path segment.
const Wildcard = "*"

// Path is the immutable, structured identifier of a node in the namespace
// tree. Methods never modify the receiver; derived paths get their own
// backing array.
type Path struct {
	segments []string
}

// Root is the empty path, addressing the top-level group.
var Root = Path{}

// New builds a Path from already validated segments.
func New(segments ...string) Path {
	if len(segments) == 0 {
		return Root
	}
	return Path{segments: append([]string(nil), segments...)}
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Name returns the last segment, or "" for the root.
func (p Path) Name() string {
	if p.IsRoot() {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Pattern is an overlay target. A relative pattern is resolved against the
// declaring group; a qualified pattern names one absolute path.
type Pattern struct {
	segments  []string
	qualified bool
}

// QualifiedPrefix marks a pattern as an absolute path.
const QualifiedPrefix = "/"

// MatchAll is the empty pattern; it matches every descendant.
var MatchAll = Pattern{}
