// internal/nodeid/address.go
package nodeid

import (
	"strings"
)

// String serializes the Path into its canonical dotted form.
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Child returns a new path with name appended.
func (p Path) Child(name string) Path {
	segs := make([]string, 0, len(p.segments)+1)
	segs = append(segs, p.segments...)
	return Path{segments: append(segs, name)}
}

// Join appends every segment of rel to p.
func (p Path) Join(rel Path) Path {
	if rel.IsRoot() {
		return p
	}
	segs := make([]string, 0, len(p.segments)+len(rel.segments))
	segs = append(segs, p.segments...)
	return Path{segments: append(segs, rel.segments...)}
}

// Parent returns the enclosing path. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p.segments) <= 1 {
		return Root
	}
	return New(p.segments[:len(p.segments)-1]...)
}

// HasPrefix reports whether prefix is p itself or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	for i, seg := range prefix.segments {
		if p.segments[i] != seg {
			return false
		}
	}
	return true
}

// Rel returns p relative to prefix. ok is false when prefix is not an
// ancestor of p (or p itself).
func (p Path) Rel(prefix Path) (Path, bool) {
	if !p.HasPrefix(prefix) {
		return Root, false
	}
	return New(p.segments[len(prefix.segments):]...), true
}

// String serializes the Pattern; the match-all pattern is "".
func (pt Pattern) String() string {
	if pt.qualified {
		return QualifiedPrefix + strings.Join(pt.segments, ".")
	}
	return strings.Join(pt.segments, ".")
}

// Qualified reports whether the pattern names an absolute path.
func (pt Pattern) Qualified() bool {
	return pt.qualified
}

// Matches reports whether rel, a path relative to the declaring group,
// is selected by a relative pattern: rel must start with the pattern
// segments, where a wildcard segment accepts any name.
func (pt Pattern) Matches(rel Path) bool {
	if pt.qualified || len(pt.segments) > len(rel.segments) {
		return false
	}
	for i, seg := range pt.segments {
		if seg != Wildcard && rel.segments[i] != seg {
			return false
		}
	}
	return true
}

// MatchesExact reports whether p, an absolute path, has exactly the
// segments of the pattern.
func (pt Pattern) MatchesExact(p Path) bool {
	if len(pt.segments) != len(p.segments) {
		return false
	}
	for i, seg := range pt.segments {
		if seg != Wildcard && p.segments[i] != seg {
			return false
		}
	}
	return true
}
