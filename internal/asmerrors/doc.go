// Package asmerrors provides the structured error types raised by the
// assembly engine.
//
// Every type matches a sentinel through errors.Is, and carries its
// underlying cause through Unwrap, so callers can test the category of a
// failure no matter how deeply it was wrapped:
//
//	v, err := root.Lookup(ctx, nodeid.MustParse("handlers.fizz"))
//	if errors.Is(err, asmerrors.ErrCyclicDependency) {
//	    // an element referenced itself while being built
//	}
//
//	var buildErr *asmerrors.BuildError
//	if errors.As(err, &buildErr) {
//	    fmt.Println("failed while building", buildErr.Path)
//	}
//
// # Error Types
//
//   - [NotFoundError]: a path does not resolve to any definition
//   - [CyclicDependencyError]: an element was requested while it was being materialized
//   - [ResolutionError]: an overlay transform can neither be called nor constructed
//   - [BuildError]: a builder or overlay transform failed; carries the originating path
//   - [ConfigError]: an invalid definition (duplicate names, malformed names, finished groups)
//
// None of these are recovered by the engine. Failed builds are not cached:
// the next lookup of the same path runs the builder again.
package asmerrors
