// Package registry provides the Root of a finished assembly.
//
// The Root is the only way to obtain values from an assembly. It resolves
// paths by walking the frozen group tree and materializes elements lazily:
//
//   - Materialize builds an element and folds its value overlays over the
//     raw result, at most once per path for the lifetime of the Root.
//   - Lookup materializes and then folds the element's reference overlays
//     over the memoized value on every call.
//   - Looking up a group returns a View scoped under that group's path.
//
// A path requested while its own materialization is on the resolution
// stack fails with a CyclicDependencyError. A failed build is not cached:
// the element returns to pending and the next lookup builds it again, which
// matters for builders that are not idempotent.
//
// Construction is single-threaded. A Root must not be used to build
// elements from several goroutines at once; values that are already
// materialized can be read concurrently.
package registry
