// Package element defines the leaf build unit of an assembly.
//
// An Element couples a Builder with the two overlay chains bound to its
// path. Construct runs the builder and folds the value chain over the raw
// result; the registry memoizes that final value. ApplyReferenceChain folds
// the reference chain over a value and is run by the registry on every
// lookup.
//
// Builders never see overlay chains. They receive a BuildContext exposing
// the inherited config directory, the element's own path, and lookups into
// the rest of the assembly.
package element
