// Package overlay models the cross-cutting transformations applied to
// elements of an assembly.
//
// An overlay is declared in a group with a Kind, a target Pattern relative
// to that group, a Transform and bound arguments:
//
//   - Value overlays run once, when the targeted element is materialized.
//     Their result is memoized together with the raw build.
//   - Reference overlays run every time the targeted element is looked up
//     by someone else. They model "this access is happening now".
//
// # Transforms
//
// A Transform is one of three variants, picked once when the overlay is
// declared:
//
//   - FunctionOverlay: the transform is invoked directly.
//   - ConstructorOverlay: the transform constructs a new value around the current one.
//   - PathOverlay: a deferred reference to another element of the same
//     assembly, resolved lazily through the Resolver on first use.
//
// FromValue performs the duck-typed dispatch used for path references and
// catalog entries: a value that can be called is a FunctionOverlay, one
// that can only be constructed is a ConstructorOverlay, anything else is a
// ResolutionError.
//
// Every invocation follows the calling convention
//
//	next, err := transform(ctx, current, args...)
//
// and a Chain applies its overlays as a left fold in declaration order.
// The context carries the logger and the path of the element being
// transformed (see TargetFromContext).
package overlay
