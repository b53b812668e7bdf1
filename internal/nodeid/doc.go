// internal/nodeid/doc.go

/*
Package nodeid provides the structured representation of positions in the
assembly namespace.

A Path is a dot-separated sequence of name segments, e.g. `handlers.fizz`.
The empty Path addresses the root group. A Pattern is an overlay target,
written relative to the group that declares the overlay: it matches the
element at that relative path and everything underneath it, and a `*`
segment matches any single segment.

This package centralizes all formatting, parsing and matching logic so the
rest of the engine never handles raw strings.
*/
package nodeid
