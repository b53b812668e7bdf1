// Package nodestore defines the interface of the memoization table a Root
// keeps for its elements.
//
// # Why Node Store Exists
//
// The finished group tree is immutable; everything that changes while an
// assembly is being resolved lives here instead: the materialization
// status of each element path and, once materialized, its final value.
//
// # Lifecycle
//
// A store is created with its Root and discarded with it. Per element path:
//
//	Pending -> Building -> Materialized
//	             |
//	             +-> Pending  (the build failed; the next lookup retries)
//
// A final value is written exactly once per path, and only read afterwards.
// Building only records that a build is in flight; cycles are detected by
// the Root from the chain of lookups that requested the path.
package nodestore

import (
	"context"

	"github.com/vk/assemblygo/internal/nodeid"
)

// Status is the materialization state of one element.
type Status int

const (
	// StatusPending means the element has not been built, or its last build failed.
	StatusPending Status = iota
	// StatusBuilding means a build of the element is in flight.
	StatusBuilding
	// StatusMaterialized means the final value is stored.
	StatusMaterialized
)

// String returns a lower-case name for logs.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusBuilding:
		return "building"
	case StatusMaterialized:
		return "materialized"
	default:
		return "unknown"
	}
}

// Store holds per-path materialization state.
type Store interface {
	// GetStatus returns the status of a path; unknown paths are StatusPending.
	GetStatus(ctx context.Context, id nodeid.Path) (Status, error)
	// SetStatus records a Pending or Building transition.
	SetStatus(ctx context.Context, id nodeid.Path, status Status) error
	// SetValue stores the final value and marks the path materialized. It
	// fails if a value was already stored for the path.
	SetValue(ctx context.Context, id nodeid.Path, value any) error
	// GetValue returns the stored final value, if any.
	GetValue(ctx context.Context, id nodeid.Path) (any, bool, error)
}
