package asmerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates a path did not resolve to a definition.
	ErrNotFound = errors.New("not found")

	// ErrCyclicDependency indicates a path was requested during its own materialization.
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrResolution indicates an overlay transform has no applicable invocation strategy.
	ErrResolution = errors.New("resolution error")

	// ErrBuild indicates a builder or overlay transform failed.
	ErrBuild = errors.New("build error")

	// ErrConfig indicates an invalid definition.
	ErrConfig = errors.New("configuration error")
)

// NotFoundError is returned when a lookup walks into a missing segment.
type NotFoundError struct {
	// Path is the full path that was requested.
	Path string
	// Missing is the first segment that was absent (empty if unknown).
	Missing string
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	msg := "not found: " + quotePath(e.Path)
	if e.Missing != "" && e.Missing != e.Path {
		msg += fmt.Sprintf(" (no %q)", e.Missing)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CyclicDependencyError is returned when an element's materialization
// requests the same element again.
type CyclicDependencyError struct {
	// Cycle lists the resolution stack, starting and ending with the repeated path.
	Cycle []string
}

// Error returns a human-readable error message.
func (e *CyclicDependencyError) Error() string {
	return "cyclic dependency: " + strings.Join(e.Cycle, " -> ")
}

// Is reports whether target matches this error type.
func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}

// ResolutionError is returned when an overlay transform is neither
// callable nor constructible.
type ResolutionError struct {
	// Transform describes the offending transform (a path or a Go type).
	Transform string
	// Message provides additional context.
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ResolutionError) Error() string {
	msg := "resolution error"
	if e.Transform != "" {
		msg += ": " + e.Transform
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// BuildError wraps a failure raised while materializing an element.
type BuildError struct {
	// Path is the element being materialized.
	Path string
	// Stage is "build" for the builder itself, or "value overlay" /
	// "reference overlay" with the chain index.
	Stage string
	// Cause is the underlying error.
	Cause error
}

// Error returns a human-readable error message.
func (e *BuildError) Error() string {
	msg := "build error at " + quotePath(e.Path)
	if e.Stage != "" {
		msg += " (" + e.Stage + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuild
}

// ConfigError represents an invalid element or group definition.
type ConfigError struct {
	// Path is the group or element the definition belongs to. It is empty
	// for problems not tied to one definition, such as an unknown catalog name.
	Path string
	// Message describes the problem.
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Path != "" {
		msg += " at " + quotePath(e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func quotePath(p string) string {
	if p == "" {
		return "<root>"
	}
	return fmt.Sprintf("%q", p)
}
