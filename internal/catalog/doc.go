// Package catalog holds the named Go factories and overlay transforms that
// definition files refer to by string.
//
// Modules contribute entries at startup through Module.Register. Names are
// dotted by convention ("fizzbuzz.divisor") and must be unique across all
// modules; a duplicate registration is a programming error and panics.
package catalog
