// Package fizzbuzz is a small example application assembled from
// definitions: a group of handlers, a dispatcher that asks each handler in
// turn, and a call-log reference overlay that records every handler call.
package fizzbuzz
