// Package assembler turns a loaded config.Model into a finished group tree,
// binding factory and transform names to their catalog entries.
package assembler
