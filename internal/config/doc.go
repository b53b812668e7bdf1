// Package config defines the format-agnostic assembly model, along with
// the Loader interface that front ends implement.
//
// A `config.Model` is what the assembler turns into a group tree.
// Concrete loaders for HCL and YAML live in separate packages.
package config
