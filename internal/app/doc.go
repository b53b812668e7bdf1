// Package app contains the core application logic. It wires the logger,
// the definition loaders, the catalog modules and the registry Root
// together, decoupled from any specific entrypoint like a CLI.
package app
