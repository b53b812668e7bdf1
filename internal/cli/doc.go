// Package cli defines the assemblygo command tree. It translates flags into
// an app.Config, builds the App and maps failures to process exit codes.
package cli
