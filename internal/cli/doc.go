// Package cli defines the plangrid command tree. It parses flags, loads
// settings and maps outcomes to process exit codes; the work itself is done
// by the app package.
package cli
