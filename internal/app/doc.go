// Package app contains the application core shared by every entrypoint. It
// owns the logger, the parser and the last-good document cache, and turns a
// set of paths into a Project ready for analysis or formatting.
package app
