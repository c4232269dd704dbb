// Package config loads plangrid settings from an optional YAML file and
// PLANGRID_* environment variables.
package config
