// Package config loads, normalizes, and validates the curator TOML
// configuration. All path fields are expanded to absolute paths during Load
// so no component reads ambient process state.
package config
