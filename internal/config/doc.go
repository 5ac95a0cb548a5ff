// Package config manages launcher settings stored at ~/.bitfighters/config.yaml.
// Values can be overridden with BITFIGHTERS_* environment variables, e.g.
// BITFIGHTERS_BASE_URL points the launcher at a staging backend.
package config
