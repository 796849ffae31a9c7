// Package config loads relay configuration from YAML.
//
// ${VAR} references are expanded from the environment before parsing, so
// values can come from a .env file loaded at startup. Missing optional
// fields are filled from the Default* constants.
package config
