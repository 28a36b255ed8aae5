// Package config provides configuration structures and utilities for datascan.
// It defines the analysis options resolved from CLI flags, environment
// variables, and the .datascan.yaml configuration file, with exactly that
// precedence: flags over environment over file over built-in defaults.
package config
