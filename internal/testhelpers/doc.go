// Package testhelpers provides fixtures shared by package tests: generated
// PEM certificate chains and keys, binding directory builders, and a
// containerized PostgreSQL instance for tests built with the "container" tag.
package testhelpers
