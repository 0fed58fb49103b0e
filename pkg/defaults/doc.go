// Package defaults centralizes timeout and interval constants used across
// the CLI and deployer so that operational tuning happens in one place.
package defaults
