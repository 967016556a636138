// Package report provides the in-memory delivery sink of a simulation run and
// writes its outcome as JSON, optionally zstd-compressed.
package report
