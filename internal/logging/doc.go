// Package logging constructs the slog loggers used across shipwright.
//
// It centralizes handler selection (text for humans, json for CI log
// collectors), level parsing, and the structured field vocabulary so that
// every pipeline stage emits consistent, greppable events. Attr helpers
// mirror the slog constructors to keep call sites terse.
//
// Obtain loggers through New or NewFromConfig and derive component loggers
// with NewComponentLogger; tests use NewNop.
package logging
