// Package bootstrap synthesizes first-run state for an uninitialized module
// repository: metadata record, update feed, dated changelog, and README
// placeholder substitution.
//
// Initialization runs at most once per repository; subsequent runs detect the
// written metadata as initialized and take the reconciliation path instead.
package bootstrap
