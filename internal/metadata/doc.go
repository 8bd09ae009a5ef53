// Package metadata reads and writes the module's identity-and-version record.
//
// The on-disk format is the module.prop key=value contract consumed by
// end-user installers: one key per line, surrounding whitespace ignored,
// absent keys treated as empty strings. The store preserves unknown keys and
// line order across rewrites so hand-edited files survive reconciliation.
package metadata
