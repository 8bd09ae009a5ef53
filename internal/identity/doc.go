// Package identity derives the module's repository identity for a run.
//
// The slug and title come deterministically from the hosting owner/name pair
// and never persist on their own; they exist to detect initialization state
// and to fill the deterministic feed, archive, and changelog URLs that the
// metadata and feed records reference.
package identity
