// Package publish creates tagged releases on the hosting platform and
// uploads the packaged archive as their sole asset.
//
// The client speaks the GitHub releases REST surface but is constructed from
// configurable base URLs so tests (and self-hosted forges with a compatible
// API) can point it elsewhere. Duplicate tags surface as collision errors; no
// retry happens here.
package publish
