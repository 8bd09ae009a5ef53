// Package feed reads and writes the machine-readable update feed record that
// downstream clients poll to discover the latest release.
//
// The record is a projection of the module metadata: after reconciliation its
// version, version code, and archive URL match the metadata exactly. Only the
// reconciler mutates it.
package feed
