// Package packaging builds the distributable archive of the module's working
// tree.
//
// Archive membership is deterministic: a lexical walk of the tree minus the
// version-control directory and any paths named in the configured exclusion
// list files. Compression uses klauspost/compress flate behind the standard
// zip container.
package packaging
