// Package workflow coordinates one release run from trigger to outcome.
//
// A run walks a fixed pipeline: detect whether the repository carries module
// metadata, initialize or reconcile it, commit and push resulting changes,
// package the working tree, and publish the release. Every stage transition
// is persisted to the run journal so interrupted or failed runs stay
// inspectable. A file lock serializes runs against the same journal.
package workflow
