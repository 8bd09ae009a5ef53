// Package reconcile holds the release-decision core: initialization
// detection, version-aware ordering, and the metadata/feed reconciler.
//
// Reconcile recomputes the monotonic version code from the commit count,
// rejects downgrades (the feed advertising a version ahead of the local
// metadata), and resolves drift by rewriting the feed as a projection of the
// metadata. It mutates nothing on disk; callers persist the returned records
// through their stores.
package reconcile
