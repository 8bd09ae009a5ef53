package reconcile

import (
	"fmt"

	"shipwright/internal/feed"
	"shipwright/internal/identity"
	"shipwright/internal/metadata"
	"shipwright/internal/services"
)

// Params carries the run context the reconciler needs to compute the
// canonical feed projection.
type Params struct {
	Identity    identity.Repository
	AssetName   string
	CommitCount int64
}

// Result is the reconciled state. Records are copies; nothing touches disk.
type Result struct {
	Metadata        metadata.Record
	Feed            *feed.Record
	MetadataChanged bool
	FeedChanged     bool
}

// DowngradeError reports a feed record advertising a version ahead of the
// local metadata. It unwraps to services.ErrDowngrade for classification.
type DowngradeError struct {
	MetadataVersion string
	MetadataCode    int64
	FeedVersion     string
	FeedCode        int64
}

func (e *DowngradeError) Error() string {
	return fmt.Sprintf("feed advertises %s (code %d) ahead of metadata %s (code %d)",
		e.FeedVersion, e.FeedCode, e.MetadataVersion, e.MetadataCode)
}

func (e *DowngradeError) Unwrap() error {
	return services.ErrDowngrade
}

// Reconcile computes the next metadata/feed state for an initialized
// repository.
//
// The version code is recomputed from the commit count on every run,
// regardless of whether a real bump is warranted; each run on the watched
// path advances it. When no feed record exists, downgrade validation and
// feed sync are skipped and only the metadata changes apply. Otherwise a
// feed ahead of the metadata is fatal, and any drift between feed and
// metadata is resolved by rewriting the feed's version, version code, and
// archive URL to the metadata projection. The changelog URL is never touched.
func Reconcile(meta metadata.Record, fd *feed.Record, p Params) (Result, error) {
	result := Result{Metadata: meta}

	candidate := p.CommitCount + 1
	if result.Metadata.VersionCode != candidate {
		result.Metadata.VersionCode = candidate
		result.MetadataChanged = true
	}

	if fd == nil {
		return result, nil
	}
	feedCopy := *fd
	result.Feed = &feedCopy

	latest := MaxVersion(result.Metadata.Version, feedCopy.Version)
	if latest != result.Metadata.Version && result.Metadata.VersionCode < feedCopy.VersionCode {
		return Result{}, &DowngradeError{
			MetadataVersion: result.Metadata.Version,
			MetadataCode:    result.Metadata.VersionCode,
			FeedVersion:     feedCopy.Version,
			FeedCode:        feedCopy.VersionCode,
		}
	}

	expectedZip := p.Identity.ZipURL(result.Metadata.Version, p.AssetName)
	if feedCopy.Version != result.Metadata.Version ||
		feedCopy.VersionCode != result.Metadata.VersionCode ||
		feedCopy.ZipURL != expectedZip {
		result.Feed.Version = result.Metadata.Version
		result.Feed.VersionCode = result.Metadata.VersionCode
		result.Feed.ZipURL = expectedZip
		result.FeedChanged = true
	}

	return result, nil
}
