package reconcile

import (
	"strings"

	"shipwright/internal/identity"
	"shipwright/internal/metadata"
)

// IsInitialized reports whether the repository already carries module
// metadata belonging to it. A record matches when its id equals the
// repository slug or its name equals the repository title; blank fields never
// match. A missing record always needs initialization.
func IsInitialized(record *metadata.Record, repo identity.Repository) bool {
	if record == nil {
		return false
	}
	id := strings.TrimSpace(record.ID)
	name := strings.TrimSpace(record.Name)
	if id != "" && id == repo.Slug {
		return true
	}
	if name != "" && name == repo.Title {
		return true
	}
	return false
}
