package identity

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shipwright/internal/config"
)

// Repository is the per-run identity of the hosting repository.
type Repository struct {
	Owner string
	Name  string
	Slug  string
	Title string

	branch     string
	rawBase    string
	releaseURL string
}

var titleCaser = cases.Title(language.English)

// FromConfig derives the repository identity from resolved configuration.
func FromConfig(cfg *config.Config) Repository {
	return Derive(cfg.Repo.Owner, cfg.Repo.Name, cfg.Repo.Branch)
}

// Derive computes the slug and title-cased name for an owner/name pair.
// The slug is the repository name lowered; the title replaces separators
// with spaces and title-cases each word ("fog-module" -> "Fog Module").
func Derive(owner, name, branch string) Repository {
	name = strings.TrimSpace(name)
	slug := strings.ToLower(name)

	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	title := titleCaser.String(strings.Join(words, " "))

	return Repository{
		Owner:      strings.TrimSpace(owner),
		Name:       name,
		Slug:       slug,
		Title:      title,
		branch:     strings.TrimSpace(branch),
		rawBase:    "https://raw.githubusercontent.com",
		releaseURL: "https://github.com",
	}
}

// FeedURL is the canonical raw-file location of the update feed record.
func (r Repository) FeedURL(feedFile string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", r.rawBase, r.Owner, r.Name, r.branch, feedFile)
}

// ChangelogURL is the canonical raw-file location of the changelog document.
func (r Repository) ChangelogURL(changelogFile string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", r.rawBase, r.Owner, r.Name, r.branch, changelogFile)
}

// ZipURL is the release-asset download location for the given version label.
func (r Repository) ZipURL(version, assetName string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", r.releaseURL, r.Owner, r.Name, version, assetName)
}
