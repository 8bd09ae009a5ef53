package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"shipwright/internal/changelog"
	"shipwright/internal/config"
	"shipwright/internal/feed"
	"shipwright/internal/identity"
	"shipwright/internal/logging"
	"shipwright/internal/metadata"
	"shipwright/internal/services"
)

// Initial release state written for every new module.
const (
	InitialVersion     = "v0.1.0"
	InitialVersionCode = 1
)

// README placeholder tokens replaced with the repository identity.
const (
	PlaceholderID   = "{{MODULE_ID}}"
	PlaceholderName = "{{MODULE_NAME}}"
)

// Initializer writes first-run metadata, feed, changelog, and README state.
type Initializer struct {
	cfg           *config.Config
	repo          identity.Repository
	metadataStore *metadata.Store
	feedStore     *feed.Store
	logger        *slog.Logger
	now           func() time.Time
}

// New constructs an Initializer. A nil logger falls back to a no-op logger.
func New(cfg *config.Config, repo identity.Repository, metadataStore *metadata.Store, feedStore *feed.Store, logger *slog.Logger) *Initializer {
	return &Initializer{
		cfg:           cfg,
		repo:          repo,
		metadataStore: metadataStore,
		feedStore:     feedStore,
		logger:        logging.NewComponentLogger(logger, "bootstrap"),
		now:           time.Now,
	}
}

// Run synthesizes and persists the initial project state.
func (i *Initializer) Run(ctx context.Context) (metadata.Record, error) {
	if i.cfg == nil || i.metadataStore == nil || i.feedStore == nil {
		return metadata.Record{}, services.Wrap(services.ErrConfiguration, "bootstrap", "run", "initializer missing collaborators", nil)
	}
	if err := ctx.Err(); err != nil {
		return metadata.Record{}, err
	}

	record := metadata.Record{
		ID:          i.repo.Slug,
		Name:        i.repo.Title,
		Version:     InitialVersion,
		VersionCode: InitialVersionCode,
		Author:      i.repo.Owner,
		Description: fmt.Sprintf("%s module.", i.repo.Title),
		UpdateJSON:  i.repo.FeedURL(i.cfg.Repo.FeedFile),
	}
	if err := i.metadataStore.Save(&record); err != nil {
		return metadata.Record{}, services.Wrap(services.ErrTransient, "bootstrap", "write metadata", "", err)
	}

	feedRecord := feed.Record{
		Version:     InitialVersion,
		VersionCode: InitialVersionCode,
		ZipURL:      i.repo.ZipURL(InitialVersion, i.cfg.Release.AssetName),
		Changelog:   i.repo.ChangelogURL(i.cfg.Repo.ChangelogFile),
	}
	if err := i.feedStore.Save(&feedRecord); err != nil {
		return metadata.Record{}, services.Wrap(services.ErrTransient, "bootstrap", "write feed", "", err)
	}

	if err := changelog.WriteInitial(i.cfg.ChangelogPath(), InitialVersion, i.now().UTC()); err != nil {
		return metadata.Record{}, services.Wrap(services.ErrTransient, "bootstrap", "write changelog", "", err)
	}

	if err := i.renderReadme(); err != nil {
		return metadata.Record{}, services.Wrap(services.ErrTransient, "bootstrap", "render readme", "", err)
	}

	i.logger.Info("project initialized",
		logging.String(logging.FieldEventType, "bootstrap_complete"),
		logging.String("module_id", record.ID),
		logging.String("version", record.Version),
	)
	return record, nil
}

// renderReadme substitutes identity placeholders in an existing README, or
// synthesizes a minimal one when the document is missing. A README without
// placeholders is left untouched.
func (i *Initializer) renderReadme() error {
	path := i.cfg.ReadmePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		minimal := fmt.Sprintf("# %s\n\nModule `%s`, released automatically.\n", i.repo.Title, i.repo.Slug)
		return os.WriteFile(path, []byte(minimal), 0o644)
	}

	content := string(data)
	if !strings.Contains(content, PlaceholderID) && !strings.Contains(content, PlaceholderName) {
		return nil
	}
	content = strings.ReplaceAll(content, PlaceholderID, i.repo.Slug)
	content = strings.ReplaceAll(content, PlaceholderName, i.repo.Title)
	return os.WriteFile(path, []byte(content), 0o644)
}
