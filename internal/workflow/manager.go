package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shipwright/internal/config"
	"shipwright/internal/gitrepo"
	"shipwright/internal/identity"
	"shipwright/internal/journal"
	"shipwright/internal/logging"
	"shipwright/internal/notifications"
	"shipwright/internal/packaging"
	"shipwright/internal/publish"
)

// Packager abstracts archive construction for testability.
type Packager interface {
	Build(ctx context.Context, destDir string, excludeLists []string) (string, error)
}

// Request describes one release run.
type Request struct {
	Manual bool
	DryRun bool
}

// Result summarizes how a run ended.
type Result struct {
	RunID       string
	Outcome     journal.Outcome
	Version     string
	VersionCode int64
	ReleaseURL  string
}

// Manager owns the release pipeline and its collaborators.
type Manager struct {
	cfg       *config.Config
	store     *journal.Store
	logger    *slog.Logger
	repo      identity.Repository
	git       gitrepo.Service
	packager  Packager
	publisher publish.Publisher
	notifier  notifications.Service
}

// Option overrides a Manager collaborator, primarily for tests.
type Option func(*Manager)

// WithGit injects a custom git service.
func WithGit(service gitrepo.Service) Option {
	return func(m *Manager) {
		if service != nil {
			m.git = service
		}
	}
}

// WithPackager injects a custom archive builder.
func WithPackager(packager Packager) Option {
	return func(m *Manager) {
		if packager != nil {
			m.packager = packager
		}
	}
}

// WithPublisher injects a custom release publisher.
func WithPublisher(publisher publish.Publisher) Option {
	return func(m *Manager) {
		if publisher != nil {
			m.publisher = publisher
		}
	}
}

// WithNotifier injects a custom notification service.
func WithNotifier(notifier notifications.Service) Option {
	return func(m *Manager) {
		if notifier != nil {
			m.notifier = notifier
		}
	}
}

// NewManager wires the default collaborators from configuration.
func NewManager(cfg *config.Config, store *journal.Store, logger *slog.Logger, opts ...Option) (*Manager, error) {
	git, err := gitrepo.New(cfg.Repo.Path, cfg.GitBinary())
	if err != nil {
		return nil, fmt.Errorf("build git client: %w", err)
	}

	builder, err := packaging.New(cfg.Repo.Path, cfg.Release.AssetName, logger)
	if err != nil {
		return nil, fmt.Errorf("build packager: %w", err)
	}

	manager := &Manager{
		cfg:       cfg,
		store:     store,
		logger:    logging.NewComponentLogger(logger, "workflow"),
		repo:      identity.FromConfig(cfg),
		git:       git,
		packager:  builder,
		publisher: publish.NewClient(cfg, logger),
		notifier:  notifications.NewService(cfg),
	}
	for _, opt := range opts {
		opt(manager)
	}
	return manager, nil
}

// commitMessage renders the configured commit template for a version.
func (m *Manager) commitMessage(version string) string {
	template := strings.TrimSpace(m.cfg.Release.CommitTemplate)
	if template == "" || !strings.Contains(template, "%s") {
		return "release: " + version
	}
	return fmt.Sprintf(template, version)
}

// advance persists a stage transition on the run row.
func (m *Manager) advance(ctx context.Context, logger *slog.Logger, run *journal.Run, status journal.Status) error {
	run.Status = status
	if err := m.store.Update(ctx, run); err != nil {
		return fmt.Errorf("persist %s transition: %w", status, err)
	}
	logger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String(logging.FieldStage, string(status)),
	)
	return nil
}

// complete persists the final outcome on the run row.
func (m *Manager) complete(ctx context.Context, logger *slog.Logger, run *journal.Run, outcome journal.Outcome) error {
	run.SetCompleted(outcome)
	if err := m.store.Update(ctx, run); err != nil {
		return fmt.Errorf("persist completion: %w", err)
	}
	logger.Info("run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("outcome", string(outcome)),
		logging.String("version", run.Version),
		logging.Int64("version_code", run.VersionCode),
	)
	return nil
}

// fail records the failure on the run row and notifies, best effort.
func (m *Manager) fail(ctx context.Context, logger *slog.Logger, run *journal.Run, stageErr error) {
	run.SetFailed(stageErr.Error())
	if err := m.store.Update(ctx, run); err != nil {
		logger.Error("failed to persist run failure", logging.Error(err))
	}

	logger.Error("run failed",
		logging.String(logging.FieldEventType, "run_failure"),
		logging.String(logging.FieldStage, string(run.Status)),
		logging.Error(stageErr),
	)
	if m.notifier != nil {
		if err := m.notifier.NotifyError(ctx, stageErr, fmt.Sprintf("run %s", run.ID)); err != nil {
			logger.Debug("error notification failed", logging.Error(err))
		}
	}
}

// Manual runs publish as prereleases so an operator can vet them first.
func publishRequest(version, assetPath string, manual bool) publish.Request {
	return publish.Request{
		Version:    version,
		AssetPath:  assetPath,
		Prerelease: manual,
	}
}

func resultFromRun(run *journal.Run) *Result {
	return &Result{
		RunID:       run.ID,
		Outcome:     run.Outcome,
		Version:     run.Version,
		VersionCode: run.VersionCode,
		ReleaseURL:  run.ReleaseURL,
	}
}

// lockRetryDelay spaces out journal lock acquisition attempts.
const lockRetryDelay = 250 * time.Millisecond
