package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"shipwright/internal/bootstrap"
	"shipwright/internal/feed"
	"shipwright/internal/fileutil"
	"shipwright/internal/journal"
	"shipwright/internal/logging"
	"shipwright/internal/metadata"
	"shipwright/internal/reconcile"
	"shipwright/internal/services"
)

// Run executes one release run end to end. Failures are recorded on the
// journal row before being returned.
func (m *Manager) Run(ctx context.Context, req Request) (*Result, error) {
	if err := m.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(m.cfg.Journal.Dir, "run.lock"))
	lockCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil && lockCtx.Err() == nil {
		return nil, services.Wrap(services.ErrTransient, "workflow", "acquire lock", "", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "workflow", "acquire lock", "another run is in progress", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	trigger := journal.TriggerWatch
	if req.Manual {
		trigger = journal.TriggerManual
	}
	run, err := m.store.NewRun(ctx, trigger, req.DryRun)
	if err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}

	runCtx := services.WithRunID(ctx, run.ID)
	logger := m.logger.With(
		logging.String(logging.FieldRunID, run.ID),
		logging.String("trigger", trigger),
	)
	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Bool("dry_run", req.DryRun),
	)

	if err := m.execute(runCtx, logger, run, req); err != nil {
		m.fail(runCtx, logger, run, err)
		return resultFromRun(run), err
	}
	return resultFromRun(run), nil
}

// execute walks the pipeline stages, leaving the final outcome on run.
func (m *Manager) execute(ctx context.Context, logger *slog.Logger, run *journal.Run, req Request) error {
	metadataStore := metadata.NewStore(m.cfg.MetadataPath())
	feedStore := feed.NewStore(m.cfg.FeedPath())

	if err := m.advance(ctx, logger, run, journal.StatusInitializing); err != nil {
		return err
	}
	record, err := metadataStore.Load()
	if err != nil {
		return services.Wrap(services.ErrTransient, "initialize", "read metadata", "", err)
	}

	if !reconcile.IsInitialized(record, m.repo) {
		return m.initialize(ctx, logger, run, req, metadataStore, feedStore)
	}

	if err := m.advance(ctx, logger, run, journal.StatusReconciling); err != nil {
		return err
	}
	count, err := m.git.CommitCount(ctx)
	if err != nil {
		return err
	}
	feedRecord, err := feedStore.Load()
	if err != nil {
		return services.Wrap(services.ErrTransient, "reconcile", "read feed", "", err)
	}

	reconciled, err := reconcile.Reconcile(*record, feedRecord, reconcile.Params{
		Identity:    m.repo,
		AssetName:   m.cfg.Release.AssetName,
		CommitCount: count,
	})
	if err != nil {
		return err
	}
	run.Version = reconciled.Metadata.Version
	run.VersionCode = reconciled.Metadata.VersionCode

	if req.DryRun {
		logger.Info("dry run stopped before writes",
			logging.String(logging.FieldEventType, "dry_run_stop"),
			logging.Bool("metadata_changed", reconciled.MetadataChanged),
			logging.Bool("feed_changed", reconciled.FeedChanged),
		)
		return m.complete(ctx, logger, run, journal.OutcomeDryRun)
	}

	if reconciled.MetadataChanged {
		if err := metadataStore.Save(&reconciled.Metadata); err != nil {
			return services.Wrap(services.ErrTransient, "reconcile", "write metadata", "", err)
		}
	}
	if reconciled.FeedChanged {
		if err := feedStore.Save(reconciled.Feed); err != nil {
			return services.Wrap(services.ErrTransient, "reconcile", "write feed", "", err)
		}
	}

	if err := m.advance(ctx, logger, run, journal.StatusCommitting); err != nil {
		return err
	}
	hasChanges, err := m.git.HasChanges(ctx)
	if err != nil {
		return err
	}
	if !hasChanges {
		return m.complete(ctx, logger, run, journal.OutcomeNoop)
	}
	if err := m.commitAndPush(ctx, reconciled.Metadata.Version); err != nil {
		return err
	}

	archivePath, err := m.buildArchive(ctx, logger, run)
	if err != nil {
		return err
	}

	if err := m.advance(ctx, logger, run, journal.StatusPublishing); err != nil {
		return err
	}
	release, err := m.publisher.Publish(ctx, publishRequest(reconciled.Metadata.Version, archivePath, req.Manual))
	if err != nil {
		return err
	}
	run.ReleaseURL = release.HTMLURL

	if err := m.complete(ctx, logger, run, journal.OutcomePublished); err != nil {
		return err
	}
	if err := m.notifier.NotifyPublished(ctx, reconciled.Metadata.Version, release.HTMLURL); err != nil {
		logger.Debug("publish notification failed", logging.Error(err))
	}
	return nil
}

// initialize synthesizes first-run state and commits it. Initialization never
// publishes; the first real release happens on a later run.
func (m *Manager) initialize(ctx context.Context, logger *slog.Logger, run *journal.Run, req Request, metadataStore *metadata.Store, feedStore *feed.Store) error {
	run.Version = bootstrap.InitialVersion
	run.VersionCode = bootstrap.InitialVersionCode

	if req.DryRun {
		logger.Info("dry run would initialize project",
			logging.String(logging.FieldEventType, "dry_run_stop"),
			logging.String("version", bootstrap.InitialVersion),
		)
		return m.complete(ctx, logger, run, journal.OutcomeDryRun)
	}

	initializer := bootstrap.New(m.cfg, m.repo, metadataStore, feedStore, m.logger)
	record, err := initializer.Run(ctx)
	if err != nil {
		return err
	}

	if err := m.advance(ctx, logger, run, journal.StatusCommitting); err != nil {
		return err
	}
	hasChanges, err := m.git.HasChanges(ctx)
	if err != nil {
		return err
	}
	if hasChanges {
		if err := m.commitAndPush(ctx, record.Version); err != nil {
			return err
		}
	}

	if err := m.complete(ctx, logger, run, journal.OutcomeInitialized); err != nil {
		return err
	}
	if err := m.notifier.NotifyInitialized(ctx, record.ID, record.Version); err != nil {
		logger.Debug("initialization notification failed", logging.Error(err))
	}
	return nil
}

func (m *Manager) commitAndPush(ctx context.Context, version string) error {
	if err := m.git.CommitAll(ctx, m.commitMessage(version)); err != nil {
		return err
	}
	if !m.cfg.Release.Push {
		return nil
	}
	return m.git.Push(ctx, m.cfg.Repo.Branch)
}

// buildArchive packages the working tree under the journal's artifact area
// and logs the archive digest for traceability.
func (m *Manager) buildArchive(ctx context.Context, logger *slog.Logger, run *journal.Run) (string, error) {
	if err := m.advance(ctx, logger, run, journal.StatusPackaging); err != nil {
		return "", err
	}
	destDir := filepath.Join(m.cfg.Journal.Dir, "artifacts", run.ID)
	archivePath, err := m.packager.Build(ctx, destDir, m.cfg.Release.ExcludeLists)
	if err != nil {
		return "", err
	}
	if digest, digestErr := fileutil.DigestFile(archivePath); digestErr == nil {
		logger.Info("archive ready",
			logging.String(logging.FieldEventType, "archive_ready"),
			logging.String("archive", archivePath),
			logging.String("sha256", digest),
		)
	}
	return archivePath, nil
}
