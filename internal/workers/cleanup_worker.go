package workers

import (
	"context"
	"time"

	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/storage"
)

const (
	defaultCleanupInterval = time.Hour
	// rejectedFileRetention keeps turned-down documents around long enough
	// for appeals before their objects are purged.
	rejectedFileRetention = 30 * 24 * time.Hour
)

// CleanupWorker periodically removes expired tokens and the stored objects
// of long-rejected verification documents.
type CleanupWorker struct {
	userRepo         repositories.UserRepository
	verificationRepo repositories.VerificationRepository
	storage          storage.Storage
	interval         time.Duration
}

func NewCleanupWorker(
	userRepo repositories.UserRepository,
	verificationRepo repositories.VerificationRepository,
	store storage.Storage,
) *CleanupWorker {
	return &CleanupWorker{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		storage:          store,
		interval:         defaultCleanupInterval,
	}
}

// Start runs the cleanup loop until the context is cancelled. One pass runs
// immediately so a restart does not postpone overdue work.
func (w *CleanupWorker) Start(ctx context.Context) {
	go func() {
		w.runOnce(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("cleanup worker stopped")
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()
}

func (w *CleanupWorker) runOnce(ctx context.Context) {
	if n, err := w.userRepo.CleanExpiredRefreshTokens(); err != nil {
		logger.WithError(err).Error("failed to clean expired refresh tokens")
	} else if n > 0 {
		logger.Info("cleaned expired refresh tokens", "count", n)
	}

	if n, err := w.userRepo.CleanExpiredActivationTokens(); err != nil {
		logger.WithError(err).Error("failed to clean expired activation tokens")
	} else if n > 0 {
		logger.Info("cleaned expired activation tokens", "count", n)
	}

	w.purgeRejectedFiles(ctx)
}

// purgeRejectedFiles deletes stored objects for documents rejected longer
// ago than the retention window. Storage deletes are best-effort; a failed
// one is retried on the next pass because the row survives.
func (w *CleanupWorker) purgeRejectedFiles(ctx context.Context) {
	cutoff := time.Now().Add(-rejectedFileRetention)
	files, err := w.verificationRepo.FindRejectedBefore(cutoff)
	if err != nil {
		logger.WithError(err).Error("failed to list rejected documents for purge")
		return
	}

	for i := range files {
		f := &files[i]
		if err := w.storage.Delete(ctx, f.Path); err != nil {
			logger.WithError(err).Warn("failed to delete rejected document", "path", f.Path)
			continue
		}
		if err := w.verificationRepo.Delete(f.ID); err != nil {
			logger.WithError(err).Warn("failed to delete rejected document row", "id", f.ID)
		}
	}
	if len(files) > 0 {
		logger.Info("purged rejected documents", "count", len(files))
	}
}
