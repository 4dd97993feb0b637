package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rjcosta/brickerp/internal/backup"
	"github.com/rjcosta/brickerp/internal/reconcile"
)

const jobTimeout = 10 * time.Minute

// Scheduler runs the nightly maintenance jobs: database backup and an
// automatic reconciliation pass over whatever bank entries accumulated
// during the day.
type Scheduler struct {
	cron         *cron.Cron
	backup       *backup.Service
	reconcile    *reconcile.Service
	reconcileOps reconcile.Options
}

type Config struct {
	BackupSpec    string
	ReconcileSpec string
	Reconcile     reconcile.Options
}

func New(backupSvc *backup.Service, reconcileSvc *reconcile.Service, cfg Config) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:         c,
		backup:       backupSvc,
		reconcile:    reconcileSvc,
		reconcileOps: cfg.Reconcile,
	}

	if _, err := c.AddFunc(cfg.BackupSpec, s.runBackup); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(cfg.ReconcileSpec, s.runReconcile); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	path, err := s.backup.Run(ctx)
	if err != nil {
		slog.Error("scheduled backup failed", "error", err)
		return
	}

	slog.Info("scheduled backup completed", "path", path)
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := s.reconcile.Run(ctx, s.reconcileOps)
	if err != nil {
		slog.Error("scheduled reconcile failed", "error", err)
		return
	}

	slog.Info("scheduled reconcile completed", "matched", result.Matched, "total", result.Total)
}
