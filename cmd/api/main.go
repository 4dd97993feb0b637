package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rjcosta/brickerp/internal/audit"
	auditStore "github.com/rjcosta/brickerp/internal/audit/store"
	"github.com/rjcosta/brickerp/internal/auth"
	"github.com/rjcosta/brickerp/internal/backup"
	backupStore "github.com/rjcosta/brickerp/internal/backup/store"
	"github.com/rjcosta/brickerp/internal/bankimport"
	bankStore "github.com/rjcosta/brickerp/internal/bankimport/store"
	"github.com/rjcosta/brickerp/internal/client"
	clientStore "github.com/rjcosta/brickerp/internal/client/store"
	"github.com/rjcosta/brickerp/internal/config"
	"github.com/rjcosta/brickerp/internal/contract"
	contractStore "github.com/rjcosta/brickerp/internal/contract/store"
	"github.com/rjcosta/brickerp/internal/database"
	brickHttp "github.com/rjcosta/brickerp/internal/http"
	auditHandler "github.com/rjcosta/brickerp/internal/http/audit"
	authHandler "github.com/rjcosta/brickerp/internal/http/auth"
	backupHandler "github.com/rjcosta/brickerp/internal/http/backup"
	bankHandler "github.com/rjcosta/brickerp/internal/http/bankimport"
	clientHandler "github.com/rjcosta/brickerp/internal/http/client"
	contractHandler "github.com/rjcosta/brickerp/internal/http/contract"
	projectHandler "github.com/rjcosta/brickerp/internal/http/project"
	reconcileHandler "github.com/rjcosta/brickerp/internal/http/reconcile"
	reportHandler "github.com/rjcosta/brickerp/internal/http/report"
	"github.com/rjcosta/brickerp/internal/importer"
	"github.com/rjcosta/brickerp/internal/ledger"
	ledgerStore "github.com/rjcosta/brickerp/internal/ledger/store"
	"github.com/rjcosta/brickerp/internal/project"
	projectStore "github.com/rjcosta/brickerp/internal/project/store"
	"github.com/rjcosta/brickerp/internal/reconcile"
	reconcileStore "github.com/rjcosta/brickerp/internal/reconcile/store"
	"github.com/rjcosta/brickerp/internal/report"
	reportStore "github.com/rjcosta/brickerp/internal/report/store"
	"github.com/rjcosta/brickerp/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	reconcileOpts := reconcile.Options{
		ToleranceAmount: cfg.Reconcile.ToleranceAmount,
		ToleranceDays:   cfg.Reconcile.ToleranceDays,
	}

	var (
		clientService    = client.NewService(clientStore.New(db))
		projectService   = project.NewService(projectStore.New(db))
		contractService  = contract.NewService(contractStore.New(db))
		ledgerService    = ledger.NewService(ledgerStore.New(db))
		auditService     = audit.NewService(auditStore.New(db))
		bankService      = bankimport.NewService(bankStore.New(db))
		importService    = importer.NewService()
		reconcileService = reconcile.NewService(reconcileStore.New(db))
		reportService    = report.NewService(reportStore.New(db))
		backupService    = backup.NewService(backupStore.New(db), cfg.Backup.Dir, cfg.Backup.Retention)
	)

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		authH      = authHandler.NewHandler(tokens, cfg.Auth.User, cfg.Auth.Password)
		clientH    = clientHandler.NewHandler(clientService)
		projectH   = projectHandler.NewHandler(projectService)
		contractH  = contractHandler.NewHandler(contractService, ledgerService, auditService, projectService)
		bankH      = bankHandler.NewHandler(bankService, importService)
		reconcileH = reconcileHandler.NewHandler(reconcileService, reconcileOpts)
		reportH    = reportHandler.NewHandler(reportService)
		auditH     = auditHandler.NewHandler(auditService)
		backupH    = backupHandler.NewHandler(backupService)
	)

	router := brickHttp.New(tokens, authH, clientH, projectH, contractH, bankH, reconcileH, reportH, auditH, backupH)

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(backupService, reconcileService, scheduler.Config{
			BackupSpec:    cfg.Scheduler.BackupSpec,
			ReconcileSpec: cfg.Scheduler.ReconcileSpec,
			Reconcile:     reconcileOpts,
		})
		if err != nil {
			slog.Error("failed to build scheduler", "error", err)
			os.Exit(1)
		}

		sched.Start()
		defer sched.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	server := &http.Server{
		Addr:         port,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	if err := server.Close(); err != nil {
		slog.Error("server close failed", "error", err)
	}
}
