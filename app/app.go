// Package app assembles the services every binary shares from one config.
package app

import (
	"context"
	"fmt"
	"time"

	"axiapac.com/timeclock/config"
	"axiapac.com/timeclock/core"
	"axiapac.com/timeclock/infrastructure/filesystem"
	"axiapac.com/timeclock/ingest"
	"axiapac.com/timeclock/logging"
	"axiapac.com/timeclock/pipeline"
	"axiapac.com/timeclock/store"
	"axiapac.com/timeclock/terminal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Location *time.Location
	DB       *gorm.DB
	Store    *store.Store
	Objects  *filesystem.S3FileSystem

	Reconciler *core.Reconciler
	Granter    *core.CreditGranter
	Runner     *pipeline.Runner
}

// New loads the config at path and opens everything behind it. Close must be
// called once done.
func New(ctx context.Context, path string) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a, err := build(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	dsn, err := cfg.Database.ResolveDSN(ctx)
	if err != nil {
		return nil, err
	}
	db, err := store.Open(store.Options{
		Driver:       cfg.Database.Driver,
		DSN:          dsn,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		LogLevel:     store.ParseLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	objects, err := filesystem.NewS3FileSystem(ctx)
	if err != nil {
		return nil, err
	}

	st := store.New(db)

	devices, err := pipeline.BuildDevices(
		cfg.Sync.Devices,
		terminal.NewBridgeClient(terminal.NewTransport(cfg.Sync.BridgeURL, cfg.Sync.BridgeToken, cfg.Sync.Timeout)),
		terminal.NewExportReader(objects),
	)
	if err != nil {
		return nil, err
	}

	engine := ingest.NewEngine(st, st, cursorStore(cfg, objects, logger), ingest.Options{
		EpochFloor:  cfg.EpochFloor(loc),
		BatchSize:   cfg.Sync.BatchSize,
		Timeout:     cfg.Sync.Timeout,
		Parallelism: cfg.Sync.Parallel,
		Location:    loc,
	}, logger.Named("ingest"))

	reconciler := core.NewReconciler(st, st, st, core.ReconcileOptions{
		Rules: core.Rules{
			SkipLunchBreak:   cfg.Rules.SkipLunchBreak,
			SkipBreakOTGrace: cfg.Rules.SkipBreakOTGrace,
		},
		Location: loc,
	}, logger.Named("reconcile"))

	granter := core.NewCreditGranter(st, st, st, core.CreditOptions{
		Location:  loc,
		ChunkSize: cfg.Credits.ChunkSize,
	}, logger.Named("credits"))

	runner := pipeline.NewRunner(engine, devices, granter, reconciler, pipeline.Options{
		GrantAfterSync:   cfg.Credits.GrantAfterSync,
		GrantOTAfterSync: cfg.Credits.GrantOTAfterSync,
		Location:         loc,
	}, logger.Named("pipeline"))

	return &App{
		Config:     cfg,
		Logger:     logger,
		Location:   loc,
		DB:         db,
		Store:      st,
		Objects:    objects,
		Reconciler: reconciler,
		Granter:    granter,
		Runner:     runner,
	}, nil
}

func cursorStore(cfg *config.Config, objects *filesystem.S3FileSystem, logger *zap.Logger) *ingest.CursorStore {
	if cfg.Sync.Cursor.Backend == config.CursorBackendS3 {
		return ingest.NewCursorStore(ingest.NewS3Blob(objects, cfg.Sync.Cursor.Bucket), cfg.Sync.Cursor.Key, logger)
	}
	return ingest.NewCursorStore(ingest.FileBlob{}, cfg.Sync.Cursor.Path, logger)
}

// Migrate applies pending schema migrations.
func (a *App) Migrate() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return store.RunMigrations(sqlDB, a.Config.Database.Driver, a.Logger)
}

func (a *App) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.Logger.Sync()
}
