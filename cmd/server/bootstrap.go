package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rpggio/projtrack/internal/catalog"
	"github.com/rpggio/projtrack/internal/config"
	"github.com/rpggio/projtrack/internal/domain/project"
	"github.com/rpggio/projtrack/internal/memory"
	"github.com/rpggio/projtrack/internal/sqlite"
)

// app holds everything a serving command needs.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	projects *project.Service
	closers  []func() error
}

// bootstrap loads configuration, generates the dataset and opens the
// configured store. Logs go to logOut unless a log path is configured.
func bootstrap(ctx context.Context, configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			return nil, fmt.Errorf("log file error: %w", err)
		}
		a.closers = append(a.closers, fileWriter.Close)
		logOut = fileWriter
	}
	a.logger, err = newLogger(cfg.Log, logOut)
	if err != nil {
		a.Close()
		return nil, err
	}

	projects, seed, err := generateDataset(cfg.Dataset, time.Now)
	if err != nil {
		a.Close()
		return nil, err
	}

	repo, err := a.openRepository(ctx, projects)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.projects = project.NewService(repo, a.logger)

	a.logger.Info("dataset generated",
		zap.Uint64("seed", seed),
		zap.Int("count", len(projects)),
		zap.String("store", cfg.Store.Driver),
	)
	return a, nil
}

func (a *app) openRepository(ctx context.Context, projects []project.Project) (project.Repository, error) {
	if a.cfg.Store.Driver != "sqlite" {
		return memory.NewProjectRepository(projects), nil
	}

	if err := ensureDBDir(a.cfg.Store.DSN); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.New(a.cfg.Store.DSN)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	if err := db.RunMigrations(); err != nil {
		return nil, err
	}
	repo := sqlite.NewProjectRepository(db)
	if err := repo.Load(ctx, projects); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return repo, nil
}

// Close releases the store and log file in reverse order of acquisition.
func (a *app) Close() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// generateDataset builds the dataset described by cfg. A zero seed is
// replaced with a random one, which is returned so it can be logged.
func generateDataset(cfg config.DatasetConfig, now func() time.Time) ([]project.Project, uint64, error) {
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		var err error
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, 0, err
		}
	}

	seed := cfg.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	projects := project.NewGenerator(cat, project.NewRand(seed), now).Generate(cfg.Count)
	return projects, seed, nil
}

func newLogger(cfg config.LogConfig, out io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return zap.New(core, zap.AddCaller()), nil
}

func ensureDBDir(path string) error {
	// URI DSNs carry their own options; leave them to the driver.
	if path == ":memory:" || path == "" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
