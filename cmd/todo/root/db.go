package root

import (
	"context"
	"log/slog"
	"os"

	"github.com/4ast4orward/To-do-List/internal/config"
	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/storage"
)

func openService(ctx context.Context, g *globalFlags) (*engine.Service, func(), error) {
	cfg, err := config.FromEnv(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	if g.dbPath != "" {
		cfg.Storage.DBPath = g.dbPath
	}
	path := cfg.Storage.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	level := cfg.SlogLevel()
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	svc := engine.NewService(storage.NewStore(db, logger), engine.Options{
		Rules:  cfg.Rules,
		Logger: logger,
	})

	// Monthly archive of finished todos runs on first use each month.
	if _, err := svc.ArchiveStale(ctx, false); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
