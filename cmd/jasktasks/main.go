package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jasktasks/internal/config"
	"github.com/jask/jasktasks/internal/database"
	"github.com/jask/jasktasks/internal/database/repository"
	"github.com/jask/jasktasks/internal/kvstore"
	"github.com/jask/jasktasks/internal/service"
	"github.com/jask/jasktasks/internal/tui"
)

// flushTimeout bounds how long shutdown waits for the final write.
const flushTimeout = 5 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			log.Fatalf("mkdir log dir: %v", err)
		}
		f, err := tea.LogToFile(cfg.Log.File, "jasktasks")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	}

	storage, closeStorage, err := openStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeStorage()

	persister := service.NewPersister(ctx, storage, cfg.Storage.Key)
	store := service.NewTaskStore(storage, cfg.Storage.Key, persister)

	p := tea.NewProgram(tui.New(ctx, store, cfg.UI), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}

	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	err = persister.Flush(flushCtx)
	if err != nil {
		log.Printf("final write: %v", err)
	}
	// a hung write would block Close forever
	if !errors.Is(err, context.DeadlineExceeded) {
		_ = persister.Close()
	}
}

func openStorage(cfg config.StorageConfig) (kvstore.Storage, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kvstore.NewMemory(), func() {}, nil
	case config.BackendFile:
		s, err := kvstore.NewFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	default:
		db, err := openSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewKVRepo(db), func() { _ = db.Close() }, nil
	}
}

func openSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}
