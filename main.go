package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adrixx117/Investments/internal/config"
	"github.com/Adrixx117/Investments/internal/database"
	"github.com/Adrixx117/Investments/internal/logger"
	"github.com/Adrixx117/Investments/internal/router"
	"github.com/Adrixx117/Investments/internal/store"

	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	// load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("load config", "err", err)
	}
	l := logger.New(cfg.Log)

	backend, closeBackend, err := openBackend(cfg, l)
	if err != nil {
		l.Fatal("open backend", "kind", cfg.Backend.Kind, "err", err)
	}
	defer closeBackend()

	coordinator := store.NewCoordinator(backend, l)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a failed initial load is not fatal: the tabs refresh on demand
	if err := coordinator.Load(ctx); err != nil {
		l.Error("initial load", "err", err)
	}

	r := router.SetupRouter(cfg, coordinator, l)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		l.Info("server listening", "addr", addr, "backend", cfg.Backend.Kind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("run server", "err", err)
		}
	}()

	<-ctx.Done()
	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("shutdown", "err", err)
	}
}

// openBackend builds the backend named by cfg.Backend.Kind. The returned
// func releases whatever the backend holds open.
func openBackend(cfg *config.Config, l *log.Logger) (store.Backend, func(), error) {
	switch cfg.Backend.Kind {
	case config.BackendLocal:
		kv, err := store.NewFileKeyValue(cfg.Local.Dir)
		if err != nil {
			return nil, nil, err
		}
		var blob store.KeyValue = kv
		if cfg.Local.EncryptionKey != "" {
			blob = store.NewEncryptedKeyValue(kv, cfg.Local.EncryptionKey)
		}
		l.Info("using local storage", "dir", cfg.Local.Dir, "key", cfg.Local.Key, "encrypted", cfg.Local.EncryptionKey != "")
		return store.NewLocalBackend(blob, cfg.Local.Key), func() {}, nil

	default:
		db, err := database.Init(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
		l.Info("using document store", "path", cfg.Database.Path)
		backend := store.NewRemoteBackend(database.NewDocumentStore(db), store.Collections{
			ETF:   cfg.Remote.ETFCollection,
			Stock: cfg.Remote.StockCollection,
		})
		return backend, func() {
			if err := database.Close(db); err != nil {
				l.Error("close database", "err", err)
			}
		}, nil
	}
}
