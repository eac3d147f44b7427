package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"sample-tracker-client/config"
	"sample-tracker-client/internal/api"
	"sample-tracker-client/internal/db"
	"sample-tracker-client/internal/notification"
	"sample-tracker-client/internal/snapshot"
	"sample-tracker-client/internal/store"
	"sample-tracker-client/internal/syncer"
)

func main() {
	logger := log.New(os.Stdout, "trackerd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := snapshot.NewRepository(gormDB)
	seed, found, err := snapshots.Load(ctx, cfg.Snapshot.Key)
	if err != nil {
		logger.Printf("ignoring unreadable snapshot %q: %v", cfg.Snapshot.Key, err)
	} else if found {
		logger.Printf("restored snapshot %q", cfg.Snapshot.Key)
	}
	appStore := store.New(seed)
	logger.Println("data store initialized")

	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		appStore.Subscribe(func(prev, next store.AppData) {
			for _, collection := range store.Changed(prev, next) {
				pool.Dispatch(collection)
			}
		})
		logger.Printf("web push notifications enabled with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys are not configured; web push notifications disabled")
	}

	syncSvc := syncer.NewService(cfg, appStore)

	var background sync.WaitGroup
	background.Add(1)
	go func() {
		defer background.Done()
		syncSvc.RefreshAll(ctx)
	}()

	if cfg.Sync.ListenForPush() {
		listener := syncer.NewListener(cfg, syncSvc)
		background.Add(1)
		go func() {
			defer background.Done()
			listener.Run(ctx)
		}()
	}

	router := api.NewRouter(&cfg.Server, appStore, syncSvc, gormDB, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server Shutdown: %v", err)
	}
	cancel()
	background.Wait()

	if cfg.Snapshot.SaveOnExit {
		if err := saveSnapshot(snapshots, cfg.Snapshot.Key, appStore.Get()); err != nil {
			logger.Printf("failed to save snapshot %q: %v", cfg.Snapshot.Key, err)
		} else {
			logger.Printf("saved snapshot %q", cfg.Snapshot.Key)
		}
	}

	logger.Println("Server gracefully stopped")
}

// snapshotSaveTimeout bounds the exit save, which runs after the shutdown deadline.
const snapshotSaveTimeout = 10 * time.Second

func saveSnapshot(snapshots *snapshot.Repository, key string, data store.AppData) error {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
	defer cancel()
	return snapshots.Save(ctx, key, data)
}
