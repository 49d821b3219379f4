// Command server runs the Warri Apartment Hunt API.
//
// @title                      Warri Apartment Hunt API
// @version                    1.0
// @description                Rental and sale listings in Warri, Delta State: per-session filtering, sorting and pagination, applications, inspections and support.
// @BasePath                   /api/v1
// @schemes                    http https
// @accept                     json
// @produce                    json
// @tag.name                   Listings
// @tag.name                   Session
// @tag.name                   Gallery
// @tag.name                   Derived
// @tag.name                   Agents
// @tag.name                   Applications
// @tag.name                   Inquiries
// @tag.name                   Admin
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/warri-apartment-hunt/internal/backup"
	"github.com/tbourn/warri-apartment-hunt/internal/config"
	httpapi "github.com/tbourn/warri-apartment-hunt/internal/http"
	"github.com/tbourn/warri-apartment-hunt/internal/observability"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/seed"
	"github.com/tbourn/warri-apartment-hunt/internal/session"
	"github.com/tbourn/warri-apartment-hunt/internal/state"
	"github.com/tbourn/warri-apartment-hunt/internal/store"
	"github.com/tbourn/warri-apartment-hunt/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetupLogging(cfg.LogLevel, cfg.LogPretty)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if err := observability.InstrumentGORM(db, cfg.OTEL); err != nil {
		return err
	}
	coll := repo.NewCollections(st)

	if cfg.SeedOnStart {
		data, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		if _, err := seed.Apply(ctx, st, data, time.Now()); err != nil {
			return err
		}
	}

	sessions, err := session.NewRegistry(cfg.SessionCapacity, func() *state.State {
		return state.New(coll, state.WithPageSize(cfg.PageSize))
	})
	if err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	defer sessions.Close()

	sched, err := newScheduler(ctx, cfg, db, coll)
	if err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{DB: db, Collections: coll, Sessions: sessions}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("driver", cfg.DBDriver).
			Str("version", version).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// openStore connects the configured driver. The memory driver has no
// database and returns a nil *gorm.DB.
func openStore(cfg config.Config) (*gorm.DB, store.Store, error) {
	dsn := cfg.DBPath
	if cfg.DBDriver == repo.DriverPostgres {
		dsn = cfg.DatabaseURL
	}
	db, err := repo.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if db == nil {
		log.Warn().Msg("memory driver: data and idempotency keys are lost on restart")
		return nil, store.NewMemory(), nil
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return db, store.NewGorm(db), nil
}

// newScheduler registers the backup and idempotency purge jobs that cfg
// enables.
func newScheduler(ctx context.Context, cfg config.Config, db *gorm.DB, coll *repo.Collections) (*backup.Scheduler, error) {
	sched := backup.NewScheduler(ctx)

	if cfg.Backup.Cron != "" {
		var sinks []backup.Sink
		if cfg.Backup.Dir != "" {
			sinks = append(sinks, backup.FileSink{Dir: cfg.Backup.Dir})
		}
		if s3 := cfg.Backup.S3; s3.Bucket != "" {
			sink, err := backup.NewS3Sink(ctx, backup.S3Config{
				Bucket:          s3.Bucket,
				Region:          s3.Region,
				Endpoint:        s3.Endpoint,
				Prefix:          s3.Prefix,
				AccessKeyID:     s3.AccessKeyID,
				SecretAccessKey: s3.SecretAccessKey,
			})
			if err != nil {
				return nil, fmt.Errorf("s3 sink: %w", err)
			}
			sinks = append(sinks, sink)
		}
		if err := sched.Add(cfg.Backup.Cron, "backup", backup.BackupJob(backup.New(coll, sinks...))); err != nil {
			return nil, err
		}
	}

	if db != nil && cfg.Backup.PurgeCron != "" {
		err := sched.Add(cfg.Backup.PurgeCron, "idempotency-purge", func(ctx context.Context) error {
			n, err := repo.PurgeExpiredIdempotency(ctx, db, time.Now().UTC())
			if err == nil && n > 0 {
				log.Info().Int64("purged", n).Msg("expired idempotency keys removed")
			}
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return sched, nil
}
