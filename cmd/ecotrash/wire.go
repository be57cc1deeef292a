package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/service"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/infrastructure/backend"
	mongodb "github.com/IvsKevinSchool/NotEcotrash-sub000/internal/infrastructure/db/mongo"
	redisdb "github.com/IvsKevinSchool/NotEcotrash-sub000/internal/infrastructure/db/redis"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/infrastructure/storage/file"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/infrastructure/storage/memory"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/infrastructure/storage/sealed"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/pkg/config"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/pkg/logger"
)

const storagePingTimeout = 3 * time.Second

// env is the wired object graph shared by every command.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	storage ports.SessionStorage
	store   *service.SessionStore
	client  *backend.Client
	auth    *service.AuthService

	closers []func(context.Context) error
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: ServiceName,
	})

	e := &env{cfg: cfg, log: logger.Get()}

	storage, closeFn, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if closeFn != nil {
		e.closers = append(e.closers, closeFn)
	}
	if cfg.Session.Secret != "" {
		if storage, err = sealed.New(storage, cfg.Session.Secret); err != nil {
			e.Close(ctx)
			return nil, err
		}
	}
	e.storage = storage

	// An unreachable store only means "no session": Bootstrap starts
	// anonymous and /health/ready reports the outage.
	pingCtx, cancel := context.WithTimeout(ctx, storagePingTimeout)
	if err := storage.Ping(pingCtx); err != nil {
		e.log.Warn().Err(err).Str("driver", cfg.Session.Driver).Msg("session storage unreachable")
	}
	cancel()

	e.store = service.NewSessionStore(storage, cfg.Session.Key, logger.Component("session"))
	e.client = backend.New(backend.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, e.store, logger.Component("backend"))
	e.auth = service.NewAuthService(e.client, e.store, logger.Component("auth"))

	return e, nil
}

// openStorage builds the session storage driver named by SESSION_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config) (ports.SessionStorage, func(context.Context) error, error) {
	switch cfg.Session.Driver {
	case "memory":
		return memory.New(), nil, nil
	case "file":
		s, err := file.New(cfg.Session.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open session dir: %w", err)
		}
		return s, nil, nil
	case "redis":
		rdb := redisdb.New(redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisdb.NewSessionStorage(rdb, 0), func(context.Context) error { return rdb.Close() }, nil
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, err
		}
		return mongodb.NewSessionStorage(db), client.Disconnect, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Session.Driver)
}

func (e *env) Close(ctx context.Context) {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](ctx); err != nil {
			e.log.Warn().Err(err).Msg("close dependency")
		}
	}
}
