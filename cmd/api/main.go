package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	httpadp "loan-portal/internal/adapter/http"
	"loan-portal/internal/adapter/memstore"
	"loan-portal/internal/adapter/middleware"
	"loan-portal/internal/adapter/remote"
	"loan-portal/internal/adapter/repository/gormstore"
	"loan-portal/internal/config"
	"loan-portal/internal/domain/session"
	"loan-portal/internal/infrastructure/authz"
	"loan-portal/internal/infrastructure/cache"
	"loan-portal/internal/infrastructure/db"
)

const purgeInterval = 10 * time.Minute

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, rdb, err := openSessions(ctx, cfg)
	if err != nil {
		logrus.WithField("backend", cfg.SessionBackend).Fatalf("session store: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	enf, err := authz.NewEnforcer()
	if err != nil {
		logrus.Fatalf("policy: %v", err)
	}

	client := remote.NewClient(cfg.APIBaseURL, remote.WithTimeout(cfg.APITimeout))

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(requestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderContentType,
			middleware.HeaderIdempotencyKey,
			middleware.HeaderRequestAt,
		},
	}))

	deps := httpadp.Deps{
		Ports: remote.NewPorts(client),
		Sessions: middleware.SessionConfig{
			Backend: backend,
			TTL:     cfg.SessionTTL,
			Secure:  cfg.CookieSecure,
		},
		Enforcer: enf,
	}
	if rdb != nil && cfg.IdempotencyTTL() > 0 {
		deps.Redis = rdb
		deps.IdempotencyTTL = cfg.IdempotencyTTL()
	}
	httpadp.Register(e, deps)

	addr := ":" + cfg.AppPort
	go func() {
		logrus.WithFields(logrus.Fields{"addr": addr, "api": cfg.APIBaseURL, "sessions": cfg.SessionBackend}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("shutdown")
	}
}

// openSessions returns the configured session backend. The redis client is
// also returned so it can back idempotent replays.
func openSessions(ctx context.Context, cfg *config.Config) (session.Backend, *redis.Client, error) {
	switch cfg.SessionBackend {
	case "redis":
		rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewSessionBackend(rdb, cfg.SessionTTL), rdb, nil
	case "sql":
		gdb, err := db.OpenGorm(cfg.SQLDriver, cfg.SQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := gormstore.Migrate(gdb); err != nil {
			return nil, nil, err
		}
		b := gormstore.NewSessionBackend(gdb, cfg.SessionTTL)
		go purgeLoop(ctx, b)
		return b, nil, nil
	default:
		logrus.Warn("sessions are kept in memory and lost on restart")
		return memstore.NewBackend(), nil, nil
	}
}

func purgeLoop(ctx context.Context, b *gormstore.SessionBackend) {
	t := time.NewTicker(purgeInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := b.PurgeExpired(ctx)
			if err != nil {
				logrus.WithError(err).Warn("session purge failed")
				continue
			}
			if n > 0 {
				logrus.WithField("rows", n).Debug("expired sessions purged")
			}
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}
