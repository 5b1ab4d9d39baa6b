package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bookrental/model"
)

// DB owns the pgx pool and the gorm handle layered on top of it.
type DB struct {
	Pool *pgxpool.Pool
	Gorm *gorm.DB
}

func New(ctx context.Context, dsn string, log *slog.Logger) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	g, err := Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(p)}), log)
	if err != nil {
		p.Close()
		return nil, err
	}
	return &DB{Pool: p, Gorm: g}, nil
}

// Open wraps a gorm dialector with the service's logging and error
// translation settings.
func Open(d gorm.Dialector, log *slog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if log != nil {
		cfg.Logger = gormlogger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		)
	} else {
		cfg.Logger = gormlogger.Discard
	}
	g, err := gorm.Open(d, cfg)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return g, nil
}

// Migrate creates or updates every table.
func Migrate(g *gorm.DB) error {
	if err := g.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (d *DB) Close() {
	if sqlDB, err := d.Gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
	d.Pool.Close()
}
