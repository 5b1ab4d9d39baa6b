// Package main book rental API.
//
// @title           Book Rental API
// @version         1.0
// @description     Library rental administration: authors, books, book types, customers and rentals.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bookrental/app/echoServer"
	authctrl "bookrental/app/echoServer/controller/auth"
	authorctrl "bookrental/app/echoServer/controller/author"
	bookctrl "bookrental/app/echoServer/controller/book"
	booktypectrl "bookrental/app/echoServer/controller/booktype"
	customerctrl "bookrental/app/echoServer/controller/customer"
	rentalctrl "bookrental/app/echoServer/controller/rental"
	"bookrental/app/echoServer/render"
	"bookrental/app/echoServer/validation"
	"bookrental/config"
	"bookrental/repository/archive"
	authrepo "bookrental/repository/auth"
	authorrepo "bookrental/repository/author"
	bookrepo "bookrental/repository/book"
	booktyperepo "bookrental/repository/booktype"
	customerrepo "bookrental/repository/customer"
	rentalrepo "bookrental/repository/rental"
	"bookrental/repository/resettoken"
	authsvc "bookrental/service/auth"
	authorsvc "bookrental/service/author"
	booksvc "bookrental/service/book"
	booktypesvc "bookrental/service/booktype"
	customersvc "bookrental/service/customer"
	"bookrental/service/pricing"
	rentalsvc "bookrental/service/rental"
	"bookrental/util/database"
	"bookrental/util/mailer"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB: gorm over a pgx pool
	db, err := database.New(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(db.Gorm); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	policy, err := pricing.PolicyByName(cfg.PricingTierPolicy)
	if err != nil {
		log.Error("pricing policy", "err", err)
		os.Exit(1)
	}

	// repos
	ar := authrepo.New(db.Gorm)
	aur := authorrepo.New(db.Gorm)
	cr := customerrepo.New(db.Gorm)
	btr := booktyperepo.New(db.Gorm)
	br := bookrepo.New(db.Gorm)
	rr := rentalrepo.New(db.Gorm)

	tokens, closeTokens := resetTokenStore(ctx, cfg, log)
	defer closeTokens()

	var mail mailer.Mailer = mailer.NewLog(log)
	if cfg.SMTP.Enabled() {
		mail = mailer.NewSMTP(mailer.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	var store archive.Store
	if cfg.Minio.Enabled() {
		store, err = archive.NewMinio(ctx, archive.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			log.Error("statement archive unavailable", "err", err)
			os.Exit(1)
		}
	}

	// services
	ps := pricing.New(btr, policy)
	as := authsvc.New(ar, cfg.JWTSecret,
		authsvc.WithResetTokens(tokens, time.Duration(cfg.ResetTokenMinutes)*time.Minute),
		authsvc.WithMailer(mail, cfg.ResetBaseURL))
	aus := authorsvc.New(aur)
	cs := customersvc.New(cr)
	bts := booktypesvc.New(btr)
	bs := booksvc.New(br)
	rs := rentalsvc.New(db.Gorm, rr, ps)

	renderer, err := render.New()
	if err != nil {
		log.Error("templates", "err", err)
		os.Exit(1)
	}

	// controllers
	val := validation.New(validator.New())
	v := val.Engine()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	authorC := &authorctrl.Controller{Svc: aus, V: v, Log: log}
	customerC := &customerctrl.Controller{Svc: cs, V: v, Log: log}
	bookTypeC := &booktypectrl.Controller{Svc: bts, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log, Renderer: renderer, Archive: store}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, log)
	e.Validator = val
	e.Renderer = renderer

	e.GET("/health", func(c echo.Context) error {
		if err := db.Pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":  "degraded",
				"message": "database unreachable",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Author:   authorC,
		Customer: customerC,
		BookType: bookTypeC,
		Book:     bookC,
		Rental:   rentalC,

		JWTSecret:      cfg.JWTSecret,
		Log:            log,
		ArchiveEnabled: store != nil,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server",
		"port", port,
		"env", cfg.Env,
		"tier_policy", policy.Name(),
		"redis", cfg.RedisAddr != "",
		"archive", store != nil,
		"smtp", cfg.SMTP.Enabled(),
	)

	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

// resetTokenStore uses Redis when configured and falls back to memory.
func resetTokenStore(ctx context.Context, cfg config.App, log *slog.Logger) (resettoken.Store, func()) {
	if cfg.RedisAddr == "" {
		return resettoken.NewMemoryStore(), func() {}
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, reset tokens kept in memory", "addr", cfg.RedisAddr, "err", err)
		_ = client.Close()
		return resettoken.NewMemoryStore(), func() {}
	}
	return resettoken.NewRedisStore(client), func() { _ = client.Close() }
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
