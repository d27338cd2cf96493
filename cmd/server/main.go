// Command server starts the health app identity and session API.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"healthapp/pkg/cache"
	"healthapp/pkg/config"
	"healthapp/pkg/database"
	"healthapp/pkg/events"
	"healthapp/pkg/handlers"
	"healthapp/pkg/middleware"
	"healthapp/pkg/ratelimit"
	"healthapp/pkg/repository"
	"healthapp/pkg/server"
	"healthapp/pkg/services"
	"healthapp/pkg/storage"
	"healthapp/pkg/token"
)

func main() {
	seed := flag.Bool("seed", false, "create the demo account if absent")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("postgres connect", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	redisCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis connect", zap.Error(err))
	}
	defer redisCache.Close()

	publisher, err := events.New(cfg.RedisURL, logger)
	if err != nil {
		logger.Fatal("redis pubsub", zap.Error(err))
	}
	defer publisher.Close()

	photos, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("upload dir", zap.Error(err))
	}

	repo := repository.NewAccountRepository(db)
	tokens := token.NewService([]byte(cfg.AccessSecret), []byte(cfg.RefreshSecret), cfg.AccessTTL, cfg.RefreshTTL)
	accounts := services.NewAccountService(repo, photos, redisCache, publisher, logger)

	if *seed {
		if err := services.SeedDemoAccount(ctx, accounts); err != nil {
			logger.Warn("seed demo account", zap.Error(err))
		}
	}

	lim := ratelimit.New()
	authH := handlers.NewAuth(accounts, tokens, logger)
	usersH := handlers.NewUsers(accounts, logger)
	riskH := handlers.NewRisk(logger)

	app := server.NewApp("healthapp", cfg.CORSOrigins)
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api/v1", ratelimit.Middleware(lim, "global", 120, time.Minute))

	auth := api.Group("/auth")
	auth.Post("/signup", ratelimit.Middleware(lim, "signup", 5, time.Minute), authH.Signup)
	auth.Post("/login", ratelimit.Middleware(lim, "login", 10, time.Minute), authH.Login)
	auth.Post("/refresh", ratelimit.Middleware(lim, "refresh", 20, time.Minute), authH.Refresh)
	auth.Post("/forgot-password", authH.ForgotPassword)
	auth.Post("/logout", middleware.Auth(tokens), authH.Logout)

	users := api.Group("/users", middleware.Auth(tokens))
	users.Get("/me", usersH.Me)
	users.Patch("/me", usersH.UpdateMe)
	users.Post("/me/photo", usersH.UploadPhoto)

	api.Post("/heart-risk/predict", middleware.Auth(tokens), riskH.Predict)

	addr := "0.0.0.0:" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	logger.Info("server starting", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		logger.Fatal("server", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
