package main

import (
	"context"
	"log"

	"ProjectHubAPI/external/google"
	"ProjectHubAPI/external/resend"
	"ProjectHubAPI/internal/config"
	"ProjectHubAPI/internal/db"
	"ProjectHubAPI/internal/logger"
	"ProjectHubAPI/internal/middleware"
	"ProjectHubAPI/internal/repository"
	"ProjectHubAPI/internal/services"
	"ProjectHubAPI/internal/token"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		zlog.Fatal("migrations failed", zap.Error(err))
	}
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database unavailable", zap.Error(err))
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		zlog.Fatal("redis unavailable", zap.Error(err))
	}

	// ======================
	// EXTERNALS
	// ======================
	mailer, err := resend.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	if err != nil {
		zlog.Fatal("mailer init failed", zap.Error(err))
	}
	identity := google.NewVerifier(cfg.GoogleClientID)

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	verifyRepo := repository.NewEmailVerificationRepository(pool)
	resetStore := repository.NewResetTokenStore(rdb)

	// ======================
	// SERVICES
	// ======================
	tokenSvc := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	verifySvc := services.NewEmailVerificationService(userRepo, verifyRepo, mailer, cfg.VerifyTokenTTL, cfg.BaseURL)
	authSvc := services.NewAuthService(userRepo, tokenSvc, verifySvc, identity, cfg.BcryptCost, zlog)
	resetSvc := services.NewPasswordResetService(userRepo, resetStore, mailer, cfg.ResetTokenTTL, cfg.BcryptCost, cfg.BaseURL)
	projSvc := services.NewProjectService(projectRepo, userRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(zlog))

	api := e.Group("/api")
	guard := middleware.RequireAuth(tokenSvc)

	registerAuthRoutes(api, authSvc, resetSvc, verifySvc, guard)
	registerProjectRoutes(api, projSvc, guard)

	zlog.Info("listening", zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func requestLogger(zlog *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
				zlog.Error("request", fields...)
				return nil
			}
			zlog.Info("request", fields...)
			return nil
		},
	})
}
