package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/pkg/log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger, err := log.New(configs.AppEnv, configs.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := openDatabase(configs)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{}); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	root := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Fatal("failed to start background jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Validator = http.NewRequestValidator()
	e.Use(http.RequestLogger(logger))

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e, root.TokenService())
	e.GET("/ws", root.CreateWsHandler().Serve)

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("starting http server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("http server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	root.Hub().Close()
}

func getConfigs() cmd.Config {
	return cmd.Config{
		AppEnv:                goDotEnvVariable("APP_ENV"),
		LogLevel:              goDotEnvVariable("LOG_LEVEL"),
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:             goDotEnvVariable("JWT_SECRET"),
		JWTIssuer:             goDotEnvVariable("JWT_ISSUER"),
		JWTExpiration:         goDotEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		StalePendingThreshold: goDotEnvDuration("STALE_PENDING_THRESHOLD", 15*time.Minute),
	}
}

func goDotEnvVariable(key string) string {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load(".env")
	return os.Getenv(key)
}

func goDotEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError lets the repositories map unique-constraint violations
	// to domain errors.
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
}
