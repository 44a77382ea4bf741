package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry/cmd"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/redis"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configs := getConfigs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustOpenDatabase(configs)
	redisClient := connectRedis(ctx, configs, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}
	defer app.Close()

	jobManager := app.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := app.NewEcho(ctx)
	if err != nil {
		log.Fatalf("Error building http server: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	loadDotEnv()

	config := cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		CatalogCacheTTL:        os.Getenv("CATALOG_CACHE_TTL"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		GatewayURL:             os.Getenv("GATEWAY_URL"),
		GatewayAPIKey:          os.Getenv("GATEWAY_API_KEY"),
		GatewayTimeout:         os.Getenv("GATEWAY_TIMEOUT"),
		LookupTimeout:          os.Getenv("LOOKUP_TIMEOUT"),
		ReconcileSchedule:      os.Getenv("RECONCILE_SCHEDULE"),
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	return config
}

// loadDotEnv reads .env once. A missing file is fine in containers where
// the environment is already set.
func loadDotEnv() {
	err := godotenv.Load(".env")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		DriverName: "postgres",
		DSN:        configs.DSN(),
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}

// connectRedis returns nil when the cache is not configured or unreachable;
// the service then runs without it.
func connectRedis(ctx context.Context, configs cmd.Config, logger *slog.Logger) *goredis.Client {
	if configs.RedisAddr == "" {
		return nil
	}
	client, err := redis.NewClient(ctx, configs.RedisAddr)
	if err != nil {
		logger.Warn("catalog cache disabled", "addr", configs.RedisAddr, "error", err)
		return nil
	}
	return client
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
}
