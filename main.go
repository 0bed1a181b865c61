package main

import (
	"context"
	"log"
	"time"

	"healthcare-booking/cmd"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/internal/usecase"
	"healthcare-booking/internal/wire"
	"healthcare-booking/pkg/cache"
	"healthcare-booking/pkg/database"
	"healthcare-booking/pkg/mailer"
	"healthcare-booking/pkg/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	envFile := pflag.String("env-file", ".env", "path to the env config file")
	migrate := pflag.Bool("migrate", false, "apply database migrations before serving")
	pflag.Parse()

	// Load config
	config, err := utils.LoadConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", config.App.Timezone),
	)

	location, err := config.App.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err))
	}

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect to database
	db, err := database.InitDB(startCtx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if *migrate {
		if err := database.Migrate(startCtx, db, logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Connect to Redis (rate limits and token denylist)
	rdb, err := database.InitRedis(startCtx, config.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)
	denylist := cache.NewTokenDenylist(rdb)

	deps := usecase.Dependencies{
		Tokens:   utils.NewTokenManager(config.JWT),
		Mailer:   mailer.New(config.Email, logger),
		Denylist: denylist,
		Location: location,
		Now:      time.Now,
	}
	guards := wire.Guards{
		Limiter:  cache.NewRateLimiter(rdb),
		Denylist: denylist,
		Ping:     db.Ping,
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, deps, guards, logger)

	// Start server
	if err := cmd.APIServer(app.Router, config.App, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
