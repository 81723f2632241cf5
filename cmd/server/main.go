package main // Entry point package

import (
	"os" // uploads directory creation

	"github.com/joho/godotenv" // .env loading for local development
	"github.com/labstack/echo/v4"
	"go.uber.org/zap" // structured process logging

	"github.com/iliyamo/gameplay-tracker/internal/config"
	"github.com/iliyamo/gameplay-tracker/internal/database"
	"github.com/iliyamo/gameplay-tracker/internal/handler"
	"github.com/iliyamo/gameplay-tracker/internal/middleware"
	"github.com/iliyamo/gameplay-tracker/internal/repository"
	"github.com/iliyamo/gameplay-tracker/internal/router"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	_ = godotenv.Load() // absent .env is fine; real env vars win either way
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	// Uploads directory must exist before the first multipart request.
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatalw("could not create upload dir", "dir", cfg.UploadDir, "error", err)
	}

	// Redis backs the per-user GET response cache; when it is not
	// reachable the service runs uncached.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, response cache disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	games := repository.NewGameRepo(db)
	logs := repository.NewLogRepo(db)
	types := repository.NewCustomLogTypeRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	apiHandler := handler.NewAPIHandler(games, logs, types, cfg.UploadDir)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterAPI(e, authHandler, apiHandler, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
