package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/config"
	"github.com/painelweb/painel/internal/database"
	"github.com/painelweb/painel/internal/email"
	"github.com/painelweb/painel/internal/handler"
	"github.com/painelweb/painel/internal/middleware"
	"github.com/painelweb/painel/internal/migrator"
	"github.com/painelweb/painel/internal/queue"
	"github.com/painelweb/painel/internal/repository"
	"github.com/painelweb/painel/internal/router"
	"github.com/painelweb/painel/internal/service"
	"github.com/painelweb/painel/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	m := migrator.New(db)
	if applied, err := m.RunPending(context.Background()); err != nil {
		log.Fatalf("migrations: %v", err)
	} else if len(applied) > 0 {
		log.Printf("migrations: applied %d", len(applied))
	}

	hasher := utils.NewHasher(cfg.Pepper, cfg.BcryptCost)
	users := repository.NewUserRepo(db, hasher)
	sessions := repository.NewSessionRepo(db)
	auth := service.NewAuthenticator(users, hasher)

	rdb := config.NewRedisClient() // nil when Redis is unreachable; middlewares degrade
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	sessionAuth := middleware.SessionAuth(sessions, cfg.Production())

	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(cfg.Production())

	router.RegisterSystem(e, handler.NewStatusHandler(db, cfg.DBName), handler.NewMigrationHandler(m))
	router.RegisterUsers(e, handler.NewUserHandler(users), sessionAuth)
	router.RegisterSessions(e, handler.NewSessionHandler(sessions, auth, cfg.Production()), rateLimit)
	router.RegisterUtils(e, handler.NewCEPHandler(), cache)

	// Welcome mails are sent off the request path.
	go func() {
		if err := queue.StartWelcomeConsumer(email.NewMailer(cfg)); err != nil {
			log.Printf("welcome-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
