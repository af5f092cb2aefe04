package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/config"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/database"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/handler"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/queue"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/repository"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/router"
	queue_publisher "github.com/Raket-Swathi/bellcorp-event-app/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; running without cache and rate limiting")
	}

	// Audit trail consumer; reconnects forever in the background.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	regs := repository.NewRegistrationRepo(db)

	e := echo.New()
	router.RegisterRoutes(e, cfg, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users),
		Events:        handler.NewEventHandler(events),
		Registrations: handler.NewRegistrationHandler(regs, events, queue_publisher.PublishRegistrationActivity),
		Seed:          handler.NewSeedHandler(db),
		Users:         users,
	}, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
