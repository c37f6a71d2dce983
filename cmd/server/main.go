package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tmarkov/restaurant-manager/internal/config"
	"github.com/tmarkov/restaurant-manager/internal/database"
	"github.com/tmarkov/restaurant-manager/internal/handler"
	"github.com/tmarkov/restaurant-manager/internal/identity"
	"github.com/tmarkov/restaurant-manager/internal/middleware"
	"github.com/tmarkov/restaurant-manager/internal/queue"
	"github.com/tmarkov/restaurant-manager/internal/repository"
	"github.com/tmarkov/restaurant-manager/internal/router"
	queue_publisher "github.com/tmarkov/restaurant-manager/internal/service"
	"github.com/tmarkov/restaurant-manager/internal/view"
	"github.com/tmarkov/restaurant-manager/migrations"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db, migrations.FS); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	employees := repository.NewEmployeeRepo(db)
	restaurants := repository.NewRestaurantRepo(db)

	provider := identity.NewProvider(cfg, users, sessions)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting disabled")
	}
	ratelimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	account := handler.NewAccountHandler(users, provider, queue_publisher.Publisher{})
	profile := handler.NewProfileHandler(employees)
	restaurantPages := handler.NewRestaurantHandler(restaurants)

	// Background consumer records registration events to logs/accounts.log.
	go queue.StartAccountConsumer()

	e := echo.New()
	e.Renderer = view.New()
	router.RegisterRoutes(e, restaurantPages)
	router.RegisterAccount(e, account, profile, provider, ratelimit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
