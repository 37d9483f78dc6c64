package main

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"meetapp/config"
	_ "meetapp/docs"
	"meetapp/internal/adapters/auth"
	"meetapp/internal/adapters/queue"
	delivery "meetapp/internal/delivery/http"
	"meetapp/internal/delivery/http/controllers"
	"meetapp/internal/delivery/http/middleware"
	"meetapp/internal/repository/postgres"
	"meetapp/internal/services"
)

// @title Meetapp API
// @version 1.0
// @description Meetup scheduling, subscription, and organizer notification API.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("parse redis url", "err", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(db)
	meetupRepo := postgres.NewMeetupRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	hasher := auth.NewBcryptHasher(0)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	dispatcher := queue.NewRedisDispatcher(redisClient, queue.DefaultListKey)

	userService := services.NewUserService(userRepo, hasher, tokenIssuer, cfg.TokenExpiry)
	meetupService := services.NewMeetupService(meetupRepo)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, meetupRepo, userRepo, notificationRepo, dispatcher, logger)
	notificationService := services.NewNotificationService(notificationRepo, meetupRepo)

	router := delivery.NewRouter(
		tokenVerifier,
		controllers.NewAuthController(logger, userService),
		controllers.NewUserController(logger, userService),
		controllers.NewMeetupController(logger, meetupService),
		controllers.NewSubscriptionController(logger, subscriptionService),
		controllers.NewNotificationController(logger, notificationService),
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router))

	addr := ":" + cfg.Port
	logger.Info("api listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
