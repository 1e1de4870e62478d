package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"followgram/internal/cache"
	"followgram/internal/config"
	"followgram/internal/database"
	"followgram/internal/handler"
	"followgram/internal/repository"
	"followgram/internal/service"
)

// Run loads configuration, wires the store, cache, services and handlers, and
// serves the API.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	followingCache := cache.NewNopFollowingCache()
	if cfg.FeatureEnabled("feed-cache") && cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		followingCache = cache.NewFollowingCache(redisClient)
		log.Println("Feed cache enabled")
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo)
	followService := service.NewFollowService(userRepo, followingCache)
	feedService := service.NewFeedService(userRepo, postRepo, followingCache)
	postService := service.NewPostService(postRepo)

	routerCfg := RouterConfig{
		AuthHandler:   handler.NewAuthHandler(userService, authService),
		UserHandler:   handler.NewUserHandler(userService),
		FollowHandler: handler.NewFollowHandler(followService),
		PostHandler:   handler.NewPostHandler(postService, feedService),
		AuthService:   authService,
	}

	if cfg.FeatureEnabled("media") {
		mediaService, err := service.NewMediaService(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to create media service: %w", err)
		}
		routerCfg.MediaHandler = handler.NewMediaHandler(mediaService, userService)
		log.Println("Media feature enabled")
	}

	r := NewRouter(routerCfg)

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, r)
}
