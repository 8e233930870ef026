package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/friendcircle/friendship-api/internal/config"
	"github.com/friendcircle/friendship-api/internal/domain/friendrequest"
	"github.com/friendcircle/friendship-api/internal/domain/friendship"
	"github.com/friendcircle/friendship-api/internal/domain/status"
	"github.com/friendcircle/friendship-api/internal/middleware"
	"github.com/friendcircle/friendship-api/internal/pkg/chatclient"
	"github.com/friendcircle/friendship-api/internal/pkg/database"
	"github.com/friendcircle/friendship-api/internal/pkg/existscache"
	"github.com/friendcircle/friendship-api/internal/pkg/jwt"
	"github.com/friendcircle/friendship-api/internal/pkg/logger"
	"github.com/friendcircle/friendship-api/internal/pkg/response"
	"github.com/friendcircle/friendship-api/internal/pkg/userclient"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Friendship API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret)

	// ---------- Collaborator service clients ----------
	userClient := userclient.New(cfg.UserServiceURL, cfg.RemoteTimeout, cfg.RemoteRetries, cfg.RemoteBackoff)
	chatClient := chatclient.New(cfg.ChatServiceURL, cfg.RemoteTimeout, cfg.RemoteRetries, cfg.RemoteBackoff)

	userExists := existscache.New(redis, "exists:user", cfg.ExistsCacheTTL, userClient.Exists)
	chatExists := existscache.New(redis, "exists:chat", cfg.ExistsCacheTTL, chatClient.Exists)

	// ---------- Repositories ----------
	friendshipRepo := friendship.NewRepository(db)
	requestRepo := friendrequest.NewRepository(db)

	// ---------- Adapters ----------
	checker := &remoteChecker{users: userExists, chats: chatExists}
	chatService := &chatServiceAdapter{client: chatClient, cache: chatExists}

	// ---------- Services ----------
	friendshipService := friendship.NewService(friendshipRepo, checker)
	requestService := friendrequest.NewService(requestRepo, friendshipRepo, checker, chatService)
	statusResolver := status.NewResolver(requestRepo, friendshipRepo)

	// ---------- Handlers ----------
	friendshipHandler := friendship.NewHandler(friendshipService)
	requestHandler := friendrequest.NewHandler(requestService)
	statusHandler := status.NewHandler(statusResolver)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/friendships", friendshipHandler.Routes(authMiddleware))
		r.Mount("/friend-requests", requestHandler.Routes(authMiddleware))
		r.Mount("/relationships", statusHandler.Routes())
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// remoteChecker bridges the cached collaborator clients to the checker
// interfaces of both domain services.
type remoteChecker struct {
	users *existscache.Cache
	chats *existscache.Cache
}

func (c *remoteChecker) UserExists(ctx context.Context, userID int64) bool {
	return c.users.Exists(ctx, userID)
}

func (c *remoteChecker) ChatExists(ctx context.Context, chatID int64) bool {
	return c.chats.Exists(ctx, chatID)
}

// chatServiceAdapter pairs the chat client with its existence cache so a
// compensating delete also drops the cached positive answer.
type chatServiceAdapter struct {
	client *chatclient.Client
	cache  *existscache.Cache
}

func (a *chatServiceAdapter) CreateChat(ctx context.Context, idempotencyKey string) (int64, error) {
	return a.client.CreateChat(ctx, idempotencyKey)
}

func (a *chatServiceAdapter) DeleteChat(ctx context.Context, chatID int64) error {
	if err := a.client.DeleteChat(ctx, chatID); err != nil {
		return err
	}
	a.cache.Invalidate(ctx, chatID)
	return nil
}
