// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clipstream/internal/cache"
	"clipstream/internal/config"
	"clipstream/internal/database"
	"clipstream/internal/featureflags"
	"clipstream/internal/middleware"
	"clipstream/internal/models"
	"clipstream/internal/repository"
	"clipstream/internal/service"
	"clipstream/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	flags          *featureflags.Manager

	userRepo     repository.UserRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	tweetRepo    repository.TweetRepository
	likeRepo     repository.LikeRepository
	subRepo      repository.SubscriptionRepository
	playlistRepo repository.PlaylistRepository

	userService     *service.UserService
	videoService    *service.VideoService
	commentService  *service.CommentService
	tweetService    *service.TweetService
	likeService     *service.LikeService
	subService      *service.SubscriptionService
	playlistService *service.PlaylistService
	feedService     *service.FeedService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	media, err := storage.NewMediaStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("media store init failed: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := media.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("media bucket init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, media)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this to inject sqlmock-backed databases and stub media stores.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, media service.MediaUploader) (*Server, error) {
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("clipstream-api"),
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		userRepo:       repository.NewUserRepository(db),
		videoRepo:      repository.NewVideoRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		tweetRepo:      repository.NewTweetRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		subRepo:        repository.NewSubscriptionRepository(db),
		playlistRepo:   repository.NewPlaylistRepository(db),
	}

	s.userService = service.NewUserService(s.userRepo, s.subRepo)
	s.videoService = service.NewVideoService(s.videoRepo, media)
	s.commentService = service.NewCommentService(s.commentRepo, s.videoRepo)
	s.tweetService = service.NewTweetService(s.tweetRepo, s.userRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.videoRepo, s.commentRepo, s.tweetRepo)
	s.subService = service.NewSubscriptionService(s.subRepo, s.userRepo)
	s.playlistService = service.NewPlaylistService(s.playlistRepo, s.videoRepo)
	s.feedService = service.NewFeedService(s.subRepo, s.tweetRepo)

	return s, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (300 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewValidationError("Too many requests, please try again later"))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public video routes
	videos := api.Group("/videos")
	videos.Get("/", s.GetVideos)
	videos.Get("/:id/comments", s.GetComments)
	videos.Get("/:id", s.GetVideo)

	// Public channel and tweet browsing
	api.Get("/channels/:id", s.GetChannelProfile)
	api.Get("/tweets", s.GetTweets)
	api.Get("/users/:id/tweets", s.GetUserTweets)
	api.Get("/subscriptions/channel/:channelId", s.GetChannelSubscribers)
	api.Get("/users/:id/playlists", s.GetUserPlaylists)
	api.Get("/playlists/:id", s.GetPlaylist)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Patch("/me", s.UpdateMyProfile)
	users.Post("/me/password", s.ChangePassword)

	protectedVideos := protected.Group("/videos")
	protectedVideos.Post("/", middleware.RateLimit(s.redis, 5, 10*time.Minute, "publish_video"), s.PublishVideo)
	protectedVideos.Post("/:id/comments", middleware.RateLimit(s.redis, 15, time.Minute, "create_comment"), s.AddComment)
	protectedVideos.Patch("/:id/toggle-publish", s.TogglePublishVideo)
	protectedVideos.Patch("/:id", s.UpdateVideo)
	protectedVideos.Delete("/:id", s.DeleteVideo)

	comments := protected.Group("/comments")
	comments.Patch("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	tweets := protected.Group("/tweets")
	tweets.Post("/", middleware.RateLimit(s.redis, 15, time.Minute, "create_tweet"), s.CreateTweet)
	tweets.Post("/:tweetId/like", s.ToggleTweetLike)
	tweets.Patch("/:id", s.UpdateTweet)
	tweets.Delete("/:id", s.DeleteTweet)

	likes := protected.Group("/likes")
	likes.Post("/toggle", s.ToggleLike)
	likes.Post("/toggle/v/:videoId", s.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", s.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", s.ToggleTweetLike)
	likes.Get("/videos", s.GetLikedVideos)

	subscriptions := protected.Group("/subscriptions")
	subscriptions.Post("/toggle/:channelId", s.ToggleSubscription)
	subscriptions.Get("/my", s.GetSubscribedChannels)

	playlists := protected.Group("/playlists")
	playlists.Post("/", s.CreatePlaylist)
	playlists.Post("/:id/videos/:videoId", s.AddVideoToPlaylist)
	playlists.Delete("/:id/videos/:videoId", s.RemoveVideoFromPlaylist)
	playlists.Patch("/:id", s.UpdatePlaylist)
	playlists.Delete("/:id", s.DeletePlaylist)

	protected.Get("/feed", s.GetFeed)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
			blacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
			if err == nil && blacklisted > 0 {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID extracts a user ID from the Authorization header without
// enforcing authentication. Anonymous callers get (0, false).
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Clipstream API",
		BodyLimit: s.config.MaxUploadSizeMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Routing errors (404, 405, 413) keep their status; anything
			// else is an unhandled failure.
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(models.Envelope{
					Success: false,
					Message: fiberErr.Message,
				})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled handler error", "error", err.Error())
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app == nil {
		return nil
	}
	return s.app.ShutdownWithContext(ctx)
}
