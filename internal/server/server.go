// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/cache"
	"github.com/Kavi981/Nxt-Round/internal/config"
	"github.com/Kavi981/Nxt-Round/internal/database"
	"github.com/Kavi981/Nxt-Round/internal/middleware"
	"github.com/Kavi981/Nxt-Round/internal/models"
	"github.com/Kavi981/Nxt-Round/internal/repository"
	"github.com/Kavi981/Nxt-Round/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "nxtround-api"
	tokenAudience = "nxtround-client"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App
	oauth  *oauth2.Config

	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	companyRepo  repository.CompanyRepository
	activityRepo repository.ActivityRepository

	questionService *service.QuestionService
	companyService  *service.CompanyService
	userService     *service.UserService
	statsService    *service.StatsService
	activityService *service.ActivityService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("nxtround-api"),
		userRepo:       userRepo,
		questionRepo:   questionRepo,
		companyRepo:    companyRepo,
		activityRepo:   activityRepo,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleCallbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
	server.questionService = service.NewQuestionService(questionRepo, companyRepo)
	server.companyService = service.NewCompanyService(companyRepo, questionRepo)
	server.userService = service.NewUserService(userRepo, questionRepo)
	server.statsService = service.NewStatsService(userRepo, questionRepo, companyRepo)
	server.activityService = service.NewActivityService(activityRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Distributed tracing (span per request, propagation from inbound headers)
	app.Use(middleware.TracingMiddleware())

	// HTTP metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Prometheus scrape endpoint
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Auth routes
	auth := api.Group("/auth")
	auth.Get("/google", s.GoogleLogin)
	auth.Get("/google/callback", s.GoogleCallback)
	auth.Get("/me", s.AuthRequired(), s.Me)
	auth.Get("/logout", s.Logout)

	// Public question routes; GET /:id resolves an optional bearer itself
	// because anonymous and authenticated reads count views differently.
	questions := api.Group("/questions")
	questions.Get("/", s.GetQuestions)
	questions.Get("/:id", s.GetQuestion)
	questions.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "create_question"), s.CreateQuestion)
	questions.Put("/:id", s.AuthRequired(), s.UpdateQuestion)
	questions.Delete("/:id", s.AuthRequired(), s.DeleteQuestion)
	questions.Post("/:id/vote", s.AuthRequired(), middleware.RateLimit(
		s.redis, 30, time.Minute, "vote"), s.VoteQuestion)

	// Company routes
	companies := api.Group("/companies")
	companies.Get("/", s.GetCompanies)
	// Specific /admin routes before generic /:id
	companies.Get("/admin/all", s.AuthRequired(), s.AdminRequired(), s.GetCompaniesAdmin)
	companies.Get("/admin/:companyId", s.AuthRequired(), s.AdminRequired(), s.GetCompanyAdminDetail)
	companies.Get("/:id", s.GetCompany)
	companies.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "create_company"), s.CreateCompany)
	companies.Put("/:id", s.AuthRequired(), s.UpdateCompany)
	companies.Delete("/:id", s.AuthRequired(), s.AdminRequired(), s.DeleteCompany)

	// User routes
	users := api.Group("/users", s.AuthRequired())
	users.Get("/profile", s.GetProfile)
	users.Put("/profile", s.UpdateProfile)
	users.Get("/questions", s.GetMyQuestions)
	users.Post("/bookmark/:questionId", s.ToggleBookmark)
	users.Get("/bookmarks", s.GetBookmarks)
	usersAdmin := users.Group("/admin", s.AdminRequired())
	usersAdmin.Get("/all", s.GetUsersAdmin)
	usersAdmin.Get("/:userId", s.GetUserAdminDetail)
	usersAdmin.Put("/:userId/role", s.ChangeUserRole)
	usersAdmin.Delete("/:userId", s.DeleteUser)

	// Stats routes
	stats := api.Group("/stats")
	stats.Get("/", s.GetPlatformStats)
	stats.Get("/overview", s.AuthRequired(), s.AdminRequired(), s.GetStatsOverview)
	stats.Get("/analytics", s.AuthRequired(), s.AdminRequired(), s.GetStatsAnalytics)

	// Activity routes (admin only)
	activities := api.Group("/activities/admin", s.AuthRequired(), s.AdminRequired())
	activities.Get("/recent", s.GetRecentActivities)
	activities.Get("/stats", s.GetActivityStats)
	activities.Get("/user/:userId", s.GetUserActivities)
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
		// The API degrades without redis, so its absence does not fail
		// readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, err := s.verifyToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		// Store user ID in context
		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// bearerToken extracts the token from the Authorization header, if any.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// verifyToken validates an HS256 token and returns the user ID from its
// subject claim. All failures come back as UNAUTHORIZED app errors.
func (s *Server) verifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid token claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(userID), nil
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Anonymous and authenticated reads are both valid on
// public endpoints; they just count views differently.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return 0, false
	}
	userID, err := s.verifyToken(tokenString)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("role").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Nxt Round API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if err := cache.Close(); err != nil {
		log.Printf("error closing redis client: %v", err)
	}

	sqlDB, err := s.db.DB()
	if err == nil {
		return sqlDB.Close()
	}
	return nil
}
