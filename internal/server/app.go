package server

import (
	"strings"

	"rapidreads/internal/config"
	"rapidreads/internal/handlers"
	"rapidreads/internal/middleware"
	"rapidreads/internal/repositories"
	"rapidreads/internal/services"
	"rapidreads/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Services is the set of business services the HTTP layer calls into.
type Services struct {
	Tokens   *services.TokenService
	Auth     *services.AuthService
	Products *services.ProductService
	Cart     *services.CartService
	Chatbot  *services.ChatbotService
	Stats    *services.StatsService
}

// NewServices builds the services on top of store. publisher may be nil.
func NewServices(cfg *config.Config, store *repositories.Store, publisher services.CartEventPublisher, log *zap.Logger) *Services {
	tokens := services.NewTokenService(cfg.JWTSecret)
	return &Services{
		Tokens:   tokens,
		Auth:     services.NewAuthService(store.Users, tokens, cfg.BcryptCost, log.Named("auth")),
		Products: services.NewProductService(store.Products),
		Cart:     services.NewCartService(store.Products, store.Carts, publisher, log.Named("cart")),
		Chatbot:  services.NewChatbotService(store.Products, log.Named("chatbot")),
		Stats:    services.NewStatsService(store.Users, store.Products),
	}
}

// New creates the Fiber app with middleware and every route registered.
func New(cfg *config.Config, log *zap.Logger, svc *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "RapidReads API",
		ErrorHandler:          handlers.ErrorHandler(cfg.IsProduction()),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log.Named("http")))
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	if cfg.ImagesDir != "" {
		app.Static("/images", cfg.ImagesDir)
	}

	validate := validation.New()
	auth := middleware.AuthRequired(svc.Tokens, log.Named("auth"))

	app.Get("/", handlers.HandleIndex)
	handlers.NewAuthHandler(svc.Auth, validate).RegisterRoutes(app)
	handlers.NewProductHandler(svc.Products).RegisterRoutes(app)
	handlers.NewCartHandler(svc.Cart, validate).RegisterRoutes(app, auth)
	handlers.NewChatbotHandler(svc.Chatbot, validate, log.Named("chatbot")).RegisterRoutes(app)
	handlers.NewAdminHandler(svc.Stats).RegisterRoutes(app, auth)

	app.Use(handlers.HandleNotFound)

	return app
}

func corsConfig(origins []string) cors.Config {
	allowOrigins := strings.Join(origins, ",")
	return cors.Config{
		AllowOrigins: allowOrigins,
		// Fiber rejects credentials combined with a wildcard origin.
		AllowCredentials: allowOrigins != "*" && allowOrigins != "",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}
}
