// Package routers assembles the fiber application: shared middleware, health and metrics
// endpoints, and every resource route group.
package routers

import (
	"movieapi/cache"
	"movieapi/config"
	"movieapi/database"
	"movieapi/middleware"
	authRoutes "movieapi/routers/authRoutes"
	commentRoutes "movieapi/routers/commentRoutes"
	movieRoutes "movieapi/routers/movieRoutes"
	ratingRoutes "movieapi/routers/ratingRoutes"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Tokens *middleware.JWTManager
	Cache  *cache.Cache // optional
}

// New builds the application. It does not start listening.
func New(deps Deps) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:      "movieapi",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		UnescapePath: true,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${respHeader:X-Request-ID} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Use(database.Session(deps.DB))

	app.Get("/", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{"message": "Welcome to the Movie Listing API"})
	})
	app.Get("/healthz", health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	auth := middleware.JWTMiddleware(deps.Tokens)

	authRoutes.SetupAuthRoutes(app, deps.Tokens, cfg.AccessTokenExpiry, cfg.SaltRound)
	movieRoutes.SetupMovieRoutes(app, auth, deps.Cache)
	ratingRoutes.SetupRatingRoutes(app, auth, deps.Cache)
	commentRoutes.SetupCommentRoutes(app, auth)

	return app
}

// health pings the database.
func health(c *fiber.Ctx) error {
	sqlDB, err := database.FromCtx(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}
