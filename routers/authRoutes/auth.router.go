package authRoutes

import (
	authControllers "movieapi/controllers/auth"
	"movieapi/middleware"
	authValidators "movieapi/validators/auth"
	"time"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, tokens *middleware.JWTManager, tokenExpiry time.Duration, saltRound int) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register(saltRound))
	authGroup.Post("/login", authValidators.Login(), authControllers.Login(tokens, tokenExpiry))
}
