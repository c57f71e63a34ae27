package authController

import (
	"movieapi/database"
	"movieapi/logging"
	"movieapi/middleware"
	"movieapi/models"
	userService "movieapi/services/user"
	authValidator "movieapi/validators/auth"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Register creates an account. cost is the bcrypt work factor.
func Register(cost int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedUser").(*authValidator.RegisterRequest)

		var user *models.User
		err := database.FromCtx(c).Transaction(func(tx *gorm.DB) error {
			var err error
			user, err = userService.Register(tx, userService.RegisterInput{
				FirstName: reqData.FirstName,
				LastName:  reqData.LastName,
				Username:  reqData.Username,
				Email:     reqData.Email,
				Password:  reqData.Password,
			}, cost)
			return err
		})
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		logging.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
		return middleware.JsonResponse(c, fiber.StatusCreated, user)
	}
}

// Login exchanges a username and password for a bearer token valid for expiry.
func Login(tokens *middleware.JWTManager, expiry time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

		user, err := userService.Authenticate(database.FromCtx(c), reqData.Username, reqData.Password)
		if err != nil {
			logging.Warn().Str("username", reqData.Username).Msg("failed login attempt")
			return middleware.ErrorResponse(c, err)
		}

		token, err := tokens.GenerateToken(user.Username, expiry)
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, fiber.Map{
			"access_token": token,
			"token_type":   "bearer",
		})
	}
}
