package middleware

import (
	"errors"
	"fmt"
	"movieapi/database"
	"movieapi/errs"
	"movieapi/models"
	userService "movieapi/services/user"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// DefaultTokenTTL applies when GenerateToken is called without an explicit lifetime.
const DefaultTokenTTL = 15 * time.Minute

const userLocal = "user"

var errBadToken = errs.Unauthorized("Could not validate credentials")

// JWTManager signs and verifies HS256 access tokens whose subject is the username.
type JWTManager struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewJWTManager(secret string, defaultTTL time.Duration) *JWTManager {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &JWTManager{secret: []byte(secret), defaultTTL: defaultTTL}
}

// GenerateToken issues a token for username. A zero ttl uses the manager default.
func (m *JWTManager) GenerateToken(username string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken validates signature and expiry and returns the username.
func (m *JWTManager) ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token payload")
	}
	if claims.ExpiresAt == nil {
		return "", errors.New("token has no expiry")
	}
	return claims.Subject, nil
}

// JWTMiddleware authenticates the bearer token and stores the caller in c.Locals("user").
// Every failure answers the same 401 so clients learn nothing about which check failed.
func JWTMiddleware(tokens *JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			return unauthorized(c)
		}

		username, err := tokens.ParseToken(strings.TrimSpace(tokenString))
		if err != nil {
			return unauthorized(c)
		}

		user, err := userService.GetByUsername(database.FromCtx(c), username)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return unauthorized(c)
			}
			return ErrorResponse(c, err)
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return ErrorResponse(c, errBadToken)
}

// CurrentUser returns the user set by JWTMiddleware, or nil on unauthenticated routes.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}
