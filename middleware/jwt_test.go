package middleware

import (
	"io"
	"movieapi/database"
	"movieapi/database/dbtest"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tokens := NewJWTManager("secret", 0)

	token, err := tokens.GenerateToken("alice", 0)
	require.NoError(t, err)

	username, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseTokenRejects(t *testing.T) {
	tokens := NewJWTManager("secret", time.Minute)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	otherKey, err := NewJWTManager("other", time.Minute).GenerateToken("alice", 0)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"no expiry":  noExpiry,
		"other key":  otherKey,
		"no subject": noSubject,
		"garbage":    "not.a.token",
	} {
		_, err := tokens.ParseToken(token)
		assert.Error(t, err, name)
	}
}

func newProtectedApp(t *testing.T) (*fiber.App, *JWTManager) {
	t.Helper()
	db := dbtest.New(t)
	dbtest.CreateUser(t, db, "alice")
	tokens := NewJWTManager("secret", time.Minute)

	app := fiber.New()
	app.Use(database.Session(db))
	app.Get("/me", JWTMiddleware(tokens), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	return app, tokens
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	app, tokens := newProtectedApp(t)
	token, err := tokens.GenerateToken("alice", 0)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", string(body))
}

func TestJWTMiddlewareRejectsUniformly(t *testing.T) {
	app, tokens := newProtectedApp(t)
	ghost, err := tokens.GenerateToken("ghost", 0)
	require.NoError(t, err)
	valid, err := tokens.GenerateToken("alice", 0)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic " + valid,
		"no token":     "Bearer ",
		"garbage":      "Bearer abc",
		"unknown user": "Bearer " + ghost,
	} {
		req := httptest.NewRequest("GET", "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"), name)
		assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, string(body), name)
	}
}
