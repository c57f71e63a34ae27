package database

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const sessionKey = "db"

// Session binds a request-scoped GORM session to the request context and exposes it to handlers.
// Connections are borrowed from the pool per statement and every write path goes through
// db.Transaction, which commits or rolls back before the handler returns.
func Session(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(sessionKey, db.WithContext(c.UserContext()))
		return c.Next()
	}
}

// FromCtx returns the request-scoped session installed by Session.
func FromCtx(c *fiber.Ctx) *gorm.DB {
	db, ok := c.Locals(sessionKey).(*gorm.DB)
	if !ok {
		panic("database: Session middleware is not installed")
	}
	return db
}
