// Package userService registers users and verifies their credentials.
package userService

import (
	"errors"
	"fmt"
	"movieapi/errs"
	"movieapi/metrics"
	"movieapi/models"
	"movieapi/utils"

	"gorm.io/gorm"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// errInvalidCredentials is shared by every login failure so callers cannot tell which part was wrong.
var errInvalidCredentials = errs.Unauthorized("Invalid credentials")

// Register creates a user with a bcrypt-hashed password. Username and email must both be unused.
func Register(tx *gorm.DB, in RegisterInput, cost int) (*models.User, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, errs.Conflict("Username already registered")
	}
	if err := tx.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, errs.Conflict("Email already registered")
	}

	hash, err := utils.HashPassword(in.Password, cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		Role:      models.RoleUser,
	}
	if err := tx.Create(user).Error; err != nil {
		// a concurrent registration won the race for the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("Username or email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user when username and password match.
func Authenticate(tx *gorm.DB, username, password string) (*models.User, error) {
	user, err := GetByUsername(tx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.LoginFailures.Inc()
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		metrics.LoginFailures.Inc()
		return nil, errInvalidCredentials
	}
	return user, nil
}

func GetByUsername(tx *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}
