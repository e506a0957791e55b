// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// ErrUserNotFound indicates that the user is not found.
var ErrUserNotFound = errors.New("user not found")

// User maps an external Telegram account to an internal user id.
type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
