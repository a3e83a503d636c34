package auth

import (
	"errors"
	"time"
)

// ErrInvalidCredentials is returned uniformly for unknown usernames and
// wrong passwords so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Admin represents a privileged directory account.
type Admin struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the resolved owner of a session token.
type Identity struct {
	AdminID  int64  `json:"adminId"`
	Username string `json:"username"`
}

// AdminSummary is the admin shape exposed on the wire.
type AdminSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
