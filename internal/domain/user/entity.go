// internal/domain/user/entity.go
package user

import (
	"database/sql"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type User struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        sql.NullString `json:"phone,omitempty"`
	PasswordHash sql.NullString `json:"-"`
	Provider     string         `json:"provider"` // local, google
	Role         string         `json:"role"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}

type Address struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Profile is the checkout view of a user: identity plus shipping address.
type Profile struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   sql.NullString `json:"phone,omitempty"`
	Address sql.NullString `json:"address,omitempty"`
	City    sql.NullString `json:"city,omitempty"`
	State   sql.NullString `json:"state,omitempty"`
	Pincode sql.NullString `json:"pincode,omitempty"`
	Country sql.NullString `json:"country,omitempty"`
}
