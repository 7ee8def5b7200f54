package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the fixed set of account roles. Exactly one admin account may
// exist system-wide; the user repository enforces that with a partial
// unique index.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a raw string onto a known role. Anything outside the
// enumerated set is rejected.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// RefreshToken is one entry in a user's set of currently valid refresh
// tokens. Tokens are rotated on use and revoked on logout.
type RefreshToken struct {
	Token     string    `bson:"token" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
}

// User is a stored account. PasswordHash and RefreshTokens never leave the
// server; both carry `json:"-"` and Sanitized clears them for defense in
// depth before a user is attached to a request or returned in a response.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password_hash" json:"-"`
	FirstName     string             `bson:"first_name" json:"firstName"`
	LastName      string             `bson:"last_name" json:"lastName"`
	Role          Role               `bson:"role" json:"role"`
	RefreshTokens []RefreshToken     `bson:"refresh_tokens" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Sanitized returns a copy with credential material stripped.
func (u *User) Sanitized() *User {
	c := *u
	c.PasswordHash = ""
	c.RefreshTokens = nil
	return &c
}
