package models

import "github.com/golang-jwt/jwt/v5"

// Role is the fixed per-user role driving every authorization decision.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether the role is one of the three known roles.
// Anything else is treated as an unauthenticated/unknown actor and
// denied uniformly.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated identity making a request. It is built
// once by the auth middleware from the verified token and passed by
// value into the authorization gate: the gate trusts the role verbatim
// and never reaches back into session state or re-reads the user row.
type Actor struct {
	ID   string
	Role Role
}

// TokenClaims is the JWT claims structure issued by POST /users/login
// and verified by the auth middleware. The subject claim carries the
// user ID.
type TokenClaims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *TokenClaims) GetUserID() string {
	return c.Subject
}
