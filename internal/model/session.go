package model

import (
	"encoding/json"
	"strings"
)

// Role is the normalized user role. The backend has used several spellings for the
// same role over time; ParseRole folds them into one of these values.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a server role string. Unknown values degrade to RoleUser.
func ParseRole(s string) Role {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "UserRole.")
	if strings.EqualFold(s, string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// UnmarshalJSON normalizes the role while decoding.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// RoleSource records how the session's role was determined.
type RoleSource string

const (
	// RoleSourceIdentity means the role came from the identity endpoint.
	RoleSourceIdentity RoleSource = "identity"
	// RoleSourceProbe means the identity lookup failed and the role was guessed by
	// probing a privileged endpoint. Only good enough for UI visibility.
	RoleSourceProbe RoleSource = "probe"
)

// User is an account as seen by the client.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

// Session is the client's ephemeral authentication state. The zero value is the
// unauthenticated session.
type Session struct {
	Token          string
	User           *User
	RoleSource     RoleSource
	ActiveThreadID string
}

// Authenticated reports whether the session holds a validated token.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// IsAdmin reports whether admin-only UI should be shown.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == RoleAdmin
}
