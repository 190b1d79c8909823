package principal

import "errors"

// ErrUnauthorized is returned when the actor lacks the required role or does
// not own the resource it is acting on.
var ErrUnauthorized = errors.New("unauthorized")

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the authenticated actor extracted by the auth middleware.
type Principal struct {
	UserID int64
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
