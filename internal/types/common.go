package types

import (
	uuid "github.com/gofrs/uuid"
)

// HTTP header constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderForwardedFor  = "X-Forwarded-For"
	HeaderUID           = "uid"
)

// Authentication constants
const (
	BearerPrefix = "Bearer "
)

// System roles
const (
	UserRole      = "user"
	ModeratorRole = "moderator"
	AdminRole     = "admin"
)

// UserCtxName is the Fiber locals key under which the authenticated
// user's context is stored by the JWT middleware.
const UserCtxName = "user"

// UserContext carries the authenticated user's claims through a request.
type UserContext struct {
	UserID      uuid.UUID `json:"uid"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	SystemRole  string    `json:"role"`
	CreatedDate int64     `json:"createdDate"`
}

// CanModerate reports whether the user holds a moderation-capable role.
func (u UserContext) CanModerate() bool {
	return u.SystemRole == ModeratorRole || u.SystemRole == AdminRole
}
