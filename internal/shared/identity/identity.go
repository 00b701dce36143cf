package identity

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Role mirrors users.Role without importing it, so every domain package can
// depend on identity without cycles.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// CallerIdentity is the authenticated principal passed into every core
// operation. It is extracted once by the JWT middleware; services never reach
// back into session state.
type CallerIdentity struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	IsActive bool      `json:"is_active"`
}

// IsAdmin reports whether the caller holds the admin role.
func (c CallerIdentity) IsAdmin() bool {
	return c.Role == RoleAdmin
}

const contextKey = "caller_identity"

// Set stores the caller identity on the Gin context.
func Set(c *gin.Context, caller CallerIdentity) {
	c.Set(contextKey, caller)
}

// FromContext retrieves the caller identity placed by the auth middleware.
func FromContext(c *gin.Context) (CallerIdentity, bool) {
	val, exists := c.Get(contextKey)
	if !exists {
		return CallerIdentity{}, false
	}
	caller, ok := val.(CallerIdentity)
	return caller, ok
}
