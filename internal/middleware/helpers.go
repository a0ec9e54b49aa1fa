// internal/middleware/helpers.go
package middleware

import (
	"bizcare-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ctxClaims    = "claims"
	ctxSubject   = "subject"
	ctxRoles     = "roles"
	ctxRequestID = "request_id"
)

// GetClaims returns the verified token claims set by Auth.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ctxClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// GetSubject returns the manager id from the token subject.
func GetSubject(c *gin.Context) (string, bool) {
	subject := c.GetString(ctxSubject)
	return subject, subject != ""
}

// GetRoles gets user roles from context
func GetRoles(c *gin.Context) []string {
	return c.GetStringSlice(ctxRoles)
}

// HasRole reports whether the authenticated caller holds role.
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is an admin
func IsAdmin(c *gin.Context) bool {
	return HasRole(c, jwt.RoleAdmin) || HasRole(c, jwt.RoleSuperAdmin)
}

// GetRequestID returns the id assigned by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
