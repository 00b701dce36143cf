package middleware

import (
	"net/http"
	"strings"

	"deskhive/internal/shared/config"
	"deskhive/internal/shared/identity"
	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JWTAuth creates a JWT authentication middleware. Token issuance belongs to
// the external auth service; this side only verifies the access token and
// materializes a CallerIdentity for the booking core.
func JWTAuth() gin.HandlerFunc {
	return JWTAuthWithConfig(config.Load())
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token claims", nil, nil)
			c.Abort()
			return
		}

		if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
			c.Abort()
			return
		}

		caller, err := callerFromClaims(claims)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid identity claims", nil, nil)
			c.Abort()
			return
		}
		if !caller.IsActive {
			response.RespondJSON(c, "error", http.StatusForbidden, "account is deactivated", nil, nil)
			c.Abort()
			return
		}

		identity.Set(c, caller)
		c.Next()
	}
}

func callerFromClaims(claims jwt.MapClaims) (identity.CallerIdentity, error) {
	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return identity.CallerIdentity{}, err
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	// Tokens issued before the is_active claim was added default to active.
	isActive := true
	if v, ok := claims["is_active"].(bool); ok {
		isActive = v
	}

	return identity.CallerIdentity{
		ID:       userID,
		Email:    email,
		Role:     identity.Role(role),
		IsActive: isActive,
	}, nil
}

// RequireAdmin restricts a route to callers holding the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := identity.FromContext(c)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "caller identity not found in context", nil, nil)
			c.Abort()
			return
		}

		if !caller.IsAdmin() {
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
