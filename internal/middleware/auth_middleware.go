package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/pkg/auth"
)

// authContextKey is where the AuthMiddleware stores the caller's identity
const authContextKey = "authContext"

// AuthContext is the authenticated caller's identity, extracted from the
// bearer token and carried through the request context.
type AuthContext struct {
	UserID   int64
	Username string
	Role     models.RoleType
}

// IsAdmin reports whether the caller has the admin role
func (a *AuthContext) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// GetAuthContext retrieves the caller's identity set by JWTAuth
func GetAuthContext(c *gin.Context) (*AuthContext, bool) {
	value, exists := c.Get(authContextKey)
	if !exists {
		return nil, false
	}
	authCtx, ok := value.(*AuthContext)
	return authCtx, ok
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the bearer token and stores the caller's AuthContext
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Bearer token missing or malformed")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(authContextKey, &AuthContext{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     models.RoleType(claims.Role),
		})

		c.Next()
	}
}

// RoleRequired rejects callers whose role differs from the required one.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if authCtx.Role != requiredRole {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")

			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
