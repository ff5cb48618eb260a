package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/pkg/auth"
)

func newTestRouter(t *testing.T, tokenExp time.Duration) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    tokenExp,
		TokenIssuer: "alumnihub.test",
	})
	authMiddleware := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/protected", authMiddleware.JWTAuth(), func(c *gin.Context) {
		authCtx, ok := GetAuthContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"userId":  authCtx.UserID,
			"isAdmin": authCtx.IsAdmin(),
		})
	})
	router.GET("/admin", authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

	return router, jwtService
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router, jwtService := newTestRouter(t, time.Hour)

	token, _, err := jwtService.GenerateToken(7, "janedoe", string(models.RoleAlumni))
	require.NoError(t, err)

	rec := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":7`)
	assert.Contains(t, rec.Body.String(), `"isAdmin":false`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router, _ := newTestRouter(t, time.Hour)

	rec := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_004")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	router, jwtService := newTestRouter(t, -time.Minute)

	token, _, err := jwtService.GenerateToken(7, "janedoe", string(models.RoleAlumni))
	require.NoError(t, err)

	rec := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_003")
}

func TestJWTAuth_MalformedToken(t *testing.T) {
	router, _ := newTestRouter(t, time.Hour)

	rec := doRequest(router, "/protected", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_002")
}

func TestRoleRequired(t *testing.T) {
	router, jwtService := newTestRouter(t, time.Hour)

	alumniToken, _, err := jwtService.GenerateToken(7, "janedoe", string(models.RoleAlumni))
	require.NoError(t, err)
	adminToken, _, err := jwtService.GenerateToken(1, "admin", string(models.RoleAdmin))
	require.NoError(t, err)

	rec := doRequest(router, "/admin", "Bearer "+alumniToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
