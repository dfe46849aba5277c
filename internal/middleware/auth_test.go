package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"unimatch_backend/internal/auth"
	"unimatch_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest() {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "middleware-test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	setupTest()
	token, err := auth.GenerateToken("user-1", "user")
	require.NoError(t, err)

	w := doRequest(protectedRouter(AuthMiddleware()), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	setupTest()
	w := doRequest(protectedRouter(AuthMiddleware()), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	setupTest()
	w := doRequest(protectedRouter(AuthMiddleware()), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	setupTest()
	w := doRequest(protectedRouter(AuthMiddleware()), "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// The admin gate must look identical from the outside no matter why it
// rejected the caller.
func TestAdminMiddlewareUniformRejection(t *testing.T) {
	setupTest()
	userToken, err := auth.GenerateToken("user-1", "user")
	require.NoError(t, err)

	cases := map[string]string{
		"no header":      "",
		"malformed":      "Basic abc",
		"garbage token":  "Bearer not.a.jwt",
		"non-admin role": "Bearer " + userToken,
	}

	r := protectedRouter(AdminAuthMiddleware())
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := doRequest(r, header)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.JSONEq(t, `{"error": "Access denied"}`, w.Body.String())
		})
	}
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	setupTest()
	token, err := auth.GenerateToken("admin-1", "admin")
	require.NoError(t, err)

	w := doRequest(protectedRouter(AdminAuthMiddleware()), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-1")
}
