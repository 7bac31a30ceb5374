package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityFor(t *testing.T, authorization string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware("test-secret"))

	var identity string
	r.GET("/", func(c *gin.Context) {
		identity = CallerIdentity(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return identity
}

func TestCallerIdentityFromToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "inspector-kim"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Equal(t, "inspector-kim", identityFor(t, "Bearer "+signed))
}

func TestCallerIdentityDefaultsToSystem(t *testing.T) {
	assert.Equal(t, "system", identityFor(t, ""))
}

func TestCallerIdentityIgnoresBadSignature(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "intruder"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	assert.Equal(t, "system", identityFor(t, "Bearer "+signed))
}
