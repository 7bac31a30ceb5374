package auth

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "caller_identity"

// Middleware extracts the caller identity from a bearer token when one
// is present. Requests without a valid token still pass through; the
// identity then defaults to "system" at lookup time.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err == nil && token.Valid {
				if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
					c.Set(identityKey, sub)
				}
			}
		}
		c.Next()
	}
}

// CallerIdentity returns the authenticated caller, or "system" when the
// request carried no usable token.
func CallerIdentity(c *gin.Context) string {
	if id := c.GetString(identityKey); id != "" {
		return id
	}
	return "system"
}
