// Package auth guards the scoring API with an optional shared token.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var ErrUnauthorized = errors.New("auth: unauthorized")

const HeaderAPIKey = "X-API-Key"

// Validator validates a presented token.
type Validator interface {
	Validate(token string) error
}

// StaticToken accepts exactly one configured token. An empty Token rejects
// everything; use Open to disable checks.
type StaticToken struct {
	Token string
}

func (s StaticToken) Validate(token string) error {
	if s.Token == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(s.Token), []byte(token)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Open accepts any token.
type Open struct{}

func (Open) Validate(string) error { return nil }

// FromToken returns Open for an empty token and StaticToken otherwise.
func FromToken(token string) Validator {
	token = strings.TrimSpace(token)
	if token == "" {
		return Open{}
	}
	return StaticToken{Token: token}
}

// TokenFromRequest reads "Authorization: Bearer <t>" or X-API-Key.
func TokenFromRequest(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(HeaderAPIKey))
}

// Middleware aborts with 401 when v rejects the request's token.
func Middleware(v Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := v.Validate(TokenFromRequest(c.Request)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}
