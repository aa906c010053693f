package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookie = "eth_advisor_session"

// Sessions holds active dashboard sessions in memory. Sessions do not
// survive a restart; users simply log in again.
type Sessions struct {
	mu           sync.Mutex
	tokens       map[string]time.Time // token -> expiry
	passwordHash string
	ttl          time.Duration
}

// NewSessions creates the session registry. An empty passwordHash disables
// authentication entirely.
func NewSessions(passwordHash string, ttl time.Duration) *Sessions {
	return &Sessions{
		tokens:       make(map[string]time.Time),
		passwordHash: passwordHash,
		ttl:          ttl,
	}
}

// Enabled reports whether login is required.
func (s *Sessions) Enabled() bool { return s.passwordHash != "" }

// Login validates the password and issues a session token.
func (s *Sessions) Login(password string) (string, bool) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", false
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = time.Now().Add(s.ttl)
	s.mu.Unlock()
	return token, true
}

// Valid reports whether the token maps to a live session.
func (s *Sessions) Valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke removes the token.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// RequireAuth guards mutating endpoints when authentication is enabled.
func (s *Sessions) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() {
			c.Next()
			return
		}
		token, err := c.Cookie(sessionCookie)
		if err != nil || !s.Valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
