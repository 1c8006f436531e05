// Package server is a reference implementation of the forum REST contract,
// so the client core can run end to end against a local backend.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"foro_backend/internal/feature/auth/domain/entity"
	jwtmw "foro_backend/internal/platform/jwt"
)

// LoginStore resolves a user by email for credential checks.
type LoginStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// AuthHandler issues JWTs for valid credentials.
type AuthHandler struct {
	users  LoginStore
	tokens jwtmw.Generator
	log    zerolog.Logger
}

func NewAuthHandler(users LoginStore, tokens jwtmw.Generator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log}
}

// dummyHash keeps the bcrypt cost constant when the email is unknown.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login checks credentials and returns a signed token. All failure reasons
// collapse to the same 401 so accounts cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud inválida"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
		h.log.Warn().Str("remote_addr", c.ClientIP()).Msg("login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales incorrectas"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.log.Warn().Str("remote_addr", c.ClientIP()).Msg("login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales incorrectas"})
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email, user.Role.Name())
	if err != nil {
		h.log.Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
