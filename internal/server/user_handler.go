package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	authdomain "foro_backend/internal/feature/auth/domain"
	"foro_backend/internal/feature/auth/domain/entity"
	"foro_backend/internal/platform/remote/dto"
)

// UserStore is the account persistence the handler needs.
type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id uint) error
}

// UserHandler serves the /usuarios resource.
type UserHandler struct {
	users UserStore
	log   zerolog.Logger
}

func NewUserHandler(users UserStore, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUserEntity(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), id)
	if errors.Is(err, authdomain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("get user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, dto.FromUserEntity(*user))
}

// Create registers an account. The clave field already carries a password
// hash; the server never sees the plaintext.
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud inválida"})
		return
	}
	user := req.toEntity()
	err := h.users.Create(c.Request.Context(), &user)
	if errors.Is(err, authdomain.ErrEmailAlreadyExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "correo ya registrado"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("create user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusCreated, dto.FromUserEntity(user))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud inválida"})
		return
	}
	user := req.toEntity()
	user.ID = id
	err := h.users.Update(c.Request.Context(), &user)
	if errors.Is(err, authdomain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("update user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, dto.FromUserEntity(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.users.Delete(c.Request.Context(), id)
	if errors.Is(err, authdomain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("delete user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.Status(http.StatusOK)
}

// pathID parses the :id segment, answering 400 itself on garbage.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, false
	}
	return uint(id), true
}
