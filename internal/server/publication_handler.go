package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	pubdomain "foro_backend/internal/feature/publications/domain"
	"foro_backend/internal/feature/publications/domain/entity"
	"foro_backend/internal/platform/remote/dto"
)

// PublicationStore is the publication/comment persistence the handler needs.
type PublicationStore interface {
	SavePublication(ctx context.Context, p *entity.Publication) error
	FindPublication(ctx context.Context, id uint) (*entity.Publication, error)
	ListPublications(ctx context.Context) ([]entity.Publication, error)
	DeletePublication(ctx context.Context, id uint) error
	SaveComment(ctx context.Context, c *entity.Comment) error
	FindComment(ctx context.Context, id uint) (*entity.Comment, error)
	ListComments(ctx context.Context, publicationID uint) ([]entity.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

// PublicationHandler serves /publicaciones and /comentarios. Responses embed
// the full author object, so it also reads from the user store.
type PublicationHandler struct {
	pubs  PublicationStore
	users UserStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewPublicationHandler(pubs PublicationStore, users UserStore, log zerolog.Logger) *PublicationHandler {
	return &PublicationHandler{pubs: pubs, users: users, log: log, now: time.Now}
}

func (h *PublicationHandler) nowMillis() int64 {
	return h.now().UnixMilli()
}

func (h *PublicationHandler) author(ctx context.Context, id uint) dto.User {
	u, err := h.users.FindByID(ctx, id)
	if err != nil {
		return wireUser(nil, id)
	}
	return wireUser(u, id)
}

func (h *PublicationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	pubs, err := h.pubs.ListPublications(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("list publications failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	authors := h.authorIndex(ctx)
	out := make([]dto.Publication, 0, len(pubs))
	for _, p := range pubs {
		out = append(out, wirePublication(p, authors(p.AuthorID)))
	}
	c.JSON(http.StatusOK, out)
}

// authorIndex loads all users once and returns a lookup for embedding
// authors into list responses without a query per row.
func (h *PublicationHandler) authorIndex(ctx context.Context) func(uint) dto.User {
	users, err := h.users.List(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("author preload failed")
		return func(id uint) dto.User { return wireUser(nil, id) }
	}
	index := make(map[uint]dto.User, len(users))
	for _, u := range users {
		index[u.ID] = dto.FromUserEntity(u)
	}
	return func(id uint) dto.User {
		if u, ok := index[id]; ok {
			return u
		}
		return wireUser(nil, id)
	}
}

func (h *PublicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	pub, err := h.pubs.FindPublication(ctx, id)
	if errors.Is(err, pubdomain.ErrPublicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "publicación no encontrada"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("get publication failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, wirePublication(*pub, h.author(ctx, pub.AuthorID)))
}

func (h *PublicationHandler) Create(c *gin.Context) {
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud inválida"})
		return
	}
	ctx := c.Request.Context()
	now := h.nowMillis()
	pub := entity.Publication{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   req.AuthorID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := h.pubs.SavePublication(ctx, &pub); err != nil {
		h.log.Error().Err(err).Msg("create publication failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusCreated, wirePublication(pub, h.author(ctx, pub.AuthorID)))
}

// Update rewrites title/content and bumps the modification timestamp; the
// creation timestamp is preserved from the stored row.
func (h *PublicationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud inválida"})
		return
	}
	ctx := c.Request.Context()
	pub, err := h.pubs.FindPublication(ctx, id)
	if errors.Is(err, pubdomain.ErrPublicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "publicación no encontrada"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("update publication failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	pub.Title = req.Title
	pub.Content = req.Content
	pub.ModifiedAt = h.nowMillis()
	if err := h.pubs.SavePublication(ctx, pub); err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("update publication failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, wirePublication(*pub, h.author(ctx, pub.AuthorID)))
}

func (h *PublicationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.pubs.DeletePublication(c.Request.Context(), id)
	if errors.Is(err, pubdomain.ErrPublicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "publicación no encontrada"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("delete publication failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.Status(http.StatusOK)
}

func (h *PublicationHandler) ListComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	pub, err := h.pubs.FindPublication(ctx, id)
	if errors.Is(err, pubdomain.ErrPublicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "publicación no encontrada"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("list comments failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	comments, err := h.pubs.ListComments(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("list comments failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	wirePub := wirePublication(*pub, h.author(ctx, pub.AuthorID))
	out := make([]dto.Comment, 0, len(comments))
	for _, cm := range comments {
		out = append(out, wireComment(cm, wirePub, h.author(ctx, cm.AuthorID)))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PublicationHandler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud inválida"})
		return
	}
	ctx := c.Request.Context()
	pub, err := h.pubs.FindPublication(ctx, req.PublicationID)
	if errors.Is(err, pubdomain.ErrPublicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "publicación no encontrada"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("create comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	comment := entity.Comment{
		PublicationID: req.PublicationID,
		AuthorID:      req.AuthorID,
		Text:          req.Text,
		Stars:         req.Stars,
		CreatedAt:     h.nowMillis(),
	}
	if err := h.pubs.SaveComment(ctx, &comment); err != nil {
		h.log.Error().Err(err).Msg("create comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	wirePub := wirePublication(*pub, h.author(ctx, pub.AuthorID))
	c.JSON(http.StatusCreated, wireComment(comment, wirePub, h.author(ctx, comment.AuthorID)))
}

func (h *PublicationHandler) UpdateComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud inválida"})
		return
	}
	ctx := c.Request.Context()
	comment, err := h.pubs.FindComment(ctx, id)
	if errors.Is(err, pubdomain.ErrCommentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "comentario no encontrado"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("update comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	comment.Text = req.Text
	comment.Stars = req.Stars
	if err := h.pubs.SaveComment(ctx, comment); err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("update comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	pub, err := h.pubs.FindPublication(ctx, comment.PublicationID)
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("update comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	wirePub := wirePublication(*pub, h.author(ctx, pub.AuthorID))
	c.JSON(http.StatusOK, wireComment(*comment, wirePub, h.author(ctx, comment.AuthorID)))
}

func (h *PublicationHandler) DeleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := h.pubs.DeleteComment(c.Request.Context(), id)
	if errors.Is(err, pubdomain.ErrCommentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "comentario no encontrado"})
		return
	}
	if err != nil {
		h.log.Error().Err(err).Uint("id", id).Msg("delete comment failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.Status(http.StatusOK)
}
