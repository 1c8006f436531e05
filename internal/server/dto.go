package server

import (
	authentity "foro_backend/internal/feature/auth/domain/entity"
	pubentity "foro_backend/internal/feature/publications/domain/entity"
	"foro_backend/internal/platform/remote/dto"
)

// Request shapes for the write endpoints. JSON names follow the Spanish
// contract; binding tags reject malformed bodies before any handler logic.

type loginRequest struct {
	Email    string `json:"correo" binding:"required,email"`
	Password string `json:"clave" binding:"required"`
}

type userRequest struct {
	Name         string      `json:"nombre" binding:"required,min=2"`
	Email        string      `json:"correo" binding:"required,email"`
	PasswordHash string      `json:"clave" binding:"required"`
	AcceptsTerms int         `json:"acepta_terminos" binding:"oneof=0 1"`
	Role         roleRequest `json:"rol"`
}

type roleRequest struct {
	Name string `json:"nombre_rol"`
}

type publicationRequest struct {
	Title    string `json:"titulo" binding:"required"`
	Content  string `json:"contenido" binding:"required"`
	AuthorID uint   `json:"autorId" binding:"required"`
}

type commentRequest struct {
	PublicationID uint   `json:"publicacionId" binding:"required"`
	AuthorID      uint   `json:"autorId" binding:"required"`
	Text          string `json:"texto" binding:"required"`
	Stars         int    `json:"estrellas" binding:"omitempty,min=1,max=5"`
}

func (r userRequest) toEntity() authentity.User {
	role := authentity.ParseRole(r.Role.Name)
	if role == authentity.RoleUnset {
		role = authentity.RoleUser
	}
	return authentity.User{
		Name:          r.Name,
		Email:         r.Email,
		PasswordHash:  r.PasswordHash,
		AcceptedTerms: r.AcceptsTerms != 0,
		Role:          role,
	}
}

// wireUser builds the embedded author object. A nil user (author row gone)
// degrades to a stub carrying only the id.
func wireUser(u *authentity.User, fallbackID uint) dto.User {
	if u == nil {
		id := fallbackID
		return dto.User{ID: &id}
	}
	return dto.FromUserEntity(*u)
}

func wirePublication(p pubentity.Publication, author dto.User) dto.Publication {
	modified := p.ModifiedAt
	return dto.Publication{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Author:     author,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: &modified,
	}
}

func wireComment(c pubentity.Comment, pub dto.Publication, author dto.User) dto.Comment {
	return dto.Comment{
		ID:          c.ID,
		Publication: pub,
		Author:      author,
		Text:        c.Text,
		Stars:       c.Stars,
		CreatedAt:   c.CreatedAt,
	}
}
