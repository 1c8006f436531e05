package dto

import (
	pubentity "foro_backend/internal/feature/publications/domain/entity"
)

// Publication is the wire shape of a publication. The author comes embedded
// as a full user object; timestamps are epoch milliseconds.
type Publication struct {
	ID         uint   `json:"id"`
	Title      string `json:"titulo"`
	Content    string `json:"contenido,omitempty"`
	Author     User   `json:"autor"`
	CreatedAt  int64  `json:"fecha_creacion"`
	ModifiedAt *int64 `json:"fecha_modificacion,omitempty"`
}

// PublicationRequest is the write shape: the author travels by id only.
type PublicationRequest struct {
	Title    string `json:"titulo"`
	Content  string `json:"contenido"`
	AuthorID uint   `json:"autorId"`
}

// Comment is the wire shape of a comment, with publication and author
// embedded as full objects.
type Comment struct {
	ID          uint        `json:"id"`
	Publication Publication `json:"publicacion"`
	Author      User        `json:"autor"`
	Text        string      `json:"texto"`
	Stars       int         `json:"estrellas"`
	CreatedAt   int64       `json:"fecha_creacion"`
}

// CommentRequest is the write shape of a comment.
type CommentRequest struct {
	PublicationID uint   `json:"publicacionId"`
	AuthorID      uint   `json:"autorId"`
	Text          string `json:"texto"`
	Stars         int    `json:"estrellas,omitempty"`
}

// ToEntity maps the wire publication onto the domain entity. ModifiedAt
// falls back to CreatedAt when the backend omits it.
func (p Publication) ToEntity() pubentity.Publication {
	modified := p.CreatedAt
	if p.ModifiedAt != nil {
		modified = *p.ModifiedAt
	}
	var authorID uint
	if p.Author.ID != nil {
		authorID = *p.Author.ID
	}
	return pubentity.Publication{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		AuthorID:   authorID,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: modified,
	}
}

// ToEntity maps the wire comment onto the domain entity.
func (c Comment) ToEntity() pubentity.Comment {
	var authorID uint
	if c.Author.ID != nil {
		authorID = *c.Author.ID
	}
	return pubentity.Comment{
		ID:            c.ID,
		PublicationID: c.Publication.ID,
		AuthorID:      authorID,
		Text:          c.Text,
		Stars:         c.Stars,
		CreatedAt:     c.CreatedAt,
	}
}
