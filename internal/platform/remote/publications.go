package remote

import (
	"context"
	"fmt"
	"net/http"

	pubentity "foro_backend/internal/feature/publications/domain/entity"
	"foro_backend/internal/platform/remote/dto"
)

// ListPublications fetches every publication, as the backend orders them.
func (c *Client) ListPublications(ctx context.Context) ([]pubentity.Publication, error) {
	var body []dto.Publication
	if err := c.do(ctx, http.MethodGet, "/publicaciones", nil, &body); err != nil {
		return nil, err
	}
	out := make([]pubentity.Publication, 0, len(body))
	for _, p := range body {
		out = append(out, p.ToEntity())
	}
	return out, nil
}

// GetPublication fetches one publication by its remote id.
func (c *Client) GetPublication(ctx context.Context, id uint) (*pubentity.Publication, error) {
	var body dto.Publication
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/publicaciones/%d", id), nil, &body); err != nil {
		return nil, err
	}
	p := body.ToEntity()
	return &p, nil
}

// CreatePublication posts a new publication authored by the given remote
// user id.
func (c *Client) CreatePublication(ctx context.Context, title, content string, authorID uint) (*pubentity.Publication, error) {
	req := dto.PublicationRequest{Title: title, Content: content, AuthorID: authorID}
	var body dto.Publication
	if err := c.do(ctx, http.MethodPost, "/publicaciones", req, &body); err != nil {
		return nil, err
	}
	p := body.ToEntity()
	return &p, nil
}

// UpdatePublication overwrites title, content and author.
func (c *Client) UpdatePublication(ctx context.Context, id uint, title, content string, authorID uint) (*pubentity.Publication, error) {
	req := dto.PublicationRequest{Title: title, Content: content, AuthorID: authorID}
	var body dto.Publication
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/publicaciones/%d", id), req, &body); err != nil {
		return nil, err
	}
	p := body.ToEntity()
	return &p, nil
}

// DeletePublication removes the publication; the backend cascades to its
// comments.
func (c *Client) DeletePublication(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/publicaciones/%d", id), nil, nil)
}

// ListComments fetches a publication's comments.
func (c *Client) ListComments(ctx context.Context, publicationID uint) ([]pubentity.Comment, error) {
	var body []dto.Comment
	path := fmt.Sprintf("/publicaciones/%d/comentarios", publicationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	out := make([]pubentity.Comment, 0, len(body))
	for _, cm := range body {
		out = append(out, cm.ToEntity())
	}
	return out, nil
}

// CreateComment posts a new comment.
func (c *Client) CreateComment(ctx context.Context, publicationID, authorID uint, text string, stars int) (*pubentity.Comment, error) {
	req := dto.CommentRequest{PublicationID: publicationID, AuthorID: authorID, Text: text, Stars: stars}
	var body dto.Comment
	if err := c.do(ctx, http.MethodPost, "/comentarios", req, &body); err != nil {
		return nil, err
	}
	cm := body.ToEntity()
	return &cm, nil
}

// UpdateComment overwrites a comment.
func (c *Client) UpdateComment(ctx context.Context, id uint, comment pubentity.Comment) (*pubentity.Comment, error) {
	req := dto.CommentRequest{
		PublicationID: comment.PublicationID,
		AuthorID:      comment.AuthorID,
		Text:          comment.Text,
		Stars:         comment.Stars,
	}
	var body dto.Comment
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/comentarios/%d", id), req, &body); err != nil {
		return nil, err
	}
	cm := body.ToEntity()
	return &cm, nil
}

// DeleteComment removes a single comment.
func (c *Client) DeleteComment(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/comentarios/%d", id), nil, nil)
}
