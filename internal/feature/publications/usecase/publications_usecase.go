// Package usecase implements the business logic for the publications feature.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"foro_backend/internal/feature/publications/domain/entity"
)

// PublicationRepository abstracts the local store for publications and
// comments. Defined here, by the consumer, per Go convention.
type PublicationRepository interface {
	SavePublication(ctx context.Context, p *entity.Publication) error
	FindPublication(ctx context.Context, id uint) (*entity.Publication, error)
	ListPublications(ctx context.Context) ([]entity.Publication, error)
	ListPublicationsWithStats(ctx context.Context) ([]entity.PublicationStats, error)
	AverageRating(ctx context.Context, publicationID uint) (float64, error)
	DeletePublication(ctx context.Context, id uint) error

	SaveComment(ctx context.Context, c *entity.Comment) error
	ListComments(ctx context.Context, publicationID uint) ([]entity.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

// Service exposes publication and comment operations over the local store
// and pushes a fresh aggregate snapshot to feed subscribers after every
// mutation.
type Service struct {
	repo PublicationRepository
	feed *Feed
	log  zerolog.Logger
	now  func() time.Time
}

// NewService creates a Service over the given repository.
func NewService(repo PublicationRepository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		feed: NewFeed(),
		log:  log,
		now:  time.Now,
	}
}

func (s *Service) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Create persists a new publication authored by authorID. CreatedAt and
// ModifiedAt start equal.
func (s *Service) Create(ctx context.Context, title, content string, authorID uint) (*entity.Publication, error) {
	now := s.nowMillis()
	p := &entity.Publication{
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := s.repo.SavePublication(ctx, p); err != nil {
		return nil, fmt.Errorf("create publication: %w", err)
	}
	s.publish(ctx)
	return p, nil
}

// Update rewrites title and content, bumping ModifiedAt. Last write wins.
func (s *Service) Update(ctx context.Context, id uint, title, content string) (*entity.Publication, error) {
	p, err := s.repo.FindPublication(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Title = title
	p.Content = content
	p.ModifiedAt = s.nowMillis()
	if err := s.repo.SavePublication(ctx, p); err != nil {
		return nil, fmt.Errorf("update publication: %w", err)
	}
	s.publish(ctx)
	return p, nil
}

// Get retrieves a single publication.
func (s *Service) Get(ctx context.Context, id uint) (*entity.Publication, error) {
	return s.repo.FindPublication(ctx, id)
}

// List returns all publications, newest first.
func (s *Service) List(ctx context.Context) ([]entity.Publication, error) {
	return s.repo.ListPublications(ctx)
}

// ListWithStats returns the aggregate listing, newest first.
func (s *Service) ListWithStats(ctx context.Context) ([]entity.PublicationStats, error) {
	return s.repo.ListPublicationsWithStats(ctx)
}

// AverageRating returns the mean rating of a publication, 0.0 uncommented.
func (s *Service) AverageRating(ctx context.Context, id uint) (float64, error) {
	return s.repo.AverageRating(ctx, id)
}

// Delete removes a publication and its comments atomically.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeletePublication(ctx, id); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// AddComment persists a comment on a publication.
func (s *Service) AddComment(ctx context.Context, publicationID, authorID uint, text string, stars int) (*entity.Comment, error) {
	c := &entity.Comment{
		PublicationID: publicationID,
		AuthorID:      authorID,
		Text:          text,
		Stars:         stars,
		CreatedAt:     s.nowMillis(),
	}
	if err := s.repo.SaveComment(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	s.publish(ctx)
	return c, nil
}

// Comments returns a publication's comments, newest first.
func (s *Service) Comments(ctx context.Context, publicationID uint) ([]entity.Comment, error) {
	return s.repo.ListComments(ctx, publicationID)
}

// DeleteComment removes a single comment.
func (s *Service) DeleteComment(ctx context.Context, id uint) error {
	if err := s.repo.DeleteComment(ctx, id); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// Subscribe returns a channel that receives a fresh newest-first aggregate
// snapshot after every mutation, starting with the current state. The
// subscription ends when ctx is cancelled.
func (s *Service) Subscribe(ctx context.Context) (<-chan []entity.PublicationStats, error) {
	initial, err := s.repo.ListPublicationsWithStats(ctx)
	if err != nil {
		return nil, err
	}
	return s.feed.Subscribe(ctx, initial), nil
}

// publish recomputes the aggregate snapshot and fans it out. Refresh
// failures follow the suppressed policy: subscribers keep the previous
// snapshot and the failure is only logged.
func (s *Service) publish(ctx context.Context) {
	snapshot, err := s.repo.ListPublicationsWithStats(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("feed refresh failed, keeping previous snapshot")
		return
	}
	s.feed.Publish(snapshot)
}
