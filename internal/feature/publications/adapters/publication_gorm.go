// Package adapters provides the GORM-backed repository for publications and
// comments.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foro_backend/internal/feature/publications/domain"
	"foro_backend/internal/feature/publications/domain/entity"
	"foro_backend/internal/feature/publications/usecase"
)

// PublicationModel is the persisted shape of a publication.
type PublicationModel struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"size:255;not null"`
	Content  string `gorm:"type:text"`
	AuthorID uint   `gorm:"index;not null"`

	// Epoch milliseconds, matching the remote contract's unit.
	CreatedAt  int64 `gorm:"not null"`
	ModifiedAt int64 `gorm:"not null"`
}

func (PublicationModel) TableName() string {
	return "publications"
}

// CommentModel is the persisted shape of a comment.
type CommentModel struct {
	ID            uint   `gorm:"primaryKey"`
	PublicationID uint   `gorm:"index;not null"`
	AuthorID      uint   `gorm:"index;not null"`
	Text          string `gorm:"type:text;not null"`
	Stars         int    `gorm:"not null;default:0"`
	CreatedAt     int64  `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func toPublicationModel(p entity.Publication) PublicationModel {
	return PublicationModel{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		AuthorID:   p.AuthorID,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: p.ModifiedAt,
	}
}

func toPublicationEntity(m PublicationModel) entity.Publication {
	return entity.Publication{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		AuthorID:   m.AuthorID,
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.ModifiedAt,
	}
}

func toCommentModel(c entity.Comment) CommentModel {
	return CommentModel{
		ID:            c.ID,
		PublicationID: c.PublicationID,
		AuthorID:      c.AuthorID,
		Text:          c.Text,
		Stars:         c.Stars,
		CreatedAt:     c.CreatedAt,
	}
}

func toCommentEntity(m CommentModel) entity.Comment {
	return entity.Comment{
		ID:            m.ID,
		PublicationID: m.PublicationID,
		AuthorID:      m.AuthorID,
		Text:          m.Text,
		Stars:         m.Stars,
		CreatedAt:     m.CreatedAt,
	}
}

type publicationGorm struct {
	db *gorm.DB
}

var _ usecase.PublicationRepository = (*publicationGorm)(nil)

// NewPublicationRepository creates a repository over the given connection.
func NewPublicationRepository(db *gorm.DB) *publicationGorm {
	return &publicationGorm{db: db}
}

// SavePublication is insert-or-replace keyed by primary key. A zero id
// inserts a new row; an existing id overwrites every column.
func (r *publicationGorm) SavePublication(ctx context.Context, p *entity.Publication) error {
	m := toPublicationModel(*p)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
	if err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

// FindPublication retrieves a publication by id.
func (r *publicationGorm) FindPublication(ctx context.Context, id uint) (*entity.Publication, error) {
	var m PublicationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPublicationNotFound
		}
		return nil, err
	}
	p := toPublicationEntity(m)
	return &p, nil
}

// ListPublications returns all publications, newest first.
func (r *publicationGorm) ListPublications(ctx context.Context) ([]entity.Publication, error) {
	var rows []PublicationModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Publication, 0, len(rows))
	for _, m := range rows {
		out = append(out, toPublicationEntity(m))
	}
	return out, nil
}

// statsRow is the scan target for the aggregate listing query.
type statsRow struct {
	PublicationModel
	AverageRating float64
	CommentCount  int64
	AuthorName    string
}

// ListPublicationsWithStats returns every publication joined with its
// average rating, comment count and author display name, newest first.
// Publications without comments report an average of exactly 0.0.
func (r *publicationGorm) ListPublicationsWithStats(ctx context.Context) ([]entity.PublicationStats, error) {
	var rows []statsRow
	err := r.db.WithContext(ctx).
		Model(&PublicationModel{}).
		Select("publications.*, " +
			"COALESCE(AVG(comments.stars), 0) AS average_rating, " +
			"COUNT(comments.id) AS comment_count, " +
			"COALESCE(users.name, '') AS author_name").
		Joins("LEFT JOIN comments ON comments.publication_id = publications.id").
		Joins("LEFT JOIN users ON users.id = publications.author_id").
		Group("publications.id").
		Order("publications.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.PublicationStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.PublicationStats{
			Publication:   toPublicationEntity(row.PublicationModel),
			AverageRating: row.AverageRating,
			CommentCount:  row.CommentCount,
			AuthorName:    row.AuthorName,
		})
	}
	return out, nil
}

// AverageRating computes the mean star rating of a publication's comments,
// 0.0 when there are none.
func (r *publicationGorm) AverageRating(ctx context.Context, publicationID uint) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&CommentModel{}).
		Where("publication_id = ?", publicationID).
		Select("COALESCE(AVG(stars), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

// DeletePublication removes the publication and its comments in a single
// transaction, so a failure midway leaves no orphaned comments behind.
func (r *publicationGorm) DeletePublication(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("publication_id = ?", id).Delete(&CommentModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&PublicationModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPublicationNotFound
		}
		return nil
	})
}

// SaveComment is insert-or-replace keyed by primary key.
func (r *publicationGorm) SaveComment(ctx context.Context, c *entity.Comment) error {
	m := toCommentModel(*c)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&m).Error
	if err != nil {
		return err
	}
	c.ID = m.ID
	return nil
}

// FindComment returns a single comment by id.
func (r *publicationGorm) FindComment(ctx context.Context, id uint) (*entity.Comment, error) {
	var m CommentModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	c := toCommentEntity(m)
	return &c, nil
}

// ListComments returns a publication's comments, newest first.
func (r *publicationGorm) ListComments(ctx context.Context, publicationID uint) ([]entity.Comment, error) {
	var rows []CommentModel
	err := r.db.WithContext(ctx).
		Where("publication_id = ?", publicationID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Comment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toCommentEntity(m))
	}
	return out, nil
}

// DeleteComment removes a single comment by id.
func (r *publicationGorm) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&CommentModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
