// Package adapters provides the repository implementations for the auth
// feature, backed by GORM over sqlite (client store) or postgres (server
// store).
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"foro_backend/internal/feature/auth/domain"
	"foro_backend/internal/feature/auth/domain/entity"
	"foro_backend/internal/feature/auth/usecase"
)

// UserModel is the persisted shape of a user. Kept separate from the domain
// entity so schema concerns never leak upward.
type UserModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:255;not null"`
	Email         string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string `gorm:"size:255;not null"`
	AcceptedTerms bool   `gorm:"not null;default:false"`
	Role          string `gorm:"size:32;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func toUserModel(u *entity.User) UserModel {
	return UserModel{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		AcceptedTerms: u.AcceptedTerms,
		Role:          u.Role.Name(),
	}
}

func toUserEntity(m UserModel) *entity.User {
	return &entity.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		AcceptedTerms: m.AcceptedTerms,
		Role:          entity.ParseRole(m.Role),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm satisfies the usecase interface.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a user repository over the given connection.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user, mapping duplicate-email failures to
// domain.ErrEmailAlreadyExists. The pre-check catches case-variant
// duplicates the unique index misses; a race past it still maps through the
// translated constraint error.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.FindByEmail(ctx, u.Email); err == nil {
		return domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// Postgres 23505: unique constraint violation.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return err
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByEmail retrieves a user by email, case-insensitively.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUserEntity(m), nil
}

// FindByID retrieves a user by id.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUserEntity(m), nil
}

// List returns every user, oldest first. Used by the reference backend.
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var rows []UserModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toUserEntity(m))
	}
	return out, nil
}

// Update saves the full user record, last write wins.
func (r *userGorm) Update(ctx context.Context, u *entity.User) error {
	m := toUserModel(u)
	res := r.db.WithContext(ctx).Model(&UserModel{ID: u.ID}).Updates(map[string]any{
		"name":           m.Name,
		"email":          m.Email,
		"password_hash":  m.PasswordHash,
		"accepted_terms": m.AcceptedTerms,
		"role":           m.Role,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user by id.
func (r *userGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&UserModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
