package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"foro_backend/internal/feature/auth/domain"
	"foro_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&UserModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("successful creation assigns id and timestamps", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		user := &entity.User{
			Name:          "Ana",
			Email:         "ana@x.com",
			PasswordHash:  "hashed",
			AcceptedTerms: true,
			Role:          entity.RoleUser,
		}
		err := repo.Create(context.Background(), user)

		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate email maps to domain error", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		first := &entity.User{Name: "Ana", Email: "dup@x.com", PasswordHash: "h1", Role: entity.RoleUser}
		require.NoError(t, repo.Create(context.Background(), first))

		second := &entity.User{Name: "Bea", Email: "dup@x.com", PasswordHash: "h2", Role: entity.RoleUser}
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})

	t.Run("duplicate check is case-insensitive", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		first := &entity.User{Name: "Ana", Email: "Ana@X.com", PasswordHash: "h1", Role: entity.RoleUser}
		require.NoError(t, repo.Create(context.Background(), first))

		second := &entity.User{Name: "Bea", Email: "ana@x.com", PasswordHash: "h2", Role: entity.RoleUser}
		err := repo.Create(context.Background(), second)

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	seed := &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", Role: entity.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), seed))

	t.Run("case-insensitive match with role round-trip", func(t *testing.T) {
		got, err := repo.FindByEmail(context.Background(), "ANA@X.COM")
		require.NoError(t, err)
		assert.Equal(t, seed.ID, got.ID)
		assert.Equal(t, entity.RoleAdmin, got.Role)
	})

	t.Run("absent email maps to not found", func(t *testing.T) {
		_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	seed := &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", Role: entity.RoleUser}
	require.NoError(t, repo.Create(context.Background(), seed))

	got, err := repo.FindByID(context.Background(), seed.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = repo.FindByID(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UpdateDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	seed := &entity.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", Role: entity.RoleUser}
	require.NoError(t, repo.Create(context.Background(), seed))

	t.Run("update is last-write-wins", func(t *testing.T) {
		seed.Name = "Ana María"
		seed.Role = entity.RoleModerator
		require.NoError(t, repo.Update(context.Background(), seed))

		got, err := repo.FindByID(context.Background(), seed.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana María", got.Name)
		assert.Equal(t, entity.RoleModerator, got.Role)
	})

	t.Run("update of missing user maps to not found", func(t *testing.T) {
		ghost := &entity.User{ID: 9999, Name: "Ghost", Email: "g@x.com"}
		assert.ErrorIs(t, repo.Update(context.Background(), ghost), domain.ErrUserNotFound)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		require.NoError(t, repo.Delete(context.Background(), seed.ID))
		_, err := repo.FindByID(context.Background(), seed.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		assert.ErrorIs(t, repo.Delete(context.Background(), seed.ID), domain.ErrUserNotFound)
	})
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		require.NoError(t, repo.Create(context.Background(), &entity.User{
			Name: "U", Email: email, PasswordHash: "h", Role: entity.RoleUser,
		}))
	}

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "a@x.com", users[0].Email, "oldest first")
}
