package remote

import (
	"context"
	"fmt"
	"net/http"

	"foro_backend/internal/feature/auth/domain/entity"
	"foro_backend/internal/platform/remote/dto"
)

// ListUsers fetches the full user directory. Satisfies the admin console's
// Directory interface.
func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var body []dto.User
	if err := c.do(ctx, http.MethodGet, "/usuarios", nil, &body); err != nil {
		return nil, err
	}
	users := make([]entity.User, 0, len(body))
	for _, u := range body {
		users = append(users, u.ToEntity())
	}
	return users, nil
}

// GetUser fetches one user by its remote id.
func (c *Client) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	var body dto.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil, &body); err != nil {
		return nil, err
	}
	u := body.ToEntity()
	return &u, nil
}

// CreateUser registers a user remotely and returns the record with its
// assigned remote id. The entity's PasswordHash travels as clave.
func (c *Client) CreateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	user.ID = 0 // remote assigns its own id space
	var body dto.User
	if err := c.do(ctx, http.MethodPost, "/usuarios", dto.FromUserEntity(user), &body); err != nil {
		return nil, err
	}
	u := body.ToEntity()
	return &u, nil
}

// UpdateUser overwrites the remote record, last write wins.
func (c *Client) UpdateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	var body dto.User
	path := fmt.Sprintf("/usuarios/%d", user.ID)
	if err := c.do(ctx, http.MethodPut, path, dto.FromUserEntity(user), &body); err != nil {
		return nil, err
	}
	u := body.ToEntity()
	return &u, nil
}

// DeleteUser removes the remote record.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, nil)
}
