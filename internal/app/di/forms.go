package di

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"foro_backend/internal/feature/auth/domain/entity"
	authusecase "foro_backend/internal/feature/auth/usecase"
	"foro_backend/internal/feature/forms"
)

// localRegistrar feeds the registration form into the local auth service.
type localRegistrar struct {
	auth *authusecase.Service
}

// NewRegistrar adapts the auth service to the registration form.
func NewRegistrar(auth *authusecase.Service) forms.Registrar {
	return localRegistrar{auth: auth}
}

func (r localRegistrar) SubmitRegistration(ctx context.Context, name, email, password string, acceptedTerms bool) error {
	_, err := r.auth.Register(ctx, name, email, password, acceptedTerms)
	return err
}

// localAuthenticator feeds the login form into the local auth service.
type localAuthenticator struct {
	auth *authusecase.Service
}

// NewAuthenticator adapts the auth service to the login form.
func NewAuthenticator(auth *authusecase.Service) forms.Authenticator {
	return localAuthenticator{auth: auth}
}

func (a localAuthenticator) SubmitLogin(ctx context.Context, email, password string) error {
	_, err := a.auth.Login(ctx, email, password)
	return err
}

// AccountGateway writes accounts to the remote backend. Implemented by the
// remote client.
type AccountGateway interface {
	CreateUser(ctx context.Context, user entity.User) (*entity.User, error)
}

// remoteAccountCreator posts accounts created from the admin console to the
// backend. The password is hashed before it crosses the wire, and a
// successful write invalidates the cached user directory so the console's
// next load sees the new account.
type remoteAccountCreator struct {
	gateway     AccountGateway
	invalidator Invalidator
}

// NewAccountCreator adapts the remote gateway to the account-creation form.
func NewAccountCreator(gateway AccountGateway, invalidator Invalidator) forms.AccountCreator {
	return remoteAccountCreator{gateway: gateway, invalidator: invalidator}
}

func (c remoteAccountCreator) SubmitAccount(ctx context.Context, name, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = c.gateway.CreateUser(ctx, entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		// The admin, not the account holder, filled this form; terms stay
		// unaccepted until the user accepts them personally.
		AcceptedTerms: false,
		Role:          entity.RoleUser,
	})
	if err != nil {
		return err
	}
	c.invalidator.Invalidate(ctx)
	return nil
}
