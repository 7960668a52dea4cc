// Package service holds the business operations that combine repositories
// and helpers: authentication decisions and domain event publishing.
package service

import (
	"context"
	"net/http"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/model"
	"github.com/painelweb/painel/internal/utils"
)

// UserFinder is the slice of the credential store the authenticator needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator turns an e-mail/password pair into an authenticated user.
// Every failure mode that depends on which credential was wrong is collapsed
// into one generic Unauthorized error, so callers cannot tell a missing
// e-mail from a wrong password.
type Authenticator struct {
	Users  UserFinder
	Hasher *utils.Hasher
}

func NewAuthenticator(users UserFinder, hasher *utils.Hasher) *Authenticator {
	return &Authenticator{Users: users, Hasher: hasher}
}

// Authenticate looks the user up by e-mail and verifies the password.
// Unexpected errors (store unreachable) pass through untouched.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	stored, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		if e, ok := apperr.As(err); ok && e.StatusCode == http.StatusNotFound {
			return nil, invalidAuthData()
		}
		return nil, err
	}
	if !a.Hasher.Compare(password, stored.Password) {
		return nil, invalidAuthData()
	}
	return stored, nil
}

func invalidAuthData() error {
	return apperr.NewUnauthorized(
		"Authentication data is invalid.",
		"Verify the authentication data and try again.")
}
