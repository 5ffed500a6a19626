package auth

import (
	"context"
	"errors"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

// LocalAuthProvider resolves tokens against the local user store.
// Development only; deployed environments validate against the
// identity service through RemoteAuthProvider.
type LocalAuthProvider struct {
	users  storage.UserRepository
	logger internal.Logger
}

func NewLocalAuthProvider(users storage.UserRepository, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{users: users, logger: logger}
}

func (a *LocalAuthProvider) ValidateTokenLocal(ctx context.Context, token string) (*internal.User, error) {
	u, err := a.users.GetUserByToken(ctx, token)
	if err != nil {
		a.logger.Warnf("invalid token: %s", token)
		return nil, errors.New("invalid token")
	}
	return u, nil
}

func (a *LocalAuthProvider) ValidateTokenRemote(ctx context.Context, token string) (*internal.User, error) {
	a.logger.Warnf("ValidateTokenRemote not implemented in LocalAuthProvider")
	return nil, errors.New("not implemented in LocalAuthProvider")
}
