package auth

import (
	"context"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

// LocalAuthProvider accepts a single static token for development.
type LocalAuthProvider struct {
	Token  string
	UserID string
	logger internal.Logger
}

func (a *LocalAuthProvider) Authenticate(_ context.Context, token string) (*internal.User, error) {
	if token == a.Token {
		return &internal.User{ID: a.UserID, Name: "Demo User"}, nil
	}
	a.logger.Warnf("rejected local token")
	return nil, ErrInvalidToken
}

func NewLocalAuthProvider(token, userID string, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{Token: token, UserID: userID, logger: logger}
}
