package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
)

// SessionService binds resolved organizational context to session tokens and
// tears sessions down. Token generation and expiry belong to the store; the
// service only passes values through.
type SessionService struct {
	store  session.Store
	logger *logrus.Logger
}

func NewSessionService(store session.Store, logger *logrus.Logger) *SessionService {
	return &SessionService{
		store:  store,
		logger: logger,
	}
}

// Bind starts a session for the user under the client category and attaches
// every non-nil context field as a session attribute. Nil fields are omitted,
// not written as empty values.
func (s *SessionService) Bind(ctx context.Context, userID uint, category string, sc session.Context) (*session.Token, error) {
	token, err := s.store.Start(ctx, userID, category)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start session")
	}
	for key, value := range sc.Attrs() {
		if err := s.store.SetAttr(ctx, token.Value, key, value); err != nil {
			return nil, errors.Wrap(err, "failed to bind session attribute")
		}
	}
	return token, nil
}

// Unbind destroys the session behind the token. A session that is already
// gone is not an error for the caller; logout must always succeed once
// attempted.
func (s *SessionService) Unbind(ctx context.Context, token string) {
	if err := s.store.Destroy(ctx, token); err != nil {
		s.logger.WithError(err).Debug("session already gone at unbind")
	}
}

// GetByToken loads the session behind a bearer token. Absence maps to the
// unauthenticated refusal.
func (s *SessionService) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	return sess, nil
}
