package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/user"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence"
	"github.com/iota-uz/authgate/pkg/constants"
)

// LoginFlow is one way of proving who the caller is. The orchestrator runs
// every flow through the same step sequence; flows differ only in how the
// login parameter is shaped, how the user is found, and what counts as proof.
type LoginFlow interface {
	CheckParam(ctx context.Context) error
	GetUser(ctx context.Context) (user.User, error)
	CheckCredential(ctx context.Context, u user.User) error
}

// CodeVerifier checks a one-time code delivered out of band. Implementations
// own delivery and storage; only the pass/fail contract matters here.
type CodeVerifier interface {
	Verify(ctx context.Context, phone, code string) (bool, error)
}

type PasswordFlow struct {
	Username string `validate:"required"`
	Password string `validate:"required"`

	users user.Repository
}

func NewPasswordFlow(users user.Repository, username, password string) *PasswordFlow {
	return &PasswordFlow{
		Username: username,
		Password: password,
		users:    users,
	}
}

func (f *PasswordFlow) CheckParam(ctx context.Context) error {
	if err := constants.Validate.Struct(f); err != nil {
		return ErrInvalidInput
	}
	return nil
}

// GetUser reports an unknown username as a rejected credential so callers
// cannot probe which usernames exist.
func (f *PasswordFlow) GetUser(ctx context.Context) (user.User, error) {
	u, err := f.users.GetByUsername(ctx, f.Username)
	if err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			return nil, ErrCredentialRejected
		}
		return nil, err
	}
	return u, nil
}

func (f *PasswordFlow) CheckCredential(ctx context.Context, u user.User) error {
	if !u.CheckPassword(f.Password) {
		return ErrCredentialRejected
	}
	return nil
}

type PhoneCodeFlow struct {
	Phone string `validate:"required"`
	Code  string `validate:"required"`

	users    user.Repository
	verifier CodeVerifier
}

func NewPhoneCodeFlow(users user.Repository, verifier CodeVerifier, phone, code string) *PhoneCodeFlow {
	return &PhoneCodeFlow{
		Phone:    phone,
		Code:     code,
		users:    users,
		verifier: verifier,
	}
}

func (f *PhoneCodeFlow) CheckParam(ctx context.Context) error {
	if err := constants.Validate.Struct(f); err != nil {
		return ErrInvalidInput
	}
	return nil
}

func (f *PhoneCodeFlow) GetUser(ctx context.Context) (user.User, error) {
	u, err := f.users.GetByPhone(ctx, f.Phone)
	if err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			return nil, ErrCredentialRejected
		}
		return nil, err
	}
	return u, nil
}

func (f *PhoneCodeFlow) CheckCredential(ctx context.Context, u user.User) error {
	ok, err := f.verifier.Verify(ctx, f.Phone, f.Code)
	if err != nil {
		return errors.Wrap(err, "failed to verify login code")
	}
	if !ok {
		return ErrCredentialRejected
	}
	return nil
}
