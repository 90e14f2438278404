package services

import "github.com/iota-uz/authgate/pkg/serrors"

// Login and switch refusals. Every value is a user-visible result, not a
// fault: controllers map codes to HTTP statuses and audit subscribers record
// them. Matching is by code via errors.Is.
var (
	ErrInvalidInput       = serrors.NewError("AUTH_INVALID_INPUT", "login parameters are malformed", "")
	ErrUnknownClient      = serrors.NewError("AUTH_UNKNOWN_CLIENT", "client application is not registered", "")
	ErrClientDisabled     = serrors.NewError("AUTH_CLIENT_DISABLED", "client application is disabled", "")
	ErrCredentialRejected = serrors.NewError("AUTH_CREDENTIAL_REJECTED", "credentials were rejected", "")
	ErrAccountDisabled    = serrors.NewError("AUTH_ACCOUNT_DISABLED", "user account is disabled", "")
	ErrUnauthenticated    = serrors.NewError("AUTH_UNAUTHENTICATED", "no valid session", "")
	ErrSessionExpired     = serrors.NewError("AUTH_SESSION_EXPIRED", "session refers to an unknown user", "")
	ErrNotMember          = serrors.NewError("AUTH_NOT_MEMBER", "user has no employee membership", "")
	ErrEmployeeDisabled   = serrors.NewError("AUTH_EMPLOYEE_DISABLED", "employee membership is disabled", "")
	ErrOrgNotFound        = serrors.NewError("AUTH_ORG_NOT_FOUND", "organization does not exist", "")
)
