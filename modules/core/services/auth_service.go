package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/employee"
	"github.com/iota-uz/authgate/modules/core/domain/aggregates/user"
	"github.com/iota-uz/authgate/modules/core/domain/entities/client"
	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence"
	"github.com/iota-uz/authgate/pkg/composables"
	"github.com/iota-uz/authgate/pkg/eventbus"
)

// AuthService sequences login, logout, and org switching. Every step
// short-circuits on the first refusal; a session is only ever created after
// the whole ladder has passed.
type AuthService struct {
	clients   client.Repository
	users     user.Repository
	employees employee.Repository
	orgs      org.Repository
	resolver  *OrgResolver
	sessions  *SessionService
	publisher eventbus.EventBus
	logger    *logrus.Logger
}

func NewAuthService(
	clients client.Repository,
	users user.Repository,
	employees employee.Repository,
	orgs org.Repository,
	resolver *OrgResolver,
	sessions *SessionService,
	publisher eventbus.EventBus,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		clients:   clients,
		users:     users,
		employees: employees,
		orgs:      orgs,
		resolver:  resolver,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

// Login runs the flow through the shared step ladder: parameter shape, client
// validation, user lookup, credential proof, account state, employee pick,
// org resolution, session bind. On success exactly one session exists and one
// success event is published; on refusal no session exists and at most one
// failure event is published.
func (s *AuthService) Login(ctx context.Context, flow LoginFlow, clientID, clientSecret string) (*session.Token, error) {
	if err := flow.CheckParam(ctx); err != nil {
		return nil, err
	}

	c, err := s.clients.GetByCredentials(ctx, clientID, clientSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up client")
	}
	if c == nil {
		return nil, ErrUnknownClient
	}
	if !c.Enabled() {
		return nil, ErrClientDisabled
	}

	u, err := flow.GetUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := flow.CheckCredential(ctx, u); err != nil {
		if errors.Is(err, ErrCredentialRejected) {
			s.publisher.Publish(user.NewLoginFailedEvent(ctx, u.ID(), "credentials rejected"))
		}
		return nil, err
	}

	if !u.Enabled() {
		s.publisher.Publish(user.NewLoginFailedEvent(ctx, u.ID(), "account disabled"))
		return nil, ErrAccountDisabled
	}

	emp, err := s.pickEmployee(ctx, u.ID())
	if err != nil {
		return nil, err
	}

	sc, err := s.resolver.Resolve(ctx, emp)
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Bind(ctx, u.ID(), c.Category(), sc)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"userId":   u.ID(),
		"clientId": c.ID(),
	}).Info("login succeeded")
	s.publisher.Publish(user.NewLoginSucceededEvent(ctx, u.ID(), sc.EmployeeID))
	return token, nil
}

// pickEmployee chooses the first membership in the directory's order, if it
// is enabled. A user with no usable membership still logs in unbound.
func (s *AuthService) pickEmployee(ctx context.Context, userID uint) (employee.Employee, error) {
	memberships, err := s.employees.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list employee memberships")
	}
	if len(memberships) == 0 || !memberships[0].Enabled() {
		return nil, nil
	}
	return memberships[0], nil
}

// SwitchOrg rebinds the caller's session to an explicitly chosen unit, or to
// no unit at all when targetOrgID is nil. Unlike login resolution the stored
// last choice is always overwritten, even with nulls: "no org" becomes the
// new sticky default.
func (s *AuthService) SwitchOrg(ctx context.Context, targetOrgID *uint) (*session.Token, error) {
	sess, ok := composables.UseSession(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, errors.Wrap(err, "failed to load session user")
	}
	if !u.Enabled() {
		s.publisher.Publish(user.NewLoginFailedEvent(ctx, u.ID(), "account disabled"))
		return nil, ErrAccountDisabled
	}

	emp, err := s.currentEmployee(ctx, sess)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrNotMember
	}
	if !emp.Enabled() {
		s.publisher.Publish(user.NewLoginFailedEvent(ctx, u.ID(), "employee disabled"))
		return nil, ErrEmployeeDisabled
	}

	var sc session.Context
	if targetOrgID != nil {
		unit, err := s.orgs.GetByID(ctx, *targetOrgID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load target org unit")
		}
		if unit == nil {
			return nil, ErrOrgNotFound
		}
		sc, err = s.resolver.ResolveExplicit(ctx, emp, unit)
		if err != nil {
			return nil, err
		}
	}

	emp.SetLastOrg(sc.DeptID, sc.CompanyID)
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, errors.Wrap(err, "failed to persist org choice")
	}

	s.sessions.Unbind(ctx, sess.Token)
	token, err := s.sessions.Bind(ctx, u.ID(), sess.Category, sc)
	if err != nil {
		return nil, err
	}

	// The session context may be all-null after a null-target switch, but the
	// audit event always names the acting employee.
	empID := emp.ID()
	s.publisher.Publish(user.NewOrgSwitchedEvent(ctx, u.ID(), &empID))
	return token, nil
}

// currentEmployee prefers the membership recorded in the session and falls
// back to the directory when the session predates the attribute.
func (s *AuthService) currentEmployee(ctx context.Context, sess *session.Session) (employee.Employee, error) {
	if eid := sess.Attr(session.KeyEmployeeID); eid != nil {
		emp, err := s.employees.GetByID(ctx, *eid)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load session employee")
		}
		return emp, nil
	}
	emp, err := s.employees.GetByUserID(ctx, sess.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load employee for session user")
	}
	return emp, nil
}

// Logout destroys the caller's session. Holding no session, or one that
// already expired, still counts as a successful logout.
func (s *AuthService) Logout(ctx context.Context) error {
	sess, ok := composables.UseSession(ctx)
	if !ok {
		return nil
	}
	s.sessions.Unbind(ctx, sess.Token)
	s.publisher.Publish(user.NewLogoutEvent(ctx, sess.UserID))
	return nil
}
