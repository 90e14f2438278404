package services_test

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/employee"
	"github.com/iota-uz/authgate/modules/core/domain/aggregates/user"
	"github.com/iota-uz/authgate/modules/core/domain/entities/client"
	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence"
	"github.com/iota-uz/authgate/modules/core/services"
	"github.com/iota-uz/authgate/pkg/eventbus"
)

func uintPtr(v uint) *uint {
	return &v
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func hashPassword(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

type fakeUserRepo struct {
	byID       map[uint]user.User
	byUsername map[string]user.User
	byPhone    map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byID:       map[uint]user.User{},
		byUsername: map[string]user.User{},
		byPhone:    map[string]user.User{},
	}
	for _, u := range users {
		f.byID[u.ID()] = u
		f.byUsername[u.Username()] = u
		if u.Phone() != "" {
			f.byPhone[u.Phone()] = u
		}
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("id: %d: %w", id, persistence.ErrUserNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("username: %s: %w", username, persistence.ErrUserNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByPhone(_ context.Context, phone string) (user.User, error) {
	u, ok := f.byPhone[phone]
	if !ok {
		return nil, fmt.Errorf("phone: %s: %w", phone, persistence.ErrUserNotFound)
	}
	return u, nil
}

type fakeEmployeeRepo struct {
	byID    map[uint]employee.Employee
	byUser  map[uint][]employee.Employee
	updates int
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{
		byID:   map[uint]employee.Employee{},
		byUser: map[uint][]employee.Employee{},
	}
	for _, e := range employees {
		f.byID[e.ID()] = e
		f.byUser[e.UserID()] = append(f.byUser[e.UserID()], e)
	}
	return f
}

func (f *fakeEmployeeRepo) ListByUserID(_ context.Context, userID uint) ([]employee.Employee, error) {
	return f.byUser[userID], nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id uint) (employee.Employee, error) {
	return f.byID[id], nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID uint) (employee.Employee, error) {
	list := f.byUser[userID]
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	f.updates++
	f.byID[e.ID()] = e
	return nil
}

type fakeOrgRepo struct {
	units       map[uint]org.Unit
	depts       map[uint][]org.Unit
	companies   map[uint][]org.Unit
	deptCompany map[uint]org.Unit
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{
		units:       map[uint]org.Unit{},
		depts:       map[uint][]org.Unit{},
		companies:   map[uint][]org.Unit{},
		deptCompany: map[uint]org.Unit{},
	}
}

func (f *fakeOrgRepo) addUnit(u org.Unit) {
	f.units[u.ID()] = u
}

func (f *fakeOrgRepo) GetByID(_ context.Context, id uint) (org.Unit, error) {
	return f.units[id], nil
}

func (f *fakeOrgRepo) FindDeptsByEmployee(_ context.Context, employeeID uint) ([]org.Unit, error) {
	return f.depts[employeeID], nil
}

func (f *fakeOrgRepo) FindCompaniesByEmployee(_ context.Context, employeeID uint) ([]org.Unit, error) {
	return f.companies[employeeID], nil
}

func (f *fakeOrgRepo) GetCompanyByDept(_ context.Context, deptID uint) (org.Unit, error) {
	return f.deptCompany[deptID], nil
}

type fakeSessionStore struct {
	starts   int
	destroys int
	sessions map[string]*session.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*session.Session{}}
}

func (f *fakeSessionStore) Start(_ context.Context, userID uint, category string) (*session.Token, error) {
	f.starts++
	token := fmt.Sprintf("token-%d", f.starts)
	f.sessions[token] = &session.Session{
		Token:     token,
		UserID:    userID,
		Category:  category,
		Attrs:     map[string]string{},
		ExpiresIn: time.Hour,
	}
	return &session.Token{Value: token, ExpiresIn: time.Hour}, nil
}

func (f *fakeSessionStore) SetAttr(_ context.Context, token, key, value string) error {
	sess, ok := f.sessions[token]
	if !ok {
		return fmt.Errorf("session not found: %s", token)
	}
	sess.Attrs[key] = value
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (*session.Session, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionStore) Destroy(_ context.Context, token string) error {
	f.destroys++
	delete(f.sessions, token)
	return nil
}

type fakeClientRepo struct {
	clients map[string]client.Client
}

func newFakeClientRepo(clients ...client.Client) *fakeClientRepo {
	f := &fakeClientRepo{clients: map[string]client.Client{}}
	for _, c := range clients {
		f.clients[c.ID()+":"+c.Secret()] = c
	}
	return f
}

func (f *fakeClientRepo) GetByCredentials(_ context.Context, clientID, clientSecret string) (client.Client, error) {
	return f.clients[clientID+":"+clientSecret], nil
}

type fixture struct {
	users     *fakeUserRepo
	employees *fakeEmployeeRepo
	orgs      *fakeOrgRepo
	clients   *fakeClientRepo
	store     *fakeSessionStore
	resolver  *services.OrgResolver
	sessions  *services.SessionService
	auth      *services.AuthService
	events    *[]*user.LoginEvent
}

func newFixture(users *fakeUserRepo, employees *fakeEmployeeRepo, orgs *fakeOrgRepo, clients *fakeClientRepo) *fixture {
	logger := discardLogger()
	store := newFakeSessionStore()
	resolver := services.NewOrgResolver(employees, orgs, org.LowestIDPicker{})
	sessions := services.NewSessionService(store, logger)

	events := []*user.LoginEvent{}
	bus := eventbus.NewEventPublisher(logger)
	bus.Subscribe(func(e *user.LoginEvent) {
		events = append(events, e)
	})

	auth := services.NewAuthService(clients, users, employees, orgs, resolver, sessions, bus, logger)
	return &fixture{
		users:     users,
		employees: employees,
		orgs:      orgs,
		clients:   clients,
		store:     store,
		resolver:  resolver,
		sessions:  sessions,
		auth:      auth,
		events:    &events,
	}
}
