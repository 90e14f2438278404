package core

import (
	"github.com/redis/go-redis/v9"

	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence"
	sessionstore "github.com/iota-uz/authgate/modules/core/infrastructure/session"
	"github.com/iota-uz/authgate/modules/core/infrastructure/verification"
	"github.com/iota-uz/authgate/modules/core/presentation/controllers"
	"github.com/iota-uz/authgate/modules/core/services"
	"github.com/iota-uz/authgate/pkg/application"
	"github.com/iota-uz/authgate/pkg/configuration"
	"github.com/iota-uz/authgate/pkg/metrics"
)

type ModuleOptions struct {
	// Redis overrides the client built from configuration, mainly for tests.
	Redis redis.UniversalClient
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{opts: opts}
}

type Module struct {
	opts *ModuleOptions
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	logger := app.Logger()

	rdb := m.opts.Redis
	if rdb == nil {
		rdb = redis.NewClient(&redis.Options{
			Addr:     conf.Redis.URL,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
	}

	userRepo := persistence.NewUserRepository()
	employeeRepo := persistence.NewEmployeeRepository()
	clientRepo := persistence.NewClientRepository()
	orgRepo := persistence.NewOrgRepository()
	if conf.DirectoryCache.Enabled {
		orgRepo = persistence.NewCachedOrgRepository(orgRepo, rdb, conf.DirectoryCache.TTL)
	}

	store := sessionstore.NewRedisStore(rdb, conf.Session.KeyPrefix, conf.Session.Duration)
	sessionService := services.NewSessionService(store, logger)
	resolver := services.NewOrgResolver(employeeRepo, orgRepo, org.LowestIDPicker{})
	authService := services.NewAuthService(
		clientRepo,
		userRepo,
		employeeRepo,
		orgRepo,
		resolver,
		sessionService,
		app.EventPublisher(),
		logger,
	)

	app.RegisterServices(sessionService, authService)

	verifier := verification.NewRedisCodeVerifier(rdb, "")
	app.RegisterControllers(controllers.NewAuthController(app, userRepo, verifier))

	metrics.TrackLoginEvents(app.EventPublisher())
	return nil
}
