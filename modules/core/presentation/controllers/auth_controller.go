package controllers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/user"
	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
	"github.com/iota-uz/authgate/modules/core/presentation/controllers/dtos"
	"github.com/iota-uz/authgate/modules/core/services"
	"github.com/iota-uz/authgate/pkg/application"
	"github.com/iota-uz/authgate/pkg/composables"
	"github.com/iota-uz/authgate/pkg/configuration"
	"github.com/iota-uz/authgate/pkg/httpapi"
	"github.com/iota-uz/authgate/pkg/serrors"
)

// statusForError maps the refusal taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error.
func statusForError(err error) int {
	var coded *serrors.Error
	if !errors.As(err, &coded) {
		return http.StatusInternalServerError
	}
	switch coded.Code {
	case "AUTH_INVALID_INPUT":
		return http.StatusBadRequest
	case "AUTH_UNKNOWN_CLIENT", "AUTH_CREDENTIAL_REJECTED", "AUTH_UNAUTHENTICATED", "AUTH_SESSION_EXPIRED":
		return http.StatusUnauthorized
	case "AUTH_CLIENT_DISABLED", "AUTH_ACCOUNT_DISABLED", "AUTH_NOT_MEMBER", "AUTH_EMPLOYEE_DISABLED":
		return http.StatusForbidden
	case "AUTH_ORG_NOT_FOUND":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// AuthController exposes login, logout, and org switching as a JSON API.
type AuthController struct {
	app      application.Application
	basePath string
	users    user.Repository
	verifier services.CodeVerifier
}

func NewAuthController(app application.Application, users user.Repository, verifier services.CodeVerifier) application.Controller {
	return &AuthController{
		app:      app,
		basePath: "/auth",
		users:    users,
		verifier: verifier,
	}
}

func (c *AuthController) Key() string {
	return c.basePath
}

func (c *AuthController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/login", c.login).Methods(http.MethodPost)
	router.HandleFunc("/logout", c.logout).Methods(http.MethodPost)
	router.HandleFunc("/switch-org", c.switchOrg).Methods(http.MethodPut)
}

func (c *AuthController) authService() *services.AuthService {
	return c.app.Service(services.AuthService{}).(*services.AuthService)
}

// clientAuth decodes the base64 "id:secret" pair from the configured header.
func clientAuth(r *http.Request) (string, string, bool) {
	raw := r.Header.Get(configuration.Use().ClientAuthHeader)
	if raw == "" {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", "", false
	}
	id, secret, found := strings.Cut(string(decoded), ":")
	if !found || id == "" {
		return "", "", false
	}
	return id, secret, true
}

func (c *AuthController) login(w http.ResponseWriter, r *http.Request) {
	logger := composables.UseLogger(r.Context())

	clientID, clientSecret, ok := clientAuth(r)
	if !ok {
		_ = httpapi.WriteServiceError(w, http.StatusBadRequest, services.ErrInvalidInput)
		return
	}

	dto := &dtos.LoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteServiceError(w, http.StatusBadRequest, services.ErrInvalidInput)
		return
	}
	if ok, err := dto.Ok(); !ok {
		logger.WithError(err).Debug("login request failed validation")
		_ = httpapi.WriteServiceError(w, http.StatusBadRequest, services.ErrInvalidInput)
		return
	}

	var flow services.LoginFlow
	if dto.Phone != "" {
		flow = services.NewPhoneCodeFlow(c.users, c.verifier, dto.Phone, dto.Code)
	} else {
		flow = services.NewPasswordFlow(c.users, dto.Username, dto.Password)
	}

	var token *session.Token
	err := composables.InTx(r.Context(), func(txCtx context.Context) error {
		var loginErr error
		token, loginErr = c.authService().Login(txCtx, flow, clientID, clientSecret)
		return loginErr
	})
	if err != nil {
		_ = httpapi.WriteServiceError(w, statusForError(err), err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewTokenResponse(token.Value, token.ExpiresIn))
}

func (c *AuthController) logout(w http.ResponseWriter, r *http.Request) {
	if err := c.authService().Logout(r.Context()); err != nil {
		logger := composables.UseLogger(r.Context())
		logger.WithError(err).Warn("logout failed")
	}
	// Logout reports success once attempted, even with nothing to log out.
	_ = httpapi.WriteJSON(w, http.StatusOK, &dtos.SuccessResponse{Success: true})
}

func (c *AuthController) switchOrg(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.SwitchOrgRequest{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteServiceError(w, http.StatusBadRequest, services.ErrInvalidInput)
		return
	}

	var token *session.Token
	err := composables.InTx(r.Context(), func(txCtx context.Context) error {
		var switchErr error
		token, switchErr = c.authService().SwitchOrg(txCtx, dto.OrgID)
		return switchErr
	})
	if err != nil {
		_ = httpapi.WriteServiceError(w, statusForError(err), err)
		return
	}

	_ = httpapi.WriteJSON(w, http.StatusOK, dtos.NewTokenResponse(token.Value, token.ExpiresIn))
}
