package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"bookrental/model"
	"bookrental/util/apperr"
)

type svcMock struct {
	registerFn func(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	loginFn    func(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	requestFn  func(ctx context.Context, email string) error
	resetFn    func(ctx context.Context, req model.ResetPasswordReq) error
}

func (m *svcMock) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	return m.registerFn(ctx, req)
}
func (m *svcMock) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	return m.loginFn(ctx, req)
}
func (m *svcMock) RequestPasswordReset(ctx context.Context, email string) error {
	return m.requestFn(ctx, email)
}
func (m *svcMock) ResetPassword(ctx context.Context, req model.ResetPasswordReq) error {
	return m.resetFn(ctx, req)
}

func post(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestRegister(t *testing.T) {
	m := &svcMock{
		registerFn: func(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
			return &model.User{ID: 1, Username: req.Username, Email: req.Email, PasswordHash: "secret-hash"}, "tok", nil
		},
	}
	h := &Controller{Svc: m, V: validator.New()}
	e := echo.New()

	rec := httptest.NewRecorder()
	err := h.Register(e.NewContext(post("/v1/users/register",
		`{"username":"halim","email":"h@example.com","password":"123456","password2":"123456"}`), rec))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"token":"tok"`)
	require.NotContains(t, rec.Body.String(), "secret-hash")

	err = h.Register(e.NewContext(post("/v1/users/register",
		`{"username":"halim","email":"h@example.com","password":"123456","password2":"654321"}`), httptest.NewRecorder()))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	m := &svcMock{
		loginFn: func(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
			return nil, "", apperr.New(apperr.ErrInvalidCreds, "invalid username or password")
		},
	}
	h := &Controller{Svc: m, V: validator.New()}

	err := h.Login(echo.New().NewContext(post("/v1/users/login", `{"username":"halim","password":"x"}`), httptest.NewRecorder()))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	var asked string
	m := &svcMock{
		requestFn: func(ctx context.Context, email string) error {
			asked = email
			return nil
		},
		resetFn: func(ctx context.Context, req model.ResetPasswordReq) error {
			if req.Token != "good" {
				return apperr.Validation("that is an invalid or expired token")
			}
			return nil
		},
	}
	h := &Controller{Svc: m, V: validator.New()}
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.RequestReset(e.NewContext(post("/v1/users/password-reset", `{"email":"h@example.com"}`), rec)))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "h@example.com", asked)

	rec = httptest.NewRecorder()
	require.NoError(t, h.ConfirmReset(e.NewContext(post("/v1/users/password-reset/confirm",
		`{"token":"good","password":"abcdef","password2":"abcdef"}`), rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	err := h.ConfirmReset(e.NewContext(post("/v1/users/password-reset/confirm",
		`{"token":"bad","password":"abcdef","password2":"abcdef"}`), httptest.NewRecorder()))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
