// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"bookrental/model"
	authrepo "bookrental/repository/auth"
	"bookrental/repository/resettoken"
	"bookrental/util/apperr"
	"bookrental/util/hash"
	jwtutil "bookrental/util/jwt"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	byEmailFn        func(ctx context.Context, email string) (*model.User, error)
	byUsernameFn     func(ctx context.Context, username string) (*model.User, error)
	createFn         func(ctx context.Context, u *model.User) error
	updatePasswordFn func(ctx context.Context, id int64, passwordHash string) error
}

var _ authrepo.Repo = (*mockRepo)(nil)

func notFound() error { return apperr.NotFound("user not found") }

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, notFound()
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.byUsernameFn == nil {
		return nil, notFound()
	}
	return m.byUsernameFn(ctx, username)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) { return nil, notFound() }

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.updatePasswordFn == nil {
		return nil
	}
	return m.updatePasswordFn(ctx, id, passwordHash)
}

type sentMail struct{ to, subject, body string }

type mailerMock struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *mailerMock) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Username:  "halim",
		Email:     "USER@Example.COM",
		Password:  "supersecret",
		Password2: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.True(t, hash.Check(u.PasswordHash, "supersecret"))

	claims, err := jwtutil.Parse(tok, "test-secret")
	require.NoError(t, err)
	id, err := jwtutil.UserID(claims)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, "test-secret")

	cases := []model.RegisterReq{
		{Username: " ", Email: "a@b.co", Password: "123456", Password2: "123456"},
		{Username: "u", Email: "nope", Password: "123456", Password2: "123456"},
		{Username: "u", Email: "a@b.co", Password: "123", Password2: "123"},
		{Username: "u", Email: "a@b.co", Password: "123456", Password2: "654321"},
	}
	for _, req := range cases {
		_, _, err := svc.Register(ctx, req)
		require.Error(t, err)
		require.Equal(t, apperr.ErrValidation, apperr.Code(err))
	}
}

func TestRegister_Taken(t *testing.T) {
	ctx := context.Background()
	req := model.RegisterReq{Username: "halim", Email: "taken@example.com", Password: "123456", Password2: "123456"}

	byEmail := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 9, Email: email}, nil
		},
	}
	_, _, err := New(byEmail, "s").Register(ctx, req)
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
	require.Contains(t, err.Error(), "email")

	byName := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 9, Username: username}, nil
		},
	}
	_, _, err = New(byName, "s").Register(ctx, req)
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
	require.Contains(t, err.Error(), "username")
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "ok", Email: "ok@example.com", Password: "123456", Password2: "123456",
	})
	require.Error(t, err)
	require.Equal(t, apperr.ErrCode(""), apperr.Code(err))
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 7, Email: "user@example.com", Username: username, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: pw})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.Equal(t, int64(7), u.ID)
}

func TestLogin_BadInput(t *testing.T) {
	_, _, err := New(&mockRepo{}, "test-secret").Login(context.Background(), model.LoginReq{Username: " "})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
}

func TestLogin_UserNotFound(t *testing.T) {
	_, _, err := New(&mockRepo{}, "test-secret").Login(context.Background(), model.LoginReq{
		Username: "missing", Password: "whatever",
	})
	require.Equal(t, apperr.ErrInvalidCreds, apperr.Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")
	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 101, Username: username, PasswordHash: hashed}, nil
		},
	}
	_, _, err := New(m, "test-secret").Login(context.Background(), model.LoginReq{
		Username: "halim", Password: "wrong-password",
	})
	require.Equal(t, apperr.ErrInvalidCreds, apperr.Code(err))
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	ctx := context.Background()
	var updatedID int64
	var updatedHash string
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 5, Username: "halim", Email: email}, nil
		},
		updatePasswordFn: func(ctx context.Context, id int64, passwordHash string) error {
			updatedID, updatedHash = id, passwordHash
			return nil
		},
	}
	mail := &mailerMock{}
	svc := New(m, "s",
		WithResetTokens(resettoken.NewMemoryStore(), time.Hour),
		WithMailer(mail, "https://rent.example/reset/"))

	require.NoError(t, svc.RequestPasswordReset(ctx, "Halim@Example.com"))
	require.Len(t, mail.sent, 1)
	require.Equal(t, "halim@example.com", mail.sent[0].to)

	i := strings.Index(mail.sent[0].body, "https://rent.example/reset/")
	require.GreaterOrEqual(t, i, 0)
	token := strings.Fields(mail.sent[0].body[i+len("https://rent.example/reset/"):])[0]
	require.Len(t, token, 64)

	req := model.ResetPasswordReq{Token: token, Password: "newsecret", Password2: "newsecret"}
	require.NoError(t, svc.ResetPassword(ctx, req))
	require.Equal(t, int64(5), updatedID)
	require.True(t, hash.Check(updatedHash, "newsecret"))

	err := svc.ResetPassword(ctx, req)
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	mail := &mailerMock{}
	svc := New(&mockRepo{}, "s", WithMailer(mail, "http://x/"))

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@example.com"))
	require.Empty(t, mail.sent)
}

func TestPasswordReset_MailFailure(t *testing.T) {
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 5, Email: email}, nil
		},
	}
	svc := New(m, "s", WithMailer(&mailerMock{err: errors.New("smtp down")}, "http://x/"))

	err := svc.RequestPasswordReset(context.Background(), "a@b.co")
	require.Error(t, err)
	require.Equal(t, apperr.ErrCode(""), apperr.Code(err))
}

func TestResetPassword_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, "s")

	err := svc.ResetPassword(context.Background(), model.ResetPasswordReq{Password: "123456", Password2: "123456"})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))

	err = svc.ResetPassword(context.Background(), model.ResetPasswordReq{Token: "t", Password: "123456", Password2: "1234567"})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))

	err = svc.ResetPassword(context.Background(), model.ResetPasswordReq{Token: "unknown", Password: "123456", Password2: "123456"})
	require.Equal(t, apperr.ErrValidation, apperr.Code(err))
}
