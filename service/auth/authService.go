package authsvc

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookrental/model"
	authrepo "bookrental/repository/auth"
	"bookrental/repository/resettoken"
	"bookrental/util/apperr"
	"bookrental/util/fields"
	"bookrental/util/hash"
	jwtutil "bookrental/util/jwt"
	"bookrental/util/mailer"
)

const (
	SessionTTL      = 24 * time.Hour
	DefaultResetTTL = 30 * time.Minute
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	// RequestPasswordReset mails a reset link. Unknown addresses succeed silently.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req model.ResetPasswordReq) error
}

type Option func(*service)

// WithResetTokens replaces the in-memory token store.
func WithResetTokens(store resettoken.Store, ttl time.Duration) Option {
	return func(s *service) {
		s.tokens = store
		if ttl > 0 {
			s.resetTTL = ttl
		}
	}
}

// WithMailer sets the reset mail transport and the link prefix the token is appended to.
func WithMailer(m mailer.Mailer, resetBaseURL string) Option {
	return func(s *service) {
		s.mail = m
		s.resetBaseURL = resetBaseURL
	}
}

type service struct {
	ur           authrepo.Repo
	secret       string
	tokens       resettoken.Store
	resetTTL     time.Duration
	mail         mailer.Mailer
	resetBaseURL string
}

func New(ur authrepo.Repo, secret string, opts ...Option) Service {
	s := &service{
		ur:       ur,
		secret:   secret,
		tokens:   resettoken.NewMemoryStore(),
		resetTTL: DefaultResetTTL,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	username, err := fields.Required("username", req.Username, 64)
	if err != nil {
		return nil, "", err
	}
	email, err := fields.Email(req.Email)
	if err != nil {
		return nil, "", err
	}
	if err := checkPassword(req.Password, req.Password2); err != nil {
		return nil, "", err
	}

	if err := s.free(ctx, "username", username, s.ur.ByUsername); err != nil {
		return nil, "", err
	}
	if err := s.free(ctx, "email", email, s.ur.ByEmail); err != nil {
		return nil, "", err
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{Username: username, Email: email, PasswordHash: hashed}
	if err := s.ur.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Username, SessionTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) free(ctx context.Context, what, v string, lookup func(context.Context, string) (*model.User, error)) error {
	u, err := lookup(ctx, v)
	switch {
	case apperr.Is(err, apperr.ErrNotFound):
		return nil
	case err != nil:
		return err
	case u != nil:
		return apperr.Validation("please use a different %s", what)
	}
	return nil
}

func checkPassword(pw, again string) error {
	if len(pw) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}
	if pw != again {
		return apperr.Validation("passwords do not match")
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, "", apperr.Validation("username and password are required")
	}
	u, err := s.ur.ByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.ErrNotFound) {
			return nil, "", apperr.New(apperr.ErrInvalidCreds, "invalid username or password")
		}
		return nil, "", err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", apperr.New(apperr.ErrInvalidCreds, "invalid username or password")
	}
	token, err := jwtutil.Issue(s.secret, u.ID, u.Username, SessionTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	email, err := fields.Email(email)
	if err != nil {
		return err
	}
	u, err := s.ur.ByEmail(ctx, email)
	if apperr.Is(err, apperr.ErrNotFound) || (err == nil && u == nil) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := newToken()
	if err != nil {
		return err
	}
	if err := s.tokens.Save(ctx, token, u.ID, s.resetTTL); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	if s.mail == nil {
		return nil
	}
	body := fmt.Sprintf("Hello %s,\n\nTo reset your password, visit the following link:\n\n%s%s\n\n"+
		"The link expires in %s. If you did not make this request, ignore this email.\n",
		u.Username, s.resetBaseURL, token, s.resetTTL)
	if err := s.mail.Send(ctx, u.Email, "Reset Your Password", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, req model.ResetPasswordReq) error {
	if strings.TrimSpace(req.Token) == "" {
		return apperr.Validation("reset token is required")
	}
	if err := checkPassword(req.Password, req.Password2); err != nil {
		return err
	}
	userID, err := s.tokens.Consume(ctx, req.Token)
	if err != nil {
		if errors.Is(err, resettoken.ErrInvalidToken) {
			return apperr.Wrap(apperr.ErrValidation, err, "that is an invalid or expired token")
		}
		return err
	}
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.ur.UpdatePassword(ctx, userID, hashed)
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
