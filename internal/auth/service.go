package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stellar-admin/stellar-admin/internal/shared"
	"github.com/stellar-admin/stellar-admin/internal/users"
)

// UserSource provides read access to subject accounts.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (*users.User, error)
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

// PermissionSource resolves the effective permission set at login time.
type PermissionSource interface {
	ResolvePermissions(ctx context.Context, userID int64) ([]string, error)
}

// SessionWriter persists and revokes the session-of-record.
type SessionWriter interface {
	Put(ctx context.Context, userID int64, token string, perms []string, ttl time.Duration) error
	Delete(ctx context.Context, userID int64) error
}

// LoginRecorder records a successful login, typically by enqueueing a
// background task. Failures are logged, never surfaced to the client.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, userID int64, ip, userAgent string) error
}

// Service orchestrates the login flow: credentials, permission resolution,
// token issuance and session persistence.
type Service struct {
	users    UserSource
	resolver PermissionSource
	codec    *TokenCodec
	sessions SessionWriter
	recorder LoginRecorder
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a Service. recorder may be nil.
func NewService(userSource UserSource, resolver PermissionSource, codec *TokenCodec, sessions SessionWriter, recorder LoginRecorder, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:    userSource,
		resolver: resolver,
		codec:    codec,
		sessions: sessions,
		recorder: recorder,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Login verifies credentials and issues a bearer token. Writing the session
// record overwrites any previous one, so a second login on another device
// supersedes the first. Unknown usernames and wrong passwords produce the
// same generic failure.
func (s *Service) Login(ctx context.Context, username, password, ip, userAgent string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			return "", shared.ErrBadCredentials
		}
		return "", err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return "", shared.ErrBadCredentials
	}
	perms, err := s.resolver.ResolvePermissions(ctx, user.ID)
	if err != nil {
		return "", err
	}
	token, err := s.codec.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Put(ctx, user.ID, token, perms, s.tokenTTL); err != nil {
		return "", err
	}
	if s.recorder != nil {
		if err := s.recorder.RecordLogin(ctx, user.ID, ip, userAgent); err != nil && s.logger != nil {
			s.logger.Warn("record login", slog.Int64("user_id", user.ID), slog.Any("error", err))
		}
	}
	return token, nil
}

// Logout revokes the subject's session-of-record. Tokens already issued
// become unusable immediately even though their signatures stay valid.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.sessions.Delete(ctx, userID)
}

// UserInfo returns the profile projection for an authenticated subject.
func (s *Service) UserInfo(ctx context.Context, userID int64, ip string) (*users.Info, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &users.Info{
		Name:     user.Username,
		Nickname: user.Nickname,
		Email:    user.Email,
		Phone:    user.Phone,
		Remark:   user.Remark,
		Avatar:   user.Avatar,
		LoginIP:  ip,
	}, nil
}
