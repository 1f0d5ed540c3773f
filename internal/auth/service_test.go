package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/stellar-admin/stellar-admin/internal/auth"
	"github.com/stellar-admin/stellar-admin/internal/session"
	"github.com/stellar-admin/stellar-admin/internal/shared"
	"github.com/stellar-admin/stellar-admin/internal/users"
	_ "github.com/stellar-admin/stellar-admin/testing"
)

type stubUsers struct {
	user *users.User
}

func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, shared.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUsers) GetByID(ctx context.Context, id int64) (*users.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, shared.ErrUserNotFound
	}
	return s.user, nil
}

type stubResolver struct {
	perms []string
	err   error
	calls int
}

func (s *stubResolver) ResolvePermissions(ctx context.Context, userID int64) ([]string, error) {
	s.calls++
	return s.perms, s.err
}

type recordedLogin struct {
	userID    int64
	ip        string
	userAgent string
}

type stubRecorder struct {
	logins []recordedLogin
	err    error
}

func (s *stubRecorder) RecordLogin(ctx context.Context, userID int64, ip, userAgent string) error {
	s.logins = append(s.logins, recordedLogin{userID: userID, ip: ip, userAgent: userAgent})
	return s.err
}

func newLoginService(t *testing.T, repo *stubUsers, resolver *stubResolver, recorder auth.LoginRecorder) (*auth.Service, *session.Store, *auth.TokenCodec) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := session.NewStore(client)
	codec := auth.NewTokenCodec([]byte("unit-secret"))
	svc := auth.NewService(repo, resolver, codec, store, recorder, time.Hour, nil)
	return svc, store, codec
}

func activeUser() *users.User {
	return &users.User{
		ID:           7,
		Username:     "admin",
		Nickname:     "Admin",
		PasswordHash: auth.HashPassword("s3cret"),
		Status:       users.StatusNormal,
	}
}

func TestLoginIssuesTokenAndWritesSession(t *testing.T) {
	resolver := &stubResolver{perms: []string{"system:menu:list"}}
	recorder := &stubRecorder{}
	svc, store, codec := newLoginService(t, &stubUsers{user: activeUser()}, resolver, recorder)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "s3cret", "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UID != 7 {
		t.Fatalf("expected uid 7, got %d", claims.UID)
	}

	current, err := store.Token(ctx, 7)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	if current != token {
		t.Fatalf("session token does not match issued token")
	}
	perms, err := store.Permissions(ctx, 7)
	if err != nil {
		t.Fatalf("session permissions: %v", err)
	}
	if len(perms) != 1 || perms[0] != "system:menu:list" {
		t.Fatalf("unexpected cached permissions %#v", perms)
	}
	if len(recorder.logins) != 1 || recorder.logins[0].ip != "10.0.0.1" {
		t.Fatalf("expected one recorded login, got %#v", recorder.logins)
	}
}

func TestLoginUnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	svc, _, _ := newLoginService(t, &stubUsers{user: activeUser()}, &stubResolver{}, nil)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, "nobody", "s3cret", "", "")
	_, errWrongPass := svc.Login(ctx, "admin", "wrong", "", "")

	if !errors.Is(errUnknown, shared.ErrBadCredentials) {
		t.Fatalf("unknown user: expected ErrBadCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, shared.ErrBadCredentials) {
		t.Fatalf("wrong password: expected ErrBadCredentials, got %v", errWrongPass)
	}
}

func TestSecondLoginSupersedesFirst(t *testing.T) {
	svc, store, _ := newLoginService(t, &stubUsers{user: activeUser()}, &stubResolver{}, nil)
	ctx := context.Background()

	first, err := svc.Login(ctx, "admin", "s3cret", "", "")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	// Claims carry second-granularity timestamps, so force the clock on.
	time.Sleep(1100 * time.Millisecond)
	second, err := svc.Login(ctx, "admin", "s3cret", "", "")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens per login")
	}
	current, err := store.Token(ctx, 7)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	if current != second {
		t.Fatalf("expected the later login to hold the session")
	}
}

func TestLoginSurvivesRecorderFailure(t *testing.T) {
	recorder := &stubRecorder{err: errors.New("queue down")}
	svc, _, _ := newLoginService(t, &stubUsers{user: activeUser()}, &stubResolver{}, recorder)

	if _, err := svc.Login(context.Background(), "admin", "s3cret", "", ""); err != nil {
		t.Fatalf("expected login to succeed despite recorder failure, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, store, _ := newLoginService(t, &stubUsers{user: activeUser()}, &stubResolver{}, nil)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "admin", "s3cret", "", ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, 7); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := store.Token(ctx, 7); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected session revoked, got %v", err)
	}
}

func TestUserInfoProjection(t *testing.T) {
	user := activeUser()
	user.Email = "admin@example.com"
	svc, _, _ := newLoginService(t, &stubUsers{user: user}, &stubResolver{}, nil)

	info, err := svc.UserInfo(context.Background(), 7, "10.1.1.1")
	if err != nil {
		t.Fatalf("user info: %v", err)
	}
	if info.Name != "admin" || info.Email != "admin@example.com" || info.LoginIP != "10.1.1.1" {
		t.Fatalf("unexpected projection %#v", info)
	}
}
