package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stellar-admin/stellar-admin/internal/auth"
	"github.com/stellar-admin/stellar-admin/internal/shared"
	_ "github.com/stellar-admin/stellar-admin/testing"
)

func TestIssueAndVerify(t *testing.T) {
	codec := auth.NewTokenCodec([]byte("unit-secret"))

	token, err := codec.Issue(42, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UID != 42 {
		t.Fatalf("expected uid 42, got %d", claims.UID)
	}
	if claims.PV != 1 {
		t.Fatalf("expected pv 1, got %d", claims.PV)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewTokenCodec([]byte("secret-a")).Issue(1, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = auth.NewTokenCodec([]byte("secret-b")).Verify(token)
	if !errors.Is(err, shared.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	codec := auth.NewTokenCodec([]byte("unit-secret"))
	token, err := codec.Issue(1, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Verify(token); !errors.Is(err, shared.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := auth.NewTokenCodec([]byte("unit-secret"))
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(tok); !errors.Is(err, shared.ErrTokenInvalid) {
			t.Fatalf("token %q: expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}
