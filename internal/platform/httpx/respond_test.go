package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stellar-admin/stellar-admin/internal/platform/httpx"
	"github.com/stellar-admin/stellar-admin/internal/shared"
	_ "github.com/stellar-admin/stellar-admin/testing"
)

func decode(t *testing.T, res *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var env httpx.Envelope
	if err := json.Unmarshal(res.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestOKEnvelope(t *testing.T) {
	res := httptest.NewRecorder()
	httpx.OK(res, map[string]string{"token": "abc"})

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	env := decode(t, res)
	if env.Code != shared.CodeSuccess || env.Message != "ok" {
		t.Fatalf("unexpected envelope %#v", env)
	}
	if env.Timestamp == "" {
		t.Fatalf("expected timestamp")
	}
}

func TestBusinessErrorKeepsHTTP200(t *testing.T) {
	res := httptest.NewRecorder()
	httpx.Error(res, shared.ErrNoPermission)

	if res.Code != http.StatusOK {
		t.Fatalf("business failures must not change transport status, got %d", res.Code)
	}
	env := decode(t, res)
	if env.Code != shared.CodeNoPermission {
		t.Fatalf("expected code %d, got %d", shared.CodeNoPermission, env.Code)
	}
}

func TestInfrastructureErrorIs500(t *testing.T) {
	res := httptest.NewRecorder()
	httpx.Error(res, errors.New("connection refused"))

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	env := decode(t, res)
	if env.Code != http.StatusInternalServerError || env.Message != "internal server error" {
		t.Fatalf("unexpected envelope %#v", env)
	}
}
