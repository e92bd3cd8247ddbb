package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return b
}

func TestHealthz_AlwaysOK(t *testing.T) {
	t.Parallel()
	h := New()

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if b := decode(t, rec); b.Status != "ok" {
		t.Errorf("body status = %q, want ok", b.Status)
	}
}

func TestReadyz_AllChecksPass(t *testing.T) {
	t.Parallel()
	h := New(
		Checker{Name: "synth", Check: func(context.Context) error { return nil }},
		Checker{Name: "backends", Check: func(context.Context) error { return nil }},
	)

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	b := decode(t, rec)
	if b.Status != "ok" {
		t.Errorf("body status = %q, want ok", b.Status)
	}
	if len(b.Checks) != 2 {
		t.Fatalf("got %d checks, want 2", len(b.Checks))
	}
	// Registration order is preserved.
	if b.Checks[0].Name != "synth" || b.Checks[1].Name != "backends" {
		t.Errorf("check order = [%s %s], want [synth backends]", b.Checks[0].Name, b.Checks[1].Name)
	}
	for _, c := range b.Checks {
		if !c.OK || c.Error != "" {
			t.Errorf("check %s = %+v, want ok with no error", c.Name, c)
		}
	}
}

func TestReadyz_FailingCheckNamesTheDependency(t *testing.T) {
	t.Parallel()
	h := New(
		Checker{Name: "synth", Check: func(context.Context) error { return nil }},
		Checker{Name: "model", Check: func(context.Context) error { return errors.New("download failed: disk full") }},
	)

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	b := decode(t, rec)
	if b.Status != "unavailable" {
		t.Errorf("body status = %q, want unavailable", b.Status)
	}
	if !b.Checks[0].OK {
		t.Error("passing check reported as failed")
	}
	if b.Checks[1].OK || b.Checks[1].Error != "download failed: disk full" {
		t.Errorf("failing check = %+v, want the error text", b.Checks[1])
	}
}

func TestReadyz_CheckContextHasDeadline(t *testing.T) {
	t.Parallel()
	var hadDeadline bool
	h := New(Checker{Name: "probe", Check: func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	}})

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

	if !hadDeadline {
		t.Error("check context has no deadline")
	}
}

func TestRegister_WiresBothRoutes(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	New().Register(mux)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}
