package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func callWithAuth(keys []string, decorate func(*http.Request)) *httptest.ResponseRecorder {
	var handled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	APIKeyAuth(keys, nil)(next).ServeHTTP(rec, req)

	if rec.Code == http.StatusNoContent && !handled {
		panic("recorder reports success but handler never ran")
	}
	return rec
}

func TestAPIKeyAuth_DisabledWithoutKeys(t *testing.T) {
	rec := callWithAuth(nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	rec := callWithAuth([]string{"secret"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAPIKeyAuth_HeaderKey(t *testing.T) {
	rec := callWithAuth([]string{"other", "secret"}, func(r *http.Request) {
		r.Header.Set("X-API-Key", "secret")
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestAPIKeyAuth_BearerToken(t *testing.T) {
	rec := callWithAuth([]string{"secret"}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer secret")
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestAPIKeyAuth_WrongKey(t *testing.T) {
	rec := callWithAuth([]string{"secret"}, func(r *http.Request) {
		r.Header.Set("X-API-Key", "wrong")
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCallerID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := CallerID(req); got != "" {
		t.Errorf("caller id = %q, want empty", got)
	}

	req.Header.Set("X-User-ID", "user-1")
	if got := CallerID(req); got != "user-1" {
		t.Errorf("caller id = %q, want user-1", got)
	}
}
