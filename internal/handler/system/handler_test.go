package system

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	statusmodel "github.com/barefootbuddy/backend/internal/model/status"
)

type fakeStore struct {
	checks []statusmodel.Check
}

func (f *fakeStore) InsertStatusCheck(_ context.Context, check statusmodel.Check) error {
	f.checks = append(f.checks, check)
	return nil
}

func (f *fakeStore) ListStatusChecks(_ context.Context) ([]statusmodel.Check, error) {
	return f.checks, nil
}

func newTestRouter(store Store) chi.Router {
	router := chi.NewRouter()
	New(store).RegisterRoutes(router)
	return router
}

func TestRoot(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "active" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "healthy" || body["timestamp"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateStatusCheck(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(`{"client_name":"ios-app"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var check statusmodel.Check
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if check.ID == "" || check.ClientName != "ios-app" {
		t.Fatalf("unexpected check: %+v", check)
	}
	if len(store.checks) != 1 {
		t.Fatalf("check not persisted: %v", store.checks)
	}
}

func TestCreateStatusCheckRequiresName(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListStatusChecks(t *testing.T) {
	store := &fakeStore{checks: []statusmodel.Check{{ID: "1", ClientName: "web"}}}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var checks []statusmodel.Check
	if err := json.Unmarshal(rec.Body.Bytes(), &checks); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(checks) != 1 || checks[0].ClientName != "web" {
		t.Fatalf("unexpected checks: %v", checks)
	}
}
