package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barefootbuddy/backend/internal/config"
)

func newService(baseURL string) *Service {
	return NewService(config.SearchConfig{BaseURL: baseURL})
}

func TestSearchDirectAnswer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "barefoot country" {
			t.Errorf("query not forwarded: %s", r.URL)
		}
		w.Write([]byte(`{"Answer": "Barefoot Country Music Fest, Wildwood NJ"}`))
	}))
	defer upstream.Close()

	summary, err := newService(upstream.URL).Search(context.Background(), "barefoot country")
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if summary != "Barefoot Country Music Fest, Wildwood NJ" {
		t.Fatalf("summary = %q", summary)
	}
}

func TestSearchPrefersAnswerOverAbstract(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Answer": "direct", "AbstractText": "abstract"}`))
	}))
	defer upstream.Close()

	summary, err := newService(upstream.URL).Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if summary != "direct" {
		t.Fatalf("summary = %q, want the direct answer", summary)
	}
}

func TestSearchFallsBackToRelatedTopics(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RelatedTopics": [
			{"Text": "first"},
			{"Text": ""},
			{"Text": "second"},
			{"Text": "third"},
			{"Text": "fourth"}
		]}`))
	}))
	defer upstream.Close()

	summary, err := newService(upstream.URL).Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search err: %v", err)
	}
	if summary != "first | second | third" {
		t.Fatalf("summary = %q", summary)
	}
}

func TestSearchNoResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	_, err := newService(upstream.URL).Search(context.Background(), "q")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	if _, err := newService(upstream.URL).Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}
