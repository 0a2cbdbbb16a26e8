package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	commonerrors "postboard/internal/common/errors"
	"postboard/internal/common/logger"
)

func newTestClient(baseURL string) *Client {
	log, _ := logger.New("", "test", "info")
	return NewClient(baseURL, "test-key", "us", 2*time.Second, log)
}

func TestTopHeadlines_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top-headlines" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("country") != "us" {
			t.Errorf("missing country parameter")
		}
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Errorf("missing apiKey parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 1,
			"articles": [{
				"source": {"id": "example", "name": "Example"},
				"author": "reporter",
				"title": "headline",
				"description": "body",
				"url": "https://example.com/story"
			}]
		}`))
	}))
	defer server.Close()

	headlines, err := newTestClient(server.URL).TopHeadlines(context.Background())
	if err != nil {
		t.Fatalf("TopHeadlines returned error: %v", err)
	}
	if len(headlines.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(headlines.Articles))
	}
	if headlines.Articles[0].Title != "headline" {
		t.Errorf("unexpected title %q", headlines.Articles[0].Title)
	}
	if headlines.Articles[0].Source.Name != "Example" {
		t.Errorf("unexpected source %q", headlines.Articles[0].Source.Name)
	}
}

func TestTopHeadlines_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).TopHeadlines(context.Background())
	if !errors.Is(err, commonerrors.ErrNewsUnavailable) {
		t.Fatalf("expected ErrNewsUnavailable, got %v", err)
	}
}

func TestTopHeadlines_UnreachableUpstream(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1").TopHeadlines(context.Background())
	if !errors.Is(err, commonerrors.ErrNewsUnavailable) {
		t.Fatalf("expected ErrNewsUnavailable, got %v", err)
	}
}

func TestTopHeadlines_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).TopHeadlines(context.Background())
	if !errors.Is(err, commonerrors.ErrNewsUnavailable) {
		t.Fatalf("expected ErrNewsUnavailable, got %v", err)
	}
}
