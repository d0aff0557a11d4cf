package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yazarlar/articlekit/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterOperationMetrics()
	os.Exit(m.Run())
}

func newTestClient(url string, retries uint64) *Client {
	return New(&Config{
		URLTemplate: url,
		Timeout:     2 * time.Second,
		MaxRetries:  retries,
		BaseBackoff: time.Millisecond,
		Logger:      zap.NewNop(),
	})
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lists/sv.txt" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("och\natt\n\n# comment\n"))
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/lists/{lang}.txt", 0)
	words, err := c.Fetch(context.Background(), "sv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"och", "att"}) {
		t.Errorf("unexpected words: %v", words)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("och\n"))
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/{lang}", 3)
	words, err := c.Fetch(context.Background(), "sv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %v", words)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
}

func TestFetch_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/{lang}", 5)
	_, err := c.Fetch(context.Background(), "xx")
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

func TestFetch_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/{lang}", 2)
	if _, err := c.Fetch(context.Background(), "sv"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d", calls.Load())
	}
}

func TestFetch_NoTemplate(t *testing.T) {
	c := newTestClient("", 0)
	if _, err := c.Fetch(context.Background(), "sv"); err == nil {
		t.Fatal("expected error for missing url template")
	}
}

func TestURL_EscapesLanguage(t *testing.T) {
	c := newTestClient("https://example.com/{lang}/{lang}.txt", 0)
	if got := c.URL("a b"); got != "https://example.com/a%20b/a%20b.txt" {
		t.Errorf("unexpected url: %s", got)
	}
}
