package discogs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeFetcher records requests and replays a canned response.
type fakeFetcher struct {
	mu       sync.Mutex
	requests []Request
	resp     *Response
	err      error
}

func (f *fakeFetcher) Fetch(_ context.Context, req Request) (*Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.resp, f.err
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// testLogger collects debug lines.
type testLogger struct {
	lines []string
}

func (l *testLogger) Debugf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Token:   "test-token",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid token", token: "abc123"},
		{name: "empty token", token: "", wantErr: true},
		{name: "blank token", token: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{}
			client, err := NewClient(Config{Token: tt.token, Fetcher: fetcher})

			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				if cfgErr.Field != "Token" {
					t.Errorf("expected Token field, got %q", cfgErr.Field)
				}
				if client != nil {
					t.Error("expected nil client on error")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if fetcher.calls() != 0 {
				t.Errorf("expected no requests during construction, got %d", fetcher.calls())
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{Token: "abc"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if client.Credentials().Token != "abc" {
		t.Errorf("expected token abc, got %q", client.Credentials().Token)
	}
	if client.Registry() != DefaultRegistry {
		t.Error("expected DefaultRegistry")
	}
	prefix, err := client.URLPrefix(KindArtist)
	if err != nil {
		t.Fatalf("URLPrefix: %v", err)
	}
	if prefix != "https://api.discogs.com/artists/" {
		t.Errorf("unexpected prefix %q", prefix)
	}
}

func TestClient_URLPrefix(t *testing.T) {
	client, err := NewClient(Config{Token: "abc", BaseURL: "http://example.test/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	tests := []struct {
		kind string
		want string
	}{
		{KindRelease, "http://example.test/releases/"},
		{KindMaster, "http://example.test/masters/"},
		{KindArtist, "http://example.test/artists/"},
		{KindLabel, "http://example.test/labels/"},
	}
	for _, tt := range tests {
		got, err := client.URLPrefix(tt.kind)
		if err != nil {
			t.Errorf("URLPrefix(%s): %v", tt.kind, err)
			continue
		}
		if got != tt.want {
			t.Errorf("URLPrefix(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}

	for _, kind := range []string{KindTrack, KindImage, "Bogus"} {
		if _, err := client.URLPrefix(kind); !errors.Is(err, ErrNoEndpoint) {
			t.Errorf("URLPrefix(%s): expected ErrNoEndpoint, got %v", kind, err)
		}
	}
}

func TestClient_Release(t *testing.T) {
	fixture := loadFixture(t, "release_249504.json")

	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/releases/249504" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("token"); got != "test-token" {
			t.Errorf("expected token query param, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("expected default User-Agent, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	})

	release, err := client.Release(context.Background(), 249504)
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if release.Kind() != KindRelease {
		t.Errorf("expected kind Release, got %s", release.Kind())
	}
	title, err := release.Title()
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "Never Gonna Give You Up" {
		t.Errorf("unexpected title %q", title)
	}
}

func TestClient_CustomUserAgent(t *testing.T) {
	fetcher := &fakeFetcher{resp: &Response{StatusCode: 200, Body: map[string]any{"name": "x"}}}
	client, err := NewClient(Config{Token: "abc", UserAgent: "mytool/2.0", Fetcher: fetcher})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Label(context.Background(), 1); err != nil {
		t.Fatalf("Label: %v", err)
	}

	req := fetcher.requests[0]
	if req.UserAgent != "mytool/2.0" {
		t.Errorf("expected custom User-Agent, got %q", req.UserAgent)
	}
	if req.Credentials.Token != "abc" {
		t.Errorf("expected credentials to be passed, got %+v", req.Credentials)
	}
	if req.URL != "https://api.discogs.com/labels/1" {
		t.Errorf("unexpected url %q", req.URL)
	}
	if strings.Contains(req.URL, "abc") {
		t.Error("token leaked into request URL")
	}
}

func TestClient_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Artist not found."}`))
	})

	_, err := client.Artist(context.Background(), 999999999)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.ID != 999999999 {
		t.Errorf("expected ID 999999999, got %d", nf.ID)
	}
	if !strings.HasSuffix(nf.URLPrefix, "/artists/") {
		t.Errorf("unexpected prefix %q", nf.URLPrefix)
	}
	if !strings.Contains(nf.Error(), "999999999") {
		t.Errorf("expected id in message, got %q", nf.Error())
	}
}

func TestClient_FetchErrorStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantTemporary bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"message": "You are making requests too quickly."}`, wantTemporary: true},
		{name: "server error", status: http.StatusInternalServerError, body: "", wantTemporary: true},
		{name: "html error page", status: http.StatusBadGateway, body: "<html>bad gateway</html>", wantTemporary: true},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message": "Invalid consumer token."}`},
		{name: "forbidden", status: http.StatusForbidden, body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Master(context.Background(), 1000)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FetchError, got %v", err)
			}
			if fe.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, fe.StatusCode)
			}
			if fe.Temporary() != tt.wantTemporary {
				t.Errorf("Temporary() = %v, want %v", fe.Temporary(), tt.wantTemporary)
			}
			if strings.Contains(fe.Error(), "test-token") {
				t.Errorf("token leaked into error: %q", fe.Error())
			}
			if n := calls.Load(); n != 1 {
				t.Errorf("expected exactly one request, got %d", n)
			}
		})
	}
}

func TestClient_NonObjectBody(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "array", body: []any{}},
		{name: "string", body: "hello"},
		{name: "null", body: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{resp: &Response{StatusCode: 200, Body: tt.body}}
			client, err := NewClient(Config{Token: "abc", Fetcher: fetcher})
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}

			_, err = client.Fetch(context.Background(), KindRelease, 1)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FetchError, got %v", err)
			}
			if fe.Err == nil {
				t.Error("expected a cause describing the body")
			}
		})
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title": `))
	})

	_, err := client.Release(context.Background(), 1)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fe.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", fe.StatusCode)
	}
}

func TestClient_InvalidID(t *testing.T) {
	fetcher := &fakeFetcher{}
	client, err := NewClient(Config{Token: "abc", Fetcher: fetcher})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	for _, id := range []int{0, -1} {
		if _, err := client.Release(context.Background(), id); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Release(%d): expected ErrInvalidID, got %v", id, err)
		}
	}
	if _, err := client.Fetch(context.Background(), KindTrack, 1); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("expected ErrNoEndpoint, got %v", err)
	}
	if fetcher.calls() != 0 {
		t.Errorf("expected no requests, got %d", fetcher.calls())
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{Token: "secret-token", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Artist(context.Background(), 1)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if strings.Contains(err.Error(), "secret-token") {
		t.Errorf("token leaked into error: %q", err.Error())
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		t.Error("transport failure must not be reported as FetchError")
	}
}

func TestClient_NilResponse(t *testing.T) {
	// A fetcher that reports neither a response nor an error
	fetcher := &fakeFetcher{}
	client, err := NewClient(Config{Token: "abc", Fetcher: fetcher})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Artist(context.Background(), 1)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.URL != DefaultBaseURL+"/artists/1" {
		t.Errorf("unexpected URL %q", te.URL)
	}

	if _, err := client.Get(context.Background(), DefaultBaseURL+"/labels/1"); !errors.As(err, &te) {
		t.Errorf("Get: expected TransportError, got %v", err)
	}
	if fetcher.calls() != 2 {
		t.Errorf("expected 2 requests, got %d", fetcher.calls())
	}
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Token:      "abc",
		BaseURL:    server.URL,
		HTTPClient: &http.Client{Timeout: 20 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Label(context.Background(), 1)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !te.Timeout() {
		t.Errorf("expected Timeout() to be true for %v", te.Err)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Release(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestClient_Get(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artists/3840/releases" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected existing query to be kept, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("token") != "test-token" {
			t.Errorf("expected token, got %q", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"pagination": {"page": 2}}`))
	})

	prefix, _ := client.URLPrefix(KindArtist)
	resp, err := client.Get(context.Background(), prefix+"3840/releases?page=2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("expected raw status passthrough, got %d", resp.StatusCode)
	}
	body, ok := resp.Body.(map[string]any)
	if !ok {
		t.Fatalf("expected object body, got %T", resp.Body)
	}
	if _, ok := body["pagination"]; !ok {
		t.Error("expected pagination key")
	}
}

func TestClient_Logger(t *testing.T) {
	logger := &testLogger{}
	fetcher := &fakeFetcher{resp: &Response{StatusCode: 200, Body: map[string]any{}}}
	client, err := NewClient(Config{Token: "abc", Fetcher: fetcher, Logger: logger})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Artist(context.Background(), 3840); err != nil {
		t.Fatalf("Artist: %v", err)
	}

	if len(logger.lines) != 2 {
		t.Fatalf("expected 2 log lines, got %v", logger.lines)
	}
	if !strings.Contains(logger.lines[1], "-> 200") {
		t.Errorf("expected status in log line, got %q", logger.lines[1])
	}
	for _, line := range logger.lines {
		if strings.Contains(line, "token=") {
			t.Errorf("token leaked into log: %q", line)
		}
	}
}

func TestClient_CustomRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(KindArtist, Scalar("name"))

	fetcher := &fakeFetcher{resp: &Response{StatusCode: 200, Body: map[string]any{"name": "Radiohead", "profile": "x"}}}
	client, err := NewClient(Config{Token: "abc", Fetcher: fetcher, Registry: reg})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	artist, err := client.Artist(context.Background(), 3840)
	if err != nil {
		t.Fatalf("Artist: %v", err)
	}
	if name, _ := artist.Name(); name != "Radiohead" {
		t.Errorf("expected Radiohead, got %q", name)
	}
	var undeclared *UndeclaredFieldError
	if _, err := artist.Profile(); !errors.As(err, &undeclared) {
		t.Errorf("expected UndeclaredFieldError, got %v", err)
	}
}

func TestClient_ConcurrentFetches(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"id": %s, "name": "n"}`, strings.TrimPrefix(r.URL.Path, "/labels/"))
	})

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			label, err := client.Label(context.Background(), id)
			if err != nil {
				errs <- err
				return
			}
			got, err := label.ID()
			if err != nil {
				errs <- err
				return
			}
			if got != id {
				errs <- fmt.Errorf("expected id %d, got %d", id, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
