package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name: "not found",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 404,
				Message:    "repository does not exist",
				Endpoint:   "/api/v1/repos/org/app",
			},
			wantMsg:    "gitea API error (404) at /api/v1/repos/org/app: repository does not exist",
			wantUnwrap: ErrNotFound,
		},
		{
			name: "with request ID",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 500,
				Message:    "internal error",
				Endpoint:   "/api/v1/user/repos",
				RequestID:  "abc123",
			},
			wantMsg:    "gitea API error (500) at /api/v1/user/repos [abc123]: internal error",
			wantUnwrap: ErrServerError,
		},
		{
			name: "forbidden",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 403,
				Message:    "token lacks scope",
				Endpoint:   "/api/v1/orgs/acme/repos",
			},
			wantMsg:    "gitea API error (403) at /api/v1/orgs/acme/repos: token lacks scope",
			wantUnwrap: ErrForbidden,
		},
		{
			name: "bad request",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 400,
				Message:    "invalid page",
				Endpoint:   "/api/v1/repos/search",
			},
			wantMsg:    "gitea API error (400) at /api/v1/repos/search: invalid page",
			wantUnwrap: ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantUnwrap) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantUnwrap)
			}
		})
	}
}

func TestAuthError(t *testing.T) {
	err := &AuthError{
		Service: "gitea",
		Reason:  "token expired",
	}

	want := "gitea authentication failed: token expired"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, ErrUnauthorized) {
		t.Error("AuthError should unwrap to ErrUnauthorized")
	}
}

func TestRateLimitError(t *testing.T) {
	tests := []struct {
		name    string
		err     *RateLimitError
		wantMsg string
	}{
		{
			name: "with retry after",
			err: &RateLimitError{
				Service:    "gitea",
				RetryAfter: 30 * time.Second,
			},
			wantMsg: "gitea rate limit exceeded, retry after 30s",
		},
		{
			name: "without retry after",
			err: &RateLimitError{
				Service: "gitea",
			},
			wantMsg: "gitea rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrRateLimited) {
				t.Error("RateLimitError should unwrap to ErrRateLimited")
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "rate limited",
			err:  ErrRateLimited,
			want: true,
		},
		{
			name: "server error",
			err:  ErrServerError,
			want: true,
		},
		{
			name: "5xx API error",
			err: &APIError{
				StatusCode: 503,
				Service:    "gitea",
			},
			want: true,
		},
		{
			name: "not found",
			err:  ErrNotFound,
			want: false,
		},
		{
			name: "4xx API error",
			err: &APIError{
				StatusCode: 400,
				Service:    "gitea",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPageIterator(t *testing.T) {
	t.Run("iterates through pages", func(t *testing.T) {
		data := map[int][]int{1: {1, 2, 3}, 2: {4, 5, 6}, 3: {7}}

		fetch := func(_ context.Context, page int) ([]int, bool, error) {
			return data[page], page < len(data), nil
		}

		iter := NewPageIterator(fetch)
		got, err := iter.All(context.Background())
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}

		want := []int{1, 2, 3, 4, 5, 6, 7}
		if len(got) != len(want) {
			t.Fatalf("got %d items, want %d", len(got), len(want))
		}
		for i, v := range got {
			if v != want[i] {
				t.Errorf("item %d = %d, want %d", i, v, want[i])
			}
		}
	})

	t.Run("pages start at one", func(t *testing.T) {
		var pages []int
		fetch := func(_ context.Context, page int) ([]string, bool, error) {
			pages = append(pages, page)
			return []string{"x"}, page < 2, nil
		}

		iter := NewPageIterator(fetch)
		if _, err := iter.All(context.Background()); err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
			t.Errorf("fetched pages %v, want [1 2]", pages)
		}
	})

	t.Run("handles empty result", func(t *testing.T) {
		fetch := func(_ context.Context, _ int) ([]string, bool, error) {
			return nil, false, nil
		}

		iter := NewPageIterator(fetch)
		got, err := iter.All(context.Background())
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d items, want 0", len(got))
		}
	})

	t.Run("propagates error", func(t *testing.T) {
		wantErr := errors.New("fetch failed")
		fetch := func(_ context.Context, _ int) ([]int, bool, error) {
			return nil, false, wantErr
		}

		iter := NewPageIterator(fetch)
		_, err := iter.All(context.Background())
		if !errors.Is(err, wantErr) {
			t.Errorf("got error %v, want %v", err, wantErr)
		}
		if !errors.Is(iter.Err(), wantErr) {
			t.Errorf("Err() = %v, want %v", iter.Err(), wantErr)
		}
	})

	t.Run("ForEach processes all items", func(t *testing.T) {
		fetch := func(_ context.Context, page int) ([]int, bool, error) {
			if page > 1 {
				return nil, false, nil
			}
			return []int{1, 2, 3}, false, nil
		}

		iter := NewPageIterator(fetch)
		var sum int
		err := iter.ForEach(context.Background(), func(i int) error {
			sum += i
			return nil
		})
		if err != nil {
			t.Fatalf("ForEach() error = %v", err)
		}
		if sum != 6 {
			t.Errorf("sum = %d, want 6", sum)
		}
	})
}

func TestClient(t *testing.T) {
	t.Run("successful GET", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"name": "test"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
		})

		var result map[string]string
		err := client.Get(context.Background(), "/test", &result)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if result["name"] != "test" {
			t.Errorf("got name = %q, want %q", result["name"], "test")
		}
	})

	t.Run("successful POST", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("got method %s, want POST", r.Method)
			}
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["key"] != "value" {
				t.Errorf("got body key = %q, want %q", body["key"], "value")
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "123"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
		})

		var result map[string]string
		err := client.Post(context.Background(), "/create", map[string]string{"key": "value"}, &result)
		if err != nil {
			t.Fatalf("Post() error = %v", err)
		}
		if result["id"] != "123" {
			t.Errorf("got id = %q, want %q", result["id"], "123")
		}
	})

	t.Run("sends token header", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
			Token:       "secret123",
		})

		_ = client.Get(context.Background(), "/test", nil)
		if gotAuth != "token secret123" {
			t.Errorf("got Authorization = %q, want %q", gotAuth, "token secret123")
		}
	})

	t.Run("custom auth scheme", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
			Token:       "secret123",
			AuthScheme:  "Bearer",
		})

		_ = client.Get(context.Background(), "/test", nil)
		if gotAuth != "Bearer secret123" {
			t.Errorf("got Authorization = %q, want %q", gotAuth, "Bearer secret123")
		}
	})

	t.Run("handles 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "repository does not exist"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
		})

		var result map[string]string
		err := client.Get(context.Background(), "/missing", &result)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("got %T, want *APIError", err)
		}
		if apiErr.Message != "repository does not exist" {
			t.Errorf("got message %q, want the payload message", apiErr.Message)
		}
	})

	t.Run("401 becomes AuthError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "token is required"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
		})

		err := client.Get(context.Background(), "/api/v1/user", nil)
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("got %T (%v), want *AuthError", err, err)
		}
		if authErr.Reason != "token is required" {
			t.Errorf("got reason %q, want the payload message", authErr.Reason)
		}
		if !IsUnauthorized(err) {
			t.Error("IsUnauthorized() = false, want true")
		}
	})

	t.Run("429 becomes RateLimitError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
			MaxRetries:  1,
		})

		err := client.Get(context.Background(), "/api/v1/repos/search", nil)
		var rateErr *RateLimitError
		if !errors.As(err, &rateErr) {
			t.Fatalf("got %T (%v), want *RateLimitError", err, err)
		}
		if rateErr.RetryAfter != 7*time.Second {
			t.Errorf("RetryAfter = %v, want 7s", rateErr.RetryAfter)
		}
	})

	t.Run("error list payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]any{"errors": []string{"name required", "owner required"}})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
		})

		err := client.Get(context.Background(), "/api/v1/repos", nil)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("got %T, want *APIError", err)
		}
		if apiErr.Message != "name required; owner required" {
			t.Errorf("got message %q, want joined error list", apiErr.Message)
		}
	})

	t.Run("retries on 5xx", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts++
			if attempts < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "gitea",
			MaxRetries:  3,
			RetryWait:   1 * time.Millisecond,
		})

		var result map[string]string
		err := client.Get(context.Background(), "/test", &result)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if attempts != 3 {
			t.Errorf("got %d attempts, want 3", attempts)
		}
	})

	t.Run("trailing slash on base URL", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL + "/",
			ServiceName: "gitea",
		})

		_ = client.Get(context.Background(), "/api/v1/version", nil)
		if gotPath != "/api/v1/version" {
			t.Errorf("got path %q, want %q", gotPath, "/api/v1/version")
		}
	})
}
