package integrationtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/randalmurphal/depbot"
	"github.com/randalmurphal/depbot/testutil"
)

// giteaServer fakes the slice of the Gitea API the pipeline talks to
// during autodiscovery: paginated repository listing for the token's user.
type giteaServer struct {
	*httptest.Server

	token string
	repos []string

	mu       sync.Mutex
	requests int
}

// newGiteaServer starts a fake Gitea accepting the given token and serving
// the given repository names. The server stops when the test ends.
func newGiteaServer(t *testing.T, token string, repos []string) *giteaServer {
	t.Helper()

	srv := &giteaServer{token: token, repos: repos}
	srv.Server = httptest.NewServer(http.HandlerFunc(srv.handle))
	t.Cleanup(srv.Close)
	return srv
}

func (s *giteaServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	if r.URL.Path != "/api/v1/user/repos" {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("Authorization") != "token "+s.token {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "token is required"}`)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 50
	}

	start := min((page-1)*limit, len(s.repos))
	end := min(start+limit, len(s.repos))

	type repo struct {
		FullName string `json:"full_name"`
	}
	out := make([]repo, 0, end-start)
	for _, name := range s.repos[start:end] {
		out = append(out, repo{FullName: name})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// requestCount reports how many requests the server has seen.
func (s *giteaServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// runPipeline executes a full ParseConfigs with console logs discarded.
// A successful result is closed when the test ends.
func runPipeline(t *testing.T, env map[string]string, args []string, opts ...depbot.Option) (*depbot.ResolvedConfig, error) {
	t.Helper()

	opts = append([]depbot.Option{depbot.WithLogWriter(io.Discard)}, opts...)
	resolved, err := depbot.New(opts...).ParseConfigs(testutil.TestContext(t), env, args)
	if err == nil {
		t.Cleanup(func() { resolved.Close() })
	}
	return resolved, err
}
