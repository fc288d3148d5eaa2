package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// MockEdit records a PATCH against a pull request
type MockEdit struct {
	Number int
	Base   *string
	Body   *string
}

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	// PRs maps pull request numbers to PR data
	PRs map[int]*github.PullRequest
	// Edits stores every PATCH received, in order
	Edits []MockEdit
	// ErrorResponses maps "METHOD /path" to a status code to return instead
	ErrorResponses map[string]int
	// Login is the authenticated user returned by GET /user
	Login string
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	mu sync.Mutex
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		PRs:            make(map[int]*github.PullRequest),
		ErrorResponses: make(map[string]int),
		Login:          "octocat",
		Owner:          "owner",
		Repo:           "repo",
	}
}

// AddPR stores a pull request built from sample data
func (c *MockGitHubServerConfig) AddPR(data SamplePRData) *github.PullRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data.Author == "" {
		data.Author = c.Login
	}
	pr := NewSamplePullRequest(data)
	c.PRs[data.Number] = pr
	return pr
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub API
// endpoints the pull request host uses
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	mux := http.NewServeMux()
	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls"

	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if config.fail(w, r) {
			return
		}
		writeJSON(w, http.StatusOK, &github.User{Login: github.String(config.Login)})
	})

	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		if config.fail(w, r) {
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		config.list(w, r)
	})

	mux.HandleFunc(basePath+"/", func(w http.ResponseWriter, r *http.Request) {
		if config.fail(w, r) {
			return
		}
		number, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, basePath+"/"))
		if err != nil {
			http.Error(w, "Invalid PR number", http.StatusBadRequest)
			return
		}

		switch r.Method {
		case http.MethodGet:
			config.mu.Lock()
			pr, ok := config.PRs[number]
			config.mu.Unlock()
			if !ok {
				http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
				return
			}
			writeJSON(w, http.StatusOK, pr)
		case http.MethodPatch:
			// The API sends base as a plain string, not a branch object
			var update struct {
				Body *string `json:"body,omitempty"`
				Base *string `json:"base,omitempty"`
			}
			if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
				http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
				return
			}

			config.mu.Lock()
			defer config.mu.Unlock()
			pr, ok := config.PRs[number]
			if !ok {
				http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
				return
			}
			if update.Body != nil {
				pr.Body = update.Body
			}
			if update.Base != nil {
				if pr.Base == nil {
					pr.Base = &github.PullRequestBranch{}
				}
				pr.Base.Ref = update.Base
			}
			config.Edits = append(config.Edits, MockEdit{Number: number, Base: update.Base, Body: update.Body})
			writeJSON(w, http.StatusOK, pr)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(func() { server.Close() })
	return server
}

// list answers GET /pulls, honouring the state, head and pagination
// parameters. Results are newest first, like the real API.
func (c *MockGitHubServerConfig) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state := query.Get("state")
	if state == "" {
		state = "open"
	}
	head := query.Get("head")

	c.mu.Lock()
	var matched []*github.PullRequest
	for _, pr := range c.PRs {
		if state != "all" && pr.GetState() != state {
			continue
		}
		headOwner := pr.GetHead().GetRepo().GetOwner().GetLogin()
		if headOwner == "" {
			headOwner = c.Owner
		}
		if head != "" && headOwner+":"+pr.GetHead().GetRef() != head {
			continue
		}
		matched = append(matched, pr)
	}
	c.mu.Unlock()
	sort.Slice(matched, func(i, j int) bool { return matched[i].GetNumber() > matched[j].GetNumber() })

	perPage, _ := strconv.Atoi(query.Get("per_page"))
	if perPage <= 0 {
		perPage = 30
	}
	page, _ := strconv.Atoi(query.Get("page"))
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}

	if end < len(matched) {
		next := *r.URL
		q := next.Query()
		q.Set("page", strconv.Itoa(page+1))
		next.RawQuery = q.Encode()
		w.Header().Set("Link", fmt.Sprintf(`<http://%s%s>; rel="next"`, r.Host, next.String()))
	}
	writeJSON(w, http.StatusOK, matched[start:end])
}

func (c *MockGitHubServerConfig) fail(w http.ResponseWriter, r *http.Request) bool {
	c.mu.Lock()
	status, ok := c.ErrorResponses[r.Method+" "+r.URL.Path]
	c.mu.Unlock()
	if !ok {
		return false
	}
	http.Error(w, `{"message":"mock failure"}`, status)
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMockGitHubClient creates a GitHub client configured to use a mock server
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	if config == nil {
		config = NewMockGitHubServerConfig()
	}
	server := NewMockGitHubServer(t, config)
	client := github.NewClient(nil)
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}
