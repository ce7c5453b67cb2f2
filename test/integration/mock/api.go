package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is one call received by ApiMock.
type Request struct {
	Method  string
	Path    string
	Headers http.Header
	Body    map[string]any
}

type cannedResponse struct {
	status int
	body   string
}

// ApiMock is a fake third-party HTTP API that records what it receives.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  []Request
	responses map[string]cannedResponse
}

// NewApiServer starts a recording server. Unknown routes answer 200 with an empty object.
func NewApiServer() *ApiMock {
	a := &ApiMock{responses: map[string]cannedResponse{}}
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
	return a
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	a.mu.Lock()
	a.requests = append(a.requests, Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: r.Header.Clone(),
		Body:    body,
	})
	response, ok := a.responses[r.Method+" "+r.URL.Path]
	index := len(a.requests)
	a.mu.Unlock()

	if !ok {
		response = cannedResponse{status: http.StatusOK, body: fmt.Sprintf(`{"id":"mock-%d"}`, index)}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.status)
	_, _ = w.Write([]byte(response.body))
}

// URL returns the base URL of the server.
func (a *ApiMock) URL() string {
	return a.server.URL
}

// SetResponse fixes the answer for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

// Requests returns the calls received for method and path.
func (a *ApiMock) Requests(method, path string) []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []Request
	for _, request := range a.requests {
		if request.Method == method && request.Path == path {
			out = append(out, request)
		}
	}
	return out
}

// Reset forgets recorded calls and canned responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = nil
	a.responses = map[string]cannedResponse{}
}

// Close shuts the server down.
func (a *ApiMock) Close() {
	a.server.Close()
}
