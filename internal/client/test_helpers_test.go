package client_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/remp-client/internal/client"
	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// RecordedRequest is what the fake CRM saw for one call.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          string
}

// FakeCRM serves canned responses per path and records every request.
type FakeCRM struct {
	mu        sync.Mutex
	requests  []RecordedRequest
	responses map[string]CannedResponse
}

// CannedResponse is returned for a path.
type CannedResponse struct {
	StatusCode int
	Body       string
}

// NewFakeCRM starts a fake CRM server and returns a client bound to it.
func NewFakeCRM(t *testing.T, token string, responses map[string]CannedResponse) (*FakeCRM, *Client) {
	t.Helper()

	fake := &FakeCRM{responses: responses}

	server := httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(server.Close)

	client, err := New(&remp.Config{Server: server.URL, Token: token})
	require.NoError(t, err)

	return fake, client
}

func (f *FakeCRM) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:        request.Method,
		Path:          request.URL.Path,
		RawQuery:      request.URL.RawQuery,
		Authorization: request.Header.Get("Authorization"),
		ContentType:   request.Header.Get("Content-Type"),
		Body:          string(body),
	})
	canned, ok := f.responses[request.URL.Path]
	f.mu.Unlock()

	if !ok {
		writer.WriteHeader(http.StatusNotFound)

		return
	}

	if canned.StatusCode != 0 {
		writer.WriteHeader(canned.StatusCode)
	}

	_, _ = writer.Write([]byte(canned.Body))
}

// Requests returns a copy of the recorded requests.
func (f *FakeCRM) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]RecordedRequest(nil), f.requests...)
}

// Last returns the most recent request.
func (f *FakeCRM) Last(t *testing.T) RecordedRequest {
	t.Helper()

	requests := f.Requests()
	require.NotEmpty(t, requests)

	return requests[len(requests)-1]
}
