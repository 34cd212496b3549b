package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	internalhttp "github.com/fivetwenty-io/appengine-client/internal/http"
)

// newTestClient creates a client talking to server without retries or
// authentication.
func newTestClient(server *httptest.Server, defaults endpoint.Defaults) *Client {
	httpClient := internalhttp.NewClient(server.URL, nil, internalhttp.WithRetryConfig(0, 0, 0))

	return NewWithExecutor(NewHTTPExecutor(httpClient, nil), defaults)
}

// recordedRequest captures what the test server received.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   map[string]interface{}
}

// recordingServer answers every request with response and records it.
type recordingServer struct {
	*httptest.Server

	mutex    sync.Mutex
	requests []recordedRequest
}

func newRecordingServer(t *testing.T, statusCode int, response interface{}) *recordingServer {
	t.Helper()

	recorder := &recordingServer{}
	recorder.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		recorded := recordedRequest{
			Method: request.Method,
			Path:   request.URL.EscapedPath(),
			Query:  request.URL.Query(),
		}

		if request.ContentLength > 0 {
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(request.Body).Decode(&recorded.Body))
		}

		recorder.mutex.Lock()
		recorder.requests = append(recorder.requests, recorded)
		recorder.mutex.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusCode)

		if response != nil {
			_ = json.NewEncoder(writer).Encode(response)
		}
	}))
	t.Cleanup(recorder.Close)

	return recorder
}

func (s *recordingServer) last(t *testing.T) recordedRequest {
	t.Helper()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	require.NotEmpty(t, s.requests, "server received no request")

	return s.requests[len(s.requests)-1]
}

func (s *recordingServer) count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.requests)
}

// recordingExecutor stores commands instead of sending them.
type recordingExecutor struct {
	mutex    sync.Mutex
	commands []*endpoint.Command
	err      error
}

func (e *recordingExecutor) Execute(_ context.Context, cmd *endpoint.Command) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.commands = append(e.commands, cmd)

	return e.err
}
