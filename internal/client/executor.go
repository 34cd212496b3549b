package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/internal/http"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// Executor turns a built command into a network exchange. On success the
// response body is decoded into cmd.Response.
type Executor interface {
	Execute(ctx context.Context, cmd *endpoint.Command) error
}

// HTTPExecutor executes commands over the App Engine REST transport.
type HTTPExecutor struct {
	httpClient   *http.Client
	interceptors *appengine.InterceptorChain
}

// NewHTTPExecutor creates an executor. interceptors may be nil.
func NewHTTPExecutor(httpClient *http.Client, interceptors *appengine.InterceptorChain) *HTTPExecutor {
	if interceptors == nil {
		interceptors = appengine.NewInterceptorChain()
	}

	return &HTTPExecutor{
		httpClient:   httpClient,
		interceptors: interceptors,
	}
}

// Execute implements Executor. Transport and API errors are returned as
// produced by the transport.
func (e *HTTPExecutor) Execute(ctx context.Context, cmd *endpoint.Command) error {
	req := &appengine.Request{
		Operation: cmd.Name(),
		Method:    cmd.Method,
		Path:      cmd.Path(),
	}

	if cmd.Request != nil {
		body, err := json.Marshal(cmd.Request)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", cmd.RequestSchema, err)
		}

		req.Body = body
	}

	err := e.interceptors.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return err
	}

	httpReq := &http.Request{
		Method: req.Method,
		Path:   req.Path,
		Query:  cmd.Query,
	}

	if len(req.Body) > 0 {
		httpReq.Body = req.Body
	}

	if len(req.Headers) > 0 {
		httpReq.Headers = make(map[string]string, len(req.Headers))
		for key := range req.Headers {
			httpReq.Headers[key] = req.Headers.Get(key)
		}
	}

	resp, err := e.httpClient.Do(ctx, httpReq)

	interceptResp := &appengine.Response{Error: err}
	if resp != nil {
		interceptResp.StatusCode = resp.StatusCode
		interceptResp.Body = resp.Body
	}

	interceptErr := e.interceptors.ExecuteResponseInterceptors(ctx, req, interceptResp)

	if err != nil {
		return err
	}

	if interceptErr != nil {
		return interceptErr
	}

	if cmd.Response == nil || len(resp.Body) == 0 {
		return nil
	}

	err = json.Unmarshal(resp.Body, cmd.Response)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", cmd.ResponseSchema, err)
	}

	return nil
}
