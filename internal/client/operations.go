package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// OperationsClient implements appengine.OperationsClient.
type OperationsClient struct {
	client       *Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewOperationsClient creates a new operations client.
func NewOperationsClient(client *Client) *OperationsClient {
	return &OperationsClient{
		client:       client,
		pollInterval: constants.DefaultPollInterval,
		pollTimeout:  constants.DefaultOperationPollTimeout,
	}
}

// List implements appengine.OperationsClient.List.
func (c *OperationsClient) List(ctx context.Context, appsID string, opts *appengine.CallOptions) (*appengine.ListOperationsResponse, error) {
	list, err := invoke[appengine.ListOperationsResponse](ctx, c.client, endpoint.OperationsList, []string{appsID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}

	return list, nil
}

// Get implements appengine.OperationsClient.Get.
func (c *OperationsClient) Get(ctx context.Context, appsID, operationsID string, opts *appengine.CallOptions) (*appengine.Operation, error) {
	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.OperationsGet, []string{appsID, operationsID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("getting operation: %w", err)
	}

	return operation, nil
}

// Wait implements appengine.OperationsClient.Wait.
// operationsID may also be the full resource name returned in
// Operation.Name. An operation that finished with an error status is
// returned together with an *appengine.OperationError.
func (c *OperationsClient) Wait(ctx context.Context, appsID, operationsID string) (*appengine.Operation, error) {
	operationsID = operationID(operationsID)
	if operationsID == "" {
		return nil, appengine.ErrOperationNameRequired
	}

	pollCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	operation, err := c.Get(pollCtx, appsID, operationsID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting operation status: %w", err)
	}

	if operation.Done {
		return operationResult(operation)
	}

	for {
		select {
		case <-pollCtx.Done():
			return operation, fmt.Errorf("timeout waiting for operation to complete: %w", pollCtx.Err())
		case <-ticker.C:
			latest, err := c.Get(pollCtx, appsID, operationsID, nil)
			if err != nil {
				if pollCtx.Err() != nil {
					return operation, fmt.Errorf("timeout waiting for operation to complete: %w", pollCtx.Err())
				}

				return nil, fmt.Errorf("getting operation status: %w", err)
			}

			operation = latest
			if operation.Done {
				return operationResult(operation)
			}
		}
	}
}

func operationResult(operation *appengine.Operation) (*appengine.Operation, error) {
	if operation.Error != nil {
		return operation, &appengine.OperationError{Operation: operation}
	}

	return operation, nil
}

// operationID strips the "apps/{app}/operations/" prefix from a full
// operation name.
func operationID(name string) string {
	if index := strings.LastIndex(name, "/"); index >= 0 {
		return name[index+1:]
	}

	return name
}
