package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// AppsClient implements appengine.AppsClient.
type AppsClient struct {
	client *Client
}

// NewAppsClient creates a new apps client.
func NewAppsClient(client *Client) *AppsClient {
	return &AppsClient{client: client}
}

// Get implements appengine.AppsClient.Get.
func (c *AppsClient) Get(ctx context.Context, appsID string, opts *appengine.CallOptions) (*appengine.Application, error) {
	app, err := invoke[appengine.Application](ctx, c.client, endpoint.AppsGet, []string{appsID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("getting app: %w", err)
	}

	return app, nil
}

// Create implements appengine.AppsClient.Create.
func (c *AppsClient) Create(ctx context.Context, app *appengine.Application, opts *appengine.CallOptions) (*appengine.Operation, error) {
	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.AppsCreate, nil, app, opts)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	return operation, nil
}

// Patch implements appengine.AppsClient.Patch. Only the fields named by the
// updateMask option are changed.
func (c *AppsClient) Patch(ctx context.Context, appsID string, app *appengine.Application, opts *appengine.CallOptions) (*appengine.Operation, error) {
	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.AppsPatch, []string{appsID}, app, opts)
	if err != nil {
		return nil, fmt.Errorf("updating app: %w", err)
	}

	return operation, nil
}

// Repair implements appengine.AppsClient.Repair.
func (c *AppsClient) Repair(
	ctx context.Context,
	appsID string,
	request *appengine.RepairApplicationRequest,
	opts *appengine.CallOptions,
) (*appengine.Operation, error) {
	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.AppsRepair, []string{appsID}, request, opts)
	if err != nil {
		return nil, fmt.Errorf("repairing app: %w", err)
	}

	return operation, nil
}
