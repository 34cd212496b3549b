package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// VersionsClient implements appengine.VersionsClient.
type VersionsClient struct {
	client *Client
}

// NewVersionsClient creates a new versions client.
func NewVersionsClient(client *Client) *VersionsClient {
	return &VersionsClient{client: client}
}

// List implements appengine.VersionsClient.List.
func (c *VersionsClient) List(
	ctx context.Context,
	appsID, servicesID string,
	opts *appengine.CallOptions,
) (*appengine.ListVersionsResponse, error) {
	list, err := invoke[appengine.ListVersionsResponse](ctx, c.client, endpoint.VersionsList, []string{appsID, servicesID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	return list, nil
}

// Get implements appengine.VersionsClient.Get.
func (c *VersionsClient) Get(
	ctx context.Context,
	appsID, servicesID, versionsID string,
	opts *appengine.CallOptions,
) (*appengine.Version, error) {
	ids := []string{appsID, servicesID, versionsID}

	version, err := invoke[appengine.Version](ctx, c.client, endpoint.VersionsGet, ids, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("getting version: %w", err)
	}

	return version, nil
}

// Create implements appengine.VersionsClient.Create.
func (c *VersionsClient) Create(
	ctx context.Context,
	appsID, servicesID string,
	version *appengine.Version,
	opts *appengine.CallOptions,
) (*appengine.Operation, error) {
	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.VersionsCreate, []string{appsID, servicesID}, version, opts)
	if err != nil {
		return nil, fmt.Errorf("creating version: %w", err)
	}

	return operation, nil
}

// Patch implements appengine.VersionsClient.Patch.
func (c *VersionsClient) Patch(
	ctx context.Context,
	appsID, servicesID, versionsID string,
	version *appengine.Version,
	opts *appengine.CallOptions,
) (*appengine.Operation, error) {
	ids := []string{appsID, servicesID, versionsID}

	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.VersionsPatch, ids, version, opts)
	if err != nil {
		return nil, fmt.Errorf("updating version: %w", err)
	}

	return operation, nil
}

// Delete implements appengine.VersionsClient.Delete.
func (c *VersionsClient) Delete(
	ctx context.Context,
	appsID, servicesID, versionsID string,
	opts *appengine.CallOptions,
) (*appengine.Operation, error) {
	ids := []string{appsID, servicesID, versionsID}

	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.VersionsDelete, ids, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("deleting version: %w", err)
	}

	return operation, nil
}
