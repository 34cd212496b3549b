package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// InstancesClient implements appengine.InstancesClient.
type InstancesClient struct {
	client *Client
}

// NewInstancesClient creates a new instances client.
func NewInstancesClient(client *Client) *InstancesClient {
	return &InstancesClient{client: client}
}

// List implements appengine.InstancesClient.List.
func (c *InstancesClient) List(
	ctx context.Context,
	appsID, servicesID, versionsID string,
	opts *appengine.CallOptions,
) (*appengine.ListInstancesResponse, error) {
	ids := []string{appsID, servicesID, versionsID}

	list, err := invoke[appengine.ListInstancesResponse](ctx, c.client, endpoint.InstancesList, ids, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}

	return list, nil
}

// Get implements appengine.InstancesClient.Get.
func (c *InstancesClient) Get(
	ctx context.Context,
	appsID, servicesID, versionsID, instancesID string,
	opts *appengine.CallOptions,
) (*appengine.Instance, error) {
	ids := []string{appsID, servicesID, versionsID, instancesID}

	instance, err := invoke[appengine.Instance](ctx, c.client, endpoint.InstancesGet, ids, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("getting instance: %w", err)
	}

	return instance, nil
}

// Delete implements appengine.InstancesClient.Delete.
func (c *InstancesClient) Delete(
	ctx context.Context,
	appsID, servicesID, versionsID, instancesID string,
	opts *appengine.CallOptions,
) (*appengine.Operation, error) {
	ids := []string{appsID, servicesID, versionsID, instancesID}

	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.InstancesDelete, ids, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("deleting instance: %w", err)
	}

	return operation, nil
}

// Debug implements appengine.InstancesClient.Debug. Only flexible
// environment instances can be put into debug mode.
func (c *InstancesClient) Debug(
	ctx context.Context,
	appsID, servicesID, versionsID, instancesID string,
	request *appengine.DebugInstanceRequest,
	opts *appengine.CallOptions,
) (*appengine.Operation, error) {
	ids := []string{appsID, servicesID, versionsID, instancesID}

	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.InstancesDebug, ids, request, opts)
	if err != nil {
		return nil, fmt.Errorf("debugging instance: %w", err)
	}

	return operation, nil
}
