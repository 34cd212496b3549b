package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// ServicesClient implements appengine.ServicesClient.
type ServicesClient struct {
	client *Client
}

// NewServicesClient creates a new services client.
func NewServicesClient(client *Client) *ServicesClient {
	return &ServicesClient{client: client}
}

// List implements appengine.ServicesClient.List.
func (c *ServicesClient) List(ctx context.Context, appsID string, opts *appengine.CallOptions) (*appengine.ListServicesResponse, error) {
	list, err := invoke[appengine.ListServicesResponse](ctx, c.client, endpoint.ServicesList, []string{appsID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}

	return list, nil
}

// Get implements appengine.ServicesClient.Get.
func (c *ServicesClient) Get(ctx context.Context, appsID, servicesID string, opts *appengine.CallOptions) (*appengine.Service, error) {
	service, err := invoke[appengine.Service](ctx, c.client, endpoint.ServicesGet, []string{appsID, servicesID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("getting service: %w", err)
	}

	return service, nil
}

// Patch implements appengine.ServicesClient.Patch.
func (c *ServicesClient) Patch(
	ctx context.Context,
	appsID, servicesID string,
	service *appengine.Service,
	opts *appengine.CallOptions,
) (*appengine.Operation, error) {
	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.ServicesPatch, []string{appsID, servicesID}, service, opts)
	if err != nil {
		return nil, fmt.Errorf("updating service: %w", err)
	}

	return operation, nil
}

// Delete implements appengine.ServicesClient.Delete.
func (c *ServicesClient) Delete(ctx context.Context, appsID, servicesID string, opts *appengine.CallOptions) (*appengine.Operation, error) {
	operation, err := invoke[appengine.Operation](ctx, c.client, endpoint.ServicesDelete, []string{appsID, servicesID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("deleting service: %w", err)
	}

	return operation, nil
}
