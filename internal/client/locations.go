package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/appengine-client/internal/endpoint"
	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// LocationsClient implements appengine.LocationsClient.
type LocationsClient struct {
	client *Client
}

// NewLocationsClient creates a new locations client.
func NewLocationsClient(client *Client) *LocationsClient {
	return &LocationsClient{client: client}
}

// List implements appengine.LocationsClient.List.
func (c *LocationsClient) List(ctx context.Context, appsID string, opts *appengine.CallOptions) (*appengine.ListLocationsResponse, error) {
	list, err := invoke[appengine.ListLocationsResponse](ctx, c.client, endpoint.LocationsList, []string{appsID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}

	return list, nil
}

// Get implements appengine.LocationsClient.Get.
func (c *LocationsClient) Get(ctx context.Context, appsID, locationsID string, opts *appengine.CallOptions) (*appengine.Location, error) {
	location, err := invoke[appengine.Location](ctx, c.client, endpoint.LocationsGet, []string{appsID, locationsID}, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}

	return location, nil
}
