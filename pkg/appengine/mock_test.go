package appengine_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fivetwenty-io/appengine-client/pkg/appengine"
)

// MockClient implements appengine.Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Apps() appengine.AppsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(appengine.AppsClient)
}

func (m *MockClient) Services() appengine.ServicesClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(appengine.ServicesClient)
}

func (m *MockClient) Versions() appengine.VersionsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(appengine.VersionsClient)
}

func (m *MockClient) Instances() appengine.InstancesClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(appengine.InstancesClient)
}

func (m *MockClient) Operations() appengine.OperationsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(appengine.OperationsClient)
}

func (m *MockClient) Locations() appengine.LocationsClient {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(appengine.LocationsClient)
}

func (m *MockClient) SetKey(key string) {
	m.Called(key)
}

func (m *MockClient) SetQuotaUser(quotaUser string) {
	m.Called(quotaUser)
}

// MockAppsClient implements appengine.AppsClient for testing.
type MockAppsClient struct {
	mock.Mock
}

func (m *MockAppsClient) Get(ctx context.Context, appsID string, opts *appengine.CallOptions) (*appengine.Application, error) {
	args := m.Called(ctx, appsID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.Application), args.Error(1)
}

func (m *MockAppsClient) Create(ctx context.Context, app *appengine.Application, opts *appengine.CallOptions) (*appengine.Operation, error) {
	args := m.Called(ctx, app, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.Operation), args.Error(1)
}

func (m *MockAppsClient) Patch(ctx context.Context, appsID string, app *appengine.Application, opts *appengine.CallOptions) (*appengine.Operation, error) {
	args := m.Called(ctx, appsID, app, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.Operation), args.Error(1)
}

func (m *MockAppsClient) Repair(ctx context.Context, appsID string, request *appengine.RepairApplicationRequest, opts *appengine.CallOptions) (*appengine.Operation, error) {
	args := m.Called(ctx, appsID, request, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.Operation), args.Error(1)
}

// MockInstancesClient implements appengine.InstancesClient for testing.
type MockInstancesClient struct {
	mock.Mock
}

func (m *MockInstancesClient) List(ctx context.Context, appsID, servicesID, versionsID string, opts *appengine.CallOptions) (*appengine.ListInstancesResponse, error) {
	args := m.Called(ctx, appsID, servicesID, versionsID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.ListInstancesResponse), args.Error(1)
}

func (m *MockInstancesClient) Get(ctx context.Context, appsID, servicesID, versionsID, instancesID string, opts *appengine.CallOptions) (*appengine.Instance, error) {
	args := m.Called(ctx, appsID, servicesID, versionsID, instancesID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.Instance), args.Error(1)
}

func (m *MockInstancesClient) Delete(ctx context.Context, appsID, servicesID, versionsID, instancesID string, opts *appengine.CallOptions) (*appengine.Operation, error) {
	args := m.Called(ctx, appsID, servicesID, versionsID, instancesID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.Operation), args.Error(1)
}

func (m *MockInstancesClient) Debug(ctx context.Context, appsID, servicesID, versionsID, instancesID string, request *appengine.DebugInstanceRequest, opts *appengine.CallOptions) (*appengine.Operation, error) {
	args := m.Called(ctx, appsID, servicesID, versionsID, instancesID, request, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appengine.Operation), args.Error(1)
}

// MockLogger records log calls.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}
