package appengine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/appengine-client/internal/constants"
)

// BatchCall performs one queued API call against a client.
type BatchCall func(ctx context.Context, client Client) (interface{}, error)

// BatchOperation represents a single operation in a batch.
type BatchOperation struct {
	ID string
	// Name is the dotted API operation name, used for logging only.
	Name     string
	Call     BatchCall
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Name     string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor runs queued operations with bounded concurrency.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the per-operation timeout.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs a batch of operations. Results are returned in queue order
// regardless of completion order.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			results[index] = *b.run(ctx, operation)
		}(index, operation)
	}

	waitGroup.Wait()

	return results, nil
}

// Submit runs a single operation asynchronously. The returned channel
// receives exactly one result and is then closed.
func (b *BatchExecutor) Submit(ctx context.Context, operation BatchOperation) <-chan BatchResult {
	resultCh := make(chan BatchResult, 1)

	go func() {
		defer close(resultCh)

		resultCh <- *b.run(ctx, operation)
	}()

	return resultCh
}

func (b *BatchExecutor) run(ctx context.Context, operation BatchOperation) *BatchResult {
	opCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	result := b.executeOperation(opCtx, operation)
	result.Duration = time.Since(start)

	if operation.Callback != nil {
		operation.Callback(result)
	}

	return result
}

func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	result := &BatchResult{
		ID:   operation.ID,
		Name: operation.Name,
	}

	if operation.Call == nil {
		result.Error = fmt.Errorf("%w: %s", ErrUnsupportedOperation, operation.ID)

		return result
	}

	data, err := operation.Call(ctx, b.client)
	result.Success = err == nil
	result.Data = data
	result.Error = err

	return result
}

// BatchBuilder helps build batch operations. An empty id is replaced by a
// random UUID.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

func (b *BatchBuilder) add(id, name string, call BatchCall) *BatchBuilder {
	return b.AddOperation(BatchOperation{ID: id, Name: name, Call: call})
}

// AddGetApp queues apps.get.
func (b *BatchBuilder) AddGetApp(id, appsID string, opts *CallOptions) *BatchBuilder {
	return b.add(id, "apps.get", func(ctx context.Context, client Client) (interface{}, error) {
		return client.Apps().Get(ctx, appsID, opts)
	})
}

// AddGetService queues apps.services.get.
func (b *BatchBuilder) AddGetService(id, appsID, servicesID string, opts *CallOptions) *BatchBuilder {
	return b.add(id, "apps.services.get", func(ctx context.Context, client Client) (interface{}, error) {
		return client.Services().Get(ctx, appsID, servicesID, opts)
	})
}

// AddGetVersion queues apps.services.versions.get.
func (b *BatchBuilder) AddGetVersion(id, appsID, servicesID, versionsID string, opts *CallOptions) *BatchBuilder {
	return b.add(id, "apps.services.versions.get", func(ctx context.Context, client Client) (interface{}, error) {
		return client.Versions().Get(ctx, appsID, servicesID, versionsID, opts)
	})
}

// AddDeleteVersion queues apps.services.versions.delete.
func (b *BatchBuilder) AddDeleteVersion(id, appsID, servicesID, versionsID string, opts *CallOptions) *BatchBuilder {
	return b.add(id, "apps.services.versions.delete", func(ctx context.Context, client Client) (interface{}, error) {
		return client.Versions().Delete(ctx, appsID, servicesID, versionsID, opts)
	})
}

// AddGetInstance queues apps.services.versions.instances.get.
func (b *BatchBuilder) AddGetInstance(id, appsID, servicesID, versionsID, instancesID string, opts *CallOptions) *BatchBuilder {
	return b.add(id, "apps.services.versions.instances.get", func(ctx context.Context, client Client) (interface{}, error) {
		return client.Instances().Get(ctx, appsID, servicesID, versionsID, instancesID, opts)
	})
}

// AddDeleteInstance queues apps.services.versions.instances.delete.
func (b *BatchBuilder) AddDeleteInstance(id, appsID, servicesID, versionsID, instancesID string, opts *CallOptions) *BatchBuilder {
	return b.add(id, "apps.services.versions.instances.delete", func(ctx context.Context, client Client) (interface{}, error) {
		return client.Instances().Delete(ctx, appsID, servicesID, versionsID, instancesID, opts)
	})
}

// AddGetOperation queues apps.operations.get.
func (b *BatchBuilder) AddGetOperation(id, appsID, operationsID string, opts *CallOptions) *BatchBuilder {
	return b.add(id, "apps.operations.get", func(ctx context.Context, client Client) (interface{}, error) {
		return client.Operations().Get(ctx, appsID, operationsID, opts)
	})
}

// AddOperation adds a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	if operation.ID == "" {
		operation.ID = uuid.NewString()
	}

	b.operations = append(b.operations, operation)

	return b
}

// Build returns the built operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}
