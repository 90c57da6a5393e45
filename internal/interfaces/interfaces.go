package interfaces

import (
	"context"

	"github.com/igorsal/api-console/internal/models"
)

// Dispatcher routes a console request to the executor for its method
type Dispatcher interface {
	Dispatch(ctx context.Context, cfg models.RequestConfig) (*models.ExecutionResult, error)
}

// Importer drives vendor sends, single and bulk
type Importer interface {
	SendProduct(ctx context.Context, req models.SendRequest) (*models.SendResult, error)
	SendInventoryAdjustment(ctx context.Context, req models.SendRequest) (*models.SendResult, error)
	ImportProducts(ctx context.Context, req models.ProductImportRequest) (*models.ProductImportResult, error)
	AdjustInventory(ctx context.Context, req models.InventoryImportRequest) (*models.InventoryImportResult, error)
}

// VendorClient issues calls against the products/inventory vendor API. The
// header set is built once by the caller and shared across calls.
type VendorClient interface {
	CreateProduct(ctx context.Context, baseURL string, headers map[string]string, payload any) (*models.UpstreamReply, error)
	AdjustInventory(ctx context.Context, url string, headers map[string]string, payload any) (*models.UpstreamReply, error)
}

// Sender issues exactly one HTTP call and reports any reachable response as data
type Sender interface {
	Send(ctx context.Context, call models.UpstreamCall) (*models.UpstreamReply, error)
}

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// MetricsCollector defines the interface for collecting metrics
type MetricsCollector interface {
	IncrementCounter(name string, labels map[string]string)
	RecordDuration(name string, duration float64, labels map[string]string)
	SetGauge(name string, value float64, labels map[string]string)
}

// CircuitBreaker defines the interface for circuit breaker pattern
type CircuitBreaker interface {
	Execute(req func() (interface{}, error)) (interface{}, error)
	Name() string
	State() string
}
