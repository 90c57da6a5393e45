package executor

import (
	"context"
	"fmt"

	"github.com/igorsal/api-console/internal/activity"
	"github.com/igorsal/api-console/internal/interfaces"
	"github.com/igorsal/api-console/internal/models"
)

// UnsupportedMethodError is returned for methods outside GET, POST, PUT,
// PATCH and DELETE.
type UnsupportedMethodError struct {
	Method models.Method
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported HTTP method: %q", string(e.Method))
}

// Dispatcher routes console requests to the executor for their method
type Dispatcher struct {
	executors map[models.Method]*Executor
}

var _ interfaces.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher creates one executor per supported method
func NewDispatcher(sender interfaces.Sender, narrator *activity.Narrator, logger interfaces.Logger) *Dispatcher {
	methods := []models.Method{
		models.MethodGet,
		models.MethodPost,
		models.MethodPut,
		models.MethodPatch,
		models.MethodDelete,
	}

	executors := make(map[models.Method]*Executor, len(methods))
	for _, m := range methods {
		executors[m] = NewExecutor(m, sender, narrator, logger)
	}

	return &Dispatcher{executors: executors}
}

// Dispatch routes cfg by its exact upper-case method. Unsupported methods fail
// before any activity is produced or call is made.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg models.RequestConfig) (*models.ExecutionResult, error) {
	ex, ok := d.executors[cfg.Method]
	if !ok {
		return nil, &UnsupportedMethodError{Method: cfg.Method}
	}
	return ex.Execute(ctx, cfg)
}
