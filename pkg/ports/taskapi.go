package ports

import (
	"context"

	"github.com/aretw0/todomcp/pkg/domain"
)

// TaskAPI is the task-management service. Each method performs exactly one
// outbound call and is never retried.
type TaskAPI interface {
	CreateTask(ctx context.Context, task domain.NewTask) (domain.Task, error)

	// ListTasks returns tasks matching filter. An empty filter lists all tasks.
	ListTasks(ctx context.Context, filter string) ([]domain.Task, error)
}
