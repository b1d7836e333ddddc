package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
	"github.com/aretw0/todomcp/pkg/registry"
)

// Register adds a handler for every action of domain.DefaultSchema to reg.
func Register(reg *registry.Registry, api ports.TaskAPI) {
	reg.Register(domain.ActionCreateTask, CreateTaskHandler(api))
	reg.Register(domain.ActionListTasks, ListTasksHandler(api))
}

// CreateTaskHandler returns the create_task handler.
func CreateTaskHandler(api ports.TaskAPI) registry.Handler {
	return func(ctx context.Context, params map[string]any) (string, error) {
		var p CreateTaskParams
		if err := decodeParams(params, &p); err != nil {
			return "", err
		}
		return CreateTask(ctx, api, p)
	}
}

// CreateTask validates p and creates the task.
// Empty content is rejected before any network call.
func CreateTask(ctx context.Context, api ports.TaskAPI, p CreateTaskParams) (string, error) {
	content := strings.TrimSpace(p.Content)
	if content == "" {
		return "", &domain.ValidationError{Param: "content", Reason: "no task content provided"}
	}
	if p.Priority == 0 {
		p.Priority = 1
	}
	if p.Priority < 1 || p.Priority > 4 {
		return "", &domain.ValidationError{Param: "priority", Reason: fmt.Sprintf("priority %d out of range 1-4", p.Priority)}
	}

	task, err := api.CreateTask(ctx, domain.NewTask{
		Content:   content,
		DueString: p.DueString,
		Priority:  p.Priority,
	})
	if err != nil {
		return "", err
	}
	return FormatCreated(task), nil
}

// ListTasksHandler returns the list_tasks handler.
func ListTasksHandler(api ports.TaskAPI) registry.Handler {
	return func(ctx context.Context, params map[string]any) (string, error) {
		var p ListTasksParams
		if err := decodeParams(params, &p); err != nil {
			return "", err
		}
		return ListTasks(ctx, api, p)
	}
}

// ListTasks fetches and formats tasks. The filter is not sent when it is
// empty or "all".
func ListTasks(ctx context.Context, api ports.TaskAPI, p ListTasksParams) (string, error) {
	filter := strings.TrimSpace(p.Filter)
	query := filter
	if strings.EqualFold(query, "all") {
		query = ""
	}

	tasks, err := api.ListTasks(ctx, query)
	if err != nil {
		return "", err
	}
	return FormatTasks(filter, tasks), nil
}
