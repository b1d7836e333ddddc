package actions

import (
	"fmt"
	"strings"

	"github.com/aretw0/todomcp/pkg/domain"
)

// PriorityMarker is repeated once per priority level.
const PriorityMarker = "★"

// FormatCreated renders the confirmation for a created task.
func FormatCreated(task domain.Task) string {
	due := "Not specified"
	if task.Due != nil && task.Due.String != "" {
		due = task.Due.String
	}

	var b strings.Builder
	b.WriteString("Task created successfully!\n")
	fmt.Fprintf(&b, "Content: %s\n", task.Content)
	fmt.Fprintf(&b, "Due: %s", due)
	if task.URL != "" {
		fmt.Fprintf(&b, "\nURL: %s", task.URL)
	}
	return b.String()
}

// FormatTasks renders tasks as numbered blocks. An empty list yields an
// explicit "no tasks found" line naming the filter.
func FormatTasks(filter string, tasks []domain.Task) string {
	label := filter
	if label == "" {
		label = "all"
	}

	if len(tasks) == 0 {
		return fmt.Sprintf("No tasks found matching filter: '%s'", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Todoist tasks for filter '%s':\n", label)
	for i, task := range tasks {
		due := "No due date"
		if task.Due != nil {
			due = "Not specified"
			if task.Due.String != "" {
				due = task.Due.String
			}
		}

		fmt.Fprintf(&b, "\n%d. %s\n", i+1, task.Content)
		fmt.Fprintf(&b, "   Due: %s\n", due)
		fmt.Fprintf(&b, "   Priority: %s\n", PriorityStars(task.Priority))
		if task.ProjectID != "" {
			fmt.Fprintf(&b, "   Project ID: %s\n", task.ProjectID)
		}
	}
	return b.String()
}

// PriorityStars renders priority 1-4 as that many markers. Values outside
// the range are clamped.
func PriorityStars(priority int) string {
	if priority < 1 {
		priority = 1
	}
	if priority > 4 {
		priority = 4
	}
	return strings.Repeat(PriorityMarker, priority)
}
