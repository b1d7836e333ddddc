package domain

// Due describes when a task is due, as reported by the task API.
type Due struct {
	String string `json:"string,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Task is the subset of a remote task the assistant formats.
type Task struct {
	ID          string `json:"id,omitempty"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
	Due         *Due   `json:"due,omitempty"`
	Priority    int    `json:"priority,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	URL         string `json:"url,omitempty"`
}

// NewTask is the payload for creating a task.
type NewTask struct {
	Content   string `json:"content"`
	DueString string `json:"due_string,omitempty"`
	Priority  int    `json:"priority,omitempty"`
}
