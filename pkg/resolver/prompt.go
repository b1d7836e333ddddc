package resolver

import (
	"fmt"
	"strings"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/aretw0/todomcp/pkg/ports"
)

// DefaultExamples are the few-shot exchanges sent ahead of every prompt.
var DefaultExamples = []ports.Exchange{
	{
		User:      "Add milk to my shopping list due tomorrow",
		Assistant: `{"intent": "create_task", "params": {"content": "Buy milk", "due_string": "tomorrow"}}`,
	},
	{
		User:      "Show me my tasks for today",
		Assistant: `{"intent": "list_tasks", "params": {"filter": "today"}}`,
	},
	{
		User:      "Create high priority task finish report by Friday",
		Assistant: `{"intent": "create_task", "params": {"content": "Finish report", "due_string": "Friday", "priority": 4}}`,
	},
}

// BuildSystemPrompt renders the classification instructions for schema.
func BuildSystemPrompt(schema domain.ActionSchema) string {
	actions := schema.Actions()

	var b strings.Builder
	b.WriteString("You are an assistant that analyzes Todoist-related requests.\n")
	b.WriteString("Your job is to determine whether the user wants to:\n")
	for i, a := range actions {
		fmt.Fprintf(&b, "%d. %s (%q)\n", i+1, a.Description, a.Name)
	}

	for _, a := range actions {
		if len(a.Params) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\nFor %q, extract:\n", a.Name)
		for _, p := range a.Params {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", p.Name, p.Description, paramHint(p))
		}
	}

	names := schema.Names()
	fmt.Fprintf(&b, "\nIf the request matches none of these, use %q as the intent.\n", domain.ActionUnknown)
	b.WriteString("\nRespond in this JSON format ONLY:\n")
	fmt.Fprintf(&b, `{"intent": "%s", "params": {"param1": "value1", ...}}`, strings.Join(names, "|"))
	return b.String()
}

func paramHint(p domain.ParamSpec) string {
	if p.Required {
		return "required"
	}
	if !p.HasDefault() {
		return "optional"
	}
	if s, ok := p.Default.(string); ok {
		return fmt.Sprintf("optional, default %q", s)
	}
	return fmt.Sprintf("optional, default %v", p.Default)
}
