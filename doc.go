/*
Package todomcp is a natural-language front end for the Todoist task API.

A free-text prompt is classified by a language model into one action of a
fixed schema (create_task or list_tasks). Its parameters are default-filled
from the schema, and the resolved intent is routed to a handler that makes
exactly one call to Todoist and formats a human-readable result.

# Layout

The core is hexagonal. pkg/domain holds the schema, intents and results.
pkg/resolver and pkg/dispatch implement the two stages, and pkg/actions holds
the handlers. Adapters for the model providers, Todoist, MCP and HTTP live
under pkg/adapters.

# Usage

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	a, err := todomcp.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	result := a.Handle(ctx, "Add milk to my shopping list for tomorrow")
	fmt.Println(result)

Handle never returns an error. Every failure, from an empty prompt to a
rejected API key, comes back as a failed domain.ActionResult that carries
the reason.
*/
package todomcp
