/*
Package ports defines the driven ports (interfaces) of the task assistant.

These interfaces decouple the resolver and dispatcher from the remote services
they talk to, so the LLM provider and the task API can be swapped or faked in
tests.

# Key Interfaces

  - CompletionClient: Sends one classification request to a language model.
  - TaskAPI: Creates and lists tasks on the remote task-management service.
  - IntentResolver: Turns free text into a domain.ResolvedIntent.
  - ActionDispatcher: Routes a domain.ResolvedIntent to its handler.
*/
package ports
