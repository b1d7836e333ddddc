/*
Package domain contains the core models of the task assistant.

It defines the fixed set of actions the assistant understands, the intent
produced by classifying a prompt, and the result handed back to the caller.
This package is kept pure and free of I/O so that resolvers, dispatchers and
adapters can share it without pulling in transport or persistence code.

# Key Entities

  - ActionSchema: The ordered, immutable list of known actions and their parameters.
  - ResolvedIntent: The action name and parameters extracted from one prompt.
  - ActionResult: A tagged Ok/Error value surfaced directly to the user.
  - Task: The subset of the remote task representation the handlers format.
*/
package domain
