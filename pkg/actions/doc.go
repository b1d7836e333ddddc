/*
Package actions implements the handlers behind each action of the schema.

Every handler is stateless and performs at most one call to the task API.
Parameters arrive as a loosely typed map (whatever the language model
produced) and are decoded into typed structs with mapstructure, so "4", 4 and
4.0 are all accepted for an integer parameter.
*/
package actions
