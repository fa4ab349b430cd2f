// Package resources provides MCP resources for the planner. Resources are
// read-only data sources that MCP clients can fetch without calling a tool:
// the list of registered users and each user's schedule.
package resources
