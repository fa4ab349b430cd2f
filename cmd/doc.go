// Package cmd implements the command-line interface for weekplanner.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide planner tools for AI assistants
//   - schedule: Find the earliest slot for an event and add it
//   - show: Print schedules grouped by day
//   - occurring: List the events in progress at a point in the week
//   - convert: Convert a schedule between XML, YAML and iCalendar
//   - generate-docs: Generate markdown documentation for all MCP tools
//   - version: Display version information
//
// Schedules are loaded from the files listed in the config file and from
// --load.
package cmd
