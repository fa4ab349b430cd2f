// Package planner_tools provides MCP tools for the weekly planner.
//
// The tools manage users and their recurring weekly schedules, answer
// "what is happening at" queries, search for a slot that suits every
// invitee with the anytime or workhours strategy, and move schedules in and
// out of XML, YAML and iCalendar files.
//
// Write tools are left out when the server runs read-only.
package planner_tools
