// Package server wires the planner into the MCP server.
//
// ServerContext owns the planner, the scheduler built on it, and the
// instrumentation handed to every tool. When schedule persistence is enabled
// it writes changed users back to disk through calendarfile.
//
// HTTPServer exposes the MCP server over streamable HTTP at /mcp.
// MetricsServer serves Prometheus metrics on a separate port. Both can carry
// the HealthChecker endpoints:
//
//	/healthz            liveness
//	/readyz             readiness, fails once the context is shut down
//	/healthz/detailed   uptime, user count and default strategy
package server
