package planner_tools

import (
	"fmt"
	"strconv"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/server"
	"github.com/teemow/weekplanner/internal/tools/common"
	"github.com/teemow/weekplanner/internal/week"
)

// RegisterPlannerTools registers all planner tools with the MCP server
func RegisterPlannerTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterUserTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register user tools: %w", err)
	}

	if err := RegisterEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	if err := RegisterSearchTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register search tools: %w", err)
	}

	if err := RegisterFileTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register file tools: %w", err)
	}

	return nil
}

// stringArg returns the trimmed string argument, or "" when absent.
func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

func boolArg(args map[string]interface{}, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// minutesArg reads a duration in minutes. JSON numbers arrive as float64.
func minutesArg(args map[string]interface{}, key string) string {
	switch v := args[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	}
	return ""
}

func clockArg(args map[string]interface{}, dayKey, timeKey string) (week.Clock, error) {
	day := stringArg(args, dayKey)
	if day == "" {
		return week.Clock{}, fmt.Errorf("%s is required", dayKey)
	}
	hhmm := stringArg(args, timeKey)
	if hhmm == "" {
		return week.Clock{}, fmt.Errorf("%s is required", timeKey)
	}
	c, err := week.ParseClock(day, hhmm)
	if err != nil {
		return week.Clock{}, fmt.Errorf("invalid %s/%s: %w", dayKey, timeKey, err)
	}
	return c, nil
}

// eventFromArgs builds an event from the name, location, online, start_day,
// start_time, end_day, end_time and invitees arguments.
func eventFromArgs(args map[string]interface{}) (planner.Event, error) {
	start, err := clockArg(args, "start_day", "start_time")
	if err != nil {
		return planner.Event{}, err
	}
	end, err := clockArg(args, "end_day", "end_time")
	if err != nil {
		return planner.Event{}, err
	}
	invitees := common.StringList(args["invitees"])
	if len(invitees) == 0 {
		return planner.Event{}, fmt.Errorf("invitees is required")
	}
	return planner.NewEvent(
		stringArg(args, "name"),
		stringArg(args, "location"),
		boolArg(args, "online"),
		start, end, invitees,
	)
}

func formatUsers(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
