package planner_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/weekplanner/internal/instrumentation"
	"github.com/teemow/weekplanner/internal/server"
	"github.com/teemow/weekplanner/internal/tools/common"
)

// eventOptions are the parameters shared by the tools that take a full event.
func eventOptions(description string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Event name, unique within each schedule"),
		),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("Event location, e.g. 'Room 2' or 'Zoom'"),
		),
		mcp.WithBoolean("online",
			mcp.Description("Whether the event is held online"),
		),
		mcp.WithString("start_day",
			mcp.Required(),
			mcp.Description("Start day, e.g. 'Monday'"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Start time as 24-hour HHMM, e.g. '0930'"),
		),
		mcp.WithString("end_day",
			mcp.Required(),
			mcp.Description("End day. An end before the start wraps into the next week."),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("End time as 24-hour HHMM"),
		),
		mcp.WithString("invitees",
			mcp.Required(),
			mcp.Description("Comma-separated user ids. The first one is the host."),
		),
	}
}

// RegisterEventTools registers event tools with the MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	occurringTool := mcp.NewTool("planner_occurring_events",
		mcp.WithDescription("List the events of a user that are in progress at a given day and time"),
		mcp.WithString("user",
			mcp.Required(),
			mcp.Description("User id"),
		),
		mcp.WithString("day",
			mcp.Required(),
			mcp.Description("Day, e.g. 'Tuesday'"),
		),
		mcp.WithString("time",
			mcp.Required(),
			mcp.Description("Time as 24-hour HHMM"),
		),
	)

	s.AddTool(occurringTool, common.InstrumentedToolHandler("planner_occurring_events", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleOccurringEvents(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	addEventTool := mcp.NewTool("planner_add_event",
		eventOptions("Add an event to the host's schedule and to every invitee who is free at that time")...)

	s.AddTool(addEventTool, common.InstrumentedToolHandlerWithOperation("planner_add_event", instrumentation.OperationAddEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAddEvent(ctx, request, sc)
		}))

	removeEventTool := mcp.NewTool("planner_remove_event",
		mcp.WithDescription("Remove an event. When the user hosts it, it is removed from every invitee."),
		mcp.WithString("user",
			mcp.Required(),
			mcp.Description("User id"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the event to remove"),
		),
	)

	s.AddTool(removeEventTool, common.InstrumentedToolHandlerWithOperation("planner_remove_event", instrumentation.OperationRemoveEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRemoveEvent(ctx, request, sc)
		}))

	modifyOpts := append(eventOptions("Replace an existing event. The host is the first invitee of the new event."),
		mcp.WithString("old_name",
			mcp.Description("Name of the event to replace (default: name)"),
		),
	)
	modifyEventTool := mcp.NewTool("planner_modify_event", modifyOpts...)

	s.AddTool(modifyEventTool, common.InstrumentedToolHandlerWithOperation("planner_modify_event", instrumentation.OperationModifyEvent, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleModifyEvent(ctx, request, sc)
		}))

	return nil
}

func handleOccurringEvents(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	user := stringArg(args, "user")
	if user == "" {
		return mcp.NewToolResultError("user is required"), nil
	}
	at, err := clockArg(args, "day", "time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	events, err := sc.Planner().OccurringAt(user, at)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query events: %v", err)), nil
	}
	if len(events) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No events for %s at %s.", user, at)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d events for %s at %s:\n", len(events), user, at)
	for _, e := range events {
		b.WriteString("\n" + e.String() + "\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func handleAddEvent(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	ev, err := eventFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid event: %v", err)), nil
	}

	added, err := sc.Planner().AddEvent(ev.Host(), ev)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add event: %v", err)), nil
	}
	if err := sc.Persist(added...); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Event added but not saved: %v", err)), nil
	}

	result := fmt.Sprintf("Event %s added.\n\n%s\n\nAdded to: %s", ev.Name(), ev, formatUsers(added))
	return mcp.NewToolResultText(result), nil
}

func handleRemoveEvent(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	user := stringArg(args, "user")
	if user == "" {
		return mcp.NewToolResultError("user is required"), nil
	}
	name := stringArg(args, "name")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	if err := sc.Planner().RemoveEvent(user, name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to remove event: %v", err)), nil
	}
	if err := sc.Persist(sc.Planner().UserIDs()...); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Event removed but not saved: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event %s removed for %s.", name, user)), nil
}

func handleModifyEvent(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	ev, err := eventFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid event: %v", err)), nil
	}
	oldName := stringArg(args, "old_name")
	if oldName == "" {
		oldName = ev.Name()
	}

	if err := sc.Planner().ModifyEvent(oldName, ev); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to modify event: %v", err)), nil
	}
	if err := sc.Persist(sc.Planner().UserIDs()...); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Event modified but not saved: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Event %s replaced.\n\n%s", oldName, ev)), nil
}
