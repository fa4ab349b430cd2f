package planner_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/weekplanner/internal/scheduling"
	"github.com/teemow/weekplanner/internal/server"
	"github.com/teemow/weekplanner/internal/tools/common"
)

// requestOptions are the parameters of a slot search.
func requestOptions(description string) []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Event name"),
		),
		mcp.WithString("location",
			mcp.Required(),
			mcp.Description("Event location"),
		),
		mcp.WithBoolean("online",
			mcp.Description("Whether the event is held online"),
		),
		mcp.WithNumber("duration",
			mcp.Required(),
			mcp.Description("Event length in minutes (1 to 10080)"),
		),
		mcp.WithString("invitees",
			mcp.Required(),
			mcp.Description("Comma-separated user ids. The first one is the host."),
		),
		mcp.WithString("strategy",
			mcp.Description("Search strategy: 'anytime' (earliest slot in the week) or 'workhours' (Monday 0900 to Friday 1700). Defaults to the server setting."),
		),
	}
}

// RegisterSearchTools registers the slot search tools with the MCP server
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	findSlotTool := mcp.NewTool("planner_find_slot",
		requestOptions("Find the earliest slot in the week that suits the host and every registered invitee, without booking it")...)

	s.AddTool(findSlotTool, common.InstrumentedToolHandler("planner_find_slot", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindSlot(ctx, request, sc)
		}))

	if !readOnly {
		scheduleTool := mcp.NewTool("planner_schedule_event",
			requestOptions("Find the earliest suitable slot and add the event to the host and every free invitee")...)

		s.AddTool(scheduleTool, common.InstrumentedToolHandler("planner_schedule_event", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleScheduleEvent(ctx, request, sc)
			}))
	}

	return nil
}

func requestFromArgs(args map[string]interface{}, sc *server.ServerContext) (scheduling.Kind, scheduling.Request, error) {
	kind := sc.DefaultStrategy()
	if v := stringArg(args, "strategy"); v != "" {
		k, err := scheduling.ParseKind(v)
		if err != nil {
			return "", scheduling.Request{}, err
		}
		kind = k
	}

	req, err := scheduling.ParseRequest(
		stringArg(args, "name"),
		minutesArg(args, "duration"),
		stringArg(args, "location"),
		boolArg(args, "online"),
		common.StringList(args["invitees"]),
	)
	if err != nil {
		return "", scheduling.Request{}, err
	}
	return kind, req, nil
}

func handleFindSlot(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	kind, req, err := requestFromArgs(request.GetArguments(), sc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid request: %v", err)), nil
	}

	ev, err := sc.Scheduler().Find(ctx, kind, req)
	if errors.Is(err, scheduling.ErrNoSlotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No %s slot found: %v", kind, err)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find slot: %v", err)), nil
	}

	result := fmt.Sprintf("Earliest %s slot: %s -> %s\n\n%s", kind, ev.Start(), ev.End(), ev)
	return mcp.NewToolResultText(result), nil
}

func handleScheduleEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	kind, req, err := requestFromArgs(request.GetArguments(), sc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid request: %v", err)), nil
	}

	ev, added, err := sc.Scheduler().Schedule(ctx, kind, req)
	if errors.Is(err, scheduling.ErrNoSlotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No %s slot found: %v", kind, err)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to schedule event: %v", err)), nil
	}
	if err := sc.Persist(added...); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Event scheduled but not saved: %v", err)), nil
	}

	result := fmt.Sprintf("Event %s scheduled (%s).\n\n%s\n\nAdded to: %s", ev.Name(), kind, ev, formatUsers(added))
	return mcp.NewToolResultText(result), nil
}
