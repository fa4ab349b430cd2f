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

// RegisterUserTools registers user tools with the MCP server
func RegisterUserTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listUsersTool := mcp.NewTool("planner_list_users",
		mcp.WithDescription("List every user registered in the planner with their number of events"),
	)

	s.AddTool(listUsersTool, common.InstrumentedToolHandler("planner_list_users", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListUsers(ctx, request, sc)
		}))

	showScheduleTool := mcp.NewTool("planner_show_schedule",
		mcp.WithDescription("Show a user's weekly schedule grouped by day. Shows every user when no user is given."),
		mcp.WithString("user",
			mcp.Description("User id. Leave empty to show every user."),
		),
	)

	s.AddTool(showScheduleTool, common.InstrumentedToolHandler("planner_show_schedule", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleShowSchedule(ctx, request, sc)
		}))

	if !readOnly {
		addUserTool := mcp.NewTool("planner_add_user",
			mcp.WithDescription("Register a new user with an empty weekly schedule"),
			mcp.WithString("user",
				mcp.Required(),
				mcp.Description("User id, e.g. 'alice'"),
			),
		)

		s.AddTool(addUserTool, common.InstrumentedToolHandlerWithOperation("planner_add_user", instrumentation.OperationAddUser, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleAddUser(ctx, request, sc)
			}))
	}

	return nil
}

func handleListUsers(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	users := sc.Planner().Users()
	if len(users) == 0 {
		return mcp.NewToolResultText("No users registered."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d users:\n\n", len(users))
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s (%d events)\n", i+1, u.ID, len(u.Events))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func handleShowSchedule(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	user := stringArg(args, "user")

	out, err := sc.Planner().Render(user)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to show schedule: %v", err)), nil
	}
	if out == "" {
		return mcp.NewToolResultText("No users registered."), nil
	}
	return mcp.NewToolResultText(out), nil
}

func handleAddUser(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	user := stringArg(args, "user")
	if user == "" {
		return mcp.NewToolResultError("user is required"), nil
	}

	if err := sc.Planner().AddUser(user); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add user: %v", err)), nil
	}
	sc.Metrics().IncrementUsers(ctx)

	if err := sc.Persist(user); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("User added but not saved: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("User %s added.", user)), nil
}
