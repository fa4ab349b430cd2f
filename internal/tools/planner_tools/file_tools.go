package planner_tools

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/weekplanner/internal/calendarfile"
	"github.com/teemow/weekplanner/internal/instrumentation"
	"github.com/teemow/weekplanner/internal/server"
	"github.com/teemow/weekplanner/internal/tools/batch"
	"github.com/teemow/weekplanner/internal/tools/common"
)

func formatList() string {
	names := make([]string, 0, len(calendarfile.Formats()))
	for _, f := range calendarfile.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// RegisterFileTools registers schedule import and export tools with the MCP server
func RegisterFileTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	exportOpts := []mcp.ToolOption{
		mcp.WithDescription("Export a user's schedule as XML, YAML or iCalendar, returned inline or written to a file"),
		mcp.WithString("user",
			mcp.Required(),
			mcp.Description("User id"),
		),
		mcp.WithString("format",
			mcp.Description(fmt.Sprintf("Output format: %s (default: xml, or taken from path)", formatList())),
		),
	}
	// writing a file is a change, so read-only servers only return content
	if !readOnly {
		exportOpts = append(exportOpts, mcp.WithString("path",
			mcp.Description("Write to this file, relative to the schedule directory, instead of returning the content"),
		))
	}
	exportTool := mcp.NewTool("planner_export_schedule", exportOpts...)

	s.AddTool(exportTool, common.InstrumentedToolHandlerWithOperation("planner_export_schedule", instrumentation.OperationExport, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExportSchedule(ctx, request, sc, readOnly)
		}))

	if !readOnly {
		importTool := mcp.NewTool("planner_import_schedule",
			mcp.WithDescription("Import a new user and their schedule from a file or from inline content"),
			mcp.WithString("path",
				mcp.Description("Schedule file; the format is taken from the extension"),
			),
			mcp.WithString("content",
				mcp.Description("Inline schedule document, used when path is empty"),
			),
			mcp.WithString("format",
				mcp.Description(fmt.Sprintf("Format of content: %s", formatList())),
			),
		)

		s.AddTool(importTool, common.InstrumentedToolHandlerWithOperation("planner_import_schedule", instrumentation.OperationImport, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleImportSchedule(ctx, request, sc)
			}))

		importManyTool := mcp.NewTool("planner_import_schedules",
			mcp.WithDescription("Import several schedule files at once. Each file is imported on its own and failures do not stop the rest."),
			mcp.WithString("paths",
				mcp.Required(),
				mcp.Description("Comma-separated schedule files; formats are taken from the extensions"),
			),
		)

		s.AddTool(importManyTool, common.InstrumentedToolHandlerWithOperation("planner_import_schedules", instrumentation.OperationImport, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleImportSchedules(ctx, request, sc)
			}))
	}

	return nil
}

func handleExportSchedule(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext, readOnly bool) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	user := stringArg(args, "user")
	if user == "" {
		return mcp.NewToolResultError("user is required"), nil
	}
	u, err := sc.Planner().User(user)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to export schedule: %v", err)), nil
	}
	doc := calendarfile.FromUser(u)

	if path := stringArg(args, "path"); path != "" {
		if readOnly {
			return mcp.NewToolResultError("path is not allowed on a read-only server; omit it to get the content"), nil
		}
		dest, err := sc.ExportPath(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save schedule: %v", err)), nil
		}
		if err := calendarfile.Save(dest, doc); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save schedule: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Schedule of %s (%d events) written to %s.", user, len(doc.Events), dest)), nil
	}

	format := calendarfile.FormatXML
	if v := stringArg(args, "format"); v != "" {
		f, err := calendarfile.ParseFormat(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = f
	}

	var buf bytes.Buffer
	if err := calendarfile.Encode(&buf, format, doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode schedule: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func handleImportSchedule(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var (
		doc calendarfile.Document
		err error
	)
	if path := stringArg(args, "path"); path != "" {
		doc, err = calendarfile.Load(path)
	} else {
		content, _ := args["content"].(string)
		if strings.TrimSpace(content) == "" {
			return mcp.NewToolResultError("path or content is required"), nil
		}
		format, ferr := calendarfile.ParseFormat(stringArg(args, "format"))
		if ferr != nil {
			return mcp.NewToolResultError(ferr.Error()), nil
		}
		doc, err = calendarfile.Decode(strings.NewReader(content), format)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read schedule: %v", err)), nil
	}

	msg, err := importDocument(ctx, sc, doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(msg), nil
}

func handleImportSchedules(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	paths, err := batch.ParseList(request.GetArguments()["paths"], "paths")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.Process(paths, func(path string) (string, error) {
		doc, err := calendarfile.Load(path)
		if err != nil {
			return "", fmt.Errorf("failed to read schedule: %w", err)
		}
		return importDocument(ctx, sc, doc)
	})

	return mcp.NewToolResultText(batch.Format(results)), nil
}

// importDocument adds the document's user to the planner and saves it.
func importDocument(ctx context.Context, sc *server.ServerContext, doc calendarfile.Document) (string, error) {
	if err := doc.Import(sc.Planner()); err != nil {
		return "", fmt.Errorf("failed to import schedule: %w", err)
	}
	sc.Metrics().IncrementUsers(ctx)

	if err := sc.Persist(doc.UserID); err != nil {
		return "", fmt.Errorf("schedule imported but not saved: %w", err)
	}
	return fmt.Sprintf("Imported %s with %d events.", doc.UserID, len(doc.Events)), nil
}
