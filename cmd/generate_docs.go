package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/teemow/weekplanner/internal/server"
)

// toolCategories groups tools in the generated reference. Unlisted tools
// land in "Other".
var toolCategories = map[string]string{
	"planner_list_users":       "User Tools",
	"planner_add_user":         "User Tools",
	"planner_show_schedule":    "User Tools",
	"planner_add_event":        "Event Tools",
	"planner_remove_event":     "Event Tools",
	"planner_modify_event":     "Event Tools",
	"planner_occurring_events": "Event Tools",
	"planner_find_slot":        "Search Tools",
	"planner_schedule_event":   "Search Tools",
	"planner_import_schedule":  "Schedule File Tools",
	"planner_import_schedules": "Schedule File Tools",
	"planner_export_schedule":  "Schedule File Tools",
}

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate a markdown reference of every MCP tool weekplanner registers.
The tools are introspected from a server with an empty planner, so the
reference always matches the tool definitions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := generateDocs()
			if err != nil {
				return err
			}
			if outputFile == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), markdown)
				return err
			}
			if err := os.WriteFile(outputFile, []byte(markdown), 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Documentation written to: %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// generateDocs registers every tool, write tools included, and renders them.
func generateDocs() (string, error) {
	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		return "", fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { _ = sc.Shutdown() }()

	mcpSrv := newMCPServer()
	if err := registerAllTools(mcpSrv, sc, false); err != nil {
		return "", err
	}

	registered := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(registered))
	for _, t := range registered {
		tools = append(tools, t.Tool)
	}
	return generateToolsMarkdown(tools), nil
}

func generateToolsMarkdown(tools []mcp.Tool) string {
	byCategory := make(map[string][]mcp.Tool)
	for _, tool := range tools {
		c := getCategoryFromToolName(tool.Name)
		byCategory[c] = append(byCategory[c], tool)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("This document provides a complete reference of all tools available when running weekplanner as an MCP server.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions.\n\n")

	sb.WriteString("## Table of Contents\n\n")
	for _, c := range categories {
		fmt.Fprintf(&sb, "- [%s](#%s)\n", c, strings.ToLower(strings.ReplaceAll(c, " ", "-")))
	}
	sb.WriteString("\n")

	sb.WriteString("## Week Model\n\n")
	sb.WriteString("Schedules repeat every week. Times are given as a day name and a 24-hour `HHMM` time:\n\n")
	sb.WriteString("- **Days:** `Sunday` to `Saturday`; the week starts on Sunday 0000\n")
	sb.WriteString("- **Invitees:** comma-separated user ids, the first one is the host\n")
	sb.WriteString("- **Wrapping:** an end before the start runs into the next week\n\n")

	for _, c := range categories {
		group := byCategory[c]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })

		fmt.Fprintf(&sb, "## %s\n\n", c)
		for _, tool := range group {
			writeToolMarkdown(&sb, tool)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func getCategoryFromToolName(name string) string {
	if c, ok := toolCategories[name]; ok {
		return c
	}
	return "Other"
}

func writeToolMarkdown(sb *strings.Builder, tool mcp.Tool) {
	fmt.Fprintf(sb, "### %s\n\n", tool.Name)
	if tool.Description != "" {
		fmt.Fprintf(sb, "%s\n\n", tool.Description)
	}

	props := tool.InputSchema.Properties
	if len(props) == 0 {
		return
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString("**Arguments:**\n")
	for _, name := range names {
		prop, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		req := "optional"
		if slices.Contains(tool.InputSchema.Required, name) {
			req = "required"
		}

		desc, ok := prop["description"].(string)
		if !ok {
			desc = propertyType(prop) + " parameter"
		}
		fmt.Fprintf(sb, "- `%s` (%s): %s\n", name, req, desc)
	}
	sb.WriteString("\n")
}

func propertyType(prop map[string]any) string {
	if t, ok := prop["type"].(string); ok {
		return t
	}
	return "any"
}
