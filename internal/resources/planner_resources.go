package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/weekplanner/internal/calendarfile"
	"github.com/teemow/weekplanner/internal/server"
)

const (
	usersURI          = "planner://users"
	scheduleURIPrefix = "planner://users/"
	scheduleURISuffix = "/schedule"
)

// RegisterPlannerResources registers the user list and the per-user
// schedule template.
func RegisterPlannerResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	usersResource := mcp.NewResource(
		usersURI,
		"Planner Users",
		mcp.WithResourceDescription("Registered users and the number of events in each schedule"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(usersResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUsers(ctx, request, sc)
	})

	scheduleTemplate := mcp.NewResourceTemplate(
		scheduleURIPrefix+"{id}"+scheduleURISuffix,
		"User Schedule",
		mcp.WithTemplateDescription("A user's weekly schedule in YAML"),
		mcp.WithTemplateMIMEType("application/yaml"),
	)

	s.AddResourceTemplate(scheduleTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleSchedule(ctx, request, sc)
	})

	return nil
}

type userSummary struct {
	ID     string `json:"id"`
	Events int    `json:"events"`
}

func handleUsers(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	users := sc.Planner().Users()
	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, userSummary{ID: u.ID, Events: len(u.Events)})
	}

	jsonData, err := json.MarshalIndent(map[string]interface{}{
		"users":            summaries,
		"default_strategy": sc.DefaultStrategy(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal users: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// userFromURI extracts the id from planner://users/{id}/schedule.
func userFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, scheduleURIPrefix) || !strings.HasSuffix(uri, scheduleURISuffix) {
		return "", fmt.Errorf("unexpected schedule URI: %s", uri)
	}
	id := strings.TrimSuffix(strings.TrimPrefix(uri, scheduleURIPrefix), scheduleURISuffix)
	if id == "" {
		return "", fmt.Errorf("schedule URI has no user id: %s", uri)
	}
	return id, nil
}

func handleSchedule(_ context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	id, err := userFromURI(request.Params.URI)
	if err != nil {
		return nil, err
	}
	u, err := sc.Planner().User(id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := calendarfile.EncodeYAML(&buf, calendarfile.FromUser(u)); err != nil {
		return nil, fmt.Errorf("failed to encode schedule: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/yaml",
			Text:     buf.String(),
		},
	}, nil
}
