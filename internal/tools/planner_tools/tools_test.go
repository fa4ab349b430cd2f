package planner_tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/scheduling"
	"github.com/teemow/weekplanner/internal/server"
	"github.com/teemow/weekplanner/internal/tools/batch"
	"github.com/teemow/weekplanner/internal/week"
)

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

// newServerContext returns a context whose planner holds the given users.
func newServerContext(t *testing.T, users ...string) *server.ServerContext {
	t.Helper()
	p := planner.New()
	for _, u := range users {
		require.NoError(t, p.AddUser(u))
	}
	sc, err := server.NewServerContext(context.Background(), server.WithPlanner(p))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func addEvent(t *testing.T, sc *server.ServerContext, name string, start, end week.Clock, invitees ...string) {
	t.Helper()
	ev, err := planner.NewEvent(name, "Room 1", false, start, end, invitees)
	require.NoError(t, err)
	_, err = sc.Planner().AddEvent(invitees[0], ev)
	require.NoError(t, err)
}

func toolNames(s *mcpserver.MCPServer) []string {
	var names []string
	for name := range s.ListTools() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestRegisterPlannerTools(t *testing.T) {
	all := []string{
		"planner_add_event",
		"planner_add_user",
		"planner_export_schedule",
		"planner_find_slot",
		"planner_import_schedule",
		"planner_import_schedules",
		"planner_list_users",
		"planner_modify_event",
		"planner_occurring_events",
		"planner_remove_event",
		"planner_schedule_event",
		"planner_show_schedule",
	}
	readOnly := []string{
		"planner_export_schedule",
		"planner_find_slot",
		"planner_list_users",
		"planner_occurring_events",
		"planner_show_schedule",
	}

	tests := []struct {
		name     string
		readOnly bool
		want     []string
	}{
		{name: "all tools", want: all},
		{name: "read-only", readOnly: true, want: readOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mcpserver.NewMCPServer("weekplanner-test", "0.0.1", mcpserver.WithToolCapabilities(true))
			require.NoError(t, RegisterPlannerTools(s, newServerContext(t), tt.readOnly))
			assert.Equal(t, tt.want, toolNames(s))
		})
	}
}

func TestHandleAddUserAndList(t *testing.T) {
	sc := newServerContext(t)
	ctx := context.Background()

	result, err := handleAddUser(ctx, callRequest(map[string]interface{}{"user": "alice"}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	result, err = handleAddUser(ctx, callRequest(map[string]interface{}{"user": "alice"}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "already exists")

	result, err = handleAddUser(ctx, callRequest(map[string]interface{}{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = handleListUsers(ctx, callRequest(nil), sc)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "1. alice (0 events)")
}

func TestHandleAddEvent(t *testing.T) {
	sc := newServerContext(t, "alice", "bob")
	ctx := context.Background()

	args := map[string]interface{}{
		"name":       "Review",
		"location":   "Room 2",
		"online":     false,
		"start_day":  "Monday",
		"start_time": "1000",
		"end_day":    "Monday",
		"end_time":   "1100",
		"invitees":   "alice, bob, ghost",
	}

	result, err := handleAddEvent(ctx, callRequest(args), sc)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Contains(t, resultText(t, result), "Added to: alice, bob")

	bob, err := sc.Planner().User("bob")
	require.NoError(t, err)
	require.Len(t, bob.Events, 1)
	assert.Equal(t, "Review", bob.Events[0].Name())

	// same slot again conflicts for the host
	args["name"] = "Review 2"
	result, err = handleAddEvent(ctx, callRequest(args), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)

	args["start_time"] = "25"
	result, err = handleAddEvent(ctx, callRequest(args), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Invalid event")
}

func TestHandleRemoveAndModifyEvent(t *testing.T) {
	sc := newServerContext(t, "alice", "bob")
	ctx := context.Background()
	addEvent(t, sc, "Review", week.MustClock(week.Monday, "1000"), week.MustClock(week.Monday, "1100"), "alice", "bob")

	result, err := handleModifyEvent(ctx, callRequest(map[string]interface{}{
		"old_name":   "Review",
		"name":       "Retro",
		"location":   "Zoom",
		"online":     true,
		"start_day":  "Tuesday",
		"start_time": "1400",
		"end_day":    "Tuesday",
		"end_time":   "1500",
		"invitees":   []interface{}{"alice", "bob"},
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	bob, err := sc.Planner().User("bob")
	require.NoError(t, err)
	require.Len(t, bob.Events, 1)
	assert.Equal(t, "Retro", bob.Events[0].Name())
	assert.True(t, bob.Events[0].Online())

	result, err = handleRemoveEvent(ctx, callRequest(map[string]interface{}{"user": "alice", "name": "Retro"}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError)

	bob, err = sc.Planner().User("bob")
	require.NoError(t, err)
	assert.Empty(t, bob.Events, "host removal reaches every invitee")

	result, err = handleRemoveEvent(ctx, callRequest(map[string]interface{}{"user": "alice", "name": "Retro"}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleOccurringEvents(t *testing.T) {
	sc := newServerContext(t, "alice")
	addEvent(t, sc, "Standup", week.MustClock(week.Monday, "0900"), week.MustClock(week.Monday, "0915"), "alice")

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantErr  bool
		contains string
	}{
		{
			name:     "inside",
			args:     map[string]interface{}{"user": "alice", "day": "Monday", "time": "0910"},
			contains: "Found 1 events",
		},
		{
			name:     "outside",
			args:     map[string]interface{}{"user": "alice", "day": "Monday", "time": "1000"},
			contains: "No events for alice",
		},
		{
			name:    "unknown user",
			args:    map[string]interface{}{"user": "bob", "day": "Monday", "time": "0910"},
			wantErr: true,
		},
		{
			name:    "bad day",
			args:    map[string]interface{}{"user": "alice", "day": "Someday", "time": "0910"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleOccurringEvents(context.Background(), callRequest(tt.args), sc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantErr, result.IsError)
			if tt.contains != "" {
				assert.Contains(t, resultText(t, result), tt.contains)
			}
		})
	}
}

func TestHandleFindSlot(t *testing.T) {
	sc := newServerContext(t, "alice", "bob")

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantErr  bool
		contains string
	}{
		{
			name:     "workhours default",
			args:     map[string]interface{}{"name": "Sync", "location": "Zoom", "duration": float64(30), "invitees": "alice,bob"},
			contains: "Earliest workhours slot: Monday: 0900 -> Monday: 0930",
		},
		{
			name:     "anytime",
			args:     map[string]interface{}{"name": "Sync", "location": "Zoom", "duration": "30", "invitees": "alice,bob", "strategy": "anytime"},
			contains: "Earliest anytime slot: Sunday: 0000 -> Sunday: 0030",
		},
		{
			name:    "unknown strategy",
			args:    map[string]interface{}{"name": "Sync", "location": "Zoom", "duration": float64(30), "invitees": "alice", "strategy": "lunch"},
			wantErr: true,
		},
		{
			name:    "duration too long",
			args:    map[string]interface{}{"name": "Sync", "location": "Zoom", "duration": float64(10081), "invitees": "alice"},
			wantErr: true,
		},
		{
			name:     "whole week never fits",
			args:     map[string]interface{}{"name": "Sync", "location": "Zoom", "duration": float64(10080), "invitees": "alice", "strategy": "anytime"},
			wantErr:  true,
			contains: "No anytime slot found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleFindSlot(context.Background(), callRequest(tt.args), sc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantErr, result.IsError, resultText(t, result))
			if tt.contains != "" {
				assert.Contains(t, resultText(t, result), tt.contains)
			}
		})
	}

	alice, err := sc.Planner().User("alice")
	require.NoError(t, err)
	assert.Empty(t, alice.Events, "find does not book")
}

func TestHandleScheduleEvent(t *testing.T) {
	p := planner.New()
	require.NoError(t, p.AddUser("alice"))
	require.NoError(t, p.AddUser("bob"))
	dir := t.TempDir()
	sc, err := server.NewServerContext(context.Background(),
		server.WithPlanner(p),
		server.WithDefaultStrategy(scheduling.KindAnytime),
		server.WithSchedulePersistence(func(id string) string { return filepath.Join(dir, id+".xml") }),
	)
	require.NoError(t, err)
	defer sc.Shutdown()

	result, err := handleScheduleEvent(context.Background(), callRequest(map[string]interface{}{
		"name":     "Sync",
		"location": "Zoom",
		"online":   true,
		"duration": float64(60),
		"invitees": "alice,bob",
	}), sc)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))
	assert.Contains(t, resultText(t, result), "Added to: alice, bob")

	for _, id := range []string{"alice", "bob"} {
		u, err := p.User(id)
		require.NoError(t, err)
		require.Len(t, u.Events, 1)
		assert.Equal(t, week.MustClock(week.Sunday, "0000"), u.Events[0].Start())

		_, err = os.Stat(filepath.Join(dir, id+".xml"))
		assert.NoError(t, err, "schedule of %s saved", id)
	}
}

func TestHandleExportAndImportSchedule(t *testing.T) {
	src := newServerContext(t, "alice")
	addEvent(t, src, "Standup", week.MustClock(week.Monday, "0900"), week.MustClock(week.Monday, "0915"), "alice")
	ctx := context.Background()

	for _, format := range []string{"xml", "yaml", "ics"} {
		t.Run(format, func(t *testing.T) {
			result, err := handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": "alice", "format": format}), src, false)
			require.NoError(t, err)
			require.False(t, result.IsError, resultText(t, result))
			content := resultText(t, result)

			dst := newServerContext(t)
			result, err = handleImportSchedule(ctx, callRequest(map[string]interface{}{"content": content, "format": format}), dst)
			require.NoError(t, err)
			require.False(t, result.IsError, resultText(t, result))
			assert.Equal(t, "Imported alice with 1 events.", resultText(t, result))

			want, err := src.Planner().User("alice")
			require.NoError(t, err)
			got, err := dst.Planner().User("alice")
			require.NoError(t, err)
			require.Len(t, got.Events, 1)
			assert.True(t, want.Events[0].Equal(got.Events[0]))
		})
	}

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "alice.yaml")
		result, err := handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": "alice", "path": path}), src, false)
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))

		dst := newServerContext(t)
		result, err = handleImportSchedule(ctx, callRequest(map[string]interface{}{"path": path}), dst)
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
		assert.True(t, dst.Planner().HasUser("alice"))
	})

	t.Run("errors", func(t *testing.T) {
		result, err := handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": "nobody"}), src, false)
		require.NoError(t, err)
		assert.True(t, result.IsError)

		result, err = handleImportSchedule(ctx, callRequest(map[string]interface{}{}), src)
		require.NoError(t, err)
		assert.True(t, result.IsError)

		// alice already exists
		result, err = handleImportSchedule(ctx, callRequest(map[string]interface{}{
			"content": "user: alice\nevents: []\n", "format": "yaml",
		}), src)
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHandleImportSchedules(t *testing.T) {
	src := newServerContext(t, "alice", "bob")
	addEvent(t, src, "Standup", week.MustClock(week.Monday, "0900"), week.MustClock(week.Monday, "0915"), "alice", "bob")
	ctx := context.Background()

	dir := t.TempDir()
	alice := filepath.Join(dir, "alice.xml")
	bob := filepath.Join(dir, "bob.ics")
	for user, path := range map[string]string{"alice": alice, "bob": bob} {
		result, err := handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": user, "path": path}), src, false)
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
	}

	dst := newServerContext(t, "bob")
	result, err := handleImportSchedules(ctx, callRequest(map[string]interface{}{
		"paths": alice + "," + bob + "," + filepath.Join(dir, "missing.yaml"),
	}), dst)
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	var summary batch.Summary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &summary))
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, "Imported alice with 1 events.", summary.Results[0].Result)
	assert.Contains(t, summary.Results[1].Error, "failed to import schedule")
	assert.Contains(t, summary.Results[2].Error, "failed to read schedule")
	assert.True(t, dst.Planner().HasUser("alice"))

	result, err = handleImportSchedules(ctx, callRequest(map[string]interface{}{}), dst)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestExportSchedule_Path(t *testing.T) {
	ctx := context.Background()

	t.Run("read-only registration has no path", func(t *testing.T) {
		s := mcpserver.NewMCPServer("weekplanner-test", "0.0.1", mcpserver.WithToolCapabilities(true))
		require.NoError(t, RegisterPlannerTools(s, newServerContext(t), true))
		tool := s.ListTools()["planner_export_schedule"]
		require.NotNil(t, tool)
		assert.NotContains(t, tool.Tool.InputSchema.Properties, "path")
	})

	t.Run("read-only refuses path", func(t *testing.T) {
		sc := newServerContext(t, "alice")
		path := filepath.Join(t.TempDir(), "nested", "anywhere.xml")

		result, err := handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": "alice", "path": path}), sc, true)
		require.NoError(t, err)
		assert.True(t, result.IsError)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "read-only export wrote %s", path)

		// content is still returned
		result, err = handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": "alice"}), sc, true)
		require.NoError(t, err)
		assert.False(t, result.IsError, resultText(t, result))
	})

	t.Run("confined to export dir", func(t *testing.T) {
		dir := t.TempDir()
		p := planner.New()
		require.NoError(t, p.AddUser("alice"))
		sc, err := server.NewServerContext(context.Background(), server.WithPlanner(p), server.WithExportDir(dir))
		require.NoError(t, err)

		result, err := handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": "alice", "path": "alice.yaml"}), sc, false)
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))
		_, err = os.Stat(filepath.Join(dir, "alice.yaml"))
		assert.NoError(t, err)

		outside := filepath.Join(t.TempDir(), "alice.xml")
		for _, path := range []string{"../alice.xml", outside} {
			result, err = handleExportSchedule(ctx, callRequest(map[string]interface{}{"user": "alice", "path": path}), sc, false)
			require.NoError(t, err)
			assert.True(t, result.IsError, path)
			assert.Contains(t, resultText(t, result), "outside the export directory")
		}
		_, err = os.Stat(outside)
		assert.True(t, os.IsNotExist(err))
	})
}
