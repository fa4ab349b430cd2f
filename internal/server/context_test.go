package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/weekplanner/internal/calendarfile"
	"github.com/teemow/weekplanner/internal/planner"
	"github.com/teemow/weekplanner/internal/scheduling"
	"github.com/teemow/weekplanner/internal/week"
)

func TestNewServerContext_Defaults(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, sc.Planner())
	assert.NotNil(t, sc.Scheduler())
	assert.NotNil(t, sc.Logger())
	assert.Nil(t, sc.Metrics())
	assert.Nil(t, sc.AuditLogger())
	assert.Equal(t, scheduling.KindWorkHours, sc.DefaultStrategy())
	assert.NoError(t, sc.Persist("alice"), "persistence is off by default")
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	require.NoError(t, err)
	assert.False(t, sc.IsShutdown())

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	assert.ErrorIs(t, sc.Context().Err(), context.Canceled)

	// second call is a no-op
	assert.NoError(t, sc.Shutdown())
}

func TestServerContext_Persist(t *testing.T) {
	dir := t.TempDir()
	p := planner.New()
	require.NoError(t, p.AddUser("alice"))
	ev, err := planner.NewEvent("Standup", "Zoom", true,
		week.MustClock(week.Monday, "0900"), week.MustClock(week.Monday, "0915"), []string{"alice"})
	require.NoError(t, err)
	_, err = p.AddEvent("alice", ev)
	require.NoError(t, err)

	sc, err := NewServerContext(context.Background(),
		WithPlanner(p),
		WithSchedulePersistence(func(id string) string { return filepath.Join(dir, id+".yaml") }),
	)
	require.NoError(t, err)

	require.NoError(t, sc.Persist("alice", "nobody"))

	path := filepath.Join(dir, "alice.yaml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(filepath.Join(dir, "nobody.yaml"))
	assert.True(t, os.IsNotExist(err), "unknown users are skipped")

	doc, err := calendarfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.UserID)
	require.Len(t, doc.Events, 1)
	assert.True(t, doc.Events[0].Equal(ev))
}

func TestServerContext_ExportPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		dir     string
		path    string
		want    string
		wantErr bool
	}{
		{name: "no export dir", path: "/tmp/x.yaml", want: "/tmp/x.yaml"},
		{name: "relative joins dir", dir: dir, path: "alice.yaml", want: filepath.Join(dir, "alice.yaml")},
		{name: "nested", dir: dir, path: "out/alice.ics", want: filepath.Join(dir, "out", "alice.ics")},
		{name: "absolute inside", dir: dir, path: filepath.Join(dir, "a.xml"), want: filepath.Join(dir, "a.xml")},
		{name: "parent escape", dir: dir, path: "../a.xml", wantErr: true},
		{name: "absolute outside", dir: dir, path: filepath.Join(filepath.Dir(dir), "a.xml"), wantErr: true},
		{name: "dir itself", dir: dir, path: ".", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := NewServerContext(context.Background(), WithExportDir(tt.dir))
			require.NoError(t, err)
			defer func() { _ = sc.Shutdown() }()

			got, err := sc.ExportPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPathNotAllowed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
