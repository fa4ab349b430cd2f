package batch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    []string
		wantErr string
	}{
		{name: "single string", input: "alice.xml", want: []string{"alice.xml"}},
		{name: "comma separated", input: " alice.xml, ,bob.yaml ", want: []string{"alice.xml", "bob.yaml"}},
		{name: "array", input: []interface{}{"a.xml", " b.ics"}, want: []string{"a.xml", "b.ics"}},
		{name: "string slice", input: []string{"a.xml"}, want: []string{"a.xml"}},
		{name: "nil", input: nil, wantErr: "paths is required"},
		{name: "blank string", input: "  ", wantErr: "paths cannot be empty"},
		{name: "empty array", input: []interface{}{}, wantErr: "paths cannot be empty"},
		{name: "blank item", input: []interface{}{"a.xml", ""}, wantErr: "paths[1] cannot be empty"},
		{name: "non string item", input: []interface{}{"a.xml", 3}, wantErr: "paths[1] must be a string"},
		{name: "wrong type", input: 42, wantErr: "must be a string or array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseList(tt.input, "paths")
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessAndFormat(t *testing.T) {
	results := Process([]string{"a", "b", "c"}, func(id string) (string, error) {
		if id == "b" {
			return "", errors.New("boom")
		}
		return "ok " + id, nil
	})

	require.Len(t, results, 3)
	assert.Equal(t, NewSuccessResult("a", "ok a"), results[0])
	assert.Equal(t, Result{ID: "b", Status: StatusError, Error: "boom"}, results[1])

	var s Summary
	require.NoError(t, json.Unmarshal([]byte(Format(results)), &s))
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Successful)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, results, s.Results)
}
