package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{name: "valid", req: request(30, "alice")},
		{name: "max duration", req: request(MaxDuration, "alice")},
		{name: "no invitees", req: request(30), wantErr: true},
		{name: "zero duration", req: request(0, "alice"), wantErr: true},
		{name: "negative duration", req: request(-15, "alice"), wantErr: true},
		{name: "over a week", req: request(MaxDuration+1, "alice"), wantErr: true},
		{name: "blank name", req: Request{Name: " ", Location: "Zoom", Duration: 30, Invitees: []string{"alice"}}, wantErr: true},
		{name: "blank location", req: Request{Name: "Sync", Duration: 30, Invitees: []string{"alice"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRequest_Host(t *testing.T) {
	assert.Equal(t, "alice", request(30, "alice", "bob").Host())
	assert.Empty(t, request(30).Host())
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "30", want: 30},
		{in: " 90 ", want: 90},
		{in: "10080", want: 10080},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "0", wantErr: true},
		{in: "10081", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest("Review", "45", "Room 2", false, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, Request{
		Name:     "Review",
		Location: "Room 2",
		Duration: 45,
		Invitees: []string{"alice", "bob"},
	}, req)

	_, err = ParseRequest("Review", "45", "Room 2", false, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseRequest("Review", "soon", "Room 2", false, []string{"alice"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
