package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mondayNine int64 = 1980
	fridayFive int64 = 8220
	halfAnHour int64 = 30
	workWindow       = fridayFive - mondayNine
)

func TestBuild_EmptyTreeReturnsWindowStart(t *testing.T) {
	tree := Build(nil)

	got, ok := tree.FindEarliestFree(halfAnHour, mondayNine, fridayFive)
	require.True(t, ok)
	assert.Equal(t, New(1980, 2010), got)
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, New(0, DefaultBound), tree.Root())
}

func TestBuild_IntervalsMergeIntoSentinel(t *testing.T) {
	tree := Build([]Interval{
		New(1980, 2100),
		New(3000, 3100),
		New(10000, 13000),
	})

	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, New(0, DefaultBound), tree.Root())

	got, ok := tree.FindEarliestFree(halfAnHour, mondayNine, fridayFive)
	require.True(t, ok)
	assert.Equal(t, New(mondayNine, mondayNine+halfAnHour), got)
}

func TestBuild_WidensRootPastBound(t *testing.T) {
	tree := Build([]Interval{New(20000, 20200)})

	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, New(0, 20200), tree.Root())
}

func TestInsert_ChildrenAndRemainders(t *testing.T) {
	tree := Build(nil, WithBound(1000))

	tree.Insert(New(2000, 2100))
	tree.Insert(New(-100, -50))
	require.Equal(t, 3, tree.Len())

	tree.Insert(New(-80, 3000))

	assert.Equal(t, []Interval{
		New(-80, 3000),
		New(2000, 2100),
		New(-100, -50),
		New(3000, 3000),
	}, tree.Intervals())
}

func TestInsert_RightChain(t *testing.T) {
	tree := Build([]Interval{New(200, 300), New(400, 500), New(450, 600)}, WithBound(100))

	assert.Equal(t, []Interval{
		New(0, 100),
		New(200, 300),
		New(400, 600),
	}, tree.Intervals())
}

func TestFindEarliestFree(t *testing.T) {
	tests := []struct {
		name   string
		tree   *BusyTree
		d      int64
		start  int64
		end    int64
		want   Interval
		wantOK bool
	}{
		{
			name:   "whole work week",
			tree:   Build(nil),
			d:      workWindow,
			start:  mondayNine,
			end:    fridayFive,
			want:   New(mondayNine, fridayFive),
			wantOK: true,
		},
		{
			name:  "longer than the window",
			tree:  Build(nil),
			d:     workWindow + 1,
			start: mondayNine,
			end:   fridayFive,
		},
		{
			name:   "run after a short root",
			tree:   Build(nil, WithBound(100)),
			d:      200,
			start:  0,
			end:    fridayFive,
			want:   New(100, 300),
			wantOK: true,
		},
		{
			name:  "root ends before the window",
			tree:  Build(nil, WithBound(100)),
			d:     halfAnHour,
			start: mondayNine,
			end:   fridayFive,
		},
		{
			name:  "zero duration",
			tree:  Build(nil),
			d:     0,
			start: mondayNine,
			end:   fridayFive,
		},
		{
			name:  "empty window",
			tree:  Build(nil),
			d:     halfAnHour,
			start: fridayFive,
			end:   mondayNine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.tree.FindEarliestFree(tt.d, tt.start, tt.end)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFindEarliestFree_EmptyArena(t *testing.T) {
	var tree BusyTree

	got, ok := tree.FindEarliestFree(halfAnHour, mondayNine, fridayFive)
	require.True(t, ok)
	assert.Equal(t, New(mondayNine, mondayNine+halfAnHour), got)
	assert.Equal(t, Interval{}, tree.Root())
}
