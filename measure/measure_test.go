package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Table {
	frozen := Table{
		Header: []Row{{{Column: NoColumn, Content: "[ ]"}, {Column: 0, Content: "Code"}}},
		Body: []Row{
			{{Column: NoColumn, Content: "[ ]"}, {Column: 0, Content: "A-1"}},
			{{Column: NoColumn, Content: "[x]"}, {Column: 0, Content: "A-100000"}},
		},
	}
	scrollable := Table{
		Header: []Row{{{Column: 1, Content: "Name"}, {Column: 2, Content: "Long header label"}}},
		Body: []Row{
			{{Column: 1, Content: "\x1b[1m日本語\x1b[0m"}, {Column: 2, Content: "x"}},
			{{Column: 1, Content: "ab\nabcdefgh"}, {Column: 2, Content: "y"}},
		},
	}
	return []Table{frozen, scrollable}
}

func TestMeasure_WidestCellAcrossTables(t *testing.T) {
	r := NewRegistry()
	s := r.Attach(sample()...)
	defer s.Release()

	cases := []struct {
		column int
		want   int
	}{
		{column: 0, want: 8},
		{column: 1, want: 8},
		{column: 2, want: 17},
	}
	for _, tc := range cases {
		w, ok, err := s.Measure(tc.column)
		require.NoError(t, err)
		require.True(t, ok, "column %d", tc.column)
		assert.Equal(t, tc.want, w, "column %d", tc.column)
	}
}

func TestMeasure_NotFound(t *testing.T) {
	r := NewRegistry()
	s := r.Attach(sample()...)
	defer s.Release()

	_, ok, err := s.Measure(9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRelease_LeavesNoSurface(t *testing.T) {
	r := NewRegistry()
	a := r.Attach(sample()...)
	b := r.Attach()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, r.Len())

	a.Release()
	a.Release()
	b.Release()
	assert.Zero(t, r.Len())

	_, _, err := a.Measure(0)
	assert.ErrorIs(t, err, ErrDetached)
}

func TestAttach_ClonesInput(t *testing.T) {
	r := NewRegistry()
	tables := sample()
	s := r.Attach(tables...)
	defer s.Release()

	tables[0].Body[1][1].Content = "much much longer content"
	w, _, _ := s.Measure(0)
	assert.Equal(t, 8, w)
}
