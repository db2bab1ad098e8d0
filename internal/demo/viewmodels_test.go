package demo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/viewstack/pkg/navigation"
)

func TestJournalKeepsLatestLines(t *testing.T) {
	j := NewJournal(3)
	for i := 1; i <= 5; i++ {
		j.Add("line %d", i)
	}
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, j.Lines())
}

func TestJournalDefaultLimit(t *testing.T) {
	j := NewJournal(0)
	for i := 0; i < 20; i++ {
		j.Add("%d", i)
	}
	assert.Len(t, j.Lines(), 8)
}

func TestDetailViewModelDepth(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		param   navigation.Parameter
		wantErr bool
		depth   int
	}{
		{name: "valid depth", param: navigation.NewParameter(ParamDepth, 3), depth: 3},
		{name: "missing depth", param: navigation.Parameter{}, wantErr: true},
		{name: "wrong type", param: navigation.NewParameter(ParamDepth, "3"), wantErr: true},
		{name: "zero depth", param: navigation.NewParameter(ParamDepth, 0), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DetailViewModel{journal: NewJournal(4)}
			err := d.WhenNavigatingTo(ctx, tt.param)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 0, d.Depth())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.depth, d.Depth())
			assert.Equal(t, fmt.Sprintf("detail-%d", tt.depth), d.ID())
		})
	}
}

func TestDetailViewModelLifecycleJournal(t *testing.T) {
	ctx := context.Background()
	j := NewJournal(8)
	d := &DetailViewModel{journal: j}

	require.NoError(t, d.WhenNavigatingTo(ctx, navigation.NewParameter(ParamDepth, 1)))
	require.NoError(t, d.WhenNavigatedTo(ctx, navigation.NewParameter(ParamDepth, 1)))
	require.NoError(t, d.WhenNavigatedFrom(ctx, navigation.Parameter{}))
	d.Destroy()

	assert.True(t, d.Destroyed())
	assert.Equal(t, []string{
		"detail-1: navigated to {depth: 1}",
		"detail-1: navigated from",
		"detail-1: destroyed",
	}, j.Lines())
}
