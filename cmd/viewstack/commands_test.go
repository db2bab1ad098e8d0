package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/viewstack/internal/config"
	"github.com/cristianoliveira/viewstack/internal/history"
)

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, NewVersionCmd(func() string { return "1.2.3+abc" }))
	require.NoError(t, err)
	assert.Equal(t, "viewstack version 1.2.3+abc\n", out)
}

func TestVersionCmdRejectsArgs(t *testing.T) {
	_, err := execute(t, NewVersionCmd(func() string { return "1" }), "extra")
	require.Error(t, err)
}

func TestNewCmdPanicsOnNilDependency(t *testing.T) {
	assert.Panics(t, func() { NewVersionCmd(nil) })
	assert.Panics(t, func() { NewConfigCmd(nil) })
	assert.Panics(t, func() { NewHistoryCmd(nil) })
	assert.Panics(t, func() { NewDemoCmd(nil) })
}

func TestConfigCmd(t *testing.T) {
	entries := func() []config.Entry {
		return []config.Entry{{Key: "animate", Value: "true"}, {Key: "state_dir", Value: "/tmp/vs"}}
	}

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "all entries", want: "animate = \"true\"\nstate_dir = \"/tmp/vs\"\n"},
		{name: "single key", args: []string{"state_dir"}, want: "/tmp/vs\n"},
		{name: "unknown key", args: []string{"nope"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewConfigCmd(entries), tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown key")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func seedHistory(t *testing.T) (string, []int64) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	require.NoError(t, err)
	defer store.Close()

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	var ids []int64
	for _, snap := range []history.Snapshot{
		{Session: "aaaaaaaa-1111", Stack: "page", IDs: []string{"home"}, RecordedAt: at},
		{Session: "aaaaaaaa-1111", Stack: "page", IDs: []string{"home", "detail-1"}, RecordedAt: at},
		{Session: "bbbbbbbb-2222", Stack: "popup", IDs: []string{"toast-1"}, RecordedAt: at},
	} {
		id, err := store.Append(context.Background(), snap)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return path, ids
}

func openerFor(path string) func() (historyReader, error) {
	return func() (historyReader, error) {
		store, err := history.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func TestHistoryCmdListsNewestFirst(t *testing.T) {
	path, _ := seedHistory(t)

	out, err := execute(t, NewHistoryCmd(openerFor(path)), "--limit", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "VIEW MODELS")
	assert.Contains(t, out, "toast-1")
	assert.Contains(t, out, "home > detail-1")
	assert.NotContains(t, out, "aaaaaaaa-1111", "session ids are shortened")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	assert.Less(t, bytes.Index([]byte(out), []byte("toast-1")), bytes.Index([]byte(out), []byte("detail-1")))
}

func TestHistoryCmdSession(t *testing.T) {
	path, _ := seedHistory(t)

	out, err := execute(t, NewHistoryCmd(openerFor(path)), "--session", "aaaaaaaa-1111")
	require.NoError(t, err)
	assert.NotContains(t, out, "toast-1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], "home"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "home > detail-1"), lines[2])
}

func TestHistoryCmdOpenError(t *testing.T) {
	boom := errors.New("boom")
	_, err := execute(t, NewHistoryCmd(func() (historyReader, error) { return nil, boom }))
	require.ErrorIs(t, err, boom)
}

type recordingRunner struct {
	opts demoOptions
	err  error
}

func (r *recordingRunner) RunDemo(ctx context.Context, opts demoOptions) error {
	r.opts = opts
	return r.err
}

func TestDemoCmdOptions(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("VIEWSTACK_CONFIG_DIR", t.TempDir())
	t.Setenv("VIEWSTACK_STATE_DIR", stateDir)
	t.Setenv("VIEWSTACK_HISTORY_ENABLED", "true")
	t.Setenv("VIEWSTACK_METRICS_ADDR", "127.0.0.1:9464")
	config.Load()

	runner := &recordingRunner{}
	_, err := execute(t, NewDemoCmd(runner), "--no-animate", "--trace")
	require.NoError(t, err)

	assert.False(t, runner.opts.Animate)
	assert.Equal(t, "127.0.0.1:9464", runner.opts.MetricsAddr)
	assert.Equal(t, filepath.Join(stateDir, "traces.json"), runner.opts.TracePath)
	assert.Equal(t, filepath.Join(stateDir, "history.db"), runner.opts.HistoryDB)
}

func TestDemoCmdDefaults(t *testing.T) {
	t.Setenv("VIEWSTACK_CONFIG_DIR", t.TempDir())
	t.Setenv("VIEWSTACK_STATE_DIR", t.TempDir())
	config.Load()

	runner := &recordingRunner{}
	_, err := execute(t, NewDemoCmd(runner))
	require.NoError(t, err)

	assert.True(t, runner.opts.Animate)
	assert.Empty(t, runner.opts.TracePath)
	assert.Empty(t, runner.opts.HistoryDB)
	assert.Empty(t, runner.opts.MetricsAddr)
}

func TestDemoCmdPropagatesRunnerError(t *testing.T) {
	boom := errors.New("boom")
	_, err := execute(t, NewDemoCmd(&recordingRunner{err: boom}))
	require.ErrorIs(t, err, boom)
}
