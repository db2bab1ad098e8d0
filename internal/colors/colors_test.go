package colors

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutputWriters(&out, &errOut)
	t.Cleanup(func() { SetOutputWriters(os.Stdout, os.Stderr) })
	return &out, &errOut
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) record(level, msg string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf("%s %s %v", level, msg, args))
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args...) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args...) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args...) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg, args...) }

func TestOutputStreams(t *testing.T) {
	tests := []struct {
		name       string
		print      func(...string)
		wantStderr bool
		wantPrefix string
		wantColor  string
	}{
		{name: "error", print: Error, wantStderr: true, wantPrefix: "Error:", wantColor: Red},
		{name: "warning", print: Warning, wantStderr: true, wantPrefix: "Warning:", wantColor: Yellow},
		{name: "success", print: Success, wantPrefix: checkmark, wantColor: Green},
		{name: "info", print: Info, wantColor: Blue},
		{name: "log info", print: LogInfo, wantStderr: true, wantColor: Blue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := capture(t)
			tt.print("something", "happened")

			got, other := out.String(), errOut.String()
			if tt.wantStderr {
				got, other = other, got
			}
			assert.Empty(t, other)
			assert.Contains(t, got, "something happened")
			assert.Contains(t, got, tt.wantPrefix)
			assert.Contains(t, got, tt.wantColor)
		})
	}
}

func TestDebugGating(t *testing.T) {
	_, errOut := capture(t)

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	defer SetDebug(false)
	Debug("visible")
	assert.Contains(t, errOut.String(), "Debug:")
	assert.Contains(t, errOut.String(), "visible")
}

func TestQuietSuppressesStdout(t *testing.T) {
	out, errOut := capture(t)
	SetQuiet(true)
	defer SetQuiet(false)

	Info("info")
	Success("done")
	Warning("careful")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "careful")
}

func TestMirrorsToLogger(t *testing.T) {
	capture(t)
	rec := &recordingLogger{}
	SetLogger(rec)
	defer SetLogger(nil)

	Error("broken")
	Success("saved")

	require.Len(t, rec.lines, 2)
	assert.Equal(t, "error broken []", rec.lines[0])
	assert.Equal(t, "info saved [type success]", rec.lines[1])
}
