package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewDiagnosticSystem(level).WithWriters(&out, &errOut), &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      DiagnosticLevel
		wantOut    []string
		notWantOut []string
		wantErr    bool
	}{
		{
			name:       "quiet shows errors only",
			level:      DiagnosticError,
			notWantOut: []string{"[WARN]", "[INFO]", "[VERBOSE]", "[DEBUG]"},
			wantErr:    true,
		},
		{
			name:       "info hides verbose and debug",
			level:      DiagnosticInfo,
			wantOut:    []string{"[WARN] careful", "[INFO] hello", "[SUCCESS] done"},
			notWantOut: []string{"[VERBOSE]", "[DEBUG]"},
			wantErr:    true,
		},
		{
			name:    "debug shows everything",
			level:   DiagnosticDebug,
			wantOut: []string{"[INFO] hello", "[VERBOSE] details", "[DEBUG] internals"},
			wantErr: true,
		},
		{
			name:       "silent shows nothing",
			level:      DiagnosticSilent,
			notWantOut: []string{"[INFO]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, out, errOut := newTestDiagnostics(tt.level)

			d.Error("broken %d", 1)
			d.Warn("careful")
			d.Info("hello")
			d.Success("done")
			d.Verbose("details")
			d.Debug("internals")

			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			for _, notWant := range tt.notWantOut {
				assert.NotContains(t, out.String(), notWant)
			}
			if tt.wantErr {
				assert.Equal(t, "[ERROR] broken 1\n", errOut.String())
			} else {
				assert.Empty(t, errOut.String())
			}
		})
	}
}

func TestDiagnosticSystem_SummarySortsKeys(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Summary("Done", map[string]interface{}{
		"Lines failed":    0,
		"Inputs read":     2,
		"Lines succeeded": 5,
	})

	text := out.String()
	assert.Contains(t, text, "Done")
	inputs := strings.Index(text, "Inputs read: 2")
	failed := strings.Index(text, "Lines failed: 0")
	succeeded := strings.Index(text, "Lines succeeded: 5")
	assert.True(t, inputs < failed && failed < succeeded, "keys not sorted:\n%s", text)
}

func TestDiagnosticSystem_IndentedList(t *testing.T) {
	d, out, _ := newTestDiagnostics(DiagnosticInfo)

	d.Section("Inputs")
	d.Indent()
	d.List("%s", "a.txt")
	d.Unindent()
	d.Unindent()
	d.List("%s", "b.txt")

	assert.Equal(t, "Inputs\n  - a.txt\n- b.txt\n", out.String())
}
