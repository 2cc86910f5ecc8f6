package engine

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/milk9111/frameloop/logging"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticFilter(t *testing.T) {
	cases := []struct {
		name   string
		diag   Diagnostic
		logged bool
	}{
		{"legacy_profile_call", Diagnostic{ID: 1280, Severity: SeverityHigh}, false},
		{"pixel_transfer", Diagnostic{ID: 131154, Severity: SeverityMedium}, false},
		{"shader_recompile", Diagnostic{ID: 131218, Severity: SeverityMedium}, false},
		{"notification", Diagnostic{ID: 5, Severity: SeverityNotification}, false},
		{"other", Diagnostic{ID: 5, Severity: SeverityHigh, Message: "bad"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewDiagnosticFilter(logging.New(logging.Config{Level: "debug", Output: &buf}), DefaultIgnoredDiagnostics...)
			require.Equal(t, c.logged, f.Report(c.diag))
			require.Equal(t, c.logged, buf.Len() > 0)
		})
	}
}

func TestDiagnosticUnwrap(t *testing.T) {
	base := errors.New("disk full")
	err := fmt.Errorf("present: %w", &Diagnostic{ID: 1, Message: "screenshot", Err: base})
	var d *Diagnostic
	require.ErrorAs(t, err, &d)
	require.ErrorIs(t, err, base)
	require.Equal(t, 1, d.ID)
}
