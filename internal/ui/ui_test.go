package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"always", ModeAlways},
		{"never", ModeNever},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"bogus", ModeAuto},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.input); got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNonTerminalPassthrough(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("creating file: %v", err)
	}
	defer f.Close()

	// A plain file is not a terminal, so text passes through unstyled.
	u := New(f)
	if got := u.OK("done"); got != "done" {
		t.Errorf("OK() = %q, want unstyled text", got)
	}
	if got := u.Title("Summary"); got != "Summary" {
		t.Errorf("Title() = %q, want unstyled text", got)
	}
}

func TestModeNeverDisablesStyling(t *testing.T) {
	u := NewWithMode(os.Stdout, ModeNever)
	if got := u.Error("bad"); got != "bad" {
		t.Errorf("Error() = %q, want unstyled text", got)
	}
}
