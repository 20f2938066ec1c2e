package output

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	wrapped := Wrap(text, 10)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width 10", line)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is t…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestNewSuccess(t *testing.T) {
	resp := NewSuccess("done")
	if !resp.Success || resp.Message != "done" {
		t.Errorf("NewSuccess = %+v", resp)
	}
}

func TestNewTimestamped(t *testing.T) {
	resp := NewTimestamped()
	if resp.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
}
