package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/galdraw/pkg/errors"
)

func TestRunToolMissing(t *testing.T) {
	_, err := RunTool(context.Background(), "", nil, "galdraw-no-such-tool")
	if !errors.Is(err, errors.ErrCodeToolUnavailable) {
		t.Fatalf("RunTool missing tool = %v, want TOOL_UNAVAILABLE", err)
	}
	if !strings.Contains(errors.UserMessage(err), "galdraw-no-such-tool is installed") {
		t.Errorf("message %q should name the tool", errors.UserMessage(err))
	}
}

func TestLookupToolHints(t *testing.T) {
	tests := []struct {
		tool  string
		stage string
		hint  string
	}{
		{"pdflatex", "PDF", "texlive"},
		{"pdftops", "EPS", "poppler"},
		{"magick", "PNG", "ImageMagick"},
		{"rsvg-convert", "", "librsvg"},
	}
	for _, tt := range tests {
		got := LookupTool(tt.tool)
		if got.Stage != tt.stage {
			t.Errorf("%s stage = %q, want %q", tt.tool, got.Stage, tt.stage)
		}
		if !strings.Contains(got.Hint, tt.hint) {
			t.Errorf("%s hint %q should mention %q", tt.tool, got.Hint, tt.hint)
		}
	}
	if got := LookupTool("unknown"); got.Stage != "output" || got.Name != "unknown" {
		t.Errorf("LookupTool(unknown) = %+v", got)
	}
}

func TestRunToolFailure(t *testing.T) {
	if !Available("sh") {
		t.Skip("sh not available")
	}
	_, err := RunTool(context.Background(), "", nil, "sh", "-c", "echo boom >&2; exit 3")
	if !errors.Is(err, errors.ErrCodeCompileFailed) {
		t.Fatalf("RunTool failing = %v, want COMPILE_FAILED", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should carry stderr", err)
	}
}

func TestRunToolStdin(t *testing.T) {
	if !Available("cat") {
		t.Skip("cat not available")
	}
	out, err := RunTool(context.Background(), "", []byte("hello"), "cat")
	if err != nil {
		t.Fatalf("RunTool: %v", err)
	}
	if string(out) != "hello" {
		t.Errorf("stdout = %q, want hello", out)
	}
}

func TestToPDFRequiresRsvg(t *testing.T) {
	if Available("rsvg-convert") {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeToolUnavailable) {
		t.Errorf("ToPDF without rsvg-convert = %v, want TOOL_UNAVAILABLE", err)
	}
}
