package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sami-lachheb/local-warp/internal/domain"
)

func TestPlainRendererSuccessWithOutput(t *testing.T) {
	var out bytes.Buffer
	r := &PlainRenderer{out: &out}
	r.RenderResult(domain.CommandResult{Success: true, Stdout: "file.txt"})
	if !strings.Contains(out.String(), "Output:") || !strings.Contains(out.String(), "file.txt") {
		t.Fatalf("output not rendered: %q", out.String())
	}
}

func TestPlainRendererSuccessSilent(t *testing.T) {
	var out bytes.Buffer
	r := &PlainRenderer{out: &out}
	r.RenderResult(domain.CommandResult{Success: true})
	if !strings.Contains(out.String(), "Command executed successfully with no output.") {
		t.Fatalf("silent success message missing: %q", out.String())
	}
}

func TestPlainRendererFailureShowsStderr(t *testing.T) {
	var out bytes.Buffer
	r := &PlainRenderer{out: &out}
	r.RenderResult(domain.CommandResult{Success: false, Stderr: "no such file"})
	if !strings.Contains(out.String(), "Command failed or was cancelled.") {
		t.Fatalf("failure banner missing: %q", out.String())
	}
	if !strings.Contains(out.String(), "no such file") {
		t.Fatalf("stderr not shown: %q", out.String())
	}
}

func TestPlainRendererGenerationFailure(t *testing.T) {
	var out bytes.Buffer
	r := &PlainRenderer{out: &out}
	r.RenderFailure(&domain.GenerateError{Kind: domain.KindTimeout, Message: "request timed out"})
	if !strings.Contains(out.String(), "Error generating command: timeout: request timed out") {
		t.Fatalf("failure line wrong: %q", out.String())
	}
}

func TestElideOutputCapsLongStdout(t *testing.T) {
	long := strings.Repeat("x", maxRenderedOutput+2048)
	got := elideOutput(long)
	if len(got) >= len(long) {
		t.Fatal("long output not elided")
	}
	if !strings.Contains(got, "of output elided") {
		t.Fatalf("elision marker missing: %q", got[len(got)-64:])
	}
}

func TestElideOutputKeepsShortStdout(t *testing.T) {
	if got := elideOutput("hello"); got != "hello" {
		t.Fatalf("short output altered: %q", got)
	}
}
