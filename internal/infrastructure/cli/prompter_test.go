package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirmAcceptsYes(t *testing.T) {
	for _, input := range []string{"y\n", "yes\n", "  Y \n"} {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader(input), &out)
		ok, err := p.Confirm("ls -la", nil)
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", input, err)
		}
		if !ok {
			t.Fatalf("Confirm(%q) = false, want true", input)
		}
	}
}

func TestConfirmRejectsNo(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("n\n"), &out)
	ok, err := p.Confirm("rm file", nil)
	if err != nil {
		t.Fatalf("Confirm error = %v", err)
	}
	if ok {
		t.Fatal("Confirm = true, want false")
	}
}

func TestConfirmRepeatsOnUnrecognizedInput(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("maybe\nok\ny\n"), &out)
	ok, err := p.Confirm("ls", nil)
	if err != nil {
		t.Fatalf("Confirm error = %v", err)
	}
	if !ok {
		t.Fatal("expected eventual yes")
	}
	if got := strings.Count(out.String(), "Execute this command?"); got != 3 {
		t.Fatalf("prompt shown %d times, want 3", got)
	}
	if !strings.Contains(out.String(), "Please enter 'y' or 'n'.") {
		t.Fatal("missing retry notice")
	}
}

func TestConfirmShowsCommandAndWarnings(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("n\n"), &out)
	if _, err := p.Confirm("rm -rf /tmp/x", []string{"Recursive delete"}); err != nil {
		t.Fatalf("Confirm error = %v", err)
	}
	if !strings.Contains(out.String(), "$ rm -rf /tmp/x") {
		t.Fatal("proposed command not displayed")
	}
	if !strings.Contains(out.String(), "! Recursive delete") {
		t.Fatal("guardrail warning not displayed")
	}
}

func TestConfirmEOFIsDecline(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)
	ok, err := p.Confirm("ls", nil)
	if ok {
		t.Fatal("EOF must not confirm")
	}
	if err == nil {
		t.Fatal("expected error on EOF")
	}
}
