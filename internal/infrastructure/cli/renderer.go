package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/ports"
)

// Output beyond this is elided; full output already reached the result
// consumer, this only bounds what lands on the terminal.
const maxRenderedOutput = 16 << 10

// NewRenderer picks a rendering strategy for the writer: colored when
// it is a terminal, plain otherwise.
func NewRenderer(out io.Writer) ports.Renderer {
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return NewColorRenderer(out)
	}
	return &PlainRenderer{out: out}
}

// PlainRenderer writes ASCII-only output, suitable for pipes and logs.
type PlainRenderer struct {
	out io.Writer
}

func (r *PlainRenderer) RenderResult(result domain.CommandResult) {
	if !result.Success {
		fmt.Fprintln(r.out, "\nCommand failed or was cancelled.")
		if result.Stderr != "" {
			fmt.Fprintln(r.out, "\nError output:")
			fmt.Fprintln(r.out, result.Stderr)
		}
	} else if result.Stdout != "" {
		fmt.Fprintln(r.out, "\nOutput:")
		fmt.Fprintln(r.out, elideOutput(result.Stdout))
	} else {
		fmt.Fprintln(r.out, "\nCommand executed successfully with no output.")
	}
	fmt.Fprintln(r.out)
}

func (r *PlainRenderer) RenderFailure(err error) {
	fmt.Fprintf(r.out, "Error generating command: %s\n", failureLine(err))
}

func (r *PlainRenderer) RenderNotice(message string) {
	fmt.Fprintln(r.out, message)
}

// ColorRenderer is the lipgloss-styled strategy used on interactive
// terminals.
type ColorRenderer struct {
	out     io.Writer
	ok      lipgloss.Style
	failed  lipgloss.Style
	heading lipgloss.Style
	notice  lipgloss.Style
}

// NewColorRenderer builds the styled renderer.
func NewColorRenderer(out io.Writer) *ColorRenderer {
	return &ColorRenderer{
		out:     out,
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		heading: lipgloss.NewStyle().Bold(true),
		notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

func (r *ColorRenderer) RenderResult(result domain.CommandResult) {
	if !result.Success {
		fmt.Fprintln(r.out, "\n"+r.failed.Render("Command failed or was cancelled."))
		if result.Stderr != "" {
			fmt.Fprintln(r.out, "\n"+r.heading.Render("Error output:"))
			fmt.Fprintln(r.out, r.failed.Render(result.Stderr))
		}
	} else if result.Stdout != "" {
		fmt.Fprintln(r.out, "\n"+r.heading.Render("Output:"))
		fmt.Fprintln(r.out, elideOutput(result.Stdout))
	} else {
		fmt.Fprintln(r.out, "\n"+r.ok.Render("Command executed successfully with no output."))
	}
	fmt.Fprintln(r.out)
}

func (r *ColorRenderer) RenderFailure(err error) {
	fmt.Fprintln(r.out, r.failed.Render("Error generating command: "+failureLine(err)))
}

func (r *ColorRenderer) RenderNotice(message string) {
	fmt.Fprintln(r.out, r.notice.Render(message))
}

// failureLine keeps failure reporting to a single human-readable line.
func failureLine(err error) string {
	if err == nil {
		return "unknown error"
	}
	var genErr *domain.GenerateError
	if errors.As(err, &genErr) {
		return genErr.Error()
	}
	return err.Error()
}

func elideOutput(s string) string {
	if len(s) <= maxRenderedOutput {
		return s
	}
	hidden := uint64(len(s) - maxRenderedOutput)
	return s[:maxRenderedOutput] + fmt.Sprintf("\n... (%s of output elided)", humanize.Bytes(hidden))
}

var (
	_ ports.Renderer = (*PlainRenderer)(nil)
	_ ports.Renderer = (*ColorRenderer)(nil)
)
