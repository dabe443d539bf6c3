// Package sysinfo captures the static identity of the host terminal.
package sysinfo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/sami-lachheb/local-warp/internal/domain"
)

const probeTimeout = 2 * time.Second

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// NewTerminalContext builds the session's context store with the host
// identity filled in. Identity fields are not refreshed afterwards.
func NewTerminalContext(ctx context.Context, maxHistory int) *domain.TerminalContext {
	if maxHistory <= 0 {
		maxHistory = domain.DefaultMaxHistory
	}

	hostname, _ := os.Hostname()
	wd, _ := os.Getwd()
	shellName := detectShell()

	return &domain.TerminalContext{
		Hostname:         hostname,
		OSName:           osName(),
		OSVersion:        strings.TrimSpace(probe(ctx, "uname", "-r")),
		ShellName:        shellName,
		ShellVersion:     shellVersion(ctx, shellName),
		WorkingDirectory: wd,
		MaxHistory:       maxHistory,
	}
}

func osName() string {
	switch runtime.GOOS {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	default:
		return runtime.GOOS
	}
}

func detectShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return filepath.Base(shell)
	}
	return "bash"
}

// shellVersion extracts a dotted version from `<shell> --version`;
// empty when the probe fails.
func shellVersion(ctx context.Context, shellName string) string {
	out := probe(ctx, shellName, "--version")
	if out == "" {
		return ""
	}
	firstLine, _, _ := strings.Cut(out, "\n")
	return versionPattern.FindString(firstLine)
}

func probe(ctx context.Context, name string, args ...string) string {
	if _, err := exec.LookPath(name); err != nil {
		return ""
	}
	cctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	out, err := exec.CommandContext(cctx, name, args...).Output()
	if err != nil {
		return ""
	}
	return string(out)
}
