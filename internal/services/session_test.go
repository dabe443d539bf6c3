package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/pkg/logger"
)

type stubBuilder struct {
	prompt string
	err    error
	built  int
}

func (s *stubBuilder) Build(string, *domain.TerminalContext) (string, error) {
	s.built++
	return s.prompt, s.err
}

type stubGenerator struct {
	command string
	err     error
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	return s.command, s.err
}

type stubSecurity struct {
	risk domain.RiskAssessment
	err  error
}

func (s *stubSecurity) Evaluate(string) (domain.RiskAssessment, error) {
	return s.risk, s.err
}

type spyExecutor struct {
	result  domain.CommandResult
	called  int
	command string
	opts    domain.ExecOptions
}

func (s *spyExecutor) Execute(_ context.Context, command string, opts domain.ExecOptions) domain.CommandResult {
	s.called++
	s.command = command
	s.opts = opts
	return s.result
}

func newTestService(gen *stubGenerator, exec *spyExecutor) *SessionService {
	return &SessionService{
		Store:                &domain.TerminalContext{MaxHistory: 10},
		Builder:              &stubBuilder{prompt: "PROMPT"},
		Generator:            gen,
		Security:             &stubSecurity{risk: domain.RiskAssessment{Level: domain.RiskSafe}},
		Executor:             exec,
		Logger:               logger.NewNop(),
		ConfirmBeforeExecute: true,
	}
}

func TestRunExecutesGeneratedCommand(t *testing.T) {
	exec := &spyExecutor{result: domain.CommandResult{Success: true, ReturnCode: 0, Stdout: "ok"}}
	svc := newTestService(&stubGenerator{command: "ls -la"}, exec)

	resp, err := svc.Run(domain.QueryRequest{Query: "list files"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Command != "ls -la" {
		t.Fatalf("unexpected command: %q", resp.Command)
	}
	if exec.called != 1 || exec.command != "ls -la" {
		t.Fatalf("executor not invoked with generated command: %+v", exec)
	}
	if !exec.opts.RequireConfirmation {
		t.Fatal("confirmation should be required by default")
	}
	if resp.Result == nil || !resp.Result.Success {
		t.Fatalf("result not propagated: %+v", resp.Result)
	}
}

func TestRunAutoExecuteSkipsConfirmation(t *testing.T) {
	exec := &spyExecutor{result: domain.CommandResult{Success: true}}
	svc := newTestService(&stubGenerator{command: "pwd"}, exec)

	_, err := svc.Run(domain.QueryRequest{Query: "where am i", AutoExecute: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if exec.opts.RequireConfirmation {
		t.Fatal("auto-execute must skip confirmation")
	}
}

func TestRunGenerationFailureSkipsExecution(t *testing.T) {
	exec := &spyExecutor{}
	genErr := &domain.GenerateError{Kind: domain.KindTimeout, Message: "request timed out"}
	svc := newTestService(&stubGenerator{err: genErr}, exec)

	_, err := svc.Run(domain.QueryRequest{Query: "anything"})
	if err == nil {
		t.Fatal("expected generation error to propagate")
	}
	var got *domain.GenerateError
	if !errors.As(err, &got) || got.Kind != domain.KindTimeout {
		t.Fatalf("expected typed timeout failure, got %v", err)
	}
	if exec.called != 0 {
		t.Fatal("executor must not run after a generation failure")
	}
}

func TestRunPassesGuardrailWarnings(t *testing.T) {
	exec := &spyExecutor{result: domain.CommandResult{}}
	svc := newTestService(&stubGenerator{command: "rm -rf /tmp/cache"}, exec)
	svc.Security = &stubSecurity{risk: domain.RiskAssessment{
		Level:   domain.RiskHigh,
		Reasons: []string{"Recursive delete"},
	}}

	resp, err := svc.Run(domain.QueryRequest{Query: "clean the cache"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.RiskAssessment.Level != domain.RiskHigh {
		t.Fatalf("risk not propagated: %+v", resp.RiskAssessment)
	}
	if len(exec.opts.Warnings) != 1 || exec.opts.Warnings[0] != "Recursive delete" {
		t.Fatalf("warnings not forwarded to executor: %+v", exec.opts.Warnings)
	}
}

func TestRunRejectsMissingDependencies(t *testing.T) {
	svc := &SessionService{}
	if _, err := svc.Run(domain.QueryRequest{Query: "anything"}); err == nil {
		t.Fatal("expected dependency error")
	}
}
