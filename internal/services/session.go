// Package services orchestrates the query lifecycle end-to-end.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/ports"
)

// SessionService runs one query cycle at a time: prompt build, remote
// generation, advisory risk evaluation, confirmed execution. It owns
// the TerminalContext for the lifetime of the session; the builder and
// executor receive it by handle, preserving single-writer discipline.
type SessionService struct {
	Store     *domain.TerminalContext
	Builder   ports.PromptBuilder
	Generator ports.CommandGenerator
	Security  ports.SecurityService
	Executor  ports.CommandExecutor
	Logger    ports.Logger

	// ConfirmBeforeExecute is the config default; AutoExecute on the
	// request overrides it per query.
	ConfirmBeforeExecute bool
}

// Run processes a single natural-language query.
func (s *SessionService) Run(req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.Store == nil || s.Builder == nil || s.Generator == nil || s.Executor == nil || s.Logger == nil {
		return domain.QueryResponse{}, errors.New("services.SessionService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.NewString()
	started := time.Now()
	s.Logger.Debug("processing query", map[string]interface{}{
		"request_id": requestID,
		"query_len":  len(req.Query),
	})

	prompt, err := s.Builder.Build(req.Query, s.Store)
	if err != nil {
		return domain.QueryResponse{}, err
	}

	command, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		s.Logger.Warn("command generation failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return domain.QueryResponse{}, err
	}

	risk := domain.RiskAssessment{Level: domain.RiskSafe}
	if s.Security != nil {
		if assessment, err := s.Security.Evaluate(command); err == nil {
			risk = assessment
		} else {
			s.Logger.Warn("guardrail evaluation failed", map[string]interface{}{
				"request_id": requestID,
				"error":      err.Error(),
			})
		}
	}

	result := s.Executor.Execute(ctx, command, domain.ExecOptions{
		RequireConfirmation: s.ConfirmBeforeExecute && !req.AutoExecute,
		Warnings:            risk.Reasons,
	})

	s.Logger.Debug("query cycle finished", map[string]interface{}{
		"request_id":  requestID,
		"success":     result.Success,
		"return_code": result.ReturnCode,
		"elapsed":     time.Since(started).String(),
	})

	return domain.QueryResponse{
		Command:        command,
		RiskAssessment: risk,
		Result:         &result,
	}, nil
}
