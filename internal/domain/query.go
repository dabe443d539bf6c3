package domain

import "context"

// QueryRequest captures a single natural-language request.
type QueryRequest struct {
	Context     context.Context
	Query       string
	AutoExecute bool
}

// QueryResponse is the canonical response for one query cycle.
type QueryResponse struct {
	Command        string
	RiskAssessment RiskAssessment
	Result         *CommandResult
}
