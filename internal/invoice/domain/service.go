package domain

import "context"

// GenerateRequest carries already-typed user input for one generation.
type GenerateRequest struct {
	Parties
	Items []LineItem
	Mode  Mode
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (*Artifact, error)
}
