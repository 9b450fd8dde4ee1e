package llm

import (
	"context"
	"log"

	"delivery-optimizer/internal/agent"
)

// FallbackParser tries a model-backed parser first and degrades to a
// deterministic backup when the model fails or breaks the contract.
type FallbackParser struct {
	primary agent.Parser
	backup  agent.Parser
}

func NewFallbackParser(primary, backup agent.Parser) *FallbackParser {
	return &FallbackParser{primary: primary, backup: backup}
}

func (p *FallbackParser) Parse(ctx context.Context, query string) (agent.Request, error) {
	req, err := p.primary.Parse(ctx, query)
	if err == nil {
		return req, nil
	}
	log.Printf("model parse failed, falling back to rules: %v", err)
	return p.backup.Parse(ctx, query)
}
