// Package llmclient provides the AI extraction client used for quotation
// analysis. The Gemini-backed client sends the raw document, market feed, and
// buyer priorities to the model and decodes the structured analysis it
// returns. Callers fall back to the deterministic engine when no client is
// configured or a call yields nothing.
package llmclient

import (
	"context"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// Client is the contract for AI-powered quotation analysis.
type Client interface {
	// AnalyzeQuotation runs the full analysis through the model. It returns
	// (nil, nil) when the model produced no usable result, which callers
	// should treat as a signal to fall back to the rule-based engine. A
	// non-nil error indicates a transport or API failure after retries.
	AnalyzeQuotation(
		ctx context.Context,
		doc *schemas.RawQuotation,
		intel *schemas.MarketIntelligence,
		priorities *schemas.BuyerPriorities,
	) (*schemas.VendorAnalysis, error)
}
