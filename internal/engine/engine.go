// Package engine implements the seven-phase deterministic quotation analysis
// pipeline and the cross-vendor comparator. Every phase is a pure function of
// its inputs: the engine holds only immutable lookup tables, a logger, and an
// injectable clock, so identical inputs always produce identical output.
package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// Engine runs the analysis pipeline. Construct with New; the zero value is not
// usable.
type Engine struct {
	rates  map[string]float64
	logger *zap.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRates overrides the currency conversion table. Keys are upper-case ISO
// codes mapping to the multiplier into the base currency; unknown codes fall
// back to 1.0 at lookup time.
func WithRates(rates map[string]float64) Option {
	return func(e *Engine) {
		if len(rates) == 0 {
			return
		}
		e.rates = make(map[string]float64, len(rates))
		for code, rate := range rates {
			e.rates[code] = rate
		}
	}
}

// WithClock overrides the time source used by the expiry check. Intended for
// tests that pin "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger attaches a logger for phase tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New builds an Engine with the default rate table, wall-clock time, and a
// no-op logger.
func New(opts ...Option) *Engine {
	e := &Engine{
		rates:  defaultRates(),
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func defaultRates() map[string]float64 {
	return map[string]float64{
		"USD": 1.0,
		"EUR": 1.08,
		"GBP": 1.26,
		"INR": 0.012,
	}
}

// AnalyzeVendor executes the full pipeline on a single vendor and returns a
// fresh analysis record. A nil intel behaves like an empty market feed and a
// nil priorities uses the default weight split. populationCosts and
// populationDays enable population-relative scoring when they carry at least
// two values; callers compute them in a batch pre-pass (see
// CommercialPreview). The pipeline never fails: malformed business data
// degrades to documented defaults instead.
func (e *Engine) AnalyzeVendor(
	doc *schemas.RawQuotation,
	intel *schemas.MarketIntelligence,
	priorities *schemas.BuyerPriorities,
	populationCosts []float64,
	populationDays []int,
) *schemas.VendorAnalysis {
	if doc == nil {
		doc = &schemas.RawQuotation{}
	}
	if intel == nil {
		intel = &schemas.MarketIntelligence{}
	}

	metadata := e.checkMetadata(doc)
	lineItems, commercial := e.extractCommercial(doc)
	quality := e.assessQuality(doc, intel)
	risk := e.scanRisk(doc, &quality)
	scoring := e.scoreMCDA(&commercial, &quality, &risk, priorities, populationCosts, populationDays)
	negotiation := e.adviseNegotiation(&metadata, &commercial, &scoring)

	e.logger.Debug("Vendor analysis complete",
		zap.String("vendor", metadata.VendorName),
		zap.Float64("trust_score", scoring.NexusTrustScore),
		zap.String("risk_level", string(risk.OverallRiskLevel)),
		zap.Int("risk_points", risk.RiskPoints),
	)

	return &schemas.VendorAnalysis{
		DocumentMetadata:   metadata,
		LineItems:          lineItems,
		CommercialSummary:  commercial,
		Quality:            quality,
		RiskAnalysis:       risk,
		MCDScoring:         scoring,
		NegotiationCopilot: negotiation,
	}
}

// CommercialPreview runs only the commercial extraction and term
// normalization phases, returning the landed cost and normalized delivery
// days. Callers use it as the cheap batch pre-pass that builds the population
// arrays for relative scoring.
func (e *Engine) CommercialPreview(doc *schemas.RawQuotation) (landedCost float64, deliveryDays int) {
	if doc == nil {
		doc = &schemas.RawQuotation{}
	}
	_, commercial := e.extractCommercial(doc)
	return commercial.LandedCostUSD, commercial.DeliveryDays
}

// orNotSpecified substitutes the documented default for absent string fields.
func orNotSpecified(s string) string {
	if s == "" {
		return schemas.NotSpecified
	}
	return s
}
