package llmclient

import (
	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// fillDefaults backfills fields the model left empty so every AI-produced
// analysis carries the same shape as a rule-based one. Identity fields fall
// back to the raw document, classification fields to their documented
// defaults, and empty collections become their explicit empty forms.
func fillDefaults(a *schemas.VendorAnalysis, doc *schemas.RawQuotation) {
	md := &a.DocumentMetadata
	if md.VendorName == "" {
		md.VendorName = orDefault(doc.VendorName, schemas.NotSpecified)
	}
	if md.QuotationID == "" {
		md.QuotationID = orDefault(doc.QuotationID, schemas.NotSpecified)
	}
	if md.IntegrityFlags == nil {
		md.IntegrityFlags = []string{}
	}

	if a.LineItems == nil {
		a.LineItems = []schemas.AnalyzedLineItem{}
	}

	cs := &a.CommercialSummary
	if cs.TaxDetails == nil {
		cs.TaxDetails = map[string]float64{}
	}
	if cs.OriginalCurrency == "" {
		cs.OriginalCurrency = orDefault(doc.Currency, "USD")
	}
	if cs.DeliveryDays == 0 {
		// A zero-day delivery is never a real extraction result; treat it as
		// the unknown sentinel.
		cs.DeliveryDays = 999
	}
	if cs.DeliveryRaw == "" {
		cs.DeliveryRaw = orDefault(doc.DeliveryTerms, schemas.NotSpecified)
	}
	if cs.PaymentTerms == "" {
		cs.PaymentTerms = orDefault(doc.PaymentTerms, schemas.NotSpecified)
	}

	q := &a.Quality
	if q.BrandTier == "" {
		q.BrandTier = "Tier 2: Mid-Market"
	}
	if !q.ESGScoreRaw.IsNumber && q.ESGScoreRaw.Label == "" {
		q.ESGScoreRaw.Label = schemas.NotSpecified
	}
	if q.ESGClassification == "" {
		q.ESGClassification = schemas.NotSpecified
	}
	if q.Certifications == nil {
		q.Certifications = []string{}
	}
	if q.WarrantyRaw == "" {
		q.WarrantyRaw = orDefault(doc.Warranty, schemas.NotSpecified)
	}
	if q.WarrantyClass == "" {
		q.WarrantyClass = schemas.NotSpecified
	}

	r := &a.RiskAnalysis
	if r.OverallRiskLevel == "" {
		r.OverallRiskLevel = schemas.RiskModerate
	}
	if len(r.HiddenClauses) == 0 {
		r.HiddenClauses = []string{"None detected"}
	}

	m := &a.MCDScoring
	if m.NexusTrustScore == 0 {
		m.NexusTrustScore = 50.0
	}
	if m.ScoreBreakdown == (schemas.ScoreBreakdown{}) {
		m.ScoreBreakdown = schemas.ScoreBreakdown{
			CostScore:    50.0,
			QualityScore: 50.0,
			SpeedScore:   50.0,
			RiskScore:    50.0,
		}
	}

	if a.NegotiationCopilot.WeakestDimension == "" {
		a.NegotiationCopilot.WeakestDimension = "cost"
	}
}
