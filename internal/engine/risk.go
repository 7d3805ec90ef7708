package engine

import (
	"fmt"
	"strings"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Phase 5: Contractual Risk Scanning --

// variablePricingPhrases are scanned in order; only the first hit is
// recorded, so a document riddled with pricing caveats is not punished per
// occurrence.
var variablePricingPhrases = []string{
	"prices subject to",
	"market fluctuation",
	"price adjustment",
	"subject to change",
	"prices may vary",
}

// scanRisk scores contractual risk from the combined document text, the raw
// payment terms, and the already-assessed quality signals. Points accumulate
// per category and bucket into an overall level.
func (e *Engine) scanRisk(doc *schemas.RawQuotation, quality *schemas.QualityIntelligence) schemas.RiskAnalysis {
	text := strings.ToLower(doc.RawText + " " + doc.FinePrint)
	points := 0
	clauses := []string{}

	for _, phrase := range variablePricingPhrases {
		if strings.Contains(text, phrase) {
			points += 15
			clauses = append(clauses, fmt.Sprintf("Variable Pricing: detected '%s'", phrase))
			break
		}
	}
	if strings.Contains(text, "force majeure") {
		points += 10
		clauses = append(clauses, "Force Majeure clause detected")
	}
	if strings.Contains(text, "limitation of liability") || strings.Contains(text, "liability cap") {
		points += 10
		clauses = append(clauses, "Liability Cap clause detected")
	}
	if strings.Contains(text, "auto-renew") || strings.Contains(text, "automatic renewal") {
		points += 8
		clauses = append(clauses, "Auto-Renewal clause detected")
	}
	if strings.Contains(text, "non-refundable") || strings.Contains(text, "no refund") {
		points += 12
		clauses = append(clauses, "Non-Refundable terms detected")
	}

	// The raw payment terms are scanned here, not the normalized ones, so an
	// absent field reads as empty rather than the NOT_SPECIFIED sentinel.
	payment := strings.ToLower(doc.PaymentTerms)
	if strings.Contains(payment, "100% upfront") || strings.Contains(payment, "advance") {
		points += 20
		clauses = append(clauses, "High-Risk Payment: 100% upfront required")
	} else if strings.Contains(payment, "50% upfront") || strings.Contains(payment, "50% advance") {
		points += 10
		clauses = append(clauses, "Moderate-Risk Payment: 50% upfront required")
	}

	switch quality.WarrantyClass {
	case WarrantyPoor:
		points += 10
	case schemas.NotSpecified:
		points += 15
	}

	if strings.Contains(quality.BrandTier, "Tier 3") {
		points += 15
	} else if strings.Contains(quality.BrandTier, "Tier 2") {
		points += 5
	}

	if quality.CustomerRating < 3.0 {
		points += 10
	} else if quality.CustomerRating < 3.5 {
		points += 5
	}

	var level schemas.RiskLevel
	switch {
	case points >= 50:
		level = schemas.RiskCritical
	case points >= 30:
		level = schemas.RiskHigh
	case points >= 15:
		level = schemas.RiskModerate
	default:
		level = schemas.RiskLow
	}

	var parts []string
	if points >= 30 {
		parts = append(parts, fmt.Sprintf("Accumulated %d risk points from contractual analysis.", points))
	}
	if len(clauses) > 0 {
		parts = append(parts, fmt.Sprintf("Detected %d concerning clause(s).", len(clauses)))
	}
	if len(parts) == 0 {
		parts = append(parts, "No significant risk factors detected. Strong contractual terms.")
	}

	if len(clauses) == 0 {
		clauses = []string{"None detected"}
	}

	return schemas.RiskAnalysis{
		OverallRiskLevel: level,
		RiskPoints:       points,
		HiddenClauses:    clauses,
		Justification:    strings.Join(parts, " "),
	}
}
