package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Phase 7: Negotiation Co-Pilot --

// adviseNegotiation finds the weakest scoring dimension and drafts a
// negotiation opener targeting it. Ties resolve in the fixed dimension order
// cost, quality, speed, risk, so equal scores always target cost first.
func (e *Engine) adviseNegotiation(
	metadata *schemas.DocumentMetadata,
	commercial *schemas.CommercialSummary,
	scoring *schemas.MCDScoring,
) schemas.NegotiationCopilot {
	dims := []struct {
		name  string
		score float64
	}{
		{"cost", scoring.ScoreBreakdown.CostScore},
		{"quality", scoring.ScoreBreakdown.QualityScore},
		{"speed", scoring.ScoreBreakdown.SpeedScore},
		{"risk", scoring.ScoreBreakdown.RiskScore},
	}
	weakest := dims[0]
	for _, d := range dims[1:] {
		if d.score < weakest.score {
			weakest = d
		}
	}

	vendor := metadata.VendorName
	cost := commercial.LandedCostUSD
	days := commercial.DeliveryDays
	payment := commercial.PaymentTerms

	n := schemas.NegotiationCopilot{WeakestDimension: weakest.name}
	switch weakest.name {
	case "cost":
		n.IdentifiedWeakness = fmt.Sprintf("High total landed cost of $%s reduces competitiveness.", formatMoney(cost))
		n.SuggestedEmailScript = fmt.Sprintf("Dear %s Team, we appreciate your detailed quotation. "+
			"However, the total landed cost of $%s exceeds our benchmark for this category. "+
			"Could you review your unit pricing or offer volume-based discounts to bring this closer to our target? "+
			"We are eager to establish a long-term partnership and can offer multi-year commitment in exchange for competitive pricing.",
			vendor, formatMoney(cost))
	case "quality":
		n.IdentifiedWeakness = fmt.Sprintf("Brand trust and quality indicators are below expectations (score: %.0f/100).", weakest.score)
		n.SuggestedEmailScript = fmt.Sprintf("Dear %s Team, while your pricing is noted, we require stronger quality assurances. "+
			"Could you provide additional ISO certifications, third-party quality audit reports, or extended warranty terms? "+
			"Our procurement policy mandates Tier 1 quality compliance for all mission-critical components.",
			vendor)
	case "speed":
		n.IdentifiedWeakness = fmt.Sprintf("Delivery timeline of %d days is significantly slower than competitors.", days)
		n.SuggestedEmailScript = fmt.Sprintf("Dear %s Team, your quotation is commercially interesting; "+
			"however, the %d-day delivery timeline presents a challenge for our project schedule. "+
			"Can you offer expedited shipping or staged delivery to bring the first batch within 2 weeks? "+
			"We are willing to discuss a slight premium for faster fulfillment.",
			vendor, days)
	default: // risk
		n.IdentifiedWeakness = fmt.Sprintf("Contractual risk profile is elevated due to unfavorable terms (score: %.0f/100).", weakest.score)
		n.SuggestedEmailScript = fmt.Sprintf("Dear %s Team, we are interested in your offering but have concerns regarding the payment and warranty terms. "+
			"Specifically, we would need Net 30 payment terms (instead of %s) and a minimum 2-year warranty. "+
			"These adjustments are necessary to align with our corporate procurement guidelines and risk tolerance.",
			vendor, payment)
	}
	return n
}

// formatMoney renders a dollar amount with thousands separators and two
// decimals ("1234567.5" renders as "1,234,567.50").
func formatMoney(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
