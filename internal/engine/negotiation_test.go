package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

func negotiationFixture(breakdown schemas.ScoreBreakdown) (schemas.DocumentMetadata, schemas.CommercialSummary, schemas.MCDScoring) {
	md := schemas.DocumentMetadata{VendorName: "Apex Manufacturing"}
	commercial := schemas.CommercialSummary{
		LandedCostUSD: 1234567.5,
		DeliveryDays:  45,
		PaymentTerms:  "100% upfront",
	}
	scoring := schemas.MCDScoring{ScoreBreakdown: breakdown}
	return md, commercial, scoring
}

func TestAdviseNegotiation_TargetsWeakestDimension(t *testing.T) {
	e := New()

	t.Run("cost weakness", func(t *testing.T) {
		md, commercial, scoring := negotiationFixture(schemas.ScoreBreakdown{
			CostScore: 20, QualityScore: 80, SpeedScore: 70, RiskScore: 90,
		})
		n := e.adviseNegotiation(&md, &commercial, &scoring)

		assert.Equal(t, "cost", n.WeakestDimension)
		assert.Equal(t, "High total landed cost of $1,234,567.50 reduces competitiveness.", n.IdentifiedWeakness)
		assert.Contains(t, n.SuggestedEmailScript, "Dear Apex Manufacturing Team,")
		assert.Contains(t, n.SuggestedEmailScript, "$1,234,567.50 exceeds our benchmark")
		assert.Contains(t, n.SuggestedEmailScript, "volume-based discounts")
	})

	t.Run("quality weakness", func(t *testing.T) {
		md, commercial, scoring := negotiationFixture(schemas.ScoreBreakdown{
			CostScore: 80, QualityScore: 31, SpeedScore: 70, RiskScore: 90,
		})
		n := e.adviseNegotiation(&md, &commercial, &scoring)

		assert.Equal(t, "quality", n.WeakestDimension)
		assert.Equal(t, "Brand trust and quality indicators are below expectations (score: 31/100).", n.IdentifiedWeakness)
		assert.Contains(t, n.SuggestedEmailScript, "ISO certifications")
	})

	t.Run("speed weakness", func(t *testing.T) {
		md, commercial, scoring := negotiationFixture(schemas.ScoreBreakdown{
			CostScore: 80, QualityScore: 75, SpeedScore: 40, RiskScore: 90,
		})
		n := e.adviseNegotiation(&md, &commercial, &scoring)

		assert.Equal(t, "speed", n.WeakestDimension)
		assert.Equal(t, "Delivery timeline of 45 days is significantly slower than competitors.", n.IdentifiedWeakness)
		assert.Contains(t, n.SuggestedEmailScript, "the 45-day delivery timeline")
	})

	t.Run("risk weakness names the payment terms", func(t *testing.T) {
		md, commercial, scoring := negotiationFixture(schemas.ScoreBreakdown{
			CostScore: 80, QualityScore: 75, SpeedScore: 70, RiskScore: 25,
		})
		n := e.adviseNegotiation(&md, &commercial, &scoring)

		assert.Equal(t, "risk", n.WeakestDimension)
		assert.Equal(t, "Contractual risk profile is elevated due to unfavorable terms (score: 25/100).", n.IdentifiedWeakness)
		assert.Contains(t, n.SuggestedEmailScript, "Net 30 payment terms (instead of 100% upfront)")
	})
}

func TestAdviseNegotiation_TiesResolveToEarlierDimension(t *testing.T) {
	e := New()
	md, commercial, scoring := negotiationFixture(schemas.ScoreBreakdown{
		CostScore: 50, QualityScore: 50, SpeedScore: 50, RiskScore: 50,
	})

	n := e.adviseNegotiation(&md, &commercial, &scoring)

	assert.Equal(t, "cost", n.WeakestDimension)
}

func TestFormatMoney(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5.5, "5.50"},
		{999.99, "999.99"},
		{1000, "1,000.00"},
		{45000, "45,000.00"},
		{1234567.5, "1,234,567.50"},
		{987654321.09, "987,654,321.09"},
		{-1234.5, "-1,234.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, formatMoney(tc.in))
		})
	}
}
