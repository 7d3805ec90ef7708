package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// cleanQuality returns quality signals that contribute zero risk points, so
// tests can isolate the text and payment scans.
func cleanQuality() *schemas.QualityIntelligence {
	return &schemas.QualityIntelligence{
		BrandTier:      TierEnterprise,
		CustomerRating: 5.0,
		WarrantyClass:  WarrantyStandard,
	}
}

func TestScanRisk_CleanDocument(t *testing.T) {
	e := New()
	risk := e.scanRisk(&schemas.RawQuotation{RawText: "A perfectly ordinary quotation."}, cleanQuality())

	assert.Equal(t, 0, risk.RiskPoints)
	assert.Equal(t, schemas.RiskLow, risk.OverallRiskLevel)
	assert.Equal(t, []string{"None detected"}, risk.HiddenClauses)
	assert.Equal(t, "No significant risk factors detected. Strong contractual terms.", risk.Justification)
}

func TestScanRisk_ClauseBattery(t *testing.T) {
	e := New()
	doc := &schemas.RawQuotation{
		RawText:   "This agreement includes a force majeure provision and a limitation of liability.",
		FinePrint: "Subscription is subject to automatic renewal. All fees are non-refundable.",
	}

	risk := e.scanRisk(doc, cleanQuality())

	assert.Equal(t, 40, risk.RiskPoints)
	assert.Equal(t, schemas.RiskHigh, risk.OverallRiskLevel)
	assert.Equal(t, []string{
		"Force Majeure clause detected",
		"Liability Cap clause detected",
		"Auto-Renewal clause detected",
		"Non-Refundable terms detected",
	}, risk.HiddenClauses)
	assert.Equal(t, "Accumulated 40 risk points from contractual analysis. Detected 4 concerning clause(s).", risk.Justification)
}

func TestScanRisk_VariablePricingFirstMatchOnly(t *testing.T) {
	e := New()
	doc := &schemas.RawQuotation{
		RawText: "Prices subject to revision. All prices may vary with market fluctuation.",
	}

	risk := e.scanRisk(doc, cleanQuality())

	assert.Equal(t, 15, risk.RiskPoints)
	assert.Equal(t, []string{"Variable Pricing: detected 'prices subject to'"}, risk.HiddenClauses)
	assert.Equal(t, schemas.RiskModerate, risk.OverallRiskLevel)
}

func TestScanRisk_PaymentTerms(t *testing.T) {
	e := New()

	testCases := []struct {
		name       string
		payment    string
		wantPoints int
		wantClause string
	}{
		{"full upfront", "100% upfront", 20, "High-Risk Payment: 100% upfront required"},
		// Any advance payment wording lands in the high-risk branch.
		{"half advance", "50% advance with order", 20, "High-Risk Payment: 100% upfront required"},
		{"half upfront", "50% upfront, balance on delivery", 10, "Moderate-Risk Payment: 50% upfront required"},
		{"net terms", "Net 30", 0, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			risk := e.scanRisk(&schemas.RawQuotation{PaymentTerms: tc.payment}, cleanQuality())
			assert.Equal(t, tc.wantPoints, risk.RiskPoints)
			if tc.wantClause != "" {
				assert.Contains(t, risk.HiddenClauses, tc.wantClause)
			}
		})
	}
}

func TestScanRisk_QualitySignals(t *testing.T) {
	e := New()

	t.Run("missing warranty", func(t *testing.T) {
		q := cleanQuality()
		q.WarrantyClass = schemas.NotSpecified
		risk := e.scanRisk(&schemas.RawQuotation{}, q)
		assert.Equal(t, 15, risk.RiskPoints)
	})

	t.Run("poor warranty", func(t *testing.T) {
		q := cleanQuality()
		q.WarrantyClass = WarrantyPoor
		risk := e.scanRisk(&schemas.RawQuotation{}, q)
		assert.Equal(t, 10, risk.RiskPoints)
	})

	t.Run("tier and rating stack", func(t *testing.T) {
		q := cleanQuality()
		q.BrandTier = TierHighRisk
		q.CustomerRating = 2.8
		risk := e.scanRisk(&schemas.RawQuotation{}, q)
		// 15 tier + 10 rating
		assert.Equal(t, 25, risk.RiskPoints)
	})

	t.Run("middling rating", func(t *testing.T) {
		q := cleanQuality()
		q.CustomerRating = 3.4
		risk := e.scanRisk(&schemas.RawQuotation{}, q)
		assert.Equal(t, 5, risk.RiskPoints)
	})
}

func TestScanRisk_CriticalEscalation(t *testing.T) {
	e := New()
	doc := &schemas.RawQuotation{
		RawText:      "Prices subject to change without notice. Force majeure applies.",
		FinePrint:    "Deposits are non-refundable.",
		PaymentTerms: "100% upfront via wire",
	}
	q := &schemas.QualityIntelligence{
		BrandTier:      TierHighRisk,
		CustomerRating: 2.1,
		WarrantyClass:  schemas.NotSpecified,
	}

	risk := e.scanRisk(doc, q)

	// 15 + 10 + 12 + 20 + 15 warranty + 15 tier + 10 rating
	assert.Equal(t, 97, risk.RiskPoints)
	assert.Equal(t, schemas.RiskCritical, risk.OverallRiskLevel)
	assert.Len(t, risk.HiddenClauses, 4)
}

func TestScanRisk_LevelThresholds(t *testing.T) {
	e := New()

	// Warranty classes alone produce clean threshold points.
	atPoints := func(q *schemas.QualityIntelligence) schemas.RiskLevel {
		return e.scanRisk(&schemas.RawQuotation{}, q).OverallRiskLevel
	}

	q := cleanQuality()
	assert.Equal(t, schemas.RiskLow, atPoints(q))

	q = cleanQuality()
	q.WarrantyClass = schemas.NotSpecified // 15
	assert.Equal(t, schemas.RiskModerate, atPoints(q))

	q = cleanQuality()
	q.WarrantyClass = schemas.NotSpecified
	q.BrandTier = TierHighRisk // 30
	assert.Equal(t, schemas.RiskHigh, atPoints(q))

	q = cleanQuality()
	q.WarrantyClass = schemas.NotSpecified
	q.BrandTier = TierHighRisk
	q.CustomerRating = 1.0 // 40
	assert.Equal(t, schemas.RiskHigh, atPoints(q))
}
