package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// rankedFixture builds a minimal analysis carrying just the fields the
// comparator reads.
func rankedFixture(vendor string, score, landed float64, days int, risk schemas.RiskLevel, tier string) *schemas.VendorAnalysis {
	return &schemas.VendorAnalysis{
		DocumentMetadata:  schemas.DocumentMetadata{VendorName: vendor},
		CommercialSummary: schemas.CommercialSummary{LandedCostUSD: landed, DeliveryDays: days},
		Quality:           schemas.QualityIntelligence{BrandTier: tier},
		RiskAnalysis:      schemas.RiskAnalysis{OverallRiskLevel: risk},
		MCDScoring:        schemas.MCDScoring{NexusTrustScore: score},
	}
}

func TestCompareVendors_RanksByTrustScore(t *testing.T) {
	analyses := []*schemas.VendorAnalysis{
		rankedFixture("Gamma Industrial", 61.0, 9800.50, 30, schemas.RiskHigh, TierHighRisk),
		rankedFixture("Alpha Precision", 72.5, 12500.00, 14, schemas.RiskLow, TierEnterprise),
		rankedFixture("Beta Supplies", 68.2, 8400.00, 21, schemas.RiskModerate, TierMidMarket),
	}

	result, err := CompareVendors(analyses)
	require.NoError(t, err)

	require.Len(t, result.RankedVendors, 3)
	assert.Equal(t, []string{"Alpha Precision", "Beta Supplies", "Gamma Industrial"}, []string{
		result.RankedVendors[0].VendorName,
		result.RankedVendors[1].VendorName,
		result.RankedVendors[2].VendorName,
	})
	assert.Equal(t, 1, result.RankedVendors[0].Rank)
	assert.Equal(t, 2, result.RankedVendors[1].Rank)
	assert.Equal(t, 3, result.RankedVendors[2].Rank)

	top := result.RankedVendors[0]
	assert.Equal(t, 72.5, top.NexusTrustScore)
	assert.Equal(t, 12500.00, top.TotalLandedCost)
	assert.Equal(t, 14, top.DeliveryDays)
	assert.Equal(t, schemas.RiskLow, top.RiskLevel)
	assert.Equal(t, TierEnterprise, top.BrandTier)

	assert.Equal(t, "Alpha Precision", result.RecommendedVendor)
	assert.Equal(t,
		"Alpha Precision is recommended with a Nexus Trust Score of 72.5/100. "+
			"Total landed cost is $12,500.00 with a LOW risk profile. "+
			"Runner-up: Beta Supplies (Score: 68.2/100).",
		result.Justification)
	// Most expensive is 12500, cheapest is 8400.
	assert.Equal(t, 4100.00, result.Savings)
}

func TestCompareVendors_TiesKeepInputOrder(t *testing.T) {
	analyses := []*schemas.VendorAnalysis{
		rankedFixture("First In", 70.0, 1000, 10, schemas.RiskLow, TierMidMarket),
		rankedFixture("Second In", 70.0, 2000, 10, schemas.RiskLow, TierMidMarket),
	}

	result, err := CompareVendors(analyses)
	require.NoError(t, err)

	assert.Equal(t, "First In", result.RankedVendors[0].VendorName)
	assert.Equal(t, "Second In", result.RankedVendors[1].VendorName)
	assert.Equal(t, "First In", result.RecommendedVendor)
}

func TestCompareVendors_InputSliceUntouched(t *testing.T) {
	analyses := []*schemas.VendorAnalysis{
		rankedFixture("Low", 10, 100, 10, schemas.RiskLow, TierMidMarket),
		rankedFixture("High", 90, 200, 10, schemas.RiskLow, TierMidMarket),
	}

	_, err := CompareVendors(analyses)
	require.NoError(t, err)

	assert.Equal(t, "Low", analyses[0].DocumentMetadata.VendorName)
	assert.Equal(t, "High", analyses[1].DocumentMetadata.VendorName)
}

func TestCompareVendors_RequiresTwo(t *testing.T) {
	_, err := CompareVendors(nil)
	assert.ErrorIs(t, err, ErrInsufficientAnalyses)

	_, err = CompareVendors([]*schemas.VendorAnalysis{
		rankedFixture("Solo", 50, 100, 10, schemas.RiskLow, TierMidMarket),
	})
	assert.ErrorIs(t, err, ErrInsufficientAnalyses)
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "72.5", formatScore(72.5))
	assert.Equal(t, "68.25", formatScore(68.25))
	assert.Equal(t, "100", formatScore(100))
}
