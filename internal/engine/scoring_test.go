package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

func TestScoreCost(t *testing.T) {
	e := New()

	t.Run("population scales linearly between extremes", func(t *testing.T) {
		population := []float64{100, 200, 300}
		assert.Equal(t, 100.0, e.scoreCost(100, population))
		assert.Equal(t, 50.0, e.scoreCost(200, population))
		assert.Equal(t, 0.0, e.scoreCost(300, population))
	})

	t.Run("degenerate population scores full marks", func(t *testing.T) {
		assert.Equal(t, 100.0, e.scoreCost(500, []float64{500, 500}))
	})

	t.Run("solo quotation uses absolute scale", func(t *testing.T) {
		assert.Equal(t, 55.0, e.scoreCost(45000, nil))
		assert.Equal(t, 99.5, e.scoreCost(500, nil))
		assert.Equal(t, 0.0, e.scoreCost(150000, nil)) // clamped
	})

	t.Run("zero cost scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, e.scoreCost(0, nil))
	})
}

func TestScoreQuality(t *testing.T) {
	e := New()

	t.Run("strong vendor", func(t *testing.T) {
		q := &schemas.QualityIntelligence{
			BrandTier:         TierEnterprise,
			CustomerRating:    4.5,
			ESGClassification: "EXCELLENT",
			Certifications:    []string{"ISO 9001", "CE mark", "RoHS"},
		}
		// 40 + 27 + 15 + 9
		assert.Equal(t, 91.0, e.scoreQuality(q))
	})

	t.Run("baseline vendor", func(t *testing.T) {
		q := &schemas.QualityIntelligence{
			BrandTier:         TierMidMarket,
			CustomerRating:    3.0,
			ESGClassification: "MODERATE",
		}
		// 25 + 18 + 5 + 0
		assert.Equal(t, 48.0, e.scoreQuality(q))
	})

	t.Run("unknown esg label earns midpoint bonus", func(t *testing.T) {
		q := &schemas.QualityIntelligence{
			BrandTier:         TierHighRisk,
			ESGClassification: schemas.NotSpecified,
		}
		// 10 + 0 + 5 + 0
		assert.Equal(t, 15.0, e.scoreQuality(q))
	})

	t.Run("certification bonus caps at 15", func(t *testing.T) {
		q := &schemas.QualityIntelligence{
			BrandTier:      TierMidMarket,
			Certifications: []string{"a", "b", "c", "d", "e", "f", "g"},
		}
		// 25 + 0 + 5 + 15
		assert.Equal(t, 45.0, e.scoreQuality(q))
	})

	t.Run("score caps at 100", func(t *testing.T) {
		q := &schemas.QualityIntelligence{
			BrandTier:         TierEnterprise,
			CustomerRating:    5.0,
			ESGClassification: "EXCELLENT",
			Certifications:    []string{"a", "b", "c", "d", "e"},
		}
		// 40 + 30 + 15 + 15 = 100
		assert.Equal(t, 100.0, e.scoreQuality(q))
	})
}

func TestScoreSpeed(t *testing.T) {
	e := New()

	t.Run("step function without population", func(t *testing.T) {
		assert.Equal(t, 100.0, e.scoreSpeed(7, nil))
		assert.Equal(t, 85.0, e.scoreSpeed(14, nil))
		assert.Equal(t, 65.0, e.scoreSpeed(30, nil))
		assert.Equal(t, 40.0, e.scoreSpeed(60, nil))
		assert.Equal(t, 10.0, e.scoreSpeed(61, nil))
		assert.Equal(t, 10.0, e.scoreSpeed(UnparseableDeliveryDays, nil))
	})

	t.Run("population scales linearly", func(t *testing.T) {
		population := []int{10, 20, 30}
		assert.Equal(t, 100.0, e.scoreSpeed(10, population))
		assert.Equal(t, 50.0, e.scoreSpeed(20, population))
		assert.Equal(t, 0.0, e.scoreSpeed(30, population))
	})

	t.Run("degenerate population scores full marks", func(t *testing.T) {
		assert.Equal(t, 100.0, e.scoreSpeed(21, []int{21, 21, 21}))
	})
}

func TestScoreMCDA_WeightHandling(t *testing.T) {
	e := New()
	commercial := &schemas.CommercialSummary{LandedCostUSD: 45000, DeliveryDays: 21}
	quality := &schemas.QualityIntelligence{
		BrandTier:         TierEnterprise,
		CustomerRating:    4.5,
		ESGClassification: "EXCELLENT",
		Certifications:    []string{"ISO 9001", "CE mark", "RoHS"},
	}
	risk := &schemas.RiskAnalysis{RiskPoints: 15}

	t.Run("nil priorities use the default split", func(t *testing.T) {
		s := e.scoreMCDA(commercial, quality, risk, nil, nil, nil)

		// cost 55, quality 91, speed 65, risk 77.5
		assert.Equal(t, 55.0, s.ScoreBreakdown.CostScore)
		assert.Equal(t, 91.0, s.ScoreBreakdown.QualityScore)
		assert.Equal(t, 65.0, s.ScoreBreakdown.SpeedScore)
		assert.Equal(t, 77.5, s.ScoreBreakdown.RiskScore)
		// 22 + 27.3 + 13 + 7.75
		assert.Equal(t, 70.05, s.NexusTrustScore)
	})

	t.Run("weights renormalize by their sum", func(t *testing.T) {
		scaled := e.scoreMCDA(commercial, quality, risk,
			&schemas.BuyerPriorities{Cost: 4, Quality: 3, Speed: 2, Risk: 1}, nil, nil)
		standard := e.scoreMCDA(commercial, quality, risk, nil, nil, nil)

		assert.Equal(t, standard.NexusTrustScore, scaled.NexusTrustScore)
	})

	t.Run("single-dimension weights collapse to that score", func(t *testing.T) {
		s := e.scoreMCDA(commercial, quality, risk,
			&schemas.BuyerPriorities{Speed: 1}, nil, nil)

		assert.Equal(t, 65.0, s.NexusTrustScore)
	})
}

func TestScoreMCDA_RiskScoreFloor(t *testing.T) {
	e := New()
	s := e.scoreMCDA(
		&schemas.CommercialSummary{LandedCostUSD: 1000, DeliveryDays: 7},
		&schemas.QualityIntelligence{BrandTier: TierMidMarket},
		&schemas.RiskAnalysis{RiskPoints: 97},
		nil, nil, nil,
	)

	// 100 - 97*1.5 is negative and floors at zero.
	assert.Equal(t, 0.0, s.ScoreBreakdown.RiskScore)
}

func TestScoreMCDA_PopulationRelative(t *testing.T) {
	e := New()
	commercial := &schemas.CommercialSummary{LandedCostUSD: 8000, DeliveryDays: 10}
	quality := &schemas.QualityIntelligence{BrandTier: TierMidMarket, CustomerRating: 3.0, ESGClassification: "MODERATE"}
	risk := &schemas.RiskAnalysis{RiskPoints: 0}

	s := e.scoreMCDA(commercial, quality, risk, nil,
		[]float64{8000, 10000, 12000}, []int{10, 20, 30})

	assert.Equal(t, 100.0, s.ScoreBreakdown.CostScore)
	assert.Equal(t, 100.0, s.ScoreBreakdown.SpeedScore)
}
