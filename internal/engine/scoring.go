package engine

import (
	"math"
	"strings"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Phase 6: Multi-Criteria Decision Scoring --

// esgScoreBonus maps ESG classifications to quality score bonuses. Labels
// outside the table (echoed free-form feed values) earn the midpoint bonus.
var esgScoreBonus = map[string]float64{
	"EXCELLENT": 15,
	"GOOD":      10,
	"MODERATE":  5,
	"POOR":      0,
}

// scoreMCDA computes the four dimension scores and the weighted Nexus Trust
// Score. Weights are renormalized by their raw sum, so {4,3,2,1} behaves
// exactly like the default split. When a population of at least two values is
// supplied, cost and speed score relative to the min-max spread; otherwise
// absolute fallbacks apply.
func (e *Engine) scoreMCDA(
	commercial *schemas.CommercialSummary,
	quality *schemas.QualityIntelligence,
	risk *schemas.RiskAnalysis,
	priorities *schemas.BuyerPriorities,
	populationCosts []float64,
	populationDays []int,
) schemas.MCDScoring {
	weights := schemas.DefaultPriorities()
	if priorities != nil {
		weights = *priorities
	}
	if total := weights.Sum(); total != 0 {
		weights.Cost /= total
		weights.Quality /= total
		weights.Speed /= total
		weights.Risk /= total
	}

	costScore := e.scoreCost(commercial.LandedCostUSD, populationCosts)
	qualityScore := e.scoreQuality(quality)
	speedScore := e.scoreSpeed(commercial.DeliveryDays, populationDays)
	riskScore := math.Max(0, round2(100-float64(risk.RiskPoints)*1.5))

	nexus := round2(costScore*weights.Cost +
		qualityScore*weights.Quality +
		speedScore*weights.Speed +
		riskScore*weights.Risk)

	return schemas.MCDScoring{
		NexusTrustScore: nexus,
		ScoreBreakdown: schemas.ScoreBreakdown{
			CostScore:    round2(costScore),
			QualityScore: round2(qualityScore),
			SpeedScore:   round2(speedScore),
			RiskScore:    round2(riskScore),
		},
	}
}

// scoreCost scores cheapness. With a population, the cheapest vendor earns
// 100 and the dearest 0 on a linear scale; a degenerate spread (all equal)
// earns everyone 100. Solo quotations fall back to an absolute scale anchored
// at $1,000 per point below 100, clamped to [0, 100].
func (e *Engine) scoreCost(landedCost float64, population []float64) float64 {
	if len(population) > 1 {
		lo, hi := minMaxFloat(population)
		if hi > lo {
			return round2(100 * (1 - (landedCost-lo)/(hi-lo)))
		}
		return 100.0
	}
	if landedCost > 0 {
		return clamp(round2(100-landedCost/1000), 0, 100)
	}
	return 0.0
}

// scoreQuality combines tier, rating, ESG classification, and certification
// count into a 0-100 score.
func (e *Engine) scoreQuality(quality *schemas.QualityIntelligence) float64 {
	score := 0.0
	switch {
	case strings.Contains(quality.BrandTier, "Tier 1"):
		score += 40
	case strings.Contains(quality.BrandTier, "Tier 2"):
		score += 25
	default:
		score += 10
	}

	score += round2(quality.CustomerRating / 5 * 30)

	if bonus, ok := esgScoreBonus[quality.ESGClassification]; ok {
		score += bonus
	} else {
		score += 5
	}

	score += math.Min(float64(len(quality.Certifications))*3, 15)

	return math.Min(score, 100)
}

// scoreSpeed scores delivery. With a population, the fastest earns 100 on a
// linear scale; otherwise a step function over week/fortnight/month/quarter
// boundaries applies.
func (e *Engine) scoreSpeed(deliveryDays int, population []int) float64 {
	if len(population) > 1 {
		lo, hi := minMaxInt(population)
		if hi > lo {
			return round2(100 * (1 - float64(deliveryDays-lo)/float64(hi-lo)))
		}
		return 100.0
	}
	switch {
	case deliveryDays <= 7:
		return 100.0
	case deliveryDays <= 14:
		return 85.0
	case deliveryDays <= 30:
		return 65.0
	case deliveryDays <= 60:
		return 40.0
	default:
		return 10.0
	}
}

func minMaxFloat(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func minMaxInt(vals []int) (lo, hi int) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
