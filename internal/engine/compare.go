package engine

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Cross-Vendor Comparator --

// ErrInsufficientAnalyses is returned when fewer than two analyses are given
// to CompareVendors.
var ErrInsufficientAnalyses = errors.New("at least 2 vendor analyses are required for comparison")

// CompareVendors ranks completed analyses by Nexus Trust Score (descending)
// and drafts a recommendation. The sort is stable, so vendors with equal
// scores keep their input order. The input slice is not modified.
func CompareVendors(analyses []*schemas.VendorAnalysis) (*schemas.ComparisonResult, error) {
	if len(analyses) < 2 {
		return nil, ErrInsufficientAnalyses
	}

	ranked := make([]*schemas.VendorAnalysis, len(analyses))
	copy(ranked, analyses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MCDScoring.NexusTrustScore > ranked[j].MCDScoring.NexusTrustScore
	})

	rows := make([]schemas.RankedVendor, 0, len(ranked))
	minCost, maxCost := ranked[0].CommercialSummary.LandedCostUSD, ranked[0].CommercialSummary.LandedCostUSD
	for i, a := range ranked {
		cost := a.CommercialSummary.LandedCostUSD
		if cost < minCost {
			minCost = cost
		}
		if cost > maxCost {
			maxCost = cost
		}
		rows = append(rows, schemas.RankedVendor{
			Rank:            i + 1,
			VendorName:      a.DocumentMetadata.VendorName,
			NexusTrustScore: a.MCDScoring.NexusTrustScore,
			TotalLandedCost: cost,
			DeliveryDays:    a.CommercialSummary.DeliveryDays,
			RiskLevel:       a.RiskAnalysis.OverallRiskLevel,
			BrandTier:       a.Quality.BrandTier,
		})
	}

	winner := ranked[0]
	justification := fmt.Sprintf("%s is recommended with a Nexus Trust Score of %s/100. Total landed cost is $%s with a %s risk profile.",
		winner.DocumentMetadata.VendorName,
		formatScore(winner.MCDScoring.NexusTrustScore),
		formatMoney(winner.CommercialSummary.LandedCostUSD),
		winner.RiskAnalysis.OverallRiskLevel,
	)
	runnerUp := ranked[1]
	justification += fmt.Sprintf(" Runner-up: %s (Score: %s/100).",
		runnerUp.DocumentMetadata.VendorName,
		formatScore(runnerUp.MCDScoring.NexusTrustScore),
	)

	return &schemas.ComparisonResult{
		RankedVendors:     rows,
		RecommendedVendor: winner.DocumentMetadata.VendorName,
		Justification:     justification,
		Savings:           round2(maxCost - minCost),
	}, nil
}

// formatScore renders a trust score without trailing zeros ("72.5", "100").
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
