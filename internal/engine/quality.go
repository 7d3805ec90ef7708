package engine

import (
	"regexp"
	"strings"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Phase 4: Quality & Brand Intelligence --

// Canonical brand tier labels.
const (
	TierEnterprise = "Tier 1: Enterprise/Global"
	TierMidMarket  = "Tier 2: Mid-Market"
	TierHighRisk   = "Tier 3: Unverified/High-Risk"
)

// Warranty classes assigned by classifyWarranty.
const (
	WarrantyPremium  = "PREMIUM (> 2 years)"
	WarrantyStandard = "STANDARD (1-2 years)"
	WarrantyPoor     = "POOR (< 1 year)"
)

// brandTierSynonyms maps lower-cased, space-stripped feed labels to canonical
// tiers. Unrecognized labels land in Tier 2.
var brandTierSynonyms = map[string]string{
	"enterprise": TierEnterprise,
	"global":     TierEnterprise,
	"tier1":      TierEnterprise,
	"mid-market": TierMidMarket,
	"midmarket":  TierMidMarket,
	"tier2":      TierMidMarket,
	"startup":    TierHighRisk,
	"unverified": TierHighRisk,
	"tier3":      TierHighRisk,
}

// certPatterns recognize common certification mentions in document text. They
// only run when the document carries no explicit certification list.
var certPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ISO\s*\d{4,5}(?::\d{4})?`),
	regexp.MustCompile(`(?i)CE\s+[Mm]ark`),
	regexp.MustCompile(`(?i)RoHS`),
	regexp.MustCompile(`(?i)UL\s+[Ll]isted`),
	regexp.MustCompile(`(?i)FDA\s+[Aa]pproved`),
	regexp.MustCompile(`(?i)Six\s+Sigma`),
}

var (
	reWarrantyYears  = regexp.MustCompile(`(?i)(\d+)\s*years?`)
	reWarrantyMonths = regexp.MustCompile(`(?i)(\d+)\s*months?`)
)

// assessQuality merges the market feed with certification and warranty
// signals from the document itself. The input slices are copied, never
// aliased, so the caller's document stays untouched.
func (e *Engine) assessQuality(doc *schemas.RawQuotation, intel *schemas.MarketIntelligence) schemas.QualityIntelligence {
	q := schemas.QualityIntelligence{
		BrandTier:         canonicalTier(intel.BrandTier),
		CustomerRating:    round1(intel.CustomerRating),
		ESGScoreRaw:       intel.ESGScore,
		ESGClassification: classifyESG(intel.ESGScore),
		Certifications:    extractCertifications(doc),
		WarrantyClass:     classifyWarranty(doc.Warranty),
		ReviewSummary:     summarizeReviews(intel.Reviews),
	}
	return q
}

// canonicalTier normalizes a free-form tier label to one of the three
// canonical tiers.
func canonicalTier(label string) string {
	key := strings.ReplaceAll(strings.ToLower(label), " ", "")
	if tier, ok := brandTierSynonyms[key]; ok {
		return tier
	}
	return TierMidMarket
}

// classifyESG buckets a numeric ESG score; non-numeric feed values are echoed
// verbatim.
func classifyESG(score schemas.ESGScore) string {
	if !score.IsNumber {
		return score.String()
	}
	switch {
	case score.Value >= 80:
		return "EXCELLENT"
	case score.Value >= 60:
		return "GOOD"
	case score.Value >= 40:
		return "MODERATE"
	default:
		return "POOR"
	}
}

// extractCertifications returns the document's explicit certification list
// when present, otherwise scans the raw text for recognizable mentions.
// Duplicate mentions are kept; the count feeds the quality score.
func extractCertifications(doc *schemas.RawQuotation) []string {
	if len(doc.Certifications) > 0 {
		certs := make([]string, len(doc.Certifications))
		copy(certs, doc.Certifications)
		return certs
	}
	certs := []string{}
	for _, pat := range certPatterns {
		certs = append(certs, pat.FindAllString(doc.RawText, -1)...)
	}
	return certs
}

// classifyWarranty grades free-text warranty terms. Years are matched before
// months, so "1 year (12 months)" grades on the year figure.
func classifyWarranty(warranty string) string {
	if warranty == "" || warranty == schemas.NotSpecified {
		return schemas.NotSpecified
	}
	if m := reWarrantyYears.FindStringSubmatch(warranty); m != nil {
		if years, ok := parseDigits(m[1]); ok {
			switch {
			case years > 2:
				return WarrantyPremium
			case years >= 1:
				return WarrantyStandard
			default:
				return WarrantyPoor
			}
		}
	}
	if m := reWarrantyMonths.FindStringSubmatch(warranty); m != nil {
		if months, ok := parseDigits(m[1]); ok {
			switch {
			case months > 24:
				return WarrantyPremium
			case months >= 12:
				return WarrantyStandard
			default:
				return WarrantyPoor
			}
		}
	}
	return schemas.NotSpecified
}

// summarizeReviews partitions reviews by exact sentiment tag; anything that
// is not "positive" or "negative" (case-insensitive) counts as neutral.
func summarizeReviews(reviews []schemas.Review) schemas.ReviewSummary {
	s := schemas.ReviewSummary{Total: len(reviews)}
	for _, r := range reviews {
		switch strings.ToLower(r.Sentiment) {
		case "positive":
			s.Positive++
		case "negative":
			s.Negative++
		}
	}
	s.Neutral = s.Total - s.Positive - s.Negative
	return s
}
