package schemas

// -- Analysis Output Schemas --

// RiskLevel classifies accumulated contractual risk points. The values are
// uppercase to match the downstream dashboard contract.
type RiskLevel string

// Risk classification thresholds: >=50 critical, >=30 high, >=15 moderate.
const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Integrity flags attached by the metadata check. Any subset may co-occur and
// none of them halts the analysis.
const (
	FlagMissingLineItems = "MISSING_LINE_ITEMS"
	FlagInvalidDocument  = "INVALID_DOCUMENT"
	FlagQuotationExpired = "QUOTATION_EXPIRED"
)

// DocumentMetadata is the Phase 1 output: identity fields echoed with
// defaults, the expiry verdict, and integrity flags.
type DocumentMetadata struct {
	VendorName     string   `json:"vendor_name"`
	QuotationID    string   `json:"quotation_id"`
	DateIssued     string   `json:"date_issued"`
	ValidUntil     string   `json:"valid_until"`
	IsExpired      bool     `json:"is_expired"`
	IntegrityFlags []string `json:"integrity_flags"`
}

// AnalyzedLineItem is a line item after commercial extraction: unit price and
// subtotal converted to the base currency and rounded to cents. SKUOrPart is
// null when the vendor supplied neither identifier.
type AnalyzedLineItem struct {
	Description  string  `json:"description"`
	SKUOrPart    *string `json:"sku_or_part"`
	Quantity     float64 `json:"quantity"`
	UnitMeasure  string  `json:"unit_measure"`
	UnitPriceUSD float64 `json:"unit_price_usd"`
	SubtotalUSD  float64 `json:"subtotal_usd"`
}

// CommercialSummary aggregates Phases 2 and 3. The landed cost is
// base + tax + shipping, rounded to cents after summation.
type CommercialSummary struct {
	TotalBaseCostUSD    float64            `json:"total_base_cost_usd"`
	TotalTaxUSD         float64            `json:"total_tax_usd"`
	TaxDetails          map[string]float64 `json:"tax_details"`
	ShippingHandlingUSD float64            `json:"shipping_and_handling_usd"`
	LandedCostUSD       float64            `json:"true_total_landed_cost_usd"`
	OriginalCurrency    string             `json:"original_currency_code,omitempty"` // Populated only by the AI extraction path.
	DeliveryDays        int                `json:"normalized_delivery_days"`         // 999 means unknown.
	DeliveryRaw         string             `json:"delivery_raw"`
	PaymentTerms        string             `json:"payment_terms"`
}

// ReviewSummary partitions market reviews by sentiment tag; neutral is
// whatever is left after exact positive/negative matches.
type ReviewSummary struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// QualityIntelligence is the Phase 4 output merging document signals with the
// market feed.
type QualityIntelligence struct {
	BrandTier         string        `json:"brand_tier"`
	CustomerRating    float64       `json:"customer_rating_out_of_5"`
	ESGScoreRaw       ESGScore      `json:"esg_score_raw"`
	ESGClassification string        `json:"esg_score_classification"`
	Certifications    []string      `json:"certifications_detected"`
	WarrantyRaw       string        `json:"warranty_raw,omitempty"` // Populated only by the AI extraction path.
	WarrantyClass     string        `json:"warranty_classification"`
	ReviewSummary     ReviewSummary `json:"review_summary"`
}

// RiskAnalysis is the Phase 5 output. HiddenClauses holds human-readable
// detections in detection order, or the single literal "None detected".
type RiskAnalysis struct {
	OverallRiskLevel RiskLevel `json:"overall_risk_level"`
	RiskPoints       int       `json:"risk_points"`
	HiddenClauses    []string  `json:"hidden_clauses_detected"`
	Justification    string    `json:"risk_justification"`
}

// ScoreBreakdown carries the four 0-100 dimension sub-scores.
type ScoreBreakdown struct {
	CostScore    float64 `json:"cost_score"`
	QualityScore float64 `json:"quality_score"`
	SpeedScore   float64 `json:"speed_score"`
	RiskScore    float64 `json:"risk_score"`
}

// MCDScoring is the Phase 6 output: the weighted aggregate and its breakdown.
type MCDScoring struct {
	NexusTrustScore float64        `json:"nexus_trust_score"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown"`
}

// NegotiationCopilot is the Phase 7 output: the weakest dimension and the
// templated strategy targeting it.
type NegotiationCopilot struct {
	IdentifiedWeakness   string `json:"identified_weakness"`
	SuggestedEmailScript string `json:"suggested_email_script"`
	WeakestDimension     string `json:"weakest_dimension"`
}

// VendorAnalysis is the full pipeline output for one vendor. It is created
// fresh per invocation and never mutated after return. AnalysisSource is set
// only when the record was produced by the AI extraction path.
type VendorAnalysis struct {
	DocumentMetadata   DocumentMetadata    `json:"document_metadata"`
	LineItems          []AnalyzedLineItem  `json:"line_items"`
	CommercialSummary  CommercialSummary   `json:"commercial_summary"`
	Quality            QualityIntelligence `json:"quality_and_intelligence"`
	RiskAnalysis       RiskAnalysis        `json:"risk_analysis"`
	MCDScoring         MCDScoring          `json:"mcd_scoring"`
	NegotiationCopilot NegotiationCopilot  `json:"negotiation_copilot"`
	AnalysisSource     string              `json:"_analysis_source,omitempty"`
}

// RankedVendor is one row of the comparison matrix (rank is 1-indexed).
type RankedVendor struct {
	Rank            int       `json:"rank"`
	VendorName      string    `json:"vendor_name"`
	NexusTrustScore float64   `json:"nexus_trust_score"`
	TotalLandedCost float64   `json:"total_landed_cost"`
	DeliveryDays    int       `json:"delivery_days"`
	RiskLevel       RiskLevel `json:"risk_level"`
	BrandTier       string    `json:"brand_tier"`
}

// ComparisonResult ranks a set of vendor analyses by trust score. Savings is
// the landed-cost spread between the most and least expensive vendors.
type ComparisonResult struct {
	RankedVendors     []RankedVendor `json:"ranked_vendors"`
	RecommendedVendor string         `json:"recommended_vendor"`
	Justification     string         `json:"recommendation_justification"`
	Savings           float64        `json:"savings_vs_most_expensive"`
}
