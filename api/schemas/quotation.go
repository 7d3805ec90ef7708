package schemas

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// -- Quotation Input Schemas --

// NotSpecified is the documented default substituted for absent string fields
// throughout the pipeline. It is part of the wire format, not an error value.
const NotSpecified = "NOT_SPECIFIED"

// LineItem is a single priced position on a vendor quotation, exactly as the
// vendor supplied it. SKU and part number are alternates: the pipeline falls
// back from `sku` to `part_number`, and from `unit_measure` to `uom`.
type LineItem struct {
	Description string  `json:"description"`
	SKU         string  `json:"sku,omitempty"`
	PartNumber  string  `json:"part_number,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitMeasure string  `json:"unit_measure,omitempty"`
	UOM         string  `json:"uom,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
}

// ImagePayload carries raw image bytes for quotations captured as scans or
// photos. Only the AI extraction path can consume these; the deterministic
// pipeline sees a marker string instead.
type ImagePayload struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// TaxTable maps tax names to a value interpreted as a fractional rate when
// < 1.0 and as an absolute amount otherwise. Vendors send these as JSON
// numbers or numeric strings interchangeably; entries that parse as neither
// are dropped rather than failing the whole document.
type TaxTable map[string]float64

// UnmarshalJSON accepts numbers and numeric strings, discarding anything else.
func (t *TaxTable) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("taxes must be an object: %w", err)
	}
	out := make(TaxTable, len(raw))
	for name, val := range raw {
		var num float64
		if err := json.Unmarshal(val, &num); err == nil {
			out[name] = num
			continue
		}
		var str string
		if err := json.Unmarshal(val, &str); err == nil {
			if parsed, perr := strconv.ParseFloat(str, 64); perr == nil {
				out[name] = parsed
			}
		}
	}
	*t = out
	return nil
}

// RawQuotation is the caller-owned, immutable input document for one vendor.
// All monetary fields are in the document currency; Taxes maps tax name to a
// value interpreted as a rate when < 1 and as an absolute amount otherwise.
type RawQuotation struct {
	VendorName       string             `json:"vendor_name"`
	QuotationID      string             `json:"quotation_id,omitempty"`
	DateIssued       string             `json:"date_issued,omitempty"`
	ValidUntil       string             `json:"valid_until,omitempty"` // ISO date (YYYY-MM-DD); malformed values are treated as not expired.
	Currency         string             `json:"currency,omitempty"`
	DeliveryTerms    string             `json:"delivery_terms,omitempty"`
	PaymentTerms     string             `json:"payment_terms,omitempty"`
	Warranty         string             `json:"warranty,omitempty"`
	RawText          string             `json:"raw_text,omitempty"`
	FinePrint        string             `json:"fine_print,omitempty"`
	Certifications   []string           `json:"certifications,omitempty"`
	LineItems        []LineItem         `json:"line_items,omitempty"`
	Taxes            TaxTable           `json:"taxes,omitempty"`
	TotalPrice       float64            `json:"total_price,omitempty"` // Optional top-level total; only consulted by the integrity check.
	ShippingCost     float64            `json:"shipping_cost,omitempty"`
	HandlingCost     float64            `json:"handling_cost,omitempty"`
	InstallationCost float64            `json:"installation_cost,omitempty"`

	// ImageData is attached by the extraction layer for image uploads and is
	// never expected on hand-written vendor inputs.
	ImageData *ImagePayload `json:"image_data,omitempty"`
}

// Review is a single sentiment-tagged market review. Sentiment matching is an
// exact case-insensitive comparison against "positive"/"negative"; everything
// else counts as neutral.
type Review struct {
	Sentiment string `json:"sentiment,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// ESGScore holds the market feed's ESG value, which arrives either as a number
// or as a free-form label such as "NOT_SPECIFIED". Non-numeric values are
// echoed verbatim by the quality assessor.
type ESGScore struct {
	Value    float64
	Label    string
	IsNumber bool
}

// NumericESG builds a numeric ESG score.
func NumericESG(v float64) ESGScore { return ESGScore{Value: v, IsNumber: true} }

// String renders the value the way the wire format does.
func (e ESGScore) String() string {
	if e.IsNumber {
		return fmt.Sprintf("%g", e.Value)
	}
	if e.Label == "" {
		return NotSpecified
	}
	return e.Label
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (e *ESGScore) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*e = ESGScore{Value: num, IsNumber: true}
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("esg score must be a number or string: %w", err)
	}
	*e = ESGScore{Label: label}
	return nil
}

// MarshalJSON emits the numeric value when present, otherwise the label
// (defaulting to NOT_SPECIFIED for the zero value).
func (e ESGScore) MarshalJSON() ([]byte, error) {
	if e.IsNumber {
		return json.Marshal(e.Value)
	}
	if e.Label == "" {
		return json.Marshal(NotSpecified)
	}
	return json.Marshal(e.Label)
}

// MarketIntelligence is the external market feed for one vendor: brand tier
// label, aggregate customer rating (0-5), ESG score, and tagged reviews.
type MarketIntelligence struct {
	BrandTier       string   `json:"brand_tier,omitempty"`
	CustomerRating  float64  `json:"customer_rating,omitempty"`
	ESGScore        ESGScore `json:"esg_score"`
	MarketSentiment string   `json:"market_sentiment,omitempty"`
	Reviews         []Review `json:"reviews,omitempty"`
}

// DefaultMarketIntelligence mirrors the service-boundary defaults applied when
// no feed is supplied: an unremarkable mid-market vendor.
func DefaultMarketIntelligence() *MarketIntelligence {
	return &MarketIntelligence{
		BrandTier:      "Mid-Market",
		CustomerRating: 3.0,
		ESGScore:       NumericESG(50),
	}
}

// BuyerPriorities are the four MCDA weights. They need not sum to 1; the
// scorer renormalizes by the raw sum. A zero sum is rejected at the service
// boundary and is undefined inside the scorer.
type BuyerPriorities struct {
	Cost    float64 `json:"cost"`
	Quality float64 `json:"quality"`
	Speed   float64 `json:"speed"`
	Risk    float64 `json:"risk"`
}

// DefaultPriorities returns the documented default weight split.
func DefaultPriorities() BuyerPriorities {
	return BuyerPriorities{Cost: 0.40, Quality: 0.30, Speed: 0.20, Risk: 0.10}
}

// Sum returns the raw weight total, used for renormalization and validation.
func (p BuyerPriorities) Sum() float64 {
	return p.Cost + p.Quality + p.Speed + p.Risk
}

// VendorInput bundles everything needed to analyze one vendor. A nil
// MarketIntelligence or BuyerPriorities means "use the documented defaults".
type VendorInput struct {
	ID                 string              `json:"id,omitempty"`
	RawDocument        RawQuotation        `json:"raw_document"`
	MarketIntelligence *MarketIntelligence `json:"market_intelligence,omitempty"`
	BuyerPriorities    *BuyerPriorities    `json:"buyer_priorities,omitempty"`
}
