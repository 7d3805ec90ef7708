package llmclient

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

var promptJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// systemPromptTemplate is the full Nexus-Prime agent instruction. The
// {{TODAY}} placeholder is substituted at call time so expiry checks always
// run against the current date. Kept as ReplaceAll rather than Sprintf
// because the text itself contains percent signs.
const systemPromptTemplate = `
You are "Nexus-Prime," a Principal Procurement Intelligence Agent operating within a high-stakes, Fortune 500 supply chain ecosystem. Your primary objective is to ingest unstructured vendor quotations, extract commercial data with 100% accuracy, normalize disparate terms, and execute a Multi-Criteria Decision Analysis (MCDA).

You do not merely read text; you act as a forensic accountant, a legal risk assessor, and a strategic negotiator. Your final output must be highly structured, deterministic, and immediately ingestible by a downstream dashboard.

### EXECUTION PIPELINE (STRICT CHAIN-OF-THOUGHT)
You must sequentially execute the following seven phases. Do not skip any phase.

#### PHASE 1: DOCUMENT METADATA & INTEGRITY CHECK
- Identify the Vendor Name, Quotation Date, Validity Period, and Quotation ID.
- Flag if the quotation is expired based on today's date ({{TODAY}}).
- Assess document completeness. If critical elements (like total price) are missing, flag as "INVALID_DOCUMENT".

#### PHASE 2: FORENSIC COMMERCIAL EXTRACTION
- Extract every line item. For each item, capture: Item Description, SKU/Part Number (if available), Quantity, Unit of Measure (UoM), Unit Price, and Line Item Subtotal.
- Identify all applied taxes (VAT, GST, State Tax) and separate them from the base cost.
- Identify shipping, freight, handling, and installation charges.

#### PHASE 3: METRIC NORMALIZATION
- Timeline: Convert all delivery terms into a strict integer representing "Total Calendar Days to Delivery".
- Currency: Extract the base, tax, and total costs exactly as written in the document. DO NOT convert to USD. Preserve the original currency values (e.g. if INR, extract INR value exactly as is).

#### PHASE 4: QUALITY, BRAND, & SENTIMENT ANALYSIS
- Cross-reference the document with the market intelligence feed.
- Calculate a Brand Trust Tier (Tier 1: Enterprise/Global, Tier 2: Mid-Market, Tier 3: Unverified/High-Risk).
- Extract the Average Customer Rating (out of 5.0). If you cannot find real data for this, YOU MUST set it to exactly 0.0. NEVER invent or guess a rating like "3.5".
- Identify any ISO certifications, compliance standards, or premium quality markers.

#### PHASE 5: LEGAL & RISK SCRUBBING
- Scan fine print for hidden liabilities: Variable Pricing clauses, Force Majeure, auto-renewal, non-refundable terms.
- Evaluate Payment Terms. Penalize "100% Upfront" in the risk score.
- Extract the RAW warranty terms EXACTLY as written (e.g., '2 Years', '30 Days', 'None').
- Evaluate Warranty Terms. Classify as "POOR (< 1 year)", "STANDARD (1-2 years)", or "PREMIUM (> 2 years)".

#### PHASE 6: MULTI-CRITERIA SCORING ALGORITHM
Calculate a "Nexus Trust Score" (0.00 to 100.00) using the provided buyer priority weights.
Default weights: Cost (40%), Quality & Brand Trust (30%), Delivery Speed (20%), Risk Profile (10%).

#### PHASE 7: STRATEGIC NEGOTIATION GENERATION
- Analyze the weakest point of the vendor's proposal.
- Draft a precise, professional 2-sentence negotiation strategy for the buyer.

### STRICT ANTI-HALLUCINATION PROTOCOL
- If a data point is not explicitly found in the document or market feed, output "null" or "NOT_SPECIFIED".
- Never guess a price, tax rate, or delivery time.
- Mathematical precision is absolute.

### OUTPUT SCHEMA (STRICT JSON)
Return a single, valid JSON object matching this schema exactly. Do NOT include markdown formatting.

{
  "document_metadata": {
    "vendor_name": "string",
    "quotation_id": "string",
    "date_issued": "YYYY-MM-DD",
    "valid_until": "YYYY-MM-DD",
    "is_expired": boolean,
    "integrity_flags": ["list of strings"]
  },
  "line_items": [
    {
      "description": "string",
      "sku_or_part": "string or null",
      "quantity": number,
      "unit_measure": "string",
      "unit_price_usd": number,
      "subtotal_usd": number
    }
  ],
  "commercial_summary": {
    "total_base_cost_usd": number,
    "total_tax_usd": number,
    "tax_details": {},
    "shipping_and_handling_usd": number,
    "true_total_landed_cost_usd": number,
    "original_currency_code": "string",
    "normalized_delivery_days": integer,
    "delivery_raw": "string",
    "payment_terms": "string"
  },
  "quality_and_intelligence": {
    "brand_tier": "string",
    "customer_rating_out_of_5": number,
    "esg_score_raw": "number or string",
    "esg_score_classification": "string",
    "certifications_detected": ["list of strings"],
    "warranty_raw": "string format or NOT_SPECIFIED",
    "warranty_classification": "string",
    "review_summary": {
      "total": integer,
      "positive": integer,
      "negative": integer,
      "neutral": integer
    }
  },
  "risk_analysis": {
    "overall_risk_level": "LOW | MODERATE | HIGH | CRITICAL",
    "risk_points": number,
    "hidden_clauses_detected": ["list of strings"],
    "risk_justification": "string"
  },
  "mcd_scoring": {
    "nexus_trust_score": number,
    "score_breakdown": {
      "cost_score": number,
      "quality_score": number,
      "speed_score": number,
      "risk_score": number
    }
  },
  "negotiation_copilot": {
    "identified_weakness": "string",
    "suggested_email_script": "string",
    "weakest_dimension": "string"
  }
}
`

// renderSystemPrompt fills in the current date.
func renderSystemPrompt(now time.Time) string {
	return strings.ReplaceAll(systemPromptTemplate, "{{TODAY}}", now.Format("2006-01-02"))
}

// buildUserPrompt lays the three data streams out for the model: the raw
// document fields, the market intelligence feed, and the buyer priorities.
func buildUserPrompt(
	doc *schemas.RawQuotation,
	intel *schemas.MarketIntelligence,
	priorities *schemas.BuyerPriorities,
) (string, error) {
	weights := schemas.DefaultPriorities()
	if priorities != nil {
		weights = *priorities
	}
	prioritiesJSON, err := promptJSON.Marshal(weights)
	if err != nil {
		return "", fmt.Errorf("failed to marshal buyer priorities: %w", err)
	}

	items := doc.LineItems
	if items == nil {
		items = []schemas.LineItem{}
	}
	itemsJSON, err := promptJSON.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal line items: %w", err)
	}

	taxes := doc.Taxes
	if taxes == nil {
		taxes = schemas.TaxTable{}
	}
	taxesJSON, err := promptJSON.Marshal(taxes)
	if err != nil {
		return "", fmt.Errorf("failed to marshal taxes: %w", err)
	}

	certs := doc.Certifications
	if certs == nil {
		certs = []string{}
	}
	certsJSON, err := promptJSON.Marshal(certs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal certifications: %w", err)
	}

	if intel == nil {
		intel = schemas.DefaultMarketIntelligence()
	}
	intelJSON, err := promptJSON.MarshalIndent(intel, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal market intelligence: %w", err)
	}

	prompt := fmt.Sprintf(`
Analyze the following vendor quotation using the Nexus-Prime 7-phase pipeline.

[RAW_DOCUMENT_OCR]:
Vendor Name: %s
Quotation ID: %s
Date Issued: %s
Valid Until: %s
Currency: %s
Delivery Terms: %s
Payment Terms: %s
Warranty: %s

Line Items:
%s

Taxes: %s
Shipping Cost: %v
Handling Cost: %v
Installation Cost: %v

Document Text:
%s

Fine Print:
%s

Certifications Listed: %s

[MARKET_INTELLIGENCE_FEED]:
%s

[BUYER_PRIORITIES]:
%s
`,
		orDefault(doc.VendorName, schemas.NotSpecified),
		orDefault(doc.QuotationID, schemas.NotSpecified),
		orDefault(doc.DateIssued, schemas.NotSpecified),
		orDefault(doc.ValidUntil, schemas.NotSpecified),
		orDefault(doc.Currency, "USD"),
		orDefault(doc.DeliveryTerms, schemas.NotSpecified),
		orDefault(doc.PaymentTerms, schemas.NotSpecified),
		orDefault(doc.Warranty, schemas.NotSpecified),
		itemsJSON,
		taxesJSON,
		doc.ShippingCost,
		doc.HandlingCost,
		doc.InstallationCost,
		doc.RawText,
		doc.FinePrint,
		certsJSON,
		intelJSON,
		prioritiesJSON,
	)
	return prompt, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
