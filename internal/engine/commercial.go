package engine

import (
	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Phases 2 & 3: Commercial Extraction & Term Normalization --

// extractCommercial converts line items, taxes, and logistics costs into the
// base currency and computes the true landed cost. It also normalizes the
// delivery and payment terms, which downstream phases read from the returned
// summary.
//
// Tax entries below 1.0 are treated as fractional rates applied to the full
// base cost; values of 1.0 and above are absolute amounts in the quoted
// currency.
func (e *Engine) extractCommercial(doc *schemas.RawQuotation) ([]schemas.AnalyzedLineItem, schemas.CommercialSummary) {
	currency := doc.Currency

	items := make([]schemas.AnalyzedLineItem, 0, len(doc.LineItems))
	totalBase := 0.0
	for _, raw := range doc.LineItems {
		unitPrice := e.toBase(raw.UnitPrice, currency)
		subtotal := round2(unitPrice * raw.Quantity)
		totalBase += subtotal

		items = append(items, schemas.AnalyzedLineItem{
			Description:  orNotSpecified(raw.Description),
			SKUOrPart:    skuOrPart(raw),
			Quantity:     raw.Quantity,
			UnitMeasure:  unitMeasure(raw),
			UnitPriceUSD: unitPrice,
			SubtotalUSD:  subtotal,
		})
	}

	totalTax := 0.0
	taxDetails := make(map[string]float64, len(doc.Taxes))
	for name, value := range doc.Taxes {
		var amount float64
		if value < 1.0 {
			amount = round2(totalBase * value)
		} else {
			amount = e.toBase(value, currency)
		}
		totalTax += amount
		taxDetails[name] = amount
	}

	shipping := e.toBase(doc.ShippingCost, currency)
	handling := e.toBase(doc.HandlingCost, currency)
	installation := e.toBase(doc.InstallationCost, currency)
	totalShipping := round2(shipping + handling + installation)

	deliveryRaw := orNotSpecified(doc.DeliveryTerms)

	summary := schemas.CommercialSummary{
		TotalBaseCostUSD:    round2(totalBase),
		TotalTaxUSD:         round2(totalTax),
		TaxDetails:          taxDetails,
		ShippingHandlingUSD: totalShipping,
		LandedCostUSD:       round2(totalBase + totalTax + totalShipping),
		DeliveryDays:        e.deliveryToDays(deliveryRaw),
		DeliveryRaw:         deliveryRaw,
		PaymentTerms:        orNotSpecified(doc.PaymentTerms),
	}
	return items, summary
}

// skuOrPart resolves the catalog identifier, preferring sku over part_number
// and yielding null when neither is present.
func skuOrPart(item schemas.LineItem) *string {
	if item.SKU != "" {
		s := item.SKU
		return &s
	}
	if item.PartNumber != "" {
		s := item.PartNumber
		return &s
	}
	return nil
}

// unitMeasure resolves the unit of measure, accepting either wire alias and
// defaulting to "Units".
func unitMeasure(item schemas.LineItem) string {
	if item.UnitMeasure != "" {
		return item.UnitMeasure
	}
	if item.UOM != "" {
		return item.UOM
	}
	return "Units"
}
