package samples

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// Catalog fragments the generator draws from. Kept small so generated sets
// stay recognizably industrial rather than random noise.
var (
	partNames = []string{
		"Servo Drive", "Gear Reducer", "Linear Actuator", "Ball Screw",
		"Control Cabinet", "Proximity Sensor", "Hydraulic Pump", "Tool Changer",
	}

	paymentTermsPool = []string{
		"Net 30", "Net 60", "50% upfront, balance on delivery", "100% advance",
	}

	warrantyPool = []string{
		"1 year", "2 years", "3 years", "6 months", "",
	}

	finePrintPool = []string{
		"Standard terms of sale apply.",
		"Prices subject to quarterly review.",
		"All sales non-refundable once shipped.",
		"Contract auto-renews annually unless cancelled in writing.",
		"Force majeure releases both parties from delivery obligations.",
	}

	brandTierPool = []string{"Global", "Enterprise", "Mid-Market", "Startup", "Unverified"}

	currencyPool = []string{"USD", "EUR", "GBP", "INR"}

	sentimentPool = []string{"positive", "negative", "neutral"}
)

// Generate builds n synthetic vendor inputs from a seeded faker. The same
// seed always yields the same vendors, which keeps load runs and benchmark
// comparisons reproducible.
func Generate(n int, seed int64) []schemas.VendorInput {
	f := gofakeit.New(seed)
	vendors := make([]schemas.VendorInput, 0, n)
	for i := 0; i < n; i++ {
		vendors = append(vendors, synthesizeVendor(f, i))
	}
	return vendors
}

func synthesizeVendor(f *gofakeit.Faker, i int) schemas.VendorInput {
	itemCount := f.Number(1, 4)
	items := make([]schemas.LineItem, 0, itemCount)
	for j := 0; j < itemCount; j++ {
		items = append(items, schemas.LineItem{
			Description: f.RandomString(partNames),
			SKU:         f.Numerify("SKU-#####"),
			Quantity:    float64(f.Number(1, 50)),
			UnitMeasure: "Units",
			UnitPrice:   f.Price(20, 8000),
		})
	}

	doc := schemas.RawQuotation{
		VendorName:    f.Company(),
		QuotationID:   f.Numerify("Q-2026-####"),
		DateIssued:    fmt.Sprintf("2026-%02d-%02d", f.Number(1, 6), f.Number(1, 28)),
		ValidUntil:    fmt.Sprintf("2027-%02d-%02d", f.Number(1, 12), f.Number(1, 28)),
		Currency:      f.RandomString(currencyPool),
		DeliveryTerms: fmt.Sprintf("%d days", f.Number(5, 90)),
		PaymentTerms:  f.RandomString(paymentTermsPool),
		Warranty:      f.RandomString(warrantyPool),
		FinePrint:     f.RandomString(finePrintPool),
		LineItems:     items,
		Taxes:         schemas.TaxTable{"Sales Tax": f.Price(0.05, 0.25)},
		ShippingCost:  f.Price(50, 500),
	}

	reviewCount := f.Number(0, 4)
	reviews := make([]schemas.Review, 0, reviewCount)
	for j := 0; j < reviewCount; j++ {
		reviews = append(reviews, schemas.Review{
			Sentiment: f.RandomString(sentimentPool),
			Comment:   f.Sentence(6),
		})
	}

	intel := &schemas.MarketIntelligence{
		BrandTier:       f.RandomString(brandTierPool),
		CustomerRating:  float64(f.Number(20, 50)) / 10.0,
		ESGScore:        schemas.NumericESG(float64(f.Number(20, 95))),
		MarketSentiment: f.Sentence(8),
		Reviews:         reviews,
	}

	return schemas.VendorInput{
		ID:                 fmt.Sprintf("synthetic-%03d", i+1),
		RawDocument:        doc,
		MarketIntelligence: intel,
	}
}
