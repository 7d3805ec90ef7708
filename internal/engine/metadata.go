package engine

import (
	"time"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Phase 1: Metadata & Integrity --

// checkMetadata extracts identity fields and raises integrity flags. Flags
// are ordered: missing line items, invalid document, expired quotation. A
// valid_until value that does not parse as YYYY-MM-DD is ignored rather than
// flagged, so sloppy dates never block an otherwise usable quotation.
func (e *Engine) checkMetadata(doc *schemas.RawQuotation) schemas.DocumentMetadata {
	md := schemas.DocumentMetadata{
		VendorName:     orNotSpecified(doc.VendorName),
		QuotationID:    orNotSpecified(doc.QuotationID),
		DateIssued:     orNotSpecified(doc.DateIssued),
		ValidUntil:     orNotSpecified(doc.ValidUntil),
		IntegrityFlags: []string{},
	}

	if md.ValidUntil != schemas.NotSpecified {
		if expiry, err := time.Parse("2006-01-02", md.ValidUntil); err == nil {
			md.IsExpired = e.now().After(expiry)
		}
	}

	if len(doc.LineItems) == 0 {
		md.IntegrityFlags = append(md.IntegrityFlags, schemas.FlagMissingLineItems)
	}
	if doc.TotalPrice == 0 && len(doc.LineItems) == 0 {
		md.IntegrityFlags = append(md.IntegrityFlags, schemas.FlagInvalidDocument)
	}
	if md.IsExpired {
		md.IntegrityFlags = append(md.IntegrityFlags, schemas.FlagQuotationExpired)
	}

	return md
}
