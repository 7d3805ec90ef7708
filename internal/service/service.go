// Package service orchestrates the analysis workflow: document extraction,
// the opportunistic AI collaborator, the deterministic engine fallback, the
// result store, and the audit trail. It is injected with fully configured
// components via interfaces, making it decoupled and testable.
package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/config"
	"github.com/Gugan3007/nexus-prime/internal/engine"
	"github.com/Gugan3007/nexus-prime/internal/extract"
	"github.com/Gugan3007/nexus-prime/internal/llmclient"
)

// Boundary validation errors. Callers match these with errors.Is.
var (
	// ErrVendorNameRequired rejects documents with no vendor name.
	ErrVendorNameRequired = errors.New("raw document must carry a vendor_name")
	// ErrZeroWeights rejects buyer priorities that sum to zero or less.
	ErrZeroWeights = errors.New("buyer priorities must sum to a positive value")
	// ErrInsufficientVendors rejects comparisons with fewer than two
	// resolvable analyses.
	ErrInsufficientVendors = errors.New("need at least 2 vendors to compare")
	// ErrAnalysisNotFound reports an unknown analysis id.
	ErrAnalysisNotFound = errors.New("analysis not found")
)

// previewRunes caps the extracted-text preview returned by document uploads.
const previewRunes = 500

// AnalysisReceipt is the response to a single-vendor analysis.
type AnalysisReceipt struct {
	VendorID string                  `json:"vendor_id"`
	Analysis *schemas.VendorAnalysis `json:"analysis"`
}

// UploadReceipt is the response to a document upload analysis.
type UploadReceipt struct {
	VendorID             string                  `json:"vendor_id"`
	Filename             string                  `json:"filename"`
	ExtractedTextPreview string                  `json:"extracted_text_preview"`
	Analysis             *schemas.VendorAnalysis `json:"analysis"`
}

// ComparisonReceipt is the response to a comparison over stored analyses.
type ComparisonReceipt struct {
	Comparison    *schemas.ComparisonResult          `json:"comparison"`
	VendorDetails map[string]*schemas.VendorAnalysis `json:"vendor_details"`
}

// BatchResult is the response to a batch analysis run: every vendor analyzed
// and stored, plus the cross-vendor comparison.
type BatchResult struct {
	VendorAnalyses    map[string]*schemas.VendorAnalysis `json:"vendor_analyses"`
	Comparison        *schemas.ComparisonResult          `json:"comparison"`
	AnalysisTimestamp string                             `json:"analysis_timestamp"`
}

// HealthStatus reports the live state of the analysis service.
type HealthStatus struct {
	Status         string `json:"status"`
	EngineMode     string `json:"engine_mode"`
	AnalysesStored int    `json:"analyses_stored"`
	AuditEntries   int    `json:"audit_entries"`
	Version        string `json:"version"`
}

// AnalyzerService coordinates one analysis workflow end to end. The AI client
// may be nil, in which case every analysis runs the deterministic pipeline.
type AnalyzerService struct {
	cfg       config.Interface
	engine    *engine.Engine
	extractor *extract.Extractor
	ai        llmclient.Client
	store     schemas.Store
	logger    *zap.Logger
	version   string

	now   func() time.Time
	newID func() string
}

// New creates an AnalyzerService. All dependencies except the AI client are
// required; a nil AI client switches the service to rule-based mode.
func New(
	cfg config.Interface,
	eng *engine.Engine,
	extractor *extract.Extractor,
	ai llmclient.Client,
	store schemas.Store,
	logger *zap.Logger,
	version string,
) (*AnalyzerService, error) {
	if cfg == nil || eng == nil || extractor == nil || store == nil || logger == nil {
		return nil, errors.New("cannot initialize analyzer service with nil dependencies")
	}
	return &AnalyzerService{
		cfg:       cfg,
		engine:    eng,
		extractor: extractor,
		ai:        ai,
		store:     store,
		logger:    logger.Named("service"),
		version:   version,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// AnalyzeVendor analyzes one vendor input, stores the result under a fresh
// id, and records an audit entry.
func (s *AnalyzerService) AnalyzeVendor(ctx context.Context, input *schemas.VendorInput) (*AnalysisReceipt, error) {
	if input == nil {
		return nil, errors.New("vendor input is required")
	}
	if strings.TrimSpace(input.RawDocument.VendorName) == "" {
		return nil, ErrVendorNameRequired
	}
	if err := validatePriorities(input.BuyerPriorities); err != nil {
		return nil, err
	}

	analysis := s.analyzeOne(ctx, &input.RawDocument, input.MarketIntelligence, input.BuyerPriorities)

	id := s.newID()
	s.store.Save(id, analysis)
	s.store.AppendAudit(schemas.AuditSingleAnalysis, fmt.Sprintf("Analyzed vendor: %s", input.RawDocument.VendorName))

	s.logger.Info("Vendor analysis stored",
		zap.String("vendor_id", id),
		zap.String("vendor", input.RawDocument.VendorName),
		zap.Float64("trust_score", analysis.MCDScoring.NexusTrustScore),
	)
	return &AnalysisReceipt{VendorID: id, Analysis: analysis}, nil
}

// AnalyzeDocument extracts text from an uploaded file, synthesizes a minimal
// quotation around it, and analyzes that. Unsupported formats surface
// extract.ErrUnsupported.
func (s *AnalyzerService) AnalyzeDocument(
	ctx context.Context,
	filename string,
	data []byte,
	intel *schemas.MarketIntelligence,
	priorities *schemas.BuyerPriorities,
) (*UploadReceipt, error) {
	if err := validatePriorities(priorities); err != nil {
		return nil, err
	}

	doc, err := s.extractor.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	raw := s.synthesizeUploadDocument(filename, doc)
	analysis := s.analyzeOne(ctx, raw, intel, priorities)

	id := s.newID()
	s.store.Save(id, analysis)
	s.store.AppendAudit(schemas.AuditFileUpload, fmt.Sprintf("Uploaded and analyzed: %s", filename))

	s.logger.Info("Document analysis stored",
		zap.String("vendor_id", id),
		zap.String("filename", filename),
		zap.String("kind", string(doc.Kind)),
	)
	return &UploadReceipt{
		VendorID:             id,
		Filename:             filename,
		ExtractedTextPreview: truncateRunes(raw.RawText, previewRunes),
		Analysis:             analysis,
	}, nil
}

// synthesizeUploadDocument wraps extracted content in a quotation shell. The
// vendor name comes from the filename stem; every commercial field starts at
// its documented default so the pipeline grades only what the document
// actually says.
func (s *AnalyzerService) synthesizeUploadDocument(filename string, doc *extract.Document) *schemas.RawQuotation {
	raw := &schemas.RawQuotation{
		VendorName:     strings.TrimSuffix(filename, filepath.Ext(filename)),
		QuotationID:    "UPLOAD-" + strings.ToUpper(s.newID()[:8]),
		DateIssued:     s.now().Format("2006-01-02"),
		ValidUntil:     schemas.NotSpecified,
		Currency:       "USD",
		DeliveryTerms:  schemas.NotSpecified,
		PaymentTerms:   schemas.NotSpecified,
		Warranty:       schemas.NotSpecified,
		Certifications: []string{},
		LineItems:      []schemas.LineItem{},
		Taxes:          schemas.TaxTable{},
	}
	switch doc.Kind {
	case extract.KindImage:
		raw.RawText = fmt.Sprintf("[IMAGE_DOCUMENT:%s]", doc.MIMEType)
		raw.ImageData = &schemas.ImagePayload{MIMEType: doc.MIMEType, Data: doc.Data}
	default:
		raw.RawText = doc.Text
	}
	return raw
}

// analyzeOne runs the AI collaborator when one is configured and falls back
// to the deterministic pipeline on any failure or declined result. It never
// fails: the deterministic pipeline always produces an analysis.
func (s *AnalyzerService) analyzeOne(
	ctx context.Context,
	doc *schemas.RawQuotation,
	intel *schemas.MarketIntelligence,
	priorities *schemas.BuyerPriorities,
) *schemas.VendorAnalysis {
	if intel == nil {
		intel = schemas.DefaultMarketIntelligence()
	}
	if s.ai != nil {
		analysis, err := s.ai.AnalyzeQuotation(ctx, doc, intel, priorities)
		if err != nil {
			s.logger.Warn("AI analysis failed, falling back to rule-based pipeline",
				zap.String("vendor", doc.VendorName),
				zap.Error(err),
			)
		} else if analysis != nil {
			return analysis
		}
	}
	return s.engine.AnalyzeVendor(doc, intel, priorities, nil, nil)
}

// validatePriorities rejects explicit weight sets with a non-positive sum.
// A nil set means "use defaults" and is always valid.
func validatePriorities(p *schemas.BuyerPriorities) error {
	if p != nil && p.Sum() <= 0 {
		return ErrZeroWeights
	}
	return nil
}

// truncateRunes shortens s to at most n runes, never splitting a rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
