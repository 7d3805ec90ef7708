package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/engine"
	"github.com/Gugan3007/nexus-prime/internal/samples"
)

// AnalyzeBatch analyzes a set of vendors concurrently, stores every result,
// and compares them. When relative is true the batch runs a commercial
// pre-pass first and scores each vendor against the whole population through
// the deterministic pipeline; otherwise each vendor is scored solo with the
// AI collaborator attempted opportunistically.
//
// Results are stored in input order regardless of completion order, so the
// store's listing stays deterministic.
func (s *AnalyzerService) AnalyzeBatch(
	ctx context.Context,
	vendors []schemas.VendorInput,
	priorities *schemas.BuyerPriorities,
	relative bool,
) (*BatchResult, error) {
	if len(vendors) < 2 {
		return nil, ErrInsufficientVendors
	}
	if err := validatePriorities(priorities); err != nil {
		return nil, err
	}

	ids := make([]string, len(vendors))
	for i := range vendors {
		if vendors[i].RawDocument.VendorName == "" {
			return nil, fmt.Errorf("%w (vendor %d)", ErrVendorNameRequired, i+1)
		}
		if err := validatePriorities(vendors[i].BuyerPriorities); err != nil {
			return nil, fmt.Errorf("%w (vendor %d)", err, i+1)
		}
		if vendors[i].ID != "" {
			ids[i] = vendors[i].ID
		} else {
			ids[i] = s.newID()
		}
	}

	// Population metrics must cover every vendor before any scoring starts,
	// so the pre-pass runs sequentially over the cheap commercial phase.
	var populationCosts []float64
	var populationDays []int
	if relative {
		populationCosts = make([]float64, 0, len(vendors))
		populationDays = make([]int, 0, len(vendors))
		for i := range vendors {
			cost, days := s.engine.CommercialPreview(&vendors[i].RawDocument)
			populationCosts = append(populationCosts, cost)
			populationDays = append(populationDays, days)
		}
	}

	results := make([]*schemas.VendorAnalysis, len(vendors))
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Engine().WorkerConcurrency)
	for i := range vendors {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			v := &vendors[i]
			prio := priorities
			if v.BuyerPriorities != nil {
				prio = v.BuyerPriorities
			}
			if relative {
				intel := v.MarketIntelligence
				if intel == nil {
					intel = schemas.DefaultMarketIntelligence()
				}
				results[i] = s.engine.AnalyzeVendor(&v.RawDocument, intel, prio, populationCosts, populationDays)
				return nil
			}
			results[i] = s.analyzeOne(groupCtx, &v.RawDocument, v.MarketIntelligence, prio)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch analysis aborted: %w", err)
	}

	analyses := make(map[string]*schemas.VendorAnalysis, len(vendors))
	ordered := make([]*schemas.VendorAnalysis, 0, len(vendors))
	for i, res := range results {
		s.store.Save(ids[i], res)
		analyses[ids[i]] = res
		ordered = append(ordered, res)
	}

	comparison, err := engine.CompareVendors(ordered)
	if err != nil {
		return nil, fmt.Errorf("comparison failed: %w", err)
	}

	s.logger.Info("Batch analysis complete",
		zap.Int("vendors", len(vendors)),
		zap.Bool("relative_scoring", relative),
		zap.String("recommended", comparison.RecommendedVendor),
	)
	return &BatchResult{
		VendorAnalyses:    analyses,
		Comparison:        comparison,
		AnalysisTimestamp: s.now().Format(time.RFC3339),
	}, nil
}

// CompareInputs analyzes the given vendors as one population-scored batch and
// records a comparison audit entry.
func (s *AnalyzerService) CompareInputs(
	ctx context.Context,
	vendors []schemas.VendorInput,
	priorities *schemas.BuyerPriorities,
) (*BatchResult, error) {
	result, err := s.AnalyzeBatch(ctx, vendors, priorities, true)
	if err != nil {
		return nil, err
	}
	s.store.AppendAudit(schemas.AuditComparison, fmt.Sprintf("Compared %d vendors", len(vendors)))
	return result, nil
}

// AnalyzeSamples runs the curated demo vendors through the solo-scored batch
// path and records a sample-analysis audit entry.
func (s *AnalyzerService) AnalyzeSamples(ctx context.Context, priorities *schemas.BuyerPriorities) (*BatchResult, error) {
	vendors, err := samples.Vendors()
	if err != nil {
		return nil, err
	}
	result, err := s.AnalyzeBatch(ctx, vendors, priorities, false)
	if err != nil {
		return nil, err
	}
	s.store.AppendAudit(schemas.AuditSampleAnalysis, fmt.Sprintf("Analyzed %d sample vendors", len(vendors)))
	return result, nil
}

// CompareStored compares analyses already in the store. With no ids it takes
// the most recent stored analyses up to the configured limit; unknown ids are
// skipped rather than failing the comparison.
func (s *AnalyzerService) CompareStored(ctx context.Context, ids []string) (*ComparisonReceipt, error) {
	_ = ctx

	var selected []schemas.StoredAnalysis
	if len(ids) == 0 {
		selected = s.store.Recent(s.cfg.Store().RecentCompareLimit)
	} else {
		for _, id := range ids {
			analysis, ok := s.store.Get(id)
			if !ok {
				s.logger.Debug("Skipping unknown vendor id in comparison", zap.String("vendor_id", id))
				continue
			}
			selected = append(selected, schemas.StoredAnalysis{ID: id, Analysis: analysis})
		}
	}
	if len(selected) < 2 {
		return nil, ErrInsufficientVendors
	}

	ordered := make([]*schemas.VendorAnalysis, 0, len(selected))
	details := make(map[string]*schemas.VendorAnalysis, len(selected))
	for _, rec := range selected {
		ordered = append(ordered, rec.Analysis)
		details[rec.ID] = rec.Analysis
	}

	comparison, err := engine.CompareVendors(ordered)
	if err != nil {
		return nil, fmt.Errorf("comparison failed: %w", err)
	}

	s.store.AppendAudit(schemas.AuditComparison, fmt.Sprintf("Compared %d vendors", len(selected)))
	s.logger.Info("Stored comparison complete",
		zap.Int("vendors", len(selected)),
		zap.String("recommended", comparison.RecommendedVendor),
	)
	return &ComparisonReceipt{Comparison: comparison, VendorDetails: details}, nil
}
