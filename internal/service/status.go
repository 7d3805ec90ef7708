package service

import (
	"fmt"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// GetAnalysis fetches one stored analysis by id.
func (s *AnalyzerService) GetAnalysis(id string) (*schemas.VendorAnalysis, error) {
	analysis, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAnalysisNotFound, id)
	}
	return analysis, nil
}

// ListAnalyses returns all stored analyses in insertion order.
func (s *AnalyzerService) ListAnalyses() []schemas.StoredAnalysis {
	return s.store.List()
}

// AuditTrail returns the audit log, newest first.
func (s *AnalyzerService) AuditTrail() []schemas.AuditEntry {
	return s.store.Audit()
}

// Health reports the live service state, including which analysis mode the
// service was wired with.
func (s *AnalyzerService) Health() HealthStatus {
	mode := "rule-based"
	if s.ai != nil {
		mode = "gemini-ai"
	}
	return HealthStatus{
		Status:         "healthy",
		EngineMode:     mode,
		AnalysesStored: s.store.Count(),
		AuditEntries:   s.store.AuditCount(),
		Version:        s.version,
	}
}

// Clear drops every stored analysis and the audit history, then records the
// wipe itself as the first entry of the fresh trail.
func (s *AnalyzerService) Clear() {
	s.store.Clear()
	s.store.AppendAudit(schemas.AuditStoreCleared, "Cleared all stored analyses and audit history")
	s.logger.Info("Store cleared")
}
