package schemas

import "time"

// -- Result Store Schemas --

// Audit actions recorded by the service layer.
const (
	AuditSingleAnalysis = "SINGLE_ANALYSIS"
	AuditFileUpload     = "FILE_UPLOAD"
	AuditComparison     = "COMPARISON"
	AuditSampleAnalysis = "SAMPLE_ANALYSIS"
	AuditStoreCleared   = "STORE_CLEARED"
)

// AuditEntry is one append-only audit trail record.
type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// StoredAnalysis pairs a stored analysis with its assigned id.
type StoredAnalysis struct {
	ID       string          `json:"id"`
	Analysis *VendorAnalysis `json:"analysis"`
}

// Store is the process-lifetime result store consumed by the service layer and
// the MCP tools. Implementations must be safe for concurrent use and preserve
// insertion order for List and Recent. Nothing survives a restart.
type Store interface {
	// Save records an analysis under id, overwriting any previous entry while
	// keeping the original insertion position.
	Save(id string, analysis *VendorAnalysis)
	// Get returns the analysis stored under id.
	Get(id string) (*VendorAnalysis, bool)
	// List returns all stored analyses in insertion order.
	List() []StoredAnalysis
	// Recent returns up to n of the most recently inserted analyses, oldest
	// first.
	Recent(n int) []StoredAnalysis
	// Count reports the number of stored analyses.
	Count() int
	// AppendAudit records an audit entry with a fresh id and timestamp.
	AppendAudit(action, details string)
	// Audit returns the audit trail, newest first.
	Audit() []AuditEntry
	// AuditCount reports the number of audit entries.
	AuditCount() int
	// Clear drops all analyses and the audit trail.
	Clear()
}
