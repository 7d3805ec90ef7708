package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Gugan3007/nexus-prime/internal/service"
)

// -- list_analyses --

// ListAnalysesTool returns every stored analysis in insertion order.
type ListAnalysesTool struct {
	svc *service.AnalyzerService
}

func NewListAnalysesTool(svc *service.AnalyzerService) *ListAnalysesTool {
	return &ListAnalysesTool{svc: svc}
}

func (t *ListAnalysesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_analyses",
		mcp.WithDescription("List all stored vendor analyses in the order they were analyzed."),
	)
}

func (t *ListAnalysesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_ = ctx
	_ = req

	analyses := t.svc.ListAnalyses()
	return jsonResult(map[string]any{
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// -- get_analysis --

// GetAnalysisTool fetches one stored analysis by id.
type GetAnalysisTool struct {
	svc *service.AnalyzerService
}

func NewGetAnalysisTool(svc *service.AnalyzerService) *GetAnalysisTool {
	return &GetAnalysisTool{svc: svc}
}

func (t *GetAnalysisTool) Definition() mcp.Tool {
	return mcp.NewTool("get_analysis",
		mcp.WithDescription("Fetch one stored vendor analysis by its vendor_id."),
		mcp.WithString("vendor_id",
			mcp.Required(),
			mcp.Description("The id returned by analyze_vendor, analyze_document, or a batch run."),
		),
	)
}

func (t *GetAnalysisTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_ = ctx

	id := req.GetString("vendor_id", "")
	if id == "" {
		return mcp.NewToolResultError("vendor_id is required"), nil
	}

	analysis, err := t.svc.GetAnalysis(id)
	if err != nil {
		if rejection(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return jsonResult(analysis)
}

// -- audit_log --

// AuditLogTool returns the append-only audit trail, newest first.
type AuditLogTool struct {
	svc *service.AnalyzerService
}

func NewAuditLogTool(svc *service.AnalyzerService) *AuditLogTool {
	return &AuditLogTool{svc: svc}
}

func (t *AuditLogTool) Definition() mcp.Tool {
	return mcp.NewTool("audit_log",
		mcp.WithDescription("Return the audit trail of every analysis, comparison, upload, and store wipe, newest first."),
	)
}

func (t *AuditLogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_ = ctx
	_ = req

	entries := t.svc.AuditTrail()
	return jsonResult(map[string]any{
		"audit_log":     entries,
		"total_entries": len(entries),
	})
}

// -- clear_store --

// ClearStoreTool wipes all stored analyses and the audit trail.
type ClearStoreTool struct {
	svc *service.AnalyzerService
}

func NewClearStoreTool(svc *service.AnalyzerService) *ClearStoreTool {
	return &ClearStoreTool{svc: svc}
}

func (t *ClearStoreTool) Definition() mcp.Tool {
	return mcp.NewTool("clear_store",
		mcp.WithDescription("Delete every stored analysis and the audit history. The wipe itself is recorded as the first entry of the fresh trail. This cannot be undone."),
	)
}

func (t *ClearStoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_ = ctx
	_ = req

	t.svc.Clear()
	return jsonResult(map[string]any{
		"status":  "cleared",
		"message": "All stored analyses and audit history have been removed.",
	})
}

// -- health --

// HealthTool reports service status and store counts.
type HealthTool struct {
	svc *service.AnalyzerService
}

func NewHealthTool(svc *service.AnalyzerService) *HealthTool {
	return &HealthTool{svc: svc}
}

func (t *HealthTool) Definition() mcp.Tool {
	return mcp.NewTool("health",
		mcp.WithDescription("Report service health: engine mode (rule-based or AI-assisted), stored analysis count, audit entry count, and version."),
	)
}

func (t *HealthTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_ = ctx
	_ = req

	return jsonResult(t.svc.Health())
}
