package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Gugan3007/nexus-prime/internal/samples"
	"github.com/Gugan3007/nexus-prime/internal/service"
)

// -- compare_vendors --

// CompareVendorsTool ranks stored analyses against each other.
type CompareVendorsTool struct {
	svc *service.AnalyzerService
}

func NewCompareVendorsTool(svc *service.AnalyzerService) *CompareVendorsTool {
	return &CompareVendorsTool{svc: svc}
}

func (t *CompareVendorsTool) Definition() mcp.Tool {
	return mcp.NewTool("compare_vendors",
		mcp.WithDescription("Rank previously stored analyses by Nexus Trust Score and recommend a vendor. With no ids the most recent analyses are compared; unknown ids are skipped."),
		mcp.WithString("vendor_ids",
			mcp.Description("Stored vendor ids to compare, as a JSON array or comma-separated list. Leave empty to compare the most recent analyses."),
		),
	)
}

func (t *CompareVendorsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := parseIDList(req.GetString("vendor_ids", ""))

	receipt, err := t.svc.CompareStored(ctx, ids)
	if err != nil {
		if rejection(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return jsonResult(receipt)
}

// -- analyze_samples --

// AnalyzeSamplesTool runs the bundled demo vendors end to end.
type AnalyzeSamplesTool struct {
	svc *service.AnalyzerService
}

func NewAnalyzeSamplesTool(svc *service.AnalyzerService) *AnalyzeSamplesTool {
	return &AnalyzeSamplesTool{svc: svc}
}

func (t *AnalyzeSamplesTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_samples",
		mcp.WithDescription("Analyze the three bundled sample vendors (premium, mid-market, high-risk), store the results, and return the full batch with a cross-vendor comparison."),
		mcp.WithString("buyer_priorities",
			mcp.Description("Optional MCDA weights as JSON applied to every sample. Empty applies the default split."),
		),
	)
}

func (t *AnalyzeSamplesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	priorities, err := decodePriorities(req.GetString("buyer_priorities", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := t.svc.AnalyzeSamples(ctx, priorities)
	if err != nil {
		if rejection(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return jsonResult(result)
}

// -- list_samples --

// ListSamplesTool describes the bundled demo vendors without analyzing them.
type ListSamplesTool struct{}

func NewListSamplesTool() *ListSamplesTool {
	return &ListSamplesTool{}
}

func (t *ListSamplesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_samples",
		mcp.WithDescription("List the bundled sample vendors with their id, name, currency, and market profile. Use analyze_samples to actually run them."),
	)
}

type sampleSummary struct {
	ID         string `json:"id"`
	VendorName string `json:"vendor_name"`
	Currency   string `json:"currency"`
	LineItems  int    `json:"line_items"`
	BrandTier  string `json:"brand_tier,omitempty"`
}

func (t *ListSamplesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_ = ctx
	_ = req

	vendors, err := samples.Vendors()
	if err != nil {
		return nil, err
	}

	summaries := make([]sampleSummary, 0, len(vendors))
	for _, v := range vendors {
		summary := sampleSummary{
			ID:         v.ID,
			VendorName: v.RawDocument.VendorName,
			Currency:   v.RawDocument.Currency,
			LineItems:  len(v.RawDocument.LineItems),
		}
		if v.MarketIntelligence != nil {
			summary.BrandTier = v.MarketIntelligence.BrandTier
		}
		summaries = append(summaries, summary)
	}
	return jsonResult(map[string]any{
		"samples": summaries,
		"count":   len(summaries),
	})
}
