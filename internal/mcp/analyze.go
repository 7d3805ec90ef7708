package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/service"
)

// -- analyze_vendor --

// AnalyzeVendorTool runs the full pipeline on one structured quotation.
type AnalyzeVendorTool struct {
	svc *service.AnalyzerService
}

func NewAnalyzeVendorTool(svc *service.AnalyzerService) *AnalyzeVendorTool {
	return &AnalyzeVendorTool{svc: svc}
}

func (t *AnalyzeVendorTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_vendor",
		mcp.WithDescription("Run the full seven-phase analysis pipeline on one vendor quotation and store the result. Returns the stored vendor_id and the complete analysis."),
		mcp.WithString("raw_document",
			mcp.Required(),
			mcp.Description("The quotation as a JSON object. Must carry vendor_name; line_items, taxes, payment_terms, warranty, fine_print and the cost fields drive the pipeline."),
		),
		mcp.WithString("market_intelligence",
			mcp.Description("Optional market feed as JSON: brand_tier, customer_rating (0-5), esg_score (number or label), reviews. Empty or {} applies the neutral mid-market defaults."),
		),
		mcp.WithString("buyer_priorities",
			mcp.Description("Optional MCDA weights as JSON: cost, quality, speed, risk. Weights are renormalized by their sum; empty applies the 40/30/20/10 default split."),
		),
	)
}

func (t *AnalyzeVendorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var doc schemas.RawQuotation
	if err := toolJSON.UnmarshalFromString(req.GetString("raw_document", ""), &doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("raw_document is not valid JSON: %v", err)), nil
	}
	intel, err := decodeIntel(req.GetString("market_intelligence", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	priorities, err := decodePriorities(req.GetString("buyer_priorities", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	receipt, err := t.svc.AnalyzeVendor(ctx, &schemas.VendorInput{
		RawDocument:        doc,
		MarketIntelligence: intel,
		BuyerPriorities:    priorities,
	})
	if err != nil {
		if rejection(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return jsonResult(receipt)
}

// -- analyze_document --

// AnalyzeDocumentTool analyzes an uploaded file instead of structured JSON.
type AnalyzeDocumentTool struct {
	svc *service.AnalyzerService
}

func NewAnalyzeDocumentTool(svc *service.AnalyzerService) *AnalyzeDocumentTool {
	return &AnalyzeDocumentTool{svc: svc}
}

func (t *AnalyzeDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_document",
		mcp.WithDescription("Extract a quotation from an uploaded document (txt, csv, xlsx, pdf, docx, html, or a png/jpeg image) and run the analysis pipeline on it. The vendor name is taken from the filename stem."),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Original filename including extension; the extension selects the extraction path."),
		),
		mcp.WithString("content_base64",
			mcp.Required(),
			mcp.Description("File content encoded as standard base64."),
		),
		mcp.WithString("market_intelligence",
			mcp.Description("Optional market feed as JSON. Empty applies the neutral defaults."),
		),
		mcp.WithString("buyer_priorities",
			mcp.Description("Optional MCDA weights as JSON. Empty applies the default split."),
		),
	)
}

func (t *AnalyzeDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename := req.GetString("filename", "")
	if filename == "" {
		return mcp.NewToolResultError("filename is required"), nil
	}
	data, err := base64.StdEncoding.DecodeString(req.GetString("content_base64", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("content_base64 is not valid base64: %v", err)), nil
	}
	intel, err := decodeIntel(req.GetString("market_intelligence", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	priorities, err := decodePriorities(req.GetString("buyer_priorities", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	receipt, err := t.svc.AnalyzeDocument(ctx, filename, data, intel, priorities)
	if err != nil {
		if rejection(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return jsonResult(receipt)
}
