// Package mcp exposes the analysis service as MCP tools over stdio. This is
// the composition root for the tool surface: it wires handlers to the
// service and registers them on the server. No business logic lives here.
package mcp

import (
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/extract"
	"github.com/Gugan3007/nexus-prime/internal/service"
)

var toolJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// NewServer builds the MCP server with every analysis tool registered.
func NewServer(svc *service.AnalyzerService, logger *zap.Logger, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"nexus-prime",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	analyzeVendor := NewAnalyzeVendorTool(svc)
	s.AddTool(analyzeVendor.Definition(), analyzeVendor.Handle)

	analyzeDocument := NewAnalyzeDocumentTool(svc)
	s.AddTool(analyzeDocument.Definition(), analyzeDocument.Handle)

	compareVendors := NewCompareVendorsTool(svc)
	s.AddTool(compareVendors.Definition(), compareVendors.Handle)

	analyzeSamples := NewAnalyzeSamplesTool(svc)
	s.AddTool(analyzeSamples.Definition(), analyzeSamples.Handle)

	listSamples := NewListSamplesTool()
	s.AddTool(listSamples.Definition(), listSamples.Handle)

	listAnalyses := NewListAnalysesTool(svc)
	s.AddTool(listAnalyses.Definition(), listAnalyses.Handle)

	getAnalysis := NewGetAnalysisTool(svc)
	s.AddTool(getAnalysis.Definition(), getAnalysis.Handle)

	auditLog := NewAuditLogTool(svc)
	s.AddTool(auditLog.Definition(), auditLog.Handle)

	clearStore := NewClearStoreTool(svc)
	s.AddTool(clearStore.Definition(), clearStore.Handle)

	health := NewHealthTool(svc)
	s.AddTool(health.Definition(), health.Handle)

	logger.Named("mcp").Debug("MCP server configured", zap.String("version", version))
	return s
}

// Serve runs the server on the stdio transport until the client disconnects.
// The caller must make sure nothing else writes to stdout while this runs.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const serverInstructions = "Nexus Prime analyzes vendor quotations with a " +
	"seven-phase pipeline (integrity checks, commercial normalization, quality " +
	"assessment, contractual risk, MCDA trust scoring, negotiation strategy) " +
	"and ranks vendors against each other. Start with analyze_vendor or " +
	"analyze_document, then compare_vendors over the stored results. " +
	"analyze_samples runs the bundled three-vendor demo end to end."

// rejection reports whether the service refused the request itself, as
// opposed to failing internally. Rejections become in-band tool errors so the
// calling model can correct its arguments and retry.
func rejection(err error) bool {
	return errors.Is(err, service.ErrVendorNameRequired) ||
		errors.Is(err, service.ErrZeroWeights) ||
		errors.Is(err, service.ErrInsufficientVendors) ||
		errors.Is(err, service.ErrAnalysisNotFound) ||
		errors.Is(err, extract.ErrUnsupported)
}

// jsonResult renders a payload as pretty-printed JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := toolJSON.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// emptyJSON reports whether a JSON argument carries no usable object.
func emptyJSON(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "{}" || trimmed == "null"
}

// decodeIntel parses an optional market-intelligence JSON argument. An empty
// object means "use the documented defaults".
func decodeIntel(raw string) (*schemas.MarketIntelligence, error) {
	if emptyJSON(raw) {
		return nil, nil
	}
	var intel schemas.MarketIntelligence
	if err := toolJSON.UnmarshalFromString(raw, &intel); err != nil {
		return nil, fmt.Errorf("market_intelligence is not valid JSON: %w", err)
	}
	return &intel, nil
}

// decodePriorities parses an optional buyer-priorities JSON argument.
func decodePriorities(raw string) (*schemas.BuyerPriorities, error) {
	if emptyJSON(raw) {
		return nil, nil
	}
	var priorities schemas.BuyerPriorities
	if err := toolJSON.UnmarshalFromString(raw, &priorities); err != nil {
		return nil, fmt.Errorf("buyer_priorities is not valid JSON: %w", err)
	}
	return &priorities, nil
}

// parseIDList accepts either a JSON string array or a comma-separated list.
func parseIDList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "[]" {
		return nil
	}
	var ids []string
	if err := toolJSON.UnmarshalFromString(trimmed, &ids); err == nil {
		return ids
	}
	ids = ids[:0]
	for _, part := range strings.Split(trimmed, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
