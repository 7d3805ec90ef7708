package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/config"
	"github.com/Gugan3007/nexus-prime/internal/engine"
	"github.com/Gugan3007/nexus-prime/internal/extract"
	"github.com/Gugan3007/nexus-prime/internal/service"
	"github.com/Gugan3007/nexus-prime/internal/store"
)

// -- Test Helpers --

var testClock = func() time.Time {
	return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) *service.AnalyzerService {
	t.Helper()
	svc, err := service.New(
		config.NewDefaultConfig(),
		engine.New(engine.WithClock(testClock)),
		extract.New(zap.NewNop()),
		nil,
		store.NewMemory(zap.NewNop()),
		zap.NewNop(),
		"test",
	)
	require.NoError(t, err)
	return svc
}

func makeRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("tool result carries no text content")
	return ""
}

// decodeResult unmarshals the JSON text content of a successful tool call.
func decodeResult(t *testing.T, result *mcp.CallToolResult, target any) {
	t.Helper()
	require.False(t, result.IsError, "expected success, got tool error: %s", resultText(t, result))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), target))
}

func docJSON(t *testing.T, doc schemas.RawQuotation) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}

func widgetQuote(name string, unitPrice float64) schemas.RawQuotation {
	return schemas.RawQuotation{
		VendorName:    name,
		Currency:      "USD",
		DeliveryTerms: "10 days",
		LineItems: []schemas.LineItem{
			{Description: "Widget", Quantity: 1, UnitPrice: unitPrice},
		},
	}
}

// seedAnalysis stores one analysis through the service and returns its id.
func seedAnalysis(t *testing.T, svc *service.AnalyzerService, name string, unitPrice float64) string {
	t.Helper()
	doc := widgetQuote(name, unitPrice)
	receipt, err := svc.AnalyzeVendor(context.Background(), &schemas.VendorInput{RawDocument: doc})
	require.NoError(t, err)
	return receipt.VendorID
}

// -- Test Cases --

func TestNewServer(t *testing.T) {
	s := NewServer(newTestService(t), zap.NewNop(), "test")
	require.NotNil(t, s)
}

func TestAnalyzeVendorTool(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		tool := NewAnalyzeVendorTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document": docJSON(t, widgetQuote("Apex Industrial", 1000)),
		}))
		require.NoError(t, err)

		var receipt service.AnalysisReceipt
		decodeResult(t, result, &receipt)
		assert.NotEmpty(t, receipt.VendorID)
		require.NotNil(t, receipt.Analysis)
		assert.Equal(t, "Apex Industrial", receipt.Analysis.DocumentMetadata.VendorName)
		assert.Greater(t, receipt.Analysis.MCDScoring.NexusTrustScore, 0.0)
	})

	t.Run("empty intelligence applies defaults", func(t *testing.T) {
		tool := NewAnalyzeVendorTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document":        docJSON(t, widgetQuote("Apex Industrial", 1000)),
			"market_intelligence": "{}",
		}))
		require.NoError(t, err)

		var receipt service.AnalysisReceipt
		decodeResult(t, result, &receipt)
		assert.Equal(t, engine.TierMidMarket, receipt.Analysis.Quality.BrandTier)
	})

	t.Run("custom priorities shift the score", func(t *testing.T) {
		svc := newTestService(t)
		tool := NewAnalyzeVendorTool(svc)

		balanced, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document": docJSON(t, widgetQuote("Apex Industrial", 90000)),
		}))
		require.NoError(t, err)
		costObsessed, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document":     docJSON(t, widgetQuote("Apex Industrial", 90000)),
			"buyer_priorities": `{"cost":1,"quality":0,"speed":0,"risk":0}`,
		}))
		require.NoError(t, err)

		var a, b service.AnalysisReceipt
		decodeResult(t, balanced, &a)
		decodeResult(t, costObsessed, &b)
		// An expensive quote scores worse when cost is all that matters.
		assert.Less(t, b.Analysis.MCDScoring.NexusTrustScore, a.Analysis.MCDScoring.NexusTrustScore)
	})

	t.Run("rejects malformed document", func(t *testing.T) {
		tool := NewAnalyzeVendorTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document": "not a json object",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "raw_document")
	})

	t.Run("rejects missing vendor name", func(t *testing.T) {
		tool := NewAnalyzeVendorTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document": `{"line_items":[]}`,
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "vendor_name")
	})

	t.Run("rejects zero weights", func(t *testing.T) {
		tool := NewAnalyzeVendorTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document":     docJSON(t, widgetQuote("Apex Industrial", 1000)),
			"buyer_priorities": `{"cost":0,"quality":0,"speed":0,"risk":0}`,
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "positive")
	})

	t.Run("rejects malformed intelligence", func(t *testing.T) {
		tool := NewAnalyzeVendorTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"raw_document":        docJSON(t, widgetQuote("Apex Industrial", 1000)),
			"market_intelligence": "{{broken",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "market_intelligence")
	})
}

func TestAnalyzeDocumentTool(t *testing.T) {
	t.Run("text upload", func(t *testing.T) {
		tool := NewAnalyzeDocumentTool(newTestService(t))

		content := "Quotation for industrial pumps.\nTotal: 5000 USD\nISO 9001 certified."
		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"filename":       "acme_quote.txt",
			"content_base64": base64.StdEncoding.EncodeToString([]byte(content)),
		}))
		require.NoError(t, err)

		var receipt service.UploadReceipt
		decodeResult(t, result, &receipt)
		assert.Equal(t, "acme_quote.txt", receipt.Filename)
		assert.NotEmpty(t, receipt.VendorID)
		assert.Contains(t, receipt.ExtractedTextPreview, "industrial pumps")
		require.NotNil(t, receipt.Analysis)
		assert.Equal(t, "acme_quote", receipt.Analysis.DocumentMetadata.VendorName)
	})

	t.Run("rejects bad base64", func(t *testing.T) {
		tool := NewAnalyzeDocumentTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"filename":       "quote.txt",
			"content_base64": "!!! definitely not base64 !!!",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "base64")
	})

	t.Run("rejects unsupported format", func(t *testing.T) {
		tool := NewAnalyzeDocumentTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"filename":       "quote.zip",
			"content_base64": base64.StdEncoding.EncodeToString([]byte("binary")),
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "unsupported file format")
	})

	t.Run("rejects missing filename", func(t *testing.T) {
		tool := NewAnalyzeDocumentTool(newTestService(t))

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"content_base64": base64.StdEncoding.EncodeToString([]byte("text")),
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "filename")
	})
}

func TestCompareVendorsTool(t *testing.T) {
	t.Run("defaults to recent analyses", func(t *testing.T) {
		svc := newTestService(t)
		seedAnalysis(t, svc, "Cheap Co", 500)
		seedAnalysis(t, svc, "Pricey Corp", 90000)
		tool := NewCompareVendorsTool(svc)

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
		require.NoError(t, err)

		var receipt service.ComparisonReceipt
		decodeResult(t, result, &receipt)
		require.NotNil(t, receipt.Comparison)
		assert.Len(t, receipt.Comparison.RankedVendors, 2)
		assert.Equal(t, "Cheap Co", receipt.Comparison.RecommendedVendor)
		assert.Len(t, receipt.VendorDetails, 2)
	})

	t.Run("explicit ids skip unknown", func(t *testing.T) {
		svc := newTestService(t)
		id1 := seedAnalysis(t, svc, "Cheap Co", 500)
		id2 := seedAnalysis(t, svc, "Pricey Corp", 90000)
		tool := NewCompareVendorsTool(svc)

		idsJSON, err := json.Marshal([]string{id1, "ghost-id", id2})
		require.NoError(t, err)
		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"vendor_ids": string(idsJSON),
		}))
		require.NoError(t, err)

		var receipt service.ComparisonReceipt
		decodeResult(t, result, &receipt)
		assert.Len(t, receipt.Comparison.RankedVendors, 2)
	})

	t.Run("accepts comma separated ids", func(t *testing.T) {
		svc := newTestService(t)
		id1 := seedAnalysis(t, svc, "Cheap Co", 500)
		id2 := seedAnalysis(t, svc, "Pricey Corp", 90000)
		tool := NewCompareVendorsTool(svc)

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"vendor_ids": id1 + ", " + id2,
		}))
		require.NoError(t, err)

		var receipt service.ComparisonReceipt
		decodeResult(t, result, &receipt)
		assert.Len(t, receipt.Comparison.RankedVendors, 2)
	})

	t.Run("rejects a lone vendor", func(t *testing.T) {
		svc := newTestService(t)
		seedAnalysis(t, svc, "Cheap Co", 500)
		tool := NewCompareVendorsTool(svc)

		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "at least 2")
	})
}

func TestAnalyzeSamplesTool(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := newTestService(t)
	tool := NewAnalyzeSamplesTool(svc)

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var batch service.BatchResult
	decodeResult(t, result, &batch)
	assert.Len(t, batch.VendorAnalyses, 3)
	require.NotNil(t, batch.Comparison)
	assert.Equal(t, "Apex Industrial Systems", batch.Comparison.RecommendedVendor)
	assert.Equal(t, 3, svc.Health().AnalysesStored)
}

func TestListSamplesTool(t *testing.T) {
	tool := NewListSamplesTool()

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var envelope struct {
		Samples []sampleSummary `json:"samples"`
		Count   int             `json:"count"`
	}
	decodeResult(t, result, &envelope)
	assert.Equal(t, 3, envelope.Count)
	require.Len(t, envelope.Samples, 3)
	assert.Equal(t, "vendor-apex", envelope.Samples[0].ID)
	assert.Equal(t, "Apex Industrial Systems", envelope.Samples[0].VendorName)
	assert.Equal(t, "EUR", envelope.Samples[1].Currency)
}

func TestListAnalysesTool(t *testing.T) {
	svc := newTestService(t)
	id := seedAnalysis(t, svc, "Apex Industrial", 1000)
	tool := NewListAnalysesTool(svc)

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var envelope struct {
		Analyses []schemas.StoredAnalysis `json:"analyses"`
		Count    int                      `json:"count"`
	}
	decodeResult(t, result, &envelope)
	assert.Equal(t, 1, envelope.Count)
	require.Len(t, envelope.Analyses, 1)
	assert.Equal(t, id, envelope.Analyses[0].ID)
}

func TestGetAnalysisTool(t *testing.T) {
	svc := newTestService(t)
	id := seedAnalysis(t, svc, "Apex Industrial", 1000)
	tool := NewGetAnalysisTool(svc)

	t.Run("round trip", func(t *testing.T) {
		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"vendor_id": id,
		}))
		require.NoError(t, err)

		var analysis schemas.VendorAnalysis
		decodeResult(t, result, &analysis)
		assert.Equal(t, "Apex Industrial", analysis.DocumentMetadata.VendorName)
	})

	t.Run("unknown id", func(t *testing.T) {
		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{
			"vendor_id": "ghost-id",
		}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "analysis not found")
	})

	t.Run("missing id", func(t *testing.T) {
		result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "vendor_id is required")
	})
}

func TestAuditLogTool(t *testing.T) {
	svc := newTestService(t)
	seedAnalysis(t, svc, "Apex Industrial", 1000)
	tool := NewAuditLogTool(svc)

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var envelope struct {
		AuditLog     []schemas.AuditEntry `json:"audit_log"`
		TotalEntries int                  `json:"total_entries"`
	}
	decodeResult(t, result, &envelope)
	assert.Equal(t, 1, envelope.TotalEntries)
	require.Len(t, envelope.AuditLog, 1)
	assert.Equal(t, schemas.AuditSingleAnalysis, envelope.AuditLog[0].Action)
	assert.Contains(t, envelope.AuditLog[0].Details, "Apex Industrial")
}

func TestClearStoreTool(t *testing.T) {
	svc := newTestService(t)
	seedAnalysis(t, svc, "Apex Industrial", 1000)
	tool := NewClearStoreTool(svc)

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var status struct {
		Status string `json:"status"`
	}
	decodeResult(t, result, &status)
	assert.Equal(t, "cleared", status.Status)
	assert.Equal(t, 0, svc.Health().AnalysesStored)

	// The wipe is the only entry left on the fresh trail.
	trail := svc.AuditTrail()
	require.Len(t, trail, 1)
	assert.Equal(t, schemas.AuditStoreCleared, trail[0].Action)
}

func TestHealthTool(t *testing.T) {
	svc := newTestService(t)
	seedAnalysis(t, svc, "Apex Industrial", 1000)
	tool := NewHealthTool(svc)

	result, err := tool.Handle(context.Background(), makeRequest(map[string]interface{}{}))
	require.NoError(t, err)

	var health service.HealthStatus
	decodeResult(t, result, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "rule-based", health.EngineMode)
	assert.Equal(t, 1, health.AnalysesStored)
	assert.Equal(t, 1, health.AuditEntries)
	assert.Equal(t, "test", health.Version)
}
