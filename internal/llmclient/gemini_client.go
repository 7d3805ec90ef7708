// internal/llmclient/gemini_client.go
package llmclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/config"
)

var responseJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// GeminiClient implements the Client interface on top of the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	cfg     config.LLMConfig
	limiter *rate.Limiter
	logger  *zap.Logger
	now     func() time.Time
}

var _ Client = (*GeminiClient)(nil)

// NewGeminiClient initializes the client.
func NewGeminiClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}

	return &GeminiClient{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		logger:  logger.Named("llmclient.gemini"),
		now:     time.Now,
	}, nil
}

// AnalyzeQuotation sends the quotation to the model and decodes the
// structured analysis it returns. Transient API failures are retried with
// exponential backoff; an undecodable or empty response yields (nil, nil).
func (c *GeminiClient) AnalyzeQuotation(
	ctx context.Context,
	doc *schemas.RawQuotation,
	intel *schemas.MarketIntelligence,
	priorities *schemas.BuyerPriorities,
) (*schemas.VendorAnalysis, error) {
	if doc == nil {
		return nil, fmt.Errorf("raw document is required")
	}

	userPrompt, err := buildUserPrompt(doc, intel, priorities)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{genai.NewPartFromText(userPrompt)}
	if doc.ImageData != nil && len(doc.ImageData.Data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(doc.ImageData.Data, doc.ImageData.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	genCfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(c.cfg.Temperature),
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(renderSystemPrompt(c.now()), genai.RoleUser),
	}
	if c.cfg.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = int32(c.cfg.MaxOutputTokens)
	}

	var raw string
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		callCtx := ctx
		if c.cfg.APITimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.cfg.APITimeout)
			defer cancel()
		}

		start := time.Now()
		resp, err := c.client.Models.GenerateContent(callCtx, c.cfg.Model, contents, genCfg)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			c.logger.Warn("Gemini request failed, retrying...", zap.Error(err))
			return err
		}

		raw = resp.Text()
		c.logger.Info("LLM generation complete",
			zap.String("model", c.cfg.Model),
			zap.Duration("duration", time.Since(start)),
			zap.Int("response_chars", len(raw)),
		)
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxInterval = 30 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxRetries)), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("gemini analysis failed: %w", err)
	}

	analysis := c.decodeAnalysis(raw)
	if analysis == nil {
		return nil, nil
	}

	fillDefaults(analysis, doc)
	analysis.AnalysisSource = c.cfg.Model

	c.logger.Info("AI analysis complete",
		zap.String("vendor", analysis.DocumentMetadata.VendorName))
	return analysis, nil
}

// decodeAnalysis parses the model output. A nil return means the response was
// unusable, which the caller converts into a rule-based fallback.
func (c *GeminiClient) decodeAnalysis(raw string) *schemas.VendorAnalysis {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		c.logger.Warn("Gemini returned an empty response")
		return nil
	}

	var analysis schemas.VendorAnalysis
	if err := responseJSON.UnmarshalFromString(trimmed, &analysis); err != nil {
		c.logger.Warn("Failed to decode Gemini response as analysis JSON", zap.Error(err))
		return nil
	}
	return &analysis
}
