// -- internal/llmclient/factory.go --
package llmclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Gugan3007/nexus-prime/internal/config"
)

// NewClient is a factory function that creates a Client based on the
// configuration. It returns (nil, nil) when AI analysis is disabled, either
// explicitly via the "none" provider or implicitly by a missing API key, so
// the caller can run rule-based only.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			logger.Info("No Gemini API key configured, AI analysis disabled")
			return nil, nil
		}
		return NewGeminiClient(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown or unsupported LLM provider configured: '%s'. Supported: [%s, %s]",
			cfg.Provider, config.ProviderGemini, config.ProviderNone)
	}
}
