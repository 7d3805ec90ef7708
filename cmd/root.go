// Package cmd wires the command tree: configuration loading, logger setup,
// and the composition of the analysis service every subcommand shares.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/config"
	"github.com/Gugan3007/nexus-prime/internal/engine"
	"github.com/Gugan3007/nexus-prime/internal/extract"
	"github.com/Gugan3007/nexus-prime/internal/llmclient"
	"github.com/Gugan3007/nexus-prime/internal/observability"
	"github.com/Gugan3007/nexus-prime/internal/reporting"
	"github.com/Gugan3007/nexus-prime/internal/service"
	"github.com/Gugan3007/nexus-prime/internal/store"
)

var cmdJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// contextKey is a private type for context values set by the root command.
type contextKey string

const configKey contextKey = "config"

// getConfigFromContext returns the validated configuration stored by the root
// command's PersistentPreRunE.
func getConfigFromContext(ctx context.Context) (config.Interface, error) {
	cfg, ok := ctx.Value(configKey).(config.Interface)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration missing from command context")
	}
	return cfg, nil
}

// NewRootCommand builds a pristine root command with all subcommands attached.
// Each call returns an independent instance so flag state never leaks between
// executions.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "nexus",
		Short: "Nexus Prime analyzes and ranks vendor quotations.",
		Long: `Nexus Prime runs vendor quotations through a seven-phase analysis pipeline:
document integrity, commercial normalization, quality and market intelligence,
contractual risk scanning, MCDA trust scoring, and negotiation strategy.
Multiple vendors are ranked against each other by Nexus Trust Score.

With a Gemini API key configured, analysis is AI-first with the deterministic
pipeline as fallback; without one it is fully rule-based.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(v, cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				// Bring up a minimal logger so the failure is visible.
				observability.Initialize(
					config.LoggerConfig{Level: "info", Format: "console", ServiceName: "nexus"},
					zapcore.Lock(os.Stderr),
				)
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			// The mcp subcommand owns stdout as its protocol channel, so its
			// console logs must go to stderr.
			consoleSink := zapcore.Lock(os.Stdout)
			if cmd.Name() == "mcp" {
				consoleSink = zapcore.Lock(os.Stderr)
			}
			observability.Initialize(cfg.Logger(), consoleSink)
			observability.GetLogger().Debug("Starting nexus", zap.String("version", Version))

			ctx := context.WithValue(cmd.Context(), configKey, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default searches ./config.yaml and $HOME/.nexus/config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "nexus version %s\n" .Version}}`)

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newCompareCmd(),
		newSamplesCmd(),
		newMCPCmd(),
	)
	return rootCmd
}

// Execute builds the root command and runs it under the given signal-aware
// context. Cancellation via signal is not reported as an error line.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	observability.Sync()
	return err
}

// initializeConfig points viper at the config file (explicit flag, cwd, or
// $HOME/.nexus) and binds the NEXUS_* environment.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".nexus"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file found; defaults and env vars apply.
	}
	return nil
}

// buildService composes the full analysis stack from configuration: AI client
// (when enabled), deterministic engine, text extractor, and in-memory store.
func buildService(ctx context.Context, cfg config.Interface, version string) (*service.AnalyzerService, error) {
	logger := observability.GetLogger()

	ai, err := llmclient.NewClient(ctx, cfg.LLM(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}

	eng := engine.New(
		engine.WithRates(cfg.Engine().Rates),
		engine.WithLogger(logger),
	)
	return service.New(cfg, eng, extract.New(logger), ai, store.NewMemory(logger), logger, version)
}

// parsePriorities decodes an inline --priorities JSON flag; empty means "not
// given" so callers can fall back to file or configured defaults.
func parsePriorities(raw string) (*schemas.BuyerPriorities, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var p schemas.BuyerPriorities
	if err := cmdJSON.UnmarshalFromString(raw, &p); err != nil {
		return nil, fmt.Errorf("--priorities is not valid JSON: %w", err)
	}
	return &p, nil
}

// parseIntel decodes an inline --intel JSON flag; empty means "not given".
func parseIntel(raw string) (*schemas.MarketIntelligence, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var intel schemas.MarketIntelligence
	if err := cmdJSON.UnmarshalFromString(raw, &intel); err != nil {
		return nil, fmt.Errorf("--intel is not valid JSON: %w", err)
	}
	return &intel, nil
}

// configuredPriorities converts the configured default weight split into
// buyer priorities.
func configuredPriorities(cfg config.Interface) *schemas.BuyerPriorities {
	w := cfg.Engine().DefaultWeights
	return &schemas.BuyerPriorities{Cost: w.Cost, Quality: w.Quality, Speed: w.Speed, Risk: w.Risk}
}

// emitReport writes a result to out as pretty JSON, or through the reporting
// layer when an output path is given.
func emitReport(logger *zap.Logger, out io.Writer, payload any, outputPath, format string) error {
	if outputPath == "" {
		data, err := cmdJSON.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize result: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	reporter, err := reporting.New(format, outputPath, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize reporter: %w", err)
	}
	defer func() {
		if cerr := reporter.Close(); cerr != nil {
			logger.Warn("Failed to close reporter cleanly", zap.Error(cerr))
		}
	}()

	if err := reporter.Write(payload); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written", zap.String("path", outputPath), zap.String("format", format))
	return nil
}
