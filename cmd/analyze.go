package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/config"
	"github.com/Gugan3007/nexus-prime/internal/observability"
)

// newAnalyzeCmd creates the `analyze` command.
func newAnalyzeCmd() *cobra.Command {
	var (
		intelJSON      string
		prioritiesJSON string
		outputPath     string
		format         string
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a single vendor quotation file",
		Long: `Analyzes one vendor quotation and prints the stored analysis.

JSON files carrying a structured vendor input (an object with raw_document,
or a bare quotation with vendor_name) are analyzed directly. Any other
supported file (txt, csv, pdf, xlsx, docx, html, png, jpg) goes through text
extraction first, with the vendor name taken from the filename stem.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runAnalyze(ctx, cfg, cmd.OutOrStdout(), args[0], intelJSON, prioritiesJSON, outputPath, format)
		},
	}

	analyzeCmd.Flags().StringVar(&intelJSON, "intel", "",
		"Market intelligence as inline JSON (overrides any feed in the input file).")
	analyzeCmd.Flags().StringVar(&prioritiesJSON, "priorities", "",
		`Buyer priority weights as inline JSON, e.g. '{"cost":0.5,"quality":0.2,"speed":0.2,"risk":0.1}'.`)
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path. If unset, the result prints to stdout.")
	analyzeCmd.Flags().StringVarP(&format, "format", "f", "json",
		"Output format for --output ('json'; 'xlsx' applies to comparisons only).")

	return analyzeCmd
}

// runAnalyze contains the core, testable logic for the analyze command.
func runAnalyze(
	ctx context.Context,
	cfg config.Interface,
	out io.Writer,
	path, intelJSON, prioritiesJSON, outputPath, format string,
) error {
	logger := observability.GetLogger()

	intel, err := parseIntel(intelJSON)
	if err != nil {
		return err
	}
	priorities, err := parsePriorities(prioritiesJSON)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	svc, err := buildService(ctx, cfg, Version)
	if err != nil {
		return err
	}

	var payload any
	if input, ok := decodeVendorInput(path, data); ok {
		if intel != nil {
			input.MarketIntelligence = intel
		}
		if priorities != nil {
			input.BuyerPriorities = priorities
		}
		if input.BuyerPriorities == nil {
			input.BuyerPriorities = configuredPriorities(cfg)
		}
		receipt, err := svc.AnalyzeVendor(ctx, input)
		if err != nil {
			return err
		}
		payload = receipt
	} else {
		if priorities == nil {
			priorities = configuredPriorities(cfg)
		}
		receipt, err := svc.AnalyzeDocument(ctx, filepath.Base(path), data, intel, priorities)
		if err != nil {
			return err
		}
		payload = receipt
	}

	return emitReport(logger, out, payload, outputPath, format)
}

// decodeVendorInput tries to read a structured vendor input from a JSON file.
// Both the full envelope ({"raw_document": ...}) and a bare quotation object
// are accepted; anything else falls back to the extraction path.
func decodeVendorInput(path string, data []byte) (*schemas.VendorInput, bool) {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return nil, false
	}
	var input schemas.VendorInput
	if err := cmdJSON.Unmarshal(data, &input); err == nil &&
		strings.TrimSpace(input.RawDocument.VendorName) != "" {
		return &input, true
	}
	var doc schemas.RawQuotation
	if err := cmdJSON.Unmarshal(data, &doc); err == nil &&
		strings.TrimSpace(doc.VendorName) != "" {
		return &schemas.VendorInput{RawDocument: doc}, true
	}
	return nil, false
}
