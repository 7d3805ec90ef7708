package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gugan3007/nexus-prime/api/schemas"
	"github.com/Gugan3007/nexus-prime/internal/config"
	"github.com/Gugan3007/nexus-prime/internal/observability"
)

// newCompareCmd creates the `compare` command.
func newCompareCmd() *cobra.Command {
	var (
		prioritiesJSON string
		outputPath     string
		format         string
	)

	compareCmd := &cobra.Command{
		Use:   "compare <file> <file>...",
		Short: "Analyze multiple vendor files as one batch and rank them",
		Long: `Analyzes two or more vendor quotation files (structured JSON) in a single
batch and ranks them by Nexus Trust Score.

Batch scoring is population-relative: cost and delivery are scored against
the spread of this batch rather than on absolute scales, so the ranking is a
like-for-like comparison. Priorities set inside an input file win over the
--priorities flag for that vendor.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runCompare(ctx, cfg, cmd.OutOrStdout(), args, prioritiesJSON, outputPath, format)
		},
	}

	compareCmd.Flags().StringVar(&prioritiesJSON, "priorities", "",
		"Buyer priority weights as inline JSON applied to every vendor without its own.")
	compareCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path. If unset, the result prints to stdout.")
	compareCmd.Flags().StringVarP(&format, "format", "f", "json",
		"Output format for --output ('json' or 'xlsx').")

	return compareCmd
}

// runCompare contains the core, testable logic for the compare command.
func runCompare(
	ctx context.Context,
	cfg config.Interface,
	out io.Writer,
	paths []string,
	prioritiesJSON, outputPath, format string,
) error {
	logger := observability.GetLogger()

	priorities, err := parsePriorities(prioritiesJSON)
	if err != nil {
		return err
	}
	if priorities == nil {
		priorities = configuredPriorities(cfg)
	}

	vendors := make([]schemas.VendorInput, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		input, ok := decodeVendorInput(path, data)
		if !ok {
			return fmt.Errorf("%s does not contain a structured vendor input (expected JSON with a vendor_name)", path)
		}
		vendors = append(vendors, *input)
	}

	svc, err := buildService(ctx, cfg, Version)
	if err != nil {
		return err
	}

	result, err := svc.CompareInputs(ctx, vendors, priorities)
	if err != nil {
		return err
	}

	var payload any = result
	if strings.EqualFold(format, "xlsx") && outputPath != "" {
		// The spreadsheet renders the comparison matrix only.
		payload = result.Comparison
	}
	return emitReport(logger, out, payload, outputPath, format)
}
