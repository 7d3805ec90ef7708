package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gugan3007/nexus-prime/internal/config"
	"github.com/Gugan3007/nexus-prime/internal/observability"
	"github.com/Gugan3007/nexus-prime/internal/samples"
)

// newSamplesCmd creates the `samples` command group.
func newSamplesCmd() *cobra.Command {
	samplesCmd := &cobra.Command{
		Use:   "samples",
		Short: "Work with the bundled demo vendors",
		Long: `The samples commands expose the three curated demo vendors shipped with the
binary (a premium global supplier, a mid-market vendor, and a high-risk
budget vendor) and a generator for synthetic vendor inputs.`,
	}
	samplesCmd.AddCommand(
		newSamplesListCmd(),
		newSamplesAnalyzeCmd(),
		newSamplesGenerateCmd(),
	)
	return samplesCmd
}

func newSamplesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the bundled demo vendors as JSON",
		Long: `Prints the full bundled vendor inputs. The output doubles as a template for
hand-written vendor files consumed by analyze and compare.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vendors, err := samples.Vendors()
			if err != nil {
				return err
			}
			return emitReport(observability.GetLogger(), cmd.OutOrStdout(), vendors, "", "json")
		},
	}
}

func newSamplesAnalyzeCmd() *cobra.Command {
	var (
		prioritiesJSON string
		outputPath     string
		format         string
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze all demo vendors and rank them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runSamplesAnalyze(ctx, cfg, cmd.OutOrStdout(), prioritiesJSON, outputPath, format)
		},
	}

	analyzeCmd.Flags().StringVar(&prioritiesJSON, "priorities", "",
		"Buyer priority weights as inline JSON applied to every sample.")
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path. If unset, the result prints to stdout.")
	analyzeCmd.Flags().StringVarP(&format, "format", "f", "json",
		"Output format for --output ('json' or 'xlsx').")

	return analyzeCmd
}

// runSamplesAnalyze contains the core, testable logic for `samples analyze`.
func runSamplesAnalyze(
	ctx context.Context,
	cfg config.Interface,
	out io.Writer,
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

	svc, err := buildService(ctx, cfg, Version)
	if err != nil {
		return err
	}

	result, err := svc.AnalyzeSamples(ctx, priorities)
	if err != nil {
		return err
	}

	var payload any = result
	if strings.EqualFold(format, "xlsx") && outputPath != "" {
		payload = result.Comparison
	}
	return emitReport(logger, out, payload, outputPath, format)
}

func newSamplesGenerateCmd() *cobra.Command {
	var seed int64

	generateCmd := &cobra.Command{
		Use:   "generate [count]",
		Short: "Generate synthetic vendor inputs",
		Long: `Generates plausible random vendor inputs for demos and load testing. The
output is a JSON array of vendor inputs ready for the compare command. A
non-zero --seed makes the output reproducible.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 3
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("count must be a positive integer, got %q", args[0])
				}
				count = n
			}
			return emitReport(observability.GetLogger(), cmd.OutOrStdout(), samples.Generate(count, seed), "", "json")
		},
	}

	generateCmd.Flags().Int64Var(&seed, "seed", 0,
		"Random seed for reproducible output (0 seeds from entropy).")

	return generateCmd
}
