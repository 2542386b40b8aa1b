package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdejongh/imgdiff/pkg/archive"
	"github.com/sdejongh/imgdiff/pkg/compare"
	"github.com/sdejongh/imgdiff/pkg/config"
	"github.com/sdejongh/imgdiff/pkg/difftool"
	"github.com/sdejongh/imgdiff/pkg/logging"
	"github.com/sdejongh/imgdiff/pkg/models"
	"github.com/sdejongh/imgdiff/pkg/output"
	"github.com/sdejongh/imgdiff/pkg/reconcile"
	"github.com/sdejongh/imgdiff/pkg/scan"
)

// NewRootCommand creates the root command: the comparison itself.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imgdiff IMAGE1 IMAGE2",
		Short: "Image and directory binary diff tool",
		Long: `imgdiff compares two filesystem trees and reports per-file and
per-directory differences: content mismatches, missing files, missing
directories, and symlink-target mismatches. Each image may be an
unpacked directory or a compressed archive of a build.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompare,
	}

	AddGlobalFlags(cmd)
	AddCompareFlags(cmd)

	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sourceImage, destImage := args[0], args[1]

	if err := validateImageArgs(sourceImage, destImage); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Close()

	// Fail fast: probe the deep-diff tool before any extraction work
	var differ difftool.Differ
	if compareFlags.Diffoscope {
		diffoscope := difftool.NewDiffoscope(cfg.Compare.DiffoscopeBinary)
		if err := diffoscope.Available(ctx); err != nil {
			return fmt.Errorf("please install diffoscope: %w", err)
		}
		differ = diffoscope
	}

	report, err := runComparison(ctx, cfg, logger, differ, sourceImage, destImage)
	if err != nil {
		logger.Error(ctx, "comparison failed", err, nil)
		return err
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// runComparison resolves both images, scans them, reconciles the
// listings, and renders the report. Extraction scratch directories are
// cleaned up on every exit path.
func runComparison(ctx context.Context, cfg *config.Config, logger logging.Logger, differ difftool.Differ, sourceImage, destImage string) (*models.DiffReport, error) {
	resolver := archive.NewResolver(logger)

	sourceRoot, err := resolver.Resolve(ctx, sourceImage)
	if err != nil {
		return nil, err
	}
	defer sourceRoot.Close()

	destRoot, err := resolver.Resolve(ctx, destImage)
	if err != nil {
		return nil, err
	}
	defer destRoot.Close()

	scanner := scan.NewScanner(cfg.Compare.Sorted, logger)

	source, err := scanner.Scan(ctx, sourceRoot.Root)
	if err != nil {
		return nil, err
	}
	dest, err := scanner.Scan(ctx, destRoot.Root)
	if err != nil {
		return nil, err
	}

	classifier := compare.NewClassifier(compare.NewSHA256Fingerprinter(cfg.Compare.BlockSize))
	reconciler := reconcile.New(classifier, logger)
	reconciler.SetLabels(sourceImage, destImage)
	if differ != nil {
		reconciler.SetDiffer(differ)
	}

	var bar *output.ProgressBar
	if output.ShouldShowProgress(cfg.Output.Progress) {
		bar = output.NewProgressBar(source.FileCount())
		reconciler.SetProgress(bar.Update)
	}

	result, err := reconciler.Reconcile(ctx, source, dest)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	out, err := output.OpenOutput(compareFlags.OutputFile)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	switch cfg.Output.Format {
	case "json":
		if err := output.WriteJSON(out, result); err != nil {
			return nil, err
		}
	default:
		// Colorize only when writing to stdout on a terminal
		colorize := cfg.Output.Color && compareFlags.OutputFile == ""
		renderer := output.NewRenderer(out, colorize)
		if err := renderer.Render(result); err != nil {
			return nil, err
		}
		if cfg.Output.Stats {
			if err := output.RenderStats(out, result); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}
