package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/harrison/sweepsafe/internal/analyzer"
	"github.com/harrison/sweepsafe/internal/classifier"
	"github.com/harrison/sweepsafe/internal/config"
	"github.com/harrison/sweepsafe/internal/filelock"
	"github.com/harrison/sweepsafe/internal/logger"
	"github.com/harrison/sweepsafe/internal/metrics"
	"github.com/harrison/sweepsafe/internal/models"
	"github.com/harrison/sweepsafe/internal/report"
)

// NewAnalyzeCommand creates and returns the analyze subcommand
func NewAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <directory>",
		Short: "Classify every file under a directory",
		Long: `Walk the directory tree read-only and classify each file.

Rules (first match wins):
  1. Temporary or cache-style extension          -> LikelySafe
  2. Not accessed for over a year                -> LikelySafe
  3. Larger than 100 MiB, idle over six months   -> BeCareful
  4. Anything else                               -> DoNotDelete

Files sharing a name (case-insensitive) are grouped; every copy except the
most recently modified one is downgraded to BeCareful.

Press Ctrl+C to stop early; the files examined so far are still reported.

Examples:
  sweepsafe analyze ~/Downloads
  sweepsafe analyze /data --format csv --output report.csv
  sweepsafe analyze . --category LikelySafe --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("format", "f", "", "Report format: table, csv, json, markdown, html (default: from config or table)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().String("config", "", "Path to config file (default: <user config dir>/sweepsafe/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().StringSlice("category", nil, "Only list entries in these categories (repeatable)")
	cmd.Flags().Int("limit", 0, "Maximum number of entries to list (0 = unlimited)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

// analyzeOptions holds the resolved flag values for one invocation
type analyzeOptions struct {
	root        string
	format      report.Format
	output      string
	categories  []models.Category
	limit       int
	metricsFile string
	color       bool
	logLevel    string
	rules       classifier.Rules
	runID       string
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	opts, err := resolveAnalyzeOptions(cmd, args[0])
	if err != nil {
		return err
	}

	if err := validateRoot(opts.root); err != nil {
		return err
	}

	cls, err := classifier.New(opts.rules)
	if err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), opts.logLevel)
	if !opts.color {
		log.SetColor(false)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts.runID = uuid.New().String()
	engine := analyzer.NewEngine(nil, cls, analyzer.WithRunID(opts.runID))

	return analyzeAndReport(ctx, engine, opts, log, cmd.OutOrStdout())
}

// analyzeAndReport runs the engine and writes every configured output
func analyzeAndReport(ctx context.Context, engine *analyzer.Engine, opts analyzeOptions, log logger.Logger, stdout io.Writer) error {
	log.LogDebug(fmt.Sprintf("Rules: stale after %s, dormant after %s, large from %d bytes",
		engine.Classifier().Rules().StaleAfter, engine.Classifier().Rules().DormantAfter,
		engine.Classifier().Rules().LargeFileBytes))

	log.LogScanStart(opts.root, opts.runID)
	outcome := <-engine.AnalyzeAsync(ctx, opts.root)
	if outcome.Err != nil {
		return fmt.Errorf("analysis failed: %w", outcome.Err)
	}
	result := outcome.Result
	log.LogDebug(fmt.Sprintf("Finished scanning %s", result.Root))

	summary := result.Summary()
	log.LogScanComplete(summary, result.Duration, result.Cancelled)
	log.LogInfo(report.SummaryLine(summary))

	entries := report.SortBySizeDesc(result.Filter(opts.categories...))
	if opts.limit > 0 && len(entries) > opts.limit {
		log.LogDebug(fmt.Sprintf("Listing %d of %d entries", opts.limit, len(entries)))
		entries = entries[:opts.limit]
	}

	if err := writeReport(ctx, result, entries, opts, stdout); err != nil {
		return err
	}
	if opts.output != "" {
		log.LogInfo(fmt.Sprintf("Report written to %s", opts.output))
	}

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile, result); err != nil {
			return err
		}
		log.LogDebug(fmt.Sprintf("Metrics written to %s", opts.metricsFile))
	}

	return nil
}

// writeReport renders to stdout, or to a locked temp file renamed over opts.output
func writeReport(ctx context.Context, result *analyzer.Result, entries []models.FileEntry, opts analyzeOptions, stdout io.Writer) error {
	ropts := report.Options{Format: opts.format, Color: opts.color && opts.output == ""}

	if opts.output == "" {
		if err := report.Write(stdout, result, entries, ropts); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, result, entries, ropts); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	// The scan may have been interrupted; the partial report is still saved.
	if err := filelock.LockAndWrite(context.WithoutCancel(ctx), opts.output, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func resolveAnalyzeOptions(cmd *cobra.Command, root string) (analyzeOptions, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicitConfig := configPath != ""
	if !explicitConfig {
		if p, err := config.DefaultConfigPath(); err == nil {
			configPath = p
		}
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		if explicitConfig {
			if _, err := os.Stat(configPath); err != nil {
				return analyzeOptions{}, fmt.Errorf("failed to access config file: %w", err)
			}
		}
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return analyzeOptions{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	var logLevelFlag, formatFlag *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelFlag = &v
	}
	if cmd.Flags().Changed("format") {
		v, _ := cmd.Flags().GetString("format")
		formatFlag = &v
	}
	cfg.MergeWithFlags(logLevelFlag, formatFlag)

	if err := cfg.Validate(); err != nil {
		return analyzeOptions{}, fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return analyzeOptions{}, err
	}

	rawCategories, _ := cmd.Flags().GetStringSlice("category")
	var categories []models.Category
	for _, raw := range rawCategories {
		c, err := models.ParseCategory(raw)
		if err != nil {
			return analyzeOptions{}, fmt.Errorf("invalid --category: %w", err)
		}
		categories = append(categories, c)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return analyzeOptions{}, fmt.Errorf("--limit must be >= 0, got %d", limit)
	}

	output, _ := cmd.Flags().GetString("output")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return analyzeOptions{
		root:        root,
		format:      format,
		output:      output,
		categories:  categories,
		limit:       limit,
		metricsFile: metricsFile,
		color:       !noColor && isatty.IsTerminal(os.Stdout.Fd()),
		logLevel:    cfg.LogLevel,
		rules:       cfg.ClassifierRules(),
	}, nil
}

// validateRoot checks the scan root exists and is a directory
func validateRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return &analyzer.ValidationError{Field: "root", Message: "directory path is empty"}
	}

	info, err := afero.NewOsFs().Stat(filepath.Clean(root))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("directory does not exist: %s", root)
		}
		return fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}
	return nil
}
