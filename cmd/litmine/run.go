package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"litmine/config"
	"litmine/extract"
	"litmine/pipeline"
	"litmine/pubmed"
	"litmine/report"
	"litmine/storage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a PMID list end to end",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().String("input", "pmid.csv", "CSV file with the PMIDs to process")
	runCmd.Flags().String("config", "", "optional YAML config file")
	runCmd.Flags().String("output-dir", "", "override the output directory")
	runCmd.Flags().Int("workers", 0, "override the worker pool size")
	runCmd.Flags().Bool("no-browser", false, "disable the headless-browser fallback transport")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("output-dir"); v != "" {
		cfg.OutputDir = v
		cfg.ProgressDBPath = filepath.Join(v, "progress.db")
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Workers = v
	}
	if v, _ := cmd.Flags().GetBool("no-browser"); v {
		cfg.UseBrowser = false
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	inputPath, _ := cmd.Flags().GetString("input")
	pmids, err := pipeline.ReadPMIDs(inputPath)
	if err != nil {
		return err
	}
	if len(pmids) == 0 {
		return fmt.Errorf("no PMIDs found in %s", inputPath)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timeout := time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	var renderer extract.Renderer
	if cfg.UseBrowser {
		renderer = extract.NewBrowser(logger)
	}
	fetcher := extract.NewFetcher(extract.NewHTTPClient(timeout), renderer, timeout, logger)
	extractor := extract.NewExtractor(fetcher, cfg.ChunkWords, cfg.OverlapWords, logger)

	scraper := pubmed.NewScraper(logger)
	if cfg.PubMedBaseURL != "" {
		scraper = scraper.WithBaseURL(cfg.PubMedBaseURL)
	}

	writer, err := report.NewLiteratureWriter(filepath.Join(cfg.OutputDir, "literature_data.csv"))
	if err != nil {
		return err
	}
	defer writer.Close()

	progress, err := storage.OpenProgress(cfg.ProgressDBPath)
	if err != nil {
		return err
	}
	defer progress.Close()

	logger.Info("starting run",
		zap.Int("pmids", len(pmids)),
		zap.Int("workers", cfg.Workers),
		zap.Bool("browser", cfg.UseBrowser))

	p := pipeline.New(scraper, extractor, writer, progress, cfg.Workers, logger)
	summary := p.Run(cmd.Context(), pmids)

	fmt.Printf("processed %d: %d success, %d partial, %d failed, %d without PMCID, %d skipped\n",
		summary.Total, summary.Succeeded, summary.Partial, summary.Failed, summary.NoID, summary.Skipped)
	return nil
}
