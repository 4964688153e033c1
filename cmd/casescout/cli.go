package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/casescout"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *casescout.Config

	Runs     casescout.RunService
	Records  casescout.RecordService
	Sitemaps casescout.SitemapService
	Fetcher  casescout.Fetcher
	Detector casescout.LanguageDetector

	// NewExtractor builds the extraction engine for a command.
	NewExtractor func(opts ExtractorOptions) (casescout.Extractor, error)

	// NewSummarizer builds the client for the selected provider.
	NewSummarizer func(cfg casescout.SummaryConfig) (casescout.Summarizer, error)

	// NewTokenCounter builds the prompt token estimator. It may download
	// tokenizer data, so it is only called by summarize --dry-run.
	NewTokenCounter func() (casescout.TokenCounter, error)
}

// ExtractorOptions selects an extraction engine and its settings.
type ExtractorOptions struct {
	Engine       string
	Strict       bool
	Sections     bool
	Markdown     bool
	MaxBodyChars int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string `help:"Path to a YAML config file" type:"path"`
	DB          string `name:"db" help:"Database path (overrides config)"`
	Verbose     bool   `short:"v" help:"Log debug output"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this file on exit"`

	Discover  DiscoverCmd  `cmd:"" help:"List case-study URLs found in a site's sitemaps"`
	Scrape    ScrapeCmd    `cmd:"" help:"Discover and extract case studies into a new run"`
	Extract   ExtractCmd   `cmd:"" help:"Extract a single page"`
	Runs      RunsCmd      `cmd:"" help:"List stored runs"`
	Records   RecordsCmd   `cmd:"" help:"List the records of a run"`
	Summarize SummarizeCmd `cmd:"" help:"Summarize a run's records with a language model"`
	Export    ExportCmd    `cmd:"" help:"Write a run's records as markdown files"`
	Delete    DeleteCmd    `cmd:"" help:"Delete a run and its records"`
}

// DiscoveryFlags are shared by the commands that discover URLs. Zero values
// fall back to the configuration.
type DiscoveryFlags struct {
	Quota       int      `short:"n" help:"Number of URLs to collect (1-20)"`
	Keyword     []string `short:"k" name:"keyword" help:"URL path keyword (repeatable)"`
	Language    string   `short:"l" help:"Required page language, e.g. English or en"`
	AnyLanguage bool     `name:"any-language" help:"Accept pages in any language"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL            string `arg:"" help:"Company site URL"`
	DiscoveryFlags `embed:""`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL            string `arg:"" help:"Company site URL"`
	DiscoveryFlags `embed:""`

	SkipFirst   bool    `name:"skip-first" help:"Drop the first discovered URL"`
	Concurrency int     `short:"c" help:"Pages processed in parallel"`
	Engine      string  `short:"e" help:"Extraction engine (heuristic, trafilatura, readability)"`
	Markdown    bool    `short:"m" help:"Store bodies as Markdown"`
	Retries     int     `default:"-1" help:"Fetch retries per page"`
	Rate        float64 `help:"Requests per second per domain"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Product  bool   `short:"p" help:"Product page: strict cleaning, sections and description"`
	Meta     bool   `help:"Print every meta content value"`
	Engine   string `short:"e" help:"Extraction engine (heuristic, trafilatura, readability)"`
	Markdown bool   `short:"m" help:"Print the body as Markdown"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	RunID string `arg:"" name:"run-id" help:"Run ID"`
	Full  bool   `help:"Show full record content"`
}

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	RunID    string `arg:"" name:"run-id" help:"Run ID"`
	Prompt   string `help:"Instruction appended to the records"`
	Provider string `enum:",openai,anthropic,gemini" default:"" help:"Model provider (openai, anthropic, gemini)"`
	Model    string `help:"Model name"`
	DryRun   bool   `name:"dry-run" help:"Print the prompt and a token estimate without calling the model"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	RunID string `arg:"" name:"run-id" help:"Run ID"`
	Dir   string `arg:"" help:"Output directory" type:"path"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	RunID string `arg:"" name:"run-id" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
