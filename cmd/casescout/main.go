package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
	anthropicSDK "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	charmlog "github.com/charmbracelet/log"
	"github.com/fwojciec/casescout"
	csanthropic "github.com/fwojciec/casescout/anthropic"
	"github.com/fwojciec/casescout/gemini"
	"github.com/fwojciec/casescout/goquery"
	"github.com/fwojciec/casescout/htmltomarkdown"
	cshttp "github.com/fwojciec/casescout/http"
	csopenai "github.com/fwojciec/casescout/openai"
	csprom "github.com/fwojciec/casescout/prometheus"
	"github.com/fwojciec/casescout/readability"
	csslog "github.com/fwojciec/casescout/slog"
	"github.com/fwojciec/casescout/sqlite"
	"github.com/fwojciec/casescout/trafilatura"
	csviper "github.com/fwojciec/casescout/viper"
	"github.com/fwojciec/casescout/whatlang"
	"github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// HTTPClient is used for page and sitemap requests. Nil uses a default
	// client.
	HTTPClient *http.Client

	// Summarizer replaces the provider client when set. Used in tests.
	Summarizer casescout.Summarizer

	// TokenCounter replaces the Gemini tokenizer when set. Used in tests.
	TokenCounter casescout.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Logs and progress lines come from several goroutines.
	stderr = &syncWriter{w: stderr}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("casescout"),
		kong.Description("Find and extract customer case studies from company web sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := casescout.Errorf(casescout.EINVALID, "no command specified. Run 'casescout --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", err.Message)
		return err
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	cfg, err := csviper.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}
	if cli.DB != "" {
		cfg.DBPath = cli.DB
	}
	if cli.Verbose {
		cfg.Verbose = true
	}
	deps.Config = cfg

	logger := newLogger(stderr, cfg.Verbose)
	deps.Logger = logger

	metrics := csprom.NewMetrics()
	if cli.MetricsFile != "" {
		defer func() {
			if err := metrics.WriteTextfile(cli.MetricsFile); err != nil {
				logger.Warn("failed to write metrics", "path", cli.MetricsFile, "err", err)
			}
		}()
	}

	command := strings.Fields(kongCtx.Command())[0]
	if needsDB(command) {
		if err := m.openDB(cfg.DBPath); err != nil {
			fmt.Fprintf(stderr, "Hint: Set CASESCOUT_DB_PATH or --db to use a different database path\n")
			fmt.Fprintf(stderr, "error: failed to open database at %q: %v\n", cfg.DBPath, err)
			return err
		}
		defer m.Close()

		deps.Runs = sqlite.NewRunService(m.DB)
		deps.Records = sqlite.NewRecordService(m.DB)
	}

	fetcher := m.newFetcher(cfg.Fetch, logger, metrics)
	defer fetcher.Close()
	deps.Fetcher = fetcher

	deps.Sitemaps = csslog.NewLoggingSitemapService(
		cshttp.NewSitemapService(m.HTTPClient,
			cshttp.WithLogger(logger),
			cshttp.WithRespectRobots(cfg.Discovery.RespectRobots),
			cshttp.WithSitemapUserAgent(cfg.Fetch.UserAgent),
			cshttp.WithSitemapTimeout(cfg.Fetch.Timeout),
		),
		logger,
	)
	deps.Detector = csslog.NewLoggingLanguageDetector(whatlang.NewDetector(fetcher, nil), logger)
	deps.NewExtractor = extractorFactory(logger, metrics)
	deps.NewSummarizer = func(sc casescout.SummaryConfig) (casescout.Summarizer, error) {
		if m.Summarizer != nil {
			return csslog.NewLoggingSummarizer(m.Summarizer, logger), nil
		}
		s, err := newSummarizer(ctx, sc)
		if err != nil {
			return nil, err
		}
		return csslog.NewLoggingSummarizer(s, logger), nil
	}
	deps.NewTokenCounter = func() (casescout.TokenCounter, error) {
		if m.TokenCounter != nil {
			return m.TokenCounter, nil
		}
		tc, err := gemini.NewTokenCounter(cfg.Summary.Model)
		if err != nil {
			return nil, err
		}
		if tc.Estimated() {
			logger.Debug("estimating tokens with substitute vocabulary", "model", cfg.Summary.Model, "tokenizer", tc.Model())
		}
		return tc, nil
	}

	return kongCtx.Run(deps)
}

func needsDB(command string) bool {
	switch command {
	case "discover", "extract":
		return false
	}
	return true
}

func (m *Main) openDB(path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
	}
	m.DB = sqlite.NewDB(path)
	return m.DB.Open()
}

func (m *Main) newFetcher(cfg casescout.FetchConfig, logger *slog.Logger, metrics *csprom.Metrics) casescout.Fetcher {
	opts := []cshttp.Option{
		cshttp.WithTimeout(cfg.Timeout),
		cshttp.WithUserAgent(cfg.UserAgent),
	}
	if m.HTTPClient != nil {
		opts = append(opts, cshttp.WithClient(m.HTTPClient))
	}
	var f casescout.Fetcher = cshttp.NewFetcher(opts...)
	f = csprom.NewMetricsFetcher(f, metrics)
	return csslog.NewLoggingFetcher(f, logger)
}

// newLogger returns a slog logger backed by charmbracelet/log.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return slog.New(handler)
}

func extractorFactory(logger *slog.Logger, metrics *csprom.Metrics) func(ExtractorOptions) (casescout.Extractor, error) {
	return func(o ExtractorOptions) (casescout.Extractor, error) {
		var conv casescout.Converter
		if o.Markdown {
			var mdOpts []htmltomarkdown.Option
			if o.Strict {
				mdOpts = append(mdOpts, htmltomarkdown.WithoutImages())
			}
			conv = htmltomarkdown.NewConverter(mdOpts...)
		}

		var ex casescout.Extractor
		switch o.Engine {
		case "", "heuristic":
			opts := []goquery.Option{
				goquery.WithStrictCleaning(o.Strict),
				goquery.WithSections(o.Sections),
				goquery.WithMaxBodyChars(o.MaxBodyChars),
			}
			if conv != nil {
				opts = append(opts, goquery.WithConverter(conv))
			}
			ex = goquery.NewExtractor(opts...)
		case "trafilatura":
			ex = trafilatura.NewExtractor(
				trafilatura.WithConverter(conv),
				trafilatura.WithMaxBodyChars(o.MaxBodyChars),
			)
		case "readability":
			ex = readability.NewExtractor(
				readability.WithConverter(conv),
				readability.WithMaxBodyChars(o.MaxBodyChars),
			)
		default:
			return nil, casescout.Errorf(casescout.EINVALID, "unknown engine %q: use heuristic, trafilatura or readability", o.Engine)
		}

		return csprom.NewMetricsExtractor(csslog.NewLoggingExtractor(ex, logger), metrics), nil
	}
}

// newSummarizer builds the client for the configured provider. API keys
// come from the loaded configuration.
func newSummarizer(ctx context.Context, cfg casescout.SummaryConfig) (casescout.Summarizer, error) {
	key := cfg.APIKey()

	switch cfg.Provider {
	case "", "openai":
		if key == "" {
			return nil, casescout.Errorf(casescout.EINVALID, "OPENAI_API_KEY not set")
		}
		client := openai.NewClient(openaioption.WithAPIKey(key))
		return csopenai.NewSummarizer(client, cfg.Model, cfg.MaxTokens), nil

	case "anthropic":
		if key == "" {
			return nil, casescout.Errorf(casescout.EINVALID, "ANTHROPIC_API_KEY not set")
		}
		client := anthropicSDK.NewClient(anthropicoption.WithAPIKey(key))
		return csanthropic.NewSummarizer(client, cfg.Model, cfg.MaxTokens), nil

	case "gemini":
		if key == "" {
			return nil, casescout.Errorf(casescout.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewSummarizer(client, cfg.Model, cfg.MaxTokens), nil
	}

	return nil, casescout.Errorf(casescout.EINVALID, "unknown provider %q: use openai, anthropic or gemini", cfg.Provider)
}

// syncWriter serializes writes to w.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
