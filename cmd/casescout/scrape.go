package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	site, err := casescout.NormalizeSiteURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	settings, err := c.DiscoveryFlags.resolve(cfg.Discovery)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	opts := ExtractorOptions{
		Engine:       cfg.Extraction.Engine,
		Strict:       cfg.Extraction.Strict,
		Sections:     cfg.Extraction.Sections,
		Markdown:     cfg.Extraction.Markdown || c.Markdown,
		MaxBodyChars: cfg.Extraction.MaxBodyChars,
	}
	if c.Engine != "" {
		opts.Engine = c.Engine
	}
	extractor, err := deps.NewExtractor(opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	concurrency := cfg.Extraction.Concurrency
	if c.Concurrency > 0 {
		concurrency = c.Concurrency
	}
	retries := cfg.Fetch.Retries
	if c.Retries >= 0 {
		retries = c.Retries
	}
	rate := cfg.Fetch.RatePerSecond
	if c.Rate > 0 {
		rate = c.Rate
	}

	spin := newProgress(deps.Stderr)
	spin.Start("Searching sitemaps of " + site)

	urls := slices.Collect(discoverer(deps, settings.Language).Discover(deps.Ctx, site, settings.Keywords, settings.Quota))
	if c.SkipFirst || cfg.Discovery.SkipFirst {
		urls = crawl.SkipFirst(urls)
	}
	if len(urls) == 0 {
		spin.Stop()
		fmt.Fprintf(deps.Stderr, "No case-study URLs found for %s\n", site)
		return nil
	}

	run := &casescout.Run{
		SiteURL:  site,
		Keywords: settings.Keywords,
		Quota:    settings.Quota,
		Language: settings.Language,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		spin.Stop()
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	scraper := &crawl.Scraper{
		Fetcher:     deps.Fetcher,
		Extractor:   extractor,
		Logger:      deps.Logger,
		Concurrency: concurrency,
		RetryDelays: crawl.RetryDelays(retries),
	}
	if rate > 0 || cfg.Fetch.Jitter > 0 {
		scraper.RateLimiter = crawl.NewDomainLimiter(rate, crawl.WithJitter(cfg.Fetch.Jitter))
	}

	progressFn := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			spin.Update(fmt.Sprintf("Extracting %d pages", event.Total))
		case crawl.ProgressCompleted:
			spin.Update(fmt.Sprintf("[%d/%d] %s", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60)))
		case crawl.ProgressFailed:
			spin.Pause()
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
			spin.Resume()
		case crawl.ProgressFinished:
		}
	}

	records := scraper.Scrape(deps.Ctx, urls, progressFn)
	spin.Stop()

	for _, rec := range records {
		rec.RunID = run.ID
	}
	if _, err := crawl.WriteRecords(deps.Ctx, deps.Records, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	stats := crawl.Summarize(records)
	fmt.Fprintf(deps.Stdout, "Run %s: %d pages from %s\n", run.ID, len(records), site)
	fmt.Fprintf(deps.Stdout, "  %s\n", stats)
	fmt.Fprintf(deps.Stdout, "  Keywords: %s\n", strings.Join(run.Keywords, ", "))
	return nil
}
