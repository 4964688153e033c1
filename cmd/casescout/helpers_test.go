package main_test

import (
	"bytes"
	"context"
	"iter"

	"github.com/fwojciec/casescout"
	main "github.com/fwojciec/casescout/cmd/casescout"
	"github.com/fwojciec/casescout/mock"
)

// testConfig mirrors the defaults without touching the environment.
func testConfig() *casescout.Config {
	return &casescout.Config{
		Discovery: casescout.DiscoveryConfig{
			Keywords: casescout.DefaultKeywords,
			Quota:    5,
		},
		Extraction: casescout.ExtractionConfig{
			Engine:      "heuristic",
			Concurrency: 1,
		},
		Summary: casescout.SummaryConfig{
			Provider:  "openai",
			MaxTokens: 2000,
			Prompt:    casescout.DefaultPrompt,
		},
	}
}

// testDeps returns dependencies with buffers for output and the test
// configuration. Services are left for each test to fill in.
func testDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: testConfig(),
	}, stdout, stderr
}

// sitemapWith yields urls as candidates in order.
func sitemapWith(urls ...string) *mock.SitemapService {
	return &mock.SitemapService{
		CandidatesFn: func(_ context.Context, baseURL string, _ casescout.KeywordSet) iter.Seq[casescout.Candidate] {
			return func(yield func(casescout.Candidate) bool) {
				for _, u := range urls {
					if !yield(casescout.Candidate{URL: u, Sitemap: baseURL + "sitemap.xml"}) {
						return
					}
				}
			}
		},
	}
}

// staticExtractor returns an extractor factory that always uses ex.
func staticExtractor(ex casescout.Extractor) func(main.ExtractorOptions) (casescout.Extractor, error) {
	return func(main.ExtractorOptions) (casescout.Extractor, error) {
		return ex, nil
	}
}
