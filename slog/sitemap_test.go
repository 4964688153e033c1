package slog_test

import (
	"bytes"
	"context"
	"iter"
	"log/slog"
	"slices"
	"testing"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/mock"
	csslog "github.com/fwojciec/casescout/slog"
	"github.com/stretchr/testify/assert"
)

func candidates(urls ...string) *mock.SitemapService {
	return &mock.SitemapService{
		CandidatesFn: func(context.Context, string, casescout.KeywordSet) iter.Seq[casescout.Candidate] {
			return func(yield func(casescout.Candidate) bool) {
				for _, u := range urls {
					if !yield(casescout.Candidate{URL: u, Sitemap: "https://example.com/sitemap.xml"}) {
						return
					}
				}
			}
		},
	}
}

func TestLoggingSitemapService_Candidates(t *testing.T) {
	t.Parallel()

	t.Run("logs summary with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		svc := csslog.NewLoggingSitemapService(candidates(
			"https://example.com/customers/acme-corp",
			"https://example.com/customers/globex",
		), logger)

		got := slices.Collect(svc.Candidates(context.Background(), "https://example.com", casescout.DefaultKeywords))

		assert.Len(t, got, 2)
		output := buf.String()
		assert.Contains(t, output, "sitemap discovery")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "sitemap candidate")
	})

	t.Run("logs each candidate at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		svc := csslog.NewLoggingSitemapService(candidates("https://example.com/customers/acme-corp"), logger)

		_ = slices.Collect(svc.Candidates(context.Background(), "https://example.com", casescout.DefaultKeywords))

		output := buf.String()
		assert.Contains(t, output, "sitemap candidate")
		assert.Contains(t, output, "url=https://example.com/customers/acme-corp")
		assert.Contains(t, output, "sitemap=https://example.com/sitemap.xml")
	})

	t.Run("logs summary when consumer stops early", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		svc := csslog.NewLoggingSitemapService(candidates(
			"https://example.com/customers/acme-corp",
			"https://example.com/customers/globex",
			"https://example.com/customers/initech",
		), logger)

		for range svc.Candidates(context.Background(), "https://example.com", casescout.DefaultKeywords) {
			break
		}

		assert.Contains(t, buf.String(), "count=1")
	})
}
