package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/casescout"
)

var _ casescout.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of casescout.SitemapService.
type SitemapService struct {
	CandidatesFn func(ctx context.Context, baseURL string, keywords casescout.KeywordSet) iter.Seq[casescout.Candidate]
}

func (s *SitemapService) Candidates(ctx context.Context, baseURL string, keywords casescout.KeywordSet) iter.Seq[casescout.Candidate] {
	return s.CandidatesFn(ctx, baseURL, keywords)
}
