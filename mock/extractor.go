package mock

import "github.com/fwojciec/casescout"

var _ casescout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of casescout.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*casescout.Extraction, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*casescout.Extraction, error) {
	return e.ExtractFn(html, pageURL)
}
