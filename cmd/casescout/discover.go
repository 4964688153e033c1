package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/crawl"
)

// discoverySettings is DiscoveryFlags merged over the configuration.
type discoverySettings struct {
	Keywords casescout.KeywordSet
	Quota    int
	Language string
}

func (f DiscoveryFlags) resolve(cfg casescout.DiscoveryConfig) (discoverySettings, error) {
	s := discoverySettings{
		Keywords: cfg.Keywords,
		Quota:    cfg.Quota,
		Language: cfg.Language,
	}
	if len(f.Keyword) > 0 {
		s.Keywords = casescout.NewKeywordSet(f.Keyword...)
	}
	if f.Quota != 0 {
		s.Quota = f.Quota
	}
	if f.Language != "" {
		s.Language = f.Language
	}
	if f.AnyLanguage {
		s.Language = ""
	}

	if s.Quota < casescout.MinQuota || s.Quota > casescout.MaxQuota {
		return s, casescout.Errorf(casescout.EINVALID, "quota must be between %d and %d, got %d",
			casescout.MinQuota, casescout.MaxQuota, s.Quota)
	}
	if len(s.Keywords) == 0 {
		return s, casescout.Errorf(casescout.EINVALID, "at least one keyword is required")
	}
	return s, nil
}

// discoverer builds a Discoverer that validates candidates against the
// requested language.
func discoverer(deps *Dependencies, language string) *crawl.Discoverer {
	validator := crawl.AcceptAll
	if strings.TrimSpace(language) != "" {
		validator = &crawl.LanguageValidator{Detector: deps.Detector, Language: language}
	}
	return &crawl.Discoverer{
		Sitemaps:  deps.Sitemaps,
		Validator: validator,
		Logger:    deps.Logger,
	}
}

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	site, err := casescout.NormalizeSiteURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	settings, err := c.DiscoveryFlags.resolve(deps.Config.Discovery)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	spin := newProgress(deps.Stderr)
	spin.Start("Searching sitemaps of " + site)

	found := 0
	for u := range discoverer(deps, settings.Language).Discover(deps.Ctx, site, settings.Keywords, settings.Quota) {
		spin.Pause()
		fmt.Fprintln(deps.Stdout, u)
		spin.Resume()
		found++
	}
	spin.Stop()

	if found == 0 {
		fmt.Fprintf(deps.Stderr, "No case-study URLs found for %s\n", site)
	}
	return nil
}
