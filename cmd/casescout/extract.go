package main

import (
	"fmt"

	"github.com/fwojciec/casescout"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	cfg := deps.Config.Extraction

	opts := ExtractorOptions{
		Engine:       cfg.Engine,
		Strict:       cfg.Strict,
		Sections:     cfg.Sections,
		Markdown:     cfg.Markdown || c.Markdown,
		MaxBodyChars: cfg.MaxBodyChars,
	}
	if c.Engine != "" {
		opts.Engine = c.Engine
	}
	if c.Product {
		opts.Strict = true
		opts.Sections = true
		opts.MaxBodyChars = casescout.ProductBodyLimit
	}

	extractor, err := deps.NewExtractor(opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	resp, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to fetch %s: %v\n", c.URL, err)
		return err
	}

	ex, err := extractor.Extract(resp.Body, resp.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	if c.Meta {
		for _, m := range ex.Meta {
			fmt.Fprintln(deps.Stdout, m)
		}
		return nil
	}

	rec := casescout.NewRecord(c.URL, ex)
	if rec.Failed() {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rec.Error)
		return casescout.Errorf(casescout.ENOTFOUND, "%s: %s", c.URL, rec.Error)
	}

	fmt.Fprintf(deps.Stdout, "Title: %s\n", rec.Title)
	fmt.Fprintf(deps.Stdout, "URL: %s\n", rec.URL)
	if c.Product {
		description := ex.Description
		if description == "" {
			description = "N/A"
		}
		fmt.Fprintf(deps.Stdout, "Description: %s\n", description)
	}
	fmt.Fprintf(deps.Stdout, "\n%s\n", rec.Body)
	return nil
}
