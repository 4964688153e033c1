package main

import (
	"fmt"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/crawl"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID)
	if err != nil {
		if casescout.ErrorCode(err) == casescout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'casescout runs' to see available runs.\n", c.RunID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	records, err := deps.Records.FindRecords(deps.Ctx, casescout.RecordFilter{RunID: &run.ID, Succeeded: true})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stderr, "error: run %s has no extracted records to summarize\n", run.ID)
		return casescout.Errorf(casescout.EINVALID, "run %s has no extracted records", run.ID)
	}

	cfg := deps.Config.Summary
	if c.Provider != "" {
		if c.Provider != cfg.Provider {
			// The configured model belongs to the configured provider.
			cfg.Model = ""
		}
		cfg.Provider = c.Provider
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	prompt := cfg.Prompt
	if c.Prompt != "" {
		prompt = c.Prompt
	}

	if c.DryRun {
		text := casescout.FormatPrompt(records, prompt)
		fmt.Fprintln(deps.Stdout, text)

		counter, err := deps.NewTokenCounter()
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: token estimate unavailable: %v\n", err)
			return nil
		}
		tokens, err := counter.CountTokens(deps.Ctx, text)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: token estimate unavailable: %s\n", casescout.ErrorMessage(err))
			return nil
		}
		fmt.Fprintf(deps.Stderr, "%d records, %s, %s\n",
			len(records), crawl.FormatBytes(len(text)), crawl.FormatTokens(tokens))
		return nil
	}

	summarizer, err := deps.NewSummarizer(cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	spin := newProgress(deps.Stderr)
	spin.Start(fmt.Sprintf("Summarizing %d records with %s", len(records), cfg.Provider))
	summary, err := summarizer.Summarize(deps.Ctx, records, prompt)
	spin.Stop()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, summary)
	return nil
}
