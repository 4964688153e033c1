package main

import (
	"fmt"

	"github.com/fwojciec/casescout"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID)
	if err != nil {
		if casescout.ErrorCode(err) == casescout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'casescout runs' to see available runs.\n", c.RunID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	records, err := deps.Records.FindRecords(deps.Ctx, casescout.RecordFilter{RunID: &run.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "Run %s has no records.\n", run.ID)
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, casescout.FormatRecords(records))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Records for %s (%d total):\n\n", run.SiteURL, len(records))
	for i, rec := range records {
		title := rec.Title
		if title == "" {
			title = rec.URL
		}
		if rec.Failed() {
			title = "[failed] " + rec.Error
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, title, rec.URL)
	}

	return nil
}
