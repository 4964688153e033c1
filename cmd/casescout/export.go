package main

import (
	"fmt"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/crawl"
	"github.com/fwojciec/casescout/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
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
		fmt.Fprintf(deps.Stderr, "error: run %s has no extracted records to export\n", run.ID)
		return casescout.Errorf(casescout.EINVALID, "run %s has no extracted records", run.ID)
	}

	name := casescout.Domain(run.SiteURL)
	if name == "" {
		name = run.ID
	}

	w := fs.NewWriter(c.Dir, name)
	if _, err := crawl.WriteRecords(deps.Ctx, w, records); err != nil {
		_ = w.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}
	if err := w.Commit(); err != nil {
		_ = w.Abort()
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", w.Dir(), err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d records to %s\n", len(records), w.Dir())
	return nil
}
