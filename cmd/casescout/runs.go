package main

import (
	"fmt"

	"github.com/fwojciec/casescout"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, casescout.RunFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'casescout scrape' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  quota=%d\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.SiteURL, r.Quota)
	}

	return nil
}
