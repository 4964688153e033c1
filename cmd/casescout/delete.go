package main

import (
	"fmt"

	"github.com/fwojciec/casescout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return casescout.Errorf(casescout.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.RunID); err != nil {
		if casescout.ErrorCode(err) == casescout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'casescout runs' to see available runs.\n", c.RunID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", casescout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.RunID)
	return nil
}
