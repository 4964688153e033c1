package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/casescout"
	main "github.com/fwojciec/casescout/cmd/casescout"
	"github.com/fwojciec/casescout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storedRun returns services holding one run with the given records.
func storedRun(records ...*casescout.Record) (*mock.RunService, *mock.RecordService) {
	run := &casescout.Run{ID: "run-1", SiteURL: "https://acme.example/", Quota: 5}
	runs := &mock.RunService{
		FindRunByIDFn: func(_ context.Context, id string) (*casescout.Run, error) {
			if id != run.ID {
				return nil, casescout.Errorf(casescout.ENOTFOUND, "run %q not found", id)
			}
			return run, nil
		},
	}
	recs := &mock.RecordService{
		FindRecordsFn: func(_ context.Context, filter casescout.RecordFilter) ([]*casescout.Record, error) {
			if filter.RunID == nil || *filter.RunID != run.ID {
				return nil, nil
			}
			if filter.Succeeded {
				return casescout.SucceededRecords(records), nil
			}
			return records, nil
		},
	}
	return runs, recs
}

var sampleRecords = []*casescout.Record{
	{ID: "rec-1", RunID: "run-1", URL: "https://acme.example/customers/globex-rollout", Title: "Globex rolls out Acme", Body: "Globex cut costs by 40%."},
	{ID: "rec-2", RunID: "run-1", URL: "https://acme.example/customers/broken-page", Error: "HTTP 500", Position: 1},
	{ID: "rec-3", RunID: "run-1", URL: "https://acme.example/customers/initech-migration", Body: "Initech migrated in a week.", Position: 2},
}

func TestRecordsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists records with titles and failures", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		deps.Runs, deps.Records = storedRun(sampleRecords...)

		require.NoError(t, (&main.RecordsCmd{RunID: "run-1"}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Records for https://acme.example/ (3 total)")
		assert.Contains(t, out, "1. Globex rolls out Acme")
		assert.Contains(t, out, "2. [failed] HTTP 500")
		assert.Contains(t, out, "3. https://acme.example/customers/initech-migration")
	})

	t.Run("full prints formatted bodies", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		deps.Runs, deps.Records = storedRun(sampleRecords...)

		require.NoError(t, (&main.RecordsCmd{RunID: "run-1", Full: true}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "## Globex rolls out Acme\n")
		assert.Contains(t, out, "Globex cut costs by 40%.")
		assert.Contains(t, out, "Error: HTTP 500")
	})

	t.Run("reports unknown run", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		deps.Runs, deps.Records = storedRun()

		err := (&main.RecordsCmd{RunID: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, casescout.ENOTFOUND, casescout.ErrorCode(err))
		assert.Contains(t, stderr.String(), `run "nope" not found`)
	})

	t.Run("reports empty run", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps()
		deps.Runs, deps.Records = storedRun()

		require.NoError(t, (&main.RecordsCmd{RunID: "run-1"}).Run(deps))
		assert.Contains(t, stdout.String(), "has no records")
	})
}
