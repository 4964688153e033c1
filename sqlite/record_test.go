package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("generates ID, timestamp and content hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db, "https://acme.example/")
		rec := &casescout.Record{
			RunID: run.ID,
			URL:   "https://acme.example/customers/globex-rollout",
			Title: "Globex rollout",
			Body:  "Globex moved 300 engineers onto the platform.",
		}

		require.NoError(t, sqlite.NewRecordService(db).CreateRecord(context.Background(), rec))

		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
		assert.Len(t, rec.ContentHash, 16)
	})

	t.Run("identical content hashes identically", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db, "https://acme.example/")
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		a := &casescout.Record{RunID: run.ID, URL: "https://acme.example/customers/a-story", Title: "T", Body: "B"}
		b := &casescout.Record{RunID: run.ID, URL: "https://acme.example/customers/b-story", Title: "T", Body: "B"}
		c := &casescout.Record{RunID: run.ID, URL: "https://acme.example/customers/c-story", Title: "T", Body: "other"}
		require.NoError(t, svc.CreateRecord(ctx, a))
		require.NoError(t, svc.CreateRecord(ctx, b))
		require.NoError(t, svc.CreateRecord(ctx, c))

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
	})

	t.Run("stores failed record without hash", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db, "https://acme.example/")
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		rec := &casescout.Record{RunID: run.ID, URL: "https://acme.example/customers/broken", Error: "HTTP 500"}
		require.NoError(t, svc.CreateRecord(ctx, rec))

		found, err := svc.FindRecordByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "HTTP 500", found.Error)
		assert.Empty(t, found.ContentHash)
	})

	t.Run("rejects record with content and error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		run := createTestRun(t, db, "https://acme.example/")

		err := sqlite.NewRecordService(db).CreateRecord(context.Background(), &casescout.Record{
			RunID: run.ID,
			URL:   "https://acme.example/customers/broken",
			Title: "Half",
			Error: "HTTP 500",
		})

		assert.Equal(t, casescout.EINVALID, casescout.ErrorCode(err))
	})

	t.Run("rejects record without run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewRecordService(db).CreateRecord(context.Background(), &casescout.Record{
			URL:   "https://acme.example/customers/orphan",
			Title: "Orphan",
		})

		assert.Equal(t, casescout.EINVALID, casescout.ErrorCode(err))
	})

	t.Run("rejects record for unknown run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewRecordService(db).CreateRecord(context.Background(), &casescout.Record{
			RunID: "missing",
			URL:   "https://acme.example/customers/orphan",
			Title: "Orphan",
		})

		require.Error(t, err)
	})
}

func TestRecordService_FindRecordByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewRecordService(db).FindRecordByID(context.Background(), "missing")

		assert.Equal(t, casescout.ENOTFOUND, casescout.ErrorCode(err))
	})
}

func TestRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*sqlite.RecordService, *casescout.Run) {
		t.Helper()
		db := setupTestDB(t)
		run := createTestRun(t, db, "https://acme.example/")
		other := createTestRun(t, db, "https://globex.example/")
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		for _, rec := range []*casescout.Record{
			{RunID: run.ID, URL: "https://acme.example/customers/third", Title: "Third", Position: 2},
			{RunID: run.ID, URL: "https://acme.example/customers/first", Title: "First", Position: 0},
			{RunID: run.ID, URL: "https://acme.example/customers/second", Error: "HTTP 404", Position: 1},
			{RunID: other.ID, URL: "https://globex.example/customers/other", Title: "Other", Position: 0},
		} {
			require.NoError(t, svc.CreateRecord(ctx, rec))
		}
		return svc, run
	}

	t.Run("returns run records ordered by position", func(t *testing.T) {
		t.Parallel()

		svc, run := seed(t)

		records, err := svc.FindRecords(context.Background(), casescout.RecordFilter{RunID: &run.ID})

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "https://acme.example/customers/first", records[0].URL)
		assert.Equal(t, "https://acme.example/customers/second", records[1].URL)
		assert.Equal(t, "https://acme.example/customers/third", records[2].URL)
	})

	t.Run("filters to succeeded records", func(t *testing.T) {
		t.Parallel()

		svc, run := seed(t)

		records, err := svc.FindRecords(context.Background(), casescout.RecordFilter{RunID: &run.ID, Succeeded: true})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "First", records[0].Title)
		assert.Equal(t, "Third", records[1].Title)
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		svc, _ := seed(t)
		url := "https://globex.example/customers/other"

		records, err := svc.FindRecords(context.Background(), casescout.RecordFilter{URL: &url})

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Other", records[0].Title)
	})

	t.Run("filters by content hash across runs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()
		first := createTestRun(t, db, "https://acme.example/")
		second := createTestRun(t, db, "https://acme.example/")

		a := &casescout.Record{RunID: first.ID, URL: "https://acme.example/customers/globex", Title: "Globex", Body: "Same story"}
		b := &casescout.Record{RunID: second.ID, URL: "https://acme.example/customers/globex", Title: "Globex", Body: "Same story"}
		c := &casescout.Record{RunID: second.ID, URL: "https://acme.example/customers/initech", Title: "Initech", Body: "Other story"}
		for _, rec := range []*casescout.Record{a, b, c} {
			require.NoError(t, svc.CreateRecord(ctx, rec))
		}

		records, err := svc.FindRecords(ctx, casescout.RecordFilter{ContentHash: &a.ContentHash})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.ElementsMatch(t, []string{a.ID, b.ID}, []string{records[0].ID, records[1].ID})
	})

	t.Run("applies limit", func(t *testing.T) {
		t.Parallel()

		svc, run := seed(t)

		records, err := svc.FindRecords(context.Background(), casescout.RecordFilter{RunID: &run.ID, Limit: 1})

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "First", records[0].Title)
	})
}

func TestRecordService_DeleteRecordsByRun(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	run := createTestRun(t, db, "https://acme.example/")
	svc := sqlite.NewRecordService(db)
	ctx := context.Background()
	require.NoError(t, svc.CreateRecord(ctx, &casescout.Record{RunID: run.ID, URL: "https://acme.example/customers/first", Title: "First"}))

	require.NoError(t, svc.DeleteRecordsByRun(ctx, run.ID))

	records, err := svc.FindRecords(ctx, casescout.RecordFilter{RunID: &run.ID})
	require.NoError(t, err)
	assert.Empty(t, records)
}
