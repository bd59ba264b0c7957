package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAssignsIdentity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := &ConversionRecord{From: "docx", To: "pdf", FileName: "report.docx", Status: StatusSuccess}
	require.NoError(t, s.Insert(ctx, rec))
	assert.Len(t, rec.ID, 36)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.docx", got.FileName)
	assert.Equal(t, "pdf", got.To)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersAndPages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		status := StatusSuccess
		if i%2 == 1 {
			status = StatusFailed
		}
		require.NoError(t, s.Insert(ctx, &ConversionRecord{
			From:      "markdown",
			To:        "html",
			Status:    status,
			FileName:  string(rune('a'+i)) + ".md",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	rows, total, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, rows, 5)
	assert.Equal(t, "e.md", rows[0].FileName)

	rows, total, err = s.List(ctx, Filter{Status: StatusFailed})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "d.md", rows[0].FileName)
	assert.Equal(t, "b.md", rows[1].FileName)

	rows, total, err = s.List(ctx, Filter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "c.md", rows[0].FileName)
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.ByTarget)

	recs := []ConversionRecord{
		{From: "docx", To: "pdf", Status: StatusSuccess, InputBytes: 100, OutputBytes: 300, DurationMs: 10},
		{From: "docx", To: "pdf", Status: StatusFailed, InputBytes: 50, DurationMs: 30},
		{From: "markdown", To: "html", Status: StatusSuccess, InputBytes: 10, OutputBytes: 20, DurationMs: 20},
	}
	for i := range recs {
		require.NoError(t, s.Insert(ctx, &recs[i]))
	}

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Total)
	assert.Equal(t, int64(2), st.Success)
	assert.Equal(t, int64(1), st.Failed)
	assert.Equal(t, int64(160), st.InputBytes)
	assert.Equal(t, int64(320), st.OutputBytes)
	assert.InDelta(t, 20.0, st.AvgDurationMs, 0.001)
	assert.Equal(t, map[string]int64{"pdf": 2, "html": 1}, st.ByTarget)
}
