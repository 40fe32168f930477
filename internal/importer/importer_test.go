package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product/repository"
	"github.com/fekuna/catalog-service/internal/schema"
	"github.com/fekuna/catalog-service/pkg/database/sqlite"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type countingCache struct{ calls int }

func (c *countingCache) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func setup(t *testing.T) (*Importer, *repository.SQLiteRepository, *countingCache) {
	t.Helper()
	db, err := sqlite.NewSQLite(&sqlite.Config{
		Path:         filepath.Join(t.TempDir(), "catalog.sqlite"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = schema.Ensure(context.Background(), db)
	require.NoError(t, err)

	repo := repository.NewSQLiteRepository(db)
	cache := &countingCache{}
	im := NewImporter(repo, cache, logger.NewNop())
	im.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return im, repo, cache
}

const sampleCSV = `Name,SKU,Image,Stock,Description
Eyelash Tweezer - Curved,ELT-200,https://cdn.example.com/elt-200.jpg,4,"{""finish"":""Matte"",""color"":""red""}"
Cuticle Scissors,BCI-010,,,
,NO-NAME,,,
Nail Clipper,,,,
Brush,BCI-030,,,{broken json
`

func TestImportCSV(t *testing.T) {
	im, repo, cache := setup(t)
	ctx := context.Background()

	summary, err := im.ImportCSV(ctx, strings.NewReader(sampleCSV), false)
	require.NoError(t, err)
	assert.True(t, summary.Header)
	assert.Equal(t, 5, summary.Rows)
	assert.Equal(t, 3, summary.Inserted)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, cache.calls)

	p, err := repo.FindByID(ctx, "ELT-200")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, model.CategoryEyelash, p.BaseCategory)
	assert.Equal(t, &model.Description{Finish: "Matte"}, p.Description)
	assert.Equal(t, "https://cdn.example.com/elt-200.jpg", p.Image)

	brush, err := repo.FindByID(ctx, "BCI-030")
	require.NoError(t, err)
	require.NotNil(t, brush)
	assert.Nil(t, brush.Description)

	// Re-importing updates in place.
	summary, err = im.ImportCSV(ctx, strings.NewReader(sampleCSV), false)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 3, summary.Updated)
}

func TestImportCSV_NoHeaderAndRaggedRows(t *testing.T) {
	im, repo, _ := setup(t)
	ctx := context.Background()

	in := "Eye Brush,EB-1\nNail File,NF-1,,,,extra,columns\n"
	summary, err := im.ImportCSV(ctx, strings.NewReader(in), false)
	require.NoError(t, err)
	assert.False(t, summary.Header)
	assert.Equal(t, 2, summary.Inserted)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestImportCSV_Reset(t *testing.T) {
	im, repo, _ := setup(t)
	ctx := context.Background()

	_, err := im.ImportCSV(ctx, strings.NewReader("Old Brush,OLD-1\n"), false)
	require.NoError(t, err)

	summary, err := im.ImportCSV(ctx, strings.NewReader("New Brush,NEW-1\n"), true)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	old, err := repo.FindByID(ctx, "OLD-1")
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestResolveCSVPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, DefaultCSVName)
	require.NoError(t, os.WriteFile(file, []byte("a,b\n"), 0o600))

	got, err := ResolveCSVPath(dir)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	got, err = ResolveCSVPath(file)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	_, err = ResolveCSVPath(t.TempDir())
	assert.Error(t, err)

	_, err = ResolveCSVPath("")
	assert.Error(t, err)
}

func TestSeedAndInspect(t *testing.T) {
	im, _, cache := setup(t)
	ctx := context.Background()

	seed := `{
		"categories": ["Tweezers"],
		"products": [
			{"id": "A", "name": "Eye Tweezer", "createdAt": "2025-01-01T00:00:00Z"},
			{"id": "B", "name": "Nail Clipper", "price": 4.5, "createdAt": "2025-01-02T00:00:00Z"},
			{"id": "", "name": "Nameless"},
			{"id": "C", "name": "Scissors", "createdAt": "2025-01-03T00:00:00Z"},
			{"id": "D", "name": "Brush", "createdAt": "2025-01-04T00:00:00Z"}
		]
	}`
	n, err := im.Seed(ctx, strings.NewReader(seed))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 1, cache.calls)

	report, err := im.Inspect(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.ProductColumns, report.Columns)
	assert.Equal(t, 4, report.Count)
	require.Len(t, report.Newest, 3)
	assert.Equal(t, "D", report.Newest[0].ID)

	_, err = im.Seed(ctx, strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestImportCSV_LogsSummary(t *testing.T) {
	im, repo, _ := setup(t)
	core, logs := observer.New(zapcore.InfoLevel)
	im = NewImporter(repo, nil, logger.Wrap(zap.New(core)))

	_, err := im.ImportCSV(context.Background(), strings.NewReader("Eye Brush,EB-1\n,NO-NAME\n"), false)
	require.NoError(t, err)

	entries := logs.FilterMessage("csv import finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "importer", fields["component"])
	assert.EqualValues(t, 1, fields["inserted"])
	assert.EqualValues(t, 1, fields["skipped"])
}
