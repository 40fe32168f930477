package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestCatalogctl_ImportAndInspect(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOGGER_LEVEL", "error")
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.sqlite")
	csvData := "Name,SKU,Image\nEye Tweezer,ELT-1,\nNail Clipper,BCI-1,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products_updated.csv"), []byte(csvData), 0o600))

	out := run(t, "--db", db, "import-csv", dir)
	assert.Contains(t, out, "2 inserted, 0 updated, 0 skipped")

	out = run(t, "--db", db, "inspect")
	assert.Contains(t, out, "Products: 2")
	assert.Contains(t, out, "ELT-1")
}

func TestCatalogctl_Seed(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOGGER_LEVEL", "error")
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{"categories":[],"products":[{"id":"A","name":"Brush"}]}`), 0o600))

	out := run(t, "--db", filepath.Join(dir, "catalog.sqlite"), "seed", seed)
	assert.Contains(t, out, "Seeded 1 products")
}

func TestCatalogctl_ImportNeedsPath(t *testing.T) {
	t.Setenv("CSV_PATH", "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", filepath.Join(t.TempDir(), "c.sqlite"), "import-csv"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}
