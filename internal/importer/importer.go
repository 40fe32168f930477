// Package importer loads catalog data in bulk: CSV exports, JSON seed
// files, and a read-only inspection of the products table.
package importer

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product"
	"github.com/fekuna/catalog-service/internal/product/codec"
	"github.com/fekuna/catalog-service/internal/product/dto"
	"github.com/fekuna/catalog-service/pkg/logger"
)

// DefaultCSVName is looked up when the import path is a directory.
const DefaultCSVName = "products_updated.csv"

type Summary struct {
	Rows     int
	Header   bool
	Inserted int
	Updated  int
	Skipped  int
}

type Report struct {
	Columns []string
	Count   int
	Newest  []model.Product
}

type Importer struct {
	repo   product.BatchRepository
	cache  CacheInvalidator
	logger logger.ZapLogger
	now    func() time.Time
}

// CacheInvalidator drops cached category lists after bulk writes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// NewImporter takes an optional category cache to drop after writes; pass
// nil when the caller has none.
func NewImporter(repo product.BatchRepository, cache CacheInvalidator, log logger.ZapLogger) *Importer {
	return &Importer{
		repo:   repo,
		cache:  cache,
		logger: log.With(zap.String("component", "importer")),
		now:    time.Now,
	}
}

// ResolveCSVPath returns path itself for a file and path/DefaultCSVName for a
// directory. Missing files are an error.
func ResolveCSVPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("no csv path given")
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrapf(err, "csv not found: %s", path)
	}
	if !info.IsDir() {
		return path, nil
	}
	candidate := filepath.Join(path, DefaultCSVName)
	if _, err := os.Stat(candidate); err != nil {
		return "", errors.Wrapf(err, "csv not found inside directory: %s", candidate)
	}
	return candidate, nil
}

func (im *Importer) ImportCSVFile(ctx context.Context, path string, reset bool) (*Summary, error) {
	resolved, err := ResolveCSVPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, errors.Wrap(err, "open csv")
	}
	defer f.Close()

	im.logger.Info("importing csv", zap.String("path", resolved), zap.Bool("reset", reset))
	return im.ImportCSV(ctx, f, reset)
}

// ImportCSV upserts every usable row in a single transaction. Rows without
// a name or SKU are counted as skipped.
func (im *Importer) ImportCSV(ctx context.Context, in io.Reader, reset bool) (*Summary, error) {
	records, header, err := parseCSV(in)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Rows: len(records), Header: header}
	now := im.now().UTC().Truncate(time.Millisecond)
	products := make([]model.Product, 0, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		sku := strings.TrimSpace(rec.SKU)
		if name == "" || sku == "" {
			summary.Skipped++
			continue
		}
		products = append(products, model.Product{
			ID:           sku,
			Name:         name,
			BaseCategory: model.DeriveBaseCategory(name),
			Description:  codec.ParseDescription(rec.Description),
			Image:        strings.TrimSpace(rec.Image),
			CreatedAt:    now,
		})
	}

	result, err := im.repo.Upsert(ctx, products, reset)
	if err != nil {
		return nil, err
	}
	summary.Inserted = result.Inserted
	summary.Updated = result.Updated

	im.invalidate(ctx)
	im.logger.Info("csv import finished",
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (im *Importer) SeedFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "open seed file")
	}
	defer f.Close()
	return im.Seed(ctx, f)
}

// Seed replaces the whole catalog with the contents of a JSON seed file.
func (im *Importer) Seed(ctx context.Context, in io.Reader) (int, error) {
	var seed dto.SeedFile
	if err := json.NewDecoder(in).Decode(&seed); err != nil {
		return 0, errors.Wrap(err, "decode seed file")
	}

	now := im.now().UTC().Truncate(time.Millisecond)
	products := make([]model.Product, 0, len(seed.Products))
	for _, rec := range seed.Products {
		if strings.TrimSpace(rec.ID) == "" || strings.TrimSpace(rec.Name) == "" {
			im.logger.Warn("seed: skipping product without id or name", zap.String("id", rec.ID))
			continue
		}
		products = append(products, rec.ToModel(now))
	}

	if err := im.repo.ReplaceAll(ctx, seed.Categories, products); err != nil {
		return 0, err
	}
	im.invalidate(ctx)

	count, err := im.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	im.logger.Info("seed complete", zap.Int("products", count))
	return count, nil
}

// Inspect describes the products table: its columns, row count and the
// three newest rows.
func (im *Importer) Inspect(ctx context.Context) (*Report, error) {
	cols, err := im.repo.Columns(ctx)
	if err != nil {
		return nil, err
	}
	count, err := im.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	newest, err := im.repo.Newest(ctx, 3)
	if err != nil {
		return nil, err
	}
	return &Report{Columns: cols, Count: count, Newest: newest}, nil
}

func (im *Importer) invalidate(ctx context.Context) {
	if im.cache == nil {
		return
	}
	if err := im.cache.Invalidate(ctx); err != nil {
		im.logger.Warn("failed to invalidate category cache", zap.Error(err))
	}
}
