package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/config"
	catCachePkg "github.com/fekuna/catalog-service/internal/category/cache"
	"github.com/fekuna/catalog-service/internal/importer"
	"github.com/fekuna/catalog-service/internal/model"
	prodRepoPkg "github.com/fekuna/catalog-service/internal/product/repository"
	"github.com/fekuna/catalog-service/internal/schema"
	"github.com/fekuna/catalog-service/pkg/cache"
	"github.com/fekuna/catalog-service/pkg/database/sqlite"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type app struct {
	cfg    *config.Config
	dbPath string
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.LoadEnv()}

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Maintenance tasks for the catalog database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", a.cfg.SQLite.Path, "path to the SQLite database")

	root.AddCommand(a.importCmd(), a.seedCmd(), a.inspectCmd())
	return root
}

func (a *app) importCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "import-csv [path]",
		Short: "Upsert products from a CSV export (file or directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Import.CSVPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("pass a CSV path or set CSV_PATH")
			}
			return a.withImporter(cmd.Context(), func(im *importer.Importer) error {
				summary, err := im.ImportCSVFile(cmd.Context(), path, reset)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported CSV: %d inserted, %d updated, %d skipped\n",
					summary.Inserted, summary.Updated, summary.Skipped)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "delete every product before importing")
	return cmd
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [path]",
		Short: "Replace the catalog with a JSON seed file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Catalog.StaticPath
			if len(args) == 1 {
				path = args[0]
			}
			return a.withImporter(cmd.Context(), func(im *importer.Importer) error {
				n, err := im.SeedFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products from %s\n", n, path)
				return nil
			})
		},
	}
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the products table layout, row count and newest rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withImporter(cmd.Context(), func(im *importer.Importer) error {
				report, err := im.Inspect(cmd.Context())
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
}

// withImporter opens the database, makes sure the schema is current and
// hands an importer to fn.
func (a *app) withImporter(ctx context.Context, fn func(im *importer.Importer) error) error {
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{
		Encoding: "console",
		Level:    a.cfg.Logger.Level,
	})
	defer log.Sync()

	db, err := sqlite.NewSQLite(&sqlite.Config{
		Path:         a.dbPath,
		BusyTimeout:  a.cfg.SQLite.BusyTimeout,
		MaxOpenConns: 1,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ensureSchema(ctx, db, log); err != nil {
		return err
	}

	var invalidator importer.CacheInvalidator
	if a.cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(&cache.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Could not connect to Redis, category cache left as is", zap.Error(err))
		} else {
			defer client.Close()
			invalidator = catCachePkg.NewRedisCache(client.Client, catCachePkg.DefaultKey)
		}
	}

	im := importer.NewImporter(prodRepoPkg.NewSQLiteRepository(db), invalidator, log)
	return fn(im)
}

func ensureSchema(ctx context.Context, db *sqlx.DB, log logger.ZapLogger) error {
	recreated, err := schema.Ensure(ctx, db)
	if err != nil {
		return err
	}
	if recreated {
		log.Warn("Products table had an unexpected layout and was recreated")
	}
	return nil
}

func printReport(w io.Writer, r *importer.Report) {
	fmt.Fprintf(w, "Columns: %s\n", strings.Join(r.Columns, ", "))
	fmt.Fprintf(w, "Products: %d\n", r.Count)
	fmt.Fprintln(w, "Newest:")
	for _, p := range r.Newest {
		fmt.Fprintf(w, "  %s  %-40s  %-24s  %s\n", p.ID, p.Name, p.BaseCategory, model.FormatTimestamp(p.CreatedAt))
	}
}
