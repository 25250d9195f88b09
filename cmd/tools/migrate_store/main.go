// Command migrate_store copies every stored document from the configured
// storage backend into another one, e.g. from a local SQLite file to S3.
//
// Usage:
//
//	go run ./cmd/tools/migrate_store --to sqlite --to-sqlite-path careerview.db
//
// The source is read from careerview.yaml and CAREERVIEW_* variables. The
// target reuses the source S3 credentials when --to is s3.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/careerview/internal/config"
	"github.com/jonathan/careerview/internal/storage"
)

type migrationSummary struct {
	Copied  int
	Skipped int
	Failed  int
}

// migrate copies every object of categories from src to dst. Objects already
// present in dst are skipped unless overwrite is set.
func migrate(ctx context.Context, src, dst storage.Store, categories []string, overwrite bool, out io.Writer) (migrationSummary, error) {
	var sum migrationSummary
	for _, category := range categories {
		ids, err := src.List(ctx, category)
		if err != nil {
			return sum, fmt.Errorf("failed to list %s: %w", category, err)
		}
		fmt.Fprintf(out, "%s: %d objects\n", category, len(ids))

		for _, id := range ids {
			if !overwrite {
				if _, exists, err := dst.Get(ctx, category, id); err == nil && exists {
					fmt.Fprintf(out, "  • Existing: %s/%s\n", category, id)
					sum.Skipped++
					continue
				}
			}
			blob, ok, err := src.Get(ctx, category, id)
			if err != nil || !ok {
				fmt.Fprintf(out, "  ✗ %s/%s: not readable (%v)\n", category, id, err)
				sum.Failed++
				continue
			}
			if err := dst.Put(ctx, category, id, blob); err != nil {
				fmt.Fprintf(out, "  ✗ %s/%s: %v\n", category, id, err)
				sum.Failed++
				continue
			}
			fmt.Fprintf(out, "  ✓ Copied: %s/%s\n", category, id)
			sum.Copied++
		}
	}
	return sum, nil
}

func main() {
	_ = godotenv.Load()

	var (
		configPath  string
		target      config.StorageConfig
		overwrite   bool
		postgresURL string
		sqlitePath  string
		s3Bucket    string
		s3Prefix    string
	)
	pflag.StringVar(&configPath, "config", "", "Path to a config file (default ./careerview.yaml)")
	pflag.StringVar(&target.Backend, "to", "", "Target backend: memory, s3, postgres or sqlite")
	pflag.StringVar(&postgresURL, "to-postgres-url", "", "Target PostgreSQL URL")
	pflag.StringVar(&sqlitePath, "to-sqlite-path", "", "Target SQLite file")
	pflag.StringVar(&s3Bucket, "to-s3-bucket", "", "Target S3 bucket")
	pflag.StringVar(&s3Prefix, "to-s3-prefix", "", "Target S3 key prefix")
	pflag.BoolVar(&overwrite, "overwrite", false, "Replace objects that already exist in the target")
	pflag.Parse()

	cfg, err := config.Load(viper.New(), configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if target.Backend == "" || target.Backend == cfg.Storage.Backend && target.Backend != "s3" {
		fmt.Fprintln(os.Stderr, "ERROR: --to must name a backend different from storage.backend")
		os.Exit(1)
	}
	target.S3 = cfg.Storage.S3
	target.S3.Bucket = s3Bucket
	target.S3.Prefix = s3Prefix
	target.Postgres.URL = postgresURL
	target.SQLite.Path = sqlitePath

	ctx := context.Background()

	src, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to open source %s storage: %v\n", cfg.Storage.Backend, err)
		os.Exit(1)
	}
	defer src.Close()

	dst, err := storage.Open(ctx, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to open target %s storage: %v\n", target.Backend, err)
		os.Exit(1)
	}
	defer dst.Close()

	fmt.Printf("=== Copying %s -> %s ===\n\n", src.Backend(), dst.Backend())

	sum, err := migrate(ctx, src, dst, storage.Categories, overwrite, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("=== Migration Summary ===")
	fmt.Printf("  Copied: %d\n", sum.Copied)
	fmt.Printf("  Existing: %d\n", sum.Skipped)
	fmt.Printf("  Failed: %d\n", sum.Failed)
	if sum.Failed > 0 {
		os.Exit(1)
	}
}
