package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	_ "github.com/stoolap/stoolap/pkg/driver"
	"go.uber.org/zap"

	"StockBook/internal/inventory"
	"StockBook/pkg/kit"
)

// Configuration comes from STOCKBOOK_* environment variables. DBPath may be
// a plain file path or a full driver DSN (file://..., memory://).
type config struct {
	DBPath  string `split_words:"true" default:"stockbook.db"`
	Metrics bool   `default:"false"`
}

func main() {
	var cfg config
	if err := envconfig.Process("stockbook", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := kit.NewLogger("stockbook")
	defer func() { _ = log.Sync() }()

	dsn, err := storageDSN(cfg.DBPath)
	if err != nil {
		log.Fatal("resolve storage path", zap.String("path", cfg.DBPath), zap.Error(err))
	}

	db, err := sql.Open("stoolap", dsn)
	if err != nil {
		log.Fatal("open database", zap.String("dsn", dsn), zap.Error(err))
	}

	metrics := kit.NewMetrics()
	ctx := context.Background()

	cat, err := inventory.Open(ctx, inventory.NewDBStore(db), inventory.Deps{
		Log:     log,
		Metrics: metrics,
	})
	if err != nil {
		_ = db.Close()
		log.Fatal("open catalog", zap.Error(err))
	}

	menu := &Menu{Catalog: cat, Out: os.Stdout}
	runErr := menu.Run(ctx)

	if err := cat.Close(); err != nil {
		log.Error("close catalog", zap.Error(err))
	}
	if runErr != nil {
		log.Fatal("menu stopped", zap.Error(runErr))
	}

	if cfg.Metrics {
		if err := metrics.Dump(os.Stderr); err != nil {
			log.Warn("metrics dump failed", zap.Error(err))
		}
	}
}

func storageDSN(path string) (string, error) {
	if strings.Contains(path, "://") {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "file://" + abs, nil
}
