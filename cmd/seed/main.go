package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/jobboard/config"
	cachemem "github.com/Gunvolt24/jobboard/internal/cache/memory"
	locallock "github.com/Gunvolt24/jobboard/internal/lock/local"
	"github.com/Gunvolt24/jobboard/internal/repo/postgres"
	"github.com/Gunvolt24/jobboard/internal/txn"
	"github.com/Gunvolt24/jobboard/internal/usecase"
	"github.com/Gunvolt24/jobboard/pkg/logger"
	"github.com/Gunvolt24/jobboard/pkg/validate"
	"github.com/joho/godotenv"
)

// CLI-приложение для загрузки каталога (категории и работы) из JSON/JSONL.
// Новые записи получают новые id, поэтому общий кэш сервиса не затрагивается.
func main() {
	inputPath := flag.String("in", "", "path to catalog file (.json or .jsonl)")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	dryRun := flag.Bool("dry-run", false, "only validate the file")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "-in is required")
		os.Exit(2)
	}
	format := validate.InputFormat(*formatStr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dryRun {
		res, err := validate.ReadFile(ctx, *inputPath, format, checkSeed,
			func(context.Context, *seedCategory) error { return nil })
		exit(res, err)
		return
	}

	_ = godotenv.Load(".env.local")
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		logg.Errorf(ctx, "failed to create postgres pool: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	cache := cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL)
	tx := txn.NewManager(pool, cache, logg)
	categories := usecase.NewCategoryService(postgres.NewCategoryRepository(pool), tx, cache, nil, logg, cfg.Cache.TTL)
	jobs := usecase.NewJobService(postgres.NewJobRepository(pool), categories, locallock.New(), tx, cache, nil, logg, cfg.Cache.TTL)

	s := &seeder{categories: categories, jobs: jobs}
	res, err := validate.ReadFile(ctx, *inputPath, format, checkSeed, s.sink)
	logg.Infof(ctx, "seed: %d categories, %d jobs created", s.created.categories, s.created.jobs)
	exit(res, err)
}

func exit(res validate.StreamResult, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v (%s)\n", err, res)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "seed ok (%s)\n", res)
}
