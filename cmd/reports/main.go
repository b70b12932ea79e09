package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hostel_pms/internal/adapters/genai"
	"hostel_pms/internal/adapters/observability"
	"hostel_pms/internal/app"
	"hostel_pms/internal/domain"
	"hostel_pms/internal/shared"
	"hostel_pms/internal/storage/memory"
	mysqlrepo "hostel_pms/internal/storage/mysql"
)

// reports runs a batch of assistant operations against the demo property and
// writes each answer to REPORT_DIR/<operation>.json.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	gw, err := genai.Select(cfg.AIBase, cfg.AIKey, genai.Options{
		TextModel:      cfg.AITextModel,
		ImageModel:     cfg.AIImageModel,
		RPS:            cfg.AIRPS,
		MaxConcurrency: cfg.AIMaxConcurrency,
		Timeout:        cfg.AITimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("ai gateway")
	}

	var audit domain.InvocationLog = mysqlrepo.Nop{}
	if cfg.MySQLDSN != "" {
		db, err := mysqlrepo.Open(cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open mysql")
		}
		defer db.Close()
		repo := mysqlrepo.New(db)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migrate ai_invocations")
		}
		audit = repo
	}

	log.Info().
		Str("mode", gw.Mode()).
		Int("workers", cfg.ReportWorkers).
		Strs("ops", cfg.ReportOps).
		Msg("report run starting")

	ai := app.NewAssistant(memory.NewSeeded(), gw, audit)
	written, err := run(ctx, ai, cfg.ReportOps, cfg.ReportDir, cfg.ReportWorkers)
	if err != nil {
		log.Fatal().Err(err).Msg("report run aborted")
	}
	log.Info().Int("written", written).Msg("report run completed")
}

// run fans ops out over at most workers goroutines and writes each answer to
// dir/<op>.json. A failing operation is logged and skipped; the returned
// count covers the files actually written.
func run(ctx context.Context, ai *app.Assistant, ops []string, dir string, workers int) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	sem := semaphore.NewWeighted(int64(max(workers, 1)))
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		written int
	)

	for _, op := range ops {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return written, err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			raw, err := ai.Run(ctx, op, app.Args{})
			if err != nil {
				log.Warn().Str("op", op).Err(err).Msg("report failed")
				return
			}
			path := filepath.Join(dir, op+".json")
			if err := os.WriteFile(path, raw, 0o644); err != nil {
				log.Warn().Str("op", op).Err(err).Msg("write report failed")
				return
			}
			mu.Lock()
			written++
			mu.Unlock()
			log.Info().Str("op", op).Str("file", path).Msg("report ok")
		}()
	}

	wg.Wait()
	return written, nil
}
