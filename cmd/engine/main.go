package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/deadline"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/fetch"
	"jobscout-engine/internal/httpapi"
	"jobscout-engine/internal/notify"
	"jobscout-engine/internal/reconcile"
	"jobscout-engine/internal/secrets"
	"jobscout-engine/internal/source"
	"jobscout-engine/internal/source/board"
	"jobscout-engine/internal/store"
)

func main() {
	serve := flag.Bool("serve", false, "serve the read-only records API instead of running a pass")
	setWebhook := flag.String("set-webhook", "", "store the notification webhook URL in the OS keychain and exit")
	flag.Parse()

	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config invalid (%s): %v", userCfgPath, err)
	}

	if *setWebhook != "" {
		if err := secrets.SetWebhookURL(cfg.Notify.KeyringAccount, *setWebhook); err != nil {
			log.Fatalf("store webhook secret: %v", err)
		}
		log.Printf("[engine] webhook URL stored for account %q", cfg.Notify.KeyringAccount)
		return
	}

	if *serve {
		if err := runServe(cfg, dataDir); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runOnce(cfg, dataDir); err != nil {
		log.Fatal(err)
	}
}

// runOnce is one reconciliation pass: load, gather, classify, merge, retire,
// persist, export, announce.
func runOnce(cfg config.Config, dataDir string) error {
	now := time.Now()
	ctx := context.Background()

	storePath := resolvePath(dataDir, cfg.Store.Path)

	lock, err := store.AcquireRunLock(storePath)
	if errors.Is(err, store.ErrLocked) {
		log.Printf("[engine] another pass is running for %s, exiting", storePath)
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	fs := store.FileStore{Path: storePath}
	existing := fs.Load()
	log.Printf("[engine] loaded %d existing record(s)", len(existing))

	scraped := gather(ctx, cfg)
	log.Printf("[engine] gathered %d scraped record(s)", len(scraped))

	fresh := reconcile.FindNew(scraped, existing, now)
	log.Printf("[engine] %d genuinely new record(s)", len(fresh))

	merged := reconcile.Merge(existing, fresh)
	final := reconcile.RetireExpired(merged, now)

	if err := fs.Save(final); err != nil {
		return err
	}
	log.Printf("[engine] saved %d record(s) to %s", len(final), storePath)

	if cfg.Store.ArchivePath != "" {
		if err := exportArchive(ctx, resolvePath(dataDir, cfg.Store.ArchivePath), final); err != nil {
			// the JSON store is already saved; a broken export must not fail the run
			log.Printf("[engine] archive export failed: %v", err)
		}
	}

	announce(ctx, cfg, fresh, final, now)
	return nil
}

func gather(ctx context.Context, cfg config.Config) []domain.JobRecord {
	client := fetch.NewClient(cfg.Fetch.ReqPerSec, cfg.Fetch.Burst,
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)

	var fetchers []source.Fetcher
	for _, b := range cfg.Sources {
		if !b.Enabled {
			continue
		}
		fetchers = append(fetchers, board.New(b, client))
	}
	if len(fetchers) == 0 {
		log.Printf("[engine] no sources enabled")
		return nil
	}

	return source.RunAll(ctx, fetchers, time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)
}

func exportArchive(ctx context.Context, path string, records []domain.JobRecord) error {
	db, err := store.OpenArchive(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.MigrateArchive(db); err != nil {
		return err
	}
	if err := store.Snapshot(ctx, db, records); err != nil {
		return err
	}
	log.Printf("[engine] archived %d record(s) to %s", len(records), path)
	return nil
}

func announce(ctx context.Context, cfg config.Config, fresh, final []domain.JobRecord, now time.Time) {
	if !cfg.Notify.Enabled {
		return
	}

	digest := notify.BuildDigest(
		fresh,
		deadline.DueToday(final, now),
		deadline.DueTomorrow(final, now),
		cfg.CategoryFor,
		now,
	)
	if digest.Empty() {
		log.Printf("[notify] nothing to announce")
		return
	}

	url, err := secrets.GetWebhookURL(cfg.Notify.KeyringAccount)
	if err != nil {
		log.Printf("[notify] skipped: %v", err)
		return
	}

	if err := notify.NewWebhook(url).Send(ctx, digest); err != nil {
		log.Printf("[notify] send failed: %v", err)
		return
	}
	log.Printf("[notify] sent digest: %d new, %d due today, %d due tomorrow",
		len(digest.New), len(digest.DueToday), len(digest.DueTomorrow))
}

func resolvePath(dataDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}

func runServe(cfg config.Config, dataDir string) error {
	archivePath := resolvePath(dataDir, cfg.Store.ArchivePath)
	db, err := store.OpenArchive(archivePath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.MigrateArchive(db); err != nil {
		return err
	}

	addr := cfg.Serve.Addr
	if addr == "" {
		addr = "127.0.0.1:38471"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("[engine] serving records API on http://%s (archive=%s)", addr, archivePath)

	srv := &http.Server{
		Handler:           httpapi.NewMux(httpapi.Deps{DB: db, Now: time.Now}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.Serve(ln)
}
