package helper

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"cyberassess_backend/internals/configs"
)

// Orphan blobs: objects that exist in the store with no evidence_files row,
// left behind when an upload died between the blob write and the metadata
// write and the compensating delete also failed. The reaper sweeps them on a
// schedule instead of letting them accumulate.

type OrphanReaperConfig struct {
	Prefix       string
	GraceMinutes int
	CronSchedule string
	DryRun       bool
}

// StartOrphanReaperCron wires the sweep into the process. Call from main
// after the DB is connected. Missing OSS env just disables the job.
func StartOrphanReaperCron(db *gorm.DB) {
	cfg := OrphanReaperConfig{
		Prefix:       configs.GetEnv("EVIDENCE_PREFIX", "evidence/"),
		GraceMinutes: configs.GetEnvInt("ORPHAN_GRACE_MINUTES", 60),
		CronSchedule: configs.GetEnv("ORPHAN_CRON_SCHEDULE", "45 3 * * *"),
		DryRun:       strings.EqualFold(os.Getenv("DRY_RUN"), "true") || os.Getenv("DRY_RUN") == "1",
	}

	svc, err := NewOSSServiceFromEnv("")
	if err != nil {
		log.Printf("[ORPHAN-REAPER] OSS env incomplete — reaper disabled: %v", err)
		return
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()
		if err := runOrphanSweep(ctx, db, svc, cfg); err != nil {
			log.Printf("[ORPHAN-REAPER] sweep error: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[ORPHAN-REAPER] add cron failed: %v", err)
	}
	log.Printf("[ORPHAN-REAPER] started schedule=%q prefix=%q grace=%dm dryRun=%v",
		cfg.CronSchedule, cfg.Prefix, cfg.GraceMinutes, cfg.DryRun)
	c.Start()
}

func runOrphanSweep(ctx context.Context, db *gorm.DB, svc *OSSService, cfg OrphanReaperConfig) error {
	// A blob may briefly exist without metadata mid-upload; the grace window
	// keeps in-flight uploads out of the sweep.
	cutoff := time.Now().Add(-time.Duration(cfg.GraceMinutes) * time.Minute)

	keys, err := svc.ListKeysOlderThan(ctx, cfg.Prefix, cutoff)
	if err != nil {
		return err
	}

	scanned, deleted := 0, 0
	for _, key := range keys {
		scanned++
		var n int64
		if err := db.WithContext(ctx).
			Table("evidence_files").
			Where("evidence_file_blob_key = ? AND evidence_file_deleted_at IS NULL", key).
			Count(&n).Error; err != nil {
			log.Printf("[ORPHAN-REAPER] metadata lookup %q: %v", key, err)
			continue
		}
		if n > 0 {
			continue
		}
		if cfg.DryRun {
			log.Printf("[ORPHAN-REAPER] DRY-RUN would delete orphan %q", key)
			continue
		}
		if err := svc.Bucket.DeleteObject(key); err != nil {
			log.Printf("[ORPHAN-REAPER] delete %q failed: %v", key, err)
			continue
		}
		deleted++
	}
	log.Printf("[ORPHAN-REAPER] scanned=%d deleted=%d under %q", scanned, deleted, cfg.Prefix)
	return nil
}
