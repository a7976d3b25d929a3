package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/entrenoapp/datasync/internal/datasync"
	"github.com/entrenoapp/datasync/internal/logstore"
	"github.com/entrenoapp/datasync/internal/routines"
	"github.com/entrenoapp/datasync/internal/telemetry/metrics"
	"github.com/entrenoapp/datasync/internal/workoutapi"

	"github.com/prometheus/client_golang/prometheus"
)

// one-shot plan transition sync cmd

func main() {
	apiBaseURL := flag.String("api", "", "workout api base url")
	prevTier := flag.String("prev", "", "previous plan tier (e.g. FREEUSER)")
	newTier := flag.String("new", "", "new plan tier (e.g. PREMIUM)")
	token := flag.String("token", "", "bearer token for the workout api")
	storageBackend := flag.String("storage", "sqlite", "slot storage backend [sqlite | dir]")
	storagePath := flag.String("storage-path", "./datasync.db", "slot storage path (db file or directory)")
	listLimit := flag.Int("list-limit", 1000, "max workouts to fetch per download")
	syncRoutines := flag.Bool("routines", false, "also refresh routines from the server")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")

	flag.Parse()

	if *apiBaseURL == "" {
		log.Fatalln("workout api base url not specified")
	}
	if *newTier == "" {
		log.Fatalln("new plan tier not specified")
	}
	if *token == "" {
		*token = os.Getenv("ENTRENO_API_TOKEN")
	}
	if *token == "" {
		log.Fatalln("api token not specified (use -token or ENTRENO_API_TOKEN)")
	}

	slotKV, err := newSlotKV(*storageBackend, *storagePath)
	if err != nil {
		log.Fatalf("open slot storage: %s", err)
	}
	defer func() {
		if closer, ok := slotKV.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Printf("close slot storage: %s", err)
			}
		}
	}()

	apiClient := workoutapi.NewClient(*apiBaseURL, nil)
	syncService := datasync.NewService(
		logstore.NewLog(slotKV),
		apiClient,
		metrics.NewManager("datasync", "synctool", prometheus.NewRegistry()),
		*listLimit,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	log.Printf("plan transition: [%s] -> [%s]", *prevTier, *newTier)

	result := syncService.HandlePlanTransition(
		ctx,
		datasync.ParseTier(*prevTier),
		datasync.ParseTier(*newTier),
		*token,
		func(direction datasync.Direction, progress int) {
			log.Printf(" > %s: %d%%", direction, progress)
		},
	)
	if result == nil {
		log.Println("no sync needed for this transition")
	} else {
		resultJson, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("marshal result: %s", err)
		}
		log.Printf("sync done:\n%s", resultJson)
	}

	if *syncRoutines {
		report, err := routines.NewSyncer(slotKV, apiClient).SyncFromServer(ctx, *token)
		if err != nil {
			log.Fatalf("routines sync: %s", err)
		}
		log.Printf("routines: %d added, %d updated, %d removed, %d total",
			report.Added, report.Updated, report.Removed, report.Total)
	}
}

func newSlotKV(backend, path string) (logstore.KV, error) {
	if backend == "dir" {
		return logstore.NewFileKV(path)
	}
	return logstore.NewSqliteKV(path)
}
