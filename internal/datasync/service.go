package datasync

import (
	"context"
	"time"

	"github.com/entrenoapp/datasync/internal/telemetry/metrics"
	"github.com/entrenoapp/datasync/internal/telemetry/tracing"
	"github.com/entrenoapp/datasync/internal/workoutapi"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=service.go -destination=service_mocks_test.go -package=datasync_test

type logRepo interface {
	Entries(ctx context.Context) ([]LogEntry, error)
	Save(ctx context.Context, entries []LogEntry) error
}

type workoutAPI interface {
	CreateWorkout(ctx context.Context, token string, workout workoutapi.Workout) error
	ListWorkouts(ctx context.Context, token string, limit int) ([]workoutapi.StoredWorkout, error)
}

// Result is the outcome of one sync run. A failed run is still a Result,
// not a Go error: the caller always gets a definitive outcome to render.
type Result struct {
	Success     bool      `json:"success"`
	Direction   Direction `json:"direction"`
	ItemsSynced int       `json:"itemsSynced"`
	Error       string    `json:"error,omitempty"`
}

// ProgressFunc is notified when a transfer starts (0) and finishes (100).
type ProgressFunc func(direction Direction, progress int)

// Service moves the workout history between the local log and the remote
// workout store when the user's subscription tier changes.
type Service struct {
	log            logRepo
	api            workoutAPI
	metricsManager *metrics.Manager
	listLimit      int
}

func NewService(logRepo logRepo, api workoutAPI, metricsManager *metrics.Manager, listLimit int) *Service {
	if listLimit <= 0 {
		listLimit = 1000
	}
	return &Service{
		log:            logRepo,
		api:            api,
		metricsManager: metricsManager,
		listLimit:      listLimit,
	}
}

// HandlePlanTransition resolves the sync direction for a tier change and
// runs the matching transfer. It returns nil when the transition needs no
// sync; otherwise it always returns a Result, never panics or errors out.
// It makes a single best-effort attempt, retrying is up to the caller.
func (s *Service) HandlePlanTransition(
	ctx context.Context,
	previous, next Tier,
	token string,
	onProgress ProgressFunc,
) *Result {
	ctx, span := tracing.GlobalTracer.Start(ctx, "datasync.planTransition")
	defer span.End()

	direction, ok := ResolveDirection(previous, next)
	if !ok {
		log.Debugf("plan transition %s -> %s: no tier class change, skipping sync", previous, next)
		return nil
	}

	span.SetAttributes(attribute.String("sync.direction", string(direction)))
	log.Infof("plan transition %s -> %s: starting %s", previous, next, direction)

	if onProgress != nil {
		onProgress(direction, 0)
	}

	s.metricsManager.GaugeSyncsInProgress.Inc()
	startedAt := time.Now()

	var result Result
	if direction == DirectionUpload {
		result = s.SyncLocalToCloud(ctx, token)
	} else {
		result = s.SyncCloudToLocal(ctx, token)
	}

	s.metricsManager.HistSyncDuration.Observe(time.Since(startedAt).Seconds())
	s.metricsManager.GaugeSyncsInProgress.Dec()

	outcome := "success"
	if !result.Success {
		outcome = "failure"
	}
	s.metricsManager.CounterSyncRuns.WithLabelValues(string(direction), outcome).Inc()
	s.metricsManager.CounterItemsSynced.WithLabelValues(string(direction)).Add(float64(result.ItemsSynced))

	if onProgress != nil {
		onProgress(direction, 100)
	}

	return &result
}
