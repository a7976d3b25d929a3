package datasync

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/entrenoapp/datasync/internal/routines"
	"github.com/entrenoapp/datasync/internal/telemetry/metrics"
	"github.com/entrenoapp/datasync/internal/telemetry/tracing"
	"github.com/entrenoapp/datasync/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=handler.go -destination=handler_mocks_test.go -package=datasync_test

type planSyncer interface {
	HandlePlanTransition(ctx context.Context, previous, next Tier, token string, onProgress ProgressFunc) *Result
}

type routineSyncer interface {
	SyncFromServer(ctx context.Context, token string) (routines.Report, error)
}

type logSizer interface {
	Size(ctx context.Context) (int, error)
}

type TransitionRequest struct {
	PreviousTier string `json:"previousTier"`
	NewTier      string `json:"newTier"`
	Token        string `json:"token"`
}

type RoutineSyncRequest struct {
	Token string `json:"token"`
}

type LogSizeResponse struct {
	Entries int `json:"entries"`
}

// Handler exposes the sync engine to the app over localhost HTTP.
type Handler struct {
	syncService    planSyncer
	routineSyncer  routineSyncer
	logRepo        logSizer
	metricsManager *metrics.Manager
}

func NewHandler(
	syncService planSyncer,
	routineSyncer routineSyncer,
	logRepo logSizer,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		syncService:    syncService,
		routineSyncer:  routineSyncer,
		logRepo:        logRepo,
		metricsManager: metricsManager,
	}
}

// HandleTransition runs a plan-transition sync. Responds 204 when the
// transition needs no sync, otherwise 200 with the sync result, which the
// app renders as-is (a failed sync is still a 200, the outcome lives in
// the result body).
func (handler *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasync.transition")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var transitionReq TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&transitionReq); err != nil {
		log.Tracef("plan transition, unmarshal json params: %s", err)
		http.Error(w, "plan transition failed", http.StatusBadRequest)
		return
	}

	if transitionReq.NewTier == "" || transitionReq.Token == "" {
		http.Error(w, "error, new tier or token empty", http.StatusBadRequest)
		return
	}

	result := handler.syncService.HandlePlanTransition(
		ctx,
		ParseTier(transitionReq.PreviousTier),
		ParseTier(transitionReq.NewTier),
		transitionReq.Token,
		nil,
	)
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal sync result: %s", err)
		http.Error(w, "failed to marshal sync result", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resultJson)
}

func (handler *Handler) HandleRoutineSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasync.routineSync")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var syncReq RoutineSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncReq); err != nil {
		log.Tracef("routine sync, unmarshal json params: %s", err)
		http.Error(w, "routine sync failed", http.StatusBadRequest)
		return
	}

	if syncReq.Token == "" {
		http.Error(w, "error, token empty", http.StatusBadRequest)
		return
	}

	report, err := handler.routineSyncer.SyncFromServer(ctx, syncReq.Token)
	if err != nil {
		log.Errorf("routine sync failed: %s", err)
		http.Error(w, "routine sync failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterRoutineSyncs.Inc()

	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Errorf("failed to marshal routine sync report: %s", err)
		http.Error(w, "failed to marshal routine sync report", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, reportJson)
}

func (handler *Handler) HandleLogSize(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasync.logSize")
	defer span.End()

	size, err := handler.logRepo.Size(ctx)
	if err != nil {
		log.Errorf("failed to read local log size: %s", err)
		http.Error(w, "failed to read local log", http.StatusInternalServerError)
		return
	}

	sizeJson, err := json.Marshal(LogSizeResponse{Entries: size})
	if err != nil {
		log.Errorf("failed to marshal log size response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sizeJson)
}
