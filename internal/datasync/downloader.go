package datasync

import (
	"context"
	"time"

	"github.com/entrenoapp/datasync/internal/telemetry/tracing"
	"github.com/entrenoapp/datasync/internal/workoutapi"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// SyncCloudToLocal migrates the remote workout history into the local
// log. Ids of downloaded entries are derived from the remote identity, so
// running the download again inserts nothing new. Unlike the upload there
// is no per-item failure path: any error aborts the whole run, the local
// log is written exactly once or not at all.
func (s *Service) SyncCloudToLocal(ctx context.Context, token string) Result {
	ctx, span := tracing.GlobalTracer.Start(ctx, "datasync.syncCloudToLocal")
	defer span.End()

	workouts, err := s.api.ListWorkouts(ctx, token, s.listLimit)
	if err != nil {
		log.Errorf("sync cloud to local: list workouts: %s", err)
		return Result{Success: false, Direction: DirectionDownload, Error: err.Error()}
	}

	if len(workouts) == 0 {
		log.Debug("sync cloud to local: remote store empty, nothing to download")
		return Result{Success: true, Direction: DirectionDownload, ItemsSynced: 0}
	}

	downloaded := flattenWorkouts(workouts)
	span.SetAttributes(
		attribute.Int("sync.workouts", len(workouts)),
		attribute.Int("sync.entries", len(downloaded)),
	)

	existing, err := s.log.Entries(ctx)
	if err != nil {
		log.Errorf("sync cloud to local: read local log: %s", err)
		return Result{Success: false, Direction: DirectionDownload, Error: err.Error()}
	}

	existingIDs := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		existingIDs[entry.ID] = struct{}{}
	}

	var newEntries []LogEntry
	for _, entry := range downloaded {
		if _, ok := existingIDs[entry.ID]; ok {
			continue
		}
		newEntries = append(newEntries, entry)
	}

	merged := append(existing, newEntries...)
	if err := s.log.Save(ctx, merged); err != nil {
		log.Errorf("sync cloud to local: write local log: %s", err)
		return Result{Success: false, Direction: DirectionDownload, Error: err.Error()}
	}

	log.Infof("sync cloud to local done: %d new entries saved locally", len(newEntries))
	return Result{Success: true, Direction: DirectionDownload, ItemsSynced: len(newEntries)}
}

// flattenWorkouts turns normalized workout documents back into flat log
// entries. Sets with neither reps nor load carry no information and are
// skipped.
func flattenWorkouts(workouts []workoutapi.StoredWorkout) []LogEntry {
	var entries []LogEntry

	for _, workout := range workouts {
		date := workout.Date
		if date == "" {
			date = time.Now().UTC().Format(time.RFC3339)
		}
		routineName := workout.RoutineNameSnapshot
		if routineName == "" {
			routineName = DefaultDownloadName
		}
		week := workout.Week
		if week == 0 {
			week = 1
		}

		for _, exercise := range workout.Exercises {
			muscle := exercise.MuscleGroup
			if muscle == "" {
				muscle = DefaultMuscleGroup
			}
			exerciseName := exercise.ExerciseName
			if exerciseName == "" {
				exerciseName = DefaultExerciseName
			}

			exerciseKey := exerciseName
			if exercise.ExerciseID != nil && *exercise.ExerciseID != "" {
				exerciseKey = *exercise.ExerciseID
			}

			for setIdx, set := range exercise.Sets {
				if set.ActualReps <= 0 && set.Weight <= 0 {
					continue
				}

				entry := LogEntry{
					ID:          CloudEntryID(workout.ID, exerciseKey, setIdx),
					Date:        date,
					RoutineID:   workout.RoutineID,
					RoutineName: routineName,
					Week:        week,
					Muscle:      muscle,
					Exercise:    exerciseName,
					SetIndex:    setIdx + 1,
					Reps:        set.ActualReps,
					Load:        set.Weight,
					FromCloud:   true,
				}
				entry.RecalcDerived()
				entries = append(entries, entry)
			}
		}
	}

	return entries
}
