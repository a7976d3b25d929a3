package datasync

import (
	"context"
	"time"

	"github.com/entrenoapp/datasync/internal/telemetry/tracing"
	"github.com/entrenoapp/datasync/internal/workoutapi"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// workoutGroup holds the log entries of one training session: same
// calendar day, same routine.
type workoutGroup struct {
	key     string
	entries []LogEntry
}

// SyncLocalToCloud migrates the whole local log to the remote store,
// one workout per day/routine group. A single group failing its POST does
// not abort the rest; failed groups are only missing from ItemsSynced.
func (s *Service) SyncLocalToCloud(ctx context.Context, token string) Result {
	ctx, span := tracing.GlobalTracer.Start(ctx, "datasync.syncLocalToCloud")
	defer span.End()

	entries, err := s.log.Entries(ctx)
	if err != nil {
		log.Errorf("sync local to cloud: read local log: %s", err)
		return Result{Success: false, Direction: DirectionUpload, Error: err.Error()}
	}

	if len(entries) == 0 {
		log.Debug("sync local to cloud: local log empty, nothing to upload")
		return Result{Success: true, Direction: DirectionUpload, ItemsSynced: 0}
	}

	groups := groupEntriesByWorkout(entries)
	span.SetAttributes(
		attribute.Int("sync.entries", len(entries)),
		attribute.Int("sync.groups", len(groups)),
	)

	itemsSynced := 0
	for _, group := range groups {
		workout := buildWorkout(group.entries)
		if err := s.api.CreateWorkout(ctx, token, workout); err != nil {
			// one bad session must not block the rest of the migration
			log.Warnf("sync local to cloud: upload workout %s: %s", group.key, err)
			continue
		}
		itemsSynced += len(group.entries)
		log.Debugf("sync local to cloud: workout %s uploaded (%d sets)", group.key, len(group.entries))
	}

	log.Infof("sync local to cloud done: %d/%d entries synced", itemsSynced, len(entries))
	return Result{Success: true, Direction: DirectionUpload, ItemsSynced: itemsSynced}
}

// groupEntriesByWorkout buckets entries by (calendar day, routine name),
// preserving first-appearance order so repeated runs upload in the same
// order.
func groupEntriesByWorkout(entries []LogEntry) []*workoutGroup {
	var groups []*workoutGroup
	groupIndex := map[string]*workoutGroup{}

	for _, entry := range entries {
		routineName := entry.RoutineName
		if routineName == "" {
			routineName = DefaultRoutineName
		}
		key := dayKey(entry.Date) + "|" + routineName

		group, ok := groupIndex[key]
		if !ok {
			group = &workoutGroup{key: key}
			groupIndex[key] = group
			groups = append(groups, group)
		}
		group.entries = append(group.entries, entry)
	}

	return groups
}

// buildWorkout reshapes one group of flat log entries into a workout
// document: entries sub-grouped by (muscle, exercise) become the ordered
// exercises list, each entry becomes one set.
func buildWorkout(entries []LogEntry) workoutapi.Workout {
	type exerciseGroup struct {
		muscle  string
		name    string
		entries []LogEntry
	}

	var exerciseGroups []*exerciseGroup
	exerciseIndex := map[string]*exerciseGroup{}

	for _, entry := range entries {
		key := entry.Muscle + "|" + entry.Exercise
		group, ok := exerciseIndex[key]
		if !ok {
			group = &exerciseGroup{muscle: entry.Muscle, name: entry.Exercise}
			exerciseIndex[key] = group
			exerciseGroups = append(exerciseGroups, group)
		}
		group.entries = append(group.entries, entry)
	}

	exercises := make([]workoutapi.Exercise, 0, len(exerciseGroups))
	for orderIndex, group := range exerciseGroups {
		sets := make([]workoutapi.Set, 0, len(group.entries))
		for setIdx, entry := range group.entries {
			setNumber := entry.SetIndex
			if setNumber == 0 {
				setNumber = setIdx + 1
			}
			sets = append(sets, workoutapi.Set{
				SetNumber:  setNumber,
				ActualReps: entry.Reps,
				Weight:     entry.Load,
				Status:     "inRange",
			})
		}
		exercises = append(exercises, workoutapi.Exercise{
			ExerciseID:   nil,
			ExerciseName: group.name,
			MuscleGroup:  group.muscle,
			OrderIndex:   orderIndex,
			Sets:         sets,
		})
	}

	first := entries[0]

	var totalVolume float64
	for _, entry := range entries {
		totalVolume += entry.Volume
	}

	routineName := first.RoutineName
	if routineName == "" {
		routineName = DefaultRoutineName
	}
	week := first.Week
	if week == 0 {
		week = 1
	}
	date := first.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	}

	return workoutapi.Workout{
		RoutineID:           first.RoutineID,
		RoutineNameSnapshot: routineName,
		DayIndex:            1,
		DayLabel:            "Día sincronizado",
		Week:                week,
		Date:                date,
		Status:              "completed",
		Exercises:           exercises,
		TotalSets:           len(entries),
		TotalVolume:         totalVolume,
		DurationMinutes:     0,
		FromLocalSync:       true,
	}
}
