package datasync

import (
	"fmt"
	"strings"
)

// Fallback values used when synced records come in with missing fields.
// They match what the mobile app writes, so synced and locally logged
// entries stay consistent.
const (
	DefaultRoutineName  = "Rutina"
	DefaultMuscleGroup  = "SIN GRUPO"
	DefaultExerciseName = "Ejercicio"
	DefaultDownloadName = "Entreno"

	unknownDayKey = "unknown"
)

// LogEntry is one completed set, the unit of the local workout log.
// Dates are kept as ISO-8601 strings, exactly as the logging UI stores
// them, so the engine never mangles a record it merely moves around.
type LogEntry struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	RoutineID   *string `json:"routineId"`
	RoutineName string  `json:"routineName"`
	Week        int     `json:"week"`
	Muscle      string  `json:"muscle"`
	Exercise    string  `json:"exercise"`
	SetIndex    int     `json:"setIndex"`
	Reps        int     `json:"reps"`
	Load        float64 `json:"load"`
	Volume      float64 `json:"volume"`
	E1RM        float64 `json:"e1RM"`
	FromCloud   bool    `json:"fromCloud"`
}

// RecalcDerived refreshes the volume and estimated 1RM from reps and load.
func (e *LogEntry) RecalcDerived() {
	e.Volume = float64(e.Reps) * e.Load
	e.E1RM = EstimateOneRepMax(e.Reps, e.Load)
}

// EstimateOneRepMax returns the Epley estimate, or 0 when either value is missing.
func EstimateOneRepMax(reps int, load float64) float64 {
	if reps <= 0 || load <= 0 {
		return 0
	}
	return load * (1 + float64(reps)/30)
}

// CloudEntryID derives the local id for a downloaded set. The same remote
// set always maps to the same id, which is what makes re-downloads
// idempotent. The set index is the 0-based position within the exercise.
func CloudEntryID(workoutID, exerciseKey string, setIndex int) string {
	return fmt.Sprintf("cloud-%s-%s-%d", workoutID, exerciseKey, setIndex)
}

// dayKey buckets an ISO-8601 date by calendar day. Entries with no date
// land in a shared "unknown" bucket instead of failing the sync.
func dayKey(date string) string {
	if date == "" {
		return unknownDayKey
	}
	if i := strings.Index(date, "T"); i > 0 {
		return date[:i]
	}
	return date
}
