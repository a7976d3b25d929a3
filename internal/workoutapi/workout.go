package workoutapi

// Workout is one normalized training session, as the remote store keeps it.
type Workout struct {
	RoutineID           *string    `json:"routineId"`
	RoutineNameSnapshot string     `json:"routineNameSnapshot"`
	DayIndex            int        `json:"dayIndex"`
	DayLabel            string     `json:"dayLabel"`
	Week                int        `json:"week"`
	Date                string     `json:"date"`
	Status              string     `json:"status"`
	Exercises           []Exercise `json:"exercises"`
	TotalSets           int        `json:"totalSets"`
	TotalVolume         float64    `json:"totalVolume"`
	DurationMinutes     int        `json:"durationMinutes"`
	FromLocalSync       bool       `json:"fromLocalSync"`
}

type Exercise struct {
	ExerciseID   *string `json:"exerciseId"`
	ExerciseName string  `json:"exerciseName"`
	MuscleGroup  string  `json:"muscleGroup"`
	OrderIndex   int     `json:"orderIndex"`
	Sets         []Set   `json:"sets"`
}

type Set struct {
	SetNumber  int     `json:"setNumber"`
	ActualReps int     `json:"actualReps"`
	Weight     float64 `json:"weight"`
	Status     string  `json:"status"`
}

// StoredWorkout is a workout as returned by the list endpoint, carrying
// the storage identifier assigned by the remote store.
type StoredWorkout struct {
	ID string `json:"_id"`
	Workout
}
