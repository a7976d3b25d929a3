package datasync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/entrenoapp/datasync/internal/datasync"
	"github.com/entrenoapp/datasync/internal/telemetry/metrics"
	"github.com/entrenoapp/datasync/internal/workoutapi"
)

func newTestEntry(id, date, routine, muscle, exercise string, setIndex, reps int, load float64) datasync.LogEntry {
	entry := datasync.LogEntry{
		ID:          id,
		Date:        date,
		RoutineName: routine,
		Week:        1,
		Muscle:      muscle,
		Exercise:    exercise,
		SetIndex:    setIndex,
		Reps:        reps,
		Load:        load,
	}
	entry.RecalcDerived()
	return entry
}

func TestService_SyncLocalToCloud(t *testing.T) {
	ctrl := gomock.NewController(t)
	logMock := NewMocklogRepo(ctrl)
	apiMock := NewMockworkoutAPI(ctrl)
	service := datasync.NewService(logMock, apiMock, metrics.NewTestManager(), 0)

	ctx := context.Background()
	entries := []datasync.LogEntry{
		newTestEntry("e1", "2025-03-10T09:00:00Z", "Fuerza A", "Pecho", "Bench Press", 1, 8, 60),
		newTestEntry("e2", "2025-03-10T09:05:00Z", "Fuerza A", "Pecho", "Bench Press", 2, 8, 60),
		newTestEntry("e3", "2025-03-10T09:10:00Z", "Fuerza A", "Pecho", "Bench Press", 3, 6, 65),
		newTestEntry("e4", "2025-03-10T09:20:00Z", "Fuerza A", "Pierna", "Squat", 1, 5, 100),
		newTestEntry("e5", "2025-03-11T09:00:00Z", "Fuerza A", "Espalda", "Deadlift", 1, 5, 120),
	}

	logMock.EXPECT().
		Entries(gomock.Any()).
		Return(entries, nil).Times(1)

	var uploaded []workoutapi.Workout
	apiMock.EXPECT().
		CreateWorkout(gomock.Any(), "test-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, workout workoutapi.Workout) error {
			uploaded = append(uploaded, workout)
			return nil
		}).Times(2)

	result := service.SyncLocalToCloud(ctx, "test-token")
	assert.True(t, result.Success)
	assert.Equal(t, datasync.DirectionUpload, result.Direction)
	assert.Equal(t, 5, result.ItemsSynced)
	assert.Empty(t, result.Error)

	require.Len(t, uploaded, 2)

	day1 := uploaded[0]
	assert.Equal(t, "Fuerza A", day1.RoutineNameSnapshot)
	assert.Equal(t, "2025-03-10T09:00:00Z", day1.Date)
	assert.Equal(t, 1, day1.DayIndex)
	assert.Equal(t, "Día sincronizado", day1.DayLabel)
	assert.Equal(t, "completed", day1.Status)
	assert.True(t, day1.FromLocalSync)
	assert.Equal(t, 4, day1.TotalSets)
	// 8x60 + 8x60 + 6x65 + 5x100
	assert.InDelta(t, 1850, day1.TotalVolume, 0.001)

	require.Len(t, day1.Exercises, 2)
	benchPress := day1.Exercises[0]
	assert.Equal(t, "Bench Press", benchPress.ExerciseName)
	assert.Equal(t, "Pecho", benchPress.MuscleGroup)
	assert.Equal(t, 0, benchPress.OrderIndex)
	require.Len(t, benchPress.Sets, 3)
	assert.Equal(t, 1, benchPress.Sets[0].SetNumber)
	assert.Equal(t, 8, benchPress.Sets[0].ActualReps)
	assert.Equal(t, 60.0, benchPress.Sets[0].Weight)
	assert.Equal(t, 3, benchPress.Sets[2].SetNumber)
	assert.Equal(t, 65.0, benchPress.Sets[2].Weight)

	squat := day1.Exercises[1]
	assert.Equal(t, "Squat", squat.ExerciseName)
	assert.Equal(t, 1, squat.OrderIndex)
	require.Len(t, squat.Sets, 1)

	day2 := uploaded[1]
	assert.Equal(t, "2025-03-11T09:00:00Z", day2.Date)
	assert.Equal(t, 1, day2.TotalSets)
	require.Len(t, day2.Exercises, 1)
	assert.Equal(t, "Deadlift", day2.Exercises[0].ExerciseName)
}

func TestService_SyncLocalToCloud_Fallbacks(t *testing.T) {
	ctrl := gomock.NewController(t)
	logMock := NewMocklogRepo(ctrl)
	apiMock := NewMockworkoutAPI(ctrl)
	service := datasync.NewService(logMock, apiMock, metrics.NewTestManager(), 0)

	// no routine name, no date, no week, no explicit set index
	entry := datasync.LogEntry{
		ID:       "e1",
		Muscle:   "Pecho",
		Exercise: "Bench Press",
		Reps:     10,
		Load:     40,
	}
	entry.RecalcDerived()

	logMock.EXPECT().
		Entries(gomock.Any()).
		Return([]datasync.LogEntry{entry}, nil).Times(1)

	var uploaded workoutapi.Workout
	apiMock.EXPECT().
		CreateWorkout(gomock.Any(), "test-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, workout workoutapi.Workout) error {
			uploaded = workout
			return nil
		}).Times(1)

	result := service.SyncLocalToCloud(context.Background(), "test-token")
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ItemsSynced)

	assert.Equal(t, "Rutina", uploaded.RoutineNameSnapshot)
	assert.Equal(t, 1, uploaded.Week)
	assert.NotEmpty(t, uploaded.Date)
	require.Len(t, uploaded.Exercises, 1)
	require.Len(t, uploaded.Exercises[0].Sets, 1)
	assert.Equal(t, 1, uploaded.Exercises[0].Sets[0].SetNumber)
}

func TestService_SyncLocalToCloud_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	logMock := NewMocklogRepo(ctrl)
	apiMock := NewMockworkoutAPI(ctrl)
	service := datasync.NewService(logMock, apiMock, metrics.NewTestManager(), 0)

	entries := []datasync.LogEntry{
		newTestEntry("e1", "2025-03-10T09:00:00Z", "Fuerza A", "Pecho", "Bench Press", 1, 8, 60),
		newTestEntry("e2", "2025-03-11T09:00:00Z", "Fuerza A", "Pierna", "Squat", 1, 5, 100),
		newTestEntry("e3", "2025-03-11T09:10:00Z", "Fuerza A", "Pierna", "Squat", 2, 5, 100),
	}

	logMock.EXPECT().
		Entries(gomock.Any()).
		Return(entries, nil).Times(1)

	failed := false
	apiMock.EXPECT().
		CreateWorkout(gomock.Any(), "test-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ workoutapi.Workout) error {
			if !failed {
				failed = true
				return errors.New("remote store unavailable")
			}
			return nil
		}).Times(2)

	result := service.SyncLocalToCloud(context.Background(), "test-token")

	// one session failing does not abort the migration
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ItemsSynced)
}

func TestService_SyncLocalToCloud_EmptyLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	logMock := NewMocklogRepo(ctrl)
	apiMock := NewMockworkoutAPI(ctrl)
	service := datasync.NewService(logMock, apiMock, metrics.NewTestManager(), 0)

	logMock.EXPECT().
		Entries(gomock.Any()).
		Return([]datasync.LogEntry{}, nil).Times(1)

	result := service.SyncLocalToCloud(context.Background(), "test-token")
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ItemsSynced)
}

func TestService_SyncLocalToCloud_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	logMock := NewMocklogRepo(ctrl)
	apiMock := NewMockworkoutAPI(ctrl)
	service := datasync.NewService(logMock, apiMock, metrics.NewTestManager(), 0)

	logMock.EXPECT().
		Entries(gomock.Any()).
		Return(nil, errors.New("storage corrupted")).Times(1)

	result := service.SyncLocalToCloud(context.Background(), "test-token")
	assert.False(t, result.Success)
	assert.Equal(t, datasync.DirectionUpload, result.Direction)
	assert.Equal(t, "storage corrupted", result.Error)
	assert.Equal(t, 0, result.ItemsSynced)
}
