package progression

import (
	"testing"

	courseModels "seb/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive for the test
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Chapter{},
		&courseModels.ChapterProgress{},
		&courseModels.Enrollment{},
		&courseModels.Evaluation{},
		&courseModels.EvaluationQuestion{},
		&courseModels.EvaluationAttempt{},
	))
	return db
}

// seedCourse creates one published course with a single module and two
// chapters, returning the chapter ids
func seedCourse(t *testing.T, db *gorm.DB) (uint, []uint) {
	t.Helper()

	crs := courseModels.Course{Title: "Límites con amor", IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)

	mod := courseModels.Module{CourseID: crs.ID, Title: "Fundamentos", OrderIndex: 0}
	require.NoError(t, db.Create(&mod).Error)

	ch1 := courseModels.Chapter{CourseID: crs.ID, ModuleID: mod.ID, Title: "Introducción", OrderIndex: 0}
	ch2 := courseModels.Chapter{CourseID: crs.ID, ModuleID: mod.ID, Title: "Práctica", OrderIndex: 1}
	require.NoError(t, db.Create(&ch1).Error)
	require.NoError(t, db.Create(&ch2).Error)

	return crs.ID, []uint{ch1.ID, ch2.ID}
}

func intPtr(v int) *int { return &v }

func TestRecordChapterProgressAutoEnrolls(t *testing.T) {
	db := setupTestDB(t)
	courseID, chapters := seedCourse(t, db)
	recorder := NewRecorder(db)

	err := recorder.RecordChapterProgress(7, chapters[0], ProgressUpdate{WatchTimeSeconds: intPtr(42)})
	require.NoError(t, err)

	// First interaction created an active enrollment
	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("parent_id = ? AND course_id = ?", 7, courseID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Equal(t, 0, enrollment.ProgressPercent)

	var progress courseModels.ChapterProgress
	require.NoError(t, db.Where("parent_id = ? AND chapter_id = ?", 7, chapters[0]).First(&progress).Error)
	assert.Equal(t, 42, progress.WatchTimeSeconds)
	assert.False(t, progress.IsCompleted)

	// A second write must not create a duplicate enrollment or progress row
	require.NoError(t, recorder.RecordChapterProgress(7, chapters[0], ProgressUpdate{WatchTimeSeconds: intPtr(90)}))

	var enrollmentCount, progressCount int64
	db.Model(&courseModels.Enrollment{}).Where("parent_id = ?", 7).Count(&enrollmentCount)
	db.Model(&courseModels.ChapterProgress{}).Where("parent_id = ?", 7).Count(&progressCount)
	assert.EqualValues(t, 1, enrollmentCount)
	assert.EqualValues(t, 1, progressCount)

	require.NoError(t, db.Where("parent_id = ? AND chapter_id = ?", 7, chapters[0]).First(&progress).Error)
	assert.Equal(t, 90, progress.WatchTimeSeconds)
}

func TestRecordChapterProgressMonotonicCompletion(t *testing.T) {
	db := setupTestDB(t)
	_, chapters := seedCourse(t, db)
	recorder := NewRecorder(db)

	require.NoError(t, recorder.RecordChapterProgress(7, chapters[0], ProgressUpdate{MarkCompleted: true}))

	var progress courseModels.ChapterProgress
	require.NoError(t, db.Where("parent_id = ? AND chapter_id = ?", 7, chapters[0]).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
	require.NotNil(t, progress.CompletedAt)
	completedAt := *progress.CompletedAt

	// A later watch-time write never resets the completion
	require.NoError(t, recorder.RecordChapterProgress(7, chapters[0], ProgressUpdate{WatchTimeSeconds: intPtr(300)}))

	require.NoError(t, db.Where("parent_id = ? AND chapter_id = ?", 7, chapters[0]).First(&progress).Error)
	assert.True(t, progress.IsCompleted)
	require.NotNil(t, progress.CompletedAt)
	assert.WithinDuration(t, completedAt, *progress.CompletedAt, 0)
	assert.Equal(t, 300, progress.WatchTimeSeconds)
}

func TestRecordChapterProgressNotFound(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db)

	err := recorder.RecordChapterProgress(7, 999, ProgressUpdate{MarkCompleted: true})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "chapter", notFound.Resource)

	// Nothing was half-applied
	var enrollmentCount int64
	db.Model(&courseModels.Enrollment{}).Count(&enrollmentCount)
	assert.EqualValues(t, 0, enrollmentCount)
}

func TestSyncEnrollmentCompletesAtFullProgress(t *testing.T) {
	db := setupTestDB(t)
	courseID, chapters := seedCourse(t, db)
	recorder := NewRecorder(db)

	require.NoError(t, recorder.RecordChapterProgress(7, chapters[0], ProgressUpdate{MarkCompleted: true}))
	percent, err := recorder.SyncEnrollment(7, courseID)
	require.NoError(t, err)
	assert.Equal(t, 50, percent)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("parent_id = ? AND course_id = ?", 7, courseID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentActive, enrollment.Status)
	assert.Equal(t, 50, enrollment.ProgressPercent)

	require.NoError(t, recorder.RecordChapterProgress(7, chapters[1], ProgressUpdate{MarkCompleted: true}))
	percent, err = recorder.SyncEnrollment(7, courseID)
	require.NoError(t, err)
	assert.Equal(t, 100, percent)

	require.NoError(t, db.Where("parent_id = ? AND course_id = ?", 7, courseID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
	assert.NotNil(t, enrollment.CompletedAt)
}

func seedEvaluation(t *testing.T, db *gorm.DB, courseID uint) uint {
	t.Helper()

	eval := courseModels.Evaluation{CourseID: courseID, Title: "Evaluación final", PassingScore: 70}
	require.NoError(t, db.Create(&eval).Error)

	for i, correct := range []int{0, 1, 2} {
		q := courseModels.EvaluationQuestion{
			EvaluationID:  eval.ID,
			Question:      "Pregunta",
			Options:       []byte(`["a","b","c"]`),
			CorrectAnswer: correct,
			OrderIndex:    i,
		}
		require.NoError(t, db.Create(&q).Error)
	}
	return eval.ID
}

func TestRecordEvaluationAttemptAppendOnly(t *testing.T) {
	db := setupTestDB(t)
	courseID, _ := seedCourse(t, db)
	evalID := seedEvaluation(t, db, courseID)
	recorder := NewRecorder(db)

	result, err := recorder.RecordEvaluationAttempt(7, courseID, answers(0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)

	result, err = recorder.RecordEvaluationAttempt(7, courseID, answers(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Passed)

	// Both attempts are retained independently
	var attempts []courseModels.EvaluationAttempt
	require.NoError(t, db.Where("parent_id = ? AND evaluation_id = ?", 7, evalID).
		Order("attempted_at asc").Find(&attempts).Error)
	require.Len(t, attempts, 2)
	assert.Equal(t, 100, attempts[0].Score)
	assert.Equal(t, 33, attempts[1].Score)
	assert.JSONEq(t, `[0,0,0]`, string(attempts[1].Answers))
}

func TestRecordEvaluationAttemptErrors(t *testing.T) {
	db := setupTestDB(t)
	courseID, _ := seedCourse(t, db)
	recorder := NewRecorder(db)

	// No evaluation for this course
	var notFound *NotFoundError
	_, err := recorder.RecordEvaluationAttempt(7, courseID, answers(0))
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "evaluation", notFound.Resource)

	// Malformed submission leaves no attempt row behind
	seedEvaluation(t, db, courseID)
	var invalid *InvalidSubmissionError
	_, err = recorder.RecordEvaluationAttempt(7, courseID, answers(0))
	require.ErrorAs(t, err, &invalid)

	var attemptCount int64
	db.Model(&courseModels.EvaluationAttempt{}).Count(&attemptCount)
	assert.EqualValues(t, 0, attemptCount)
}
