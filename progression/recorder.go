package progression

import (
	"encoding/json"
	"errors"
	"time"

	courseModels "seb/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Recorder applies chapter-progress and evaluation-attempt writes. Each call
// is one atomic unit of work; concurrent writers for the same (parent,
// chapter) converge through the keyed upsert and can never flip a completed
// chapter back to incomplete.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// ProgressUpdate carries the optional fields of a progress write
type ProgressUpdate struct {
	WatchTimeSeconds *int
	MarkCompleted    bool
}

// RecordChapterProgress upserts the (parent, chapter) completion row and
// auto-enrolls the parent on their first interaction with the course.
// IsCompleted is monotonic: a non-completing write never touches it, so a
// racing watch-time update cannot undo a completion.
func (r *Recorder) RecordChapterProgress(parentID, chapterID uint, upd ProgressUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var chapter courseModels.Chapter
		if err := tx.Where("id = ? AND is_deleted = ?", chapterID, false).First(&chapter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "chapter", ID: chapterID}
			}
			return err
		}

		// Auto-enroll: a parent who starts watching before explicitly
		// enrolling is not blocked.
		enrollment := courseModels.Enrollment{
			ParentID: parentID,
			CourseID: chapter.CourseID,
			Status:   courseModels.EnrollmentActive,
		}
		if err := tx.Where("parent_id = ? AND course_id = ?", parentID, chapter.CourseID).
			FirstOrCreate(&enrollment).Error; err != nil {
			return err
		}

		row := courseModels.ChapterProgress{
			ParentID:  parentID,
			ChapterID: chapterID,
			CourseID:  chapter.CourseID,
		}
		assignments := map[string]interface{}{}
		if upd.WatchTimeSeconds != nil {
			row.WatchTimeSeconds = *upd.WatchTimeSeconds
			assignments["watch_time_seconds"] = *upd.WatchTimeSeconds
		}
		if upd.MarkCompleted {
			now := time.Now()
			row.IsCompleted = true
			row.CompletedAt = &now
			assignments["is_completed"] = true
			assignments["completed_at"] = &now
		}

		onConflict := clause.OnConflict{
			Columns: []clause.Column{{Name: "parent_id"}, {Name: "chapter_id"}},
		}
		if len(assignments) == 0 {
			onConflict.DoNothing = true
		} else {
			onConflict.DoUpdates = clause.Assignments(assignments)
		}

		return tx.Clauses(onConflict).Create(&row).Error
	})
}

// SyncEnrollment recomputes the course percentage from the completion facts
// and refreshes the denormalized Enrollment columns. Reaching 100% is the
// explicit policy point where the enrollment transitions to COMPLETED.
// Returns the recomputed percentage.
func (r *Recorder) SyncEnrollment(parentID, courseID uint) (int, error) {
	tree, err := LoadCourseTree(r.db, courseID)
	if err != nil {
		return 0, err
	}
	completions, err := LoadCourseCompletions(r.db, parentID, courseID)
	if err != nil {
		return 0, err
	}
	percent := ComputeProgress(tree, completions)

	var enrollment courseModels.Enrollment
	if err := r.db.Where("parent_id = ? AND course_id = ?", parentID, courseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return percent, nil
		}
		return 0, err
	}

	enrollment.ProgressPercent = percent
	if percent >= 100 && enrollment.Status != courseModels.EnrollmentCompleted {
		now := time.Now()
		enrollment.Status = courseModels.EnrollmentCompleted
		enrollment.CompletedAt = &now
	}
	if err := r.db.Save(&enrollment).Error; err != nil {
		return 0, err
	}
	return percent, nil
}

// RecordEvaluationAttempt scores a submission against the course's
// evaluation and appends a new attempt row. Attempts are append-only; it
// never mutates the enrollment.
func (r *Recorder) RecordEvaluationAttempt(parentID, courseID uint, answers []*int) (*ScoreResult, error) {
	var eval courseModels.Evaluation
	if err := r.db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "evaluation", ID: courseID}
		}
		return nil, err
	}

	var questions []courseModels.EvaluationQuestion
	if err := r.db.Where("evaluation_id = ? AND is_deleted = ?", eval.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return nil, err
	}

	result, err := ScoreSubmission(eval, questions, answers)
	if err != nil {
		return nil, err
	}

	selected := make([]int, len(answers))
	for i, a := range answers {
		selected[i] = *a
	}
	raw, err := json.Marshal(selected)
	if err != nil {
		return nil, err
	}

	attempt := courseModels.EvaluationAttempt{
		ParentID:     parentID,
		EvaluationID: eval.ID,
		Score:        result.Score,
		Passed:       result.Passed,
		Answers:      datatypes.JSON(raw),
		AttemptedAt:  time.Now(),
	}
	if err := r.db.Create(&attempt).Error; err != nil {
		return nil, err
	}

	return result, nil
}
