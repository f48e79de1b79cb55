package progression

import (
	courseModels "seb/models/course"

	"gorm.io/gorm"
)

// LoadCourseTree loads the modules and chapters of a course. A course
// authored without modules comes back as an empty tree; callers that want
// the flat legacy shape wrap its chapters in a single synthetic module via
// the authoring tools, not here.
func LoadCourseTree(db *gorm.DB, courseID uint) ([]ModuleTree, error) {
	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	var chapters []courseModels.Chapter
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&chapters).Error; err != nil {
		return nil, err
	}

	byModule := make(map[uint][]courseModels.Chapter, len(modules))
	for _, ch := range chapters {
		byModule[ch.ModuleID] = append(byModule[ch.ModuleID], ch)
	}

	tree := make([]ModuleTree, 0, len(modules))
	for _, m := range modules {
		tree = append(tree, ModuleTree{Module: m, Chapters: byModule[m.ID]})
	}
	return tree, nil
}

// LoadCompletions loads all chapter completion facts for a parent, keyed by
// chapter id. A chapter absent from the map is simply not completed.
func LoadCompletions(db *gorm.DB, parentID uint) (map[uint]courseModels.ChapterProgress, error) {
	var rows []courseModels.ChapterProgress
	if err := db.Where("parent_id = ?", parentID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return completionMap(rows), nil
}

// LoadCourseCompletions loads the parent's completion facts for one course
func LoadCourseCompletions(db *gorm.DB, parentID, courseID uint) (map[uint]courseModels.ChapterProgress, error) {
	var rows []courseModels.ChapterProgress
	if err := db.Where("parent_id = ? AND course_id = ?", parentID, courseID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return completionMap(rows), nil
}

func completionMap(rows []courseModels.ChapterProgress) map[uint]courseModels.ChapterProgress {
	m := make(map[uint]courseModels.ChapterProgress, len(rows))
	for _, r := range rows {
		m[r.ChapterID] = r
	}
	return m
}
