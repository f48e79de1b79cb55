package progression

import (
	"sort"
	"time"

	courseModels "seb/models/course"
)

// ModuleTree is one module of a course together with its chapters, as
// loaded from storage. Order is not assumed; ComputeSequencing sorts.
type ModuleTree struct {
	Module   courseModels.Module
	Chapters []courseModels.Chapter
}

// ChapterView is a chapter enriched with the viewer's progress
type ChapterView struct {
	Chapter          courseModels.Chapter
	IsCompleted      bool
	CompletedAt      *time.Time
	WatchTimeSeconds int
}

// ModuleView is a module enriched with unlock/completion state
type ModuleView struct {
	Module            courseModels.Module
	Chapters          []ChapterView
	IsUnlocked        bool
	IsCompleted       bool
	CompletedChapters int
	TotalChapters     int
}

// Position points at a chapter by module index and chapter index within
// that module, plus its index in the flattened order.
type Position struct {
	ModuleIndex  int
	ChapterIndex int
	FlatIndex    int
}

// Sequencing is the derived view of a course for one viewer. FlatOrder is
// the single linear chapter sequence used for prev/next navigation; Current
// is nil iff the course has no chapters.
type Sequencing struct {
	Modules   []ModuleView
	FlatOrder []uint
	Current   *Position
}

// ComputeSequencing derives module unlock/completion state, the flattened
// chapter order and the current position from a course tree and the
// viewer's completion facts. It is pure: no storage access, safe for
// concurrent use.
//
// Module 0 is always unlocked; module i is unlocked iff every chapter of
// every earlier module is completed. A module with no chapters never counts
// as completed but does not block its successors. The current position is
// the first incomplete chapter in an unlocked module, or the last chapter
// when everything is completed ("review" mode).
func ComputeSequencing(tree []ModuleTree, completions map[uint]courseModels.ChapterProgress) (*Sequencing, error) {
	modules, err := sortTree(tree)
	if err != nil {
		return nil, err
	}

	seq := &Sequencing{
		Modules:   make([]ModuleView, 0, len(modules)),
		FlatOrder: []uint{},
	}

	prefixComplete := true // all chapters of all earlier modules completed

	for _, mt := range modules {
		view := ModuleView{
			Module:        mt.Module,
			Chapters:      make([]ChapterView, 0, len(mt.Chapters)),
			IsUnlocked:    prefixComplete,
			TotalChapters: len(mt.Chapters),
		}

		allDone := true
		for _, ch := range mt.Chapters {
			cv := ChapterView{Chapter: ch}
			if p, ok := completions[ch.ID]; ok {
				cv.IsCompleted = p.IsCompleted
				cv.CompletedAt = p.CompletedAt
				cv.WatchTimeSeconds = p.WatchTimeSeconds
			}
			if cv.IsCompleted {
				view.CompletedChapters++
			} else {
				allDone = false
			}
			view.Chapters = append(view.Chapters, cv)
			seq.FlatOrder = append(seq.FlatOrder, ch.ID)
		}

		// An empty module is vacuously complete for gating but is never
		// itself reported as completed.
		view.IsCompleted = len(mt.Chapters) > 0 && allDone
		prefixComplete = prefixComplete && allDone

		seq.Modules = append(seq.Modules, view)
	}

	seq.Current = currentPosition(seq.Modules)
	return seq, nil
}

// currentPosition walks the flattened sequence and returns the first
// incomplete chapter in an unlocked module, the last chapter when all are
// completed, or nil for an empty course.
func currentPosition(modules []ModuleView) *Position {
	flatIndex := 0
	var last *Position
	for mi, m := range modules {
		for ci := range m.Chapters {
			if m.IsUnlocked && !m.Chapters[ci].IsCompleted {
				return &Position{ModuleIndex: mi, ChapterIndex: ci, FlatIndex: flatIndex}
			}
			last = &Position{ModuleIndex: mi, ChapterIndex: ci, FlatIndex: flatIndex}
			flatIndex++
		}
	}
	return last
}

// sortTree establishes the canonical iteration order: modules by order
// index, chapters by order index within each module. Duplicate order keys
// are a data-integrity error, never silently re-sorted.
func sortTree(tree []ModuleTree) ([]ModuleTree, error) {
	modules := make([]ModuleTree, len(tree))
	copy(modules, tree)

	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Module.OrderIndex < modules[j].Module.OrderIndex
	})
	for i := 1; i < len(modules); i++ {
		if modules[i].Module.OrderIndex == modules[i-1].Module.OrderIndex {
			return nil, &DataIntegrityError{
				Entity:     "module",
				OwnerID:    modules[i].Module.CourseID,
				OrderIndex: modules[i].Module.OrderIndex,
			}
		}
	}

	for mi := range modules {
		chapters := make([]courseModels.Chapter, len(modules[mi].Chapters))
		copy(chapters, modules[mi].Chapters)
		sort.Slice(chapters, func(i, j int) bool {
			return chapters[i].OrderIndex < chapters[j].OrderIndex
		})
		for i := 1; i < len(chapters); i++ {
			if chapters[i].OrderIndex == chapters[i-1].OrderIndex {
				return nil, &DataIntegrityError{
					Entity:     "chapter",
					OwnerID:    modules[mi].Module.ID,
					OrderIndex: chapters[i].OrderIndex,
				}
			}
		}
		modules[mi].Chapters = chapters
	}

	return modules, nil
}
