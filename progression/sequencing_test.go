package progression

import (
	"testing"
	"time"

	courseModels "seb/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModule(id uint, courseID uint, order int) courseModels.Module {
	m := courseModels.Module{CourseID: courseID, OrderIndex: order}
	m.ID = id
	return m
}

func testChapter(id uint, moduleID uint, order int) courseModels.Chapter {
	ch := courseModels.Chapter{CourseID: 1, ModuleID: moduleID, OrderIndex: order}
	ch.ID = id
	return ch
}

func completed(ids ...uint) map[uint]courseModels.ChapterProgress {
	now := time.Now()
	m := make(map[uint]courseModels.ChapterProgress, len(ids))
	for _, id := range ids {
		m[id] = courseModels.ChapterProgress{ChapterID: id, IsCompleted: true, CompletedAt: &now}
	}
	return m
}

// twoModuleTree is the canonical fixture: module A (chapters 1, 2) then
// module B (chapter 3)
func twoModuleTree() []ModuleTree {
	return []ModuleTree{
		{Module: testModule(10, 1, 0), Chapters: []courseModels.Chapter{testChapter(1, 10, 0), testChapter(2, 10, 1)}},
		{Module: testModule(20, 1, 1), Chapters: []courseModels.Chapter{testChapter(3, 20, 0)}},
	}
}

func TestComputeSequencingWalkthrough(t *testing.T) {
	tree := twoModuleTree()

	// Nothing completed: only module A unlocked, current at its first chapter
	seq, err := ComputeSequencing(tree, nil)
	require.NoError(t, err)
	assert.True(t, seq.Modules[0].IsUnlocked)
	assert.False(t, seq.Modules[0].IsCompleted)
	assert.False(t, seq.Modules[1].IsUnlocked)
	require.NotNil(t, seq.Current)
	assert.Equal(t, 0, seq.Current.ModuleIndex)
	assert.Equal(t, 0, seq.Current.ChapterIndex)

	// First chapter done: current advances within module A
	seq, err = ComputeSequencing(tree, completed(1))
	require.NoError(t, err)
	assert.False(t, seq.Modules[1].IsUnlocked)
	assert.Equal(t, 0, seq.Current.ModuleIndex)
	assert.Equal(t, 1, seq.Current.ChapterIndex)

	// Module A done: module B unlocks, current moves into it
	seq, err = ComputeSequencing(tree, completed(1, 2))
	require.NoError(t, err)
	assert.True(t, seq.Modules[0].IsCompleted)
	assert.True(t, seq.Modules[1].IsUnlocked)
	assert.Equal(t, 1, seq.Current.ModuleIndex)
	assert.Equal(t, 0, seq.Current.ChapterIndex)

	// Everything done: current stays on the last chapter for review
	seq, err = ComputeSequencing(tree, completed(1, 2, 3))
	require.NoError(t, err)
	assert.True(t, seq.Modules[1].IsCompleted)
	assert.Equal(t, 1, seq.Current.ModuleIndex)
	assert.Equal(t, 0, seq.Current.ChapterIndex)
	assert.Equal(t, 2, seq.Current.FlatIndex)
}

func TestComputeSequencingUnlockProperty(t *testing.T) {
	// Three modules with 2, 0 and 1 chapters; exhaust every completion subset
	// and check module i is unlocked iff every chapter of modules 0..i-1 is
	// completed
	tree := []ModuleTree{
		{Module: testModule(10, 1, 0), Chapters: []courseModels.Chapter{testChapter(1, 10, 0), testChapter(2, 10, 1)}},
		{Module: testModule(20, 1, 1)},
		{Module: testModule(30, 1, 2), Chapters: []courseModels.Chapter{testChapter(3, 30, 0)}},
	}
	allChapters := []uint{1, 2, 3}
	chapterModule := map[uint]int{1: 0, 2: 0, 3: 2}

	for mask := 0; mask < 1<<len(allChapters); mask++ {
		done := []uint{}
		for bit, id := range allChapters {
			if mask&(1<<bit) != 0 {
				done = append(done, id)
			}
		}
		seq, err := ComputeSequencing(tree, completed(done...))
		require.NoError(t, err)

		doneSet := map[uint]bool{}
		for _, id := range done {
			doneSet[id] = true
		}
		for i := range tree {
			expected := true
			for id, mi := range chapterModule {
				if mi < i && !doneSet[id] {
					expected = false
				}
			}
			assert.Equalf(t, expected, seq.Modules[i].IsUnlocked,
				"mask %b module %d", mask, i)
		}

		// An empty module never reports completed
		assert.False(t, seq.Modules[1].IsCompleted)
	}
}

func TestComputeSequencingFlatOrderStable(t *testing.T) {
	tree := twoModuleTree()

	// The flattened order is independent of input slice order and of the
	// viewer's completion state
	reversed := []ModuleTree{tree[1], tree[0]}

	a, err := ComputeSequencing(tree, nil)
	require.NoError(t, err)
	b, err := ComputeSequencing(reversed, completed(1, 3))
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3}, a.FlatOrder)
	assert.Equal(t, a.FlatOrder, b.FlatOrder)
}

func TestComputeSequencingRejectsDuplicateOrderKeys(t *testing.T) {
	dupModules := []ModuleTree{
		{Module: testModule(10, 1, 0)},
		{Module: testModule(20, 1, 0)},
	}
	_, err := ComputeSequencing(dupModules, nil)
	var integrity *DataIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, "module", integrity.Entity)

	dupChapters := []ModuleTree{
		{Module: testModule(10, 1, 0), Chapters: []courseModels.Chapter{testChapter(1, 10, 3), testChapter(2, 10, 3)}},
	}
	_, err = ComputeSequencing(dupChapters, nil)
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, "chapter", integrity.Entity)
}

func TestComputeSequencingEmptyCourse(t *testing.T) {
	seq, err := ComputeSequencing(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, seq.Current)
	assert.Empty(t, seq.FlatOrder)

	// Modules without chapters: still no current position
	seq, err = ComputeSequencing([]ModuleTree{{Module: testModule(10, 1, 0)}}, nil)
	require.NoError(t, err)
	assert.Nil(t, seq.Current)
	assert.True(t, seq.Modules[0].IsUnlocked)
	assert.False(t, seq.Modules[0].IsCompleted)
}

func TestComputeProgress(t *testing.T) {
	tree := twoModuleTree()

	assert.Equal(t, 0, ComputeProgress(nil, nil))
	assert.Equal(t, 0, ComputeProgress(tree, nil))
	assert.Equal(t, 33, ComputeProgress(tree, completed(1)))
	assert.Equal(t, 67, ComputeProgress(tree, completed(1, 2)))
	assert.Equal(t, 100, ComputeProgress(tree, completed(1, 2, 3)))

	// Completion facts for unknown chapters do not count
	assert.Equal(t, 0, ComputeProgress(tree, completed(99)))
}
