package progression

import (
	"testing"

	courseModels "seb/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestion(id uint, evaluationID uint, order int, correct int) courseModels.EvaluationQuestion {
	q := courseModels.EvaluationQuestion{
		EvaluationID:  evaluationID,
		CorrectAnswer: correct,
		OrderIndex:    order,
	}
	q.ID = id
	return q
}

func answers(values ...int) []*int {
	out := make([]*int, len(values))
	for i := range values {
		v := values[i]
		out[i] = &v
	}
	return out
}

func TestScoreSubmission(t *testing.T) {
	eval := courseModels.Evaluation{PassingScore: 70}
	questions := []courseModels.EvaluationQuestion{
		testQuestion(1, 1, 0, 0),
		testQuestion(2, 1, 1, 1),
		testQuestion(3, 1, 2, 2),
	}

	result, err := ScoreSubmission(eval, questions, answers(0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 70, result.PassingScore)

	result, err = ScoreSubmission(eval, questions, answers(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.CorrectCount)
}

func TestScoreSubmissionDeterministic(t *testing.T) {
	eval := courseModels.Evaluation{PassingScore: 50}
	// Questions arrive unsorted; answers map positionally to canonical order
	questions := []courseModels.EvaluationQuestion{
		testQuestion(2, 1, 1, 1),
		testQuestion(1, 1, 0, 0),
	}

	for i := 0; i < 5; i++ {
		result, err := ScoreSubmission(eval, questions, answers(0, 1))
		require.NoError(t, err)
		assert.Equal(t, 100, result.Score)
	}
}

func TestScoreSubmissionRejectsPartial(t *testing.T) {
	eval := courseModels.Evaluation{PassingScore: 70}
	questions := []courseModels.EvaluationQuestion{
		testQuestion(1, 1, 0, 0),
		testQuestion(2, 1, 1, 1),
	}

	var invalid *InvalidSubmissionError

	// Wrong length
	_, err := ScoreSubmission(eval, questions, answers(0))
	require.ErrorAs(t, err, &invalid)

	// Missing (null) answer is rejected, never scored partially
	_, err = ScoreSubmission(eval, questions, []*int{nil, answers(1)[0]})
	require.ErrorAs(t, err, &invalid)

	// No questions at all
	_, err = ScoreSubmission(eval, nil, nil)
	require.ErrorAs(t, err, &invalid)
}

func TestScoreSubmissionRejectsDuplicateOrderKeys(t *testing.T) {
	eval := courseModels.Evaluation{PassingScore: 70}
	questions := []courseModels.EvaluationQuestion{
		testQuestion(1, 1, 0, 0),
		testQuestion(2, 1, 0, 1),
	}

	var integrity *DataIntegrityError
	_, err := ScoreSubmission(eval, questions, answers(0, 1))
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, "question", integrity.Entity)
}

func TestScoreSubmissionBoundaryPass(t *testing.T) {
	// Score exactly at the passing score passes
	eval := courseModels.Evaluation{PassingScore: 50}
	questions := []courseModels.EvaluationQuestion{
		testQuestion(1, 1, 0, 0),
		testQuestion(2, 1, 1, 1),
	}

	result, err := ScoreSubmission(eval, questions, answers(0, 0))
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.True(t, result.Passed)
}
