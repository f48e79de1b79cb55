package progression

import (
	"math"
	"sort"
	"strconv"

	courseModels "seb/models/course"
)

// ScoreResult is the outcome of scoring one evaluation submission
type ScoreResult struct {
	Score          int  `json:"score"` // 0-100
	Passed         bool `json:"passed"`
	CorrectCount   int  `json:"correct_count"`
	TotalQuestions int  `json:"total_questions"`
	PassingScore   int  `json:"passing_score"`
}

// ScoreSubmission scores a full set of answers against an evaluation's
// questions. Answers map to questions positionally in canonical order
// (by order index), the same order the question-fetch endpoint serves.
// A submission with the wrong length or a missing (nil) answer is rejected
// before scoring; partial submissions are never scored.
func ScoreSubmission(eval courseModels.Evaluation, questions []courseModels.EvaluationQuestion, answers []*int) (*ScoreResult, error) {
	sorted, err := SortQuestions(questions)
	if err != nil {
		return nil, err
	}

	if len(sorted) == 0 {
		return nil, &InvalidSubmissionError{Reason: "evaluation has no questions"}
	}
	if len(answers) != len(sorted) {
		return nil, &InvalidSubmissionError{Reason: "answer count does not match question count"}
	}
	for i, a := range answers {
		if a == nil {
			return nil, &InvalidSubmissionError{Reason: "missing answer for question " + strconv.Itoa(i+1)}
		}
	}

	correctCount := 0
	for i, q := range sorted {
		if *answers[i] == q.CorrectAnswer {
			correctCount++
		}
	}

	score := int(math.Round(float64(correctCount) / float64(len(sorted)) * 100))
	return &ScoreResult{
		Score:          score,
		Passed:         score >= eval.PassingScore,
		CorrectCount:   correctCount,
		TotalQuestions: len(sorted),
		PassingScore:   eval.PassingScore,
	}, nil
}

// SortQuestions returns the canonical question order. Duplicate order keys
// are rejected so the positional answer mapping stays unambiguous.
func SortQuestions(questions []courseModels.EvaluationQuestion) ([]courseModels.EvaluationQuestion, error) {
	sorted := make([]courseModels.EvaluationQuestion, len(questions))
	copy(sorted, questions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].OrderIndex == sorted[i-1].OrderIndex {
			return nil, &DataIntegrityError{
				Entity:     "question",
				OwnerID:    sorted[i].EvaluationID,
				OrderIndex: sorted[i].OrderIndex,
			}
		}
	}
	return sorted, nil
}
