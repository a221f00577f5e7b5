package service

import (
	"context"
	"strings"

	"github.com/careerbridge/careerbridge-backend/internal/model"
)

// Grader scores free-text answers. Pending reports that the answer awaits
// manual review and contributes no points yet.
type Grader interface {
	Grade(ctx context.Context, q model.Question, a model.SubmittedAnswer) (points float64, pending bool, err error)
}

// DeferredGrader leaves every free-text answer for later review.
type DeferredGrader struct{}

func (DeferredGrader) Grade(context.Context, model.Question, model.SubmittedAnswer) (float64, bool, error) {
	return 0, true, nil
}

// mcqCorrect reports whether selected names exactly the correct options of q.
// Entries may be option ids or option texts; unknown entries make the answer wrong.
func mcqCorrect(q model.Question, selected []string) bool {
	chosen := make(map[string]struct{}, len(selected))
	for _, sel := range selected {
		id, ok := resolveOption(q, sel)
		if !ok {
			return false
		}
		chosen[id] = struct{}{}
	}

	correct := q.CorrectOptionIDs()
	if len(chosen) != len(correct) {
		return false
	}
	for _, id := range correct {
		if _, ok := chosen[id]; !ok {
			return false
		}
	}
	return true
}

func resolveOption(q model.Question, sel string) (string, bool) {
	sel = strings.TrimSpace(sel)
	for _, o := range q.Options {
		if o.ID == sel {
			return o.ID, true
		}
	}
	for _, o := range q.Options {
		if o.Text == sel {
			return o.ID, true
		}
	}
	return "", false
}
