// Package oracle is the reference allocation oracle: it chooses the
// next question, grades the running answer queue and marks submitted
// answers. The sync engine treats it as opaque; deployments with a
// different statistical model swap in their own implementation.
package oracle

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"reflect"

	"quizsync/internal/domain"
)

type Oracle struct {
	rand *rand.Rand
}

func New(seed int64) *Oracle {
	return &Oracle{rand: rand.New(rand.NewSource(seed))}
}

// NewAllocation chooses a question for the student, preferring the
// least-chosen questions so coverage stays even.
func (o *Oracle) NewAllocation(lec *domain.Lecture, practice bool) (*domain.Answer, error) {
	if len(lec.Questions) == 0 {
		return nil, fmt.Errorf("lecture %s has no questions to allocate", lec.URI)
	}

	minChosen := lec.Questions[0].Chosen
	for _, q := range lec.Questions[1:] {
		if q.Chosen < minChosen {
			minChosen = q.Chosen
		}
	}
	var candidates []string
	for _, q := range lec.Questions {
		if q.Chosen == minChosen {
			candidates = append(candidates, q.URI)
		}
	}

	a := &domain.Answer{
		URI:          candidates[o.rand.Intn(len(candidates))],
		AllottedTime: int64(lec.Settings.Float("allotted_time", 0)),
		GradeBefore:  currentGrade(lec.AnswerQueue),
	}
	if practice {
		a.StudentAnswer = domain.StudentAnswer{"practice": true}
	}
	return a, nil
}

// MarkAnswer compares the student's answer against the decoded correct
// payload. The payload holds the expected value under "answer", or a
// list of acceptable values under "correct".
func (o *Oracle) MarkAnswer(a *domain.Answer, correct json.RawMessage) bool {
	if len(correct) == 0 {
		return false
	}

	var payload map[string]any
	if err := json.Unmarshal(correct, &payload); err != nil {
		return false
	}

	given := a.StudentAnswer["answer"]
	if given == nil {
		given = a.StudentAnswer["choice"]
	}

	if want, ok := payload["answer"]; ok {
		return looseEqual(want, given)
	}
	if wants, ok := payload["correct"].([]any); ok {
		for _, want := range wants {
			if looseEqual(want, given) {
				return true
			}
		}
	}
	return false
}

// GradeAllocation recomputes the grade fields on the queue's last
// entry: the ratio of correct answers over the grading window, scaled
// to 0..10.
func (o *Oracle) GradeAllocation(settings domain.Settings, queue []domain.Answer, lec *domain.Lecture) {
	if len(queue) == 0 {
		return
	}

	window := int(settings.Float("grade_nmin", 8))
	if window < 1 {
		window = 1
	}

	answered, correctCount := windowCounts(queue, window)

	grade := func(extraCorrect int) float64 {
		total := answered
		if total < window {
			total = window
		}
		g := 10 * float64(correctCount+extraCorrect) / float64(total+extraCorrect)
		if g > 10 {
			g = 10
		}
		return g
	}

	last := &queue[len(queue)-1]
	if last.Open() {
		last.GradeBefore = grade(0)
	} else {
		g := grade(0)
		last.GradeAfter = &g
	}
	last.GradeNextRight = grade(1)
}

// QuestionStudyTime recommends how long the student should spend on
// the current question, growing with consecutive wrong answers.
func (o *Oracle) QuestionStudyTime(settings domain.Settings, queue []domain.Answer) int64 {
	factor := settings.Float("studytime_factor", 2)
	maxTime := settings.Float("studytime_max", 20)

	streak := 0
	for i := len(queue) - 1; i >= 0; i-- {
		a := &queue[i]
		if a.Open() {
			continue
		}
		if a.IsCorrect() {
			break
		}
		streak++
	}

	out := factor * float64(streak)
	if out > maxTime {
		out = maxTime
	}
	return int64(out)
}

func currentGrade(queue []domain.Answer) float64 {
	if len(queue) == 0 {
		return 0
	}
	return queue[len(queue)-1].Grade()
}

// windowCounts tallies the last window answered non-practice entries.
func windowCounts(queue []domain.Answer, window int) (answered, correct int) {
	for i := len(queue) - 1; i >= 0 && answered < window; i-- {
		a := &queue[i]
		if a.Open() || a.StudentAnswer.Practice() {
			continue
		}
		answered++
		if a.IsCorrect() {
			correct++
		}
	}
	return answered, correct
}

// looseEqual compares two JSON-decoded values, tolerating the usual
// int/float64 mismatch from mixed decode paths.
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
