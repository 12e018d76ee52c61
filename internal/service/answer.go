package service

import (
	"context"

	"quizsync/internal/domain"
)

// AnswerResult reports the outcome of a submitted answer.
type AnswerResult struct {
	Answer   domain.Answer
	Question *domain.Question
}

// SetQuestionAnswer closes the open allocation at the end of the
// queue with the submitted form data, marks it against the question's
// correct payload and regrades the queue. Submitting when no question
// is open returns ErrNoOpenQuestion.
func (s *Service) SetQuestionAnswer(ctx context.Context, uri string, formData map[string]any) (*AnswerResult, error) {
	var result *AnswerResult
	err := s.withLecture(ctx, uri, false, func(lec *domain.Lecture) error {
		a := lec.LastAnswer()
		if a == nil || !a.Open() {
			return domain.ErrNoOpenQuestion
		}

		qn, err := s.getQuestionData(ctx, lec, a.URI, true)
		if err != nil {
			return err
		}

		a.TimeEnd = s.now()
		if a.TimeEnd <= a.TimeStart {
			// Clock went backwards mid-question, keep ordering sane.
			a.TimeEnd = a.TimeStart + 1
		}

		if a.StudentAnswer == nil {
			a.StudentAnswer = domain.StudentAnswer{}
		}
		for k, v := range formData {
			a.StudentAnswer[k] = v
		}

		correct, err := decodeCorrectPayload(qn.Correct)
		if err != nil {
			return err
		}
		if correct != nil {
			graded := s.oracle.MarkAnswer(a, correct)
			a.Correct = &graded
		}

		s.recordQuestionStat(lec, a)

		// Hold the explanation back until the expected study time for
		// this question has passed.
		studyTime := s.oracle.QuestionStudyTime(lec.Settings, lec.AnswerQueue)
		if elapsed := a.TimeEnd - a.TimeStart; studyTime > elapsed {
			a.ExplanationDelay = studyTime - elapsed
		}

		s.oracle.GradeAllocation(lec.Settings, lec.AnswerQueue, lec)

		a.LecAnswered++
		if a.IsCorrect() {
			a.LecCorrect++
		}
		if a.StudentAnswer.Practice() {
			a.PracticeAnswered++
		}
		a.Synced = false

		result = &AnswerResult{Answer: *a, Question: qn}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lecURI, _ := s.resolveURI(ctx, uri)
	s.publishAnswer(ctx, lecURI, &result.Answer)
	return result, nil
}

// recordQuestionStat bumps the lecture's aggregate for the answered
// question so allocation keeps preferring the least-seen questions.
func (s *Service) recordQuestionStat(lec *domain.Lecture, a *domain.Answer) {
	for i := range lec.Questions {
		if lec.Questions[i].URI == a.URI {
			lec.Questions[i].Chosen++
			if a.IsCorrect() {
				lec.Questions[i].Correct++
			}
			return
		}
	}
	if lec.Questions == nil {
		return
	}
	stat := domain.QuestionStat{URI: a.URI, Chosen: 1}
	if a.IsCorrect() {
		stat.Correct = 1
	}
	lec.Questions = append(lec.Questions, stat)
}

// SetQuestionReview attaches review form data to the most recent
// closed answer. Reviews ride along with the next sync.
func (s *Service) SetQuestionReview(ctx context.Context, uri string, review map[string]any) error {
	return s.withLecture(ctx, uri, false, func(lec *domain.Lecture) error {
		a := lec.LastAnswer()
		if a == nil || a.Open() {
			return domain.ErrNoOpenQuestion
		}
		a.Review = review
		a.Synced = false
		return nil
	})
}

// defaultReviewForm is served when a question carries no review
// prompts of its own.
var defaultReviewForm = []domain.ReviewQuestion{
	{Name: "content", Title: "Was this question clearly written?", Values: [][2]any{
		{-1, "No"}, {0, "Mostly"}, {1, "Yes"},
	}},
	{Name: "difficulty", Title: "How difficult did you find it?", Values: [][2]any{
		{-1, "Too easy"}, {0, "About right"}, {1, "Too hard"},
	}},
}

// GetQuestionReviewForm returns the review prompts for the question
// just answered, falling back to a generic form.
func (s *Service) GetQuestionReviewForm(ctx context.Context, uri string) ([]domain.ReviewQuestion, error) {
	resolved, err := s.resolveURI(ctx, uri)
	if err != nil {
		return nil, err
	}

	unlock := s.lockURI(resolved)
	lec, err := s.getLecture(ctx, resolved, false)
	unlock()
	if err != nil {
		return nil, err
	}

	a := lec.LastAnswer()
	if a == nil || a.Open() {
		return nil, domain.ErrNoOpenQuestion
	}

	qn, err := s.getQuestionData(ctx, lec, a.URI, true)
	if err != nil {
		return nil, err
	}
	if len(qn.ReviewQuestions) > 0 {
		return qn.ReviewQuestions, nil
	}
	return defaultReviewForm, nil
}
