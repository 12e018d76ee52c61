package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"

	"quizsync/internal/domain"
)

// QuestionOptions selects how the next question is allocated.
type QuestionOptions struct {
	Practice bool
}

// QuestionResult is a served question plus its queue entry.
type QuestionResult struct {
	Question *domain.Question
	Answer   domain.Answer
}

// practiceAllowed returns how many further practice questions the
// student may take, math.MaxInt when unlimited.
func practiceAllowed(lec *domain.Lecture) int {
	real := 0
	for i := range lec.AnswerQueue {
		if !lec.AnswerQueue[i].StudentAnswer.Practice() {
			real++
		}
	}

	after := int(lec.Settings.Float("practice_after", 0))
	if after == 0 {
		return math.MaxInt
	}

	batches := real / after
	if batches == 0 {
		return 0
	}

	batch := lec.Settings.Float("practice_batch", math.Inf(1))
	if math.IsInf(batch, 1) {
		return math.MaxInt
	}

	allowed := batches*int(batch) - (len(lec.AnswerQueue) - real)
	if allowed < 0 {
		return 0
	}
	return allowed
}

// GetNewQuestion serves the next question for the lecture. An open
// allocation at the end of the queue is re-served as-is so an
// interrupted question resumes; otherwise the oracle allocates a new
// one, retrying a bounded number of times past unrenderable material.
func (s *Service) GetNewQuestion(ctx context.Context, uri string, opts QuestionOptions) (*QuestionResult, error) {
	clientID, err := s.clientID(ctx)
	if err != nil {
		return nil, err
	}

	var result *QuestionResult
	err = s.withLecture(ctx, uri, false, func(lec *domain.Lecture) error {
		var qn *domain.Question
		var a *domain.Answer

		if last := lec.LastAnswer(); last != nil && last.Open() {
			// Last question wasn't answered, carry on answering.
			// NB: the allocation is not appended again.
			qn, err = s.getQuestionData(ctx, lec, last.URI, false)
			if err != nil {
				return err
			}
			a = last
		} else {
			if opts.Practice && practiceAllowed(lec) == 0 {
				return domain.ErrPracticeQuotaExceeded
			}

			a, qn, err = s.allocate(ctx, lec, opts.Practice, clientID)
			if err != nil {
				return err
			}
		}

		// The fetched question data might differ slightly.
		a.URI = qn.URI

		if a.TimeStart == 0 {
			a.TimeStart = s.now()
		}
		a.Synced = false
		a.RemainingTime = a.AllottedTime
		if a.AllottedTime > 0 {
			a.RemainingTime = a.AllottedTime - (s.now() - a.TimeStart)
		}

		result = &QuestionResult{Question: qn, Answer: *a}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// allocate asks the oracle for a new allocation and appends it once
// the question payload fetched successfully. Some allocated questions
// are invalid or unrenderable, so allocation is retried bounded times.
func (s *Service) allocate(ctx context.Context, lec *domain.Lecture, practice bool, clientID string) (*domain.Answer, *domain.Question, error) {
	attempts := s.cfg.AllocateAttempts
	if attempts < 1 {
		attempts = 10
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		alloc, err := s.oracle.NewAllocation(lec, practice)
		if err != nil {
			lastErr = err
			continue
		}

		if last := lec.LastAnswer(); last != nil {
			alloc.LecAnswered = last.LecAnswered
			alloc.LecCorrect = last.LecCorrect
			alloc.PracticeAnswered = last.PracticeAnswered
		}
		alloc.ClientID = clientID

		qn, err := s.getQuestionData(ctx, lec, alloc.URI, false)
		if err != nil {
			var renderErr *domain.MaterialRenderError
			if errors.As(err, &renderErr) {
				s.logger.Debug("allocated question unusable, retrying",
					"lecture", lec.URI,
					"question", alloc.URI,
					"attempt", attempt,
				)
				lastErr = err
				continue
			}
			return nil, nil, err
		}

		lec.AnswerQueue = append(lec.AnswerQueue, *alloc)
		return lec.LastAnswer(), qn, nil
	}

	return nil, nil, fmt.Errorf("allocate question after %d attempts: %w", attempts, lastErr)
}

// GetReviewMaterial asks the server for peer material to review and
// injects it into the answer queue as a practice-mode allocation.
// Returns false when nothing needs reviewing.
func (s *Service) GetReviewMaterial(ctx context.Context, uri string) (bool, error) {
	resolved, err := s.resolveURI(ctx, uri)
	if err != nil {
		return false, err
	}

	alloc, err := s.remote.RequestReview(ctx, resolved)
	if err != nil {
		return false, err
	}
	if alloc == nil {
		return false, nil
	}

	clientID, err := s.clientID(ctx)
	if err != nil {
		return false, err
	}

	err = s.withLecture(ctx, resolved, false, func(lec *domain.Lecture) error {
		// Reviews must not be graded directly, so run in practice mode.
		alloc.StudentAnswer = domain.StudentAnswer{"practice": true}
		if last := lec.LastAnswer(); last != nil {
			alloc.LecAnswered = last.LecAnswered
			alloc.LecCorrect = last.LecCorrect
			alloc.PracticeAnswered = last.PracticeAnswered
		}
		alloc.ClientID = clientID
		lec.AnswerQueue = append(lec.AnswerQueue, *alloc)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// fetchMaterial returns the lecture's question-bank payload, serving
// from the in-memory copy, then the content cache, then the network.
func (s *Service) fetchMaterial(ctx context.Context, lec *domain.Lecture) (*domain.Material, error) {
	if lec.MaterialURI == "" {
		return nil, fmt.Errorf("lecture %s is missing material_uri", lec.URI)
	}

	s.fetchMu.Lock()
	if s.lastFetched.materialURI == lec.MaterialURI && s.lastFetched.material != nil {
		material := s.lastFetched.material
		s.fetchMu.Unlock()
		return material, nil
	}
	s.fetchMu.Unlock()

	raw, err := s.cache.FetchCached(ctx, lec.MaterialURI, s.cfg.MaterialTimeout)
	if err != nil {
		return nil, err
	}

	var material domain.Material
	if err := json.Unmarshal(raw, &material); err != nil {
		return nil, fmt.Errorf("decode material %s: %w", lec.MaterialURI, err)
	}

	s.fetchMu.Lock()
	s.lastFetched = fetchedMaterial{materialURI: lec.MaterialURI, material: &material}
	s.fetchMu.Unlock()

	return &material, nil
}

// getQuestionData returns one question's payload, from the material
// bank or an individual server fetch. A question the server flagged as
// broken surfaces as MaterialRenderError so allocation can move on.
func (s *Service) getQuestionData(ctx context.Context, lec *domain.Lecture, materialID string, cachedOkay bool) (*domain.Question, error) {
	if cachedOkay && materialID != "" {
		s.fetchMu.Lock()
		if s.lastFetched.questionID == materialID && s.lastFetched.question != nil {
			qn := s.lastFetched.question
			s.fetchMu.Unlock()
			return qn, nil
		}
		s.fetchMu.Unlock()
	}

	material, err := s.fetchMaterial(ctx, lec)
	if err != nil {
		return nil, err
	}

	rawQn, ok := material.Data[materialID]
	if !ok {
		// Not part of the bank payload, request it individually.
		data, err := s.remote.GetJSON(ctx, lec.MaterialURI+"&id="+url.QueryEscape(materialID))
		if err != nil {
			return nil, err
		}
		var single domain.Material
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decode question %s: %w", materialID, err)
		}
		rawQn, ok = single.Data[materialID]
		if !ok {
			return nil, &domain.MaterialRenderError{URI: materialID, Message: "not in server response"}
		}
	}

	var qn domain.Question
	if err := json.Unmarshal(rawQn, &qn); err != nil {
		return nil, fmt.Errorf("decode question %s: %w", materialID, err)
	}
	if qn.Error != "" {
		return nil, &domain.MaterialRenderError{URI: materialID, Message: qn.Error}
	}
	if qn.URI == "" {
		qn.URI = materialID
	}

	// Stash so a later answer is marked against the same payload.
	s.fetchMu.Lock()
	s.lastFetched.questionID = qn.URI
	s.lastFetched.question = &qn
	s.fetchMu.Unlock()

	return &qn, nil
}

// decodeCorrectPayload unwraps the correct-answer payload: either
// plain JSON or a base64-encoded JSON string.
func decodeCorrectPayload(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		// Not a string, take it as-is.
		return raw, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode correct payload: %w", err)
	}
	if !json.Valid(decoded) {
		return nil, fmt.Errorf("correct payload is not JSON")
	}
	return decoded, nil
}
