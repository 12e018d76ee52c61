package service

import (
	"context"
	"encoding/json"
	"fmt"

	"quizsync/internal/domain"
)

// getSubscriptions loads the subscriptions tree. With missingOkay an
// absent tree is initialised to an empty root and persisted.
func (s *Service) getSubscriptions(ctx context.Context, missingOkay bool) (*domain.Subscription, error) {
	raw, ok, err := s.kv.Get(ctx, domain.SubscriptionsKey)
	if err != nil {
		return nil, fmt.Errorf("get subscriptions: %w", err)
	}
	if ok {
		var subs domain.Subscription
		if err := json.Unmarshal(raw, &subs); err != nil {
			return nil, fmt.Errorf("decode subscriptions: %w", err)
		}
		return &subs, nil
	}

	if !missingOkay {
		return nil, domain.ErrSubscriptionsNotLoaded
	}

	subs := &domain.Subscription{Children: []domain.Subscription{}}
	if err := s.setSubscriptions(ctx, subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Service) setSubscriptions(ctx context.Context, subs *domain.Subscription) error {
	raw, err := json.Marshal(subs)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, domain.SubscriptionsKey, raw); err != nil {
		return fmt.Errorf("store subscriptions: %w", err)
	}
	return nil
}

// getLecture loads the lecture record for uri. Intolerant callers get
// UnknownLectureError for an absent record (or ErrSubscriptionsNotLoaded
// when even the subscription list is missing); tolerant callers get a
// fresh empty shell. Every returned record has a non-nil answer queue
// and its URI set.
func (s *Service) getLecture(ctx context.Context, uri string, missingOkay bool) (*domain.Lecture, error) {
	raw, ok, err := s.kv.Get(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("get lecture %s: %w", uri, err)
	}

	var lec domain.Lecture
	if ok {
		if err := json.Unmarshal(raw, &lec); err != nil {
			return nil, fmt.Errorf("decode lecture %s: %w", uri, err)
		}
	} else if !missingOkay {
		_, subsOk, err := s.kv.Get(ctx, domain.SubscriptionsKey)
		if err != nil {
			return nil, fmt.Errorf("get subscriptions: %w", err)
		}
		if !subsOk {
			return nil, domain.ErrSubscriptionsNotLoaded
		}
		return nil, &domain.UnknownLectureError{URI: uri}
	}

	if lec.AnswerQueue == nil {
		lec.AnswerQueue = []domain.Answer{}
	}
	if lec.URI == "" {
		lec.URI = uri
	}
	return &lec, nil
}

// withLecture is the single write path for lecture records: fetch,
// apply step, persist under the record's own URI. Calls against the
// same URI are serialised so no writer interleaves between the read
// and the write.
func (s *Service) withLecture(ctx context.Context, uri string, missingOkay bool, step func(lec *domain.Lecture) error) error {
	resolved, err := s.resolveURI(ctx, uri)
	if err != nil {
		return err
	}

	unlock := s.lockURI(resolved)
	defer unlock()

	lec, err := s.getLecture(ctx, resolved, missingOkay)
	if err != nil {
		return err
	}

	if err := step(lec); err != nil {
		return err
	}

	raw, err := json.Marshal(lec)
	if err != nil {
		return fmt.Errorf("encode lecture %s: %w", lec.URI, err)
	}
	if err := s.kv.Set(ctx, lec.URI, raw); err != nil {
		return fmt.Errorf("store lecture %s: %w", lec.URI, err)
	}
	return nil
}

// LectureSelection describes the state of a freshly selected lecture.
type LectureSelection struct {
	LectureURI   string
	Title        string
	MaterialTags []string

	// Continuing is "practice" or "real" when the queue ends with an
	// open allocation the student should resume, else empty.
	Continuing string

	LastAnswer      *domain.Answer
	PracticeAllowed int
}

// SetCurrentLecture marks uri as the current lecture and reports
// whether the student is continuing an open question. The returned
// context carries the selection for subsequent calls.
func (s *Service) SetCurrentLecture(ctx context.Context, uri string, missingOkay bool) (context.Context, *LectureSelection, error) {
	if uri == "" {
		return ctx, nil, domain.ErrNoLectureSelected
	}

	lec, err := s.getLecture(ctx, uri, missingOkay)
	if err != nil {
		return ctx, nil, err
	}

	s.oracle.GradeAllocation(lec.Settings, lec.AnswerQueue, lec)

	sel := &LectureSelection{
		LectureURI:      lec.URI,
		Title:           lec.Title,
		MaterialTags:    lec.MaterialTags,
		LastAnswer:      lec.LastAnswer(),
		PracticeAllowed: practiceAllowed(lec),
	}
	if last := lec.LastAnswer(); last != nil && last.Open() {
		if last.StudentAnswer.Practice() {
			sel.Continuing = "practice"
		} else {
			sel.Continuing = "real"
		}
	}

	return WithCurrentLecture(ctx, lec.URI), sel, nil
}
