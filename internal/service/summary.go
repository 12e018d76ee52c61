package service

import (
	"context"
	"encoding/json"
	"fmt"

	"quizsync/internal/domain"
)

// acedGrade is the grade at which a lecture counts as mastered.
const acedGrade = 9.750

// GradeSummary is the human-readable progress report for one lecture.
type GradeSummary struct {
	Practice      string
	PracticeStats string
	Stats         string
	Grade         string
	Encouragement string

	// LastEight holds the most recent graded real answers, newest
	// first, as much as the grading window considers.
	LastEight []domain.Answer
}

func gradeSummary(lec *domain.Lecture) *GradeSummary {
	out := &GradeSummary{}

	last := lec.LastAnswer()
	if last == nil {
		return out
	}

	if last.StudentAnswer.Practice() {
		out.Practice = "Practice mode"
	}
	if last.PracticeAnswered > 0 {
		out.PracticeStats = fmt.Sprintf("Practiced %d question(s).", last.PracticeAnswered)
	}
	// lec_answered counts practice too, report only the real answers.
	out.Stats = fmt.Sprintf("Answered %d question(s), %d correctly.", last.LecAnswered-last.PracticeAnswered, last.LecCorrect)

	nmin := int(lec.Settings.Float("grade_nmin", 8))
	if len(lec.AnswerQueue) >= nmin {
		grade := last.Grade()
		out.Grade = fmt.Sprintf("Your grade: %.3g", grade)
		if grade >= acedGrade {
			out.Encouragement = "You have aced this lecture!"
		} else if last.GradeNextRight > grade {
			out.Encouragement = fmt.Sprintf("If you get the next question right, your grade will rise to %.3g.", last.GradeNextRight)
		}
	} else {
		out.Grade = fmt.Sprintf("Answer %d more question(s) to see your grade.", nmin-len(lec.AnswerQueue))
	}

	for i := len(lec.AnswerQueue) - 1; i >= 0 && len(out.LastEight) < 8; i-- {
		a := lec.AnswerQueue[i]
		if a.Open() || a.StudentAnswer.Practice() {
			continue
		}
		out.LastEight = append(out.LastEight, a)
	}

	return out
}

// LectureGradeSummary regrades the lecture's queue and returns the
// progress report for it.
func (s *Service) LectureGradeSummary(ctx context.Context, uri string) (*GradeSummary, error) {
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

	s.oracle.GradeAllocation(lec.Settings, lec.AnswerQueue, lec)
	return gradeSummary(lec), nil
}

// LectureInfo is the per-lecture row of the lecture picker.
type LectureInfo struct {
	Title  string
	Grade  float64
	Stats  string
	Synced bool

	// Offline means the lecture can be taken with no connectivity: its
	// material is cached and no question requires the server.
	Offline bool
}

// AvailableLectures is the subscriptions tree plus the local state of
// every lecture in it.
type AvailableLectures struct {
	Subscriptions *domain.Subscription
	Lectures      map[string]LectureInfo
}

// GetAvailableLectures lists everything the student is subscribed to
// and how far along each lecture is, entirely from local storage.
func (s *Service) GetAvailableLectures(ctx context.Context) (*AvailableLectures, error) {
	subs, err := s.getSubscriptions(ctx, false)
	if err != nil {
		return nil, err
	}

	cached, err := s.cache.ListCachedURLs(ctx)
	if err != nil {
		return nil, err
	}

	out := &AvailableLectures{
		Subscriptions: subs,
		Lectures:      map[string]LectureInfo{},
	}

	for _, uri := range subs.LectureURIs() {
		unlock := s.lockURI(uri)
		lec, err := s.getLecture(ctx, uri, true)
		unlock()
		if err != nil {
			return nil, err
		}

		s.oracle.GradeAllocation(lec.Settings, lec.AnswerQueue, lec)

		info := LectureInfo{
			Title:  lec.Title,
			Synced: lec.Questions != nil && lec.Synced(),
		}
		if last := lec.LastAnswer(); last != nil {
			info.Grade = last.Grade()
			info.Stats = fmt.Sprintf("%d/%d correct", last.LecCorrect, last.LecAnswered)
		}

		if _, ok := cached[lec.MaterialURI]; ok && lec.MaterialURI != "" {
			info.Offline = true
			for i := range lec.Questions {
				if lec.Questions[i].OnlineOnly {
					info.Offline = false
					break
				}
			}
		}

		out.Lectures[uri] = info
	}

	return out, nil
}

// FetchSlides returns the lecture's slide deck markup. Slides are HTML
// and live outside the JSON content cache, so they need connectivity.
func (s *Service) FetchSlides(ctx context.Context, uri string) (string, error) {
	resolved, err := s.resolveURI(ctx, uri)
	if err != nil {
		return "", err
	}

	unlock := s.lockURI(resolved)
	lec, err := s.getLecture(ctx, resolved, false)
	unlock()
	if err != nil {
		return "", err
	}

	if lec.SlideURI == "" {
		return "", fmt.Errorf("lecture %s has no slides", lec.URI)
	}
	return s.remote.GetHTML(ctx, lec.SlideURI)
}

// InsertTutorial seeds a whole tutorial into local storage: the
// subscriptions node, every lecture record and a synthetic material
// payload per lecture. Used to import bundled content without a
// server round-trip.
func (s *Service) InsertTutorial(ctx context.Context, tutID, tutTitle string, lectures []domain.Lecture, questions map[string]json.RawMessage) error {
	subs, err := s.getSubscriptions(ctx, true)
	if err != nil {
		return err
	}

	node := domain.Subscription{ID: tutID, Title: tutTitle}
	for i := range lectures {
		lec := &lectures[i]
		if lec.AnswerQueue == nil {
			lec.AnswerQueue = []domain.Answer{}
		}
		node.Children = append(node.Children, domain.Subscription{
			Title: lec.Title,
			Href:  lec.URI,
		})

		err := s.withLecture(ctx, lec.URI, true, func(cur *domain.Lecture) error {
			*cur = *lec
			return nil
		})
		if err != nil {
			return err
		}

		if lec.MaterialURI == "" {
			continue
		}
		material, err := json.Marshal(domain.Material{Data: questions, Stats: lec.Questions})
		if err != nil {
			return err
		}
		if err := s.cache.InjectCache(ctx, lec.MaterialURI, material); err != nil {
			return err
		}
	}

	// Replace an existing node for the same tutorial rather than
	// appending a duplicate.
	replaced := false
	for i := range subs.Children {
		if subs.Children[i].ID == tutID {
			subs.Children[i] = node
			replaced = true
			break
		}
	}
	if !replaced {
		subs.Children = append(subs.Children, node)
	}
	return s.setSubscriptions(ctx, subs)
}
