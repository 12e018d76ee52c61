package service

import (
	"context"
	"encoding/json"

	"go.uber.org/mock/gomock"

	"quizsync/internal/domain"
)

func (s *ServiceTestSuite) TestGradeSummary_GradeHiddenEarly() {
	correct := true
	g := 5.0
	lec := &domain.Lecture{
		AnswerQueue: []domain.Answer{
			{URI: "ut:q0", TimeEnd: 100, Correct: &correct, LecAnswered: 1, LecCorrect: 1, GradeAfter: &g},
		},
	}

	out := gradeSummary(lec)

	s.Equal("Answered 1 question(s), 1 correctly.", out.Stats)
	s.Contains(out.Grade, "Answer 7 more question(s)")
	s.Empty(out.Encouragement)
}

func (s *ServiceTestSuite) TestGradeSummary_EncouragesNextRight() {
	correct := true
	g := 7.5
	lec := &domain.Lecture{
		Settings: domain.Settings{"grade_nmin": float64(1)},
		AnswerQueue: []domain.Answer{
			{
				URI: "ut:q0", TimeEnd: 100, Correct: &correct,
				LecAnswered: 1, LecCorrect: 1,
				GradeAfter: &g, GradeNextRight: 8.75,
			},
		},
	}

	out := gradeSummary(lec)

	s.Contains(out.Grade, "7.5")
	s.Contains(out.Encouragement, "8.75")
}

func (s *ServiceTestSuite) TestGradeSummary_PracticeExcludedFromStats() {
	correct := true
	wrong := false
	g := 10.0
	lec := &domain.Lecture{
		Settings: domain.Settings{"grade_nmin": float64(2)},
		AnswerQueue: []domain.Answer{
			{URI: "ut:q0", TimeEnd: 100, Correct: &correct, LecAnswered: 1, LecCorrect: 1},
			{
				URI: "ut:qp", TimeEnd: 200, Correct: &wrong,
				StudentAnswer: domain.StudentAnswer{"practice": true},
				LecAnswered:   2, LecCorrect: 1, PracticeAnswered: 1,
				GradeAfter: &g,
			},
		},
	}

	out := gradeSummary(lec)

	// lec_answered includes the practice answer; the report must not.
	s.Equal("Answered 1 question(s), 1 correctly.", out.Stats)
	s.Equal("Practiced 1 question(s).", out.PracticeStats)
	// Visibility is gated on queue length, practice entries included.
	s.Contains(out.Grade, "Your grade")
}

func (s *ServiceTestSuite) TestGradeSummary_Aced() {
	correct := true
	g := 10.0
	lec := &domain.Lecture{
		Settings: domain.Settings{"grade_nmin": float64(1)},
		AnswerQueue: []domain.Answer{
			{URI: "ut:q0", TimeEnd: 100, Correct: &correct, LecAnswered: 1, GradeAfter: &g},
		},
	}

	out := gradeSummary(lec)

	s.Equal("You have aced this lecture!", out.Encouragement)
}

func (s *ServiceTestSuite) TestGradeSummary_LastEightSkipsPractice() {
	correct := true
	var queue []domain.Answer
	for i := 0; i < 10; i++ {
		queue = append(queue, domain.Answer{URI: "ut:q", TimeEnd: int64(100 + i), Correct: &correct})
	}
	queue = append(queue, domain.Answer{
		URI: "ut:qp", TimeEnd: 500,
		StudentAnswer: domain.StudentAnswer{"practice": true},
	})

	out := gradeSummary(&domain.Lecture{AnswerQueue: queue})

	s.Len(out.LastEight, 8)
	for _, a := range out.LastEight {
		s.Equal("ut:q", a.URI)
	}
}

func (s *ServiceTestSuite) TestGetAvailableLectures() {
	ctx := context.Background()

	s.seedSubscriptions(&domain.Subscription{Children: []domain.Subscription{
		{Title: "Lecture 0", Href: lec0URI},
		{Title: "Lecture 1", Href: lec1URI},
	}})
	correct := true
	s.seedLecture(&domain.Lecture{
		URI:         lec0URI,
		Title:       "Lecture 0",
		MaterialURI: mat0URI,
		Questions:   []domain.QuestionStat{{URI: "ut:q0"}},
		AnswerQueue: []domain.Answer{
			{URI: "ut:q0", TimeEnd: 100, Correct: &correct, LecAnswered: 1, LecCorrect: 1, Synced: true},
		},
	})

	s.cache.EXPECT().ListCachedURLs(gomock.Any()).Return(map[string]struct{}{mat0URI: {}}, nil)
	s.oracle.EXPECT().GradeAllocation(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)

	out, err := s.service.GetAvailableLectures(ctx)

	s.Require().NoError(err)
	s.Len(out.Lectures, 2)

	info := out.Lectures[lec0URI]
	s.Equal("Lecture 0", info.Title)
	s.Equal("1/1 correct", info.Stats)
	s.True(info.Synced)
	s.True(info.Offline)

	// Never synced, nothing cached.
	s.False(out.Lectures[lec1URI].Offline)
	s.False(out.Lectures[lec1URI].Synced)
}

func (s *ServiceTestSuite) TestGetAvailableLectures_OnlineOnlyQuestion() {
	ctx := context.Background()

	s.seedSubscriptions(&domain.Subscription{Children: []domain.Subscription{
		{Href: lec0URI},
	}})
	s.seedLecture(&domain.Lecture{
		URI:         lec0URI,
		MaterialURI: mat0URI,
		Questions:   []domain.QuestionStat{{URI: "ut:q0", OnlineOnly: true}},
	})

	s.cache.EXPECT().ListCachedURLs(gomock.Any()).Return(map[string]struct{}{mat0URI: {}}, nil)
	s.oracle.EXPECT().GradeAllocation(gomock.Any(), gomock.Any(), gomock.Any())

	out, err := s.service.GetAvailableLectures(ctx)

	s.Require().NoError(err)
	s.False(out.Lectures[lec0URI].Offline)
}

func (s *ServiceTestSuite) TestFetchSlides() {
	ctx := context.Background()

	s.seedLecture(&domain.Lecture{URI: lec0URI, SlideURI: "/api/slide?path=lec0"})
	s.remote.EXPECT().GetHTML(gomock.Any(), "/api/slide?path=lec0").Return("<section/>", nil)

	html, err := s.service.FetchSlides(ctx, lec0URI)

	s.NoError(err)
	s.Equal("<section/>", html)
}

func (s *ServiceTestSuite) TestFetchSlides_NoSlides() {
	s.seedLecture(&domain.Lecture{URI: lec0URI})

	_, err := s.service.FetchSlides(context.Background(), lec0URI)

	s.Error(err)
}

func (s *ServiceTestSuite) TestInsertTutorial() {
	ctx := context.Background()

	questions := map[string]json.RawMessage{
		"ut:q0": json.RawMessage(`{"uri": "ut:q0"}`),
	}
	lectures := []domain.Lecture{
		{
			URI:         lec0URI,
			Title:       "Lecture 0",
			MaterialURI: mat0URI,
			Questions:   []domain.QuestionStat{{URI: "ut:q0"}},
		},
	}

	s.cache.EXPECT().InjectCache(gomock.Any(), mat0URI, gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string, data json.RawMessage) error {
			var material domain.Material
			s.Require().NoError(json.Unmarshal(data, &material))
			s.Contains(material.Data, "ut:q0")
			s.Len(material.Stats, 1)
			return nil
		},
	)

	err := s.service.InsertTutorial(ctx, "tut0", "Test Tutorial", lectures, questions)
	s.Require().NoError(err)

	stored := s.loadLecture(lec0URI)
	s.Equal("Lecture 0", stored.Title)

	raw, ok, err := s.kv.Get(ctx, domain.SubscriptionsKey)
	s.Require().NoError(err)
	s.Require().True(ok)
	var subs domain.Subscription
	s.Require().NoError(json.Unmarshal(raw, &subs))
	s.Require().Len(subs.Children, 1)
	s.Equal("tut0", subs.Children[0].ID)
	s.Equal([]string{lec0URI}, subs.LectureURIs())

	// Re-importing replaces the node instead of duplicating it.
	s.cache.EXPECT().InjectCache(gomock.Any(), mat0URI, gomock.Any()).Return(nil)
	s.Require().NoError(s.service.InsertTutorial(ctx, "tut0", "Test Tutorial v2", lectures, questions))

	raw, _, err = s.kv.Get(ctx, domain.SubscriptionsKey)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(raw, &subs))
	s.Len(subs.Children, 1)
	s.Equal("Test Tutorial v2", subs.Children[0].Title)
}

func (s *ServiceTestSuite) TestGetReviewMaterial() {
	ctx := context.Background()

	correct := true
	s.seedLecture(&domain.Lecture{
		URI: lec0URI,
		AnswerQueue: []domain.Answer{
			{URI: "ut:q0", TimeEnd: 100, Correct: &correct, LecAnswered: 1, LecCorrect: 1},
		},
	})

	s.remote.EXPECT().RequestReview(gomock.Any(), lec0URI).Return(&domain.Answer{URI: "ut:review0"}, nil)

	ok, err := s.service.GetReviewMaterial(ctx, lec0URI)

	s.NoError(err)
	s.True(ok)

	stored := s.loadLecture(lec0URI)
	s.Require().Len(stored.AnswerQueue, 2)
	review := stored.AnswerQueue[1]
	s.Equal("ut:review0", review.URI)
	s.True(review.StudentAnswer.Practice())
	// Counters carried from the previous entry.
	s.Equal(1, review.LecAnswered)
	s.Equal(1, review.LecCorrect)
}

func (s *ServiceTestSuite) TestGetReviewMaterial_NothingToReview() {
	s.seedLecture(&domain.Lecture{URI: lec0URI})
	s.remote.EXPECT().RequestReview(gomock.Any(), lec0URI).Return(nil, nil)

	ok, err := s.service.GetReviewMaterial(context.Background(), lec0URI)

	s.NoError(err)
	s.False(ok)
}

func (s *ServiceTestSuite) TestSetQuestionReview() {
	ctx := context.Background()

	correct := true
	s.seedLecture(&domain.Lecture{
		URI: lec0URI,
		AnswerQueue: []domain.Answer{
			{URI: "ut:q0", TimeEnd: 100, Correct: &correct, Synced: true},
		},
	})

	err := s.service.SetQuestionReview(ctx, lec0URI, map[string]any{"content": 1})

	s.NoError(err)
	stored := s.loadLecture(lec0URI)
	s.Equal(1.0, stored.AnswerQueue[0].Review["content"])
	s.False(stored.AnswerQueue[0].Synced)
}

func (s *ServiceTestSuite) TestGetQuestionReviewForm_Default() {
	ctx := context.Background()

	correct := true
	s.seedLecture(&domain.Lecture{
		URI:         lec0URI,
		MaterialURI: mat0URI,
		AnswerQueue: []domain.Answer{
			{URI: "ut:q0", TimeEnd: 100, Correct: &correct},
		},
	})
	s.cache.EXPECT().FetchCached(gomock.Any(), mat0URI, gomock.Any()).Return(
		materialPayload(map[string]any{"ut:q0": map[string]any{"uri": "ut:q0"}}, nil), nil,
	)

	form, err := s.service.GetQuestionReviewForm(ctx, lec0URI)

	s.Require().NoError(err)
	s.Require().NotEmpty(form)
	s.Equal("content", form[0].Name)
}
