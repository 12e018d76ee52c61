package domain

// StudentAnswer is the free-form answer payload submitted by the
// student, plus the practice flag.
type StudentAnswer map[string]any

// Practice reports whether this answer was taken in practice mode.
func (sa StudentAnswer) Practice() bool {
	if sa == nil {
		return false
	}
	b, _ := sa["practice"].(bool)
	return b
}

// Answer is one allocated question instance and its outcome. Entries
// are appended to a lecture's answerQueue in chronological order; at
// most the last entry may be open (TimeEnd zero).
type Answer struct {
	URI           string        `json:"uri"`
	ClientID      string        `json:"client_id,omitempty"`
	TimeStart     int64         `json:"time_start,omitempty"`
	TimeEnd       int64         `json:"time_end,omitempty"`
	TimeOffset    int64         `json:"time_offset,omitempty"`
	AllottedTime  int64         `json:"allotted_time,omitempty"`
	RemainingTime int64         `json:"remaining_time,omitempty"`
	StudentAnswer StudentAnswer `json:"student_answer,omitempty"`
	Correct       *bool         `json:"correct,omitempty"`
	Review        map[string]any `json:"review,omitempty"`

	// Running totals, cumulative as of this entry.
	LecAnswered      int `json:"lec_answered"`
	LecCorrect       int `json:"lec_correct"`
	PracticeAnswered int `json:"practice_answered"`

	GradeBefore    float64  `json:"grade_before,omitempty"`
	GradeAfter     *float64 `json:"grade_after,omitempty"`
	GradeNextRight float64  `json:"grade_next_right,omitempty"`

	ExplanationDelay int64 `json:"explanation_delay,omitempty"`
	Mark             int   `json:"mark,omitempty"`
	Synced           bool  `json:"synced"`
}

// Open reports whether this allocation has not been submitted yet.
func (a *Answer) Open() bool {
	return a.TimeEnd == 0
}

// IsCorrect reports whether the answer has been graded correct.
func (a *Answer) IsCorrect() bool {
	return a.Correct != nil && *a.Correct
}

// Grade returns the grade as of this entry: the post-answer grade when
// graded, otherwise the pre-answer grade.
func (a *Answer) Grade() float64 {
	if a.GradeAfter != nil {
		return *a.GradeAfter
	}
	return a.GradeBefore
}
