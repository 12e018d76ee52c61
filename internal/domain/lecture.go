package domain

import (
	"encoding/json"
	"strconv"
)

// SubscriptionsKey is the fixed storage key for the subscriptions tree.
const SubscriptionsKey = "_subscriptions"

// ClientIDKey is the fixed storage key for the device's client identity.
const ClientIDKey = "client_id"

// Subscription is a node in the subscriptions tree: either a leaf
// pointing at a lecture URI via Href, or an internal node with Children.
type Subscription struct {
	ID       string         `json:"id,omitempty"`
	Title    string         `json:"title,omitempty"`
	Href     string         `json:"href,omitempty"`
	Children []Subscription `json:"children,omitempty"`
}

// LectureURIs flattens the tree into an ordered list of lecture URIs.
func (s *Subscription) LectureURIs() []string {
	if s == nil {
		return nil
	}
	if s.Href != "" {
		return []string{s.Href}
	}
	uris := make([]string, 0, len(s.Children))
	for i := range s.Children {
		uris = append(uris, s.Children[i].LectureURIs()...)
	}
	return uris
}

// Settings is the lecture's opaque configuration mapping. Values may
// arrive as numbers or numeric strings; only the oracle and the
// practice-quota policy read them.
type Settings map[string]any

// Float returns the named setting as a float, or def when absent or
// unparseable.
func (s Settings) Float(name string, def float64) float64 {
	v, ok := s[name]
	if !ok {
		return def
	}
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	}
	return def
}

// QuestionStat is the per-question aggregate kept on a lecture.
type QuestionStat struct {
	URI             string `json:"uri"`
	Chosen          int    `json:"chosen"`
	Correct         int    `json:"correct"`
	InitialAnswered int    `json:"initial_answered,omitempty"`
	InitialCorrect  int    `json:"initial_correct,omitempty"`
	OnlineOnly      bool   `json:"online_only,omitempty"`
}

// Lecture is the per-lecture progression record, keyed by URI in local
// storage. Questions stays nil until the first successful sync.
type Lecture struct {
	URI          string         `json:"uri"`
	Title        string         `json:"title,omitempty"`
	User         string         `json:"user,omitempty"`
	Path         string         `json:"path,omitempty"`
	MaterialURI  string         `json:"material_uri,omitempty"`
	SlideURI     string         `json:"slide_uri,omitempty"`
	Settings     Settings       `json:"settings,omitempty"`
	MaterialTags []string       `json:"material_tags,omitempty"`
	Questions    []QuestionStat `json:"questions,omitempty"`
	AnswerQueue  []Answer       `json:"answerQueue"`

	// CurrentTime is stamped onto the outgoing snapshot of a sync POST
	// so the server can compute clock offsets. Never stored locally.
	CurrentTime int64 `json:"current_time,omitempty"`
}

// Clone returns a deep copy via a JSON round-trip, matching the wire
// representation exactly.
func (l *Lecture) Clone() (*Lecture, error) {
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	var out Lecture
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Synced reports whether every entry in the answer queue has
// round-tripped to the server.
func (l *Lecture) Synced() bool {
	for i := range l.AnswerQueue {
		if !l.AnswerQueue[i].Synced {
			return false
		}
	}
	return true
}

// LastAnswer returns the final queue entry, or nil for an empty queue.
func (l *Lecture) LastAnswer() *Answer {
	if len(l.AnswerQueue) == 0 {
		return nil
	}
	return &l.AnswerQueue[len(l.AnswerQueue)-1]
}

// Material is the question-bank payload for a lecture: question data
// keyed by question URI, plus initial aggregate stats.
type Material struct {
	Data  map[string]json.RawMessage `json:"data"`
	Stats []QuestionStat             `json:"stats"`
}

// Question is one renderable question from the material payload. The
// bulk of it (markup, choices) is opaque to the engine.
type Question struct {
	URI             string            `json:"uri"`
	Error           string            `json:"error,omitempty"`
	Correct         json.RawMessage   `json:"correct,omitempty"`
	Text            json.RawMessage   `json:"text,omitempty"`
	Choices         json.RawMessage   `json:"choices,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	ReviewQuestions []ReviewQuestion  `json:"review_questions,omitempty"`
	Extra           map[string]string `json:"-"`
}

// ReviewQuestion is one prompt on the post-answer review form.
type ReviewQuestion struct {
	Name   string          `json:"name"`
	Title  string          `json:"title"`
	Values [][2]any        `json:"values,omitempty"`
	Extra  json.RawMessage `json:"-"`
}
