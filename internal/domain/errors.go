package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers branch on with errors.Is.
var (
	// ErrNoLectureSelected: an operation needed the current lecture but
	// none is set in the context and no URI was given.
	ErrNoLectureSelected = errors.New("no lecture selected")

	// ErrSubscriptionsNotLoaded: the subscriptions tree has never been
	// fetched, so lecture lookups cannot be resolved at all.
	ErrSubscriptionsNotLoaded = errors.New("subscriptions not yet downloaded")

	// ErrPracticeQuotaExceeded: the student has no practice questions
	// left under the practice_after/practice_batch policy.
	ErrPracticeQuotaExceeded = errors.New("no practice questions left")

	// ErrNoOpenQuestion: answer or review submitted with no open
	// allocation at the end of the queue.
	ErrNoOpenQuestion = errors.New("no open question to answer")

	// ErrQuotaExceeded: local storage refused a write. Recovered by
	// scrubbing the cache, never fatal to a fetch.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// UnknownLectureError: the lecture record is absent and the caller did
// not tolerate absence.
type UnknownLectureError struct {
	URI string
}

func (e *UnknownLectureError) Error() string {
	return fmt.Sprintf("unknown lecture: %s", e.URI)
}

// IdentityMismatchError: the server answered a sync as a different user
// than the one the lecture was last synced under.
type IdentityMismatchError struct {
	LocalUser  string
	RemoteUser string
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("lecture belongs to %q but server answered as %q: log out first", e.LocalUser, e.RemoteUser)
}

// NetworkError covers connectivity loss and request timeouts.
type NetworkError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout whilst fetching %s", e.URL)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError covers 401/403 responses. TermsNotAccepted distinguishes
// "accept the terms" from "log in again".
type AuthError struct {
	URL              string
	TermsNotAccepted bool
	Message          string
}

func (e *AuthError) Error() string {
	if e.TermsNotAccepted {
		return "you have not accepted the terms and conditions"
	}
	return fmt.Sprintf("not authorised to fetch %s: %s", e.URL, e.Message)
}

// MaterialRenderError: a fetched question is unusable and the
// allocation must be retried with different material.
type MaterialRenderError struct {
	URI     string
	Message string
}

func (e *MaterialRenderError) Error() string {
	return fmt.Sprintf("question %s failed to render: %s", e.URI, e.Message)
}
