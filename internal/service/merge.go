package service

import "quizsync/internal/domain"

// MergeQueues reconciles three snapshots of one lecture's answer queue:
// pre (the queue as sent to the server), current (the local queue,
// possibly extended since the sync started) and server (the
// authoritative queue returned). The server wins for everything it has
// already processed; local entries appended after the sent point are
// preserved verbatim. Running counters are recomputed over the result.
//
// The function is pure: inputs are not modified, and re-merging an
// unchanged queue with itself reproduces the same result, which is what
// makes interrupted and retried syncs safe.
func MergeQueues(pre, current, server []domain.Answer) []domain.Answer {
	// Entries actually submitted and sent: trim a still-open tail.
	sent := syncingLength(pre)
	if sent > len(current) {
		sent = len(current)
	}

	merged := make([]domain.Answer, 0, len(server)+len(current)-sent)
	merged = append(merged, server...)
	merged = append(merged, current[sent:]...)

	var answered, correct, practice int
	for i := range merged {
		a := &merged[i]

		incAnswered := boolToInt(!a.Open())
		incCorrect := boolToInt(a.IsCorrect())
		incPractice := boolToInt(a.StudentAnswer.Practice() && !a.Open())

		if i == 0 {
			// Baseline: trust the first entry's own stored totals when
			// present, else start from its own increment.
			answered = firstTotal(a.LecAnswered, incAnswered)
			correct = firstTotal(a.LecCorrect, incCorrect)
			practice = firstTotal(a.PracticeAnswered, incPractice)
		} else {
			answered += incAnswered
			correct += incCorrect
			practice += incPractice
		}

		a.LecAnswered = answered
		a.LecCorrect = correct
		a.PracticeAnswered = practice
	}

	return merged
}

// syncingLength is the length of the queue minus a still-open trailing
// entry, i.e. the count of entries that were submitted and sent.
func syncingLength(queue []domain.Answer) int {
	l := len(queue)
	for l > 0 && queue[l-1].Open() {
		l--
	}
	return l
}

func firstTotal(stored, increment int) int {
	if stored != 0 {
		return stored
	}
	return increment
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
