package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizsync/internal/domain"
)

func closedAnswer(uri string, timeEnd int64, correct bool) domain.Answer {
	c := correct
	return domain.Answer{
		URI:     uri,
		TimeEnd: timeEnd,
		Correct: &c,
	}
}

func openAnswer(uri string) domain.Answer {
	return domain.Answer{URI: uri}
}

func practiceAnswer(uri string, timeEnd int64, correct bool) domain.Answer {
	a := closedAnswer(uri, timeEnd, correct)
	a.StudentAnswer = domain.StudentAnswer{"practice": true}
	return a
}

func TestMergeQueues_ServerPrefixWins(t *testing.T) {
	sent := closedAnswer("ut:q0", 100, true)
	local := openAnswer("ut:q1")

	// Server returns its processed version of the sent entry.
	fromServer := sent
	fromServer.Synced = true
	fromServer.TimeOffset = 3

	merged := MergeQueues(
		[]domain.Answer{sent},
		[]domain.Answer{sent, local},
		[]domain.Answer{fromServer},
	)

	require.Len(t, merged, 2)
	assert.Equal(t, int64(3), merged[0].TimeOffset)
	assert.True(t, merged[0].Synced)
	assert.Equal(t, "ut:q1", merged[1].URI)
	assert.False(t, merged[1].Synced)
}

func TestMergeQueues_OpenTailNotCountedAsSent(t *testing.T) {
	open := openAnswer("ut:q0")

	// The open entry rides along in the POST but the server ignores it,
	// so it must survive the merge locally.
	merged := MergeQueues(
		[]domain.Answer{open},
		[]domain.Answer{open},
		nil,
	)

	require.Len(t, merged, 1)
	assert.Equal(t, "ut:q0", merged[0].URI)
	assert.True(t, merged[0].Open())
}

func TestMergeQueues_EntriesAppendedMidSync(t *testing.T) {
	a := closedAnswer("ut:q0", 100, true)
	b := closedAnswer("ut:q1", 200, false)
	c := openAnswer("ut:q2")

	// b and c were appended after the snapshot was taken.
	merged := MergeQueues(
		[]domain.Answer{a},
		[]domain.Answer{a, b, c},
		[]domain.Answer{a},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, "ut:q0", merged[0].URI)
	assert.Equal(t, "ut:q1", merged[1].URI)
	assert.Equal(t, "ut:q2", merged[2].URI)
}

func TestMergeQueues_Idempotent(t *testing.T) {
	a := closedAnswer("ut:q0", 100, true)
	b := closedAnswer("ut:q1", 200, false)
	server := []domain.Answer{a, b}

	once := MergeQueues([]domain.Answer{a, b}, []domain.Answer{a, b}, server)
	twice := MergeQueues(once, once, server)

	assert.Equal(t, once, twice)
}

func TestMergeQueues_CountersRecomputed(t *testing.T) {
	a := closedAnswer("ut:q0", 100, true)
	b := closedAnswer("ut:q1", 200, false)
	c := closedAnswer("ut:q2", 300, true)
	d := openAnswer("ut:q3")

	merged := MergeQueues(nil, nil, []domain.Answer{a, b, c, d})

	require.Len(t, merged, 4)
	assert.Equal(t, 1, merged[0].LecAnswered)
	assert.Equal(t, 1, merged[0].LecCorrect)
	assert.Equal(t, 2, merged[1].LecAnswered)
	assert.Equal(t, 1, merged[1].LecCorrect)
	assert.Equal(t, 3, merged[2].LecAnswered)
	assert.Equal(t, 2, merged[2].LecCorrect)
	// Open tail doesn't count as answered.
	assert.Equal(t, 3, merged[3].LecAnswered)
	assert.Equal(t, 2, merged[3].LecCorrect)
}

func TestMergeQueues_FirstEntryBaselineTrusted(t *testing.T) {
	// The server may truncate history; the first returned entry then
	// carries the running totals from before the truncation.
	first := closedAnswer("ut:q5", 500, true)
	first.LecAnswered = 6
	first.LecCorrect = 4
	second := closedAnswer("ut:q6", 600, true)

	merged := MergeQueues(nil, nil, []domain.Answer{first, second})

	require.Len(t, merged, 2)
	assert.Equal(t, 6, merged[0].LecAnswered)
	assert.Equal(t, 4, merged[0].LecCorrect)
	assert.Equal(t, 7, merged[1].LecAnswered)
	assert.Equal(t, 5, merged[1].LecCorrect)
}

func TestMergeQueues_PracticeCounted(t *testing.T) {
	a := closedAnswer("ut:q0", 100, true)
	p := practiceAnswer("ut:q1", 200, true)

	merged := MergeQueues(nil, nil, []domain.Answer{a, p})

	require.Len(t, merged, 2)
	assert.Equal(t, 0, merged[0].PracticeAnswered)
	assert.Equal(t, 1, merged[1].PracticeAnswered)
	// Practice answers still count towards the answered totals.
	assert.Equal(t, 2, merged[1].LecAnswered)
}

func TestSyncingLength(t *testing.T) {
	assert.Equal(t, 0, syncingLength(nil))

	closed := closedAnswer("ut:q0", 100, true)
	open := openAnswer("ut:q1")

	assert.Equal(t, 1, syncingLength([]domain.Answer{closed}))
	assert.Equal(t, 1, syncingLength([]domain.Answer{closed, open}))
	assert.Equal(t, 0, syncingLength([]domain.Answer{open}))
}
