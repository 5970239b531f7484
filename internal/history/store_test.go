package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tick returns a clock that advances one second per call.
func tick() func() time.Time {
	t0 := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)
	n := 0
	return func() time.Time {
		n++
		return t0.Add(time.Duration(n) * time.Second)
	}
}

func contents(s *Store) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Content)
	}
	return out
}

func TestSizeTracksDistinctCaptures(t *testing.T) {
	for n := 0; n <= DefaultCapacity+3; n++ {
		s := New(DefaultCapacity)
		for i := 0; i < n; i++ {
			ok, err := s.TryInsert(fmt.Sprintf("s%d", i))
			require.NoError(t, err)
			require.True(t, ok)
		}
		assert.Equal(t, min(n, DefaultCapacity), s.Len(), "after %d captures", n)
	}
}

func TestDuplicateHeadSuppressed(t *testing.T) {
	s := New(DefaultCapacity, WithClock(tick()))

	ok, err := s.TryInsert("a")
	require.NoError(t, err)
	require.True(t, ok)
	first, _ := s.Head()

	ok, err = s.TryInsert("a")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	head, _ := s.Head()
	assert.Equal(t, first, head, "suppression must not refresh the timestamp")
}

func TestDuplicateSuppressionAtCapacityDoesNotEvict(t *testing.T) {
	s := New(3)
	for _, v := range []string{"x", "y", "z"} {
		_, _ = s.TryInsert(v)
	}
	ok, err := s.TryInsert("z")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"z", "y", "x"}, contents(s))
}

func TestDeeperDuplicateIsRecordedAgain(t *testing.T) {
	s := New(DefaultCapacity)
	for _, v := range []string{"a", "b", "a"} {
		ok, err := s.TryInsert(v)
		require.NoError(t, err)
		require.True(t, ok, "inserting %q", v)
	}
	assert.Equal(t, []string{"a", "b", "a"}, contents(s))
}

func TestEmptyRejected(t *testing.T) {
	s := New(DefaultCapacity)
	_, _ = s.TryInsert("keep")

	ok, err := s.TryInsert("")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, ok)
	assert.Equal(t, []string{"keep"}, contents(s))
}

func TestScenarioCaptureDuplicateClear(t *testing.T) {
	s := New(DefaultCapacity, WithClock(tick()))

	_, _ = s.TryInsert("a")
	a, err := s.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", a.Content)

	_, _ = s.TryInsert("a")
	assert.Equal(t, 1, s.Len())

	_, _ = s.TryInsert("b")
	require.Equal(t, 2, s.Len())
	b, _ := s.Get(0)
	older, _ := s.Get(1)
	assert.Equal(t, "b", b.Content)
	assert.Equal(t, a, older)
	assert.True(t, b.CapturedAt.After(a.CapturedAt))

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Entries())
}

func TestEvictsOldest(t *testing.T) {
	s := New(DefaultCapacity)
	for i := 0; i <= DefaultCapacity; i++ {
		_, err := s.TryInsert(fmt.Sprintf("s%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, DefaultCapacity, s.Len())
	assert.Equal(t, []string{"s10", "s9", "s8", "s7", "s6", "s5", "s4", "s3", "s2", "s1"}, contents(s))
	assert.NotContains(t, contents(s), "s0")
}

func TestRingWrapsRepeatedly(t *testing.T) {
	s := New(3)
	for i := 0; i < 20; i++ {
		_, _ = s.TryInsert(fmt.Sprintf("v%d", i))
		want := []string{}
		for j := i; j >= 0 && j > i-3; j-- {
			want = append(want, fmt.Sprintf("v%d", j))
		}
		require.Equal(t, want, contents(s), "after v%d", i)
	}
}

func TestGetOutOfRange(t *testing.T) {
	s := New(DefaultCapacity)
	_, _ = s.TryInsert("only")

	for _, i := range []int{-1, 1, 5} {
		_, err := s.Get(i)
		assert.ErrorIs(t, err, ErrNotFound, "index %d", i)
	}
}

func TestClearIdempotent(t *testing.T) {
	s := New(DefaultCapacity)
	s.Clear()
	_, err := s.Get(0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _ = s.TryInsert("a")
	_, _ = s.TryInsert("b")
	s.Clear()
	s.Clear()
	_, err = s.Get(0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := s.Head()
	assert.False(t, ok)

	// A cleared store starts over cleanly, including duplicate suppression.
	ok, err = s.TryInsert("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, contents(s))
}

func TestNewDefaultsCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).Cap())
	assert.Equal(t, 4, New(4).Cap())
}

func TestTimestampLayout(t *testing.T) {
	e := Entry{Content: "x", CapturedAt: time.Date(2026, 3, 7, 8, 5, 9, 0, time.Local)}
	assert.Equal(t, "07-03-2026 08:05:09", e.Timestamp())
}
