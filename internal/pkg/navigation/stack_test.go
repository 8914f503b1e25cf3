package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_PushThenBack(t *testing.T) {
	s := New(Home)

	s.Push("notes")
	assert.Equal(t, "notes", s.Current())
	assert.Equal(t, "home", s.Previous())
	assert.Equal(t, []string{"home", "notes"}, s.History())
	assert.True(t, s.CanGoBack())

	assert.True(t, s.Back())
	assert.Equal(t, "home", s.Current())
	assert.Equal(t, []string{"home"}, s.History())
	assert.False(t, s.CanGoBack())
}

func TestStack_BackAtBottomIsNoop(t *testing.T) {
	s := New("")

	assert.False(t, s.Back())
	assert.Equal(t, Home, s.Current())
	assert.Equal(t, "", s.Previous())
}

func TestStack_NoDedup(t *testing.T) {
	s := New(Home)
	s.Push("notes")
	s.Push("notes")

	assert.Equal(t, []string{"home", "notes", "notes"}, s.History())
	s.Back()
	assert.Equal(t, "notes", s.Current())
}

func TestStack_HistoryIsACopy(t *testing.T) {
	s := New(Home)
	h := s.History()
	h[0] = "mutated"

	assert.Equal(t, Home, s.Current())
}

func TestStack_SnapshotAndReset(t *testing.T) {
	s := New(Home)
	s.Push("communities")

	assert.Equal(t, Snapshot{
		Current:   "communities",
		Previous:  "home",
		CanGoBack: true,
		History:   []string{"home", "communities"},
	}, s.Snapshot())

	s.Reset(Home)
	assert.Equal(t, []string{"home"}, s.History())
}
