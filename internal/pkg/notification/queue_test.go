package notification

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterIDs struct{ n int }

func (c *counterIDs) NewID() string {
	c.n++
	return fmt.Sprintf("n-%d", c.n)
}

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestQueue(now *time.Time) *Queue {
	return NewQueue(&counterIDs{}, WithClock(func() time.Time { return *now }))
}

func TestQueue_PushPrepends(t *testing.T) {
	now := epoch
	q := newTestQueue(&now)

	first := q.Push(KindInfo, "First", "one")
	second := q.Push(KindSuccess, "Second", "two")

	list := q.List()
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0])
	assert.Equal(t, first, list[1])
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, epoch, second.Timestamp)
}

func TestQueue_DismissRemovesOnlyOne(t *testing.T) {
	now := epoch
	q := newTestQueue(&now)
	a := q.Push(KindInfo, "A", "")
	b := q.Push(KindInfo, "B", "")
	c := q.Push(KindInfo, "C", "")

	assert.True(t, q.Dismiss(b.ID))
	assert.Equal(t, []Notification{c, a}, q.List())

	assert.False(t, q.Dismiss("missing"))
	assert.Equal(t, 2, q.Len())
}

func TestQueue_ClearAll(t *testing.T) {
	for _, size := range []int{0, 1, 25} {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			now := epoch
			q := newTestQueue(&now)
			for i := 0; i < size; i++ {
				q.Push(KindWarning, "w", "")
			}

			q.ClearAll()

			assert.Empty(t, q.List())
		})
	}
}

func TestQueue_Toast(t *testing.T) {
	now := epoch
	q := newTestQueue(&now)

	_, ok := q.Toast(now)
	assert.False(t, ok, "empty queue has no toast")

	pushed := q.Push(KindSuccess, "Note Uploaded", "saved")

	toast, ok := q.Toast(epoch.Add(3 * time.Second))
	require.True(t, ok)
	assert.Equal(t, pushed, toast)

	_, ok = q.Toast(epoch.Add(DefaultToastTTL))
	assert.False(t, ok)
	assert.Len(t, q.List(), 1, "expired toast stays browsable")
}

func TestQueue_WithTTL(t *testing.T) {
	now := epoch
	q := NewQueue(&counterIDs{}, WithClock(func() time.Time { return now }), WithTTL(time.Second))
	q.Push(KindInfo, "x", "")

	_, ok := q.Toast(epoch.Add(1500 * time.Millisecond))
	assert.False(t, ok)
	assert.Equal(t, time.Second, q.TTL())

	assert.Equal(t, DefaultToastTTL, NewQueue(&counterIDs{}, WithTTL(0)).TTL())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw     string
		want    Kind
		wantErr bool
	}{
		{raw: "success", want: KindSuccess},
		{raw: " Error ", want: KindError},
		{raw: "info", want: KindInfo},
		{raw: "WARNING", want: KindWarning},
		{raw: "debug", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseKind(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
