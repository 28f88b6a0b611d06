package message

import (
	"testing"
	"time"
)

func TestReverseChronological(t *testing.T) {
	// Newest-first window as fetched from storage: m5, m4.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := []*Message{
		{ID: 5, CreatedAt: base.Add(5 * time.Minute)},
		{ID: 4, CreatedAt: base.Add(4 * time.Minute)},
	}

	reverseChronological(window)

	if window[0].ID != 4 || window[1].ID != 5 {
		t.Errorf("expected [4 5], got [%d %d]", window[0].ID, window[1].ID)
	}
	if window[0].CreatedAt.After(window[1].CreatedAt) {
		t.Error("messages should be in chronological order after reversal")
	}
}

func TestReverseChronologicalOdd(t *testing.T) {
	window := []*Message{{ID: 3}, {ID: 2}, {ID: 1}}

	reverseChronological(window)

	for i, want := range []int64{1, 2, 3} {
		if window[i].ID != want {
			t.Errorf("position %d: expected %d, got %d", i, want, window[i].ID)
		}
	}
}

func TestReverseChronologicalEmpty(t *testing.T) {
	reverseChronological(nil)
	reverseChronological([]*Message{{ID: 1}})
}
