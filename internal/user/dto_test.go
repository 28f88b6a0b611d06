package user

import (
	"testing"
	"time"
)

func TestUserResponseTimestampsUTC(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	u := &User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		LastActiveAt: time.Date(2026, 8, 31, 15, 30, 0, 0, zone),
		CreatedAt:    time.Date(2026, 8, 31, 12, 0, 0, 0, zone),
	}

	resp := u.ToResponse()

	if resp.LastActiveAt != "2026-08-31T12:30:00Z" {
		t.Errorf("expected last_active_at in UTC, got %s", resp.LastActiveAt)
	}
	if resp.CreatedAt != "2026-08-31T09:00:00Z" {
		t.Errorf("expected created_at in UTC, got %s", resp.CreatedAt)
	}
}
