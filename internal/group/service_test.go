package group

import (
	"testing"

	"github.com/reimoyisuki/ToDoList/internal/user"
)

func TestUniqueIDs(t *testing.T) {
	got := uniqueIDs([]int64{1, 2, 2, 3, 1})

	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestUniqueIDsEmpty(t *testing.T) {
	if got := uniqueIDs(nil); len(got) != 0 {
		t.Errorf("expected no ids, got %v", got)
	}
}

func TestPlanAdditionMixedOutcomes(t *testing.T) {
	g := &Group{ID: 1, CreatedBy: 7, Members: []int64{7}, Admins: []int64{7}}
	roster := g.Roster()

	valid, add := planAddition(&roster, "alice", &user.User{ID: 8, Username: "alice"})
	if valid.Status != MemberResultSuccess || !add {
		t.Errorf("expected a resolvable non-member to succeed, got %s", valid.Status)
	}

	unknown, add := planAddition(&roster, "ghost", nil)
	if unknown.Status != MemberResultFailed || add {
		t.Errorf("expected an unknown username to fail, got %s", unknown.Status)
	}
	if unknown.Message != "user not found" {
		t.Errorf("expected a not-found message, got %q", unknown.Message)
	}

	existing, add := planAddition(&roster, "creator", &user.User{ID: 7, Username: "creator"})
	if existing.Status != MemberResultSkipped || add {
		t.Errorf("expected a current member to be skipped, got %s", existing.Status)
	}
}

func TestPlanAdditionDuplicateInBatch(t *testing.T) {
	g := &Group{ID: 1, CreatedBy: 7, Members: []int64{7}, Admins: []int64{7}}
	roster := g.Roster()
	alice := &user.User{ID: 8, Username: "alice"}

	first, add := planAddition(&roster, "alice", alice)
	if first.Status != MemberResultSuccess || !add {
		t.Fatalf("expected the first occurrence to succeed, got %s", first.Status)
	}
	roster.Members = append(roster.Members, alice.ID)

	second, add := planAddition(&roster, "alice", alice)
	if second.Status != MemberResultSkipped || add {
		t.Errorf("expected the duplicate occurrence to be skipped, got %s", second.Status)
	}
}

func TestGroupRosterSeedsCreator(t *testing.T) {
	g := &Group{ID: 1, CreatedBy: 7, Members: []int64{8, 9}, Admins: nil}

	roster := g.Roster()

	if !roster.CanView(7) {
		t.Error("creator should be a member of their group's roster")
	}
	if !roster.CanAdminister(7) {
		t.Error("creator should be an admin of their group's roster")
	}
	if !roster.CanView(8) || !roster.CanView(9) {
		t.Error("listed members should remain in the roster")
	}
}
