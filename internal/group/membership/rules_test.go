package membership

import (
	"errors"
	"testing"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestNewRosterSeedsCreator(t *testing.T) {
	r := NewRoster(1, []int64{2, 3}, nil)

	if !r.CanView(1) {
		t.Error("creator should always be a member")
	}
	if !r.CanAdminister(1) {
		t.Error("creator should always be an admin")
	}
}

func TestNewRosterKeepsExistingCreator(t *testing.T) {
	r := NewRoster(1, []int64{1, 2}, []int64{1})

	count := 0
	for _, id := range r.Members {
		if id == 1 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("creator should appear once in members, got %d times", count)
	}
}

func TestCanView(t *testing.T) {
	r := NewRoster(1, []int64{1, 2, 3}, []int64{1})

	if !r.CanView(2) {
		t.Error("member should be able to view")
	}
	if r.CanView(4) {
		t.Error("non-member should not be able to view")
	}
}

func TestCanAdminister(t *testing.T) {
	r := NewRoster(1, []int64{1, 2, 3}, []int64{1, 2})

	if !r.CanAdminister(2) {
		t.Error("admin should be able to administer")
	}
	if r.CanAdminister(3) {
		t.Error("plain member should not be able to administer")
	}
	if r.CanAdminister(4) {
		t.Error("non-member should not be able to administer")
	}
}

func TestMessagePredicatesMatchViewing(t *testing.T) {
	r := NewRoster(1, []int64{1, 2}, []int64{1})

	for _, id := range []int64{1, 2, 3} {
		if r.CanPostMessage(id) != r.CanView(id) {
			t.Errorf("CanPostMessage(%d) should equal CanView(%d)", id, id)
		}
		if r.CanReadMessages(id) != r.CanView(id) {
			t.Errorf("CanReadMessages(%d) should equal CanView(%d)", id, id)
		}
	}
}

func TestCanRemoveMemberAsAdmin(t *testing.T) {
	r := NewRoster(1, []int64{1, 2, 3}, []int64{1})

	if err := r.CanRemoveMember(1, 2); err != nil {
		t.Errorf("admin should be able to remove a member, got %v", err)
	}
}

func TestCanRemoveMemberSelfLeave(t *testing.T) {
	// Group created by 1 with members {1, 2}; 2 leaves on their own.
	r := NewRoster(1, []int64{1, 2}, []int64{1})

	if err := r.CanRemoveMember(2, 2); err != nil {
		t.Errorf("non-admin member should be able to remove themself, got %v", err)
	}
}

func TestCanRemoveMemberNonAdmin(t *testing.T) {
	r := NewRoster(1, []int64{1, 2, 3}, []int64{1})

	err := r.CanRemoveMember(2, 3)
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("non-admin removing another member should fail, got %v", err)
	}
}

func TestCanRemoveMemberCreator(t *testing.T) {
	r := NewRoster(1, []int64{1, 2}, []int64{1, 2})

	if err := r.CanRemoveMember(2, 1); !errors.Is(err, ErrCreatorImmutable) {
		t.Errorf("removing the creator should fail, got %v", err)
	}
	if err := r.CanRemoveMember(1, 1); !errors.Is(err, ErrCreatorImmutable) {
		t.Errorf("creator self-leave should fail, got %v", err)
	}
}

func TestCanMutateTodoPersonal(t *testing.T) {
	scope := TodoScope{UserID: int64Ptr(7), CreatedBy: 7}

	if !CanMutateTodo(scope, nil, 7) {
		t.Error("owner should be able to mutate their personal todo")
	}
	if CanMutateTodo(scope, nil, 8) {
		t.Error("other users should not be able to mutate a personal todo")
	}
}

func TestCanMutateTodoGroup(t *testing.T) {
	r := NewRoster(1, []int64{1, 2}, []int64{1})
	scope := TodoScope{GroupID: int64Ptr(10), CreatedBy: 1}

	if !CanMutateTodo(scope, &r, 2) {
		t.Error("group member should be able to mutate a group todo")
	}
	if CanMutateTodo(scope, &r, 3) {
		t.Error("non-member should not be able to mutate a group todo")
	}
	if CanMutateTodo(scope, nil, 2) {
		t.Error("group todo without a roster should never be mutable")
	}
}

func TestCanDeleteTodoPersonal(t *testing.T) {
	scope := TodoScope{UserID: int64Ptr(7), CreatedBy: 7}

	if !CanDeleteTodo(scope, nil, 7) {
		t.Error("owner should be able to delete their personal todo")
	}
	if CanDeleteTodo(scope, nil, 8) {
		t.Error("other users should not be able to delete a personal todo")
	}
}

func TestCanDeleteTodoGroup(t *testing.T) {
	// Group created by 1, members {1, 2, 3}, todo created by 2.
	r := NewRoster(1, []int64{1, 2, 3}, []int64{1})
	scope := TodoScope{GroupID: int64Ptr(10), CreatedBy: 2}

	if !CanDeleteTodo(scope, &r, 1) {
		t.Error("admin should be able to delete a group todo")
	}
	if !CanDeleteTodo(scope, &r, 2) {
		t.Error("todo creator should be able to delete their group todo")
	}
	if CanDeleteTodo(scope, &r, 3) {
		t.Error("plain member who is not the creator should not be able to delete")
	}
}

func TestTodoScopePersonal(t *testing.T) {
	personal := TodoScope{UserID: int64Ptr(1)}
	shared := TodoScope{GroupID: int64Ptr(2)}

	if !personal.Personal() {
		t.Error("user-scoped todo should be personal")
	}
	if shared.Personal() {
		t.Error("group-scoped todo should not be personal")
	}
}
