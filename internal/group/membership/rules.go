package membership

import "errors"

var (
	ErrNotAuthorized    = errors.New("not authorized to perform this action")
	ErrCreatorImmutable = errors.New("the group creator cannot be removed")
)

// Roster is the membership state of a single group, loaded from storage.
// All predicates operate on it without side effects.
type Roster struct {
	CreatedBy int64
	Members   []int64
	Admins    []int64
}

// NewRoster builds a roster, seeding the creator into both the member and
// admin sets. The creator-is-always-admin invariant is enforced here rather
// than assumed of the inputs.
func NewRoster(createdBy int64, members, admins []int64) Roster {
	r := Roster{
		CreatedBy: createdBy,
		Members:   members,
		Admins:    admins,
	}
	if !contains(r.Members, createdBy) {
		r.Members = append(r.Members, createdBy)
	}
	if !contains(r.Admins, createdBy) {
		r.Admins = append(r.Admins, createdBy)
	}
	return r
}

// CanView reports whether the user may see the group and its resources
func (r Roster) CanView(userID int64) bool {
	return contains(r.Members, userID)
}

// CanAdminister reports whether the user may mutate the group's membership
func (r Roster) CanAdminister(userID int64) bool {
	return contains(r.Admins, userID)
}

// CanPostMessage reports whether the user may post to the group's chat
func (r Roster) CanPostMessage(userID int64) bool {
	return r.CanView(userID)
}

// CanReadMessages reports whether the user may read the group's chat
func (r Roster) CanReadMessages(userID int64) bool {
	return r.CanView(userID)
}

// CanRemoveMember decides a removal request. Admins may remove any member,
// and a non-admin member may remove exactly themself (the leave-group path).
// The creator is never removable, which also keeps the group from ever
// losing its last admin.
func (r Roster) CanRemoveMember(actorID, memberID int64) error {
	if memberID == r.CreatedBy {
		return ErrCreatorImmutable
	}
	if actorID == memberID && contains(r.Members, actorID) {
		return nil
	}
	if !r.CanAdminister(actorID) {
		return ErrNotAuthorized
	}
	return nil
}

// TodoScope identifies who a todo belongs to: exactly one of UserID (personal)
// or GroupID (shared) is set.
type TodoScope struct {
	UserID    *int64
	GroupID   *int64
	CreatedBy int64
}

// Personal reports whether the scope is a single user's rather than a group's
func (s TodoScope) Personal() bool {
	return s.GroupID == nil
}

// CanMutateTodo reports whether the user may edit a todo's content, severity
// or status. Personal todos are editable by their owner only; group todos by
// any current member. The roster may be nil for personal scopes.
func CanMutateTodo(scope TodoScope, roster *Roster, userID int64) bool {
	if scope.Personal() {
		return scope.UserID != nil && *scope.UserID == userID
	}
	return roster != nil && roster.CanView(userID)
}

// CanDeleteTodo reports whether the user may delete a todo. Personal todos
// are deletable by their owner only; group todos by a group admin or by
// whoever created the todo.
func CanDeleteTodo(scope TodoScope, roster *Roster, userID int64) bool {
	if scope.Personal() {
		return scope.UserID != nil && *scope.UserID == userID
	}
	if roster == nil {
		return false
	}
	return roster.CanAdminister(userID) || scope.CreatedBy == userID
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
