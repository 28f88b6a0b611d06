package todo

import (
	"context"
	"errors"

	"github.com/reimoyisuki/ToDoList/internal/group"
	"github.com/reimoyisuki/ToDoList/internal/group/membership"
	"github.com/reimoyisuki/ToDoList/internal/user"
)

// Common errors
var (
	ErrTodoNotFound    = errors.New("todo not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrEmptyContent    = errors.New("content must not be empty")
	ErrInvalidSeverity = errors.New("severity must be 1, 2 or 3")
	ErrInvalidStatus   = errors.New("status must be todo, ongoing or finished")
	ErrInvalidScope    = errors.New("exactly one of user_id or group_id must be set")
	ErrNotAuthorized   = errors.New("not authorized to act on this todo")
)

// Service handles todo business logic. Group-scoped authorization is
// decided by the membership rules over the todo's group roster.
type Service struct {
	repo   *Repository
	groups *group.Repository
	users  *user.Repository
}

// NewService creates a new todo service
func NewService(repo *Repository, groups *group.Repository, users *user.Repository) *Service {
	return &Service{repo: repo, groups: groups, users: users}
}

// rosterFor loads the roster of a group-scoped todo; nil for personal scopes
func (s *Service) rosterFor(ctx context.Context, todo *Todo) (*membership.Roster, error) {
	if todo.Personal() {
		return nil, nil
	}
	g, err := s.groups.GetByID(ctx, *todo.GroupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	roster := g.Roster()
	return &roster, nil
}

// Create creates a todo. Personal todos must belong to the creator and are
// added to the owner's todo set; group todos require the creator to be a
// member of the target group.
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateTodoRequest) (*Todo, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.GroupID != nil {
		g, err := s.groups.GetByID(ctx, *req.GroupID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrGroupNotFound
		}
		if !g.Roster().CanView(creatorID) {
			return nil, ErrNotAuthorized
		}
	} else if *req.UserID != creatorID {
		return nil, ErrNotAuthorized
	}

	todo, err := s.repo.Create(ctx, req.UserID, req.GroupID, req.Content, *req.Severity, creatorID)
	if err != nil {
		return nil, err
	}

	if todo.Personal() {
		if err := s.users.AddTodoRef(ctx, *todo.UserID, todo.ID); err != nil {
			return nil, err
		}
	}

	return todo, nil
}

// ListForUser retrieves a user's personal todos
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*Todo, error) {
	return s.repo.ListForUser(ctx, userID)
}

// ListForGroup retrieves a group's todos; members only
func (s *Service) ListForGroup(ctx context.Context, groupID, requesterID int64) ([]*Todo, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	if !g.Roster().CanView(requesterID) {
		return nil, ErrNotAuthorized
	}

	return s.repo.ListForGroup(ctx, groupID)
}

// Update modifies a todo on behalf of the actor, recording them as the last
// updater. Personal todos are editable by their owner; group todos by any
// current member.
func (s *Service) Update(ctx context.Context, id, actorID int64, req *UpdateTodoRequest) (*Todo, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}

	roster, err := s.rosterFor(ctx, todo)
	if err != nil {
		return nil, err
	}
	if !membership.CanMutateTodo(todo.Scope(), roster, actorID) {
		return nil, ErrNotAuthorized
	}

	updated, err := s.repo.Update(ctx, id, req, actorID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTodoNotFound
	}

	return updated, nil
}

// Delete removes a todo. Personal todos are deletable by their owner, whose
// todo set is updated; group todos by a group admin or the todo's creator.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if todo == nil {
		return ErrTodoNotFound
	}

	roster, err := s.rosterFor(ctx, todo)
	if err != nil {
		return err
	}
	if !membership.CanDeleteTodo(todo.Scope(), roster, actorID) {
		return ErrNotAuthorized
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if todo.Personal() {
		return s.users.RemoveTodoRef(ctx, *todo.UserID, todo.ID)
	}

	return nil
}
