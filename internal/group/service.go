package group

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reimoyisuki/ToDoList/internal/group/membership"
	"github.com/reimoyisuki/ToDoList/internal/user"
)

// Common errors
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrEmptyName      = errors.New("group name must not be empty")
	ErrMemberNotFound = errors.New("user not found")
	ErrNotMember      = errors.New("you are not a member of this group")
	ErrNotAdmin       = errors.New("only admins can manage members")
)

// Service handles group business logic
type Service struct {
	repo  *Repository
	users *user.Repository
}

// NewService creates a new group service
func NewService(repo *Repository, users *user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// Create creates a new group with the creator seeded as member and admin.
// Every username in the request must resolve to an existing user.
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	memberIDs := []int64{creatorID}
	for _, username := range req.MemberUsernames {
		u, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, username)
		}
		memberIDs = append(memberIDs, u.ID)
	}

	return s.repo.Create(ctx, name, req.Description, creatorID, uniqueIDs(memberIDs))
}

// GetDetails retrieves a group with resolved member and admin usernames.
// Only current members may view a group.
func (s *Service) GetDetails(ctx context.Context, groupID, requesterID int64) (*GroupResponse, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	if !group.Roster().CanView(requesterID) {
		return nil, ErrNotMember
	}

	resp := group.ToResponse()
	if resp.MemberList, err = s.repo.GetMemberDetails(ctx, group.Members); err != nil {
		return nil, err
	}
	if resp.AdminList, err = s.repo.GetMemberDetails(ctx, group.Admins); err != nil {
		return nil, err
	}

	return resp, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// ListForMember retrieves all groups the user belongs to
func (s *Service) ListForMember(ctx context.Context, userID int64) ([]*Group, error) {
	return s.repo.ListForMember(ctx, userID)
}

// AddMembers adds users to a group by username. Only admins may add members.
// Each username is handled independently: an unknown name or an existing
// member is reported in its result without aborting the rest of the batch.
func (s *Service) AddMembers(ctx context.Context, groupID, actorID int64, usernames []string) ([]*MemberResult, *Group, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}

	roster := group.Roster()
	if !roster.CanAdminister(actorID) {
		return nil, nil, ErrNotAdmin
	}

	results := make([]*MemberResult, 0, len(usernames))
	for _, username := range usernames {
		u, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, nil, err
		}

		result, add := planAddition(&roster, username, u)
		if add {
			if err := s.repo.AddMember(ctx, groupID, u.ID); err != nil {
				result = &MemberResult{
					Username: username,
					Status:   MemberResultFailed,
					Message:  err.Error(),
				}
			} else {
				// Keep the in-memory roster current so a duplicate username
				// later in the same batch is skipped, not re-added.
				roster.Members = append(roster.Members, u.ID)
			}
		}
		results = append(results, result)
	}

	refreshed, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	return results, refreshed, nil
}

// RemoveMember removes a user from a group. Admins may remove anyone but the
// creator; a non-admin member may remove only themself (leave the group).
func (s *Service) RemoveMember(ctx context.Context, groupID, actorID, memberID int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	roster := group.Roster()
	if err := roster.CanRemoveMember(actorID, memberID); err != nil {
		return nil, err
	}
	if !roster.CanView(memberID) {
		return nil, ErrMemberNotFound
	}

	if err := s.repo.RemoveMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, groupID)
}

// Reconcile sweeps both sides of the membership relation and repairs any
// divergence: a reference present on either side is restored on the other,
// and references to rows that no longer exist are dropped. Returns the
// number of repairs applied.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	groups, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, err
	}

	usersByID := make(map[int64]*user.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	groupsByID := make(map[int64]*Group, len(groups))
	for _, g := range groups {
		groupsByID[g.ID] = g
	}

	repaired := 0

	for _, g := range groups {
		for _, memberID := range g.Members {
			u, ok := usersByID[memberID]
			if !ok {
				if err := s.repo.RemoveMemberRef(ctx, g.ID, memberID); err != nil {
					return repaired, err
				}
				repaired++
				continue
			}
			if !containsID(u.Groups, g.ID) {
				if err := s.users.AddGroupRef(ctx, u.ID, g.ID); err != nil {
					return repaired, err
				}
				repaired++
			}
		}
	}

	for _, u := range users {
		for _, groupID := range u.Groups {
			g, ok := groupsByID[groupID]
			if !ok {
				if err := s.users.RemoveGroupRef(ctx, u.ID, groupID); err != nil {
					return repaired, err
				}
				repaired++
				continue
			}
			if !containsID(g.Members, u.ID) {
				if err := s.repo.AddMemberRef(ctx, g.ID, u.ID); err != nil {
					return repaired, err
				}
				repaired++
			}
		}
	}

	return repaired, nil
}

// planAddition decides the outcome for one username in a batch addition:
// an unresolved name fails, a current member is skipped, anyone else should
// be written to the group. The boolean reports whether to perform the write.
func planAddition(roster *membership.Roster, username string, u *user.User) (*MemberResult, bool) {
	if u == nil {
		return &MemberResult{
			Username: username,
			Status:   MemberResultFailed,
			Message:  "user not found",
		}, false
	}
	if roster.CanView(u.ID) {
		return &MemberResult{
			Username: username,
			Status:   MemberResultSkipped,
			Message:  "already a member",
		}, false
	}
	return &MemberResult{Username: username, Status: MemberResultSuccess}, true
}

// uniqueIDs returns ids with duplicates removed, order preserved
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
