package message

import (
	"context"
	"errors"
	"strings"

	"github.com/reimoyisuki/ToDoList/internal/group"
)

// Default window sizes for reads
const (
	DefaultRecentLimit = 50
	DefaultTopSenders  = 10
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNotMember     = errors.New("you are not a member of this group")
	ErrEmptyContent  = errors.New("message content must not be empty")
	ErrChatDisabled  = errors.New("chat is disabled for this group")
)

// Service handles message business logic. Every operation resolves the
// target group's roster first and applies the membership rules before
// touching the ledger.
type Service struct {
	repo   *Repository
	groups *group.Repository
}

// NewService creates a new message service
func NewService(repo *Repository, groups *group.Repository) *Service {
	return &Service{repo: repo, groups: groups}
}

func (s *Service) loadGroup(ctx context.Context, groupID int64) (*group.Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// Send posts a message to a group on behalf of a current member. The sender
// starts as the only reader.
func (s *Service) Send(ctx context.Context, senderID int64, req *SendMessageRequest) (*Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	g, err := s.loadGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if !g.Roster().CanPostMessage(senderID) {
		return nil, ErrNotMember
	}
	if !g.ChatEnabled {
		return nil, ErrChatDisabled
	}

	return s.repo.Create(ctx, req.GroupID, senderID, req.Content)
}

// Recent returns the most recent messages of a group in chronological
// order: the newest-first window is fetched bounded by limit, then reversed
func (s *Service) Recent(ctx context.Context, groupID, requesterID int64, limit int) ([]*Message, error) {
	if limit < 1 {
		limit = DefaultRecentLimit
	}

	g, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !g.Roster().CanReadMessages(requesterID) {
		return nil, ErrNotMember
	}

	messages, err := s.repo.Recent(ctx, groupID, limit)
	if err != nil {
		return nil, err
	}

	reverseChronological(messages)
	return messages, nil
}

// MostActiveSenders returns the group's senders ordered by message count
func (s *Service) MostActiveSenders(ctx context.Context, groupID, requesterID int64, topN int) ([]*SenderActivity, error) {
	if topN < 1 {
		topN = DefaultTopSenders
	}

	g, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !g.Roster().CanReadMessages(requesterID) {
		return nil, ErrNotMember
	}

	return s.repo.MostActiveSenders(ctx, groupID, topN)
}

// MarkRead records the requester as having read the group's messages
func (s *Service) MarkRead(ctx context.Context, groupID, requesterID int64) error {
	g, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !g.Roster().CanReadMessages(requesterID) {
		return ErrNotMember
	}

	return s.repo.MarkRead(ctx, groupID, requesterID)
}

// reverseChronological flips a newest-first window into oldest-first order
func reverseChronological(messages []*Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
