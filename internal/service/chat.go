package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/repo"
)

// maxChatTextLen caps a single chat message.
const maxChatTextLen = 1000

// ChatService implements the per-schedule chat: sending is gated on CHAT or
// ALL permission, reading on plain attendance. Note the permission asymmetry:
// an EDIT-only attendee can rearrange the route but cannot chat.
type ChatService struct {
	schedules repo.ScheduleRepo
	attendees repo.AttendeeRepo
	members   repo.MemberRepo
	chats     repo.ChatRepo
}

// NewChatService constructs a ChatService backed by the provided repos.
func NewChatService(schedules repo.ScheduleRepo, attendees repo.AttendeeRepo, members repo.MemberRepo, chats repo.ChatRepo) *ChatService {
	return &ChatService{schedules: schedules, attendees: attendees, members: members, chats: chats}
}

// Send appends a message to the schedule's chat history, stamping it with
// the sender's current nickname.
//
// Returns domain.ErrNotFound when the schedule does not exist,
// domain.ErrAccessDenied when the sender does not attend it,
// domain.ErrChatDenied without CHAT/ALL permission, and
// domain.ErrValidation for empty or oversized text.
func (s *ChatService) Send(ctx context.Context, scheduleID, memberID uuid.UUID, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, fmt.Errorf("%w: message text is required", domain.ErrValidation)
	}
	if len([]rune(text)) > maxChatTextLen {
		return domain.ChatMessage{}, fmt.Errorf("%w: message text exceeds %d characters", domain.ErrValidation, maxChatTextLen)
	}

	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("service.ChatService.Send: %w", err)
	}

	att, err := s.attendees.GetByScheduleAndMember(ctx, scheduleID, memberID)
	if err != nil {
		if isNotFound(err) {
			return domain.ChatMessage{}, fmt.Errorf("service.ChatService.Send: %w", domain.ErrAccessDenied)
		}
		return domain.ChatMessage{}, fmt.Errorf("service.ChatService.Send: %w", err)
	}
	if !att.Permission.CanChat() {
		return domain.ChatMessage{}, fmt.Errorf("service.ChatService.Send: %w", domain.ErrChatDenied)
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("service.ChatService.Send: member: %w", err)
	}

	msg, err := s.chats.Insert(ctx, domain.ChatMessage{
		ScheduleID: scheduleID,
		MemberID:   memberID,
		Nickname:   member.Nickname,
		Text:       text,
	})
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("service.ChatService.Send: %w", err)
	}
	return msg, nil
}

// List returns one page of the schedule's chat history, newest first. Any
// attendee may read, regardless of permission grade.
// Returns domain.ErrNotFound when the schedule does not exist and
// domain.ErrAccessDenied when the requester does not attend it.
func (s *ChatService) List(ctx context.Context, scheduleID, memberID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.ChatMessage], error) {
	if _, err := s.schedules.GetByID(ctx, scheduleID); err != nil {
		return domain.Page[domain.ChatMessage]{}, fmt.Errorf("service.ChatService.List: %w", err)
	}

	if _, err := s.attendees.GetByScheduleAndMember(ctx, scheduleID, memberID); err != nil {
		if isNotFound(err) {
			return domain.Page[domain.ChatMessage]{}, fmt.Errorf("service.ChatService.List: %w", domain.ErrAccessDenied)
		}
		return domain.Page[domain.ChatMessage]{}, fmt.Errorf("service.ChatService.List: %w", err)
	}

	msgs, total, err := s.chats.ListBySchedule(ctx, scheduleID, p)
	if err != nil {
		return domain.Page[domain.ChatMessage]{}, fmt.Errorf("service.ChatService.List: %w", err)
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return domain.Page[domain.ChatMessage]{Content: msgs, TotalElements: total}, nil
}
