package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one message of a schedule's chat history. Messages live in
// the document store, not the relational schema; ID is the document store's
// hex object id. Nickname is a snapshot taken at send time so history stays
// readable after a member renames or leaves.
type ChatMessage struct {
	ID         string    `json:"id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	MemberID   uuid.UUID `json:"member_id"`
	Nickname   string    `json:"nickname"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
