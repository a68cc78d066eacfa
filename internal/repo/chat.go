package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TripTune-Project/TripTune-Backend-sub001/internal/domain"
)

// ChatRepo defines the persistence operations for chat messages, which live
// in a document store rather than the relational schema. Deleting a schedule
// calls DeleteBySchedule out-of-band after the relational delete commits;
// that call is best-effort and may be retried by an external cleanup job.
type ChatRepo interface {
	// Insert appends a message to the schedule's history and returns it with
	// the store-generated id and timestamp populated.
	Insert(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)

	// ListBySchedule returns one page of a schedule's history, newest first,
	// plus the total message count.
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.ChatMessage, int64, error)

	// CountBySchedule returns the number of messages in a schedule's history.
	CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error)

	// DeleteBySchedule removes every message of the schedule.
	DeleteBySchedule(ctx context.Context, scheduleID uuid.UUID) error
}

// chatDoc is the BSON shape of one chat message document.
type chatDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ScheduleID string             `bson:"schedule_id"`
	MemberID   string             `bson:"member_id"`
	Nickname   string             `bson:"nickname"`
	Text       string             `bson:"text"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// mongoChatRepo is the MongoDB implementation of ChatRepo.
type mongoChatRepo struct {
	coll *mongo.Collection
}

// NewChatRepo constructs a ChatRepo over the "chat_messages" collection of
// the given database.
func NewChatRepo(database *mongo.Database) ChatRepo {
	return &mongoChatRepo{coll: database.Collection("chat_messages")}
}

func (r *mongoChatRepo) Insert(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	doc := chatDoc{
		ScheduleID: msg.ScheduleID.String(),
		MemberID:   msg.MemberID.String(),
		Nickname:   msg.Nickname,
		Text:       msg.Text,
		CreatedAt:  time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("repo.ChatRepo.Insert: %w", err)
	}

	msg.ID = res.InsertedID.(primitive.ObjectID).Hex()
	msg.CreatedAt = doc.CreatedAt
	return msg, nil
}

func (r *mongoChatRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID, p domain.PaginationParams) ([]domain.ChatMessage, int64, error) {
	filter := bson.M{"schedule_id": scheduleID.String()}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ChatRepo.ListBySchedule: count: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ChatRepo.ListBySchedule: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ChatMessage
	for cur.Next(ctx) {
		var doc chatDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("repo.ChatRepo.ListBySchedule: decode: %w", err)
		}
		msg, err := doc.toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("repo.ChatRepo.ListBySchedule: %w", err)
		}
		out = append(out, msg)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.ChatRepo.ListBySchedule: cursor: %w", err)
	}
	return out, total, nil
}

func (r *mongoChatRepo) CountBySchedule(ctx context.Context, scheduleID uuid.UUID) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"schedule_id": scheduleID.String()})
	if err != nil {
		return 0, fmt.Errorf("repo.ChatRepo.CountBySchedule: %w", err)
	}
	return n, nil
}

func (r *mongoChatRepo) DeleteBySchedule(ctx context.Context, scheduleID uuid.UUID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"schedule_id": scheduleID.String()})
	if err != nil {
		return fmt.Errorf("repo.ChatRepo.DeleteBySchedule: %w", err)
	}
	return nil
}

// toDomain converts a stored document back into a domain.ChatMessage.
func (d chatDoc) toDomain() (domain.ChatMessage, error) {
	scheduleID, err := uuid.Parse(d.ScheduleID)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("parse schedule_id: %w", err)
	}
	memberID, err := uuid.Parse(d.MemberID)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("parse member_id: %w", err)
	}
	return domain.ChatMessage{
		ID:         d.ID.Hex(),
		ScheduleID: scheduleID,
		MemberID:   memberID,
		Nickname:   d.Nickname,
		Text:       d.Text,
		CreatedAt:  d.CreatedAt,
	}, nil
}
