package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accounthub/account-system/internal/core/domain"
)

const auditCollection = "auth_events"

// MongoAuditRepository stores the append-only authentication audit trail.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	UserID  string    `bson:"user_id"`
	Action  string    `bson:"action"`
	TokenID string    `bson:"token_id,omitempty"`
	At      time.Time `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuthEvent) error {
	doc := mongoAuthEvent{
		UserID:  event.UserID,
		Action:  string(event.Action),
		TokenID: event.TokenID,
		At:      event.At,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func (r *MongoAuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.AuthEvent
	for cur.Next(ctx) {
		var me mongoAuthEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode auth event: %w", err)
		}
		events = append(events, domain.AuthEvent{
			UserID:  me.UserID,
			Action:  domain.AuthAction(me.Action),
			TokenID: me.TokenID,
			At:      me.At,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list auth events: %w", err)
	}
	return events, nil
}
