package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/models"
)

// MessageRepository stores contact-form submissions.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	FindByRecipient(ctx context.Context, developerID string, page, perPage int) ([]models.Message, int64, error)
}

type MongoMessageRepository struct {
	collection *mongo.Collection
}

func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

func (r *MongoMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// FindByRecipient retrieves a developer's inbox newest-first with pagination.
func (r *MongoMessageRepository) FindByRecipient(ctx context.Context, developerID string, page, perPage int) ([]models.Message, int64, error) {
	filter := bson.M{"recipient_developer_id": developerID}

	skip := (page - 1) * perPage
	findOptions := options.Find().
		SetLimit(int64(perPage)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
