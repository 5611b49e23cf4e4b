package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace-backend/models"
)

// ServiceRepository defines catalog listing access. Reads return errors
// verbatim; falling back to the bundled sample dataset is the caller's
// policy, not this layer's.
type ServiceRepository interface {
	Find(ctx context.Context, filter models.ServiceFilter) ([]models.Service, int64, error)
	FindByID(ctx context.Context, id string) (*models.Service, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Service, error)
	Create(ctx context.Context, svc *models.Service) error
	Update(ctx context.Context, svc *models.Service) error
	SoftDelete(ctx context.Context, id string) error
}

type MongoServiceRepository struct {
	collection *mongo.Collection
}

func NewMongoServiceRepository(db *mongo.Database) *MongoServiceRepository {
	return &MongoServiceRepository{collection: db.Collection("services")}
}

func (r *MongoServiceRepository) buildFilter(f models.ServiceFilter) bson.M {
	filter := bson.M{"deleted_at": bson.M{"$exists": false}}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.DeveloperID != "" {
		filter["developer_id"] = f.DeveloperID
	}
	if f.Query != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: f.Query, Options: "i"}}
	}
	return filter
}

// Find retrieves paginated listings with soft-delete filtering.
func (r *MongoServiceRepository) Find(ctx context.Context, f models.ServiceFilter) ([]models.Service, int64, error) {
	filter := r.buildFilter(f)

	skip := (f.Page - 1) * f.PerPage
	findOptions := options.Find().
		SetLimit(int64(f.PerPage)).
		SetSkip(int64(skip)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *MongoServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	filter := bson.M{"_id": id, "deleted_at": bson.M{"$exists": false}}
	if err := r.collection.FindOne(ctx, filter).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *MongoServiceRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}, "deleted_at": bson.M{"$exists": false}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *MongoServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, svc)
	return err
}

func (r *MongoServiceRepository) Update(ctx context.Context, svc *models.Service) error {
	svc.UpdatedAt = time.Now()
	filter := bson.M{"_id": svc.ID, "deleted_at": bson.M{"$exists": false}}
	res, err := r.collection.ReplaceOne(ctx, filter, svc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SoftDelete hides the listing from all reads without destroying the record.
func (r *MongoServiceRepository) SoftDelete(ctx context.Context, id string) error {
	filter := bson.M{"_id": id, "deleted_at": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"deleted_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
