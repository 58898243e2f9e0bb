package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
)

const ResponsesCollection = "respuestas"

// ResponseRepository is the record store for survey responses.
type ResponseRepository interface {
	Insert(ctx context.Context, r *models.SurveyResponse) error
	// FindAll returns every record, oldest first. Never nil.
	FindAll(ctx context.Context) ([]models.SurveyResponse, error)
	// Each streams records oldest first and stops at the first error fn returns.
	Each(ctx context.Context, fn func(models.SurveyResponse) error) error
	DeleteAll(ctx context.Context) (int64, error)
}

type mongoResponseRepository struct {
	col *mongo.Collection
}

func NewResponseRepository(db *mongo.Database) ResponseRepository {
	return &mongoResponseRepository{col: db.Collection(ResponsesCollection)}
}

// EnsureResponseIndexes configures indexes for the respuestas collection.
// Called on startup from main after Mongo has connected.
func EnsureResponseIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(ResponsesCollection)
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("idx_created_at"),
	})
	return err
}

func (r *mongoResponseRepository) Insert(ctx context.Context, resp *models.SurveyResponse) error {
	res, err := r.col.InsertOne(ctx, resp)
	if err != nil {
		return storeErr("insert respuesta", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		resp.ID = oid
	}
	return nil
}

func oldestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}

func (r *mongoResponseRepository) FindAll(ctx context.Context) ([]models.SurveyResponse, error) {
	cursor, err := r.col.Find(ctx, bson.D{}, oldestFirst())
	if err != nil {
		return nil, storeErr("find respuestas", err)
	}
	defer cursor.Close(ctx)

	var out []models.SurveyResponse
	if err := cursor.All(ctx, &out); err != nil {
		return nil, storeErr("decode respuestas", err)
	}
	if out == nil {
		out = []models.SurveyResponse{}
	}
	return out, nil
}

func (r *mongoResponseRepository) Each(ctx context.Context, fn func(models.SurveyResponse) error) error {
	cursor, err := r.col.Find(ctx, bson.D{}, oldestFirst())
	if err != nil {
		return storeErr("find respuestas", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc models.SurveyResponse
		if err := cursor.Decode(&doc); err != nil {
			return storeErr("decode respuesta", err)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	if err := cursor.Err(); err != nil {
		return storeErr("iterate respuestas", err)
	}
	return nil
}

func (r *mongoResponseRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, storeErr("delete respuestas", err)
	}
	return res.DeletedCount, nil
}
