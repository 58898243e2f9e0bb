package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/models"
)

const AdminsCollection = "users"

type AdminRepository interface {
	// Create fails with ErrDuplicateAdmin when usuario or email is taken.
	Create(ctx context.Context, a *models.Admin) error
	// FindByUsuario fails with ErrAdminNotFound when nobody has that name.
	FindByUsuario(ctx context.Context, usuario string) (*models.Admin, error)
}

type mongoAdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &mongoAdminRepository{col: db.Collection(AdminsCollection)}
}

// EnsureAdminIndexes makes usuario and email unique so concurrent
// registrations cannot both succeed.
func EnsureAdminIndexes(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(AdminsCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "usuario", Value: 1}},
			Options: options.Index().SetName("uniq_usuario").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
	}

	for _, m := range indexes {
		if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *mongoAdminRepository) Create(ctx context.Context, a *models.Admin) error {
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateAdmin
		}
		return storeErr("insert admin", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *mongoAdminRepository) FindByUsuario(ctx context.Context, usuario string) (*models.Admin, error) {
	var a models.Admin
	err := r.col.FindOne(ctx, bson.M{"usuario": usuario}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, storeErr("find admin", err)
	}
	return &a, nil
}
