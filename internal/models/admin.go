package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Admin struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Usuario       string             `bson:"usuario" json:"usuario"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password" json:"-"` // argon2id, never returned
	FechaRegistro time.Time          `bson:"fechaRegistro" json:"fechaRegistro"`
}
