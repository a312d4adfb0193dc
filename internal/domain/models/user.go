// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user may hold. Role is optional; an empty string means unset.
const (
	RoleAdmin  = "admin"
	RoleWriter = "writer"
	RoleGuest  = "guest"
)

// User is an article author.
//
// FullName is derived from FirstName and LastName on every write and
// NumberOfArticles is only ever changed by article create/delete.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName        string             `bson:"first_name" json:"firstName"`
	LastName         string             `bson:"last_name" json:"lastName"`
	FullName         string             `bson:"full_name" json:"fullName"`
	FullNameCI       string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email            string             `bson:"email" json:"email"`
	Role             string             `bson:"role,omitempty" json:"role,omitempty"`
	Age              int                `bson:"age,omitempty" json:"age,omitempty"`
	NumberOfArticles int                `bson:"number_of_articles" json:"numberOfArticles"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserSummary is the projection returned by the user listing and embedded
// as the owner of listed articles.
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"full_name" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Age      int                `bson:"age,omitempty" json:"age,omitempty"`
}
