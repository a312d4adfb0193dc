// internal/domain/models/article.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is a piece of writing owned by a single User.
// Owner is a lookup key only; deleting the owner deletes its articles.
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Subtitle    string             `bson:"subtitle" json:"subtitle"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ArticleWithOwner is an Article whose owner has been expanded inline.
// Owner is nil when the referenced user no longer exists.
type ArticleWithOwner struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Subtitle    string             `json:"subtitle"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Owner       *UserSummary       `json:"owner"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ArticleBrief is the short form of an article listed under its owner.
type ArticleBrief struct {
	Title       string    `bson:"title" json:"title"`
	Subtitle    string    `bson:"subtitle" json:"subtitle"`
	CreatedDate time.Time `bson:"created_at" json:"createdDate"`
}
