package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/articlehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts test documents directly, bypassing store validation.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the derived fields already filled in.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email string, age int) models.User {
	f.t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	full := firstName + " " + lastName
	u := models.User{
		ID:         primitive.NewObjectID(),
		FirstName:  firstName,
		LastName:   lastName,
		FullName:   full,
		FullNameCI: text.Fold(full),
		Email:      email,
		Age:        age,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateArticle inserts an article owned by ownerID with the given creation
// time. It does not touch the owner's article counter.
func (f *Fixtures) CreateArticle(ctx context.Context, ownerID primitive.ObjectID, title string, createdAt time.Time) models.Article {
	f.t.Helper()

	createdAt = createdAt.UTC().Truncate(time.Millisecond)
	a := models.Article{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Subtitle:    "Subtitle of " + title,
		Description: "Description of " + title,
		Category:    "general",
		Owner:       ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	if _, err := f.db.Collection("articles").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test article: %v", err)
	}
	return a
}

// CreateArticles inserts n articles titled "<prefix> 1".."<prefix> n", one
// minute apart, the last being the newest.
func (f *Fixtures) CreateArticles(ctx context.Context, ownerID primitive.ObjectID, prefix string, n int) []models.Article {
	f.t.Helper()

	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	out := make([]models.Article, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, f.CreateArticle(ctx, ownerID, fmt.Sprintf("%s %d", prefix, i), base.Add(time.Duration(i)*time.Minute)))
	}
	return out
}

// SetArticleCount overwrites a user's counter.
func (f *Fixtures) SetArticleCount(ctx context.Context, userID primitive.ObjectID, n int) {
	f.t.Helper()

	_, err := f.db.Collection("users").UpdateByID(ctx, userID, bson.M{"$set": bson.M{"number_of_articles": n}})
	if err != nil {
		f.t.Fatalf("failed to set article count: %v", err)
	}
}

// User reloads a user by id.
func (f *Fixtures) User(ctx context.Context, id primitive.ObjectID) models.User {
	f.t.Helper()

	var u models.User
	if err := f.db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		f.t.Fatalf("failed to load user %s: %v", id.Hex(), err)
	}
	return u
}

// ArticleExists reports whether an article with id is stored.
func (f *Fixtures) ArticleExists(ctx context.Context, id primitive.ObjectID) bool {
	f.t.Helper()

	n, err := f.db.Collection("articles").CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		f.t.Fatalf("failed to count articles: %v", err)
	}
	return n > 0
}
