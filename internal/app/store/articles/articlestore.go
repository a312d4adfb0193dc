// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"regexp"
	"time"

	"github.com/dalemusser/articlehub/internal/app/system/inputval"
	"github.com/dalemusser/articlehub/internal/app/system/normalize"
	"github.com/dalemusser/articlehub/internal/app/system/paging"
	"github.com/dalemusser/articlehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("articles")}
}

type rules struct {
	Owner string `json:"owner" validate:"required,objectid" label:"Owner"`
}

func validate(a *models.Article) error {
	owner := ""
	if !a.Owner.IsZero() {
		owner = a.Owner.Hex()
	}
	return inputval.Validate(rules{Owner: owner}).Err()
}

// clean normalizes the short fields and refreshes TitleCI. The description
// is stored exactly as given.
func clean(a *models.Article) {
	a.Title = normalize.Text(a.Title)
	a.TitleCI = text.Fold(a.Title)
	a.Subtitle = normalize.Text(a.Subtitle)
	a.Category = normalize.Text(a.Category)
}

// Create inserts a new Article, setting TitleCI and timestamps. The caller
// is responsible for checking that the owner exists.
func (s *Store) Create(ctx context.Context, a models.Article) (models.Article, error) {
	a.ID = primitive.NewObjectID()
	clean(&a)
	if err := validate(&a); err != nil {
		return models.Article{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// GetByID returns an article by its ID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Article, error) {
	var a models.Article
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Article{}, err
	}
	return a, nil
}

// ListFilter selects one page of the article listing.
type ListFilter struct {
	Title string // case-insensitive substring; empty matches all
	Page  paging.Params
}

// TitleFilter builds the query for a case-insensitive substring match on
// the title. The search text is matched literally.
func TitleFilter(q string) bson.M {
	q = text.Fold(normalize.QueryParam(q))
	if q == "" {
		return bson.M{}
	}
	return bson.M{"title_ci": primitive.Regex{Pattern: regexp.QuoteMeta(q)}}
}

// List returns one page of articles, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Article, error) {
	find := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	f.Page.ApplyToFind(find)

	cur, err := s.c.Find(ctx, TitleFilter(f.Title), find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Article, 0, f.Page.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByOwner returns the brief form of every article owned by owner,
// oldest first.
func (s *Store) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.ArticleBrief, error) {
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 0, "title": 1, "subtitle": 1, "created_at": 1})

	cur, err := s.c.Find(ctx, bson.M{"owner": owner}, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.ArticleBrief, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Changes holds the editable fields of an article. Empty strings mean
// "not supplied" and leave the stored value alone; any other value,
// whitespace included, replaces it.
type Changes struct {
	Title       string
	Subtitle    string
	Description string
	Category    string
}

// Apply copies the supplied fields of c onto a.
func (c Changes) Apply(a *models.Article) {
	if c.Title != "" {
		a.Title = c.Title
	}
	if c.Subtitle != "" {
		a.Subtitle = c.Subtitle
	}
	if c.Description != "" {
		a.Description = c.Description
	}
	if c.Category != "" {
		a.Category = c.Category
	}
}

// Update writes the editable fields of a (already loaded and changed by the
// caller) and refreshes UpdatedAt. Returns mongo.ErrNoDocuments if the
// article no longer exists.
func (s *Store) Update(ctx context.Context, a models.Article) (models.Article, error) {
	clean(&a)
	if err := validate(&a); err != nil {
		return models.Article{}, err
	}
	a.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	res, err := s.c.UpdateByID(ctx, a.ID, bson.M{"$set": bson.M{
		"title":       a.Title,
		"title_ci":    a.TitleCI,
		"subtitle":    a.Subtitle,
		"description": a.Description,
		"category":    a.Category,
		"updated_at":  a.UpdatedAt,
	}})
	if err != nil {
		return models.Article{}, err
	}
	if res.MatchedCount == 0 {
		return models.Article{}, mongo.ErrNoDocuments
	}
	return a, nil
}

// Delete removes an article by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByOwner removes every article owned by owner.
func (s *Store) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"owner": owner})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// OwnerIDs returns the distinct owners of arts in first-seen order.
func OwnerIDs(arts []models.Article) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(arts))
	out := make([]primitive.ObjectID, 0, len(arts))
	for _, a := range arts {
		if seen[a.Owner] {
			continue
		}
		seen[a.Owner] = true
		out = append(out, a.Owner)
	}
	return out
}
