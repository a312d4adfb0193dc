package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/inputval"
	"github.com/dalemusser/articlehub/internal/app/system/normalize"
	"github.com/dalemusser/articlehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
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
	return &Store{c: db.Collection("users")}
}

// rules are the constraints checked before every write.
type rules struct {
	FirstName string `json:"firstName" validate:"required,min=4,max=50" label:"First name"`
	LastName  string `json:"lastName" validate:"required,min=3,max=60" label:"Last name"`
	Email     string `json:"email" validate:"required,basicemail" label:"Email"`
	Role      string `json:"role" validate:"omitempty,oneof=admin writer guest" label:"Role"`
	Age       int    `json:"age" validate:"omitempty,min=1,max=99" label:"Age"`
}

// validate returns an apperr validation error when u breaks a rule.
func validate(u *models.User) error {
	return inputval.Validate(rules{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Age:       u.Age,
	}).Err()
}

// derive recomputes the fields that follow from the user's names.
func derive(u *models.User) {
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)
	u.FullName = u.FirstName + " " + u.LastName
	u.FullNameCI = text.Fold(u.FullName)
}

func errDuplicateEmail() error {
	return apperr.Validation(apperr.FieldError{Field: "email", Message: "A user with this email already exists."})
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user with id is stored.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// Create inserts a new user after normalizing & validating fields.
// The article counter always starts at zero.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	derive(&u)
	u.NumberOfArticles = 0

	if err := validate(&u); err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, errDuplicateEmail()
		}
		return models.User{}, err
	}
	return u, nil
}

// sortFields maps the JSON names accepted by List to stored field names.
var sortFields = map[string]string{
	"id":               "_id",
	"firstName":        "first_name",
	"lastName":         "last_name",
	"fullName":         "full_name",
	"email":            "email",
	"role":             "role",
	"age":              "age",
	"numberOfArticles": "number_of_articles",
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
}

// SortField translates a requested sort key. Unknown keys are returned
// unchanged so the database sorts on whatever field the caller named.
func SortField(name string) string {
	if f, ok := sortFields[name]; ok {
		return f
	}
	return name
}

// List returns every user projected to its summary, ordered by field
// (translated with SortField) in the given direction, ties broken by _id.
func (s *Store) List(ctx context.Context, field string, order int) ([]models.UserSummary, error) {
	if order != -1 {
		order = 1
	}
	field = SortField(field)
	if field == "" {
		field = "age"
	}

	sort := bson.D{{Key: field, Value: order}}
	if field != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: order})
	}
	opts := options.Find().
		SetSort(sort).
		SetProjection(bson.M{"full_name": 1, "email": 1, "age": 1})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.UserSummary, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Summaries loads the summaries of the given users keyed by id. Missing ids
// are absent from the map.
func (s *Store) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"full_name": 1, "email": 1, "age": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.UserSummary
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cur.Err()
}

// Changes holds the fields a caller may change on a user. Zero values mean
// "not supplied" and leave the stored value alone.
type Changes struct {
	FirstName string
	LastName  string
	Age       int
}

// Update applies upd to the user with id, recomputes the full name,
// validates and persists. Returns mongo.ErrNoDocuments if not found.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Changes) (*models.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != "" {
		u.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		u.LastName = upd.LastName
	}
	if upd.Age != 0 {
		u.Age = upd.Age
	}
	derive(u)

	if err := validate(u); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	set := bson.M{
		"first_name":   u.FirstName,
		"last_name":    u.LastName,
		"full_name":    u.FullName,
		"full_name_ci": u.FullNameCI,
		"updated_at":   u.UpdatedAt,
	}
	if u.Age != 0 {
		set["age"] = u.Age
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

// AdjustArticleCount adds delta to the user's article counter.
// Returns mongo.ErrNoDocuments if the user does not exist.
func (s *Store) AdjustArticleCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"number_of_articles": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
