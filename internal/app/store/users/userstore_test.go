package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/articlehub/internal/app/store/users"
	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/indexes"
	"github.com/dalemusser/articlehub/internal/domain/models"
	"github.com/dalemusser/articlehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func jane() models.User {
	return models.User{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Age: 30}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := jane()
	u.FirstName = "  Jane "
	u.Email = " Jane@X.com "
	u.NumberOfArticles = 7

	created, err := store.Create(ctx, u)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.FirstName != "Jane" {
		t.Errorf("FirstName = %q, want %q", created.FirstName, "Jane")
	}
	if created.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", created.FullName, "Jane Doe")
	}
	if created.FullNameCI != "jane doe" {
		t.Errorf("FullNameCI = %q, want %q", created.FullNameCI, "jane doe")
	}
	if created.Email != "jane@x.com" {
		t.Errorf("Email = %q, want %q", created.Email, "jane@x.com")
	}
	if created.NumberOfArticles != 0 {
		t.Errorf("NumberOfArticles = %d, want 0", created.NumberOfArticles)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FullName != "Jane Doe" || got.Email != "jane@x.com" || got.Age != 30 {
		t.Errorf("GetByID returned %+v", got)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name      string
		mutate    func(u *models.User)
		wantField string
	}{
		{"first name too short", func(u *models.User) { u.FirstName = "Jo" }, "firstName"},
		{"first name blank after trim", func(u *models.User) { u.FirstName = "     " }, "firstName"},
		{"last name too short", func(u *models.User) { u.LastName = "Do" }, "lastName"},
		{"bad email", func(u *models.User) { u.Email = "not-an-email" }, "email"},
		{"age too high", func(u *models.User) { u.Age = 100 }, "age"},
		{"negative age", func(u *models.User) { u.Age = -1 }, "age"},
		{"unknown role", func(u *models.User) { u.Role = "owner" }, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := jane()
			tt.mutate(&u)

			_, err := store.Create(ctx, u)
			e, ok := apperr.As(err)
			if !ok || e.Kind != apperr.KindValidation {
				t.Fatalf("Create() error = %v, want validation error", err)
			}
			if len(e.Fields) == 0 || e.Fields[0].Field != tt.wantField {
				t.Errorf("fields = %+v, want first field %q", e.Fields, tt.wantField)
			}
		})
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, jane()); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	dup := jane()
	dup.Email = "JANE@x.com"
	_, err := store.Create(ctx, dup)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for duplicate email, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}

	exists, err := store.Exists(ctx, primitive.NewObjectID())
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v; want false, nil", exists, err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "Bruno", "Young", "b@x.com", 40)
	fixtures.CreateUser(ctx, "Alice", "Older", "a@x.com", 60)
	fixtures.CreateUser(ctx, "Carla", "Mid", "c@x.com", 50)

	tests := []struct {
		name  string
		field string
		order int
		want  []string
	}{
		{"default age ascending", "", 1, []string{"b@x.com", "c@x.com", "a@x.com"}},
		{"age descending", "age", -1, []string{"a@x.com", "c@x.com", "b@x.com"}},
		{"json name translated", "firstName", 1, []string{"a@x.com", "b@x.com", "c@x.com"}},
		{"stored name accepted", "full_name", -1, []string{"c@x.com", "b@x.com", "a@x.com"}},
		{"unknown field keeps id order", "noSuchField", 1, []string{"b@x.com", "a@x.com", "c@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.field, tt.order)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List returned %d users, want %d", len(got), len(tt.want))
			}
			for i, email := range tt.want {
				if got[i].Email != email {
					t.Errorf("position %d: got %q, want %q", i, got[i].Email, email)
				}
			}
			if got[0].FullName == "" || got[0].ID.IsZero() {
				t.Errorf("expected projected fullName and id, got %+v", got[0])
			}
		})
	}
}

func TestStore_Summaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Alice", "Smith", "a@x.com", 20)
	missing := primitive.NewObjectID()

	got, err := store.Summaries(ctx, []primitive.ObjectID{a.ID, missing})
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Summaries returned %d entries, want 1", len(got))
	}
	if got[a.ID].FullName != "Alice Smith" || got[a.ID].Age != 20 {
		t.Errorf("summary = %+v", got[a.ID])
	}
	if _, ok := got[missing]; ok {
		t.Error("expected missing id to be absent")
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)

	t.Run("zero values are skipped", func(t *testing.T) {
		got, err := store.Update(ctx, u.ID, userstore.Changes{FirstName: "", LastName: "Smith", Age: 0})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got.FirstName != "Jane" {
			t.Errorf("FirstName = %q, want unchanged %q", got.FirstName, "Jane")
		}
		if got.Age != 30 {
			t.Errorf("Age = %d, want unchanged 30", got.Age)
		}
		if got.FullName != "Jane Smith" {
			t.Errorf("FullName = %q, want %q", got.FullName, "Jane Smith")
		}
		if got.UpdatedAt.Before(u.UpdatedAt) {
			t.Errorf("UpdatedAt went backwards: %v < %v", got.UpdatedAt, u.UpdatedAt)
		}

		stored := fixtures.User(ctx, u.ID)
		if stored.FullName != "Jane Smith" || stored.FullNameCI != "jane smith" {
			t.Errorf("stored user = %+v", stored)
		}
	})

	t.Run("validated before persisting", func(t *testing.T) {
		_, err := store.Update(ctx, u.ID, userstore.Changes{FirstName: "Al"})
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if stored := fixtures.User(ctx, u.ID); stored.FirstName != "Jane" {
			t.Errorf("FirstName = %q, want unchanged", stored.FirstName)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := store.Update(ctx, primitive.NewObjectID(), userstore.Changes{Age: 20})
		if !errors.Is(err, mongo.ErrNoDocuments) {
			t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
		}
	})
}

func TestStore_AdjustArticleCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)

	for _, delta := range []int{1, 1, 1, -1} {
		if err := store.AdjustArticleCount(ctx, u.ID, delta); err != nil {
			t.Fatalf("AdjustArticleCount(%d) failed: %v", delta, err)
		}
	}
	if got := fixtures.User(ctx, u.ID).NumberOfArticles; got != 2 {
		t.Errorf("NumberOfArticles = %d, want 2", got)
	}

	err := store.AdjustArticleCount(ctx, primitive.NewObjectID(), 1)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments for missing user, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)

	n, err := store.Delete(ctx, u.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete() = %d, %v; want 1, nil", n, err)
	}
	n, err = store.Delete(ctx, u.ID)
	if err != nil || n != 0 {
		t.Errorf("second Delete() = %d, %v; want 0, nil", n, err)
	}
}

func TestSortField(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"age", "age"},
		{"firstName", "first_name"},
		{"numberOfArticles", "number_of_articles"},
		{"createdAt", "created_at"},
		{"id", "_id"},
		{"whatever", "whatever"},
	}
	for _, tt := range tests {
		if got := userstore.SortField(tt.in); got != tt.want {
			t.Errorf("SortField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
