package articlestore_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	articlestore "github.com/dalemusser/articlehub/internal/app/store/articles"
	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/paging"
	"github.com/dalemusser/articlehub/internal/domain/models"
	"github.com/dalemusser/articlehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)

	created, err := store.Create(ctx, models.Article{
		Title:       "  The Cat Diaries ",
		Subtitle:    "Nine lives",
		Description: `Don't "panic" & relax <b>today</b>`,
		Category:    "pets",
		Owner:       owner.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.Title != "The Cat Diaries" {
		t.Errorf("Title = %q", created.Title)
	}
	if created.TitleCI != "the cat diaries" {
		t.Errorf("TitleCI = %q", created.TitleCI)
	}
	wantDesc := `Don't "panic" & relax <b>today</b>`
	if created.Description != wantDesc {
		t.Errorf("Description = %q, want %q", created.Description, wantDesc)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps = %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Owner != owner.ID || got.Title != created.Title {
		t.Errorf("GetByID returned %+v", got)
	}
	if got.Description != wantDesc {
		t.Errorf("stored Description = %q, want %q", got.Description, wantDesc)
	}
}

func TestStore_Create_RequiresOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Article{Title: "Orphan"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func titles(arts []models.Article) []string {
	out := make([]string, 0, len(arts))
	for _, a := range arts {
		out = append(out, a.Title)
	}
	return out
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)
	// "Cat 1" is the oldest and "Cat 12" the newest.
	fixtures.CreateArticles(ctx, owner.ID, "Cat", 12)
	fixtures.CreateArticle(ctx, owner.ID, "Dogs only", time.Now().Add(time.Hour))
	fixtures.CreateArticle(ctx, owner.ID, "Concatenate (a+b)", time.Now().Add(-24*time.Hour))

	tests := []struct {
		name   string
		filter articlestore.ListFilter
		want   []string
	}{
		{
			name:   "newest first",
			filter: articlestore.ListFilter{Page: paging.Params{Page: 1, Limit: 3}},
			want:   []string{"Dogs only", "Cat 12", "Cat 11"},
		},
		{
			name:   "title filter is case-insensitive substring",
			filter: articlestore.ListFilter{Title: "cAT", Page: paging.Params{Page: 1, Limit: 5}},
			want:   []string{"Cat 12", "Cat 11", "Cat 10", "Cat 9", "Cat 8"},
		},
		{
			name:   "second page skips the first five matches",
			filter: articlestore.ListFilter{Title: "cat", Page: paging.Params{Page: 2, Limit: 5}},
			want:   []string{"Cat 7", "Cat 6", "Cat 5", "Cat 4", "Cat 3"},
		},
		{
			name:   "last page",
			filter: articlestore.ListFilter{Title: "cat", Page: paging.Params{Page: 3, Limit: 5}},
			want:   []string{"Cat 2", "Cat 1", "Concatenate (a+b)"},
		},
		{
			name:   "regex characters are literal",
			filter: articlestore.ListFilter{Title: "(a+b)", Page: paging.Params{Page: 1, Limit: 10}},
			want:   []string{"Concatenate (a+b)"},
		},
		{
			name:   "no match",
			filter: articlestore.ListFilter{Title: "zebra", Page: paging.Params{Page: 1, Limit: 10}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			gotTitles := titles(got)
			if strings.Join(gotTitles, "|") != strings.Join(tt.want, "|") {
				t.Errorf("List() = %v, want %v", gotTitles, tt.want)
			}
		})
	}
}

func TestStore_ListByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	jane := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)
	bob := fixtures.CreateUser(ctx, "Bobby", "Roe", "bob@x.com", 40)
	fixtures.CreateArticles(ctx, jane.ID, "Jane", 2)
	fixtures.CreateArticles(ctx, bob.ID, "Bob", 1)

	got, err := store.ListByOwner(ctx, jane.ID)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByOwner returned %d articles, want 2", len(got))
	}
	if got[0].Title != "Jane 1" || got[1].Title != "Jane 2" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
	if got[0].Subtitle == "" || got[0].CreatedDate.IsZero() {
		t.Errorf("expected subtitle and createdDate, got %+v", got[0])
	}

	none, err := store.ListByOwner(ctx, primitive.NewObjectID())
	if err != nil || len(none) != 0 {
		t.Errorf("ListByOwner(unknown) = %v, %v", none, err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)
	a := fixtures.CreateArticle(ctx, owner.ID, "Old Title", time.Now().Add(-time.Hour))

	articlestore.Changes{Title: "New Title", Subtitle: "", Description: "Tom & Jerry's"}.Apply(&a)
	got, err := store.Update(ctx, a)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != "New Title" || got.TitleCI != "new title" {
		t.Errorf("title = %q / %q", got.Title, got.TitleCI)
	}
	if got.Subtitle != "Subtitle of Old Title" || got.Category != "general" {
		t.Errorf("expected empty changes to be skipped, got %+v", got)
	}
	if got.Description != "Tom & Jerry's" {
		t.Errorf("Description = %q, want it stored as given", got.Description)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("UpdatedAt %v not after CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}

	stored, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Title != "New Title" {
		t.Errorf("stored title = %q", stored.Title)
	}

	missing := a
	missing.ID = primitive.NewObjectID()
	if _, err := store.Update(ctx, missing); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_DeleteByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := articlestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	jane := fixtures.CreateUser(ctx, "Jane", "Doe", "jane@x.com", 30)
	bob := fixtures.CreateUser(ctx, "Bobby", "Roe", "bob@x.com", 40)
	janes := fixtures.CreateArticles(ctx, jane.ID, "Jane", 3)
	bobs := fixtures.CreateArticles(ctx, bob.ID, "Bob", 1)

	n, err := store.DeleteByOwner(ctx, jane.ID)
	if err != nil || n != 3 {
		t.Fatalf("DeleteByOwner() = %d, %v; want 3, nil", n, err)
	}
	for _, a := range janes {
		if _, err := store.GetByID(ctx, a.ID); !errors.Is(err, mongo.ErrNoDocuments) {
			t.Errorf("article %s still present (err=%v)", a.Title, err)
		}
	}
	if !fixtures.ArticleExists(ctx, bobs[0].ID) {
		t.Error("expected other owner's article to survive")
	}

	n, err = store.Delete(ctx, bobs[0].ID)
	if err != nil || n != 1 {
		t.Errorf("Delete() = %d, %v; want 1, nil", n, err)
	}
}

func TestOwnerIDs(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	got := articlestore.OwnerIDs([]models.Article{{Owner: a}, {Owner: b}, {Owner: a}})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("OwnerIDs() = %v", got)
	}
}

func TestTitleFilter(t *testing.T) {
	if f := articlestore.TitleFilter("   "); len(f) != 0 {
		t.Errorf("TitleFilter(blank) = %v, want empty", f)
	}
	f := articlestore.TitleFilter(" Cat.* ")
	re, ok := f["title_ci"].(primitive.Regex)
	if !ok {
		t.Fatalf("TitleFilter() = %v", f)
	}
	if re.Pattern != `cat\.\*` {
		t.Errorf("pattern = %q, want %q", re.Pattern, `cat\.\*`)
	}
}

func TestChanges_Apply(t *testing.T) {
	base := models.Article{Title: "Title", Subtitle: "Sub", Description: "Desc", Category: "general"}

	tests := []struct {
		name    string
		changes articlestore.Changes
		want    models.Article
	}{
		{"nothing supplied", articlestore.Changes{}, base},
		{"title only", articlestore.Changes{Title: "New"}, models.Article{Title: "New", Subtitle: "Sub", Description: "Desc", Category: "general"}},
		{"whitespace replaces", articlestore.Changes{Category: "  "}, models.Article{Title: "Title", Subtitle: "Sub", Description: "Desc", Category: "  "}},
		{"all fields", articlestore.Changes{Title: "T", Subtitle: "S", Description: "D", Category: "C"}, models.Article{Title: "T", Subtitle: "S", Description: "D", Category: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			tt.changes.Apply(&a)
			if a != tt.want {
				t.Errorf("Apply() = %+v, want %+v", a, tt.want)
			}
		})
	}
}
