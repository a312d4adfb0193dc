// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureArticles(ctx, db); err != nil {
		problems = append(problems, "articles: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconciling the desired indexes of one collection                           */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isUnique(b *bool) bool {
	return b != nil && *b
}

// Mongo/DocDB return IndexOptionsConflict when an index with the same keys
// already exists under a different name or with different options.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

// listExisting returns the collection's indexes keyed by key signature.
func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		// Collection not created yet.
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

// replace drops ex and creates m in its place.
func replace(ctx context.Context, coll *mongo.Collection, ex existingIndex, m mongo.IndexModel) error {
	if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
		return fmt.Errorf("drop %s: %w", ex.Name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		return err
	}
	return nil
}

// ensureIndexSet makes sure every model exists on coll with the desired
// name and uniqueness. An index with the same keys but a different name or
// uniqueness is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", isUnique(unique)))

		start := time.Now()
		log.Info("ensuring index")

		ex, found := listExisting(ctx, coll)[sig]
		if !found {
			_, err := coll.Indexes().CreateOne(ctx, m)
			if isOptionsConflictErr(err) {
				// Raced with another creator; reconcile against what is there now.
				ex, found = listExisting(ctx, coll)[sig]
			}
			if !found {
				if err != nil {
					log.Warn("index ensure failed", zap.Error(err))
					errs = append(errs, describe(coll, name, sig, unique, err))
					continue
				}
				log.Info("index created", zap.Duration("took", time.Since(start)))
				continue
			}
		}

		sameUnique := isUnique(unique) == isUnique(ex.Unique)
		if sameUnique && (name == "" || ex.Name == name) {
			log.Info("reusing existing index", zap.Duration("took", time.Since(start)))
			continue
		}

		log.Info("recreating index", zap.String("from", ex.Name), zap.Bool("unique_changed", !sameUnique))
		if err := replace(ctx, coll, ex, m); err != nil {
			log.Warn("index recreate failed", zap.Error(err))
			errs = append(errs, describe(coll, name, sig, unique, err))
			continue
		}
		log.Info("index recreated", zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func describe(coll *mongo.Collection, name, sig string, unique *bool, err error) string {
	if isUnique(unique) && wafflemongo.IsDup(err) {
		helper := ""
		if coll.Name() == "users" && strings.Contains(sig, "email:1") {
			helper = " (find them with: db.users.aggregate([{ $group: { _id: \"$email\", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }]))"
		}
		return fmt.Sprintf("%s(%s): cannot create unique index, duplicates present%s", coll.Name(), name, helper)
	}
	return fmt.Sprintf("%s(%s): %v", coll.Name(), name, err)
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		// Email is unique across all users.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Default listing sort.
		{
			Keys:    bson.D{{Key: "age", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_age_id"),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_fullnameci_id"),
		},
	})
}

func ensureArticles(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("articles"), []mongo.IndexModel{
		// Articles of one user, and the cascade delete.
		{
			Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_articles_owner_created"),
		},
		// Newest-first listing.
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_articles_created_id"),
		},
		{
			Keys:    bson.D{{Key: "title_ci", Value: 1}},
			Options: options.Index().SetName("idx_articles_titleci"),
		},
	})
}
