// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EmailPattern mirrors the address rule enforced by the user store.
const EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if unsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("articles", articlesSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// ensureCollection idempotently makes sure name exists.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		zap.L().Info("collection exists", zap.String("collection", name))
		return nil
	}
	// Listing failed or the collection is missing; create and tolerate a race.
	if err := db.CreateCollection(ctx, name); err != nil {
		if hasCode(err, 48, "already exists", "namespace exists") {
			zap.L().Info("collection exists", zap.String("collection", name))
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

// setValidator attaches schema with moderate validation, so documents that
// predate the schema can still be updated.
func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

// hasCode reports whether err is a command error with code, or mentions
// any of the given phrases.
func hasCode(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// unsupported matches "no such command" (59) and "not implemented" (115).
func unsupported(err error) bool {
	return hasCode(err, 59, "no such command") ||
		hasCode(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

const nonBlank = ".*\\S.*"

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"first_name", "last_name", "full_name", "email", "number_of_articles"},
			"properties": bson.M{
				"first_name":         bson.M{"bsonType": "string", "minLength": 4, "maxLength": 50},
				"last_name":          bson.M{"bsonType": "string", "minLength": 3, "maxLength": 60},
				"full_name":          bson.M{"bsonType": "string", "minLength": 1, "pattern": nonBlank},
				"full_name_ci":       bson.M{"bsonType": "string"},
				"email":              bson.M{"bsonType": "string", "pattern": EmailPattern},
				"role":               bson.M{"enum": bson.A{"admin", "writer", "guest"}},
				"age":                bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1, "maximum": 99},
				"number_of_articles": bson.M{"bsonType": bson.A{"int", "long"}},
				"created_at":         bson.M{"bsonType": "date"},
				"updated_at":         bson.M{"bsonType": "date"},
			},
		},
	}
}

func articlesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"owner", "created_at"},
			"properties": bson.M{
				"owner":       bson.M{"bsonType": "objectId"},
				"title":       bson.M{"bsonType": "string"},
				"title_ci":    bson.M{"bsonType": "string"},
				"subtitle":    bson.M{"bsonType": "string"},
				"description": bson.M{"bsonType": "string"},
				"category":    bson.M{"bsonType": "string"},
				"created_at":  bson.M{"bsonType": "date"},
				"updated_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}
