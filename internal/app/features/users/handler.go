// internal/app/features/users/handler.go
package users

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/articlehub/internal/app/features/errors"
	articlestore "github.com/dalemusser/articlehub/internal/app/store/articles"
	userstore "github.com/dalemusser/articlehub/internal/app/store/users"
	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Users.
//
// The stores are constructed once in bootstrap and shared with the
// articles feature.
type Handler struct {
	Users    *userstore.Store
	Articles *articlestore.Store
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs a Users handler.
func NewHandler(users *userstore.Store, articles *articlestore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Articles: articles,
		Log:      logger,
		ErrLog:   errLog,
	}
}

var errUserNotFound = apperr.NotFound("User not found")

// userID parses the {id} route parameter. A malformed id is reported as a
// missing user.
func userID(r *http.Request) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, errUserNotFound
	}
	return oid, nil
}

// notFound turns a missing document into a NotFound error.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errUserNotFound
	}
	return err
}
