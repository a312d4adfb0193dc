// internal/app/features/articles/handler.go
package articles

import (
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/articlehub/internal/app/features/errors"
	articlestore "github.com/dalemusser/articlehub/internal/app/store/articles"
	userstore "github.com/dalemusser/articlehub/internal/app/store/users"
	"github.com/dalemusser/articlehub/internal/app/system/apperr"
	"github.com/dalemusser/articlehub/internal/app/system/paging"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultIdentityHeader names the request header holding the caller's user id.
const DefaultIdentityHeader = "userid"

// Options are the request-handling settings taken from configuration.
type Options struct {
	IdentityHeader   string
	DefaultPageLimit int
	MaxPageLimit     int
}

// Handler is the feature-level entry point for Articles.
type Handler struct {
	Users    *userstore.Store
	Articles *articlestore.Store
	Opts     Options
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs an Articles handler. Zero options fall back to
// their defaults.
func NewHandler(users *userstore.Store, articles *articlestore.Store, opts Options, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if strings.TrimSpace(opts.IdentityHeader) == "" {
		opts.IdentityHeader = DefaultIdentityHeader
	}
	if opts.DefaultPageLimit < 1 {
		opts.DefaultPageLimit = paging.DefaultLimit
	}
	if opts.MaxPageLimit < 1 {
		opts.MaxPageLimit = paging.MaxLimit
	}
	return &Handler{
		Users:    users,
		Articles: articles,
		Opts:     opts,
		Log:      logger,
		ErrLog:   errLog,
	}
}

var (
	errArticleNotFound = apperr.NotFound("Article not found")
	errOwnerNotFound   = apperr.NotFound("Owner not found")
)

// articleID parses the {id} route parameter. A malformed id is reported as
// a missing article.
func articleID(r *http.Request) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, errArticleNotFound
	}
	return oid, nil
}

// caller returns the raw identity header value.
func (h *Handler) caller(r *http.Request) string {
	return r.Header.Get(h.Opts.IdentityHeader)
}

// IsOwner reports whether the caller's identity matches the owner id.
// The header is compared verbatim with the owner's hex id.
func IsOwner(identity string, owner primitive.ObjectID) bool {
	return identity == owner.Hex()
}

func orNotFound(err, notFound error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	return err
}
