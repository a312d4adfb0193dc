// internal/app/system/paging/paging.go
package paging

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the request does not ask for one.
const DefaultLimit = 10

// MaxLimit bounds the page size a caller may request.
const MaxLimit = 100

// Params is a 1-based page number and a page size.
type Params struct {
	Page  int64
	Limit int64
}

// Parse reads the "page" and "limit" query parameters. Missing, malformed
// or non-positive values fall back to page 1 and defaultLimit; limit is
// capped at maxLimit. Non-positive defaultLimit/maxLimit use the package
// constants.
func Parse(r *http.Request, defaultLimit, maxLimit int) Params {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	if maxLimit < 1 {
		maxLimit = MaxLimit
	}
	limit := positiveInt(query.Get(r, "limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{
		Page:  int64(positiveInt(query.Get(r, "page"), 1)),
		Limit: int64(limit),
	}
}

// Skip is the number of documents before the requested page. Pages far
// beyond any collection saturate at math.MaxInt64 instead of overflowing.
func (p Params) Skip() int64 {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}

// ApplyToFind sets skip and limit on a Find.
func (p Params) ApplyToFind(find *options.FindOptions) {
	find.SetSkip(p.Skip()).SetLimit(p.Limit)
}

// SortOrder maps a sortOrder query value to a Mongo sort direction:
// negative numbers mean descending (-1); anything else ascending (1).
func SortOrder(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err == nil && n < 0 {
		return -1
	}
	return 1
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
