// internal/app/features/articles/types.go
package articles

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createRequest is the body of POST /articles. Owner is a user id in hex.
type createRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Owner       string `json:"owner"`
}

func (c *createRequest) Bind(r *http.Request) error { return nil }

// updateRequest is the body of PUT /articles/{id}. Empty fields are ignored.
type updateRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (u *updateRequest) Bind(r *http.Request) error { return nil }

type messageResponse struct {
	Message string `json:"message"`
}

// withOwners pairs each article with its owner's summary. Owners missing
// from owners are rendered as null.
func withOwners(arts []models.Article, owners map[primitive.ObjectID]models.UserSummary) []models.ArticleWithOwner {
	out := make([]models.ArticleWithOwner, 0, len(arts))
	for _, a := range arts {
		item := models.ArticleWithOwner{
			ID:          a.ID,
			Title:       a.Title,
			Subtitle:    a.Subtitle,
			Description: a.Description,
			Category:    a.Category,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		}
		if o, ok := owners[a.Owner]; ok {
			item.Owner = &o
		}
		out = append(out, item)
	}
	return out
}
