// internal/app/features/users/types.go
package users

import (
	"net/http"

	"github.com/dalemusser/articlehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createRequest is the body of POST /users.
type createRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Role      string `json:"role"`
}

func (c *createRequest) Bind(r *http.Request) error { return nil }

func (c *createRequest) user() models.User {
	return models.User{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Age:       c.Age,
		Role:      c.Role,
	}
}

// updateRequest is the body of PUT /users/{id}. Any field may be omitted.
type updateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

func (u *updateRequest) Bind(r *http.Request) error { return nil }

// detailResponse is a user together with the brief form of its articles.
type detailResponse struct {
	ID       primitive.ObjectID    `json:"id"`
	FullName string                `json:"fullName"`
	Email    string                `json:"email"`
	Age      int                   `json:"age,omitempty"`
	Articles []models.ArticleBrief `json:"articles"`
}

type messageResponse struct {
	Message string `json:"message"`
}
