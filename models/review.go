package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a product they have ordered.
type Review struct {
	ReviewID   int64     `json:"reviewId"`
	CustomerID int64     `json:"customerId"`
	ProductID  int64     `json:"productId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RegisterReview struct {
	ProductID int64   `json:"productId"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}

type UpdateReview struct {
	ReviewID int64   `json:"reviewId"`
	Rating   *int    `json:"rating,omitempty"`
	Comment  *string `json:"comment,omitempty"`
}
