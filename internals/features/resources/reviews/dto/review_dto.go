package dto

import "strings"

// SubmitReviewRequest — create atau update review milik sendiri.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (r *SubmitReviewRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

// SubmitReviewResult membawa agregat terbaru setelah recompute.
type SubmitReviewResult struct {
	Updated      bool    `json:"updated"`
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int     `json:"total_reviews"`
}
