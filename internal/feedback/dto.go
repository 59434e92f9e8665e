// AngelaMos | 2026
// dto.go

package feedback

import (
	"time"
)

// SubmitFeedbackRequest is the public submission body. Status is accepted for
// compatibility with older clients and ignored: new feedback is always PENDING.
type SubmitFeedbackRequest struct {
	UserID         string       `json:"user_id"         validate:"max=255"`
	ProductID      string       `json:"product_id"      validate:"max=255"`
	Rating         int          `json:"rating"`
	Comment        string       `json:"comment"         validate:"max=500"`
	SubmitterName  string       `json:"submitter_name"  validate:"max=255"`
	SubmitterEmail string       `json:"submitter_email" validate:"omitempty,email,max=255"`
	Status         string       `json:"status,omitempty"`
	Category       *CategoryRef `json:"category,omitempty"`
}

type CategoryRef struct {
	ID *int64 `json:"id"`
}

// CategoryID returns the referenced category id, if any.
func (r SubmitFeedbackRequest) CategoryID() *int64 {
	if r.Category == nil {
		return nil
	}
	return r.Category.ID
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type StatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type FeedbackResponse struct {
	ID             int64             `json:"id"`
	UserID         string            `json:"user_id"`
	ProductID      string            `json:"product_id"`
	Rating         int               `json:"rating"`
	Comment        string            `json:"comment"`
	SubmitterName  string            `json:"submitter_name"`
	SubmitterEmail string            `json:"submitter_email"`
	Status         string            `json:"status"`
	Category       *CategoryResponse `json:"category"`
	CreatedAt      time.Time         `json:"created_at"`
}

func ToFeedbackResponse(f *Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:             f.ID,
		UserID:         f.UserID,
		ProductID:      f.ProductID,
		Rating:         f.Rating,
		Comment:        f.Comment,
		SubmitterName:  f.SubmitterName,
		SubmitterEmail: f.SubmitterEmail,
		Status:         f.Status.String(),
		CreatedAt:      f.CreatedAt,
	}

	if f.CategoryID != nil {
		resp.Category = &CategoryResponse{ID: *f.CategoryID}
		if f.CategoryName != nil {
			resp.Category.Name = *f.CategoryName
		}
	}

	return resp
}

func ToFeedbackResponseList(items []Feedback) []FeedbackResponse {
	result := make([]FeedbackResponse, len(items))
	for i := range items {
		result[i] = ToFeedbackResponse(&items[i])
	}
	return result
}

// Stats is the moderation dashboard summary. Every known status is present,
// zero when no feedback carries it.
type Stats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}
