// AngelaMos | 2026
// entity.go

package feedback

import (
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusApproved   Status = "APPROVED"
	StatusResolved   Status = "RESOLVED"
	StatusRejected   Status = "REJECTED"
)

var ErrInvalidStatus = fmt.Errorf("invalid status: %w", core.ErrInvalidInput)

var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusApproved,
	StatusResolved,
	StatusRejected,
}

// ParseStatus accepts any letter case. Unknown values wrap ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range Statuses {
		if status == candidate {
			return status, nil
		}
	}
	return "", fmt.Errorf("parse status %q: %w", s, ErrInvalidStatus)
}

func (s Status) String() string {
	return string(s)
}

func statusNames() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

type Feedback struct {
	ID             int64     `db:"id"`
	UserID         string    `db:"user_id"`
	ProductID      string    `db:"product_id"`
	Rating         int       `db:"rating"`
	Comment        string    `db:"comment"`
	SubmitterName  string    `db:"submitter_name"`
	SubmitterEmail string    `db:"submitter_email"`
	Status         Status    `db:"status"`
	CategoryID     *int64    `db:"category_id"`
	CategoryName   *string   `db:"category_name"`
	CreatedAt      time.Time `db:"created_at"`
}

func (f *Feedback) HasCategory() bool {
	return f.CategoryID != nil
}

// StatusCount is one row of the per-status breakdown.
type StatusCount struct {
	Status Status `db:"status"`
	Count  int64  `db:"count"`
}
