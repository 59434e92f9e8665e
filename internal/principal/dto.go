// AngelaMos | 2026
// dto.go

package principal

import (
	"time"
)

type PrincipalResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToPrincipalResponse(p *Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Role:      p.Role.String(),
		CreatedAt: p.CreatedAt,
	}
}
