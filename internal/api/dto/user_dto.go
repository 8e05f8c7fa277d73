package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is returned from GET /users/:id.
type UserResponse struct {
	ID  uuid.UUID `json:"id"`
	Sub string    `json:"sub"`
}

// StatusResponse is returned from GET /status.
type StatusResponse struct {
	Message   string    `json:"message"`
	CheckedAt time.Time `json:"checkedAt"`
}
