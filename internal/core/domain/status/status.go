package status

import (
	"time"

	"github.com/google/uuid"
)

// Check is a client-submitted liveness ping, kept for uptime reporting.
type Check struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

type CreateRequest struct {
	ClientName string `json:"client_name"`
}

func New(req *CreateRequest) *Check {
	return &Check{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}
}
