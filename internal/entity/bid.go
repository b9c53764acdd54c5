package entity

import (
	"github.com/google/uuid"
)

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidHired    BidStatus = "hired"
	BidRejected BidStatus = "rejected"
)

// db model
type Bid struct {
	Id           uuid.UUID `json:"id" db:"id"`
	JobId        uuid.UUID `json:"jobId" db:"job_id"`
	FreelancerId uuid.UUID `json:"freelancerId" db:"freelancer_id"`
	Message      string    `json:"message" db:"message"`
	Price        int64     `json:"price" db:"price"`
	Status       BidStatus `json:"status" db:"status"`
	CreatedAt    string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBidInput struct {
	JobId        uuid.UUID // given
	FreelancerId uuid.UUID // given
	Message      string    // given
	Price        int64     // given
	// Id UUID sets automatically
	// Status should be set: pending
	// CreatedAt sets automatically
}

// controller model
type BidOutputModel struct {
	Id           string `json:"id"`
	JobId        string `json:"jobId"`
	FreelancerId string `json:"freelancerId"`
	Message      string `json:"message"`
	Price        int64  `json:"price"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

type BidStatsOutputModel struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Hired    int `json:"hired"`
	Rejected int `json:"rejected"`
}

// hire response: the authoritative post-transition state, so the caller never
// needs a second round-trip to refresh its view
type HireResultOutputModel struct {
	Job  *JobOutputModel  `json:"job"`
	Bids []BidOutputModel `json:"bids"`
}
