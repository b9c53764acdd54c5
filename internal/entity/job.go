package entity

import (
	"github.com/google/uuid"
)

type JobStatus string

const (
	JobOpen     JobStatus = "Open"
	JobAssigned JobStatus = "Assigned"
)

// db model
type Job struct {
	Id          uuid.UUID `json:"id" db:"id"`
	OwnerId     uuid.UUID `json:"ownerId" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Budget      int64     `json:"budget" db:"budget"`
	Status      JobStatus `json:"status" db:"status"`
	CreatedAt   string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateJobInput struct {
	OwnerId     uuid.UUID // given
	Title       string    // given
	Description string    // given
	Category    string    // given, may be empty
	Budget      int64     // given
	// Id UUID sets automatically
	// Status should be set: Open
	// CreatedAt sets automatically
}

// Zero values mean "keep the current value". A negative budget never passes
// validation, so 0 is free to act as the sentinel.
type JobPatch struct {
	Title       string
	Description string
	Budget      int64
}

func (p *JobPatch) Empty() bool {
	return p.Title == "" && p.Description == "" && p.Budget == 0
}

// controller model
type JobOutputModel struct {
	Id          string `json:"id"`
	OwnerId     string `json:"ownerId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Budget      int64  `json:"budget"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type JobStatsOutputModel struct {
	TotalJobs    int `json:"totalJobs"`
	OpenJobs     int `json:"openJobs"`
	AssignedJobs int `json:"assignedJobs"`
}
