package service

import (
	"context"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/events"
	"gig-marketplace-api/internal/repo"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Job interface {
	CreateJob(ctx context.Context, caller *entity.Caller, input *entity.CreateJobInput) (*entity.JobOutputModel, error)
	GetJobById(ctx context.Context, jobId uuid.UUID) (*entity.JobOutputModel, error)
	EditJobById(ctx context.Context, caller *entity.Caller, jobId uuid.UUID, patch *entity.JobPatch) (*entity.JobOutputModel, error)
	DeleteJobById(ctx context.Context, caller *entity.Caller, jobId uuid.UUID) error

	GetUserJobs(ctx context.Context, caller *entity.Caller) ([]entity.JobOutputModel, error)
	GetUserJobStats(ctx context.Context, caller *entity.Caller) (*entity.JobStatsOutputModel, error)

	GetOpenJobs(ctx context.Context, filter *entity.JobFilter) ([]entity.JobOutputModel, error)
}

type Bid interface {
	CreateBid(ctx context.Context, caller *entity.Caller, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	HireBid(ctx context.Context, caller *entity.Caller, bidId uuid.UUID) (*entity.HireResultOutputModel, error)

	GetUserBids(ctx context.Context, caller *entity.Caller) ([]entity.BidOutputModel, error)
	GetUserBidStats(ctx context.Context, caller *entity.Caller) (*entity.BidStatsOutputModel, error)
	GetJobBids(ctx context.Context, caller *entity.Caller, jobId uuid.UUID) ([]entity.BidOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Job         Job
	Bid         Bid
}

func NewServices(repos *repo.Repositories, publisher events.Publisher) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Job:         NewJobService(repos, publisher),
		Bid:         NewBidService(repos, publisher),
	}
}
