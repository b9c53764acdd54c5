package repo

import (
	"context"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/pgdb"
	"gig-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Job interface {
	CreateJob(ctx context.Context, input *entity.CreateJobInput) (uuid.UUID, error)
	GetJobById(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	EditJobById(ctx context.Context, id uuid.UUID, patch *entity.JobPatch) error
	// DeleteJobById removes the job and every bid referencing it in one
	// transaction: either both disappear or neither does.
	DeleteJobById(ctx context.Context, id uuid.UUID) error
	GetOpenJobs(ctx context.Context) ([]entity.Job, error)
	GetJobsByOwnerId(ctx context.Context, ownerId uuid.UUID) ([]entity.Job, error)
}

type Bid interface {
	// CreateBid re-checks that the job is still Open at write time and that
	// the freelancer has no other pending bid on it.
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	// HireBid performs the whole hire transition atomically: the target bid
	// becomes hired, every other pending bid on the same job becomes rejected,
	// the job becomes Assigned. Serialized per job.
	HireBid(ctx context.Context, bidId uuid.UUID) error
	GetJobBids(ctx context.Context, jobId uuid.UUID) ([]entity.Bid, error)
	GetFreelancerBids(ctx context.Context, freelancerId uuid.UUID) ([]entity.Bid, error)
}

type Repositories struct {
	Diagnostics
	Job
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Job:         pgdb.NewJobRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
