package service

import (
	"context"
	"errors"
	"strings"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/events"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type BidService struct {
	bidRepo   repo.Bid
	jobRepo   repo.Job
	publisher events.Publisher
}

func NewBidService(repos *repo.Repositories, publisher events.Publisher) *BidService {
	return &BidService{
		bidRepo:   repos.Bid,
		jobRepo:   repos.Job,
		publisher: publisher,
	}
}

func (s *BidService) CreateBid(ctx context.Context, caller *entity.Caller, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	if caller.Role != entity.RoleFreelancer {
		return nil, ErrCallerNotFreelancer
	}

	input.Message = strings.TrimSpace(input.Message)
	if input.Message == "" {
		return nil, ErrEmptyMessage
	}

	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	job, err := s.jobRepo.GetJobById(ctx, input.JobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if job.OwnerId == caller.Id {
		return nil, ErrOwnJobBid
	}

	if job.Status != entity.JobOpen {
		return nil, ErrJobNotOpen
	}

	// the repo re-checks the job status and the duplicate rule at write time,
	// so a hire landing between the read above and this write is still caught
	input.FreelancerId = caller.Id
	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return nil, ErrJobNotFound
		case errors.Is(err, repo_errors.ErrJobNotOpen):
			return nil, ErrJobNotOpen
		case errors.Is(err, repo_errors.ErrDuplicatePending):
			return nil, ErrDuplicatePendingBid
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id)
	if err != nil {
		return nil, err
	}

	events.PublishBidSubmitted(ctx, s.publisher, bid.JobId, bid.Id)

	return mapBid(bid), nil
}

// HireBid is the one compound transition. Authorization happens here; the
// transition itself is atomic inside the repo, and the response carries the
// authoritative job plus the full updated bid set.
func (s *BidService) HireBid(ctx context.Context, caller *entity.Caller, bidId uuid.UUID) (*entity.HireResultOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	job, err := s.jobRepo.GetJobById(ctx, bid.JobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if job.OwnerId != caller.Id {
		return nil, ErrUserHasNoAccessToJob
	}

	if err = s.bidRepo.HireBid(ctx, bidId); err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrNotFound):
			return nil, ErrBidNotFound
		case errors.Is(err, repo_errors.ErrJobAlreadyAssigned):
			return nil, ErrJobAlreadyAssigned
		case errors.Is(err, repo_errors.ErrBidNotPending):
			return nil, ErrBidNotPending
		}

		return nil, err
	}

	job, err = s.jobRepo.GetJobById(ctx, bid.JobId)
	if err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.GetJobBids(ctx, bid.JobId)
	if err != nil {
		return nil, err
	}

	events.PublishBidHired(ctx, s.publisher, job.Id, bidId)

	return &entity.HireResultOutputModel{
		Job:  mapJob(job),
		Bids: mapBids(bids),
	}, nil
}

func (s *BidService) GetUserBids(ctx context.Context, caller *entity.Caller) ([]entity.BidOutputModel, error) {
	if caller.Role != entity.RoleFreelancer {
		return nil, ErrCallerNotFreelancer
	}

	bids, err := s.bidRepo.GetFreelancerBids(ctx, caller.Id)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetUserBidStats(ctx context.Context, caller *entity.Caller) (*entity.BidStatsOutputModel, error) {
	if caller.Role != entity.RoleFreelancer {
		return nil, ErrCallerNotFreelancer
	}

	bids, err := s.bidRepo.GetFreelancerBids(ctx, caller.Id)
	if err != nil {
		return nil, err
	}

	stats := &entity.BidStatsOutputModel{Total: len(bids)}
	for _, bid := range bids {
		switch bid.Status {
		case entity.BidPending:
			stats.Pending++
		case entity.BidHired:
			stats.Hired++
		case entity.BidRejected:
			stats.Rejected++
		}
	}

	return stats, nil
}

func (s *BidService) GetJobBids(ctx context.Context, caller *entity.Caller, jobId uuid.UUID) ([]entity.BidOutputModel, error) {
	job, err := s.jobRepo.GetJobById(ctx, jobId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, err
	}

	if job.OwnerId != caller.Id {
		return nil, ErrUserHasNoAccessToJob
	}

	bids, err := s.bidRepo.GetJobBids(ctx, jobId)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}
