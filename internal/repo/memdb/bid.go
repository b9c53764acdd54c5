package memdb

import (
	"context"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

type BidRepo struct {
	store *Store
}

func NewBidRepo(store *Store) *BidRepo {
	return &BidRepo{store}
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	job, exists := r.store.jobs[input.JobId]
	if !exists {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	// checked again under the lock: the job may have been assigned between the
	// caller's read and this write
	if job.Status != entity.JobOpen {
		return uuid.Nil, repo_errors.ErrJobNotOpen
	}

	for _, id := range r.store.bidOrder {
		bid := r.store.bids[id]
		if bid.JobId == input.JobId && bid.FreelancerId == input.FreelancerId && bid.Status == entity.BidPending {
			return uuid.Nil, repo_errors.ErrDuplicatePending
		}
	}

	bid := &entity.Bid{
		Id:           uuid.New(),
		JobId:        input.JobId,
		FreelancerId: input.FreelancerId,
		Message:      input.Message,
		Price:        input.Price,
		Status:       entity.BidPending,
		CreatedAt:    now(),
	}

	r.store.bids[bid.Id] = bid
	r.store.bidOrder = append(r.store.bidOrder, bid.Id)

	return bid.Id, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bid, exists := r.store.bids[id]
	if !exists {
		return nil, repo_errors.ErrNotFound
	}

	copied := *bid

	return &copied, nil
}

// HireBid applies the whole transition inside one critical section: exactly
// one of two racing hires on the same job sees the job still Open.
func (r *BidRepo) HireBid(ctx context.Context, bidId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	bid, exists := r.store.bids[bidId]
	if !exists {
		return repo_errors.ErrNotFound
	}

	job, exists := r.store.jobs[bid.JobId]
	if !exists {
		return repo_errors.ErrNotFound
	}

	if job.Status != entity.JobOpen {
		return repo_errors.ErrJobAlreadyAssigned
	}

	if bid.Status != entity.BidPending {
		return repo_errors.ErrBidNotPending
	}

	for _, id := range r.store.bidOrder {
		sibling := r.store.bids[id]
		if sibling.JobId == bid.JobId && sibling.Status == entity.BidPending && sibling.Id != bidId {
			sibling.Status = entity.BidRejected
		}
	}

	bid.Status = entity.BidHired
	job.Status = entity.JobAssigned

	return nil
}

func (r *BidRepo) GetJobBids(ctx context.Context, jobId uuid.UUID) ([]entity.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bids := make([]entity.Bid, 0)
	for _, id := range r.store.bidOrder {
		bid := r.store.bids[id]
		if bid.JobId == jobId {
			bids = append(bids, *bid)
		}
	}

	return bids, nil
}

func (r *BidRepo) GetFreelancerBids(ctx context.Context, freelancerId uuid.UUID) ([]entity.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bids := make([]entity.Bid, 0)
	for _, id := range r.store.bidOrder {
		bid := r.store.bids[id]
		if bid.FreelancerId == freelancerId {
			bids = append(bids, *bid)
		}
	}

	return bids, nil
}
